// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package webgl implements a driver backed by a WebGL 1
// rendering context. It is only built for js/wasm.
//
// Open's target is the id of a canvas element. An empty
// target selects DefaultCanvas.
package webgl
