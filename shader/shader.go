// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package shader provides the default GLSL ES source of
// the scene pipeline.
package shader

import (
	_ "embed"
)

// Vertex is the vertex stage source.
// It passes the color through and transforms the position
// by projection ⋅ view ⋅ world.
//
//go:embed vertex.glsl
var Vertex string

// Fragment is the fragment stage source.
// It outputs the interpolated color at full opacity.
//
//go:embed fragment.glsl
var Fragment string

// Names of pipeline inputs.
const (
	Position = "vertPosition"
	Color    = "vertColor"
	World    = "mWorld"
	View     = "mView"
	Proj     = "mProj"
)
