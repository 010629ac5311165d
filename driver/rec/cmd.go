// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package rec

import (
	"fmt"

	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/linear"
)

// Op is the type of a recorded command.
type Op int

// Recorded commands.
const (
	OpClearColor Op = iota
	OpEnable
	OpClear
	OpSetProgram
	OpVertexBuf
	OpIndexBuf
	OpUniform
	OpDraw
)

var opNames = [...]string{
	OpClearColor: "clearColor",
	OpEnable:     "enable",
	OpClear:      "clear",
	OpSetProgram: "setProgram",
	OpVertexBuf:  "vertexBuf",
	OpIndexBuf:   "indexBuf",
	OpUniform:    "uniform",
	OpDraw:       "draw",
}

func (op Op) String() string {
	if op < 0 || int(op) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opNames[op]
}

// Cmd is a recorded command.
// Only the fields relevant to Op are set.
type Cmd struct {
	Op Op

	// OpClearColor.
	Color [4]float32

	// OpEnable.
	Cap driver.Cap

	// OpClear.
	Mask driver.Mask

	// Handle of the program (OpSetProgram, OpDraw) or
	// buffer (OpVertexBuf, OpIndexBuf).
	Handle int

	// OpVertexBuf.
	Attrib int
	Comps  int

	// OpUniform.
	Name   string
	Matrix linear.M4

	// OpDraw.
	Count int
	// Uniforms holds the values of the current program's
	// uniforms at the time of the draw, by name.
	Uniforms map[string]linear.M4
}
