// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

import (
	"github.com/gviegas/cubes/linear"
)

// Context is the main interface to an underlying graphics
// context. It is an immediate-mode sink for vertex data,
// index data and uniform matrices.
// A Context is obtained from a call to Driver.Open.
// Callers should assume that a Context is not safe for
// parallel execution.
type Context interface {
	// Driver returns the Driver that owns the context.
	Driver() Driver

	// Size returns the size of the drawing surface,
	// in pixels.
	Size() (width, height int)

	// SetClearColor sets the color used by Clear.
	SetClearColor(r, g, b, a float32)

	// Enable enables fixed-function state.
	Enable(c Cap)

	// Clear clears the buffers selected by m.
	Clear(m Mask)

	// NewShader compiles source for the given stage.
	// Compilation failures wrap ErrCompile.
	NewShader(stage Stage, source string) (Shader, error)

	// NewProgram links and validates a program from a
	// vertex and a fragment shader.
	// Link or validation failures wrap ErrLink.
	NewProgram(vert, frag Shader) (Program, error)

	// SetProgram makes p the current program.
	SetProgram(p Program)

	// NewVertexBuf creates a vertex buffer initialized
	// with data.
	NewVertexBuf(data []float32) (Buffer, error)

	// NewIndexBuf creates an index buffer initialized
	// with data.
	NewIndexBuf(data []uint16) (Buffer, error)

	// SetVertexBuf binds buf to the attribute at location
	// attr, with comps float components per vertex.
	// The attribute is enabled as a side effect.
	SetVertexBuf(attr int, buf Buffer, comps int)

	// SetIndexBuf binds the index buffer.
	SetIndexBuf(buf Buffer)

	// SetUniformM4 sets a matrix uniform of the current
	// program.
	SetUniformM4(u Uniform, m *linear.M4)

	// DrawIndexed draws count indices from the bound
	// index buffer as a triangle list.
	DrawIndexed(count int)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may hold resources
// that are not managed by GC, so Destroy must be called
// explicitly to ensure such resources are released.
type Destroyer interface {
	Destroy()
}

// Stage is a programmable pipeline stage.
type Stage int

// Stages.
const (
	SVertex Stage = iota
	SFragment
)

func (s Stage) String() string {
	switch s {
	case SVertex:
		return "vertex"
	case SFragment:
		return "fragment"
	}
	return "unknown"
}

// Cap is a fixed-function capability.
type Cap int

// Capabilities.
const (
	CDepthTest Cap = iota
	CCullFace
)

// Mask is a mask of framebuffer aspects.
type Mask int

// Aspects.
const (
	MColor Mask = 1 << iota
	MDepth
)

// Shader is the interface that defines a compiled shader
// stage.
type Shader interface {
	Destroyer

	// Stage returns the shader's stage.
	Stage() Stage
}

// Uniform identifies a uniform variable in a program.
type Uniform int

// NoUniform is the location of a uniform that does not
// exist in a program.
const NoUniform Uniform = -1

// Program is the interface that defines a linked shader
// program.
type Program interface {
	Destroyer

	// Attrib returns the location of the named vertex
	// attribute, or -1 if the program has no such
	// attribute.
	Attrib(name string) int

	// Uniform returns the location of the named uniform,
	// or NoUniform.
	Uniform(name string) Uniform
}

// Buffer is the interface that defines a vertex or index
// buffer.
type Buffer interface {
	Destroyer

	// Len returns the number of elements in the buffer.
	Len() int
}
