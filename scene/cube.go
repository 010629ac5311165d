// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"math"
	"time"

	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/mesh"
)

// DefaultSpeed is the speed of a cube that completes a
// full rotation every Period.
const DefaultSpeed = 1

// Period is the duration of one full rotation at
// DefaultSpeed.
const Period = 1500 * 8 * time.Millisecond

// Cube is a renderable, axis-aligned cube that spins
// around a fixed axis through its center, placed at a
// fixed offset from the origin.
type Cube struct {
	size     float32
	vertices []float32
	colors   []float32
	indices  []uint16
	axis     linear.V3
	offset   linear.V3
	speed    float32
}

// NewCube creates a cube with edges of length size.
// colors holds one RGB triple per vertex, in the order
// of mesh.CubeVertices; it is copied as given.
// axis need not be normalized. A zero axis disables
// the rotation.
func NewCube(size float32, colors []float32, axis, offset linear.V3, speed float32) *Cube {
	return &Cube{
		size:     size,
		vertices: mesh.CubeVertices(size),
		colors:   append([]float32(nil), colors...),
		indices:  mesh.CubeIndices(),
		axis:     axis,
		offset:   offset,
		speed:    speed,
	}
}

// Angle returns the rotation angle of c at time now,
// in radians.
// It grows linearly with both now and c's speed.
func (c *Cube) Angle(now time.Duration) float32 {
	return float32(float64(now) / float64(Period) * 2 * math.Pi * float64(c.speed))
}

// World returns the world transform of c at time now:
// a rotation around c's axis followed by a translation
// to c's offset.
// It depends on nothing but now and c's constants.
func (c *Cube) World(now time.Duration) (m linear.M4) {
	var t, r linear.M4
	t.Translate(c.offset[0], c.offset[1], c.offset[2])
	r.Rotate(c.Angle(now), &c.axis)
	m.Mul(&t, &r)
	return
}

// Size returns the edge length.
func (c *Cube) Size() float32 { return c.size }

// Vertices returns a copy of the vertex positions.
func (c *Cube) Vertices() []float32 { return append([]float32(nil), c.vertices...) }

// Colors returns a copy of the vertex colors.
func (c *Cube) Colors() []float32 { return append([]float32(nil), c.colors...) }

// Indices returns a copy of the triangle list.
func (c *Cube) Indices() []uint16 { return append([]uint16(nil), c.indices...) }

// Axis returns the rotation axis.
func (c *Cube) Axis() linear.V3 { return c.axis }

// Offset returns the translation.
func (c *Cube) Offset() linear.V3 { return c.offset }

// Speed returns the angular speed, as a multiple of
// DefaultSpeed.
func (c *Cube) Speed() float32 { return c.speed }
