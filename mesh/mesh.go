// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package mesh generates the static geometry used by
// scene cubes.
package mesh

import (
	"errors"
	"fmt"
)

const (
	// Number of faces in a cube.
	NFace = 6

	// Number of vertices in a cube.
	// Faces do not share vertices, so that each one
	// can be colored independently.
	NVertex = 4 * NFace

	// Number of indices in a cube.
	NIndex = 6 * NFace
)

// Face identifies a cube face.
// Faces are laid out in this order in both the
// vertex and the index data.
type Face int

// Cube faces.
const (
	Top Face = iota
	Left
	Right
	Front
	Back
	Bottom
)

var faceNames = [NFace]string{"top", "left", "right", "front", "back", "bottom"}

func (f Face) String() string {
	if f < 0 || f >= NFace {
		return fmt.Sprintf("Face(%d)", int(f))
	}
	return faceNames[f]
}

// Corner signs of each face, in winding order.
// A face that is the mirror of another is derived
// by negating one axis.
var (
	topCorners = [4][3]float32{
		{-1, +1, -1},
		{-1, +1, +1},
		{+1, +1, +1},
		{+1, +1, -1},
	}
	leftCorners = [4][3]float32{
		{-1, +1, +1},
		{-1, -1, +1},
		{-1, -1, -1},
		{-1, +1, -1},
	}
	frontCorners = [4][3]float32{
		{+1, +1, +1},
		{+1, -1, +1},
		{-1, -1, +1},
		{-1, +1, +1},
	}
)

// cubeIndices triangulates each face with counter-clockwise
// winding as seen from outside the cube.
var cubeIndices = [NIndex]uint16{
	// Top
	0, 1, 2, 0, 2, 3,
	// Left
	5, 4, 6, 6, 4, 7,
	// Right
	8, 9, 10, 8, 10, 11,
	// Front
	13, 12, 14, 15, 14, 12,
	// Back
	16, 17, 18, 16, 18, 19,
	// Bottom
	21, 20, 22, 22, 20, 23,
}

// CubeVertices returns the vertex positions of a cube
// with edge length size, centered at the origin.
// The result has NVertex 3-component positions, stored
// contiguously. It depends only on size.
func CubeVertices(size float32) []float32 {
	h := size / 2
	pos := make([]float32, 0, NVertex*3)
	put := func(corners *[4][3]float32, flip int) {
		for _, c := range corners {
			if flip >= 0 {
				c[flip] = -c[flip]
			}
			pos = append(pos, c[0]*h, c[1]*h, c[2]*h)
		}
	}
	put(&topCorners, -1)
	put(&leftCorners, -1)
	put(&leftCorners, 0)
	put(&frontCorners, -1)
	put(&frontCorners, 2)
	put(&topCorners, 1)
	return pos
}

// CubeIndices returns the index list of a cube.
// It is the same for every cube size.
// The caller owns the returned slice.
func CubeIndices() []uint16 {
	idx := make([]uint16, NIndex)
	copy(idx, cubeIndices[:])
	return idx
}

// FaceColors expands one RGB color per face into one
// RGB color per vertex, in face order.
func FaceColors(c [NFace][3]float32) []float32 {
	clr := make([]float32, 0, NVertex*3)
	for _, x := range c {
		for i := 0; i < 4; i++ {
			clr = append(clr, x[:]...)
		}
	}
	return clr
}

// ErrMismatch means that vertex and color data do not
// describe the same number of vertices.
var ErrMismatch = errors.New("mesh: vertex/color length mismatch")

// Check checks that colors holds exactly one RGB triple
// per position in vertices.
func Check(vertices, colors []float32) error {
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: %d position components", ErrMismatch, len(vertices))
	}
	if len(colors) != len(vertices) {
		return fmt.Errorf("%w: %d positions, %d color components", ErrMismatch, len(vertices)/3, len(colors))
	}
	return nil
}
