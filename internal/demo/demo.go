// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package demo provides the stock world of four
// spinning cubes.
package demo

import (
	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/mesh"
	"github.com/gviegas/cubes/scene"
)

// Background is the stock clear color.
var Background = [3]float32{1, 0, 1}

// Palette is the stock color of each face.
var Palette = [mesh.NFace][3]float32{
	mesh.Top:    {0.5, 0.5, 0.5},
	mesh.Left:   {0.75, 0.25, 0.5},
	mesh.Right:  {0.25, 0.25, 0.75},
	mesh.Front:  {1, 0, 0.15},
	mesh.Back:   {0, 1, 0.15},
	mesh.Bottom: {0.5, 0.5, 1},
}

// Colors returns the four stock color sets, each
// derived from Palette by overwriting every n-th
// component from some start.
func Colors() [4][]float32 {
	var c [4][]float32
	for i := range c {
		c[i] = mesh.FaceColors(Palette)
	}
	for i := 0; i < len(c[1]); i += 6 {
		c[1][i] = 1
	}
	for i := 0; i < len(c[2]); i += 4 {
		c[2][i] = 0.75
	}
	for i := 2; i < len(c[3]); i += 3 {
		c[3][i] = 0.75
	}
	return c
}

// Cubes returns new instances of the stock cubes, in
// drawing order.
func Cubes() []*scene.Cube {
	c := Colors()
	return []*scene.Cube{
		scene.NewCube(1, c[0], linear.V3{0, 1, 1}, linear.V3{-0.5, 3, 3}, 3),
		scene.NewCube(1, c[1], linear.V3{1, 1, 0}, linear.V3{2, 0, 0}, scene.DefaultSpeed),
		scene.NewCube(2, c[2], linear.V3{1, 2, 0}, linear.V3{-2, 0, 0}, 0.5),
		scene.NewCube(2.5, c[3], linear.V3{1, 2, 0}, linear.V3{3, 3, 2}, 0.8),
	}
}

// Populate adds the stock cubes to s.
func Populate(s *scene.Scene) error {
	for _, c := range Cubes() {
		if err := s.Add(c); err != nil {
			return err
		}
	}
	return nil
}
