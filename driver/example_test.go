// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"fmt"
	"log"

	"github.com/gviegas/cubes/driver"
	_ "github.com/gviegas/cubes/driver/rec"
	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/mesh"
	"github.com/gviegas/cubes/shader"
)

// Example_draw draws a single cube.
func Example_draw() {
	ctx, err := driver.Open("rec", "")
	if err != nil {
		log.Fatal(err)
	}

	vs, err := ctx.NewShader(driver.SVertex, shader.Vertex)
	if err != nil {
		log.Fatal(err)
	}
	defer vs.Destroy()
	fs, err := ctx.NewShader(driver.SFragment, shader.Fragment)
	if err != nil {
		log.Fatal(err)
	}
	defer fs.Destroy()
	prog, err := ctx.NewProgram(vs, fs)
	if err != nil {
		log.Fatal(err)
	}
	defer prog.Destroy()

	pos, err := ctx.NewVertexBuf(mesh.CubeVertices(1))
	if err != nil {
		log.Fatal(err)
	}
	defer pos.Destroy()
	clr, err := ctx.NewVertexBuf(mesh.FaceColors([mesh.NFace][3]float32{}))
	if err != nil {
		log.Fatal(err)
	}
	defer clr.Destroy()
	idx, err := ctx.NewIndexBuf(mesh.CubeIndices())
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Destroy()

	var world linear.M4
	world.I()
	ctx.SetClearColor(1, 1, 1, 1)
	ctx.Enable(driver.CDepthTest)
	ctx.Clear(driver.MColor | driver.MDepth)
	ctx.SetProgram(prog)
	ctx.SetVertexBuf(prog.Attrib(shader.Position), pos, 3)
	ctx.SetVertexBuf(prog.Attrib(shader.Color), clr, 3)
	ctx.SetIndexBuf(idx)
	ctx.SetUniformM4(prog.Uniform(shader.World), &world)
	ctx.DrawIndexed(idx.Len())
	fmt.Println(idx.Len(), "indices drawn")

	// Output:
	// 36 indices drawn
}
