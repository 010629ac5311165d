// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package rec

import (
	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/linear"
)

// shader implements driver.Shader.
type shader struct {
	ctx      *Context
	handle   int
	stage    driver.Stage
	attribs  []string
	uniforms []string
}

// Stage implements driver.Shader.
func (s *shader) Stage() driver.Stage { return s.stage }

// Destroy implements driver.Destroyer.
func (s *shader) Destroy() {
	if s.ctx.shaderLive(s) {
		s.ctx.shaders.remove(s.handle)
	}
}

// program implements driver.Program.
type program struct {
	ctx      *Context
	handle   int
	attribs  map[string]int
	uniforms map[string]driver.Uniform
	names    []string
	values   map[driver.Uniform]linear.M4
}

// Attrib implements driver.Program.
func (p *program) Attrib(name string) int {
	if i, ok := p.attribs[name]; ok {
		return i
	}
	return -1
}

// Uniform implements driver.Program.
func (p *program) Uniform(name string) driver.Uniform {
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	return driver.NoUniform
}

// Destroy implements driver.Destroyer.
func (p *program) Destroy() {
	if !p.ctx.progLive(p) {
		return
	}
	p.ctx.progs.remove(p.handle)
	if p.ctx.prog == p {
		p.ctx.prog = nil
	}
}

// buffer implements driver.Buffer.
type buffer struct {
	ctx     *Context
	handle  int
	index   bool
	floats  []float32
	indices []uint16
}

// Len implements driver.Buffer.
func (b *buffer) Len() int {
	if b.index {
		return len(b.indices)
	}
	return len(b.floats)
}

// Destroy implements driver.Destroyer.
func (b *buffer) Destroy() {
	if b.ctx.bufLive(b) {
		b.ctx.bufs.remove(b.handle)
	}
}

// Handles are reused, so liveness also checks identity.

func (c *Context) shaderLive(s *shader) bool {
	x, ok := c.shaders.get(s.handle)
	return ok && x == s
}

func (c *Context) progLive(p *program) bool {
	x, ok := c.progs.get(p.handle)
	return ok && x == p
}

func (c *Context) bufLive(b *buffer) bool {
	x, ok := c.bufs.get(b.handle)
	return ok && x == b
}
