// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build js && wasm

package webgl

import (
	"errors"
	"fmt"
	"syscall/js"
	"unsafe"

	"go.uber.org/zap"

	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/linear"
)

// Name is the name under which the driver registers.
const Name = "webgl"

// DefaultCanvas is the canvas used for an empty target.
const DefaultCanvas = "canvas_cube"

// Driver implements driver.Driver.
type Driver struct{}

func init() { driver.Register(drv) }

var drv = &Driver{}

// Open implements driver.Driver.
func (d *Driver) Open(target string) (driver.Context, error) {
	if target == "" {
		target = DefaultCanvas
	}
	doc := js.Global().Get("document")
	if !doc.Truthy() {
		return nil, fmt.Errorf("%w: webgl: no document", driver.ErrNoContext)
	}
	canvas := doc.Call("getElementById", target)
	if !canvas.Truthy() {
		return nil, fmt.Errorf("%w: webgl: no element %q", driver.ErrNoContext, target)
	}
	gl := canvas.Call("getContext", "webgl")
	if !gl.Truthy() {
		return nil, fmt.Errorf("%w: webgl: not supported", driver.ErrNoContext)
	}
	c := &Context{canvas: canvas, gl: gl, log: zap.L().Named("webgl")}
	c.loadConsts()
	return c, nil
}

// Name returns Name.
func (d *Driver) Name() string { return Name }

// Close is a no-op.
func (d *Driver) Close() {}

type consts struct {
	vertexShader, fragmentShader    js.Value
	compileStatus                   js.Value
	linkStatus, validateStatus      js.Value
	arrayBuffer, elementArrayBuffer js.Value
	staticDraw                      js.Value
	float, unsignedShort, triangles js.Value
	colorBit, depthBit              int
	depthTest, cullFace             js.Value
}

// Context implements driver.Context.
type Context struct {
	canvas js.Value
	gl     js.Value
	log    *zap.Logger
	k      consts
	prog   *program
}

func (c *Context) loadConsts() {
	g := c.gl
	c.k = consts{
		vertexShader:       g.Get("VERTEX_SHADER"),
		fragmentShader:     g.Get("FRAGMENT_SHADER"),
		compileStatus:      g.Get("COMPILE_STATUS"),
		linkStatus:         g.Get("LINK_STATUS"),
		validateStatus:     g.Get("VALIDATE_STATUS"),
		arrayBuffer:        g.Get("ARRAY_BUFFER"),
		elementArrayBuffer: g.Get("ELEMENT_ARRAY_BUFFER"),
		staticDraw:         g.Get("STATIC_DRAW"),
		float:              g.Get("FLOAT"),
		unsignedShort:      g.Get("UNSIGNED_SHORT"),
		triangles:          g.Get("TRIANGLES"),
		colorBit:           g.Get("COLOR_BUFFER_BIT").Int(),
		depthBit:           g.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:          g.Get("DEPTH_TEST"),
		cullFace:           g.Get("CULL_FACE"),
	}
}

// Driver implements driver.Context.
func (c *Context) Driver() driver.Driver { return drv }

// Size implements driver.Context.
// It reports the canvas' drawing buffer size.
func (c *Context) Size() (int, int) {
	return c.canvas.Get("width").Int(), c.canvas.Get("height").Int()
}

// SetClearColor implements driver.Context.
func (c *Context) SetClearColor(r, g, b, a float32) { c.gl.Call("clearColor", r, g, b, a) }

// Enable implements driver.Context.
func (c *Context) Enable(cp driver.Cap) {
	switch cp {
	case driver.CDepthTest:
		c.gl.Call("enable", c.k.depthTest)
	case driver.CCullFace:
		c.gl.Call("enable", c.k.cullFace)
	}
}

// Clear implements driver.Context.
func (c *Context) Clear(m driver.Mask) {
	var bits int
	if m&driver.MColor != 0 {
		bits |= c.k.colorBit
	}
	if m&driver.MDepth != 0 {
		bits |= c.k.depthBit
	}
	c.gl.Call("clear", bits)
}

// NewShader implements driver.Context.
func (c *Context) NewShader(stage driver.Stage, source string) (driver.Shader, error) {
	typ := c.k.vertexShader
	if stage == driver.SFragment {
		typ = c.k.fragmentShader
	}
	sh := c.gl.Call("createShader", typ)
	c.gl.Call("shaderSource", sh, source)
	c.gl.Call("compileShader", sh)
	if !c.gl.Call("getShaderParameter", sh, c.k.compileStatus).Bool() {
		info := c.gl.Call("getShaderInfoLog", sh).String()
		c.gl.Call("deleteShader", sh)
		return nil, fmt.Errorf("%w: %s stage: %s", driver.ErrCompile, stage, info)
	}
	return &shader{ctx: c, stage: stage, v: sh}, nil
}

// NewProgram implements driver.Context.
func (c *Context) NewProgram(vert, frag driver.Shader) (driver.Program, error) {
	vs, ok1 := vert.(*shader)
	fs, ok2 := frag.(*shader)
	if !ok1 || !ok2 || !vs.v.Truthy() || !fs.v.Truthy() {
		return nil, fmt.Errorf("%w: %w", driver.ErrLink, driver.ErrDestroyed)
	}
	p := c.gl.Call("createProgram")
	c.gl.Call("attachShader", p, vs.v)
	c.gl.Call("attachShader", p, fs.v)
	c.gl.Call("linkProgram", p)
	if !c.gl.Call("getProgramParameter", p, c.k.linkStatus).Bool() {
		info := c.gl.Call("getProgramInfoLog", p).String()
		c.gl.Call("deleteProgram", p)
		return nil, fmt.Errorf("%w: link: %s", driver.ErrLink, info)
	}
	c.gl.Call("validateProgram", p)
	if !c.gl.Call("getProgramParameter", p, c.k.validateStatus).Bool() {
		info := c.gl.Call("getProgramInfoLog", p).String()
		c.gl.Call("deleteProgram", p)
		return nil, fmt.Errorf("%w: validate: %s", driver.ErrLink, info)
	}
	return &program{ctx: c, v: p, uniforms: make(map[string]driver.Uniform)}, nil
}

// SetProgram implements driver.Context.
func (c *Context) SetProgram(p driver.Program) {
	x, ok := p.(*program)
	if !ok || !x.v.Truthy() {
		c.log.Warn("SetProgram: invalid program")
		return
	}
	c.gl.Call("useProgram", x.v)
	c.prog = x
}

// NewVertexBuf implements driver.Context.
func (c *Context) NewVertexBuf(data []float32) (driver.Buffer, error) {
	arr := float32Array(data)
	return c.newBuffer(c.k.arrayBuffer, arr, len(data))
}

// NewIndexBuf implements driver.Context.
func (c *Context) NewIndexBuf(data []uint16) (driver.Buffer, error) {
	arr := uint16Array(data)
	return c.newBuffer(c.k.elementArrayBuffer, arr, len(data))
}

func (c *Context) newBuffer(target, arr js.Value, n int) (driver.Buffer, error) {
	b := c.gl.Call("createBuffer")
	if !b.Truthy() {
		return nil, errors.New("webgl: createBuffer failed")
	}
	c.gl.Call("bindBuffer", target, b)
	c.gl.Call("bufferData", target, arr, c.k.staticDraw)
	return &buffer{ctx: c, v: b, n: n}, nil
}

// SetVertexBuf implements driver.Context.
func (c *Context) SetVertexBuf(attr int, buf driver.Buffer, comps int) {
	b, ok := buf.(*buffer)
	if !ok || !b.v.Truthy() || attr < 0 {
		c.log.Warn("SetVertexBuf: invalid binding", zap.Int("attr", attr))
		return
	}
	c.gl.Call("bindBuffer", c.k.arrayBuffer, b.v)
	c.gl.Call("vertexAttribPointer", attr, comps, c.k.float, false, 0, 0)
	c.gl.Call("enableVertexAttribArray", attr)
}

// SetIndexBuf implements driver.Context.
func (c *Context) SetIndexBuf(buf driver.Buffer) {
	b, ok := buf.(*buffer)
	if !ok || !b.v.Truthy() {
		c.log.Warn("SetIndexBuf: invalid buffer")
		return
	}
	c.gl.Call("bindBuffer", c.k.elementArrayBuffer, b.v)
}

// SetUniformM4 implements driver.Context.
func (c *Context) SetUniformM4(u driver.Uniform, m *linear.M4) {
	if u == driver.NoUniform || c.prog == nil || int(u) >= len(c.prog.locs) {
		return
	}
	c.gl.Call("uniformMatrix4fv", c.prog.locs[u], false, float32Array(unsafe.Slice(&m[0][0], 16)))
}

// DrawIndexed implements driver.Context.
func (c *Context) DrawIndexed(count int) {
	c.gl.Call("drawElements", c.k.triangles, count, c.k.unsignedShort, 0)
}

func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4)
	js.CopyBytesToJS(js.Global().Get("Uint8Array").New(arr.Get("buffer")), b)
	return arr
}

func uint16Array(data []uint16) js.Value {
	arr := js.Global().Get("Uint16Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*2)
	js.CopyBytesToJS(js.Global().Get("Uint8Array").New(arr.Get("buffer")), b)
	return arr
}

type shader struct {
	ctx   *Context
	stage driver.Stage
	v     js.Value
}

func (s *shader) Stage() driver.Stage { return s.stage }

func (s *shader) Destroy() {
	if s.v.Truthy() {
		s.ctx.gl.Call("deleteShader", s.v)
		s.v = js.Null()
	}
}

type program struct {
	ctx      *Context
	v        js.Value
	uniforms map[string]driver.Uniform
	locs     []js.Value
}

func (p *program) Attrib(name string) int {
	return p.ctx.gl.Call("getAttribLocation", p.v, name).Int()
}

func (p *program) Uniform(name string) driver.Uniform {
	if u, ok := p.uniforms[name]; ok {
		return u
	}
	loc := p.ctx.gl.Call("getUniformLocation", p.v, name)
	if !loc.Truthy() {
		return driver.NoUniform
	}
	u := driver.Uniform(len(p.locs))
	p.locs = append(p.locs, loc)
	p.uniforms[name] = u
	return u
}

func (p *program) Destroy() {
	if !p.v.Truthy() {
		return
	}
	if p.ctx.prog == p {
		p.ctx.prog = nil
	}
	p.ctx.gl.Call("deleteProgram", p.v)
	p.v = js.Null()
}

type buffer struct {
	ctx *Context
	v   js.Value
	n   int
}

func (b *buffer) Len() int { return b.n }

func (b *buffer) Destroy() {
	if b.v.Truthy() {
		b.ctx.gl.Call("deleteBuffer", b.v)
		b.v = js.Null()
	}
}
