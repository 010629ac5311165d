// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package rec implements a software driver that validates
// and records every command it receives.
// It draws nothing. Its purpose is to run scenes headless
// and to let tests inspect what was submitted.
package rec

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/linear"
)

// Name is the name under which the driver registers.
const Name = "rec"

// Default surface size, used when Open is given an
// empty target.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Driver implements driver.Driver.
type Driver struct{}

func init() { driver.Register(drv) }

var drv = &Driver{}

// Open creates a new context.
// target is either empty or of the form "WIDTHxHEIGHT".
func (d *Driver) Open(target string) (driver.Context, error) {
	opts := Options{Width: DefaultWidth, Height: DefaultHeight}
	if target != "" {
		var w, h int
		if _, err := fmt.Sscanf(target, "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("%w: rec: bad target %q", driver.ErrNoContext, target)
		}
		opts.Width, opts.Height = w, h
	}
	ctx, err := New(opts)
	if err != nil {
		return nil, err
	}
	return ctx, nil
}

// Name returns Name.
func (d *Driver) Name() string { return Name }

// Close is a no-op.
func (d *Driver) Close() {}

// Options configures a Context.
type Options struct {
	// Size of the drawing surface.
	Width, Height int

	// Fail shader compilation for these stages.
	FailCompile []driver.Stage

	// Fail program linking.
	FailLink bool

	// Log receives validation errors.
	// Defaults to zap.L().
	Log *zap.Logger
}

// Context implements driver.Context.
type Context struct {
	opts Options
	log  *zap.Logger

	clear   [4]float32
	caps    map[driver.Cap]bool
	shaders table[*shader]
	progs   table[*program]
	bufs    table[*buffer]

	prog    *program
	attribs map[int]binding
	index   *buffer

	cmds []Cmd
	err  error
}

type binding struct {
	buf   *buffer
	comps int
}

// New creates a new Context.
// It fails with driver.ErrNoContext if the surface
// size is not positive.
func New(opts Options) (*Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: rec: invalid size %dx%d", driver.ErrNoContext, opts.Width, opts.Height)
	}
	log := opts.Log
	if log == nil {
		log = zap.L()
	}
	return &Context{
		opts:    opts,
		log:     log.Named("rec"),
		caps:    make(map[driver.Cap]bool),
		attribs: make(map[int]binding),
	}, nil
}

// fail records a validation error.
func (c *Context) fail(format string, args ...any) {
	err := fmt.Errorf("rec: "+format, args...)
	c.log.Warn("invalid command", zap.Error(err))
	c.err = multierr.Append(c.err, err)
}

func (c *Context) record(cmd Cmd) { c.cmds = append(c.cmds, cmd) }

// Driver implements driver.Context.
func (c *Context) Driver() driver.Driver { return drv }

// Size implements driver.Context.
func (c *Context) Size() (int, int) { return c.opts.Width, c.opts.Height }

// SetClearColor implements driver.Context.
func (c *Context) SetClearColor(r, g, b, a float32) {
	c.clear = [4]float32{r, g, b, a}
	c.record(Cmd{Op: OpClearColor, Color: c.clear})
}

// Enable implements driver.Context.
func (c *Context) Enable(cp driver.Cap) {
	c.caps[cp] = true
	c.record(Cmd{Op: OpEnable, Cap: cp})
}

// Clear implements driver.Context.
func (c *Context) Clear(m driver.Mask) {
	c.record(Cmd{Op: OpClear, Mask: m, Color: c.clear})
}

var (
	attribRE  = regexp.MustCompile(`(?m)^\s*(?:attribute|in)\s+\w+\s+(\w+)\s*;`)
	uniformRE = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

// NewShader implements driver.Context.
func (c *Context) NewShader(stage driver.Stage, source string) (driver.Shader, error) {
	for _, s := range c.opts.FailCompile {
		if s == stage {
			return nil, fmt.Errorf("%w: %s stage: rejected", driver.ErrCompile, stage)
		}
	}
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: %s stage: empty source", driver.ErrCompile, stage)
	}
	if !strings.Contains(source, "main(") {
		return nil, fmt.Errorf("%w: %s stage: missing main", driver.ErrCompile, stage)
	}
	s := &shader{ctx: c, stage: stage}
	if stage == driver.SVertex {
		for _, m := range attribRE.FindAllStringSubmatch(source, -1) {
			s.attribs = append(s.attribs, m[1])
		}
	}
	for _, m := range uniformRE.FindAllStringSubmatch(source, -1) {
		s.uniforms = append(s.uniforms, m[1])
	}
	s.handle = c.shaders.insert(s)
	return s, nil
}

// NewProgram implements driver.Context.
func (c *Context) NewProgram(vert, frag driver.Shader) (driver.Program, error) {
	vs, ok1 := c.liveShader(vert)
	fs, ok2 := c.liveShader(frag)
	switch {
	case !ok1 || !ok2:
		return nil, fmt.Errorf("%w: %w", driver.ErrLink, driver.ErrDestroyed)
	case vs.stage != driver.SVertex || fs.stage != driver.SFragment:
		return nil, fmt.Errorf("%w: stage mismatch (%s, %s)", driver.ErrLink, vs.stage, fs.stage)
	case c.opts.FailLink:
		return nil, fmt.Errorf("%w: rejected", driver.ErrLink)
	}
	p := &program{
		ctx:      c,
		attribs:  make(map[string]int),
		uniforms: make(map[string]driver.Uniform),
		values:   make(map[driver.Uniform]linear.M4),
	}
	for i, name := range vs.attribs {
		p.attribs[name] = i
	}
	for _, names := range [2][]string{vs.uniforms, fs.uniforms} {
		for _, name := range names {
			if _, ok := p.uniforms[name]; !ok {
				p.uniforms[name] = driver.Uniform(len(p.names))
				p.names = append(p.names, name)
			}
		}
	}
	p.handle = c.progs.insert(p)
	return p, nil
}

func (c *Context) liveShader(s driver.Shader) (*shader, bool) {
	x, ok := s.(*shader)
	if !ok || x.ctx != c {
		return nil, false
	}
	return x, c.shaderLive(x)
}

// SetProgram implements driver.Context.
func (c *Context) SetProgram(p driver.Program) {
	x, ok := p.(*program)
	if !ok || x.ctx != c {
		c.fail("SetProgram: foreign program")
		return
	}
	if !c.progLive(x) {
		c.fail("SetProgram: %w", driver.ErrDestroyed)
		return
	}
	c.prog = x
	c.record(Cmd{Op: OpSetProgram, Handle: x.handle})
}

// NewVertexBuf implements driver.Context.
func (c *Context) NewVertexBuf(data []float32) (driver.Buffer, error) {
	b := &buffer{ctx: c, floats: append([]float32(nil), data...)}
	b.handle = c.bufs.insert(b)
	return b, nil
}

// NewIndexBuf implements driver.Context.
func (c *Context) NewIndexBuf(data []uint16) (driver.Buffer, error) {
	b := &buffer{ctx: c, index: true, indices: append([]uint16(nil), data...)}
	b.handle = c.bufs.insert(b)
	return b, nil
}

func (c *Context) liveBuffer(b driver.Buffer) (*buffer, error) {
	x, ok := b.(*buffer)
	if !ok || x.ctx != c {
		return nil, errors.New("foreign buffer")
	}
	if !c.bufLive(x) {
		return nil, driver.ErrDestroyed
	}
	return x, nil
}

// SetVertexBuf implements driver.Context.
func (c *Context) SetVertexBuf(attr int, buf driver.Buffer, comps int) {
	b, err := c.liveBuffer(buf)
	switch {
	case err != nil:
		c.fail("SetVertexBuf: %w", err)
		return
	case b.index:
		c.fail("SetVertexBuf: index buffer bound as vertex data")
		return
	case attr < 0:
		c.fail("SetVertexBuf: invalid attribute location %d", attr)
		return
	case comps < 1 || comps > 4:
		c.fail("SetVertexBuf: invalid component count %d", comps)
		return
	}
	c.attribs[attr] = binding{b, comps}
	c.record(Cmd{Op: OpVertexBuf, Handle: b.handle, Attrib: attr, Comps: comps})
}

// SetIndexBuf implements driver.Context.
func (c *Context) SetIndexBuf(buf driver.Buffer) {
	b, err := c.liveBuffer(buf)
	switch {
	case err != nil:
		c.fail("SetIndexBuf: %w", err)
		return
	case !b.index:
		c.fail("SetIndexBuf: vertex buffer bound as index data")
		return
	}
	c.index = b
	c.record(Cmd{Op: OpIndexBuf, Handle: b.handle})
}

// SetUniformM4 implements driver.Context.
// As in GL, setting NoUniform is silently ignored.
func (c *Context) SetUniformM4(u driver.Uniform, m *linear.M4) {
	if u == driver.NoUniform {
		return
	}
	if c.prog == nil {
		c.fail("SetUniformM4: no current program")
		return
	}
	if u < 0 || int(u) >= len(c.prog.names) {
		c.fail("SetUniformM4: invalid location %d", u)
		return
	}
	c.prog.values[u] = *m
	c.record(Cmd{Op: OpUniform, Handle: c.prog.handle, Name: c.prog.names[u], Matrix: *m})
}

// DrawIndexed implements driver.Context.
func (c *Context) DrawIndexed(count int) {
	p := c.prog
	if p == nil {
		c.fail("DrawIndexed: no current program")
		return
	}
	if !c.progLive(p) {
		c.fail("DrawIndexed: program: %w", driver.ErrDestroyed)
		return
	}
	if c.index == nil {
		c.fail("DrawIndexed: no index buffer")
		return
	}
	if !c.bufLive(c.index) {
		c.fail("DrawIndexed: index buffer: %w", driver.ErrDestroyed)
		return
	}
	if count < 0 || count > len(c.index.indices) {
		c.fail("DrawIndexed: count %d exceeds index buffer length %d", count, len(c.index.indices))
		return
	}
	nvert := -1
	for name, loc := range p.attribs {
		b, ok := c.attribs[loc]
		if !ok {
			c.fail("DrawIndexed: attribute %q has no buffer", name)
			return
		}
		if !c.bufLive(b.buf) {
			c.fail("DrawIndexed: attribute %q: %w", name, driver.ErrDestroyed)
			return
		}
		if n := len(b.buf.floats) / b.comps; nvert < 0 || n < nvert {
			nvert = n
		}
	}
	if nvert >= 0 {
		for _, i := range c.index.indices[:count] {
			if int(i) >= nvert {
				c.fail("DrawIndexed: index %d out of range [0, %d)", i, nvert)
				return
			}
		}
	}
	unif := make(map[string]linear.M4, len(p.values))
	for u, m := range p.values {
		unif[p.names[u]] = m
	}
	c.record(Cmd{Op: OpDraw, Handle: p.handle, Count: count, Uniforms: unif})
}

// Cmds returns the recorded commands.
// The slice aliases c's log and must not be mutated.
func (c *Context) Cmds() []Cmd { return c.cmds }

// Draws returns the recorded draw commands.
func (c *Context) Draws() (d []Cmd) {
	for _, cmd := range c.cmds {
		if cmd.Op == OpDraw {
			d = append(d, cmd)
		}
	}
	return
}

// Err returns all validation errors recorded since the
// last call to Reset, combined with multierr.
func (c *Context) Err() error { return c.err }

// Reset discards recorded commands and errors.
// Resources and bound state are kept.
func (c *Context) Reset() {
	c.cmds = nil
	c.err = nil
}

// Enabled returns whether cp was enabled.
func (c *Context) Enabled(cp driver.Cap) bool { return c.caps[cp] }

// ClearColor returns the current clear color.
func (c *Context) ClearColor() [4]float32 { return c.clear }

// Live returns the number of live resources of each kind.
func (c *Context) Live() (shaders, programs, buffers int) {
	return c.shaders.len(), c.progs.len(), c.bufs.len()
}
