// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package scene implements a world of spinning cubes.
//
// A Scene owns a graphics context, one linked program
// and an ordered list of cubes. Every frame it clears
// the surface and draws each cube with a world matrix
// derived from the frame's timestamp.
package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/frame"
	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/shader"
)

// RunState is the state of a Scene's render loop.
type RunState int32

// Run states.
const (
	Stopped RunState = iota
	Running
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	}
	return fmt.Sprintf("RunState(%d)", int32(s))
}

var (
	// ErrNotInitialized means that a Scene was used
	// before a successful call to Init.
	ErrNotInitialized = errors.New("scene: not initialized")

	// ErrInitialized means that Init was called twice.
	ErrInitialized = errors.New("scene: already initialized")

	// ErrRunning means that Run or Frame was called
	// while the scene was already running.
	ErrRunning = errors.New("scene: already running")

	// ErrInput means that the program lacks one of the
	// inputs named in package shader.
	ErrInput = errors.New("scene: program input not found")
)

// Scene is a world of cubes drawn with one program.
// The zero value is ready for Init.
type Scene struct {
	cfg Config
	log *zap.Logger
	ctx driver.Context

	vs, fs driver.Shader
	prog   driver.Program
	pos    int
	color  int
	world  driver.Uniform
	view   linear.M4
	proj   linear.M4

	mu    sync.Mutex
	cubes []*Cube

	// Indexed as cubes. Only the goroutine that runs
	// frames touches bufs.
	bufs   []cubeBufs
	frames uint64
	state  atomic.Int32
}

type cubeBufs struct {
	pos, color, index driver.Buffer
}

// Init prepares s to draw into ctx.
// It sets the clear color and fixed-function state,
// builds the program from cfg's sources, and uploads
// the view and projection transforms.
// A nil cfg means DefaultConfig.
// Any failure is returned and leaves s unusable.
func (s *Scene) Init(ctx driver.Context, cfg *Config) (err error) {
	if s.prog != nil {
		return ErrInitialized
	}
	if ctx == nil {
		return fmt.Errorf("%w: nil context", driver.ErrNoContext)
	}
	if cfg == nil {
		dfl := DefaultConfig()
		cfg = &dfl
	}
	if err = cfg.validate(); err != nil {
		return
	}
	s.cfg = *cfg
	if s.cfg.Log == nil {
		s.cfg.Log = zap.NewNop()
	}
	s.log = s.cfg.Log.Named("scene")
	width, height := ctx.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", driver.ErrNoContext, width, height)
	}
	s.ctx = ctx

	bg := s.cfg.Background
	ctx.SetClearColor(bg[0], bg[1], bg[2], 1)
	ctx.Clear(driver.MColor | driver.MDepth)
	ctx.Enable(driver.CDepthTest)
	ctx.Enable(driver.CCullFace)

	defer func() {
		if err != nil {
			s.release()
		}
	}()
	if s.vs, err = ctx.NewShader(driver.SVertex, s.cfg.Vertex); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if s.fs, err = ctx.NewShader(driver.SFragment, s.cfg.Fragment); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if s.prog, err = ctx.NewProgram(s.vs, s.fs); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	s.log.Info("program linked", zap.String("driver", ctx.Driver().Name()))

	s.pos = s.prog.Attrib(shader.Position)
	s.color = s.prog.Attrib(shader.Color)
	for _, a := range [...]struct {
		name string
		loc  int
	}{{shader.Position, s.pos}, {shader.Color, s.color}} {
		if a.loc < 0 {
			return fmt.Errorf("%w: attribute %s", ErrInput, a.name)
		}
	}
	s.world = s.prog.Uniform(shader.World)
	view := s.prog.Uniform(shader.View)
	proj := s.prog.Uniform(shader.Proj)
	for _, u := range [...]struct {
		name string
		loc  driver.Uniform
	}{{shader.World, s.world}, {shader.View, view}, {shader.Proj, proj}} {
		if u.loc == driver.NoUniform {
			return fmt.Errorf("%w: uniform %s", ErrInput, u.name)
		}
	}

	aspect := float32(width) / float32(height)
	s.proj.Perspective(s.cfg.FOV, aspect, s.cfg.Near, s.cfg.Far)
	s.view.LookAt(&s.cfg.Eye, &s.cfg.Target, &s.cfg.Up)
	var world linear.M4
	world.I()
	ctx.SetProgram(s.prog)
	ctx.SetUniformM4(s.world, &world)
	ctx.SetUniformM4(view, &s.view)
	ctx.SetUniformM4(proj, &s.proj)
	s.log.Info("scene initialized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Float32("aspect", aspect))
	return nil
}

// Add appends c to the list of cubes.
// Cubes are drawn in the order they are added, and
// are never removed. Add may be called while s runs;
// the cube is drawn from the next frame on.
func (s *Scene) Add(c *Cube) error {
	if c == nil {
		return errors.New("scene: nil cube")
	}
	s.mu.Lock()
	s.cubes = append(s.cubes, c)
	s.mu.Unlock()
	return nil
}

// Cubes returns a copy of the list of cubes.
func (s *Scene) Cubes() []*Cube {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Cube(nil), s.cubes...)
}

// View returns the view transform computed by Init.
func (s *Scene) View() linear.M4 { return s.view }

// Projection returns the projection transform computed
// by Init.
func (s *Scene) Projection() linear.M4 { return s.proj }

// Background returns the current clear color.
func (s *Scene) Background() [3]float32 { return s.cfg.Background }

// SetBackground changes the clear color.
// It must not be called while s runs.
func (s *Scene) SetBackground(r, g, b float32) {
	s.cfg.Background = [3]float32{r, g, b}
	if s.ctx != nil {
		s.ctx.SetClearColor(r, g, b, 1)
	}
}

// State returns the state of the render loop.
// It is safe to call from any goroutine.
func (s *Scene) State() RunState { return RunState(s.state.Load()) }

// Frame renders a single frame for timestamp now.
// Vertex data of cubes drawn for the first time is
// uploaded before they are drawn.
// It must not be called while s runs, and returns
// ErrRunning if it is.
func (s *Scene) Frame(now time.Duration) error {
	if s.prog == nil {
		return ErrNotInitialized
	}
	if s.State() == Running {
		return ErrRunning
	}
	return s.frame(now)
}

func (s *Scene) frame(now time.Duration) error {
	start := time.Now()
	s.mu.Lock()
	cubes := s.cubes
	s.mu.Unlock()

	for len(s.bufs) < len(cubes) {
		c := cubes[len(s.bufs)]
		b, err := s.upload(c)
		if err != nil {
			return err
		}
		s.bufs = append(s.bufs, b)
	}

	s.ctx.Clear(driver.MColor | driver.MDepth)
	for i, c := range cubes {
		b := &s.bufs[i]
		s.ctx.SetVertexBuf(s.pos, b.pos, 3)
		s.ctx.SetVertexBuf(s.color, b.color, 3)
		s.ctx.SetIndexBuf(b.index)
		world := c.World(now)
		s.ctx.SetUniformM4(s.world, &world)
		s.ctx.DrawIndexed(len(c.indices))
	}

	st := FrameStats{
		Index:   s.frames,
		Time:    now,
		Draws:   len(cubes),
		Elapsed: time.Since(start),
	}
	s.frames++
	if ce := s.log.Check(zap.DebugLevel, "frame"); ce != nil {
		ce.Write(zap.Uint64("index", st.Index),
			zap.Duration("time", st.Time),
			zap.Int("draws", st.Draws))
	}
	if s.cfg.OnFrame != nil {
		s.cfg.OnFrame(st)
	}
	return nil
}

func (s *Scene) upload(c *Cube) (b cubeBufs, err error) {
	if b.pos, err = s.ctx.NewVertexBuf(c.vertices); err != nil {
		return b, fmt.Errorf("scene: vertex buffer: %w", err)
	}
	if b.color, err = s.ctx.NewVertexBuf(c.colors); err != nil {
		b.pos.Destroy()
		return b, fmt.Errorf("scene: color buffer: %w", err)
	}
	if b.index, err = s.ctx.NewIndexBuf(c.indices); err != nil {
		b.pos.Destroy()
		b.color.Destroy()
		return b, fmt.Errorf("scene: index buffer: %w", err)
	}
	return b, nil
}

// Run renders one frame per tick of sched until ctx is
// done, sched runs out of frames or a frame fails.
// It returns nil if sched ran out of frames and
// ctx.Err() if ctx was done.
// Only one call to Run can be active at a time.
func (s *Scene) Run(ctx context.Context, sched frame.Scheduler) error {
	if s.prog == nil {
		return ErrNotInitialized
	}
	if !s.state.CompareAndSwap(int32(Stopped), int32(Running)) {
		return ErrRunning
	}
	defer s.state.Store(int32(Stopped))
	s.log.Info("run started", zap.Int("cubes", len(s.Cubes())))
	for {
		if err := ctx.Err(); err != nil {
			s.log.Info("run stopped", zap.Error(err))
			return err
		}
		now, err := sched.Next(ctx)
		switch {
		case errors.Is(err, frame.ErrDone):
			s.log.Info("run finished", zap.Uint64("frames", s.frames))
			return nil
		case err != nil:
			s.log.Info("run stopped", zap.Error(err))
			return err
		}
		if err := s.frame(now); err != nil {
			s.log.Error("frame failed", zap.Error(err))
			return err
		}
	}
}

// Destroy releases every resource that s created in
// its context. It must not be called while s runs.
// s can be initialized again afterwards.
func (s *Scene) Destroy() {
	s.release()
	s.ctx = nil
	s.frames = 0
}

func (s *Scene) release() {
	for _, b := range s.bufs {
		b.pos.Destroy()
		b.color.Destroy()
		b.index.Destroy()
	}
	s.bufs = nil
	for _, d := range [...]driver.Destroyer{s.prog, s.vs, s.fs} {
		if d != nil {
			d.Destroy()
		}
	}
	s.prog, s.vs, s.fs = nil, nil, nil
}
