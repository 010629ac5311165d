// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/shader"
)

// Config is used to configure a Scene.
type Config struct {
	// Background (clear) color, in RGB.
	//
	// Default is white.
	Background [3]float32

	// Vertical field of view, in radians.
	//
	// Default is π/4 (45°).
	FOV float32

	// Distance of the near and far clip planes.
	//
	// Defaults are 0.1 and 1000.
	Near, Far float32

	// Camera placement. The camera looks from Eye
	// towards Target, with Up as the up direction.
	//
	// Defaults are (0, 0, -10), the origin and +Y.
	Eye, Target, Up linear.V3

	// Source of the vertex and fragment stages.
	// The program must declare the inputs named in
	// package shader.
	//
	// Defaults are shader.Vertex and shader.Fragment.
	Vertex, Fragment string

	// Logger used by the scene.
	//
	// Default is a no-op logger.
	Log *zap.Logger

	// OnFrame, if not nil, is called at the end of
	// every frame, from the goroutine running the
	// scene.
	OnFrame func(FrameStats)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Background: [3]float32{1, 1, 1},
		FOV:        math.Pi / 4,
		Near:       0.1,
		Far:        1000,
		Eye:        linear.V3{0, 0, -10},
		Up:         linear.V3{0, 1, 0},
		Vertex:     shader.Vertex,
		Fragment:   shader.Fragment,
		Log:        zap.NewNop(),
	}
}

// ErrConfig means that a Config is invalid.
var ErrConfig = errors.New("scene: invalid configuration")

// validate checks that c describes a usable camera.
func (c *Config) validate() error {
	var dir, side linear.V3
	dir.Sub(&c.Target, &c.Eye)
	side.Cross(&c.Up, &dir)
	switch {
	case !(c.FOV > 0 && c.FOV < math.Pi):
		return fmt.Errorf("%w: FOV %v out of (0, π)", ErrConfig, c.FOV)
	case !(c.Near > 0):
		return fmt.Errorf("%w: near plane %v not positive", ErrConfig, c.Near)
	case !(c.Far > c.Near):
		return fmt.Errorf("%w: far plane %v not beyond near plane %v", ErrConfig, c.Far, c.Near)
	case dir == (linear.V3{}):
		return fmt.Errorf("%w: eye and target coincide", ErrConfig)
	case side == (linear.V3{}):
		return fmt.Errorf("%w: up is parallel to the view direction", ErrConfig)
	}
	return nil
}

// FrameStats describes a completed frame.
type FrameStats struct {
	// Index of the frame, starting at 0.
	Index uint64
	// Timestamp the frame was rendered for.
	Time time.Duration
	// Number of draw calls submitted.
	Draws int
	// Time spent building the frame.
	Elapsed time.Duration
}
