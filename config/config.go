// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config loads runtime settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/cubes/internal/demo"
	"github.com/gviegas/cubes/internal/logging"
	"github.com/gviegas/cubes/linear"
	"github.com/gviegas/cubes/scene"
)

// Settings holds the configuration of a run.
type Settings struct {
	// Name of the driver, as accepted by driver.Open.
	Driver string `yaml:"driver"`
	// Driver-specific target (surface size, canvas id).
	Target string `yaml:"target"`
	// Frames per second, for drivers without a display.
	Rate int `yaml:"rate"`
	// Number of frames to render; 0 means no limit.
	Frames     int        `yaml:"frames"`
	Background [3]float32 `yaml:"background"`
	Camera     Camera     `yaml:"camera"`
	Log        Log        `yaml:"log"`
	Metrics    Metrics    `yaml:"metrics"`
}

// Camera holds the view and projection parameters.
type Camera struct {
	// Vertical field of view, in degrees.
	FOV    float32    `yaml:"fov"`
	Near   float32    `yaml:"near"`
	Far    float32    `yaml:"far"`
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
	Up     [3]float32 `yaml:"up"`
}

type Log struct {
	Dev   bool   `yaml:"dev"`
	Level string `yaml:"level"`
}

type Metrics struct {
	// Listen address of the metrics server.
	// Empty disables it.
	Addr string `yaml:"addr"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Driver:     "rec",
		Rate:       60,
		Background: demo.Background,
		Camera: Camera{
			FOV:  45,
			Near: 0.1,
			Far:  1000,
			Eye:  [3]float32{0, 0, -10},
			Up:   [3]float32{0, 1, 0},
		},
		Log: Log{Level: "info"},
	}
}

// ErrInvalid means that settings failed validation.
var ErrInvalid = errors.New("config: invalid settings")

// Parse decodes YAML data over the defaults and
// validates the result. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("config: %w", err)
	}
	return s, s.Validate()
}

// Load reads settings from the file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Validate reports every problem found in s.
// Each one wraps ErrInvalid.
func (s *Settings) Validate() (err error) {
	bad := func(format string, args ...any) {
		err = multierr.Append(err, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if s.Driver == "" {
		bad("driver not set")
	}
	if s.Rate <= 0 {
		bad("rate %d not positive", s.Rate)
	}
	if s.Frames < 0 {
		bad("frames %d negative", s.Frames)
	}
	for i, c := range s.Background {
		if !(c >= 0 && c <= 1) {
			bad("background[%d] %v out of [0, 1]", i, c)
		}
	}
	cam := &s.Camera
	if !(cam.FOV > 0 && cam.FOV < 180) {
		bad("camera.fov %v out of (0, 180)", cam.FOV)
	}
	if !(cam.Near > 0) {
		bad("camera.near %v not positive", cam.Near)
	}
	if !(cam.Far > cam.Near) {
		bad("camera.far %v not beyond camera.near %v", cam.Far, cam.Near)
	}
	if cam.Eye == cam.Target {
		bad("camera.eye equals camera.target")
	}
	if cam.Up == ([3]float32{}) {
		bad("camera.up is zero")
	}
	if _, e := logging.ParseLevel(s.Log.Level); e != nil {
		bad("log.level: %v", e)
	}
	return
}

// SceneConfig converts s to a scene configuration that
// logs to log.
func (s *Settings) SceneConfig(log *zap.Logger) scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Background = s.Background
	cfg.FOV = s.Camera.FOV * math.Pi / 180
	cfg.Near = s.Camera.Near
	cfg.Far = s.Camera.Far
	cfg.Eye = linear.V3(s.Camera.Eye)
	cfg.Target = linear.V3(s.Camera.Target)
	cfg.Up = linear.V3(s.Camera.Up)
	if log != nil {
		cfg.Log = log
	}
	return cfg
}
