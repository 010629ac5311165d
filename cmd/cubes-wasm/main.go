// Copyright 2023 Gustavo C. Viegas. All rights reserved.

//go:build js && wasm

// Cubes-wasm renders the stock world of spinning cubes
// into a canvas element of the hosting page.
package main

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gviegas/cubes/config"
	"github.com/gviegas/cubes/driver"
	"github.com/gviegas/cubes/driver/webgl"
	"github.com/gviegas/cubes/frame"
	"github.com/gviegas/cubes/internal/demo"
	"github.com/gviegas/cubes/internal/logging"
	"github.com/gviegas/cubes/scene"
)

func main() {
	log := logging.Init(logging.Options{Dev: true, Output: zapcore.Lock(os.Stdout)})
	s := config.Default()
	s.Driver = webgl.Name
	s.Target = webgl.DefaultCanvas

	dctx, err := driver.Open(s.Driver, s.Target)
	if err != nil {
		log.Fatal("cannot open driver", zap.Error(err))
	}
	cfg := s.SceneConfig(log)
	meter := frame.NewMeter(func(fps float32) { log.Info("fps", zap.Float32("fps", fps)) })
	cfg.OnFrame = func(scene.FrameStats) { meter.Tick() }

	var sc scene.Scene
	if err := sc.Init(dctx, &cfg); err != nil {
		log.Fatal("cannot initialize scene", zap.Error(err))
	}
	defer sc.Destroy()
	if err := demo.Populate(&sc); err != nil {
		log.Fatal("cannot populate scene", zap.Error(err))
	}

	raf := frame.NewRAF()
	defer raf.Release()
	if err := sc.Run(context.Background(), raf); err != nil {
		log.Error("run stopped", zap.Error(err))
	}
}
