// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Cubes renders the stock world of spinning cubes on a
// registered driver, optionally exposing Prometheus
// metrics while it runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/gviegas/cubes/config"
	"github.com/gviegas/cubes/driver"
	_ "github.com/gviegas/cubes/driver/rec"
	"github.com/gviegas/cubes/frame"
	"github.com/gviegas/cubes/internal/demo"
	"github.com/gviegas/cubes/internal/logging"
	"github.com/gviegas/cubes/internal/metrics"
	"github.com/gviegas/cubes/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cubes: %s\n", err)
		os.Exit(1)
	}
}

func parseSettings(args []string, stderr io.Writer) (config.Settings, error) {
	fs := flag.NewFlagSet("cubes", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cubes [flags]\n")
		fs.PrintDefaults()
	}
	path := fs.String("config", "", "Path to a YAML settings file")
	drv := fs.String("driver", "", "Name of the driver")
	target := fs.String("target", "", "Driver target (e.g. 640x480)")
	rate := fs.Int("rate", 0, "Frames per second")
	frames := fs.Int("frames", 0, "Number of frames to render (0 means until interrupted)")
	addr := fs.String("metrics", "", "Listen address of the metrics server")
	dev := fs.Bool("dev", false, "Development logging")
	if err := fs.Parse(args); err != nil {
		return config.Settings{}, err
	}

	s := config.Default()
	if *path != "" {
		var err error
		if s, err = config.Load(*path); err != nil {
			return s, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			s.Driver = *drv
		case "target":
			s.Target = *target
		case "rate":
			s.Rate = *rate
		case "frames":
			s.Frames = *frames
		case "metrics":
			s.Metrics.Addr = *addr
		case "dev":
			s.Log.Dev = *dev
		}
	})
	return s, s.Validate()
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	s, err := parseSettings(args, stderr)
	if err != nil {
		return err
	}
	lvl, err := logging.ParseLevel(s.Log.Level)
	if err != nil {
		return err
	}
	log := logging.Init(logging.Options{Dev: s.Log.Dev, Level: lvl, Output: zapcore.AddSync(stderr)})
	defer log.Sync()
	ctx = logging.Context(ctx, log)

	dctx, err := driver.Open(s.Driver, s.Target)
	if err != nil {
		return err
	}
	defer dctx.Driver().Close()
	log.Info("driver opened", zap.String("driver", dctx.Driver().Name()), zap.String("target", s.Target))

	rec := metrics.NewRecorder(prometheus.NewRegistry())
	mlog, mctx := logging.SubFrom(ctx, "metrics")
	meter := frame.NewMeter(func(fps float32) {
		rec.SetFPS(fps)
		mlog.Debug("fps", zap.Float32("fps", fps))
	})
	cfg := s.SceneConfig(log)
	cfg.OnFrame = func(st scene.FrameStats) {
		rec.Observe(st)
		meter.Tick()
	}

	var sc scene.Scene
	if err := sc.Init(dctx, &cfg); err != nil {
		return err
	}
	defer sc.Destroy()
	if err := demo.Populate(&sc); err != nil {
		return err
	}

	var sched frame.Scheduler = frame.NewTicker(s.Rate)
	if s.Frames > 0 {
		sched = frame.Limit(sched, s.Frames)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)
	if s.Metrics.Addr != "" {
		ln, err := net.Listen("tcp", s.Metrics.Addr)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		srv := &http.Server{
			Handler:           metrics.NewRouter(rec),
			ReadHeaderTimeout: 5 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return mctx },
			ErrorLog:          zap.NewStdLog(mlog),
		}
		mlog.Info("serving metrics", zap.Stringer("addr", ln.Addr()))
		g.Go(func() error {
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(sctx)
		})
	}
	g.Go(func() error {
		defer cancel()
		return sc.Run(gctx, sched)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		log.Info("interrupted")
		return nil
	}
	return err
}
