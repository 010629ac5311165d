// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package logging sets up the root logger and carries
// loggers in contexts.
package logging

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKeyType string

const loggerKey = loggerKeyType("logger")

// Options configures the root logger.
type Options struct {
	// Development mode: console encoding, debug level
	// and caller annotations.
	Dev bool

	// Minimum level. Ignored when Dev is set.
	Level zapcore.Level

	// Destination. Defaults to os.Stderr.
	Output zapcore.WriteSyncer
}

var (
	mu         sync.Mutex
	rootLogger = zap.NewNop()
)

// New creates a logger from opts.
func New(opts Options) *zap.Logger {
	out := opts.Output
	if out == nil {
		out = zapcore.Lock(os.Stderr)
	}
	var enc zapcore.Encoder
	var lvl zapcore.LevelEnabler
	if opts.Dev {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		lvl = zap.LevelEnablerFunc(func(l zapcore.Level) bool { return l >= zapcore.DebugLevel })
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		lvl = opts.Level
	}
	var zopts []zap.Option
	if opts.Dev {
		zopts = append(zopts, zap.AddCaller(), zap.Development())
	}
	return zap.New(zapcore.NewCore(enc, out, lvl), zopts...)
}

// Init replaces the root logger, and zap's globals,
// with a logger created from opts.
// It returns the new root logger.
func Init(opts Options) *zap.Logger {
	l := New(opts)
	mu.Lock()
	rootLogger = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	l.With(zap.Bool("devmode", opts.Dev)).Debug("Logging initialized")
	return l
}

// Root returns the root logger.
// Before Init it is a no-op logger.
func Root() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return rootLogger
}

// ParseLevel parses a level name such as "info".
// The empty string means info.
func ParseLevel(s string) (zapcore.Level, error) {
	var l zapcore.Level
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// From returns the logger carried by ctx, or the root
// logger if there is none.
func From(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return Root()
}

// SubFrom returns a child of ctx's logger named name,
// and a context carrying it.
func SubFrom(ctx context.Context, name string) (*zap.Logger, context.Context) {
	l := From(ctx).Named(name)
	return l, Context(ctx, l)
}

// Context returns a copy of ctx carrying l.
// A nil l means the root logger.
func Context(ctx context.Context, l *zap.Logger) context.Context {
	if l == nil {
		l = Root()
	}
	return context.WithValue(ctx, loggerKey, l)
}
