// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/cubes/config"
	"github.com/gviegas/cubes/driver"
)

func TestRunFrames(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), []string{"-frames", "3", "-rate", "1000", "-target", "320x200"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "scene initialized")
	assert.Contains(t, buf.String(), "run finished")
}

func TestRunMetrics(t *testing.T) {
	var buf bytes.Buffer
	err := run(context.Background(), []string{"-frames", "5", "-rate", "500", "-metrics", "127.0.0.1:0"}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "serving metrics")
	assert.Contains(t, buf.String(), `"logger":"metrics"`)
}

func TestRunInterrupted(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	var buf bytes.Buffer
	err := run(ctx, []string{"-rate", "100"}, &buf)
	// A deadline is not an interruption.
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	ctx, cancel = context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	assert.NoError(t, run(ctx, []string{"-rate", "100"}, &buf))
}

func TestRunErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, run(context.Background(), []string{"-driver", "vulkan"}, &buf), driver.ErrNoDriver)
	assert.ErrorIs(t, run(context.Background(), []string{"-target", "big"}, &buf), driver.ErrNoContext)
	assert.ErrorIs(t, run(context.Background(), []string{"-rate", "-1"}, &buf), config.ErrInvalid)
	assert.Error(t, run(context.Background(), []string{"-nope"}, &buf))

	level := filepath.Join(t.TempDir(), "level.yaml")
	require.NoError(t, os.WriteFile(level, []byte("log:\n  level: loud\n"), 0o644))
	assert.ErrorIs(t, run(context.Background(), []string{"-config", level}, &buf), config.ErrInvalid)

	path := filepath.Join(t.TempDir(), "cubes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frames: 2\nrate: 1000\nlog:\n  level: debug\n"), 0o644))
	assert.NoError(t, run(context.Background(), []string{"-config", path}, &buf))
	assert.Error(t, run(context.Background(), []string{"-config", path + ".missing"}, &buf))
}
