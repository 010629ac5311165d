// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gviegas/cubes/driver/rec"
	"github.com/gviegas/cubes/mesh"
	"github.com/gviegas/cubes/scene"
)

func TestColors(t *testing.T) {
	c := Colors()
	for i, x := range c {
		assert.Len(t, x, mesh.NVertex*3, "set %d", i)
		assert.NoError(t, mesh.Check(mesh.CubeVertices(1), x), "set %d", i)
	}
	base := mesh.FaceColors(Palette)
	assert.Equal(t, base, c[0])
	assert.Equal(t, float32(1), c[1][6])
	assert.Equal(t, base[7], c[1][7])
	assert.Equal(t, float32(0.75), c[2][4])
	assert.Equal(t, base[5], c[2][5])
	assert.Equal(t, float32(0.75), c[3][5])
	assert.Equal(t, base[3], c[3][3])

	// Sets are independent.
	c[0][0] = 42
	assert.NotEqual(t, float32(42), Colors()[0][0])
}

func TestPopulate(t *testing.T) {
	ctx, err := rec.New(rec.Options{Width: 800, Height: 600, Log: zap.NewNop()})
	require.NoError(t, err)
	cfg := scene.DefaultConfig()
	cfg.Background = Background
	var s scene.Scene
	require.NoError(t, s.Init(ctx, &cfg))
	defer s.Destroy()
	require.NoError(t, Populate(&s))

	cubes := s.Cubes()
	require.Len(t, cubes, 4)
	want := []struct{ size, speed float32 }{{1, 3}, {1, 1}, {2, 0.5}, {2.5, 0.8}}
	for i, c := range cubes {
		assert.Equal(t, want[i].size, c.Size())
		assert.Equal(t, want[i].speed, c.Speed())
	}
	require.NoError(t, s.Frame(0))
	assert.NoError(t, ctx.Err())
	assert.Len(t, ctx.Draws(), 4)
}
