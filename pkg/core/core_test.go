package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/widgetkit/pkg/config"
)

func TestArenaGenerations(t *testing.T) {
	var a Arena
	h1 := a.Insert("first")
	assert.True(t, a.Valid(h1))
	v, ok := a.Get(h1)
	require.True(t, ok)
	assert.Equal(t, "first", v)

	assert.True(t, a.Release(h1))
	assert.False(t, a.Valid(h1))
	assert.False(t, a.Release(h1), "double release")

	h2 := a.Insert("second")
	assert.Equal(t, h1.index, h2.index, "slot reused")
	assert.False(t, a.Valid(h1), "stale handle does not resolve to the new value")
	_, ok = a.Get(h1)
	assert.False(t, ok)
	assert.Equal(t, 1, a.Len())
}

func TestArenaZeroHandle(t *testing.T) {
	var a Arena
	var h Handle
	assert.True(t, h.IsZero())
	assert.False(t, a.Valid(h))
	a.Insert(1)
	assert.False(t, a.Valid(h))
}

func TestNewContextDefaults(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultScale, ctx.Scale())
	assert.True(t, ctx.Registry.Initialized())
	assert.NotNil(t, ctx.Registry.Root())

	require.NoError(t, ctx.Shutdown())
	assert.True(t, ctx.Closed())
	assert.False(t, ctx.Registry.Initialized())
	assert.ErrorIs(t, ctx.Shutdown(), ErrClosed)
}

func TestNewContextEnv(t *testing.T) {
	ctx, err := NewContext(WithEnv(func(k string) (string, bool) {
		switch k {
		case config.EnvHighDPI:
			return "2", true
		case config.EnvReportClasses:
			return "true", true
		}
		return "", false
	}))
	require.NoError(t, err)
	assert.Equal(t, 2.0, ctx.Scale())
	assert.True(t, ctx.Reports().Classes)
	assert.True(t, ctx.Registry.Report)
}

func TestWithScale(t *testing.T) {
	ctx, err := NewContext(WithConfig(config.Default()), WithScale(0.1))
	require.NoError(t, err)
	assert.Equal(t, config.MinScale, ctx.Scale())
	assert.Equal(t, 1, ctx.ScaledSize(1))
	assert.Equal(t, 5, ctx.ScaledSize(10))
}

func TestFontWithoutProvider(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	_, err = ctx.Font("default", 12, false, false)
	assert.Error(t, err)
}
