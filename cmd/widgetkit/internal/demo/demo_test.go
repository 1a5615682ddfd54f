package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/widgetkit/cmd/widgetkit/internal/demo"
	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/graphics"
	wktest "github.com/go-drift/widgetkit/pkg/testing"
)

func newScene(t *testing.T) (*demo.Scene, *wktest.Recorder) {
	t.Helper()
	fonts := wktest.NewFonts()
	ctx, err := core.NewContext(core.WithFonts(fonts, fonts))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Shutdown() })
	s, err := demo.Build(ctx)
	require.NoError(t, err)
	return s, wktest.NewRecorder()
}

func center(r graphics.Rect) (int, int) { return r.X + r.W/2, r.Y + r.H/2 }

func TestBuild_Layout(t *testing.T) {
	s, _ := newScene(t)
	require.Len(t, s.Window.Elements(), 6)

	size := s.Size()
	for _, e := range s.Window.Elements() {
		b := e.Base().Bounds()
		assert.False(t, b.Empty())
		assert.LessOrEqual(t, b.X+b.W, size.W)
		assert.LessOrEqual(t, b.Y+b.H, size.H)
	}
	widest := max(s.Button.Base().Size().W, s.Label.Base().Size().W, s.Combo.Base().Size().W)
	assert.Equal(t, widest, s.Progress.Base().Size().W, "the bar spans its column")
	assert.Len(t, s.Plot.Series(), 2)
}

func TestScene_ButtonAdvancesProgress(t *testing.T) {
	s, _ := newScene(t)
	before := s.Progress.Fraction()

	x, y := center(s.Button.Base().Bounds())
	require.NoError(t, s.Click(x, y))
	assert.InDelta(t, before+0.1, s.Progress.Fraction(), 1e-9)
}

func TestScene_SelectCurve(t *testing.T) {
	s, _ := newScene(t)
	box := s.Combo.Base().Bounds()
	x, y := center(box)
	require.NoError(t, s.Click(x, y))
	require.True(t, s.Combo.Expanded())

	// The first list row sits directly below the box.
	require.NoError(t, s.Click(x, y+box.H))
	assert.False(t, s.Combo.Expanded())
	assert.Equal(t, 0, s.Combo.Selected())
	assert.Equal(t, "Showing sine", s.Label.Text())
	assert.Len(t, s.Plot.Series(), 1)
}

func TestScene_Render(t *testing.T) {
	s, rec := newScene(t)
	require.NoError(t, s.Render(rec))

	assert.Positive(t, rec.Draws())
	texts := map[string]bool{}
	for _, op := range rec.Filter(wktest.OpCopyTexture) {
		texts[op.Str("text")] = true
	}
	for _, want := range []string{"Advance", "Pick a curve", "40%", "both", "canvas"} {
		assert.True(t, texts[want], "missing text %q", want)
	}
}

func TestScene_Free(t *testing.T) {
	s, _ := newScene(t)
	require.NoError(t, s.Free())
	assert.Empty(t, s.Window.Elements())
	assert.False(t, s.Button.Base().Alive())
}
