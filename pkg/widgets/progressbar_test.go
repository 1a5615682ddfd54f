package widgets_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/widgetkit/pkg/graphics"
	wktest "github.com/go-drift/widgetkit/pkg/testing"
	"github.com/go-drift/widgetkit/pkg/widgets"
)

// remainingFills returns the fillRect ops drawn in the remaining color.
func remainingFills(rec *wktest.Recorder, p *widgets.ProgressBar) []wktest.DisplayOp {
	var out []wktest.DisplayOp
	for _, op := range rec.Filter(wktest.OpFillRect) {
		if op.Str("color") == p.Remaining.Color.String() {
			out = append(out, op)
		}
	}
	return out
}

func TestProgressBar_SetFraction(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
		text string
	}{
		{0.5, 0.5, "50%"},
		{0.29, 0.29, "29%"},
		{0.999, 0.999, "99%"},
		{1, 1, "100%"},
		{1.5, 1, "100%"},
		{-1, 0, "0%"},
		{math.NaN(), 0, "0%"},
	}
	for _, tt := range tests {
		_, tk := newKit(t)
		p, err := tk.NewProgressBar()
		require.NoError(t, err)
		p.SetFraction(0.25)

		p.SetFraction(tt.in)
		assert.Equal(t, tt.want, p.Fraction(), "input %v", tt.in)
		assert.Equal(t, tt.text, p.Text(), "input %v", tt.in)
	}
}

func TestProgressBar_RedrawOnlyOnChange(t *testing.T) {
	tester, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(p, 0, 0))
	win := tester.Window()

	before := win.Invalidations()
	assert.True(t, p.SetFraction(0.5))
	assert.Equal(t, before+1, win.Invalidations())

	require.NoError(t, tester.Pump())
	assert.False(t, p.SetFraction(0.5))
	assert.False(t, p.Base().NeedsRedraw())
	assert.Equal(t, before+1, win.Invalidations())

	assert.True(t, p.SetFraction(-3))
	assert.Equal(t, "0%", p.Text())
	assert.False(t, p.SetFraction(0))
}

func TestProgressBar_MinSizeIgnoresFraction(t *testing.T) {
	_, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)

	empty, err := p.MinSize()
	require.NoError(t, err)
	p.SetFraction(0.5)
	half, err := p.MinSize()
	require.NoError(t, err)

	// "100%" is four glyphs of 6 plus the em width.
	assert.Equal(t, graphics.Size{W: 36, H: 18}, empty)
	assert.Equal(t, empty, half)
}

func TestProgressBar_RenderEmpty(t *testing.T) {
	tester, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(p, 0, 0))

	rec := tester.Recorder()
	fills := remainingFills(rec, p)
	require.Len(t, fills, 1)
	assert.Equal(t, 1, fills[0].Int("x"))
	assert.Equal(t, 1, fills[0].Int("y"))
	assert.Equal(t, 34, fills[0].Int("w"))
	assert.Equal(t, 16, fills[0].Int("h"))

	tex := rec.Filter(wktest.OpCopyTexture)
	require.Len(t, tex, 1)
	assert.Equal(t, "0%", tex[0].Str("text"))
}

func TestProgressBar_RenderHalf(t *testing.T) {
	tester, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)
	p.SetFraction(0.5)
	require.NoError(t, tester.PumpWidget(p, 0, 0))

	// The inner area is 34 wide; the right 17 columns remain, starting
	// at x 18. The corner notches stay inside the border.
	fills := remainingFills(tester.Recorder(), p)
	require.Len(t, fills, 16)
	total := 0
	for _, f := range fills {
		assert.Equal(t, 18, f.Int("x"))
		total += f.Int("w")
	}
	assert.Equal(t, 17, fills[0].Int("w"))
	assert.Equal(t, 17, fills[15].Int("w"))
	assert.Equal(t, 16*17, total)

	tex := tester.Recorder().Filter(wktest.OpCopyTexture)
	require.Len(t, tex, 1)
	assert.Equal(t, "50%", tex[0].Str("text"))
}

func TestProgressBar_RenderComplete(t *testing.T) {
	tester, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)
	p.SetFraction(1)
	require.NoError(t, tester.PumpWidget(p, 0, 0))

	assert.Empty(t, remainingFills(tester.Recorder(), p))
	tex := tester.Recorder().Filter(wktest.OpCopyTexture)
	require.Len(t, tex, 1)
	assert.Equal(t, "100%", tex[0].Str("text"))
}

func TestProgressBar_Copy(t *testing.T) {
	_, tk := newKit(t)
	p, err := tk.NewProgressBar()
	require.NoError(t, err)
	p.SetFraction(0.75)

	cp, err := tk.Copy(p)
	require.NoError(t, err)
	dup := cp.(*widgets.ProgressBar)
	assert.Equal(t, 0.75, dup.Fraction())
	assert.Equal(t, "75%", dup.Text())
	assert.Equal(t, p.Remaining, dup.Remaining)
}
