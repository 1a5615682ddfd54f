package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/raster"
	"github.com/go-drift/widgetkit/pkg/settings"
	wktest "github.com/go-drift/widgetkit/pkg/testing"
	"github.com/go-drift/widgetkit/pkg/widgets"
)

func TestFonts_Resolve(t *testing.T) {
	p := raster.NewFonts()
	f, err := p.Font(settings.DefaultFontSet, 12, true, false)
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultFontSet, f.Set())
	assert.Equal(t, 12, f.PixelSize())

	_, err = p.Font("serif", 12, false, false)
	assert.ErrorIs(t, err, raster.ErrNoFont)
	_, err = p.Font(settings.DefaultFontSet, 0, false, false)
	assert.ErrorIs(t, err, raster.ErrFontSize)

	p.Register("serif", basicfont.Face7x13)
	_, err = p.Font("serif", 12, false, false)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.Sets())
}

func TestFonts_MeasureText(t *testing.T) {
	p := raster.NewFonts()
	tests := []struct {
		name         string
		size         int
		bold, italic bool
		text         string
		w, h         int
	}{
		{"native", 13, false, false, "OK", 14, 13},
		{"double", 26, false, false, "OK", 28, 26},
		{"rounds up", 12, false, false, "OK", 13, 12},
		{"bold", 13, true, false, "OK", 15, 13},
		{"italic", 13, false, true, "OK", 17, 13},
		{"empty", 13, true, true, "", 0, 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := p.Font(settings.DefaultFontSet, tt.size, tt.bold, tt.italic)
			require.NoError(t, err)
			w, h, err := p.MeasureText(f, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestFonts_LineHeight(t *testing.T) {
	p := raster.NewFonts()
	f, err := p.Font(settings.DefaultFontSet, 26, false, false)
	require.NoError(t, err)
	assert.Equal(t, 26, p.LineHeight(f))
	assert.Equal(t, 0, p.LineHeight(nil))
}

func TestFonts_ForeignFont(t *testing.T) {
	p := raster.NewFonts()
	other, err := wktest.NewFonts().Font("x", 12, false, false)
	require.NoError(t, err)

	_, _, err = p.MeasureText(other, "a")
	assert.ErrorIs(t, err, raster.ErrForeignFont)
	_, err = p.RenderText("a", other, graphics.ColorBlack)
	assert.ErrorIs(t, err, raster.ErrForeignFont)
}

func TestFonts_RenderText(t *testing.T) {
	p := raster.NewFonts()
	for _, size := range []int{13, 12, 20} {
		for _, style := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
			f, err := p.Font(settings.DefaultFontSet, size, style[0], style[1])
			require.NoError(t, err)
			w, h, err := p.MeasureText(f, "Hi")
			require.NoError(t, err)

			tex, err := p.RenderText("Hi", f, graphics.ColorRed)
			require.NoError(t, err)
			assert.Equal(t, graphics.Size{W: w, H: h}, tex.Size(), "size %d style %v", size, style)
		}
	}
}

func TestFonts_RenderTextPixels(t *testing.T) {
	p := raster.NewFonts()
	f, err := p.Font(settings.DefaultFontSet, 13, false, false)
	require.NoError(t, err)
	tex, err := p.RenderText("I", f, graphics.ColorRed)
	require.NoError(t, err)

	c := raster.New(20, 20)
	require.NoError(t, c.CopyTexture(tex, graphics.RectAt(graphics.Pt(5, 5), tex.Size())))
	assert.Positive(t, count(c, graphics.ColorRed))
	assert.Equal(t, graphics.ColorTransparent, c.At(4, 4))

	empty, err := p.RenderText("", f, graphics.ColorRed)
	require.NoError(t, err)
	assert.Equal(t, graphics.Size{W: 0, H: 13}, empty.Size())
	require.NoError(t, c.CopyTexture(empty, graphics.Rect{W: 4, H: 4}))
}

func TestRaster_RendersButton(t *testing.T) {
	fonts := raster.NewFonts()
	ctx, err := core.NewContext(core.WithFonts(fonts, fonts))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Shutdown() })
	tk, err := widgets.NewToolkit(ctx)
	require.NoError(t, err)

	b, err := tk.NewButton("OK")
	require.NoError(t, err)
	// The native face size keeps glyph pixels unfiltered.
	b.Config().Size = 13
	size, err := b.MinSize()
	require.NoError(t, err)
	b.Base().SetSize(size)

	c := raster.New(size.W, size.H)
	require.NoError(t, b.Render(c, false))

	cfg := b.Config()
	assert.Equal(t, graphics.ColorTransparent, c.At(0, 0), "corners are masked")
	assert.Equal(t, cfg.BorderLight, c.At(size.W/2, 0))
	assert.Equal(t, cfg.BorderDark, c.At(size.W/2, size.H-1))
	assert.Positive(t, count(c, cfg.Color), "text is drawn")
}
