package raster

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

var (
	// ErrNoFont is returned for a font set with no registered face.
	ErrNoFont = errors.New("raster: font set not registered")
	// ErrFontSize is returned for a non-positive font size.
	ErrFontSize = errors.New("raster: invalid font size")
	// ErrForeignFont is returned for a font handle not produced by [Fonts].
	ErrForeignFont = errors.New("raster: font not produced by raster")
)

// Font is the handle returned by [Fonts.Font].
type Font struct {
	set    string
	size   int
	bold   bool
	italic bool
	face   font.Face
}

func (f *Font) Set() string    { return f.set }
func (f *Font) PixelSize() int { return f.size }

// Fonts is a graphics.FontProvider and graphics.TextRasterizer over
// bitmap faces. Each face is rasterized at its native size and scaled to
// the requested pixel size. Bold is drawn twice one pixel apart and
// italic is a shear of a quarter of the face height.
type Fonts struct {
	faces map[string]font.Face
}

// NewFonts returns a provider with the default font set bound to
// basicfont.Face7x13.
func NewFonts() *Fonts {
	p := &Fonts{faces: map[string]font.Face{}}
	p.Register(settings.DefaultFontSet, basicfont.Face7x13)
	return p
}

// Register binds a font set name to a face, replacing any previous face.
func (p *Fonts) Register(set string, face font.Face) {
	p.faces[set] = face
}

// Sets returns the number of registered font sets.
func (p *Fonts) Sets() int { return len(p.faces) }

// Font implements graphics.FontProvider.
func (p *Fonts) Font(set string, size int, bold, italic bool) (graphics.Font, error) {
	face, ok := p.faces[set]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoFont, set)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFontSize, size)
	}
	return &Font{set: set, size: size, bold: bold, italic: italic, face: face}, nil
}

func fontOf(f graphics.Font) (*Font, error) {
	rf, ok := f.(*Font)
	if !ok || rf == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignFont, f)
	}
	return rf, nil
}

// nativeHeight is the face's ascent plus descent in pixels.
func nativeHeight(face font.Face) int {
	m := face.Metrics()
	return max((m.Ascent + m.Descent).Ceil(), 1)
}

func shear(h int) int { return h / 4 }

// nativeExtent measures s at the face's own size.
func (f *Font) nativeExtent(s string) (w, h int) {
	h = nativeHeight(f.face)
	w = font.MeasureString(f.face, s).Ceil()
	if w == 0 {
		return 0, h
	}
	if f.bold {
		w++
	}
	if f.italic {
		w += shear(h)
	}
	return w, h
}

// scale converts a native length to the requested pixel size, rounding up.
func (f *Font) scale(v, native int) int {
	return (v*f.size + native - 1) / native
}

// MeasureText implements graphics.FontProvider.
func (p *Fonts) MeasureText(gf graphics.Font, s string) (int, int, error) {
	f, err := fontOf(gf)
	if err != nil {
		return 0, 0, err
	}
	w, h := f.nativeExtent(s)
	return f.scale(w, h), f.size, nil
}

// LineHeight implements graphics.FontProvider.
func (p *Fonts) LineHeight(gf graphics.Font) int {
	f, err := fontOf(gf)
	if err != nil {
		return 0
	}
	return f.scale(f.face.Metrics().Height.Ceil(), nativeHeight(f.face))
}

// RenderText implements graphics.TextRasterizer. The texture is exactly
// the size MeasureText reports.
func (p *Fonts) RenderText(s string, gf graphics.Font, c graphics.Color) (graphics.Texture, error) {
	f, err := fontOf(gf)
	if err != nil {
		return nil, err
	}
	nw, nh := f.nativeExtent(s)
	if nw == 0 {
		return NewTexture(image.NewRGBA(image.Rect(0, 0, 0, f.size))), nil
	}

	glyphs := image.NewRGBA(image.Rect(0, 0, nw, nh))
	ascent := f.face.Metrics().Ascent
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: f.face,
		Dot:  fixed.Point26_6{Y: ascent},
	}
	d.DrawString(s)
	if f.bold {
		d.Dot = fixed.Point26_6{X: fixed.I(1), Y: ascent}
		d.DrawString(s)
	}

	img := glyphs
	if f.italic {
		img = image.NewRGBA(glyphs.Bounds())
		sh := shear(nh)
		for y := 0; y < nh; y++ {
			dx := sh * (nh - 1 - y) / max(nh-1, 1)
			draw.Draw(img, image.Rect(dx, y, nw, y+1), glyphs, image.Pt(0, y), draw.Src)
		}
	}

	sw := f.scale(nw, nh)
	if sw == nw && f.size == nh {
		return NewTexture(img), nil
	}
	out := image.NewRGBA(image.Rect(0, 0, sw, f.size))
	draw.ApproxBiLinear.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return NewTexture(out), nil
}
