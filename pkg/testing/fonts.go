package testing

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

// ErrNoFont is returned by [Fonts] for a font set marked missing.
var ErrNoFont = errors.New("testing: font set not available")

// Font is the handle returned by [Fonts].
type Font struct {
	set    string
	size   int
	Bold   bool
	Italic bool
}

func (f *Font) Set() string    { return f.set }
func (f *Font) PixelSize() int { return f.size }

// Texture is the texture returned by [Fonts.RenderText].
type Texture struct {
	Text  string
	Color graphics.Color
	size  graphics.Size
}

func (t *Texture) Size() graphics.Size { return t.size }

// Fonts is a deterministic FontProvider and TextRasterizer. Glyphs are
// size/2 pixels wide (at least 1) and lines are size pixels tall.
type Fonts struct {
	// Missing lists font sets that fail to resolve.
	Missing map[string]bool
	// FailRender makes RenderText fail.
	FailRender bool

	// Requests records every Font call.
	Requests []Font
	// Rendered records every successfully rasterized string.
	Rendered []string
}

// NewFonts returns a provider that resolves every font set.
func NewFonts() *Fonts {
	return &Fonts{Missing: map[string]bool{}}
}

// Font implements graphics.FontProvider.
func (p *Fonts) Font(set string, size int, bold, italic bool) (graphics.Font, error) {
	f := Font{set: set, size: size, Bold: bold, Italic: italic}
	p.Requests = append(p.Requests, f)
	if p.Missing[set] {
		return nil, fmt.Errorf("%w: %q", ErrNoFont, set)
	}
	if size <= 0 {
		return nil, fmt.Errorf("testing: invalid font size %d", size)
	}
	return &f, nil
}

// GlyphWidth returns the width of one glyph at size.
func GlyphWidth(size int) int {
	return max(size/2, 1)
}

// MeasureText implements graphics.FontProvider.
func (p *Fonts) MeasureText(f graphics.Font, s string) (int, int, error) {
	if f == nil {
		return 0, 0, errors.New("testing: nil font")
	}
	return utf8.RuneCountInString(s) * GlyphWidth(f.PixelSize()), f.PixelSize(), nil
}

// LineHeight implements graphics.FontProvider.
func (p *Fonts) LineHeight(f graphics.Font) int {
	if f == nil {
		return 0
	}
	return f.PixelSize()
}

// RenderText implements graphics.TextRasterizer.
func (p *Fonts) RenderText(s string, f graphics.Font, c graphics.Color) (graphics.Texture, error) {
	if p.FailRender {
		return nil, errors.New("testing: text rasterization failed")
	}
	w, h, err := p.MeasureText(f, s)
	if err != nil {
		return nil, err
	}
	p.Rendered = append(p.Rendered, s)
	return &Texture{Text: s, Color: c, size: graphics.Size{W: w, H: h}}, nil
}
