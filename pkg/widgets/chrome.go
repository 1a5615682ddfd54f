package widgets

import (
	"errors"

	"github.com/go-drift/widgetkit/pkg/element"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/mask"
	"github.com/go-drift/widgetkit/pkg/settings"
)

var errNoRasterizer = errors.New("widgets: no text rasterizer")

// Default palette.
var (
	defaultFace      = graphics.RGB(0xd4, 0xd0, 0xc8)
	defaultFaceDown  = graphics.RGB(0x9c, 0x98, 0x90)
	defaultFaceHover = graphics.RGB(0xe4, 0xe0, 0xd8)
	defaultFinished  = graphics.RGB(0x3c, 0x8d, 0x40)
	defaultRemaining = graphics.RGB(0xe0, 0xe0, 0xe0)
)

// Border holds the bevel of widgets without a text configuration.
type Border struct {
	Enabled     bool
	Light, Dark graphics.Color
}

func defaultBorder(enabled bool) Border {
	c := settings.DefaultTextConfig()
	return Border{Enabled: enabled, Light: c.BorderLight, Dark: c.BorderDark}
}

// faceStyles installs the push-button palette.
func faceStyles(b *element.Base) {
	_ = b.SetStyle(element.StyleNormal, element.FlatStyle(defaultFace))
	_ = b.SetStyle(element.StyleSelected, element.FlatStyle(defaultFaceDown))
	_ = b.SetStyle(element.StyleHovered, element.FlatStyle(defaultFaceHover))
}

// background fills the element through its corner mask.
func background(r graphics.Renderer, b *element.Base) error {
	size := b.Size()
	return b.RedrawBackground(r, graphics.Point{}, element.CornerMask(size.W, size.H))
}

// bevel draws the border scaled for the context and returns the area inside
// it. Without a border the whole element is returned.
func bevel(r graphics.Renderer, b *element.Base, enabled bool, light, dark graphics.Color) graphics.Rect {
	bounds := b.Bounds()
	if !enabled {
		return bounds
	}
	n := element.BorderWidth(b.Scale())
	element.DrawBevel(r, bounds, light, dark, n)
	return bounds.Inset(n)
}

// cornerWindow returns the part of the w×h corner mask that covers sub,
// given relative to the element origin.
func cornerWindow(w, h int, sub graphics.Rect) *mask.Map {
	full := element.CornerMask(w, h)
	m := mask.New(sub.W, sub.H)
	for y := 0; y < sub.H; y++ {
		for x := 0; x < sub.W; x++ {
			if full.Masked(sub.X+x, sub.Y+y) {
				m.MaskPoint(x, y)
			}
		}
	}
	return m
}
