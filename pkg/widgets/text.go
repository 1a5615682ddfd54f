package widgets

import (
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// textual is the font and text state shared by the text widgets.
type textual struct {
	base   *element.Base
	schema settings.Schema
	cfg    settings.TextConfig
	shared *settings.TextConfig
	text   string
}

func newTextual(base *element.Base, schema settings.Schema) textual {
	return textual{base: base, schema: schema, cfg: settings.DefaultTextConfig()}
}

func (t *textual) copyFrom(src *textual) {
	t.cfg = src.cfg
	t.shared = src.shared
	t.text = src.text
}

// Config returns the configuration in effect: the shared one when set,
// otherwise the widget's own.
func (t *textual) Config() *settings.TextConfig {
	if t.shared != nil {
		return t.shared
	}
	return &t.cfg
}

// ShareConfig points the widget at a configuration owned elsewhere. While
// set, it is used and modified instead of the widget's own. Nil reverts to
// the widget's own configuration.
func (t *textual) ShareConfig(c *settings.TextConfig) {
	if t.shared != c {
		t.shared = c
		t.base.RequestRedraw()
	}
}

// Configure applies "Name=Value", "Name" and "!Name" items. Unusable items
// are skipped and returned as warnings.
func (t *textual) Configure(items ...string) []error {
	changed, warnings := t.Config().Configure(t.schema, items...)
	if changed {
		t.base.RequestRedraw()
	}
	return warnings
}

// Set applies typed settings.
func (t *textual) Set(in ...settings.Setting) []error {
	changed, warnings := t.Config().Set(t.schema, in...)
	if changed {
		t.base.RequestRedraw()
	}
	return warnings
}

// Text returns the widget text.
func (t *textual) Text() string { return t.text }

// SetText replaces the widget text.
func (t *textual) SetText(s string) {
	if t.text != s {
		t.text = s
		t.base.RequestRedraw()
	}
}

func (t *textual) font() (graphics.Font, error) {
	c := t.Config()
	return t.base.Context().Font(c.FontSet, c.Size, c.Bold, c.Italic)
}

// emWidth returns the scaled em padding.
func (t *textual) emWidth() int {
	return int(float64(t.Config().EmWidth) * t.base.Scale())
}

// measure returns the width of s and the line height. Empty text measures
// as a single space.
func (t *textual) measure(f graphics.Font, s string) (int, int, error) {
	if s == "" {
		s = " "
	}
	w, _, err := t.base.Context().Fonts.MeasureText(f, s)
	if err != nil {
		return 0, 0, werrors.New("widgets.measure", werrors.KindResource, err)
	}
	return w, t.base.Context().Fonts.LineHeight(f), nil
}

// boxSize is the minimum size shared by the text widgets: the text width
// plus em padding and extra, one and a half lines tall, plus the border
// growth of the scale factor.
func (t *textual) boxSize(s string, extra int) (graphics.Size, error) {
	f, err := t.font()
	if err != nil {
		return graphics.Size{}, err
	}
	w, lh, err := t.measure(f, s)
	if err != nil {
		return graphics.Size{}, err
	}
	grow := element.BorderExtra(t.base.Scale())
	return graphics.Size{
		W: w + t.emWidth() + extra + grow,
		H: lh*3/2 + grow,
	}, nil
}

// textColor picks the foreground color for the display state.
func (t *textual) textColor(selectable bool) graphics.Color {
	c := t.Config()
	if selectable && t.base.Focus() == element.Selected {
		return c.ColorSelect
	}
	return c.Color
}

// drawText rasterizes s and places it in area by the Base's justification,
// vertically centered. Empty text draws nothing.
func (t *textual) drawText(r graphics.Renderer, f graphics.Font, s string, area graphics.Rect, c graphics.Color) error {
	if s == "" {
		return nil
	}
	ctx := t.base.Context()
	if ctx.Text == nil {
		return werrors.New("widgets.drawText", werrors.KindResource, errNoRasterizer)
	}
	tex, err := ctx.Text.RenderText(s, f, c)
	if err != nil {
		return werrors.New("widgets.drawText", werrors.KindResource, err)
	}
	size := tex.Size()
	at := element.Place(area, size.W, size.H, t.base.Justify, element.JustifyInset)
	if err := r.CopyTexture(tex, graphics.RectAt(at, size)); err != nil {
		return werrors.New("widgets.drawText", werrors.KindResource, err)
	}
	return nil
}
