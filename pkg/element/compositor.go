package element

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/widgetkit/pkg/config"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/mask"
)

// SetStyle stores the background style used for one of the named display
// states. The style is copied.
func (b *Base) SetStyle(name string, s Style) error {
	i, ok := styleIndex(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.Stops = append([]Stop(nil), s.Stops...)
	b.styles[i] = &s
	b.RequestRedraw()
	return nil
}

// Style returns the style stored under name.
func (b *Base) Style(name string) (Style, bool) {
	i, ok := styleIndex(name)
	if !ok || b.styles[i] == nil {
		return Style{}, false
	}
	return *b.styles[i], true
}

// ActiveStyle returns the style for the current display state. Selection
// wins over hover, which wins over normal. A state without its own style
// uses the normal style; an element without any style is transparent.
func (b *Base) ActiveStyle() Style {
	if b.focus == Selected && b.styles[1] != nil {
		return *b.styles[1]
	}
	if b.hovered && b.styles[2] != nil {
		return *b.styles[2]
	}
	if b.styles[0] != nil {
		return *b.styles[0]
	}
	return TransparentStyle()
}

// ApplyTheme installs the styles a theme defines for the element's class.
// Entries that fail to convert are skipped and returned.
func (b *Base) ApplyTheme(t config.ClassTheme) []error {
	var errs []error
	for _, e := range []struct {
		name string
		sc   *config.StyleConfig
	}{
		{StyleNormal, t.Normal},
		{StyleSelected, t.Selected},
		{StyleHovered, t.Hovered},
	} {
		if e.sc == nil {
			continue
		}
		s, err := StyleFromConfig(e.sc)
		if err == nil {
			err = b.SetStyle(e.name, s)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("style %s: %w", e.name, err))
		}
	}
	return errs
}

// RedrawBackground fills the element background with the active style.
// The area starts at the element location plus offset and has the size of
// m, or of the element when m is nil. Pixels masked in m are left
// untouched. The redraw flag is not cleared.
func (b *Base) RedrawBackground(r graphics.Renderer, offset graphics.Point, m *mask.Map) error {
	if r == nil {
		return fmt.Errorf("element: nil renderer")
	}
	area := graphics.RectAt(b.loc.Add(offset), b.size)
	if m != nil {
		area.W, area.H = m.Width(), m.Height()
	}
	s := b.ActiveStyle()
	b.ReportRender("redraw background",
		slog.String("focus", b.focus.String()),
		slog.Bool("hovered", b.hovered),
		slog.Int("kind", int(s.Kind)))
	Composite(r, area, s, m)
	return nil
}

// Composite fills area with s, skipping pixels masked in m. m, when
// non-nil, is addressed relative to area's origin; pixels beyond the mask
// are treated as masked.
func Composite(r graphics.Renderer, area graphics.Rect, s Style, m *mask.Map) {
	if area.Empty() {
		return
	}
	switch s.Kind {
	case Flat:
		r.SetDrawColor(s.Color)
		if m == nil {
			r.FillRect(area)
			return
		}
		for y := 0; y < area.H; y++ {
			fillRowSpans(r, area, m, y)
		}
	case Gradient:
		if s.Direction == Horizontal {
			for x := 0; x < area.W; x++ {
				r.SetDrawColor(s.ColorAt(axisFraction(x, area.W)))
				fillColumnRuns(r, area, m, x)
			}
			return
		}
		for y := 0; y < area.H; y++ {
			r.SetDrawColor(s.ColorAt(axisFraction(y, area.H)))
			if m == nil {
				r.FillRect(graphics.Rect{X: area.X, Y: area.Y + y, W: area.W, H: 1})
				continue
			}
			fillRowSpans(r, area, m, y)
		}
	}
}

func axisFraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func fillRowSpans(r graphics.Renderer, area graphics.Rect, m *mask.Map, y int) {
	m.Spans(y, func(x0, x1 int) {
		x1 = min(x1, area.W)
		if x1 > x0 {
			r.FillRect(graphics.Rect{X: area.X + x0, Y: area.Y + y, W: x1 - x0, H: 1})
		}
	})
}

func fillColumnRuns(r graphics.Renderer, area graphics.Rect, m *mask.Map, x int) {
	if m == nil {
		r.FillRect(graphics.Rect{X: area.X + x, Y: area.Y, W: 1, H: area.H})
		return
	}
	start := -1
	for y := 0; y <= area.H; y++ {
		visible := y < area.H && !m.Masked(x, y)
		switch {
		case visible && start < 0:
			start = y
		case !visible && start >= 0:
			r.FillRect(graphics.Rect{X: area.X + x, Y: area.Y + start, W: 1, H: y - start})
			start = -1
		}
	}
}
