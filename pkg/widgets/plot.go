package widgets

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/mask"
	"github.com/go-drift/widgetkit/pkg/plot"
)

// Series is one plotted line. Exactly one of the point slices is used.
type Series struct {
	Color graphics.Color
	p64   []plot.Point[float64]
	p32   []plot.Point[float32]
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.p64) + len(s.p32) }

// Plot draws line series over an axis range. Series are rasterized into
// masks and composited in their color over the plot background.
type Plot struct {
	class.Instance

	base   *element.Base
	tk     *Toolkit
	size   graphics.Size
	series []Series

	// Range is the visible axis range.
	Range plot.Range[float64]
	// Zone is the tic zone relative to the plot origin. The zero value
	// uses the whole plot inside the border.
	Zone graphics.Rect
	// Thickness is the stroke thickness, 1 to 4.
	Thickness int
	Border    Border
}

func (tk *Toolkit) plotFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(PlotClass, super)
			if err != nil {
				return nil, err
			}
			p := &Plot{
				base:      base,
				tk:        tk,
				Range:     plot.Range[float64]{XMax: 1, YMax: 1},
				Thickness: 1,
				Border:    defaultBorder(true),
			}
			base.Bind(p)
			return p, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*Plot), src.(*Plot)
			d.size = s.size
			for _, sr := range s.series {
				sr.p64 = append([]plot.Point[float64](nil), sr.p64...)
				sr.p32 = append([]plot.Point[float32](nil), sr.p32...)
				d.series = append(d.series, sr)
			}
			d.Range, d.Zone, d.Thickness, d.Border = s.Range, s.Zone, s.Thickness, s.Border
			return nil
		},
		Destroy: func(obj class.Object) {
			obj.(*Plot).series = nil
		},
	}
}

// NewPlot builds a w×h plot over the unit range.
func (tk *Toolkit) NewPlot(w, h int) (*Plot, error) {
	p, err := build[*Plot](tk, tk.Plot)
	if err != nil {
		return nil, err
	}
	p.size = graphics.Size{W: max(w, 0), H: max(h, 0)}
	_ = p.base.SetStyle(element.StyleNormal, element.FlatStyle(graphics.ColorWhite))
	tk.applyTheme(PlotClass, p.base, nil)
	return p, nil
}

// Base implements element.Element.
func (p *Plot) Base() *element.Base { return p.base }

// AddSeries64 adds a float64 series and returns its index. The points are
// copied.
func (p *Plot) AddSeries64(pts []plot.Point[float64], c graphics.Color) int {
	p.series = append(p.series, Series{Color: c, p64: append([]plot.Point[float64](nil), pts...)})
	p.base.RequestRedraw()
	return len(p.series) - 1
}

// AddSeries32 adds a float32 series and returns its index.
func (p *Plot) AddSeries32(pts []plot.Point[float32], c graphics.Color) int {
	p.series = append(p.series, Series{Color: c, p32: append([]plot.Point[float32](nil), pts...)})
	p.base.RequestRedraw()
	return len(p.series) - 1
}

// Series returns the plotted series.
func (p *Plot) Series() []Series { return append([]Series(nil), p.series...) }

// ClearSeries removes every series.
func (p *Plot) ClearSeries() {
	p.series = p.series[:0]
	p.base.RequestRedraw()
}

// MinSize implements element.Element.
func (p *Plot) MinSize() (graphics.Size, error) { return p.size, nil }

// zone returns the tic zone relative to the plot origin.
func (p *Plot) zone() graphics.Rect {
	if !p.Zone.Empty() {
		return p.Zone
	}
	full := graphics.Rect{W: p.base.Size().W, H: p.base.Size().H}
	if p.Border.Enabled {
		return full.Inset(element.BorderWidth(p.base.Scale()))
	}
	return full
}

// Trace rasterizes series i into a mask the size of the plot.
func (p *Plot) Trace(i int) (*mask.Map, error) {
	if i < 0 || i >= len(p.series) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndex, i, len(p.series))
	}
	s := p.series[i]
	opt := plot.Options{Size: p.base.Size(), Zone: p.zone(), Thickness: p.Thickness}
	if s.p32 != nil {
		r := plot.Range[float32]{
			XMin: float32(p.Range.XMin), XMax: float32(p.Range.XMax),
			YMin: float32(p.Range.YMin), YMax: float32(p.Range.YMax),
		}
		return plot.Line32(s.p32, r, opt)
	}
	return plot.Line64(s.p64, p.Range, opt)
}

// Render implements element.Element.
func (p *Plot) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("plot.Render", p, p.tk.Element)
	if err != nil {
		return err
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(PlotClass, werrors.KindRender, err)
	}
	for i, s := range p.series {
		m, err := p.Trace(i)
		if err != nil {
			return renderError(PlotClass, werrors.KindRender, err)
		}
		element.Composite(r, base.Bounds(), element.FlatStyle(s.Color), m)
		base.ReportRender("plot series", slog.Int("series", i), slog.Int("pixels", m.CountUnmasked()))
	}
	bevel(r, base, p.Border.Enabled, p.Border.Light, p.Border.Dark)
	base.ClearRedraw()
	return nil
}

// CaptureEvent implements element.Element. Plots are display only.
func (p *Plot) CaptureEvent(event.Pointer) (event.Result, error) {
	return event.NotCaptured, nil
}

// Defocus implements element.Element.
func (p *Plot) Defocus() {}
