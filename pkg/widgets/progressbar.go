package widgets

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// ProgressBar shows a completed fraction as a filled bar with an "NN%"
// caption. The normal style paints the finished part; the remaining part
// on the right is painted with the Remaining style.
type ProgressBar struct {
	class.Instance
	textual

	tk       *Toolkit
	fraction float64

	// Remaining paints the unfinished part of the bar.
	Remaining element.Style
}

func (tk *Toolkit) progressBarFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(ProgressBarClass, super)
			if err != nil {
				return nil, err
			}
			p := &ProgressBar{
				tk:        tk,
				textual:   newTextual(base, settings.LabelSchema),
				Remaining: element.FlatStyle(defaultRemaining),
			}
			p.text = percent(0)
			base.Bind(p)
			return p, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*ProgressBar), src.(*ProgressBar)
			d.copyFrom(&s.textual)
			d.fraction = s.fraction
			d.Remaining = s.Remaining
			d.Remaining.Stops = append([]element.Stop(nil), s.Remaining.Stops...)
			return nil
		},
		Destroy: func(obj class.Object) {
			obj.(*ProgressBar).shared = nil
		},
	}
}

// NewProgressBar builds a progress bar at 0%.
func (tk *Toolkit) NewProgressBar() (*ProgressBar, error) {
	p, err := build[*ProgressBar](tk, tk.ProgressBar)
	if err != nil {
		return nil, err
	}
	_ = p.base.SetStyle(element.StyleNormal, element.FlatStyle(defaultFinished))
	tk.applyTheme(ProgressBarClass, p.base, p.Configure)
	return p, nil
}

// Base implements element.Element.
func (p *ProgressBar) Base() *element.Base { return p.base }

// Fraction returns the completed fraction.
func (p *ProgressBar) Fraction() float64 { return p.fraction }

// SetFraction sets the completed fraction, clamped to [0, 1]. It reports
// whether the value changed; only a change requests a redraw.
func (p *ProgressBar) SetFraction(f float64) bool {
	if math.IsNaN(f) {
		f = 0
	}
	f = min(max(f, 0), 1)
	if f == p.fraction {
		return false
	}
	p.fraction = f
	p.text = percent(f)
	p.base.RequestRedraw()
	return true
}

// percent truncates to whole percents, so 100% means complete.
func percent(f float64) string {
	return strconv.Itoa(int(math.Floor(f*100+1e-9))) + "%"
}

// MinSize implements element.Element. The caption is measured as "100%"
// so the size does not depend on the fraction.
func (p *ProgressBar) MinSize() (graphics.Size, error) {
	return p.boxSize("100%", 0)
}

// remaining returns the unfinished part of inner, which is empty when the
// bar is complete.
func (p *ProgressBar) remaining(inner graphics.Rect) graphics.Rect {
	w := int((1 - p.fraction) * float64(inner.W))
	return graphics.Rect{X: inner.X + inner.W - w, Y: inner.Y, W: w, H: inner.H}
}

// Render implements element.Element.
func (p *ProgressBar) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("progressbar.Render", p, p.tk.Element)
	if err != nil {
		return err
	}
	f, err := p.font()
	if err != nil {
		return renderError(ProgressBarClass, werrors.KindResource, err)
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(ProgressBarClass, werrors.KindRender, err)
	}

	bounds := base.Bounds()
	inner := bounds.Inset(element.BorderWidth(base.Scale()))
	switch rest := p.remaining(inner); {
	case p.fraction == 0:
		element.Composite(r, inner, p.Remaining, nil)
	case !rest.Empty():
		rel := rest
		rel.X -= bounds.X
		rel.Y -= bounds.Y
		element.Composite(r, rest, p.Remaining, cornerWindow(bounds.W, bounds.H, rel))
	}
	base.ReportRender("progress", slog.Float64("fraction", p.fraction))

	cfg := p.Config()
	bevel(r, base, true, cfg.BorderLight, cfg.BorderDark)
	if err := p.drawText(r, f, p.text, inner, p.textColor(false)); err != nil {
		return err
	}
	base.ClearRedraw()
	return nil
}

// CaptureEvent implements element.Element. Progress bars are display only.
func (p *ProgressBar) CaptureEvent(event.Pointer) (event.Result, error) {
	return event.NotCaptured, nil
}

// Defocus implements element.Element.
func (p *ProgressBar) Defocus() {}
