package widgets

import (
	"log/slog"

	"github.com/go-drift/widgetkit/pkg/canvas"
	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// Canvas is a fixed-size drawing surface. The application records
// operations into Ops; every render replays them from a fresh pen.
//
// Example:
//
//	cv, _ := tk.NewCanvas(64, 32)
//	cv.Ops.MoveTo(5, 5)
//	cv.Ops.SetColor(graphics.ColorRed)
//	cv.Ops.DrawLine(15, 5)
//	cv.Base().RequestRedraw()
type Canvas struct {
	class.Instance

	base    *element.Base
	tk      *Toolkit
	capture event.Capture
	size    graphics.Size
	pen     canvas.Pen

	// Ops is the operation buffer replayed on render.
	Ops canvas.Buffer
	// FontSet is the font set text operations draw with.
	FontSet string
	// Border draws a bevel over the edge of the canvas.
	Border Border

	OnClick   func()
	OnClicked func()
}

func (tk *Toolkit) canvasFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(CanvasClass, super)
			if err != nil {
				return nil, err
			}
			c := &Canvas{
				base:    base,
				tk:      tk,
				pen:     canvas.NewPen(),
				FontSet: settings.DefaultFontSet,
				Border:  defaultBorder(false),
			}
			c.capture.Name = CanvasClass
			c.capture.Report = tk.ctx.Reports().Events
			base.Bind(c)
			return c, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*Canvas), src.(*Canvas)
			d.size = s.size
			d.Ops.Append(s.Ops.Ops()...)
			d.FontSet, d.Border = s.FontSet, s.Border
			d.OnClick, d.OnClicked = s.OnClick, s.OnClicked
			return nil
		},
		Destroy: func(obj class.Object) {
			c := obj.(*Canvas)
			c.Ops.Reset()
			c.OnClick, c.OnClicked = nil, nil
		},
	}
}

// NewCanvas builds a w×h canvas. It is transparent until styled.
func (tk *Toolkit) NewCanvas(w, h int) (*Canvas, error) {
	c, err := build[*Canvas](tk, tk.Canvas)
	if err != nil {
		return nil, err
	}
	c.size = graphics.Size{W: max(w, 0), H: max(h, 0)}
	tk.applyTheme(CanvasClass, c.base, nil)
	return c, nil
}

// Base implements element.Element.
func (c *Canvas) Base() *element.Base { return c.base }

// Pen returns the pen state left by the last replay.
func (c *Canvas) Pen() canvas.Pen { return c.pen }

// MinSize implements element.Element. A canvas is always its fixed size.
func (c *Canvas) MinSize() (graphics.Size, error) { return c.size, nil }

func (c *Canvas) typesetter() canvas.Typesetter {
	ctx := c.base.Context()
	if ctx.Fonts == nil || ctx.Text == nil {
		return nil
	}
	return canvas.FontSet{Provider: ctx.Fonts, Text: ctx.Text, Set: c.FontSet, Scale: ctx.ScaledSize}
}

// Render implements element.Element.
func (c *Canvas) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("canvas.Render", c, c.tk.Element)
	if err != nil {
		return err
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(CanvasClass, werrors.KindRender, err)
	}
	pen, err := c.Ops.Replay(r, c.typesetter(), base.Location(), base.Size(), canvas.NewPen())
	c.pen = pen
	if err != nil {
		return err
	}
	bevel(r, base, c.Border.Enabled, c.Border.Light, c.Border.Dark)
	base.ReportRender("canvas replay", slog.Int("ops", c.Ops.Len()))
	base.ClearRedraw()
	return nil
}

// CaptureEvent implements element.Element. A canvas captures presses only
// when it has a click callback.
func (c *Canvas) CaptureEvent(ev event.Pointer) (event.Result, error) {
	if c.OnClick == nil && c.OnClicked == nil && c.capture.State() == event.Idle {
		return event.NotCaptured, nil
	}
	return c.capture.Handle(c.base, event.Hooks{OnClick: c.OnClick, OnClicked: c.OnClicked}, ev), nil
}

// Defocus implements element.Element.
func (c *Canvas) Defocus() {
	c.capture.Reset(c.base)
}
