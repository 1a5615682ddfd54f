// Package demo builds the showcase scene rendered by the widgetkit command.
package demo

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/element"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/focus"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/plot"
	"github.com/go-drift/widgetkit/pkg/widgets"
)

const (
	margin = 8
	gap    = 6
)

// Scene is one of every widget placed in a window.
type Scene struct {
	Toolkit  *widgets.Toolkit
	Window   *focus.Manager
	Button   *widgets.Button
	Label    *widgets.Label
	Progress *widgets.ProgressBar
	Combo    *widgets.ComboBox
	Canvas   *widgets.Canvas
	Plot     *widgets.Plot

	size graphics.Size
}

// Size returns the extent the scene needs, including room for the open
// combo box list.
func (s *Scene) Size() graphics.Size { return s.size }

// column stacks elements at their minimum size from (x, y) and returns
// the widest element and the bottom edge.
func column(win *focus.Manager, x, y int, elems ...element.Element) (w, bottom int, err error) {
	for _, e := range elems {
		size, err := e.MinSize()
		if err != nil {
			return 0, 0, err
		}
		b := e.Base()
		b.SetLocation(graphics.Pt(x, y))
		b.SetSize(size)
		win.Add(e)
		w = max(w, size.W)
		y += size.H + gap
	}
	return w, y - gap, nil
}

// Build creates the scene in ctx. Clicking the button advances the
// progress bar and picking a combo box item updates the label.
func Build(ctx *core.Context) (*Scene, error) {
	tk, err := widgets.NewToolkit(ctx)
	if err != nil {
		return nil, err
	}
	s := &Scene{Toolkit: tk, Window: focus.NewManager(ctx)}

	if s.Button, err = tk.NewButton("Advance"); err != nil {
		return nil, err
	}
	if s.Label, err = tk.NewLabel("Pick a curve"); err != nil {
		return nil, err
	}
	if s.Progress, err = tk.NewProgressBar(); err != nil {
		return nil, err
	}
	if s.Combo, err = tk.NewComboBox("sine", "cosine", "both"); err != nil {
		return nil, err
	}
	scale := ctx.Scale()
	px := func(v int) int { return int(float64(v) * scale) }
	if s.Canvas, err = tk.NewCanvas(px(160), px(72)); err != nil {
		return nil, err
	}
	if s.Plot, err = tk.NewPlot(px(160), px(110)); err != nil {
		return nil, err
	}

	s.Progress.SetFraction(0.4)
	s.Button.OnClicked = func() {
		s.Progress.SetFraction(math.Min(s.Progress.Fraction()+0.1, 1))
	}
	s.Combo.OnSelect = func(i int) {
		items := s.Combo.Items()
		s.Label.SetText(fmt.Sprintf("Showing %s", items[i]))
		s.showCurves(i)
	}
	s.drawCanvas(px)
	s.Plot.Range = plot.Range[float64]{XMin: 0, XMax: 2 * math.Pi, YMin: -1.2, YMax: 1.2}
	s.Plot.Thickness = 2
	s.showCurves(2)
	if err := s.Combo.Select(2); err != nil {
		return nil, err
	}

	left := margin
	leftW, leftBottom, err := column(s.Window, left, margin, s.Button, s.Label, s.Progress, s.Combo)
	if err != nil {
		return nil, err
	}
	// Stretch the bar to the column.
	s.Progress.Base().SetSize(graphics.Size{W: leftW, H: s.Progress.Base().Size().H})

	right := left + leftW + 2*gap
	rightW, rightBottom, err := column(s.Window, right, margin, s.Canvas, s.Plot)
	if err != nil {
		return nil, err
	}

	comboH := s.Combo.Base().Size().H
	listBottom := leftBottom + comboH*len(s.Combo.Items())
	s.size = graphics.Size{
		W: right + rightW + margin,
		H: max(listBottom, rightBottom) + margin,
	}
	return s, nil
}

func (s *Scene) drawCanvas(px func(int) int) {
	ops := &s.Canvas.Ops
	ops.SetColor(graphics.RGB(0x20, 0x60, 0xc0))
	ops.MoveTo(px(8), px(56))
	for i, h := range []int{20, 34, 28, 44, 38, 52} {
		ops.DrawLine(px(8+(i+1)*24), px(60-h))
	}
	ops.SetColor(graphics.RGB(0xc0, 0x40, 0x20))
	ops.MoveTo(px(8), px(6))
	ops.DrawText("canvas")
}

const samples = 64

// showCurves replaces the plotted series: 0 is a sine, 1 a cosine and
// anything else both.
func (s *Scene) showCurves(which int) {
	s.Plot.ClearSeries()
	if which != 1 {
		pts := make([]plot.Point[float64], samples)
		for i := range pts {
			x := 2 * math.Pi * float64(i) / (samples - 1)
			pts[i] = plot.Point[float64]{X: x, Y: math.Sin(x)}
		}
		s.Plot.AddSeries64(pts, graphics.RGB(0xc0, 0x20, 0x20))
	}
	if which != 0 {
		pts := make([]plot.Point[float32], samples)
		for i := range pts {
			x := 2 * math32.Pi * float32(i) / (samples - 1)
			pts[i] = plot.Point[float32]{X: x, Y: math32.Cos(x)}
		}
		s.Plot.AddSeries32(pts, graphics.RGB(0x20, 0x80, 0x20))
	}
}

// Click sends a press and release at (x, y).
func (s *Scene) Click(x, y int) error {
	if _, _, err := s.Window.Dispatch(event.Down(x, y)); err != nil {
		return err
	}
	_, _, err := s.Window.Dispatch(event.Up(x, y))
	return err
}

// Render draws every element.
func (s *Scene) Render(r graphics.Renderer) error {
	return s.Window.Render(r, true)
}

// Free releases every widget.
func (s *Scene) Free() error {
	for _, e := range s.Window.Elements() {
		if err := s.Toolkit.Free(e); err != nil {
			return err
		}
	}
	return nil
}
