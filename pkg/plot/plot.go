// Package plot rasterizes 2D line series into masks.
//
// A series is mapped from data coordinates onto a tic zone, the pixel
// rectangle of the mask where data is drawn, and traced as unmasked pixels
// in an otherwise fully masked map. The mask can then be composited in the
// series color. Segments leaving the axis range are clipped to it, so a
// series may run off the plot and come back.
//
// Line64 and Line32 share one implementation. The float32 path does its
// arithmetic through github.com/chewxy/math32.
package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/mask"
)

var (
	// ErrThickness is returned for a stroke thickness outside 1..4.
	ErrThickness = errors.New("plot: thickness must be between 1 and 4")
	// ErrRange is returned for an empty, inverted or non-finite axis range.
	ErrRange = errors.New("plot: invalid axis range")
	// ErrZone is returned for an empty tic zone or mask.
	ErrZone = errors.New("plot: empty tic zone")
)

// MaxThickness is the thickest supported stroke.
const MaxThickness = 4

// Float is the element type of a series.
type Float interface {
	~float32 | ~float64
}

// Point is one data point.
type Point[T Float] struct {
	X, Y T
}

// Range is the visible axis range. Points on the bounds are in range.
type Range[T Float] struct {
	XMin, XMax, YMin, YMax T
}

// Options describes the target of a rasterization.
type Options struct {
	// Size is the size of the produced mask.
	Size graphics.Size
	// Zone is the tic zone within the mask that the axis range maps onto.
	Zone graphics.Rect
	// Thickness is the stroke thickness in pixels, 1 to 4.
	Thickness int
}

// brushes holds the pixel offsets stamped for each thickness.
var brushes = [MaxThickness + 1][]graphics.Point{
	1: {{X: 0, Y: 0}},
	2: {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	3: {{X: 0, Y: 0}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: 0, Y: 1}},
	4: {
		{X: 0, Y: -1}, {X: 1, Y: -1},
		{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0},
		{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2},
	},
}

// Brush returns the offsets stamped for a thickness.
func Brush(thickness int) ([]graphics.Point, error) {
	if thickness < 1 || thickness > MaxThickness {
		return nil, fmt.Errorf("%w: %d", ErrThickness, thickness)
	}
	return brushes[thickness], nil
}

type arith[T Float] struct {
	trunc  func(T) T
	finite func(T) bool
}

var arith64 = arith[float64]{
	trunc:  math.Trunc,
	finite: func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) },
}

var arith32 = arith[float32]{
	trunc:  math32.Trunc,
	finite: func(v float32) bool { return !math32.IsNaN(v) && !math32.IsInf(v, 0) },
}

// Line64 rasterizes a float64 series.
func Line64(pts []Point[float64], r Range[float64], opt Options) (*mask.Map, error) {
	return line(pts, r, opt, arith64)
}

// Line32 rasterizes a float32 series.
func Line32(pts []Point[float32], r Range[float32], opt Options) (*mask.Map, error) {
	return line(pts, r, opt, arith32)
}

// Draw64 traces a float64 series into an existing mask without masking it
// first, so several series can share one map.
func Draw64(m *mask.Map, pts []Point[float64], r Range[float64], zone graphics.Rect, thickness int) error {
	z, err := newRasterizer(m, r, zone, thickness, arith64)
	if err != nil {
		return err
	}
	z.trace(pts)
	return nil
}

// Draw32 is Draw64 for float32 series.
func Draw32(m *mask.Map, pts []Point[float32], r Range[float32], zone graphics.Rect, thickness int) error {
	z, err := newRasterizer(m, r, zone, thickness, arith32)
	if err != nil {
		return err
	}
	z.trace(pts)
	return nil
}

func line[T Float](pts []Point[T], r Range[T], opt Options, a arith[T]) (*mask.Map, error) {
	if opt.Size.W <= 0 || opt.Size.H <= 0 {
		return nil, fmt.Errorf("%w: mask %dx%d", ErrZone, opt.Size.W, opt.Size.H)
	}
	m := mask.New(opt.Size.W, opt.Size.H)
	m.MaskAll()
	z, err := newRasterizer(m, r, opt.Zone, opt.Thickness, a)
	if err != nil {
		return nil, err
	}
	z.trace(pts)
	return m, nil
}

type rasterizer[T Float] struct {
	m      *mask.Map
	r      Range[T]
	zone   graphics.Rect
	brush  []graphics.Point
	a      arith[T]
	xScale T
	yScale T
}

func newRasterizer[T Float](m *mask.Map, r Range[T], zone graphics.Rect, thickness int, a arith[T]) (*rasterizer[T], error) {
	brush, err := Brush(thickness)
	if err != nil {
		return nil, err
	}
	if zone.Empty() {
		return nil, fmt.Errorf("%w: %s", ErrZone, zone)
	}
	for _, v := range []T{r.XMin, r.XMax, r.YMin, r.YMax} {
		if !a.finite(v) {
			return nil, fmt.Errorf("%w: non-finite bound", ErrRange)
		}
	}
	if !(r.XMax > r.XMin) || !(r.YMax > r.YMin) {
		return nil, fmt.Errorf("%w: [%v,%v]x[%v,%v]", ErrRange, r.XMin, r.XMax, r.YMin, r.YMax)
	}
	return &rasterizer[T]{
		m:      m,
		r:      r,
		zone:   zone,
		brush:  brush,
		a:      a,
		xScale: (r.XMax - r.XMin) / T(zone.W),
		yScale: (r.YMax - r.YMin) / T(zone.H),
	}, nil
}

// trace draws the polyline. A non-finite point breaks the line; the next
// finite point starts a new one.
func (z *rasterizer[T]) trace(pts []Point[T]) {
	var (
		prev    Point[T]
		hasPrev bool
		prevIn  bool
	)
	for _, p := range pts {
		if !z.a.finite(p.X) || !z.a.finite(p.Y) {
			hasPrev = false
			continue
		}
		in := z.inRange(p)
		if !hasPrev {
			if in {
				z.dot(p)
			}
			prev, hasPrev, prevIn = p, true, in
			continue
		}
		switch {
		case prevIn && in:
			z.segment(prev, p)
		case prevIn:
			z.segment(prev, z.clipToward(prev, p))
		case in:
			z.segment(z.clipToward(p, prev), p)
		case z.sameSide(prev, p):
			// Entirely outside on one side.
		default:
			if a, b, ok := z.clipBoth(prev, p); ok {
				z.segment(a, b)
			}
		}
		prev, prevIn = p, in
	}
}

func (z *rasterizer[T]) inRange(p Point[T]) bool {
	return p.X >= z.r.XMin && p.X <= z.r.XMax && p.Y >= z.r.YMin && p.Y <= z.r.YMax
}

func (z *rasterizer[T]) sameSide(a, b Point[T]) bool {
	return (a.X < z.r.XMin && b.X < z.r.XMin) ||
		(a.X > z.r.XMax && b.X > z.r.XMax) ||
		(a.Y < z.r.YMin && b.Y < z.r.YMin) ||
		(a.Y > z.r.YMax && b.Y > z.r.YMax)
}

// toPixel maps an in-range data point to mask coordinates inside the
// zone. Row 0 is the top, so the Y axis is inverted. Points on the upper
// x bound or the lower y bound land on the last column or row.
func (z *rasterizer[T]) toPixel(p Point[T]) (int, int) {
	px := z.zone.X + int(z.a.trunc((p.X-z.r.XMin)/z.xScale))
	py := z.zone.Y + z.zone.H - int(z.a.trunc((p.Y-z.r.YMin)/z.yScale))
	px = min(max(px, z.zone.X), z.zone.X+z.zone.W-1)
	py = min(max(py, z.zone.Y), z.zone.Y+z.zone.H-1)
	return px, py
}

func (z *rasterizer[T]) dot(p Point[T]) {
	x, y := z.toPixel(p)
	for _, o := range z.brush {
		z.m.UnmaskUnboundedPoint(x+o.X, y+o.Y)
	}
}

func (z *rasterizer[T]) segment(a, b Point[T]) {
	x1, y1 := z.toPixel(a)
	x2, y2 := z.toPixel(b)
	for _, o := range z.brush {
		z.m.UnmaskUnboundedLine(x1+o.X, y1+o.Y, x2+o.X, y2+o.Y)
	}
}

// clipToward moves out, the out-of-range end of a segment whose other end
// in is in range, onto the boundary it crosses. Bounds are tested in the
// order x below, x above, y below, y above.
func (z *rasterizer[T]) clipToward(in, out Point[T]) Point[T] {
	dX := out.X - in.X
	dY := out.Y - in.Y
	p := out
	if dX == 0.0 {
		// Vertical: only a y bound can be crossed.
		if p.Y < z.r.YMin {
			p.Y = z.r.YMin
		} else if p.Y > z.r.YMax {
			p.Y = z.r.YMax
		}
		return p
	}
	slope := dY / dX
	if p.X < z.r.XMin {
		p.Y = in.Y + slope*(z.r.XMin-in.X)
		p.X = z.r.XMin
	} else if p.X > z.r.XMax {
		p.Y = in.Y + slope*(z.r.XMax-in.X)
		p.X = z.r.XMax
	}
	if p.Y < z.r.YMin {
		p.X = in.X + (z.r.YMin-in.Y)/slope
		p.Y = z.r.YMin
	} else if p.Y > z.r.YMax {
		p.X = in.X + (z.r.YMax-in.Y)/slope
		p.Y = z.r.YMax
	}
	return p
}

// clipBoth clips a segment with both ends out of range to the range
// rectangle (Liang-Barsky). It reports false when the segment misses it.
func (z *rasterizer[T]) clipBoth(a, b Point[T]) (Point[T], Point[T], bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := T(0), T(1)
	edges := [4][2]T{
		{-dx, a.X - z.r.XMin},
		{dx, z.r.XMax - a.X},
		{-dy, a.Y - z.r.YMin},
		{dy, z.r.YMax - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return Point[T]{X: a.X + t0*dx, Y: a.Y + t0*dy},
		Point[T]{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}
