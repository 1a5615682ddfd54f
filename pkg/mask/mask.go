// Package mask provides a per-pixel visibility mask for a rectangular
// region.
//
// A masked pixel is invisible: fills composited through the map leave it
// untouched. A fresh map is fully unmasked. Masks punch rounded corners out
// of backgrounds and, used the other way round (mask everything, then
// unmask a path), trace plotted lines.
package mask

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

// ErrOutOfBounds is returned by the bounded operations when a coordinate
// lies outside the map.
var ErrOutOfBounds = errors.New("mask: coordinate out of bounds")

// Map is a width×height grid of masked flags.
type Map struct {
	width  int
	height int
	masked []bool
}

// New creates a map with every pixel unmasked. Negative dimensions are
// treated as zero.
func New(width, height int) *Map {
	width, height = max(width, 0), max(height, 0)
	return &Map{
		width:  width,
		height: height,
		masked: make([]bool, width*height),
	}
}

// Width returns the map width.
func (m *Map) Width() int { return m.width }

// Height returns the map height.
func (m *Map) Height() int { return m.height }

func (m *Map) inside(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Masked reports whether (x, y) is masked. Pixels outside the map are
// reported masked.
func (m *Map) Masked(x, y int) bool {
	if !m.inside(x, y) {
		return true
	}
	return m.masked[y*m.width+x]
}

// MaskAll marks every pixel masked.
func (m *Map) MaskAll() {
	for i := range m.masked {
		m.masked[i] = true
	}
}

// UnmaskAll marks every pixel unmasked.
func (m *Map) UnmaskAll() {
	clear(m.masked)
}

// MaskPoint masks one pixel. Out-of-range coordinates are ignored.
func (m *Map) MaskPoint(x, y int) {
	if m.inside(x, y) {
		m.masked[y*m.width+x] = true
	}
}

// UnmaskPoint unmasks one pixel.
func (m *Map) UnmaskPoint(x, y int) error {
	if !m.inside(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	m.masked[y*m.width+x] = false
	return nil
}

// UnmaskUnboundedPoint unmasks one pixel, ignoring out-of-range
// coordinates.
func (m *Map) UnmaskUnboundedPoint(x, y int) {
	if m.inside(x, y) {
		m.masked[y*m.width+x] = false
	}
}

// UnmaskLine unmasks the one-pixel line between two points. Both endpoints
// must lie inside the map; otherwise nothing is changed.
func (m *Map) UnmaskLine(x1, y1, x2, y2 int) error {
	if !m.inside(x1, y1) || !m.inside(x2, y2) {
		return fmt.Errorf("%w: line (%d,%d)-(%d,%d) in %dx%d", ErrOutOfBounds, x1, y1, x2, y2, m.width, m.height)
	}
	graphics.WalkLine(x1, y1, x2, y2, func(x, y int) {
		m.masked[y*m.width+x] = false
	})
	return nil
}

// UnmaskUnboundedLine unmasks the one-pixel line between two points,
// silently dropping the parts that fall outside the map.
//
// Endpoints far outside the map are first clipped to a margin around it so
// the walk stays proportional to the map size.
func (m *Map) UnmaskUnboundedLine(x1, y1, x2, y2 int) {
	if m.width == 0 || m.height == 0 {
		return
	}
	lo := graphics.Pt(-m.width, -m.height)
	hi := graphics.Pt(2*m.width, 2*m.height)
	if !within(x1, y1, lo, hi) || !within(x2, y2, lo, hi) {
		var ok bool
		x1, y1, x2, y2, ok = clipLine(x1, y1, x2, y2, lo, hi)
		if !ok {
			return
		}
	}
	graphics.WalkLine(x1, y1, x2, y2, m.UnmaskUnboundedPoint)
}

// MaskCorners masks a triangular notch of the given leg length at each of
// the four corners, rounding the map's outline off. A notch of 3 masks six
// pixels per corner.
func (m *Map) MaskCorners(notch int) {
	for i := 0; i < notch; i++ {
		for j := 0; j < notch-i; j++ {
			m.MaskPoint(i, j)
			m.MaskPoint(m.width-1-i, j)
			m.MaskPoint(i, m.height-1-j)
			m.MaskPoint(m.width-1-i, m.height-1-j)
		}
	}
}

// MaskRect masks every pixel of r that lies inside the map.
func (m *Map) MaskRect(r graphics.Rect) {
	r = r.Intersect(graphics.Rect{W: m.width, H: m.height})
	for y := r.Y; y < r.Y+r.H; y++ {
		row := m.masked[y*m.width:]
		for x := r.X; x < r.X+r.W; x++ {
			row[x] = true
		}
	}
}

// CountUnmasked returns the number of unmasked pixels.
func (m *Map) CountUnmasked() int {
	n := 0
	for _, v := range m.masked {
		if !v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	c := New(m.width, m.height)
	copy(c.masked, m.masked)
	return c
}

// Spans calls fn for each maximal horizontal run of unmasked pixels in
// row y.
func (m *Map) Spans(y int, fn func(x0, x1 int)) {
	if y < 0 || y >= m.height {
		return
	}
	row := m.masked[y*m.width : (y+1)*m.width]
	start := -1
	for x, masked := range row {
		switch {
		case !masked && start < 0:
			start = x
		case masked && start >= 0:
			fn(start, x)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, m.width)
	}
}

// ColorModel implements [image.Image].
func (m *Map) ColorModel() color.Model { return color.AlphaModel }

// Bounds implements [image.Image].
func (m *Map) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

// At implements [image.Image]: unmasked pixels are opaque, masked pixels
// transparent.
func (m *Map) At(x, y int) color.Color {
	if m.Masked(x, y) {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xFF}
}

func within(x, y int, lo, hi graphics.Point) bool {
	return x >= lo.X && x <= hi.X && y >= lo.Y && y <= hi.Y
}

// clipLine clips the segment to the box [lo, hi] with the Liang-Barsky
// parametric test. It reports false when no part of the segment is inside.
func clipLine(x1, y1, x2, y2 int, lo, hi graphics.Point) (int, int, int, int, bool) {
	fx, fy := float64(x1), float64(y1)
	dx, dy := float64(x2-x1), float64(y2-y1)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, fx - float64(lo.X)},
		{dx, float64(hi.X) - fx},
		{-dy, fy - float64(lo.Y)},
		{dy, float64(hi.Y) - fy},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return round(fx + t0*dx), round(fy + t0*dy), round(fx + t1*dx), round(fy + t1*dy), true
}

func round(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
