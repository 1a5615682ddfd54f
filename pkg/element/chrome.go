package element

import (
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/mask"
)

const (
	// CornerNotch is the leg length of the triangle masked off each
	// corner of a widget. Leg 2 is the three pixel notch at (0,0), (1,0)
	// and (0,1).
	CornerNotch = 2
	// JustifyInset is the gap kept between left or right justified
	// content and the widget edge.
	JustifyInset = 4
)

// BorderWidth returns the bevel thickness for a scale factor: one pixel
// below 2.0, int(scale) pixels from 2.0 up.
func BorderWidth(scale float64) int {
	if scale < 2 {
		return 1
	}
	return int(scale)
}

// BorderExtra returns the pixels a scaled border adds to each dimension.
func BorderExtra(scale float64) int {
	return 2 * (BorderWidth(scale) - 1)
}

// CornerMask returns a w×h mask with every corner notched off.
func CornerMask(w, h int) *mask.Map {
	m := mask.New(w, h)
	m.MaskCorners(CornerNotch)
	return m
}

// DrawBevel draws an n pixel border around rect following the notched
// corners: light on the top, left and right edges, dark on the bottom.
func DrawBevel(r graphics.Renderer, rect graphics.Rect, light, dark graphics.Color, n int) {
	for i := 0; i < n; i++ {
		ring := rect.Inset(i)
		if ring.W <= 2*CornerNotch || ring.H <= 2*CornerNotch {
			break
		}
		bevelRing(r, ring, light, dark)
	}
}

func bevelRing(r graphics.Renderer, rc graphics.Rect, light, dark graphics.Color) {
	const c = CornerNotch
	x0, y0 := rc.X, rc.Y
	x1, y1 := rc.X+rc.W-1, rc.Y+rc.H-1

	r.SetDrawColor(light)
	r.FillRect(graphics.Rect{X: x0 + c, Y: y0, W: rc.W - 2*c, H: 1})
	r.FillRect(graphics.Rect{X: x0, Y: y0 + c, W: 1, H: rc.H - 2*c})
	r.FillRect(graphics.Rect{X: x1, Y: y0 + c, W: 1, H: rc.H - 2*c})
	for k := 1; k < c; k++ {
		r.DrawPoint(x0+c-k, y0+k)
		r.DrawPoint(x1-c+k, y0+k)
	}

	r.SetDrawColor(dark)
	r.FillRect(graphics.Rect{X: x0 + c, Y: y1, W: rc.W - 2*c, H: 1})
	for k := 1; k < c; k++ {
		r.DrawPoint(x0+k, y1-c+k)
		r.DrawPoint(x1-k, y1-c+k)
	}
}

// Place positions a w×h box inside outer: horizontally by j, keeping inset
// pixels from the edge for left and right placement, and vertically
// centered.
func Place(outer graphics.Rect, w, h int, j Justify, inset int) graphics.Point {
	var x int
	switch j {
	case JustifyLeft:
		x = outer.X + inset
	case JustifyRight:
		x = outer.X + outer.W - w - inset
	default:
		x = outer.X + (outer.W-w)/2
	}
	return graphics.Point{X: x, Y: outer.Y + (outer.H-h)/2}
}
