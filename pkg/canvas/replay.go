package canvas

import (
	"fmt"
	"strings"

	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// DefaultTextSize is the pen's text size before any SetTextSize.
const DefaultTextSize = 12

// Pen is the mutable replay state. Pos is relative to the canvas origin.
type Pen struct {
	Pos      graphics.Point
	Color    graphics.Color
	TextSize int
}

// NewPen returns the pen every replay starts from.
func NewPen() Pen {
	return Pen{Color: graphics.ColorBlack, TextSize: DefaultTextSize}
}

// Typesetter resolves fonts by pixel size and rasterizes text for replay.
type Typesetter interface {
	Font(size int) (graphics.Font, error)
	MeasureText(f graphics.Font, s string) (w, h int, err error)
	LineHeight(f graphics.Font) int
	RenderText(s string, f graphics.Font, c graphics.Color) (graphics.Texture, error)
}

// FontSet is a Typesetter drawing from one font set of a provider.
type FontSet struct {
	Provider graphics.FontProvider
	Text     graphics.TextRasterizer
	Set      string
	// Scale converts design sizes to pixel sizes. Nil leaves sizes as is.
	Scale func(int) int
}

func (s FontSet) Font(size int) (graphics.Font, error) {
	if s.Scale != nil {
		size = s.Scale(size)
	}
	return s.Provider.Font(s.Set, size, false, false)
}

func (s FontSet) MeasureText(f graphics.Font, str string) (int, int, error) {
	return s.Provider.MeasureText(f, str)
}

func (s FontSet) LineHeight(f graphics.Font) int { return s.Provider.LineHeight(f) }

func (s FontSet) RenderText(str string, f graphics.Font, c graphics.Color) (graphics.Texture, error) {
	return s.Text.RenderText(str, f, c)
}

// Replay draws the buffer into the size-sized area at origin, starting
// from pen, and returns the pen left by the last operation. Drawing is
// kept inside the area. ts may be nil when the buffer holds no text.
//
// A text operation that fails aborts the replay; the returned pen is the
// state at the failing operation.
func (b *Buffer) Replay(r graphics.Renderer, ts Typesetter, origin graphics.Point, size graphics.Size, pen Pen) (Pen, error) {
	rp := replayer{r: r, ts: ts, area: graphics.RectAt(origin, size), pen: pen}
	r.SetDrawColor(pen.Color)
	for i, op := range b.ops {
		if err := rp.apply(op); err != nil {
			return rp.pen, werrors.New("canvas.Replay", werrors.KindResource,
				fmt.Errorf("op %d %s: %w", i, op, err))
		}
	}
	return rp.pen, nil
}

type replayer struct {
	r    graphics.Renderer
	ts   Typesetter
	area graphics.Rect
	pen  Pen
}

func (rp *replayer) abs(x, y int) (int, int) {
	return rp.area.X + x, rp.area.Y + y
}

func (rp *replayer) apply(op Op) error {
	switch op.Kind {
	case OpMoveTo:
		rp.pen.Pos = graphics.Pt(op.X, op.Y)
	case OpSetColor:
		rp.pen.Color = op.Color
		rp.r.SetDrawColor(op.Color)
	case OpDrawPoint:
		rp.pen.Pos = graphics.Pt(op.X, op.Y)
		if x, y := rp.abs(op.X, op.Y); rp.area.Contains(x, y) {
			rp.r.DrawPoint(x, y)
		}
	case OpDrawLine:
		x1, y1 := rp.abs(rp.pen.Pos.X, rp.pen.Pos.Y)
		x2, y2 := rp.abs(op.X, op.Y)
		rp.line(x1, y1, x2, y2)
		rp.pen.Pos = graphics.Pt(op.X, op.Y)
	case OpSetTextSize:
		if op.Size <= 0 {
			return fmt.Errorf("text size %d", op.Size)
		}
		rp.pen.TextSize = op.Size
	case OpFill:
		x, y := rp.abs(rp.pen.Pos.X, rp.pen.Pos.Y)
		fill := graphics.Rect{X: x, Y: y, W: op.W, H: op.H}
		if fill.W <= 0 {
			fill.W = rp.area.X + rp.area.W - x
		}
		if fill.H <= 0 {
			fill.H = rp.area.Y + rp.area.H - y
		}
		if fill = fill.Intersect(rp.area); !fill.Empty() {
			rp.r.FillRect(fill)
		}
	case OpDrawText:
		return rp.text([]string{op.Text})
	case OpDrawTextLarge:
		return rp.wrapped(op.Text)
	default:
		return fmt.Errorf("unknown operation")
	}
	return nil
}

// line draws with a single DrawLine when both ends are inside the area and
// pixel by pixel otherwise, so nothing lands outside the canvas.
func (rp *replayer) line(x1, y1, x2, y2 int) {
	if rp.area.Contains(x1, y1) && rp.area.Contains(x2, y2) {
		rp.r.DrawLine(x1, y1, x2, y2)
		return
	}
	graphics.WalkLine(x1, y1, x2, y2, func(x, y int) {
		if rp.area.Contains(x, y) {
			rp.r.DrawPoint(x, y)
		}
	})
}

// text draws lines top to bottom from the pen. Lines starting below the
// canvas are dropped.
func (rp *replayer) text(lines []string) error {
	if rp.ts == nil {
		return fmt.Errorf("no typesetter")
	}
	f, err := rp.ts.Font(rp.pen.TextSize)
	if err != nil {
		return err
	}
	x, y := rp.abs(rp.pen.Pos.X, rp.pen.Pos.Y)
	step := rp.ts.LineHeight(f)
	for _, line := range lines {
		if y >= rp.area.Y+rp.area.H {
			break
		}
		if line != "" {
			tex, err := rp.ts.RenderText(line, f, rp.pen.Color)
			if err != nil {
				return err
			}
			if err := rp.r.CopyTexture(tex, graphics.RectAt(graphics.Pt(x, y), tex.Size())); err != nil {
				return err
			}
		}
		y += step
	}
	return nil
}

// wrapped breaks s into lines that fit between the pen and the right edge
// of the canvas, splitting at spaces. A word wider than the line gets a
// line of its own.
func (rp *replayer) wrapped(s string) error {
	if rp.ts == nil {
		return fmt.Errorf("no typesetter")
	}
	f, err := rp.ts.Font(rp.pen.TextSize)
	if err != nil {
		return err
	}
	avail := rp.area.W - rp.pen.Pos.X
	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		w, _, err := rp.ts.MeasureText(f, next)
		if err != nil {
			return err
		}
		if w <= avail || cur == "" {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return rp.text(lines)
}
