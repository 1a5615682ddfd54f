package testing

import (
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// Op names recorded by [Recorder].
const (
	OpSetDrawColor = "setDrawColor"
	OpDrawPoint    = "drawPoint"
	OpDrawLine     = "drawLine"
	OpFillRect     = "fillRect"
	OpCopyTexture  = "copyTexture"
)

// DisplayOp is one recorded renderer call.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Int returns the integer parameter key, or 0 when absent.
func (o DisplayOp) Int(key string) int {
	switch v := o.Params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// Str returns the string parameter key, or "" when absent.
func (o DisplayOp) Str(key string) string {
	s, _ := o.Params[key].(string)
	return s
}

// Recorder implements graphics.Renderer by recording calls. Draw ops carry
// the draw color in effect when they were issued.
type Recorder struct {
	ops   []DisplayOp
	color graphics.Color

	// TextureErr, when set, is returned by CopyTexture.
	TextureErr error
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) SetDrawColor(c graphics.Color) {
	r.color = c
	r.ops = append(r.ops, DisplayOp{
		Op:     OpSetDrawColor,
		Params: sortedMap("color", serializeColor(c)),
	})
}

func (r *Recorder) DrawPoint(x, y int) {
	r.ops = append(r.ops, DisplayOp{
		Op:     OpDrawPoint,
		Params: sortedMap("x", x, "y", y, "color", serializeColor(r.color)),
	})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 int) {
	r.ops = append(r.ops, DisplayOp{
		Op:     OpDrawLine,
		Params: sortedMap("x1", x1, "y1", y1, "x2", x2, "y2", y2, "color", serializeColor(r.color)),
	})
}

func (r *Recorder) FillRect(rect graphics.Rect) {
	params := serializeRect(rect)
	params["color"] = serializeColor(r.color)
	r.ops = append(r.ops, DisplayOp{Op: OpFillRect, Params: params})
}

func (r *Recorder) CopyTexture(tex graphics.Texture, dst graphics.Rect) error {
	if r.TextureErr != nil {
		return r.TextureErr
	}
	params := serializeRect(dst)
	if t, ok := tex.(*Texture); ok {
		params["text"] = t.Text
		params["color"] = serializeColor(t.Color)
	}
	r.ops = append(r.ops, DisplayOp{Op: OpCopyTexture, Params: params})
	return nil
}

// Color returns the current draw color.
func (r *Recorder) Color() graphics.Color { return r.color }

// Ops returns every recorded op in call order.
func (r *Recorder) Ops() []DisplayOp { return r.ops }

// Filter returns the recorded ops named op.
func (r *Recorder) Filter(op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range r.ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of recorded ops named op.
func (r *Recorder) Count(op string) int {
	return len(r.Filter(op))
}

// Draws returns the number of ops that touch pixels.
func (r *Recorder) Draws() int {
	n := 0
	for _, o := range r.ops {
		if o.Op != OpSetDrawColor {
			n++
		}
	}
	return n
}

// Reset drops the recorded ops.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Snapshot captures the recorded ops.
func (r *Recorder) Snapshot() *Snapshot {
	return &Snapshot{DisplayOps: append([]DisplayOp(nil), r.ops...)}
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap("x", r.X, "y", r.Y, "w", r.W, "h", r.H)
}

func serializeColor(c graphics.Color) string {
	return c.String()
}

// sortedMap creates a map from alternating key-value pairs. The snapshot
// encoder writes keys in sorted order.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
