// Package canvas records drawing operations and replays them against a
// renderer.
//
// A [Buffer] is filled by the application and replayed on every render of
// the canvas widget. Replay is strictly sequential: each operation reads
// and updates the [Pen] left behind by the operations before it.
package canvas

import (
	"fmt"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

// OpKind identifies a recorded operation.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpSetColor
	OpDrawPoint
	OpDrawLine
	OpDrawText
	// OpDrawTextLarge is a DrawText whose string exceeds ShortTextLimit
	// bytes. It is word-wrapped to the canvas width on replay.
	OpDrawTextLarge
	OpSetTextSize
	OpFill
)

// ShortTextLimit is the longest string, in bytes, recorded as OpDrawText.
const ShortTextLimit = 20

var opNames = [...]string{
	OpMoveTo:        "MoveTo",
	OpSetColor:      "SetColor",
	OpDrawPoint:     "DrawPoint",
	OpDrawLine:      "DrawLine",
	OpDrawText:      "DrawText",
	OpDrawTextLarge: "DrawTextLarge",
	OpSetTextSize:   "SetTextSize",
	OpFill:          "Fill",
}

func (k OpKind) String() string {
	if k >= 0 && int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one recorded operation. Which fields are meaningful depends on
// Kind.
type Op struct {
	Kind  OpKind
	X, Y  int
	W, H  int
	Size  int
	Color graphics.Color
	Text  string
}

func (o Op) String() string {
	switch o.Kind {
	case OpMoveTo, OpDrawPoint, OpDrawLine:
		return fmt.Sprintf("%s(%d,%d)", o.Kind, o.X, o.Y)
	case OpSetColor:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Color)
	case OpDrawText, OpDrawTextLarge:
		return fmt.Sprintf("%s(%q)", o.Kind, o.Text)
	case OpSetTextSize:
		return fmt.Sprintf("%s(%d)", o.Kind, o.Size)
	case OpFill:
		return fmt.Sprintf("%s(%d,%d)", o.Kind, o.W, o.H)
	}
	return o.Kind.String()
}

// Buffer is an append-only operation list. The zero value is empty and
// ready to use.
type Buffer struct {
	ops []Op
}

func (b *Buffer) push(op Op) {
	if len(b.ops) == cap(b.ops) {
		grown := make([]Op, len(b.ops), max(2*cap(b.ops), 8))
		copy(grown, b.ops)
		b.ops = grown
	}
	b.ops = append(b.ops, op)
}

// Append records ops as given, e.g. ones taken from another buffer.
func (b *Buffer) Append(ops ...Op) {
	for _, op := range ops {
		b.push(op)
	}
}

// MoveTo moves the pen without drawing.
func (b *Buffer) MoveTo(x, y int) { b.push(Op{Kind: OpMoveTo, X: x, Y: y}) }

// SetColor sets the pen color.
func (b *Buffer) SetColor(c graphics.Color) { b.push(Op{Kind: OpSetColor, Color: c}) }

// DrawPoint plots (x, y) and moves the pen there.
func (b *Buffer) DrawPoint(x, y int) { b.push(Op{Kind: OpDrawPoint, X: x, Y: y}) }

// DrawLine draws from the pen to (x, y) and moves the pen there.
func (b *Buffer) DrawLine(x, y int) { b.push(Op{Kind: OpDrawLine, X: x, Y: y}) }

// DrawText draws s with its top-left corner at the pen. The pen does not
// move.
func (b *Buffer) DrawText(s string) {
	kind := OpDrawText
	if len(s) > ShortTextLimit {
		kind = OpDrawTextLarge
	}
	b.push(Op{Kind: kind, Text: s})
}

// SetTextSize sets the font size used by later text operations.
func (b *Buffer) SetTextSize(px int) { b.push(Op{Kind: OpSetTextSize, Size: px}) }

// Fill fills a w×h rectangle at the pen with the pen color. A
// non-positive dimension extends to the canvas edge.
func (b *Buffer) Fill(w, h int) { b.push(Op{Kind: OpFill, W: w, H: h}) }

// Reset drops every operation, keeping the allocation.
func (b *Buffer) Reset() { b.ops = b.ops[:0] }

// Len returns the number of recorded operations.
func (b *Buffer) Len() int { return len(b.ops) }

// Ops returns a copy of the recorded operations.
func (b *Buffer) Ops() []Op {
	return append([]Op(nil), b.ops...)
}
