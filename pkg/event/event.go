// Package event implements the press/drag/release state machine shared by
// every interactive widget.
//
// A widget owns one [Capture] and feeds it pointer events together with a
// [Target] describing its bounds and display state. The machine decides
// whether the event is captured, updates the selection and hover flags,
// takes focus, and runs the widget's callbacks. After every callback it
// re-checks that the target is still alive, since a callback may free the
// widget that invoked it.
package event

import (
	"fmt"
	"log/slog"

	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// Kind identifies a pointer event.
type Kind int

const (
	// PointerDown is a button press.
	PointerDown Kind = iota
	// PointerMove is a pointer motion.
	PointerMove
	// PointerUp is a button release.
	PointerUp
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pointer is one pointer event in window coordinates.
type Pointer struct {
	Kind Kind
	X, Y int
}

// Down returns a PointerDown event at (x, y).
func Down(x, y int) Pointer { return Pointer{Kind: PointerDown, X: x, Y: y} }

// Move returns a PointerMove event at (x, y).
func Move(x, y int) Pointer { return Pointer{Kind: PointerMove, X: x, Y: y} }

// Up returns a PointerUp event at (x, y).
func Up(x, y int) Pointer { return Pointer{Kind: PointerUp, X: x, Y: y} }

// Result is the outcome of offering an event to a widget.
type Result int

const (
	// NotCaptured means the event should propagate to siblings and
	// containers.
	NotCaptured Result = iota
	// Captured means the widget consumed the event.
	Captured
	// CapturedFreed means the widget consumed the event and was freed by
	// one of its callbacks. The caller must not touch the widget again.
	CapturedFreed
)

func (r Result) String() string {
	switch r {
	case NotCaptured:
		return "not-captured"
	case Captured:
		return "captured"
	case CapturedFreed:
		return "captured-freed"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// State is the press state of a Capture.
type State int

const (
	// Idle means no press is in progress.
	Idle State = iota
	// Pressed means a press started inside the widget and has not been
	// released.
	Pressed
)

func (s State) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "idle"
}

// Target is the widget side of the state machine.
type Target interface {
	// Bounds returns the capture rectangle in window coordinates.
	Bounds() graphics.Rect
	// SetSelected updates the selected display flag.
	SetSelected(selected bool)
	// SetHovered updates the hovered display flag.
	SetHovered(hovered bool)
	// RequestRedraw marks the widget as needing a redraw.
	RequestRedraw()
	// TakeFocus makes the widget the focus target of its window.
	TakeFocus()
	// Alive reports whether the widget has not been freed.
	Alive() bool
}

// Hooks are the widget callbacks the machine runs. Any may be nil.
type Hooks struct {
	// OnClick runs when a press starts inside the bounds.
	OnClick func()
	// OnClicked runs when a press is released inside the bounds.
	OnClicked func()
	// OnExpanded and OnCollapsed run after a completed click on a toggle
	// widget, after OnClicked.
	OnExpanded  func()
	OnCollapsed func()
}

// Capture is the per-widget state machine. The zero value is idle.
type Capture struct {
	// Toggle makes a completed in-bounds click flip Expanded.
	Toggle bool
	// Expanded is the toggle state.
	Expanded bool
	// Report enables debug logging of handled events.
	Report bool
	// Name labels log records.
	Name string

	state    State
	selected bool
	hovered  bool
}

// State returns the press state.
func (c *Capture) State() State { return c.state }

// Selected reports the selected display flag.
func (c *Capture) Selected() bool { return c.selected }

// Hovered reports the hovered display flag.
func (c *Capture) Hovered() bool { return c.hovered }

// Reset returns the machine to Idle and clears the display flags without
// running any callback. Widgets call it when they lose focus.
func (c *Capture) Reset(t Target) {
	changed := c.state != Idle || c.selected || c.hovered
	c.state = Idle
	c.setSelected(t, false)
	c.setHovered(t, false)
	if changed {
		t.RequestRedraw()
	}
}

// Handle offers ev to the widget.
func (c *Capture) Handle(t Target, hooks Hooks, ev Pointer) Result {
	inside := t.Bounds().Contains(ev.X, ev.Y)
	res := c.handle(t, hooks, ev, inside)
	if c.Report {
		werrors.Logger().Debug("pointer event",
			slog.String("widget", c.Name),
			slog.String("kind", ev.Kind.String()),
			slog.Int("x", ev.X), slog.Int("y", ev.Y),
			slog.Bool("inside", inside),
			slog.String("state", c.state.String()),
			slog.String("result", res.String()))
	}
	return res
}

func (c *Capture) handle(t Target, hooks Hooks, ev Pointer, inside bool) Result {
	switch c.state {
	case Idle:
		switch ev.Kind {
		case PointerDown:
			if !inside {
				return NotCaptured
			}
			c.state = Pressed
			c.setSelected(t, true)
			t.TakeFocus()
			t.RequestRedraw()
			if !c.call(t, "OnClick", hooks.OnClick) {
				return CapturedFreed
			}
			return Captured
		case PointerMove:
			if c.hovered != inside {
				c.setHovered(t, inside)
				t.RequestRedraw()
			}
			return NotCaptured
		default:
			return NotCaptured
		}

	case Pressed:
		switch ev.Kind {
		case PointerMove:
			if c.selected != inside {
				c.setSelected(t, inside)
				t.RequestRedraw()
			}
			return Captured
		case PointerUp:
			c.state = Idle
			c.setSelected(t, false)
			c.setHovered(t, inside)
			t.RequestRedraw()
			if !inside {
				return Captured
			}
			if !c.call(t, "OnClicked", hooks.OnClicked) {
				return CapturedFreed
			}
			if c.Toggle {
				c.Expanded = !c.Expanded
				t.RequestRedraw()
				fn, name := hooks.OnCollapsed, "OnCollapsed"
				if c.Expanded {
					fn, name = hooks.OnExpanded, "OnExpanded"
				}
				if !c.call(t, name, fn) {
					return CapturedFreed
				}
			}
			return Captured
		default:
			// A second press while pressed stays with this widget.
			return Captured
		}
	}
	return NotCaptured
}

// call runs fn and reports whether the target survived it. Panics raised
// by fn are recovered and reported.
func (c *Capture) call(t Target, name string, fn func()) bool {
	if fn == nil {
		return true
	}
	werrors.Call("event."+name, fn)
	if !t.Alive() {
		werrors.Logger().Debug("widget freed by callback",
			slog.String("widget", c.Name), slog.String("callback", name))
		return false
	}
	return true
}

func (c *Capture) setSelected(t Target, v bool) {
	c.selected = v
	t.SetSelected(v)
}

func (c *Capture) setHovered(t Target, v bool) {
	c.hovered = v
	t.SetHovered(v)
}
