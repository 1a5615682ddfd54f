// Package element provides the state and rendering pipeline shared by every
// widget.
//
// Every widget class descends from the element class registered by
// [Register]. Constructing a widget through the class registry first
// constructs a [Base], which the widget keeps as its super-object and
// reaches through [Element.Base]. Base carries the location, size, focus
// and redraw state, the background style table and the layout flags, and
// it implements [event.Target] so the shared capture state machine can
// drive it directly.
package element

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/core"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// ClassName is the name the element class is registered under.
const ClassName = "element"

// Element is the polymorphic contract every widget implements.
type Element interface {
	class.Object
	// Base returns the shared element state.
	Base() *Base
	// MinSize returns the smallest size the widget can render at.
	MinSize() (graphics.Size, error)
	// Render draws the widget at its current location. In mock mode it
	// only computes geometry and draws nothing.
	Render(r graphics.Renderer, mock bool) error
	// CaptureEvent offers a pointer event to the widget.
	CaptureEvent(ev event.Pointer) (event.Result, error)
	// Defocus drops any press in progress and clears the selection.
	Defocus()
}

// Window is the host an element is placed in. The element never owns or
// frees it.
type Window interface {
	// TakeFocus makes e the window's focus target.
	TakeFocus(e Element)
	// Invalidate tells the window that e needs to be redrawn.
	Invalidate(e Element)
}

// FocusState is the display state of an element.
type FocusState int

const (
	// Normal is the resting state.
	Normal FocusState = iota
	// Selected is shown while the element is pressed.
	Selected
)

func (s FocusState) String() string {
	if s == Selected {
		return "selected"
	}
	return "normal"
}

// Justify is a horizontal placement.
type Justify int

const (
	JustifyLeft Justify = iota
	JustifyCenter
	JustifyRight
)

// ParseJustify parses "left", "center" or "right".
func ParseJustify(s string) (Justify, error) {
	switch s {
	case "left":
		return JustifyLeft, nil
	case "center", "centre":
		return JustifyCenter, nil
	case "right":
		return JustifyRight, nil
	}
	return JustifyLeft, fmt.Errorf("element: unknown justification %q", s)
}

// Base is the element layer of every widget.
type Base struct {
	class.Instance

	ctx    *core.Context
	owner  Element
	handle core.Handle
	window Window

	loc         graphics.Point
	size        graphics.Size
	needsRedraw bool
	focus       FocusState
	hovered     bool
	styles      [3]*Style

	// Justify places foreground content horizontally.
	Justify Justify
	// FillX and FillY let containers stretch the element.
	FillX, FillY bool
}

// Register registers the element class in set. Widgets pass the returned
// class as the parent of their own classes.
func Register(ctx *core.Context, set *class.Set) (*class.Class, error) {
	return ctx.Registry.RegisterClass(ClassName, "base of every widget", set, nil, class.Funcs{
		Construct: func(class.Object) (class.Object, error) {
			return &Base{ctx: ctx, needsRedraw: true, Justify: JustifyCenter}, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*Base), src.(*Base)
			d.loc, d.size = s.loc, s.size
			d.Justify, d.FillX, d.FillY = s.Justify, s.FillX, s.FillY
			for i, st := range s.styles {
				if st != nil {
					cp := *st
					cp.Stops = append([]Stop(nil), st.Stops...)
					d.styles[i] = &cp
				}
			}
			return nil
		},
		Destroy: func(obj class.Object) {
			b := obj.(*Base)
			b.ctx.Arena.Release(b.handle)
			b.owner = nil
			b.window = nil
		},
	})
}

// Bind attaches the widget that owns b and registers it in the context's
// arena. Widget constructors call it once.
func (b *Base) Bind(owner Element) core.Handle {
	b.owner = owner
	b.handle = b.ctx.Arena.Insert(owner)
	return b.handle
}

// Base returns b, so Base satisfies the accessor half of [Element].
func (b *Base) Base() *Base { return b }

// Context returns the toolkit context the element was built in.
func (b *Base) Context() *core.Context { return b.ctx }

// Owner returns the widget b belongs to.
func (b *Base) Owner() Element { return b.owner }

// Handle returns the element's arena handle.
func (b *Base) Handle() core.Handle { return b.handle }

// Alive reports whether the element has not been freed.
func (b *Base) Alive() bool {
	return b.ctx != nil && b.ctx.Arena.Valid(b.handle)
}

// Location returns the top-left corner in window coordinates.
func (b *Base) Location() graphics.Point { return b.loc }

// SetLocation moves the element.
func (b *Base) SetLocation(p graphics.Point) {
	if b.loc != p {
		b.loc = p
		b.RequestRedraw()
	}
}

// Size returns the current size.
func (b *Base) Size() graphics.Size { return b.size }

// SetSize resizes the element.
func (b *Base) SetSize(s graphics.Size) {
	if b.size != s {
		b.size = s
		b.RequestRedraw()
	}
}

// Bounds returns the element rectangle in window coordinates.
func (b *Base) Bounds() graphics.Rect { return graphics.RectAt(b.loc, b.size) }

// Window returns the host window, if any.
func (b *Base) Window() Window { return b.window }

// SetWindow places the element in w.
func (b *Base) SetWindow(w Window) { b.window = w }

// NeedsRedraw reports whether the element has changed since its last
// render.
func (b *Base) NeedsRedraw() bool { return b.needsRedraw }

// RequestRedraw marks the element dirty and notifies the window.
func (b *Base) RequestRedraw() {
	b.needsRedraw = true
	if b.window != nil && b.owner != nil {
		b.window.Invalidate(b.owner)
	}
}

// ClearRedraw clears the redraw flag after a completed render.
func (b *Base) ClearRedraw() { b.needsRedraw = false }

// Focus returns the display state.
func (b *Base) Focus() FocusState { return b.focus }

// SetSelected switches between the Selected and Normal states.
func (b *Base) SetSelected(selected bool) {
	if selected {
		b.focus = Selected
	} else {
		b.focus = Normal
	}
}

// Hovered reports whether the pointer is over the element.
func (b *Base) Hovered() bool { return b.hovered }

// SetHovered updates the hover flag.
func (b *Base) SetHovered(hovered bool) { b.hovered = hovered }

// TakeFocus makes the element the focus target of its window.
func (b *Base) TakeFocus() {
	if b.window != nil && b.owner != nil {
		b.window.TakeFocus(b.owner)
	}
}

// Scale returns the context's high-DPI factor.
func (b *Base) Scale() float64 { return b.ctx.Scale() }

// ReportRender logs a debug record when render reports are enabled.
func (b *Base) ReportRender(msg string, attrs ...slog.Attr) {
	if !b.ctx.Reports().Render {
		return
	}
	name := ClassName
	if b.owner != nil && b.owner.Class() != nil {
		name = b.owner.Class().Name()
	}
	args := []any{slog.String("class", name), slog.String("bounds", b.Bounds().String())}
	for _, a := range attrs {
		args = append(args, a)
	}
	werrors.Logger().Debug(msg, args...)
}

// CheckClass fetches the layer of obj constructed for c, reporting a
// class-identity error when obj is not an instance of c.
func CheckClass[T class.Object](op string, obj class.Object, c *class.Class) (T, error) {
	t, err := class.As[T](obj, c)
	if err != nil {
		werr := werrors.New(op, werrors.KindClass, err)
		if c != nil {
			werr = werr.WithClass(c.Name())
		}
		return t, werr
	}
	return t, nil
}
