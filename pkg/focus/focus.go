// Package focus provides the window host elements are placed in: focus
// hand-off, redraw invalidation, pointer dispatch and focus traversal.
//
// A Manager holds its elements by arena handle, never by pointer, and
// resolves every handle again before each use. An element freed by one of
// its own callbacks therefore simply stops resolving and is dropped.
package focus

import (
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// TraversalDirection indicates the focus traversal direction.
type TraversalDirection int

const (
	// TraversalDirectionUp moves focus upward.
	TraversalDirectionUp TraversalDirection = iota

	// TraversalDirectionDown moves focus downward.
	TraversalDirectionDown

	// TraversalDirectionLeft moves focus leftward.
	TraversalDirectionLeft

	// TraversalDirectionRight moves focus rightward.
	TraversalDirectionRight
)

// Manager is an element window. It implements [element.Window].
type Manager struct {
	ctx     *core.Context
	handles []core.Handle
	focused core.Handle

	invalidations int

	// OnFocusChange is called after the focus target changes.
	OnFocusChange func(prev, next element.Element)
}

// NewManager returns an empty window bound to ctx's arena.
func NewManager(ctx *core.Context) *Manager {
	return &Manager{ctx: ctx}
}

// Add places e in the window. Elements added later are on top.
func (m *Manager) Add(e element.Element) {
	b := e.Base()
	b.SetWindow(m)
	m.handles = append(m.handles, b.Handle())
	b.RequestRedraw()
}

// Remove takes e out of the window without freeing it.
func (m *Manager) Remove(e element.Element) {
	h := e.Base().Handle()
	for i, x := range m.handles {
		if x == h {
			m.handles = append(m.handles[:i], m.handles[i+1:]...)
			break
		}
	}
	if m.focused == h {
		m.focused = core.Handle{}
	}
	e.Base().SetWindow(nil)
}

func (m *Manager) resolve(h core.Handle) element.Element {
	v, ok := m.ctx.Arena.Get(h)
	if !ok {
		return nil
	}
	e, _ := v.(element.Element)
	return e
}

// prune drops handles whose elements have been freed.
func (m *Manager) prune() {
	live := m.handles[:0]
	for _, h := range m.handles {
		if m.ctx.Arena.Valid(h) {
			live = append(live, h)
		}
	}
	m.handles = live
	if !m.ctx.Arena.Valid(m.focused) {
		m.focused = core.Handle{}
	}
}

// Elements returns the live elements, bottom first.
func (m *Manager) Elements() []element.Element {
	m.prune()
	out := make([]element.Element, 0, len(m.handles))
	for _, h := range m.handles {
		if e := m.resolve(h); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Focused returns the focus target, or nil.
func (m *Manager) Focused() element.Element {
	return m.resolve(m.focused)
}

// TakeFocus makes e the focus target. The previous target is defocused.
func (m *Manager) TakeFocus(e element.Element) {
	prev := m.Focused()
	if prev == e {
		return
	}
	if prev != nil {
		prev.Defocus()
	}
	if e == nil {
		m.focused = core.Handle{}
	} else {
		m.focused = e.Base().Handle()
	}
	if m.OnFocusChange != nil {
		werrors.Call("focus.OnFocusChange", func() { m.OnFocusChange(prev, e) })
	}
}

// Invalidate records that e needs a redraw.
func (m *Manager) Invalidate(element.Element) {
	m.invalidations++
}

// Invalidations returns the number of redraw requests received.
func (m *Manager) Invalidations() int { return m.invalidations }

// Dispatch offers ev to the elements from the top down and stops at the
// first one that captures it. It returns the outcome and the capturing
// element; the element is nil when it was freed while handling ev.
func (m *Manager) Dispatch(ev event.Pointer) (event.Result, element.Element, error) {
	m.prune()
	// Callbacks may add or remove elements while the event is offered.
	handles := slices.Clone(m.handles)
	for i := len(handles) - 1; i >= 0; i-- {
		if !slices.Contains(m.handles, handles[i]) {
			continue
		}
		e := m.resolve(handles[i])
		if e == nil {
			continue
		}
		res, err := e.CaptureEvent(ev)
		if err != nil {
			return res, nil, err
		}
		switch res {
		case event.Captured:
			return res, e, nil
		case event.CapturedFreed:
			if m.ctx.Reports().Events {
				werrors.Logger().Debug("element freed during dispatch",
					slog.String("event", ev.Kind.String()))
			}
			m.prune()
			return res, nil, nil
		}
	}
	return event.NotCaptured, nil, nil
}

var errRenderPanicked = errors.New("render panicked")

// Render renders every live element that needs a redraw, or all of them
// when force is set. A failing element does not stop the others, and a
// panicking one is reported as a KindPanic error.
func (m *Manager) Render(r graphics.Renderer, force bool) error {
	var errs []error
	for _, e := range m.Elements() {
		if !force && !e.Base().NeedsRedraw() {
			continue
		}
		var err error
		if werrors.Call("focus.Render", func() { err = e.Render(r, false) }) {
			err = werrors.New("focus.Render", werrors.KindPanic, errRenderPanicked)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MoveFocus moves focus by delta positions in insertion order.
func (m *Manager) MoveFocus(delta int) bool {
	elems := m.Elements()
	count := len(elems)
	if count == 0 {
		return false
	}
	current := m.findCurrentFocusIndex(elems)
	if current < 0 && delta < 0 {
		current = 0
	}
	next := wrapIndex(current+delta, count)
	m.TakeFocus(elems[next])
	return true
}

// FocusInDirection moves focus to the nearest element whose center lies
// in direction from the focused one, falling back to linear traversal.
func (m *Manager) FocusInDirection(direction TraversalDirection) bool {
	current := m.Focused()
	if current == nil {
		return m.MoveFocus(1)
	}
	currentRect := current.Base().Bounds()
	if currentRect.Empty() {
		return m.MoveFocus(linearDelta(direction))
	}

	var best element.Element
	bestScore := math.MaxFloat64
	for _, e := range m.Elements() {
		if e == current {
			continue
		}
		r := e.Base().Bounds()
		if r.Empty() || !isInDirection(currentRect, r, direction) {
			continue
		}
		if score := directionalScore(currentRect, r, direction); score < bestScore {
			bestScore = score
			best = e
		}
	}
	if best == nil {
		return m.MoveFocus(linearDelta(direction))
	}
	m.TakeFocus(best)
	return true
}

// findCurrentFocusIndex returns the index of the focused element, or -1.
func (m *Manager) findCurrentFocusIndex(elems []element.Element) int {
	f := m.Focused()
	for i, e := range elems {
		if e == f {
			return i
		}
	}
	return -1
}

// linearDelta returns +1 or -1 for linear focus traversal based on direction.
func linearDelta(direction TraversalDirection) int {
	if direction == TraversalDirectionUp || direction == TraversalDirectionLeft {
		return -1
	}
	return 1
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}

func center(r graphics.Rect) (x, y float64) {
	return float64(r.X) + float64(r.W)/2, float64(r.Y) + float64(r.H)/2
}

// isInDirection checks if target rect is in the specified direction from source.
func isInDirection(source, target graphics.Rect, direction TraversalDirection) bool {
	sourceCX, sourceCY := center(source)
	targetCX, targetCY := center(target)

	switch direction {
	case TraversalDirectionUp:
		return targetCY < sourceCY
	case TraversalDirectionDown:
		return targetCY > sourceCY
	case TraversalDirectionLeft:
		return targetCX < sourceCX
	case TraversalDirectionRight:
		return targetCX > sourceCX
	}
	return false
}

// directionalScore scores a traversal candidate; lower is better.
func directionalScore(source, target graphics.Rect, direction TraversalDirection) float64 {
	sourceCX, sourceCY := center(source)
	targetCX, targetCY := center(target)

	var primaryDist, crossDist float64
	switch direction {
	case TraversalDirectionUp, TraversalDirectionDown:
		primaryDist = math.Abs(targetCY - sourceCY)
		crossDist = math.Abs(targetCX - sourceCX)
	case TraversalDirectionLeft, TraversalDirectionRight:
		primaryDist = math.Abs(targetCX - sourceCX)
		crossDist = math.Abs(targetCY - sourceCY)
	}

	// Cross-axis distance counts double so aligned elements win.
	return primaryDist + crossDist*2
}
