package testing

import (
	"fmt"

	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

func pt(x, y int) graphics.Point { return graphics.Point{X: x, Y: y} }

func center(r graphics.Rect) graphics.Point {
	return pt(r.X+r.W/2, r.Y+r.H/2)
}

// Tap simulates a tap at the center of the first element matched by finder.
func (t *WidgetTester) Tap(finder Finder) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Tap: finder matched no elements: %s", finder.Description())
	}
	return t.TapAt(center(result.First().Base().Bounds()))
}

// TapAt simulates a press and release at pos.
func (t *WidgetTester) TapAt(pos graphics.Point) error {
	if _, err := t.SendPointerDown(pos); err != nil {
		return err
	}
	_, err := t.SendPointerUp(pos)
	return err
}

// Drag simulates a press at the center of the first element matched by
// finder, a move by delta, and a release there.
func (t *WidgetTester) Drag(finder Finder, delta graphics.Point) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Drag: finder matched no elements: %s", finder.Description())
	}
	return t.DragFrom(center(result.First().Base().Bounds()), delta)
}

// DragFrom simulates a press at start, a move by delta and a release.
func (t *WidgetTester) DragFrom(start, delta graphics.Point) error {
	end := start.Add(delta)
	if _, err := t.SendPointerDown(start); err != nil {
		return err
	}
	if _, err := t.SendPointerMove(end); err != nil {
		return err
	}
	_, err := t.SendPointerUp(end)
	return err
}

// SendPointerDown dispatches a press at pos.
func (t *WidgetTester) SendPointerDown(pos graphics.Point) (event.Result, error) {
	return t.sendPointer(event.Down(pos.X, pos.Y))
}

// SendPointerMove dispatches a motion to pos.
func (t *WidgetTester) SendPointerMove(pos graphics.Point) (event.Result, error) {
	return t.sendPointer(event.Move(pos.X, pos.Y))
}

// SendPointerUp dispatches a release at pos.
func (t *WidgetTester) SendPointerUp(pos graphics.Point) (event.Result, error) {
	return t.sendPointer(event.Up(pos.X, pos.Y))
}

func (t *WidgetTester) sendPointer(ev event.Pointer) (event.Result, error) {
	res, _, err := t.window.Dispatch(ev)
	return res, err
}
