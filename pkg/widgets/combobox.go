package widgets

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// ErrIndex is returned for an item index outside the item list.
var ErrIndex = errors.New("widgets: item index out of range")

// ComboBox shows the selected item of a list and drops the list down
// below itself when clicked.
//
// A completed click on the box toggles the list, running OnClicked and
// then OnExpanded or OnCollapsed. While the list is open, a press and
// release on the same item selects it, runs OnSelect and closes the list.
// A press anywhere outside the box and the list closes it too.
type ComboBox struct {
	class.Instance
	textual

	tk      *Toolkit
	capture event.Capture

	items    []string
	selected int
	pressed  int
	hover    int

	OnClick     func()
	OnClicked   func()
	OnExpanded  func()
	OnCollapsed func()
	// OnSelect runs when an item is picked from the open list.
	OnSelect func(index int)
}

func (tk *Toolkit) comboBoxFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(ComboBoxClass, super)
			if err != nil {
				return nil, err
			}
			c := &ComboBox{
				tk:       tk,
				textual:  newTextual(base, settings.TextSchema),
				selected: -1,
				pressed:  -1,
				hover:    -1,
			}
			c.capture.Toggle = true
			c.capture.Name = ComboBoxClass
			c.capture.Report = tk.ctx.Reports().Events
			base.Justify = element.JustifyLeft
			base.Bind(c)
			return c, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*ComboBox), src.(*ComboBox)
			d.copyFrom(&s.textual)
			d.items = append([]string(nil), s.items...)
			d.selected = s.selected
			d.OnClick, d.OnClicked = s.OnClick, s.OnClicked
			d.OnExpanded, d.OnCollapsed = s.OnExpanded, s.OnCollapsed
			d.OnSelect = s.OnSelect
			return nil
		},
		Destroy: func(obj class.Object) {
			c := obj.(*ComboBox)
			c.items = nil
			c.OnClick, c.OnClicked, c.OnExpanded, c.OnCollapsed = nil, nil, nil, nil
			c.OnSelect = nil
			c.shared = nil
		},
	}
}

// NewComboBox builds a combo box. The first item, if any, is selected.
func (tk *Toolkit) NewComboBox(items ...string) (*ComboBox, error) {
	c, err := build[*ComboBox](tk, tk.ComboBox)
	if err != nil {
		return nil, err
	}
	faceStyles(c.base)
	c.SetItems(items...)
	tk.applyTheme(ComboBoxClass, c.base, c.Configure)
	return c, nil
}

// Base implements element.Element.
func (c *ComboBox) Base() *element.Base { return c.base }

// Items returns a copy of the item list.
func (c *ComboBox) Items() []string { return append([]string(nil), c.items...) }

// SetItems replaces the items and selects the first one.
func (c *ComboBox) SetItems(items ...string) {
	c.items = append(c.items[:0], items...)
	c.selected = -1
	if len(c.items) > 0 {
		c.selected = 0
	}
	c.syncText()
	c.base.RequestRedraw()
}

// AddItem appends an item. The first item added is selected.
func (c *ComboBox) AddItem(item string) {
	c.items = append(c.items, item)
	if c.selected < 0 {
		c.selected = 0
		c.syncText()
	}
	c.base.RequestRedraw()
}

// Selected returns the selected index, or -1 when the list is empty.
func (c *ComboBox) Selected() int { return c.selected }

// Select selects an item without running OnSelect.
func (c *ComboBox) Select(index int) error {
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndex, index, len(c.items))
	}
	if index != c.selected {
		c.selected = index
		c.syncText()
		c.base.RequestRedraw()
	}
	return nil
}

// Expanded reports whether the item list is open.
func (c *ComboBox) Expanded() bool { return c.capture.Expanded }

// State returns the press state of the box.
func (c *ComboBox) State() event.State { return c.capture.State() }

func (c *ComboBox) syncText() {
	c.text = ""
	if c.selected >= 0 {
		c.text = c.items[c.selected]
	}
}

// MinSize implements element.Element. The width fits the widest item plus
// the arrow, which is one line height wide.
func (c *ComboBox) MinSize() (graphics.Size, error) {
	f, err := c.font()
	if err != nil {
		return graphics.Size{}, err
	}
	widest, best := "", -1
	for _, it := range c.items {
		w, _, err := c.measure(f, it)
		if err != nil {
			return graphics.Size{}, err
		}
		if w > best {
			widest, best = it, w
		}
	}
	_, lh, err := c.measure(f, widest)
	if err != nil {
		return graphics.Size{}, err
	}
	return c.boxSize(widest, lh)
}

// listRect returns the drop-down list area below the box.
func (c *ComboBox) listRect() graphics.Rect {
	b := c.base.Bounds()
	return graphics.Rect{X: b.X, Y: b.Y + b.H, W: b.W, H: b.H * len(c.items)}
}

func (c *ComboBox) itemAt(list graphics.Rect, y int) int {
	rowH := c.base.Size().H
	if rowH <= 0 {
		return -1
	}
	i := (y - list.Y) / rowH
	if i < 0 || i >= len(c.items) {
		return -1
	}
	return i
}

// Render implements element.Element.
func (c *ComboBox) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("combobox.Render", c, c.tk.Element)
	if err != nil {
		return err
	}
	f, err := c.font()
	if err != nil {
		return renderError(ComboBoxClass, werrors.KindResource, err)
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(ComboBoxClass, werrors.KindRender, err)
	}
	cfg := c.Config()
	inner := bevel(r, base, true, cfg.BorderLight, cfg.BorderDark)
	lh := c.base.Context().Fonts.LineHeight(f)

	arrow := graphics.Rect{X: inner.X + inner.W - lh, Y: inner.Y, W: lh, H: inner.H}
	field := inner
	field.W = max(inner.W-lh, 0)
	if err := c.drawText(r, f, c.text, field, c.textColor(true)); err != nil {
		return err
	}
	drawArrow(r, arrow, cfg.Color, c.capture.Expanded)

	if c.capture.Expanded {
		if err := c.renderList(r, f, cfg); err != nil {
			return err
		}
	}
	base.ClearRedraw()
	return nil
}

func (c *ComboBox) renderList(r graphics.Renderer, f graphics.Font, cfg *settings.TextConfig) error {
	list := c.listRect()
	normal, _ := c.base.Style(element.StyleNormal)
	marked, ok := c.base.Style(element.StyleSelected)
	if !ok {
		marked = normal
	}
	rowH := c.base.Size().H
	for i, it := range c.items {
		row := graphics.Rect{X: list.X, Y: list.Y + i*rowH, W: list.W, H: rowH}
		style, color := normal, cfg.Color
		if i == c.hover || (c.hover < 0 && i == c.selected) {
			style, color = marked, cfg.ColorSelect
		}
		element.Composite(r, row, style, nil)
		if err := c.drawText(r, f, it, row.Inset(element.BorderWidth(c.base.Scale())), color); err != nil {
			return err
		}
	}
	element.DrawBevel(r, list, cfg.BorderLight, cfg.BorderDark, 1)
	c.base.ReportRender("combobox list", slog.Int("items", len(c.items)), slog.Int("hover", c.hover))
	return nil
}

// drawArrow draws a filled triangle centered in area, pointing down, or up
// when open.
func drawArrow(r graphics.Renderer, area graphics.Rect, color graphics.Color, up bool) {
	half := min(area.W, area.H) / 4
	if half <= 0 {
		return
	}
	cx := area.X + area.W/2
	top := area.Y + (area.H-half)/2
	r.SetDrawColor(color)
	for k := 0; k < half; k++ {
		row := k
		if up {
			row = half - 1 - k
		}
		r.DrawLine(cx-half+row, top+k, cx+half-row, top+k)
	}
}

// CaptureEvent implements element.Element.
func (c *ComboBox) CaptureEvent(ev event.Pointer) (event.Result, error) {
	if c.capture.Expanded && c.capture.State() == event.Idle {
		list := c.listRect()
		if list.Contains(ev.X, ev.Y) {
			return c.listEvent(list, ev), nil
		}
		if ev.Kind == event.PointerDown && !c.base.Bounds().Contains(ev.X, ev.Y) {
			if !c.collapse(true) {
				return event.CapturedFreed, nil
			}
			return event.NotCaptured, nil
		}
	}
	hooks := event.Hooks{
		OnClick:     c.OnClick,
		OnClicked:   c.OnClicked,
		OnExpanded:  c.OnExpanded,
		OnCollapsed: c.OnCollapsed,
	}
	res := c.capture.Handle(c.base, hooks, ev)
	if res != event.CapturedFreed && !c.capture.Expanded {
		c.hover, c.pressed = -1, -1
	}
	return res, nil
}

func (c *ComboBox) listEvent(list graphics.Rect, ev event.Pointer) event.Result {
	i := c.itemAt(list, ev.Y)
	switch ev.Kind {
	case event.PointerDown:
		c.pressed = i
		c.setHover(i)
	case event.PointerMove:
		c.setHover(i)
	case event.PointerUp:
		picked := c.pressed
		c.pressed = -1
		if picked < 0 || picked != i {
			return event.Captured
		}
		c.selected = i
		c.syncText()
		c.base.RequestRedraw()
		if c.OnSelect != nil && !c.call("OnSelect", func() { c.OnSelect(i) }) {
			return event.CapturedFreed
		}
		if !c.collapse(true) {
			return event.CapturedFreed
		}
	}
	return event.Captured
}

func (c *ComboBox) setHover(i int) {
	if c.hover != i {
		c.hover = i
		c.base.RequestRedraw()
	}
}

// collapse closes the list. With notify set OnCollapsed runs; the result
// reports whether the combo box survived it.
func (c *ComboBox) collapse(notify bool) bool {
	if !c.capture.Expanded {
		return true
	}
	c.capture.Expanded = false
	c.hover, c.pressed = -1, -1
	c.base.RequestRedraw()
	if notify {
		return c.call("OnCollapsed", c.OnCollapsed)
	}
	return true
}

func (c *ComboBox) call(name string, fn func()) bool {
	if fn == nil {
		return true
	}
	werrors.Call("combobox."+name, fn)
	return c.base.Alive()
}

// Defocus implements element.Element. The list closes without running
// OnCollapsed.
func (c *ComboBox) Defocus() {
	c.capture.Reset(c.base)
	c.collapse(false)
}
