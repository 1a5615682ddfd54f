package widgets

import (
	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// Button is a push button with a text caption.
//
// A press inside the button selects it, takes focus and runs OnClick.
// Releasing inside runs OnClicked; releasing outside cancels the click.
// Dragging out of the button while pressed deselects it and dragging back
// in selects it again.
//
// Example:
//
//	btn, err := tk.NewButton("Save")
//	if err != nil {
//	    return err
//	}
//	btn.OnClicked = save
//	btn.Configure("FontBold", "FontSize=14")
//
// Button accepts the settings of [settings.TextSchema]. While selected the
// caption is drawn in the FontColorSelect color.
type Button struct {
	class.Instance
	textual

	tk      *Toolkit
	capture event.Capture

	// OnClick runs when a press starts inside the button.
	OnClick func()
	// OnClicked runs when a press is released inside the button.
	OnClicked func()
}

func (tk *Toolkit) buttonFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(ButtonClass, super)
			if err != nil {
				return nil, err
			}
			b := &Button{tk: tk, textual: newTextual(base, settings.TextSchema)}
			b.capture.Name = ButtonClass
			b.capture.Report = tk.ctx.Reports().Events
			base.Bind(b)
			return b, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*Button), src.(*Button)
			d.copyFrom(&s.textual)
			d.OnClick, d.OnClicked = s.OnClick, s.OnClicked
			return nil
		},
		Destroy: func(obj class.Object) {
			b := obj.(*Button)
			b.OnClick, b.OnClicked = nil, nil
			b.shared = nil
		},
	}
}

// NewButton builds a button with the given caption.
func (tk *Toolkit) NewButton(text string) (*Button, error) {
	b, err := build[*Button](tk, tk.Button)
	if err != nil {
		return nil, err
	}
	faceStyles(b.base)
	b.text = text
	tk.applyTheme(ButtonClass, b.base, b.Configure)
	return b, nil
}

// Base implements element.Element.
func (b *Button) Base() *element.Base { return b.base }

// State returns the press state.
func (b *Button) State() event.State { return b.capture.State() }

// MinSize implements element.Element.
func (b *Button) MinSize() (graphics.Size, error) {
	return b.boxSize(b.text, 0)
}

// Render implements element.Element.
func (b *Button) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("button.Render", b, b.tk.Element)
	if err != nil {
		return err
	}
	f, err := b.font()
	if err != nil {
		return renderError(ButtonClass, werrors.KindResource, err)
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(ButtonClass, werrors.KindRender, err)
	}
	cfg := b.Config()
	inner := bevel(r, base, true, cfg.BorderLight, cfg.BorderDark)
	if err := b.drawText(r, f, b.text, inner, b.textColor(true)); err != nil {
		return err
	}
	base.ClearRedraw()
	return nil
}

// CaptureEvent implements element.Element.
func (b *Button) CaptureEvent(ev event.Pointer) (event.Result, error) {
	hooks := event.Hooks{OnClick: b.OnClick, OnClicked: b.OnClicked}
	return b.capture.Handle(b.base, hooks, ev), nil
}

// Defocus implements element.Element.
func (b *Button) Defocus() {
	b.capture.Reset(b.base)
}
