package widgets

import (
	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
)

// Label displays a line of text. It never captures events, so pointer
// input passes through to whatever lies below it.
type Label struct {
	class.Instance
	textual

	tk *Toolkit

	// Border draws the bevel around the label.
	Border bool
}

func (tk *Toolkit) labelFuncs() class.Funcs {
	return class.Funcs{
		Construct: func(super class.Object) (class.Object, error) {
			base, err := baseOf(LabelClass, super)
			if err != nil {
				return nil, err
			}
			l := &Label{tk: tk, textual: newTextual(base, settings.LabelSchema)}
			base.Bind(l)
			return l, nil
		},
		Copy: func(dst, src class.Object) error {
			d, s := dst.(*Label), src.(*Label)
			d.copyFrom(&s.textual)
			d.Border = s.Border
			return nil
		},
		Destroy: func(obj class.Object) {
			obj.(*Label).shared = nil
		},
	}
}

// NewLabel builds a label. Labels are transparent and borderless until
// styled.
func (tk *Toolkit) NewLabel(text string) (*Label, error) {
	l, err := build[*Label](tk, tk.Label)
	if err != nil {
		return nil, err
	}
	l.text = text
	tk.applyTheme(LabelClass, l.base, l.Configure)
	return l, nil
}

// Base implements element.Element.
func (l *Label) Base() *element.Base { return l.base }

// MinSize implements element.Element.
func (l *Label) MinSize() (graphics.Size, error) {
	return l.boxSize(l.text, 0)
}

// Render implements element.Element.
func (l *Label) Render(r graphics.Renderer, mock bool) error {
	base, err := element.CheckClass[*element.Base]("label.Render", l, l.tk.Element)
	if err != nil {
		return err
	}
	f, err := l.font()
	if err != nil {
		return renderError(LabelClass, werrors.KindResource, err)
	}
	if mock {
		return nil
	}
	if err := background(r, base); err != nil {
		return renderError(LabelClass, werrors.KindRender, err)
	}
	cfg := l.Config()
	inner := bevel(r, base, l.Border, cfg.BorderLight, cfg.BorderDark)
	if err := l.drawText(r, f, l.text, inner, l.textColor(false)); err != nil {
		return err
	}
	base.ClearRedraw()
	return nil
}

// CaptureEvent implements element.Element. Labels never capture.
func (l *Label) CaptureEvent(event.Pointer) (event.Result, error) {
	return event.NotCaptured, nil
}

// Defocus implements element.Element.
func (l *Label) Defocus() {}
