package widgets

import (
	"fmt"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
)

// SetName is the class set the widget classes are registered in.
const SetName = "widgets"

// Class names, also the keys of the configuration theme.
const (
	ButtonClass      = "button"
	LabelClass       = "label"
	ComboBoxClass    = "combobox"
	ProgressBarClass = "progressbar"
	CanvasClass      = "canvas"
	PlotClass        = "plot"
)

// Toolkit holds the widget classes registered in one context.
type Toolkit struct {
	ctx *core.Context
	set *class.Set

	Element     *class.Class
	Button      *class.Class
	Label       *class.Class
	ComboBox    *class.Class
	ProgressBar *class.Class
	Canvas      *class.Class
	Plot        *class.Class
}

// NewToolkit registers the element class and every widget class in ctx.
func NewToolkit(ctx *core.Context) (*Toolkit, error) {
	set, err := ctx.Registry.RegisterSet(SetName, "standard widgets")
	if err != nil {
		return nil, werrors.New("widgets.NewToolkit", werrors.KindInit, err)
	}
	tk := &Toolkit{ctx: ctx, set: set}
	if tk.Element, err = element.Register(ctx, set); err != nil {
		return nil, werrors.New("widgets.NewToolkit", werrors.KindInit, err)
	}

	for _, reg := range []struct {
		dst   **class.Class
		name  string
		desc  string
		funcs class.Funcs
	}{
		{&tk.Button, ButtonClass, "push button", tk.buttonFuncs()},
		{&tk.Label, LabelClass, "static text", tk.labelFuncs()},
		{&tk.ComboBox, ComboBoxClass, "drop-down selector", tk.comboBoxFuncs()},
		{&tk.ProgressBar, ProgressBarClass, "progress indicator", tk.progressBarFuncs()},
		{&tk.Canvas, CanvasClass, "recorded drawing surface", tk.canvasFuncs()},
		{&tk.Plot, PlotClass, "2D line plot", tk.plotFuncs()},
	} {
		c, err := ctx.Registry.RegisterClass(reg.name, reg.desc, set, tk.Element, reg.funcs)
		if err != nil {
			return nil, werrors.New("widgets.NewToolkit", werrors.KindInit, err)
		}
		*reg.dst = c
	}
	return tk, nil
}

// Context returns the context the toolkit is registered in.
func (tk *Toolkit) Context() *core.Context { return tk.ctx }

// Free releases a widget built by the toolkit. Its handle stops resolving
// immediately.
func (tk *Toolkit) Free(e element.Element) error {
	if e == nil {
		return nil
	}
	return tk.ctx.Registry.Free(e)
}

// Copy duplicates a widget: geometry, styles, text, configuration and
// callbacks. The copy gets its own handle and is not placed in a window.
func (tk *Toolkit) Copy(e element.Element) (element.Element, error) {
	obj, err := tk.ctx.Registry.Copy(e)
	if err != nil {
		return nil, err
	}
	cp, ok := obj.(element.Element)
	if !ok {
		_ = tk.ctx.Registry.Free(obj)
		return nil, werrors.New("widgets.Copy", werrors.KindClass, fmt.Errorf("%T is not an element", obj))
	}
	return cp, nil
}

// build constructs an instance of c as a T.
func build[T element.Element](tk *Toolkit, c *class.Class) (T, error) {
	var zero T
	obj, err := tk.ctx.Registry.New(c)
	if err != nil {
		return zero, err
	}
	w, ok := obj.(T)
	if !ok {
		_ = tk.ctx.Registry.Free(obj)
		return zero, werrors.New("widgets.build", werrors.KindClass,
			fmt.Errorf("constructor returned %T", obj)).WithClass(c.Name())
	}
	return w, nil
}

// baseOf is the construct-time check that the element layer below a widget
// is a Base.
func baseOf(name string, super class.Object) (*element.Base, error) {
	b, ok := super.(*element.Base)
	if !ok {
		return nil, fmt.Errorf("%s: super-object is %T, want *element.Base", name, super)
	}
	return b, nil
}

// applyTheme installs the theme entry for a class: styles on the Base and
// settings through configure. Problems are reported as configuration
// warnings; they never fail construction.
func (tk *Toolkit) applyTheme(name string, b *element.Base, configure func(...string) []error) {
	ct, ok := tk.ctx.Config.Theme[name]
	if !ok {
		return
	}
	for _, err := range b.ApplyTheme(ct) {
		werrors.ReportConfig(&werrors.ConfigError{Item: "theme." + name, Reason: err.Error()})
	}
	if configure != nil && len(ct.Settings) > 0 {
		// Parse has already reported each warning.
		_ = configure(ct.Settings...)
	}
}

// renderError wraps a render failure for a widget class.
func renderError(name string, kind werrors.ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return werrors.New(name+".Render", kind, err).WithClass(name)
}
