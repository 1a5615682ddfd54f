// Package core provides the toolkit context: the explicit replacement for
// process-wide state such as the class table, the high-DPI factor and the
// diagnostic report flags.
//
// A Context is created once by the embedding application, passed to every
// widget constructor, and shut down when the application exits.
package core

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-drift/widgetkit/pkg/class"
	"github.com/go-drift/widgetkit/pkg/config"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// ErrClosed is returned when using a context after Shutdown.
var ErrClosed = errors.New("core: context shut down")

// Context carries everything the toolkit would otherwise keep in globals.
type Context struct {
	// Registry is the class registry every widget class is registered in.
	Registry *class.Registry
	// Arena tracks live elements behind generation-checked handles.
	Arena *Arena
	// Config is the resolved configuration (scale, reports, theme).
	Config *config.Config
	// Fonts resolves fonts and measures text.
	Fonts graphics.FontProvider
	// Text rasterizes strings into textures.
	Text graphics.TextRasterizer

	closed bool
}

// Option configures a Context.
type Option func(*Context)

// WithConfig uses cfg instead of the defaults.
func WithConfig(cfg *config.Config) Option {
	return func(c *Context) { c.Config = cfg }
}

// WithScale overrides the high-DPI scale factor.
func WithScale(scale float64) Option {
	return func(c *Context) { c.Config.Scale = config.ClampScale(scale) }
}

// WithFonts sets the font provider and text rasterizer.
func WithFonts(fonts graphics.FontProvider, text graphics.TextRasterizer) Option {
	return func(c *Context) {
		c.Fonts = fonts
		c.Text = text
	}
}

// WithEnv overlays environment toggles read through lookup.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *Context) {
		for _, w := range c.Config.FromEnv(lookup) {
			werrors.ReportConfig(&werrors.ConfigError{Item: "environment", Reason: w.Error()})
		}
	}
}

// WithProcessEnv overlays toggles from the process environment.
func WithProcessEnv() Option {
	return WithEnv(os.LookupEnv)
}

// NewContext creates and initializes a context. Options apply in order,
// so WithConfig should precede WithScale or WithEnv.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		Registry: class.NewRegistry(),
		Arena:    &Arena{},
		Config:   config.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Config == nil {
		c.Config = config.Default()
	}
	c.Registry.Report = c.Config.Reports.Classes
	if err := c.Registry.Init(); err != nil {
		return nil, werrors.New("core.NewContext", werrors.KindInit, err)
	}
	werrors.Logger().Debug("context initialized",
		slog.Float64("scale", c.Config.Scale),
		slog.Bool("reportRender", c.Config.Reports.Render),
		slog.Bool("reportEvents", c.Config.Reports.Events))
	return c, nil
}

// Scale returns the high-DPI scale factor.
func (c *Context) Scale() float64 {
	return c.Config.Scale
}

// Reports returns the diagnostic report flags.
func (c *Context) Reports() config.Reports {
	return c.Config.Reports
}

// Closed reports whether Shutdown has been called.
func (c *Context) Closed() bool { return c.closed }

// Shutdown tears down the registry. Elements still alive keep working but
// no new classes can be registered.
func (c *Context) Shutdown() error {
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	if n := c.Arena.Len(); n > 0 {
		werrors.Logger().Debug("context shut down with live elements", slog.Int("live", n))
	}
	c.Registry.Shutdown()
	return nil
}

// ScaledSize multiplies a design-time pixel size by the scale factor,
// never returning less than 1.
func (c *Context) ScaledSize(px int) int {
	v := int(float64(px) * c.Scale())
	if v < 1 {
		return 1
	}
	return v
}

// Font resolves a font through the context's provider, scaling the size.
func (c *Context) Font(set string, size int, bold, italic bool) (graphics.Font, error) {
	if c.Fonts == nil {
		return nil, werrors.New("core.Font", werrors.KindResource, fmt.Errorf("no font provider"))
	}
	f, err := c.Fonts.Font(set, c.ScaledSize(size), bold, italic)
	if err != nil {
		return nil, werrors.New("core.Font", werrors.KindResource, err)
	}
	return f, nil
}
