package testing

import (
	"fmt"
	"testing"

	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/element"
	"github.com/go-drift/widgetkit/pkg/focus"
)

// WidgetTester drives elements without a real window or backend. It owns
// a context wired to deterministic [Fonts], a [focus.Manager] as the
// window, and a [Recorder] that Pump renders into.
type WidgetTester struct {
	ctx      *core.Context
	fonts    *Fonts
	window   *focus.Manager
	recorder *Recorder
}

// NewWidgetTester creates a tester. Options are applied after the fonts
// are installed, so they may override them.
// Call Cleanup() when done, or use NewWidgetTesterWithT() instead.
func NewWidgetTester(opts ...core.Option) (*WidgetTester, error) {
	fonts := NewFonts()
	ctx, err := core.NewContext(append([]core.Option{core.WithFonts(fonts, fonts)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &WidgetTester{
		ctx:      ctx,
		fonts:    fonts,
		window:   focus.NewManager(ctx),
		recorder: NewRecorder(),
	}, nil
}

// NewWidgetTesterWithT creates a tester that auto-cleans up via t.Cleanup().
// This is the recommended constructor for tests.
func NewWidgetTesterWithT(t *testing.T, opts ...core.Option) *WidgetTester {
	t.Helper()
	tester, err := NewWidgetTester(opts...)
	if err != nil {
		t.Fatalf("NewWidgetTester: %v", err)
	}
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup shuts the context down.
func (t *WidgetTester) Cleanup() {
	_ = t.ctx.Shutdown()
}

// Context returns the toolkit context widgets should be built in.
func (t *WidgetTester) Context() *core.Context { return t.ctx }

// Fonts returns the deterministic font provider.
func (t *WidgetTester) Fonts() *Fonts { return t.fonts }

// Window returns the window elements are placed in.
func (t *WidgetTester) Window() *focus.Manager { return t.window }

// Recorder returns the renderer Pump draws into.
func (t *WidgetTester) Recorder() *Recorder { return t.recorder }

// PumpWidget sizes e to its minimum size at loc, places it in the window
// and runs one frame.
func (t *WidgetTester) PumpWidget(e element.Element, x, y int) error {
	size, err := e.MinSize()
	if err != nil {
		return fmt.Errorf("PumpWidget: %w", err)
	}
	b := e.Base()
	b.SetLocation(pt(x, y))
	b.SetSize(size)
	t.window.Add(e)
	return t.Pump()
}

// Pump clears the recorder and renders every element that needs a redraw.
func (t *WidgetTester) Pump() error {
	t.recorder.Reset()
	return t.window.Render(t.recorder, false)
}

// Find evaluates a finder against the window's live elements.
func (t *WidgetTester) Find(finder Finder) FinderResult {
	return FinderResult{
		elements: finder.Evaluate(t.window.Elements()),
		finder:   finder,
	}
}
