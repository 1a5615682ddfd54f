package widgets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/widgetkit/pkg/core"
	"github.com/go-drift/widgetkit/pkg/element"
	werrors "github.com/go-drift/widgetkit/pkg/errors"
	"github.com/go-drift/widgetkit/pkg/event"
	"github.com/go-drift/widgetkit/pkg/graphics"
	"github.com/go-drift/widgetkit/pkg/settings"
	wktest "github.com/go-drift/widgetkit/pkg/testing"
)

// --- Sizing ---

func TestButton_MinSize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		text  string
		want  graphics.Size
	}{
		// Text 12, em 12, one and a half lines of 12.
		{"caption", 1, "OK", graphics.Size{W: 24, H: 18}},
		{"empty measures a space", 1, "", graphics.Size{W: 18, H: 18}},
		// Font 18 and em 18, border still one pixel.
		{"scale 1.5", 1.5, "OK", graphics.Size{W: 36, H: 27}},
		// Font 24 and em 24, two pixel border adds 2.
		{"scale 2", 2, "OK", graphics.Size{W: 50, H: 38}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, tk := newKit(t, core.WithScale(tt.scale))
			btn, err := tk.NewButton(tt.text)
			require.NoError(t, err)

			size, err := btn.MinSize()
			require.NoError(t, err)
			assert.Equal(t, tt.want, size)
		})
	}
}

func TestButton_MissingFont(t *testing.T) {
	tester, tk := newKit(t)
	tester.Fonts().Missing[settings.DefaultFontSet] = true
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)

	_, err = btn.MinSize()
	require.Error(t, err)
	assert.Equal(t, werrors.KindResource, werrors.KindOf(err))

	err = btn.Render(tester.Recorder(), false)
	require.Error(t, err)
	assert.Equal(t, werrors.KindResource, werrors.KindOf(err))
	assert.Zero(t, tester.Recorder().Draws())
}

// --- Pointer handling ---

func TestButton_PressRelease(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	var calls []string
	btn.OnClick = func() { calls = append(calls, "click") }
	btn.OnClicked = func() { calls = append(calls, "clicked") }
	require.NoError(t, tester.PumpWidget(btn, 10, 10))

	res, err := tester.SendPointerDown(graphics.Pt(20, 15))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, event.Pressed, btn.State())
	assert.Equal(t, element.Selected, btn.Base().Focus())
	assert.Same(t, btn, tester.Window().Focused())
	assert.Equal(t, []string{"click"}, calls)

	res, err = tester.SendPointerUp(graphics.Pt(20, 15))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, event.Idle, btn.State())
	assert.Equal(t, element.Normal, btn.Base().Focus())
	assert.Equal(t, []string{"click", "clicked"}, calls)
}

func TestButton_ReleaseOutsideCancels(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	clicked := 0
	btn.OnClicked = func() { clicked++ }
	require.NoError(t, tester.PumpWidget(btn, 10, 10))

	_, err = tester.SendPointerDown(graphics.Pt(20, 15))
	require.NoError(t, err)

	res, err := tester.SendPointerMove(graphics.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, element.Normal, btn.Base().Focus())

	res, err = tester.SendPointerMove(graphics.Pt(21, 16))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, element.Selected, btn.Base().Focus())

	res, err = tester.SendPointerUp(graphics.Pt(100, 100))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, event.Idle, btn.State())
	assert.Zero(t, clicked)
}

func TestButton_PressOutsideIgnored(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(btn, 10, 10))

	res, err := tester.SendPointerDown(graphics.Pt(5, 5))
	require.NoError(t, err)
	assert.Equal(t, event.NotCaptured, res)
	assert.Equal(t, event.Idle, btn.State())
	assert.Nil(t, tester.Window().Focused())
}

func TestButton_FreedByCallback(t *testing.T) {
	t.Run("OnClick", func(t *testing.T) {
		tester, tk := newKit(t)
		btn, err := tk.NewButton("OK")
		require.NoError(t, err)
		btn.OnClick = func() { _ = tk.Free(btn) }
		require.NoError(t, tester.PumpWidget(btn, 0, 0))

		res, err := tester.SendPointerDown(graphics.Pt(5, 5))
		require.NoError(t, err)
		assert.Equal(t, event.CapturedFreed, res)
		assert.Empty(t, tester.Window().Elements())
		assert.Nil(t, tester.Window().Focused())

		// Later events find nothing to deliver to.
		res, err = tester.SendPointerUp(graphics.Pt(5, 5))
		require.NoError(t, err)
		assert.Equal(t, event.NotCaptured, res)
	})

	t.Run("OnClicked", func(t *testing.T) {
		tester, tk := newKit(t)
		btn, err := tk.NewButton("OK")
		require.NoError(t, err)
		btn.OnClicked = func() { _ = tk.Free(btn) }
		require.NoError(t, tester.PumpWidget(btn, 0, 0))

		require.NoError(t, tester.TapAt(graphics.Pt(5, 5)))
		assert.False(t, btn.Base().Alive())
		assert.Empty(t, tester.Window().Elements())
	})
}

func TestButton_PanickingCallback(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	btn.OnClicked = func() { panic("boom") }
	require.NoError(t, tester.PumpWidget(btn, 0, 0))

	_, err = tester.SendPointerDown(graphics.Pt(5, 5))
	require.NoError(t, err)
	res, err := tester.SendPointerUp(graphics.Pt(5, 5))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Equal(t, event.Idle, btn.State())
	assert.True(t, btn.Base().Alive())
}

func TestButton_DefocusedByOtherPress(t *testing.T) {
	tester, tk := newKit(t)
	a, err := tk.NewButton("A")
	require.NoError(t, err)
	b, err := tk.NewButton("B")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(a, 0, 0))
	require.NoError(t, tester.PumpWidget(b, 0, 40))

	_, err = tester.SendPointerDown(graphics.Pt(5, 5))
	require.NoError(t, err)
	require.Equal(t, event.Pressed, a.State())

	// b is on top, so it sees the second press first and takes focus.
	res, err := tester.SendPointerDown(graphics.Pt(5, 45))
	require.NoError(t, err)
	assert.Equal(t, event.Captured, res)
	assert.Same(t, b, tester.Window().Focused())
	assert.Equal(t, event.Idle, a.State())
	assert.Equal(t, element.Normal, a.Base().Focus())
}

// --- Rendering ---

func TestButton_Render(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(btn, 10, 10))

	rec := tester.Recorder()
	tex := rec.Filter(wktest.OpCopyTexture)
	require.Len(t, tex, 1)
	assert.Equal(t, "OK", tex[0].Str("text"))
	assert.Equal(t, graphics.ColorBlack.String(), tex[0].Str("color"))
	// Centered in the area inside the one pixel border.
	assert.Equal(t, 16, tex[0].Int("x"))
	assert.Equal(t, 13, tex[0].Int("y"))
	assert.Equal(t, 12, tex[0].Int("w"))
	assert.Equal(t, 12, tex[0].Int("h"))
	assert.False(t, btn.Base().NeedsRedraw())

	// Nothing changed, nothing drawn.
	require.NoError(t, tester.Pump())
	assert.Zero(t, rec.Draws())
}

func TestButton_RenderPressed(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(btn, 0, 0))

	_, err = tester.SendPointerDown(graphics.Pt(5, 5))
	require.NoError(t, err)
	require.True(t, btn.Base().NeedsRedraw())
	require.NoError(t, tester.Pump())

	rec := tester.Recorder()
	tex := rec.Filter(wktest.OpCopyTexture)
	require.Len(t, tex, 1)
	assert.Equal(t, graphics.ColorWhite.String(), tex[0].Str("color"))

	down, ok := btn.Base().Style(element.StyleSelected)
	require.True(t, ok)
	fills := 0
	for _, op := range rec.Filter(wktest.OpFillRect) {
		if op.Str("color") == down.Color.String() {
			fills++
		}
	}
	// One span per row of the notched background.
	assert.Equal(t, btn.Base().Size().H, fills)
}

func TestButton_MockRender(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	btn.Base().SetSize(graphics.Size{W: 24, H: 18})

	require.NoError(t, btn.Render(tester.Recorder(), true))
	assert.Zero(t, tester.Recorder().Draws())
	assert.True(t, btn.Base().NeedsRedraw())
}

func TestButton_RenderTextFailure(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	btn.Base().SetSize(graphics.Size{W: 24, H: 18})
	tester.Fonts().FailRender = true

	err = btn.Render(tester.Recorder(), false)
	require.Error(t, err)
	assert.Equal(t, werrors.KindResource, werrors.KindOf(err))
	assert.True(t, btn.Base().NeedsRedraw())
}

// --- Settings ---

func TestButton_ConfigureRequestsOneRedraw(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(btn, 0, 0))
	win := tester.Window()

	before := win.Invalidations()
	warnings := btn.Configure("FontSize=20", "FontBold")
	assert.Empty(t, warnings)
	assert.Equal(t, before+1, win.Invalidations())
	assert.True(t, btn.Base().NeedsRedraw())
	assert.Equal(t, 20, btn.Config().Size)
	assert.True(t, btn.Config().Bold)

	require.NoError(t, tester.Pump())
	before = win.Invalidations()
	assert.Empty(t, btn.Configure("FontSize=20", "FontBold"))
	assert.Equal(t, before, win.Invalidations())
	assert.False(t, btn.Base().NeedsRedraw())

	warnings = btn.Configure("Bogus")
	assert.Len(t, warnings, 1)
	assert.Equal(t, before, win.Invalidations())
}

func TestButton_Set(t *testing.T) {
	_, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)

	warnings := btn.Set(settings.FontSize(16), settings.FontColor(graphics.ColorRed))
	assert.Empty(t, warnings)
	assert.Equal(t, 16, btn.Config().Size)
	assert.Equal(t, graphics.ColorRed, btn.Config().Color)

	assert.NotEmpty(t, btn.Set(settings.FontSize(0)))
	assert.Equal(t, 16, btn.Config().Size)
}

func TestButton_SharedConfig(t *testing.T) {
	_, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)

	shared := settings.DefaultTextConfig()
	shared.Size = 20
	btn.ShareConfig(&shared)

	size, err := btn.MinSize()
	require.NoError(t, err)
	assert.Equal(t, graphics.Size{W: 32, H: 30}, size)

	// Changes go to the shared configuration.
	btn.Configure("FontSize=24")
	assert.Equal(t, 24, shared.Size)

	btn.ShareConfig(nil)
	assert.Equal(t, 12, btn.Config().Size)

	require.NoError(t, tk.Free(btn))
	assert.Equal(t, 24, shared.Size)
}

func TestButton_SetText(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("OK")
	require.NoError(t, err)
	require.NoError(t, tester.PumpWidget(btn, 0, 0))

	before := tester.Window().Invalidations()
	btn.SetText("OK")
	assert.Equal(t, before, tester.Window().Invalidations())
	btn.SetText("Cancel")
	assert.Equal(t, before+1, tester.Window().Invalidations())
	assert.Equal(t, "Cancel", btn.Text())
}

func TestButton_Tap(t *testing.T) {
	tester, tk := newKit(t)
	btn, err := tk.NewButton("Click")
	require.NoError(t, err)
	tapped := false
	btn.OnClicked = func() { tapped = true }
	require.NoError(t, tester.PumpWidget(btn, 0, 0))

	require.NoError(t, tester.Tap(wktest.ByText("Click")))
	assert.True(t, tapped)
	assert.Equal(t, event.Idle, btn.State())

}
