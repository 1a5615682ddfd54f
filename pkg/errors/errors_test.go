package errors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

import stderrors "errors"

type recordingHandler struct {
	errors  []*WidgetError
	panics  []*PanicError
	configs []*ConfigError
}

func (h *recordingHandler) HandleError(err *WidgetError)       { h.errors = append(h.errors, err) }
func (h *recordingHandler) HandlePanic(err *PanicError)        { h.panics = append(h.panics, err) }
func (h *recordingHandler) HandleConfigError(err *ConfigError) { h.configs = append(h.configs, err) }

func withHandler(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	SetHandler(h)
	t.Cleanup(func() { SetHandler(nil) })
	return h
}

func TestWidgetErrorString(t *testing.T) {
	err := New("widgets.Button.Render", KindResource, stderrors.New("font not found"))
	assert.Equal(t, "widgets.Button.Render [resource]: font not found", err.Error())

	err.WithClass("button")
	assert.Equal(t, "widgets.Button.Render [resource] class=button: font not found", err.Error())
}

func TestWidgetErrorUnwrap(t *testing.T) {
	cause := stderrors.New("cause")
	err := fmt.Errorf("outer: %w", New("op", KindClass, cause))

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, KindClass, KindOf(err))
	assert.Equal(t, KindUnknown, KindOf(cause))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindClass, "class"},
		{KindAlloc, "alloc"},
		{KindResource, "resource"},
		{KindConfig, "config"},
		{KindLifetime, "lifetime"},
		{KindInit, "init"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String(), "ErrorKind(%d)", tt.kind)
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	assert.Equal(t, "panic: boom", err.Error())

	err.Op = "event.OnClick"
	assert.Equal(t, "panic in event.OnClick: boom", err.Error())
}

func TestConfigErrorString(t *testing.T) {
	err := &ConfigError{Item: "FontBold=3", Reason: "unexpected value", Hint: `use "FontBold" or "!FontBold"`}
	assert.Contains(t, err.Error(), `"FontBold=3"`)
	assert.Contains(t, err.Error(), "!FontBold")
}

func TestReportSetsTimestamp(t *testing.T) {
	h := withHandler(t)

	Report(New("op", KindRender, stderrors.New("x")))
	Report(nil)

	require.Len(t, h.errors, 1)
	assert.False(t, h.errors[0].Timestamp.IsZero())
}

func TestReportConfig(t *testing.T) {
	h := withHandler(t)

	ReportConfig(&ConfigError{Item: "Foo", Reason: "unknown setting"})
	ReportConfig(nil)

	require.Len(t, h.configs, 1)
	assert.Equal(t, "Foo", h.configs[0].Item)
}

func TestCallRecoversPanic(t *testing.T) {
	h := withHandler(t)

	panicked := Call("event.OnClicked", func() { panic("callback failed") })

	assert.True(t, panicked)
	require.Len(t, h.panics, 1)
	assert.Equal(t, "event.OnClicked", h.panics[0].Op)
	assert.Equal(t, "callback failed", h.panics[0].Value)
	assert.NotEmpty(t, h.panics[0].StackTrace)
}

func TestCallWithoutPanic(t *testing.T) {
	h := withHandler(t)

	ran := false
	assert.False(t, Call("op", func() { ran = true }))
	assert.False(t, Call("op", nil))

	assert.True(t, ran)
	assert.Empty(t, h.panics)
}

func TestRecover(t *testing.T) {
	h := withHandler(t)

	func() {
		defer Recover("widgets.Render")
		panic("render failed")
	}()

	require.Len(t, h.panics, 1)
	assert.Equal(t, "widgets.Render", h.panics[0].Op)
}

func TestSetLoggerNil(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(context.Background(), 0))
}
