package errors

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger configures the logger used by the toolkit and its
// sub-packages. By default nothing is logged. Pass nil to restore the
// silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: diagnostics enabled by the report flags
//     (class registration, render passes, captured events)
//   - [slog.LevelWarn]: skipped configuration items, recovered panics
//   - [slog.LevelError]: reported errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current toolkit logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LogHandler is an ErrorHandler that writes to the toolkit logger.
type LogHandler struct {
	// Verbose adds stack traces to the logged records.
	Verbose bool
}

// HandleError logs a WidgetError at error level.
func (h *LogHandler) HandleError(err *WidgetError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.String("kind", err.Kind.String())}
	if err.Class != "" {
		attrs = append(attrs, slog.String("class", err.Class))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	attrs = append(attrs, slog.Any("err", err.Err))
	Logger().Error("widgetkit error", attrs...)
}

// HandlePanic logs a recovered panic at warn level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("op", err.Op), slog.Any("value", err.Value)}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	Logger().Warn("widgetkit panic recovered", attrs...)
}

// HandleConfigError logs a skipped configuration item at warn level.
func (h *LogHandler) HandleConfigError(err *ConfigError) {
	if err == nil {
		return
	}
	Logger().Warn("widgetkit config item skipped",
		slog.String("item", err.Item),
		slog.String("reason", err.Reason),
		slog.String("hint", err.Hint))
}
