// Package errors provides structured error handling for the widget toolkit.
//
// Failures are classified by [ErrorKind]. Configuration problems are
// reported and skipped; every other kind aborts the call that produced it.
// Nothing is retried.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindClass indicates an operation on an object of the wrong class.
	KindClass
	// KindAlloc indicates a failed construction.
	KindAlloc
	// KindResource indicates a missing font or a failed text rasterization.
	KindResource
	// KindConfig indicates a malformed or unknown configuration item.
	KindConfig
	// KindLifetime indicates an object freed while it was still in use,
	// typically by one of its own callbacks.
	KindLifetime
	// KindInit indicates an initialization error.
	KindInit
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindAlloc:
		return "alloc"
	case KindResource:
		return "resource"
	case KindConfig:
		return "config"
	case KindLifetime:
		return "lifetime"
	case KindInit:
		return "init"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// WidgetError represents a structured error raised by the toolkit.
type WidgetError struct {
	// Op is the operation that failed (e.g., "widgets.Button.Render").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Class is the class name of the object involved, if any.
	Class string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns a WidgetError for op wrapping err.
func New(op string, kind ErrorKind, err error) *WidgetError {
	return &WidgetError{Op: op, Kind: kind, Err: err}
}

func (e *WidgetError) Error() string {
	if e.Class != "" {
		return fmt.Sprintf("%s [%s] class=%s: %v", e.Op, e.Kind, e.Class, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *WidgetError) Unwrap() error {
	return e.Err
}

// WithClass returns the error annotated with a class name.
func (e *WidgetError) WithClass(name string) *WidgetError {
	e.Class = name
	return e
}

// KindOf reports the kind of the first WidgetError in err's chain.
func KindOf(err error) ErrorKind {
	var we *WidgetError
	if stderrors.As(err, &we) {
		return we.Kind
	}
	return KindUnknown
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "event.OnClick").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ConfigError describes one configuration item that could not be applied.
// It is a warning: the item is skipped and processing continues.
type ConfigError struct {
	// Item is the configuration item as supplied (e.g., "FontSize=big").
	Item string
	// Reason explains why the item was rejected.
	Reason string
	// Hint is an optional suggestion for a likely intended form.
	Hint string
}

func (e *ConfigError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("config item %q: %s (%s)", e.Item, e.Reason, e.Hint)
	}
	return fmt.Sprintf("config item %q: %s", e.Item, e.Reason)
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *WidgetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleConfigError is called for each skipped configuration item.
	HandleConfigError(err *ConfigError)
}
