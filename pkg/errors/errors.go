// Package errors provides structured error reporting for Aretha widgets and
// tools.
//
// Library packages return ordinary wrapped errors. Anything that cannot be
// returned to a caller, such as a rejected child view or a panic recovered
// inside a frame callback, is sent to the global [ErrorHandler] instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindState indicates a saved widget state that cannot be decoded.
	KindState
	// KindStorage indicates a failure of the persistent state store.
	KindStorage
	// KindWidget indicates a widget composition error, such as an
	// unsupported child.
	KindWidget
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindState:
		return "state"
	case KindStorage:
		return "storage"
	case KindWidget:
		return "widget"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ArethaError is a categorized error with the operation that produced it.
type ArethaError struct {
	// Op is the operation that failed (e.g., "statestore.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New wraps err with an operation name and kind.
func New(op string, kind ErrorKind, err error) *ArethaError {
	return &ArethaError{Op: op, Kind: kind, Err: err}
}

func (e *ArethaError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ArethaError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widgets.ToggleView.tick").
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

// DecodeError reports input that does not match an expected binary or
// text layout.
type DecodeError struct {
	// DataType is the expected type name.
	DataType string
	// Reason describes the mismatch.
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %s", e.DataType, e.Reason)
}

// ErrorHandler receives errors reported by widgets and tools.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ArethaError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
