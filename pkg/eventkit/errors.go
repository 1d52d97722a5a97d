package eventkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for registration and dispatch.
var (
	// ErrSignatureMismatch indicates dispatched arguments did not match a
	// handler's registered argument types.
	ErrSignatureMismatch = errors.New("arguments do not match handler signature")

	// ErrNilHandler indicates a nil handler or handler function was passed
	// to Register or an adapter constructor. Used as a panic value.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilContext indicates Dispatch was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// SignatureError reports a handler that was skipped during a dispatch pass
// because the supplied arguments did not match its registered argument types.
// The handler was not invoked.
type SignatureError struct {
	// Category is the dispatched event category.
	Category any
	// HandlerID identifies the skipped registration.
	HandlerID HandlerID
	// Want describes the handler's registered argument types.
	Want string
	// Got describes the supplied argument types.
	Got string
}

// Error implements the error interface.
func (e *SignatureError) Error() string {
	return fmt.Sprintf("handler %d on category %v: want (%s), got (%s)",
		e.HandlerID, e.Category, e.Want, e.Got)
}

// Unwrap returns ErrSignatureMismatch for errors.Is support.
func (e *SignatureError) Unwrap() error {
	return ErrSignatureMismatch
}

// HandlerError wraps an error returned by a handler body.
// It identifies which registration failed; the pass it belonged to was
// ended by the failure.
type HandlerError struct {
	// Category is the dispatched event category.
	Category any
	// HandlerID identifies the failed registration.
	HandlerID HandlerID
	// Priority is the failed registration's priority.
	Priority int
	// Err is the underlying error from the handler.
	Err error
}

// Error implements the error interface.
func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %d on category %v: %v", e.HandlerID, e.Category, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError captures panic information from a handler invocation.
// It is produced by the RecoveryMiddleware; without that middleware a
// panicking handler unwinds through Dispatch.
type PanicError struct {
	// Category is the dispatched event category.
	Category any
	// HandlerID identifies the registration that panicked.
	HandlerID HandlerID
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("handler %d on category %v panicked: %v", e.HandlerID, e.Category, e.Value)
}
