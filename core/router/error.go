package router

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrNoHandlers       = errors.New("at least one handler is required")
	ErrNilHandler       = errors.New("nil handler")
	ErrEmptyParamName   = errors.New("empty param name")
	ErrResponseClosed   = errors.New("response already served")
)

// statusError attaches an HTTP status to a router error so error handlers
// can map it through the StatusCode interface.
type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string { return e.err.Error() }

func (e *statusError) Unwrap() error { return e.err }

func (e *statusError) StatusCode() int { return e.status }

func withStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

var (
	errRouteNotFound   = withStatus(ErrNotFound, http.StatusNotFound)
	errRouteNotAllowed = withStatus(ErrMethodNotAllowed, http.StatusMethodNotAllowed)
)

// PanicError interface allows external error handlers to detect and handle panics.
// When a panic is recovered by the router, it's wrapped in an error that implements
// this interface, providing access to the original panic value and stack trace.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// NewPanicError wraps a recovered panic value and its stack.
func NewPanicError(value any, stack []byte) PanicError {
	return &panicError{value: value, stack: stack}
}

type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
