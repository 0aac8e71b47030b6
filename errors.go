package promisemux

import "errors"

var (
	// ErrHandlerNotFunc is the configuration error for a nil handler.
	ErrHandlerNotFunc = errors.New("handler must be a function")
	// ErrNoHandlers is the configuration error for a registration without handlers.
	ErrNoHandlers = errors.New("at least one handler is required")
	// ErrNilRouter is returned when no underlying router is supplied.
	ErrNilRouter = errors.New("underlying router is nil")
	// ErrRejected replaces a nil error passed to a Deferred failure continuation.
	ErrRejected = errors.New("deferred result rejected without an error")
	// ErrDeferredTooDeep is the failure for a Deferred chain nested beyond
	// MaxDeferredDepth, which includes a Deferred resolving to itself.
	ErrDeferredTooDeep = errors.New("deferred results nested too deeply")
)
