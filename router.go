package promisemux

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/promisemux/core/router"
)

// Router registers HandlerFuncs on an underlying router.Router, adapting each
// to the router's (w, r, next) convention.
type Router struct {
	base     router.Router
	logger   *slog.Logger
	observer Observer
}

// New wraps base. It panics with ErrNilRouter when base is nil.
func New(base router.Router, opts ...Option) *Router {
	if base == nil {
		panic(ErrNilRouter)
	}

	m := &Router{
		base:   base,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewDefault wraps a router created by router.New with default options.
func NewDefault(opts ...Option) *Router {
	return New(router.New(), opts...)
}

// ServeHTTP implements http.Handler.
func (m *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.base.ServeHTTP(w, r)
}

// Original returns the underlying router.
func (m *Router) Original() router.Router {
	return m.base
}

// Handle registers handlers for method and pattern. The last handler of the
// call is terminal: its non-empty deferred value becomes the response.
// It panics with an error wrapping ErrHandlerNotFunc on a nil handler.
func (m *Router) Handle(method, pattern string, handlers ...HandlerFunc) {
	m.base.Handle(method, pattern, m.wrapAll(KindRoute, handlers)...)
}

// Get registers handlers for GET requests to pattern.
func (m *Router) Get(pattern string, handlers ...HandlerFunc) {
	m.Handle(http.MethodGet, pattern, handlers...)
}

// Post registers handlers for POST requests to pattern.
func (m *Router) Post(pattern string, handlers ...HandlerFunc) {
	m.Handle(http.MethodPost, pattern, handlers...)
}

// Put registers handlers for PUT requests to pattern.
func (m *Router) Put(pattern string, handlers ...HandlerFunc) {
	m.Handle(http.MethodPut, pattern, handlers...)
}

// Patch registers handlers for PATCH requests to pattern.
func (m *Router) Patch(pattern string, handlers ...HandlerFunc) {
	m.Handle(http.MethodPatch, pattern, handlers...)
}

// Delete registers handlers for DELETE requests to pattern.
func (m *Router) Delete(pattern string, handlers ...HandlerFunc) {
	m.Handle(http.MethodDelete, pattern, handlers...)
}

// Use registers middleware for every path under pattern ("" for all paths).
// Middleware never finalizes a response.
func (m *Router) Use(pattern string, handlers ...HandlerFunc) {
	m.base.Use(pattern, m.wrapAll(KindMiddleware, handlers)...)
}

// Param registers a handler for the URL parameter name. The parameter value
// is passed as the last argument.
func (m *Router) Param(name string, handler ParamHandlerFunc) {
	if !IsInvocableParam(handler) {
		panic(fmt.Errorf("%w: param '%s'", ErrHandlerNotFunc, name))
	}
	m.base.Param(name, m.wrapParam(handler))
}

// wrapAll validates every handler before wrapping any, so a bad call
// registers nothing.
func (m *Router) wrapAll(kind Kind, handlers []HandlerFunc) []router.HandlerFunc {
	if len(handlers) == 0 {
		panic(fmt.Errorf("%w: %w", ErrHandlerNotFunc, ErrNoHandlers))
	}
	for i, h := range handlers {
		if !IsInvocable(h) {
			panic(fmt.Errorf("%w: argument %d", ErrHandlerNotFunc, i+1))
		}
	}

	wrapped := make([]router.HandlerFunc, len(handlers))
	for i, h := range handlers {
		wrapped[i] = m.wrap(h, invocationSite{
			kind:     kind,
			index:    i,
			terminal: kind == KindRoute && i == len(handlers)-1,
		})
	}
	return wrapped
}
