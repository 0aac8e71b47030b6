package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Next continues a handler chain. next(nil) advances to the following
// handler; a non-nil error switches to error dispatch.
type Next func(err error)

// HandlerFunc is a route or middleware handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, next Next)

// ParamFunc handles a named URL parameter before the route handlers run.
type ParamFunc func(w http.ResponseWriter, r *http.Request, next Next, value string)

// ErrorHandler renders errors passed to Next.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Router is the registration surface consumed by promisemux.
type Router interface {
	http.Handler
	Routes

	// Handle registers handlers for method and pattern. Registering the same
	// method and pattern again appends to its chain.
	Handle(method, pattern string, handlers ...HandlerFunc)

	// Use registers middleware for every path under pattern.
	// An empty pattern or "/" matches every request.
	Use(pattern string, handlers ...HandlerFunc)

	// Param registers a handler for the URL parameter name.
	Param(name string, handler ParamFunc)
}

// Routes provides route introspection capabilities for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single route in the router with its HTTP method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router backed by chi path matching.
func New(opts ...Option) Router {
	return newMux(opts...)
}

// URLParam returns the value of the URL parameter key for the matched route.
func URLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}
