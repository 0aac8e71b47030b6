package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/promisemux/core/logger"
	"github.com/dmitrymomot/promisemux/core/response"
)

var methods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
}

// mux is the private implementation of Router interface.
type mux struct {
	chi          *chi.Mux
	middlewares  []middleware
	params       map[string][]ParamFunc
	routes       map[Route]*route
	order        []Route
	errorHandler ErrorHandler
	logger       *slog.Logger
}

type middleware struct {
	prefix   string
	handlers []HandlerFunc
}

func (mw middleware) matches(path string) bool {
	if mw.prefix == "" {
		return true
	}
	return path == mw.prefix || strings.HasPrefix(path, mw.prefix+"/")
}

type route struct {
	Route
	handlers []HandlerFunc
}

func newMux(opts ...Option) *mux {
	m := &mux{
		chi:          chi.NewRouter(),
		params:       make(map[string][]ParamFunc),
		routes:       make(map[Route]*route),
		errorHandler: response.JSONErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	m.chi.NotFound(m.serveNotFound)
	m.chi.MethodNotAllowed(m.serveMethodNotAllowed)

	return m
}

// ServeHTTP implements http.Handler interface.
func (m *mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	defer ww.close()
	m.chi.ServeHTTP(ww, r)
}

func (m *mux) Handle(method, pattern string, handlers ...HandlerFunc) {
	method = strings.ToUpper(method)
	if !slices.Contains(methods, method) {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	mustHandlers(handlers)

	key := Route{Method: method, Pattern: pattern}
	if rt, ok := m.routes[key]; ok {
		rt.handlers = append(rt.handlers, handlers...)
		return
	}

	rt := &route{Route: key, handlers: slices.Clone(handlers)}
	m.routes[key] = rt
	m.order = append(m.order, key)

	m.chi.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		m.serveRoute(w, r, rt)
	})
}

func (m *mux) Use(pattern string, handlers ...HandlerFunc) {
	if pattern != "" && pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	mustHandlers(handlers)

	m.middlewares = append(m.middlewares, middleware{
		prefix:   strings.TrimSuffix(pattern, "/"),
		handlers: slices.Clone(handlers),
	})
}

func (m *mux) Param(name string, handler ParamFunc) {
	if name == "" {
		panic(ErrEmptyParamName)
	}
	if handler == nil {
		panic(fmt.Errorf("%w for param '%s'", ErrNilHandler, name))
	}
	m.params[name] = append(m.params[name], handler)
}

// Routes returns registered routes in registration order.
func (m *mux) Routes() []Route {
	return slices.Clone(m.order)
}

func mustHandlers(handlers []HandlerFunc) {
	if len(handlers) == 0 {
		panic(ErrNoHandlers)
	}
	for i, h := range handlers {
		if h == nil {
			panic(fmt.Errorf("%w at position %d", ErrNilHandler, i))
		}
	}
}

func (m *mux) serveRoute(w http.ResponseWriter, r *http.Request, rt *route) {
	steps := m.middlewareSteps(r.URL.Path)
	steps = append(steps, m.paramSteps(r)...)
	steps = append(steps, rt.handlers...)

	m.dispatch(writerFor(w), r, steps, func(ww *responseWriter, r *http.Request) {
		m.handleError(ww, r, errRouteNotFound)
	})
}

func (m *mux) serveNotFound(w http.ResponseWriter, r *http.Request) {
	m.dispatch(writerFor(w), r, m.middlewareSteps(r.URL.Path), func(ww *responseWriter, r *http.Request) {
		m.handleError(ww, r, errRouteNotFound)
	})
}

func (m *mux) serveMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	m.dispatch(writerFor(w), r, m.middlewareSteps(r.URL.Path), func(ww *responseWriter, r *http.Request) {
		if allowed := m.allowedMethods(r.URL.Path); len(allowed) > 0 && !ww.Written() {
			ww.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		m.handleError(ww, r, errRouteNotAllowed)
	})
}

func (m *mux) allowedMethods(path string) []string {
	var allowed []string
	for _, method := range methods {
		if m.chi.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func (m *mux) middlewareSteps(path string) []HandlerFunc {
	var steps []HandlerFunc
	for _, mw := range m.middlewares {
		if mw.matches(path) {
			steps = append(steps, mw.handlers...)
		}
	}
	return steps
}

// paramSteps binds every registered param handler to its value in the
// matched route. Each parameter name is handled once per request.
func (m *mux) paramSteps(r *http.Request) []HandlerFunc {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(m.params) == 0 {
		return nil
	}

	var steps []HandlerFunc
	seen := make(map[string]struct{}, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if _, ok := seen[key]; ok || i >= len(rctx.URLParams.Values) {
			continue
		}
		seen[key] = struct{}{}

		value := rctx.URLParams.Values[i]
		for _, h := range m.params[key] {
			steps = append(steps, func(w http.ResponseWriter, r *http.Request, next Next) {
				h(w, r, next, value)
			})
		}
	}
	return steps
}

// dispatch runs steps one at a time, waiting after each for its outcome.
// done runs when the chain falls off its end.
func (m *mux) dispatch(ww *responseWriter, r *http.Request, steps []HandlerFunc, done func(*responseWriter, *http.Request)) {
	ctx := r.Context()

	for i, h := range steps {
		signal := make(chan error, 1)
		var once sync.Once
		next := func(err error) {
			once.Do(func() { signal <- err })
		}

		if err := invoke(func() { h(ww, r, next) }); err != nil {
			m.handleError(ww, r, err)
			return
		}

		// A handler that wrote the response itself and returned without
		// calling next ends the chain.
		if len(signal) == 0 && len(ww.finished) == 0 && ww.Written() {
			return
		}

		select {
		case err := <-signal:
			if err != nil {
				m.handleError(ww, r, err)
				return
			}
		case render := <-ww.finished:
			m.finish(ww, r, render)
			return
		case <-ctx.Done():
			m.logger.DebugContext(ctx, "request ended before handler chain completed",
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Count("step", i),
				logger.Error(ctx.Err()),
			)
			return
		}
	}

	if ww.Written() {
		return
	}
	done(ww, r)
}

func (m *mux) finish(ww *responseWriter, r *http.Request, render renderFunc) {
	if render == nil {
		return
	}

	var renderErr error
	if err := invoke(func() { renderErr = render(ww, r) }); err != nil {
		renderErr = err
	}
	if renderErr != nil {
		m.handleError(ww, r, renderErr)
	}
}

func (m *mux) handleError(ww *responseWriter, r *http.Request, err error) {
	if ww.Written() {
		// Can't send error response, just log it
		m.logger.ErrorContext(r.Context(), "error after response written",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(ww.Status()),
			logger.Error(err),
		)
		return
	}

	if pe, ok := err.(PanicError); ok {
		m.logger.ErrorContext(r.Context(), "recovered panic in handler",
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			slog.Any("value", pe.Value()),
			slog.String("stack", string(pe.Stack())),
		)
	}

	m.errorHandler(ww, r, err)
}

// invoke runs fn and converts a panic into a PanicError.
func invoke(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = NewPanicError(p, debug.Stack())
		}
	}()
	fn()
	return nil
}

func writerFor(w http.ResponseWriter) *responseWriter {
	if ww, ok := w.(*responseWriter); ok {
		return ww
	}
	return newResponseWriter(w)
}
