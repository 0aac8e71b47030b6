package router

import (
	"net/http"
	"sync"
)

type renderFunc = func(http.ResponseWriter, *http.Request) error

// responseWriter tracks whether a response has been written and carries the
// finish signal of the chain it belongs to. Once the router has served the
// request it is closed and later writes are dropped.
type responseWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	status   int
	written  bool
	closed   bool
	once     sync.Once
	finished chan renderFunc
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		finished:       make(chan renderFunc, 1),
	}
}

func (w *responseWriter) WriteHeader(status int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.writeHeader(status)
}

func (w *responseWriter) writeHeader(status int) {
	if w.written || w.closed {
		return
	}
	w.status = status
	w.written = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, ErrResponseClosed
	}
	if !w.written {
		w.writeHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Written returns true if WriteHeader has been called
func (w *responseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Status returns the HTTP status code
func (w *responseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// close waits for an in-flight write and drops every later one.
func (w *responseWriter) close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

// Flush implements http.Flusher interface if the underlying ResponseWriter supports it.
func (w *responseWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *responseWriter) finish(render renderFunc) {
	w.once.Do(func() {
		w.finished <- render
	})
}

// Finish ends the handler chain serving w. A non-nil render runs on the
// goroutine serving the request before the chain stops, and its error goes
// to the error handler. Finish may be called from any goroutine; only the
// first call per request counts and it returns nil.
//
// When w was not created by this package, render is applied to w and r
// immediately and its error is returned.
func Finish(w http.ResponseWriter, r *http.Request, render func(http.ResponseWriter, *http.Request) error) error {
	for cur := w; cur != nil; {
		if rw, ok := cur.(*responseWriter); ok {
			rw.finish(render)
			return nil
		}
		u, ok := cur.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			break
		}
		cur = u.Unwrap()
	}

	if render == nil {
		return nil
	}
	return render(w, r)
}
