package router

import (
	"log/slog"
)

// Option configures a Router during creation.
type Option func(*mux)

// WithErrorHandler sets the handler for errors passed to Next.
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *mux) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger(logger *slog.Logger) Option {
	return func(m *mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}
