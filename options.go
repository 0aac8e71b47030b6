package promisemux

import "log/slog"

// Option configures a Router during creation.
type Option func(*Router)

// WithLogger sets the logger used for propagated errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Router) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithObserver registers an observer for handler invocations.
func WithObserver(o Observer) Option {
	return func(m *Router) {
		m.observer = o
	}
}
