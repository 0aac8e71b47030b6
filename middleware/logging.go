package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/logger"
	"github.com/dmitrymomot/promisemux/core/router"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for request logging (default: slog.LevelInfo)
	LogLevel slog.Level

	// SlowRequestThreshold logs slow requests at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a request logging middleware writing to log.
func Logging(log *slog.Logger) promisemux.HandlerFunc {
	return LoggingWithConfig(LoggingConfig{Logger: log})
}

// LoggingWithConfig logs every request once it completes: method, path,
// status, duration and request ID. Completion is detected when the request
// context ends, which net/http does right after the handler returns.
func LoggingWithConfig(cfg LoggingConfig) promisemux.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(r) {
			return nil, nil
		}

		start := time.Now()
		requestID, _ := GetRequestID(r)
		ctx := r.Context()

		context.AfterFunc(ctx, func() {
			duration := time.Since(start)
			status := statusOf(w)

			level := cfg.LogLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case duration > cfg.SlowRequestThreshold || status >= http.StatusBadRequest:
				level = max(level, slog.LevelWarn)
			}

			cfg.Logger.LogAttrs(context.WithoutCancel(ctx), level, "request completed",
				logger.Component(cfg.Component),
				logger.Event("response"),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
				logger.RequestID(requestID),
				logger.StatusCode(status),
				logger.Duration(duration),
			)
		})

		return nil, nil
	}
}

// statusOf reads the status recorded by the router's response writer.
// Zero means nothing was written.
func statusOf(w http.ResponseWriter) int {
	if sw, ok := w.(interface{ Status() int }); ok {
		return sw.Status()
	}
	return 0
}
