package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/router"
)

// RequestIDHeader is the default header carrying the request ID.
const RequestIDHeader = "X-Request-ID"

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting keeps a valid request ID sent by the client
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
func RequestID() promisemux.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig assigns a unique identifier to each request. The ID is
// stored in the request header, for later handlers, and in the response header.
func RequestIDWithConfig(cfg RequestIDConfig) promisemux.HandlerFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = RequestIDHeader
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(r) {
			return nil, nil
		}

		var requestID string
		if cfg.UseExisting {
			if existing := r.Header.Get(cfg.HeaderName); existing != "" && len(existing) <= 128 {
				requestID = existing
			}
		}
		if requestID == "" {
			requestID = cfg.Generator()
		}

		r.Header.Set(cfg.HeaderName, requestID)
		w.Header().Set(cfg.HeaderName, requestID)
		return nil, nil
	}
}

// GetRequestID returns the request ID set by RequestID under the default header.
func GetRequestID(r *http.Request) (string, bool) {
	id := r.Header.Get(RequestIDHeader)
	return id, id != ""
}
