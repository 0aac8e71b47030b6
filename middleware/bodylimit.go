package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
)

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
	GB       = 1024 * MB
)

// BodyLimitConfig configures the request body limit middleware.
type BodyLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	// MaxSize is the maximum allowed size in bytes (default: 4MB)
	MaxSize int64

	// ContentTypeLimit allows setting different limits per content type
	// Example: {"application/json": 1MB, "multipart/form-data": 10MB}
	ContentTypeLimit map[string]int64
}

// BodyLimit creates a body limit middleware with the given limit.
func BodyLimit(maxSize int64) promisemux.HandlerFunc {
	return BodyLimitWithConfig(BodyLimitConfig{MaxSize: maxSize})
}

// BodyLimitWithConfig rejects requests whose declared Content-Length exceeds
// the limit and caps reads of the body for the rest of the chain.
func BodyLimitWithConfig(cfg BodyLimitConfig) promisemux.HandlerFunc {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 4 * MB
	}

	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(r) {
			return nil, nil
		}

		maxSize := cfg.MaxSize
		if cfg.ContentTypeLimit != nil {
			if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
				if limit, ok := cfg.ContentTypeLimit[mediaType]; ok {
					maxSize = limit
				}
			}
		}

		if r.ContentLength > maxSize {
			return nil, response.ErrRequestEntityTooLarge.
				WithMessage(fmt.Sprintf("Request body too large. Size: %s, Maximum allowed: %s",
					formatBytes(r.ContentLength), formatBytes(maxSize))).
				WithDetails(map[string]any{"limit": maxSize, "size": r.ContentLength})
		}

		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxSize)
		}
		return nil, nil
	}
}

// formatBytes formats bytes into a human-readable string
func formatBytes(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
