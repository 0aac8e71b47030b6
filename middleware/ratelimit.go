package middleware

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
	"github.com/dmitrymomot/promisemux/pkg/ratelimiter"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
	// Limiter is the rate limiting implementation to use
	Limiter ratelimiter.RateLimiter
	// KeyExtractor defines how to extract the rate limiting key from requests (default: client IP)
	KeyExtractor func(r *http.Request) string
	// ErrorHandler builds the error for a refused request (default: 429 Too Many Requests)
	ErrorHandler func(r *http.Request, result ratelimiter.Result) error
	// SetHeaders determines whether to include rate limit information in response headers
	SetHeaders bool
}

// RateLimit limits requests per client IP and reports the limit in headers.
func RateLimit(limiter ratelimiter.RateLimiter) promisemux.HandlerFunc {
	return RateLimitWithConfig(RateLimitConfig{Limiter: limiter, SetHeaders: true})
}

// RateLimitWithConfig consults the limiter off the serving goroutine, so a
// Redis backed limiter does not hold the chain's goroutine, and continues the
// chain once it answers. Panics if no limiter is provided.
func RateLimitWithConfig(cfg RateLimitConfig) promisemux.HandlerFunc {
	if cfg.Limiter == nil {
		panic("ratelimit middleware: limiter is required")
	}

	if cfg.KeyExtractor == nil {
		cfg.KeyExtractor = clientIP
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(r *http.Request, result ratelimiter.Result) error {
			err := response.ErrTooManyRequests
			if retry := result.RetryAfter(); retry > 0 {
				err = err.WithDetails(map[string]any{
					"retry_after": fmt.Sprintf("%.0f", math.Ceil(retry.Seconds())),
				})
			}
			return err
		}
	}

	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		if cfg.Skip != nil && cfg.Skip(r) {
			return nil, nil
		}

		key := cfg.KeyExtractor(r)
		return promisemux.Go(r.Context(), func(ctx context.Context) (any, error) {
			result, err := cfg.Limiter.Allow(ctx, key)
			if err != nil {
				return nil, response.ErrInternalServerError.WithError(err)
			}

			if cfg.SetHeaders {
				setRateLimitHeaders(w.Header(), result)
			}

			if !result.Allowed() {
				return nil, cfg.ErrorHandler(r, result)
			}
			return nil, nil
		}), nil
	}
}

func setRateLimitHeaders(h http.Header, result ratelimiter.Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if retry := result.RetryAfter(); retry > 0 {
		h.Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
	}
}

// clientIP is the peer address without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
