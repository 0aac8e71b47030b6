package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
	"github.com/dmitrymomot/promisemux/middleware"
	"github.com/dmitrymomot/promisemux/pkg/ratelimiter"
)

func ok(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
	return promisemux.Resolve("ok"), nil
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Minute,
	})
	require.NoError(t, err)

	mux := promisemux.NewDefault()
	mux.Use("", middleware.RateLimit(limiter))
	mux.Get("/x", ok)

	get := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		return w
	}

	w := get("10.0.0.1:1000")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, get("10.0.0.1:2000").Code)

	w = get("10.0.0.1:3000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "too_many_requests")

	assert.Equal(t, http.StatusOK, get("10.0.0.2:1000").Code, "other clients have their own bucket")
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(ctx context.Context, key string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func (brokenLimiter) AllowN(ctx context.Context, key string, n int) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.New("store down")
}

func TestRateLimitWithConfig(t *testing.T) {
	t.Parallel()

	t.Run("limiter_error_is_internal", func(t *testing.T) {
		t.Parallel()

		mux := promisemux.NewDefault()
		mux.Use("", middleware.RateLimit(brokenLimiter{}))
		mux.Get("/x", ok)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("skip_bypasses_limiter", func(t *testing.T) {
		t.Parallel()

		mux := promisemux.NewDefault()
		mux.Use("", middleware.RateLimitWithConfig(middleware.RateLimitConfig{
			Limiter: brokenLimiter{},
			Skip:    func(r *http.Request) bool { return true },
		}))
		mux.Get("/x", ok)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("custom_key_and_error", func(t *testing.T) {
		t.Parallel()

		limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
			Capacity:       1,
			RefillRate:     1,
			RefillInterval: time.Minute,
		})
		require.NoError(t, err)

		mux := promisemux.NewDefault()
		mux.Use("", middleware.RateLimitWithConfig(middleware.RateLimitConfig{
			Limiter:      limiter,
			KeyExtractor: func(r *http.Request) string { return r.Header.Get("X-API-Key") },
			ErrorHandler: func(r *http.Request, result ratelimiter.Result) error {
				return response.ErrForbidden
			},
		}))
		mux.Get("/x", ok)

		get := func(key string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("X-API-Key", key)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			return w
		}

		w := get("a")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, http.StatusForbidden, get("a").Code)
		assert.Equal(t, http.StatusOK, get("b").Code)
	})

	t.Run("requires_limiter", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { middleware.RateLimitWithConfig(middleware.RateLimitConfig{}) })
	})
}
