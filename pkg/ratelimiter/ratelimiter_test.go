package ratelimiter_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux/integration/database/redis"
	"github.com/dmitrymomot/promisemux/pkg/ratelimiter"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config ratelimiter.Config
		valid  bool
	}{
		{"valid", ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}, true},
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}, false},
		{"zero rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}, false},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func TestNewBucket(t *testing.T) {
	t.Parallel()

	_, err := ratelimiter.NewBucket(nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	assert.ErrorIs(t, err, ratelimiter.ErrNilStore)

	_, err = ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{})
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

// testLimiter checks the token bucket behaviour shared by every Store.
func testLimiter(t *testing.T, store ratelimiter.Store) {
	t.Helper()

	ctx := context.Background()
	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
		Capacity:       3,
		RefillRate:     1,
		RefillInterval: 200 * time.Millisecond,
	})
	require.NoError(t, err)

	key := uuid.NewString()

	for want := 2; want >= 0; want-- {
		res, err := limiter.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
		assert.Zero(t, res.RetryAfter())
	}

	res, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)
	assert.Positive(t, res.RetryAfter())

	_, err = limiter.AllowN(ctx, key, 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
	_, err = limiter.AllowN(ctx, key, 4)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	time.Sleep(250 * time.Millisecond)
	res, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "a refused request must not drain the bucket")

	require.NoError(t, limiter.Reset(ctx, key))
	res, err = limiter.AllowN(ctx, key, 3)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	testLimiter(t, ratelimiter.NewMemoryStore())
}

func TestMemoryStoreConcurrent(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       50,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := limiter.Allow(context.Background(), "shared")
			if err == nil && res.Allowed() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestMemoryStoreRun(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(
		ratelimiter.WithCleanupInterval(10*time.Millisecond),
		ratelimiter.WithStaleAfter(20*time.Millisecond),
	)
	cfg := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	_, _, err := store.ConsumeTokens(context.Background(), "idle", 1, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Run(ctx)() }()

	require.Eventually(t, func() bool {
		s := store.Stats()
		return s.IsRunning && s.ActiveBuckets == 0
	}, time.Second, 5*time.Millisecond)

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.BucketsCreated)
	assert.Equal(t, int64(1), stats.BucketsRemoved)

	cancel()
	require.NoError(t, <-done)
	assert.False(t, store.Stats().IsRunning)
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("down")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestBucketStoreError(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	_, err = limiter.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

// TestRedisStore runs against the server in REDIS_URL and is skipped without one.
func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := redis.Connect(t.Context(), redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := ratelimiter.NewRedisStore(client, "promisemux:test:ratelimit:")
	require.NoError(t, err)

	testLimiter(t, store)
}

func TestResult(t *testing.T) {
	t.Parallel()

	allowed := ratelimiter.NewResult(10, 9, time.Now().Add(time.Minute), true)
	assert.True(t, allowed.Allowed())
	assert.Zero(t, allowed.RetryAfter())

	denied := ratelimiter.NewResult(10, 0, time.Now().Add(time.Minute), false)
	assert.False(t, denied.Allowed())
	assert.InDelta(t, time.Minute, denied.RetryAfter(), float64(time.Second))

	expired := ratelimiter.NewResult(10, 0, time.Now().Add(-time.Minute), false)
	assert.Zero(t, expired.RetryAfter())
}
