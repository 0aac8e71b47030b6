package ratelimiter

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type bucketState struct {
	tokens     int
	refilledAt time.Time
	accessedAt time.Time
}

// MemoryStore keeps buckets in process memory. Buckets idle for longer than
// the stale threshold are dropped by Run.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState

	cleanupInterval time.Duration
	staleAfter      time.Duration
	logger          *slog.Logger
	now             func() time.Time

	running atomic.Bool
	created atomic.Int64
	removed atomic.Int64
}

// MemoryStoreStats is a snapshot of MemoryStore counters.
type MemoryStoreStats struct {
	BucketsCreated int64
	BucketsRemoved int64
	ActiveBuckets  int
	IsRunning      bool
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often Run sweeps stale buckets.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if interval > 0 {
			ms.cleanupInterval = interval
		}
	}
}

// WithStaleAfter sets how long a bucket may stay untouched before removal.
func WithStaleAfter(d time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if d > 0 {
			ms.staleAfter = d
		}
	}
}

// WithMemoryStoreLogger sets the logger used by Run.
func WithMemoryStoreLogger(logger *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if logger != nil {
			ms.logger = logger
		}
	}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucketState),
		cleanupInterval: 5 * time.Minute,
		staleAfter:      time.Hour,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// ConsumeTokens implements Store.
func (ms *MemoryStore) ConsumeTokens(_ context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: config.Capacity, refilledAt: now}
		ms.buckets[key] = b
		ms.created.Add(1)
	}

	b.tokens, b.refilledAt = refill(b.tokens, b.refilledAt, now, config)
	b.accessedAt = now

	remaining := b.tokens - tokens
	if remaining >= 0 {
		b.tokens = remaining
	}
	return remaining, b.refilledAt.Add(config.RefillInterval), nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.buckets, key)
	ms.mu.Unlock()
	return nil
}

// Run returns an errgroup-compatible function that sweeps stale buckets
// until ctx is done.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		ms.running.Store(true)
		defer ms.running.Store(false)

		ticker := time.NewTicker(ms.cleanupInterval)
		defer ticker.Stop()

		ms.logger.DebugContext(ctx, "rate limiter cleanup started",
			slog.Duration("interval", ms.cleanupInterval))

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := ms.removeStale(); n > 0 {
					ms.logger.DebugContext(ctx, "rate limiter buckets removed", slog.Int("count", n))
				}
			}
		}
	}
}

func (ms *MemoryStore) removeStale() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cutoff := ms.now().Add(-ms.staleAfter)
	removed := 0
	for key, b := range ms.buckets {
		if b.accessedAt.Before(cutoff) {
			delete(ms.buckets, key)
			removed++
		}
	}
	ms.removed.Add(int64(removed))
	return removed
}

// Stats returns current counters.
func (ms *MemoryStore) Stats() MemoryStoreStats {
	ms.mu.Lock()
	active := len(ms.buckets)
	ms.mu.Unlock()

	return MemoryStoreStats{
		BucketsCreated: ms.created.Load(),
		BucketsRemoved: ms.removed.Load(),
		ActiveBuckets:  active,
		IsRunning:      ms.running.Load(),
	}
}
