package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Validate reports ErrInvalidConfig for non-positive values.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %s", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Store keeps bucket state. ConsumeTokens refills the bucket for key, then
// takes tokens if enough are available. remaining is the balance after the
// attempt; a negative value is the deficit of a refused attempt, which leaves
// the bucket untouched.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// RateLimiter decides whether a key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (Result, error)
	AllowN(ctx context.Context, key string, n int) (Result, error)
}

// Result is the outcome of a single Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
}

// NewResult builds a Result for RateLimiter implementations outside this package.
func NewResult(limit, remaining int, resetAt time.Time, allowed bool) Result {
	return Result{Limit: limit, Remaining: remaining, ResetAt: resetAt, allowed: allowed}
}

// Allowed reports whether the tokens were taken.
func (r Result) Allowed() bool {
	return r.allowed
}

// RetryAfter is how long to wait before the next refill, zero when allowed.
func (r Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// Bucket is a RateLimiter backed by a Store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket validates config and returns a limiter using store.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow takes a single token.
func (b *Bucket) Allow(ctx context.Context, key string) (Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN takes n tokens at once.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 || n > b.config.Capacity {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return NewResult(b.config.Capacity, max(remaining, 0), resetAt, remaining >= 0), nil
}

// Reset drops the state for key so it starts from a full bucket.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

// refill returns the balance of a bucket holding tokens since refilledAt,
// and the time of the last applied refill.
func refill(tokens int, refilledAt, now time.Time, config Config) (int, time.Time) {
	// Capped so a long idle period cannot overflow the multiplication.
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(now.Sub(refilledAt)/config.RefillInterval), maxIntervals))
	if intervals <= 0 {
		return tokens, refilledAt
	}
	return min(tokens+intervals*config.RefillRate, config.Capacity), now
}
