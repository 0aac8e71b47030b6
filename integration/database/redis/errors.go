package redis

import "errors"

var (
	// ErrEmptyConnectionURL means REDIS_URL resolved to an empty string.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL, set REDIS_URL")

	// ErrInvalidConnectionURL covers unsupported schemes and URLs that
	// go-redis cannot parse.
	ErrInvalidConnectionURL = errors.New("invalid redis connection URL")

	// ErrNotReady means every connect ping failed or the connect timeout expired.
	ErrNotReady = errors.New("redis not ready")

	// ErrHealthcheckFailed wraps the ping error of a readiness check.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
