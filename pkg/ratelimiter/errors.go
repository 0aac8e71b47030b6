package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrNilStore          = errors.New("store is nil")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
