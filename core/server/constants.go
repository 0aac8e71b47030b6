package server

import "time"

// Defaults for an API whose handlers may wait on deferred results. The write
// timeout leaves room for a slow store call; the shutdown timeout bounds how
// long pending chains may hold the process after a stop signal.
const (
	DefaultAddr              = ":8080"
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultReadTimeout       = 10 * time.Second
	DefaultWriteTimeout      = 30 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultShutdownTimeout   = 20 * time.Second

	// JSON APIs need far less than net/http's 1MB.
	DefaultMaxHeaderBytes = 64 << 10
)
