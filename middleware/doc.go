// Package middleware provides request middleware written as promisemux
// handlers. Each one returns (nil, nil) to continue the chain or an error to
// hand the request to the router's error handler. RateLimit returns a
// Deferred instead, so the limiter's store is queried off the serving
// goroutine.
//
//	mux := promisemux.NewDefault()
//	mux.Use("",
//		middleware.RequestID(),
//		middleware.Logging(log),
//		middleware.SecurityHeaders(),
//	)
//	mux.Use("/api",
//		middleware.RateLimit(limiter),
//		middleware.BodyLimit(middleware.MB),
//	)
//
// Middleware cannot replace the request, so values shared with later handlers
// travel in request headers (see GetRequestID) and response headers are set on
// the writer before the response is finalized.
package middleware
