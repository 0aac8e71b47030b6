// Package redis provides Redis client initialization and health checking.
//
// Connect validates the connection URL, retries the initial ping with
// exponential backoff and returns a ready *redis.Client:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Healthcheck returns a function suitable for readiness checks.
//
// Supported URL schemes are redis:// and rediss:// (TLS). Errors can be
// checked with errors.Is against ErrEmptyConnectionURL,
// ErrInvalidConnectionURL, ErrNotReady and ErrHealthcheckFailed.
package redis
