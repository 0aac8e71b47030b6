package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/promisemux"
	"github.com/dmitrymomot/promisemux/core/logger"
	"github.com/dmitrymomot/promisemux/core/response"
	"github.com/dmitrymomot/promisemux/core/router"
	"github.com/dmitrymomot/promisemux/pkg/async"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) promisemux.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(w http.ResponseWriter, r *http.Request, next router.Next) (any, error) {
		ctx := r.Context()

		futures := make([]*async.ExecFuture, len(checks))
		for i, check := range checks {
			futures[i] = async.Exec(ctx, check, func(ctx context.Context, check func(context.Context) error) error {
				return check(ctx)
			})
		}

		return promisemux.Go(ctx, func(ctx context.Context) (response.Renderer, error) {
			if err := async.ExecAll(futures...); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					logger.Error(err),
				)
				return nil, response.ErrServiceUnavailable.WithError(err)
			}
			return response.String("READY"), nil
		}), nil
	}
}
