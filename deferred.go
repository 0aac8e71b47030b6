package promisemux

import (
	"context"

	"github.com/dmitrymomot/promisemux/pkg/async"
)

// DeferredFunc adapts a function to Deferred.
type DeferredFunc func(onSuccess func(any), onFailure func(error))

// OnSettle calls f.
func (f DeferredFunc) OnSettle(onSuccess func(any), onFailure func(error)) {
	f(onSuccess, onFailure)
}

// Resolve returns a Deferred that has already succeeded with v.
func Resolve(v any) Deferred {
	return async.Resolved(v)
}

// Reject returns a Deferred that has already failed with err.
func Reject(err error) Deferred {
	return async.Rejected[any](err)
}

// Go runs fn on a new goroutine and returns its result as a Deferred.
// A panic in fn fails the Deferred with an error wrapping async.ErrPanic.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Deferred {
	return async.Async(ctx, fn, func(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
		return fn(ctx)
	})
}

// FromChan settles with the first value received from values or the first
// non-nil error received from errs. A closed values channel succeeds with
// nil; a closed errs channel is ignored.
func FromChan[T any](values <-chan T, errs <-chan error) Deferred {
	return DeferredFunc(func(onSuccess func(any), onFailure func(error)) {
		go func() {
			for {
				select {
				case v, ok := <-values:
					if !ok {
						onSuccess(nil)
						return
					}
					onSuccess(v)
					return
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					if err != nil {
						onFailure(err)
						return
					}
				}
			}
		}()
	})
}
