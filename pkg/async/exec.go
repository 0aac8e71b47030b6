package async

import (
	"context"
	"time"
)

// ExecFuture represents an asynchronous computation that only returns an error.
type ExecFuture struct {
	f *Future[struct{}]
}

// Exec runs fn on a new goroutine and returns an ExecFuture for its error.
func Exec[T any](ctx context.Context, param T, fn func(context.Context, T) error) *ExecFuture {
	return &ExecFuture{
		f: Async(ctx, param, func(ctx context.Context, p T) (struct{}, error) {
			return struct{}{}, fn(ctx, p)
		}),
	}
}

// Await waits for the function to complete and returns its error.
func (e *ExecFuture) Await() error {
	_, err := e.f.Await()
	return err
}

// AwaitWithTimeout waits at most timeout, returning ErrTimeout when exceeded.
func (e *ExecFuture) AwaitWithTimeout(timeout time.Duration) error {
	_, err := e.f.AwaitWithTimeout(timeout)
	return err
}

// IsComplete reports whether the function has completed without blocking.
func (e *ExecFuture) IsComplete() bool {
	return e.f.IsComplete()
}

// OnSettle registers continuations. onSuccess receives nil.
func (e *ExecFuture) OnSettle(onSuccess func(any), onFailure func(error)) {
	e.f.OnSettle(func(any) {
		if onSuccess != nil {
			onSuccess(nil)
		}
	}, onFailure)
}

// ExecAll waits for all futures and returns the first error in argument order.
func ExecAll(futures ...*ExecFuture) error {
	for _, future := range futures {
		if err := future.Await(); err != nil {
			return err
		}
	}
	return nil
}

// ExecAny waits for the first future to complete and returns its index and error.
func ExecAny(futures ...*ExecFuture) (int, error) {
	inner := make([]*Future[struct{}], len(futures))
	for i, e := range futures {
		inner[i] = e.f
	}
	index, _, err := WaitAny(inner...)
	return index, err
}
