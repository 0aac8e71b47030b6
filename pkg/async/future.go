package async

import (
	"context"
	"fmt"
	"time"
)

// Future represents the result of an asynchronous computation.
// Once completed its value and error never change.
type Future[U any] struct {
	value U
	err   error
	done  chan struct{}
}

// Async runs fn on a new goroutine and returns a Future for its result.
// A context that is already canceled short-circuits fn with ctx.Err().
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = call(ctx, param, fn)
	}()

	return f
}

// Resolved returns a Future that is already completed with v.
func Resolved[U any](v U) *Future[U] {
	f := &Future[U]{value: v, done: make(chan struct{})}
	close(f.done)
	return f
}

// Rejected returns a Future that is already completed with err.
func Rejected[U any](err error) *Future[U] {
	f := &Future[U]{err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the computation completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout is Await bounded by timeout. ErrTimeout is returned
// with the zero value when the computation has not completed in time.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the computation completes.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// OnSettle registers continuations for the result. Exactly one of them is
// called, once, on a separate goroutine after the future completes.
func (f *Future[U]) OnSettle(onSuccess func(any), onFailure func(error)) {
	go func() {
		<-f.done
		if f.err != nil {
			if onFailure != nil {
				onFailure(f.err)
			}
			return
		}
		if onSuccess != nil {
			onSuccess(f.value)
		}
	}()
}

// WaitAll waits for every future and returns their values in order.
// The first error encountered (in argument order) is returned.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, future := range futures {
		v, err := future.Await()
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// WaitAny returns the index and result of the first future to complete.
func WaitAny[U any](futures ...*Future[U]) (int, U, error) {
	if len(futures) == 0 {
		var zero U
		return -1, zero, ErrNoFutures
	}

	type result struct {
		index int
		value U
		err   error
	}

	// Buffered so losing goroutines never block.
	done := make(chan result, len(futures))
	for i, future := range futures {
		go func(index int, f *Future[U]) {
			v, err := f.Await()
			done <- result{index: index, value: v, err: err}
		}(i, future)
	}

	res := <-done
	return res.index, res.value, res.err
}

func call[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) (v U, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
	}()
	return fn(ctx, param)
}
