package async_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promisemux/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns_value", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), 21, func(_ context.Context, n int) (int, error) {
			return n * 2, nil
		})

		v, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.True(t, f.IsComplete())
	})

	t.Run("returns_error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		f := async.Async(context.Background(), 0, func(context.Context, int) (string, error) {
			return "", boom
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("recovers_panic", func(t *testing.T) {
		t.Parallel()

		f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
			panic("kaboom")
		})

		_, err := f.Await()
		require.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})

	t.Run("canceled_context_skips_function", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Async(ctx, 0, func(context.Context, int) (int, error) {
			called.Store(true)
			return 1, nil
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called.Load())
	})
}

func TestFutureAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 0, func(context.Context, int) (int, error) {
		<-release
		return 7, nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())

	close(release)
	v, err := f.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFutureOnSettle(t *testing.T) {
	t.Parallel()

	t.Run("success_calls_only_on_success", func(t *testing.T) {
		t.Parallel()

		values := make(chan any, 1)
		failures := make(chan error, 1)
		async.Resolved(map[string]int{"a": 1}).OnSettle(
			func(v any) { values <- v },
			func(err error) { failures <- err },
		)

		select {
		case v := <-values:
			assert.Equal(t, map[string]int{"a": 1}, v)
		case <-time.After(time.Second):
			t.Fatal("onSuccess was not called")
		}
		assert.Empty(t, failures)
	})

	t.Run("failure_calls_only_on_failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		values := make(chan any, 1)
		failures := make(chan error, 1)
		async.Rejected[int](boom).OnSettle(
			func(v any) { values <- v },
			func(err error) { failures <- err },
		)

		select {
		case err := <-failures:
			assert.ErrorIs(t, err, boom)
		case <-time.After(time.Second):
			t.Fatal("onFailure was not called")
		}
		assert.Empty(t, values)
	})

	t.Run("waits_for_completion", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		f := async.Async(context.Background(), "x", func(_ context.Context, s string) (string, error) {
			<-release
			return s + "y", nil
		})

		values := make(chan any, 1)
		f.OnSettle(func(v any) { values <- v }, nil)

		select {
		case <-values:
			t.Fatal("continuation ran before completion")
		case <-time.After(20 * time.Millisecond):
		}

		close(release)
		assert.Equal(t, "xy", <-values)
	})
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	double := func(_ context.Context, n int) (int, error) { return n * 2, nil }

	values, err := async.WaitAll(
		async.Async(ctx, 1, double),
		async.Async(ctx, 2, double),
		async.Async(ctx, 3, double),
	)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 6}, values)

	boom := errors.New("boom")
	_, err = async.WaitAll(async.Resolved(1), async.Rejected[int](boom))
	assert.ErrorIs(t, err, boom)
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	_, _, err := async.WaitAny[int]()
	assert.ErrorIs(t, err, async.ErrNoFutures)

	slow := async.Async(context.Background(), 0, func(context.Context, int) (string, error) {
		time.Sleep(200 * time.Millisecond)
		return "slow", nil
	})

	index, v, err := async.WaitAny(slow, async.Resolved("fast"))
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, "fast", v)
}
