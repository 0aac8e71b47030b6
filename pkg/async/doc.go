// Package async provides generic futures for running work on goroutines and
// observing the result later.
//
// Future[U] holds the result of one computation started with Async. Callers
// can block (Await, AwaitWithTimeout), poll (IsComplete) or register
// continuations (OnSettle). OnSettle is what makes a future usable as a
// deferred handler result in promisemux: exactly one continuation runs once
// the computation completes.
//
// # Usage
//
//	future := async.Async(ctx, 123, fetchUser)
//
//	user, err := future.Await()
//	if err != nil {
//		return err
//	}
//
// Using timeout:
//
//	user, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("operation timed out")
//	}
//
// Continuations:
//
//	future.OnSettle(
//		func(v any) { log.Printf("user: %+v", v) },
//		func(err error) { log.Printf("failed: %v", err) },
//	)
//
// # Coordination
//
// WaitAll collects every result in order; WaitAny returns the first one to
// complete. Exec, ExecAll and ExecAny are the error-only counterparts.
//
// # Errors
//
//   - ErrTimeout: AwaitWithTimeout exceeded its duration
//   - ErrNoFutures: WaitAny or ExecAny called with no futures
//   - ErrPanic: the async function panicked; the panic value is in the message
//
// # Context
//
// A context canceled before the function starts completes the future with
// ctx.Err() without running the function. Once running, the function itself
// is responsible for honouring cancellation.
package async
