package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Result is the settled outcome of a Future: either a value or an error.
type Result[U any] struct {
	Value U
	Err   error
}

// OK reports whether the computation finished without an error.
func (r Result[U]) OK() bool {
	return r.Err == nil
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// Settle waits for completion and returns the outcome as a Result.
func (f *Future[U]) Settle() Result[U] {
	v, err := f.Await()
	return Result[U]{Value: v, Err: err}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[U]) complete(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
	})
}

// Async executes fn in its own goroutine and returns a Future.
// A panic inside fn completes the Future with an error wrapping ErrPanic
// instead of crashing the process.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.complete(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		// Early exit prevents goroutine leak when context is pre-canceled
		select {
		case <-ctx.Done():
			var zero U
			f.complete(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.complete(res, err)
	}()

	return f
}

// AllSettled waits for every future to complete and returns their outcomes
// in input order. Unlike WaitAll it never stops at the first failure.
func AllSettled[U any](futures ...*Future[U]) []Result[U] {
	results := make([]Result[U], len(futures))
	for i, future := range futures {
		results[i] = future.Settle()
	}
	return results
}

// WaitAll waits for all futures to complete and returns their results and
// the first error encountered in input order.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, res := range AllSettled(futures...) {
		results[i] = res.Value
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
	}

	return results, firstErr
}
