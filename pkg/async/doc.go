// Package async provides small generic helpers for running computations
// concurrently and collecting their outcomes.
//
// Async starts a function in its own goroutine and returns a *Future. The
// caller waits with Await, AwaitWithTimeout or Settle, or polls with
// IsComplete. A panic in the function is recovered and surfaces as an error
// wrapping ErrPanic, so one misbehaving task cannot take down its siblings.
//
// AllSettled waits for a whole batch and returns one Result per future in
// input order, which is the shape fan-out code needs when partial failure is
// expected and must not abort the batch:
//
//	futures := make([]*async.Future[int], 0, len(ids))
//	for _, id := range ids {
//	    futures = append(futures, async.Async(ctx, id, lookup))
//	}
//	for _, res := range async.AllSettled(futures...) {
//	    if !res.OK() {
//	        log.Println(res.Err)
//	        continue
//	    }
//	    use(res.Value)
//	}
//
// WaitAll keeps first-error semantics for callers that treat any failure as
// fatal, but it still waits for every future before returning.
//
// If the context passed to Async is already cancelled the function is not
// started and the Future completes with the context error.
package async
