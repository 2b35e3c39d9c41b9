package solr

import "context"

// Operation is a client call bound to everything but its context. Methods
// without extra arguments satisfy it directly, e.g. client.Ping or
// client.Commit; others are wrapped in a closure:
//
//	op := func(ctx context.Context) (*solr.Response, error) {
//		return client.Search(ctx, query)
//	}
type Operation func(ctx context.Context) (*Response, error)

// Result is the outcome of an operation started with Async.
type Result struct {
	Response *Response
	Err      error
}

// Async starts the operation in a goroutine and returns a channel that
// delivers its single result. The channel is buffered, so an abandoned
// result does not leak the goroutine.
func Async(ctx context.Context, op Operation) <-chan Result {
	ch := make(chan Result, 1)

	go func() {
		resp, err := op(ctx)
		ch <- Result{Response: resp, Err: err}
	}()

	return ch
}

// Callback starts the operation in a goroutine and invokes done exactly once
// with its result. The operation performs a single request either way; this
// only changes how the result is delivered.
func Callback(ctx context.Context, op Operation, done func(*Response, error)) {
	go func() {
		resp, err := op(ctx)
		done(resp, err)
	}()
}
