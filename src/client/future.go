package client

import (
	"context"

	"github.com/effuse/effuse/src/effuse/wire"
)

// Response is a one-shot handle to the outcome of a query.
//
// It resolves exactly once: with the first correlated response, or with an
// error when the query times out, is cancelled, or the client fails.
// Further responses to the same query are delivered only via the query's
// callback.
type Response struct {
	done chan struct{}

	// resolved guards msg and err. It is only touched on the client's run
	// loop; readers observe the values through the channel close.
	resolved bool
	msg      *wire.Message
	err      error
}

func newResponse() *Response {
	return &Response{
		done: make(chan struct{}),
	}
}

// Wait blocks until the handle resolves, or until ctx is canceled.
func (r *Response) Wait(ctx context.Context) (*wire.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
		return r.msg, r.err
	}
}

// Done returns a channel that is closed when the handle has resolved.
func (r *Response) Done() <-chan struct{} {
	return r.done
}

// resolve fulfills the handle with a response message.
// It is a no-op if the handle has already resolved.
func (r *Response) resolve(m *wire.Message) {
	if r.resolved {
		return
	}

	r.resolved = true
	r.msg = m
	close(r.done)
}

// fail fulfills the handle with an error.
// It is a no-op if the handle has already resolved.
func (r *Response) fail(err error) {
	if r.resolved {
		return
	}

	r.resolved = true
	r.err = err
	close(r.done)
}
