package client

import "github.com/effuse/effuse/src/effuse/wire"

// Signal is returned by a query callback to control the lifetime of the
// query's registration.
type Signal int

const (
	// Continue keeps the query registered so that further responses are
	// delivered. Multicast DNS questions commonly elicit a response from
	// every responder on the link.
	Continue Signal = iota

	// Done evicts the query; no further responses are delivered.
	Done
)

// Callback receives every response correlated with a query, in arrival
// order. It is invoked on the client's run loop and must not block.
type Callback func(*wire.Message) Signal

// SingleResponse is the callback applied when none is supplied to Send: the
// query is evicted after its first response, which is the behavior a
// conventional unicast client wants.
func SingleResponse(*wire.Message) Signal {
	return Done
}

// EveryResponse keeps the query registered until its deadline passes, so
// that all responses are streamed through the callback path.
func EveryResponse(*wire.Message) Signal {
	return Continue
}
