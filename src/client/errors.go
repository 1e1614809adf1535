package client

import "errors"

var (
	// ErrUnknownQuery indicates that an inbound message's transaction ID
	// does not correlate with any outstanding query. Such messages are
	// logged and discarded; the connection remains open.
	ErrUnknownQuery = errors.New("response does not correlate with an outstanding query")

	// ErrTimeout indicates that a query's deadline passed without a
	// response.
	ErrTimeout = errors.New("query deadline exceeded")

	// ErrCancelled indicates that a query was cancelled via CancelAll().
	ErrCancelled = errors.New("query cancelled")

	// ErrClosed indicates that the client was closed while the query was
	// outstanding, or before it could be sent.
	ErrClosed = errors.New("client is closed")

	// ErrNoNameservers indicates that an empty nameserver list was
	// supplied.
	ErrNoNameservers = errors.New("no nameservers available")
)
