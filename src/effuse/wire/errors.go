package wire

import (
	"errors"
	"fmt"
)

// ErrProtocol is the base error for any malformed wire data: truncated
// sections, invalid label lengths, bad compression pointers, and so on.
// Errors produced while decoding match it via errors.Is().
//
// A protocol error is not retriable. Decoding cannot resynchronize
// mid-stream, so a single malformed record fails the whole message.
var ErrProtocol = errors.New("malformed DNS message")

// ErrInvalidSOA is returned when an opaque payload cannot be parsed as an
// SOA record.
var ErrInvalidSOA = fmt.Errorf("%w: invalid SOA record", ErrProtocol)

// ErrUnsupported is returned when a value cannot be represented on the
// wire, such as encoding an A record from an address that is not IPv4.
// It indicates a programming error rather than a runtime condition.
var ErrUnsupported = errors.New("unsupported value")

// protocolErrorf builds an error that matches ErrProtocol.
func protocolErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrProtocol, fmt.Sprintf(format, args...))
}
