package mdns

import (
	"github.com/effuse/effuse/src/effuse/mdns/transport"
	"github.com/effuse/effuse/src/effuse/wire"
)

// Envelope pairs a DNS message with a network endpoint.
//
// For inbound messages the endpoint is the packet's source. For a response
// produced by a Handler it is the destination; a destination with a nil
// address sends the response to the mDNS group on the interface the query
// arrived on.
type Envelope struct {
	Endpoint transport.Endpoint
	Message  *wire.Message
}

// Handler produces an optional response to an inbound mDNS message.
//
// Returning a nil envelope sends nothing; that is the normal outcome when
// the question is not one this responder answers. Handlers are invoked
// serially per transport. A handler error fails the transport it occurred
// on, which stops the server.
type Handler func(in *Envelope) (*Envelope, error)
