package transport

import (
	"github.com/effuse/effuse/src/effuse/wire"
)

// InboundPacket is a UDP packet received from a transport.
type InboundPacket struct {
	Transport Transport
	Source    Endpoint
	Data      []byte
}

// Message returns the DNS message contained in a packet.
//
// The message owns its data; the packet may be closed as soon as decoding
// completes.
func (p *InboundPacket) Message() (*wire.Message, error) {
	m := &wire.Message{}
	return m, m.Unpack(p.Data)
}

// Close returns the packet's data buffer to the pool.
func (p *InboundPacket) Close() {
	putBuffer(p.Data)
	p.Data = nil
}

// OutboundPacket is a UDP packet to be sent by a transport.
type OutboundPacket struct {
	Destination Endpoint
	Data        []byte
}

// Close releases the packet's data buffer.
func (p *OutboundPacket) Close() {
	p.Data = nil
}

// NewOutboundPacket encodes m into a packet addressed to dest.
//
// Names are compressed, as mDNS messages should be
// (https://tools.ietf.org/html/rfc6762#section-18.14).
func NewOutboundPacket(dest Endpoint, m *wire.Message) (*OutboundPacket, error) {
	data, err := m.Pack(true)
	if err != nil {
		return nil, err
	}

	return &OutboundPacket{dest, data}, nil
}
