package transport

import (
	"context"
	"net"

	"github.com/effuse/effuse/src/effuse/wire"
)

// Port is the mDNS port number.
const Port = 5353

// Transport is an interface for communicating via UDP on a single network
// interface.
type Transport interface {
	// Listen binds the transport and joins the mDNS group on its interface.
	Listen() error

	// Read reads the next packet that arrived via the transport's
	// interface. Packets delivered through other interfaces are discarded,
	// so that a responder with one transport per interface sees each
	// datagram exactly once.
	Read() (*InboundPacket, error)

	// Write sends a packet via the transport.
	Write(*OutboundPacket) error

	// Group returns the multicast group address for this transport.
	Group() *net.UDPAddr

	// Close closes the transport, preventing further reads and writes.
	Close() error
}

// listenUDP binds a UDP listener with address and port reuse enabled, so
// that this responder can coexist with others on the same host.
func listenUDP(network string, addr *net.UDPAddr) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: reuseAddrAndPort,
	}

	return lc.ListenPacket(context.Background(), network, addr.String())
}

// SendResponse sends a DNS message as a response to an inbound packet.
// Empty messages are suppressed.
func SendResponse(in *InboundPacket, to *net.UDPAddr, m *wire.Message) (bool, error) {
	if len(m.Questions) == 0 &&
		len(m.Answers) == 0 &&
		len(m.Authorities) == 0 &&
		len(m.Additionals) == 0 {
		return false, nil
	}

	out, err := NewOutboundPacket(
		Endpoint{
			InterfaceIndex: in.Source.InterfaceIndex,
			Address:        to,
		},
		m,
	)
	if err != nil {
		return false, err
	}
	defer out.Close()

	return true, in.Transport.Write(out)
}

// SendUnicastResponse sends a DNS message as a unicast response to an
// inbound packet.
func SendUnicastResponse(in *InboundPacket, m *wire.Message) (bool, error) {
	return SendResponse(in, in.Source.Address, m)
}

// SendMulticastResponse sends a DNS message as a multicast response to an
// inbound packet.
func SendMulticastResponse(in *InboundPacket, m *wire.Message) (bool, error) {
	return SendResponse(in, in.Transport.Group(), m)
}
