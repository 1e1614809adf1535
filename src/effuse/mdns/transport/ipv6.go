package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"

	ipvx "golang.org/x/net/ipv6"
)

var (
	// IPv6Group is the multicast group used for mDNS over IPv6.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv6Group = net.ParseIP("ff02::fb")

	// IPv6GroupAddress is the address to which mDNS queries are sent when using IPv6.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv6GroupAddress = &net.UDPAddr{IP: IPv6Group, Port: Port}

	// IPv6ListenAddress is the address to which the mDNS server binds when
	// using IPv6. The wildcard address is used so that the kernel delivers
	// datagrams regardless of which interface they arrive on; the arrival
	// interface is recovered from the packet-info control message instead.
	IPv6ListenAddress = &net.UDPAddr{IP: net.IPv6unspecified, Port: Port}
)

// IPv6Transport is an IPv6-based UDP transport bound to a single network
// interface.
type IPv6Transport struct {
	// Interface is the network interface this transport joins the mDNS
	// group on.
	Interface *net.Interface

	// IgnoreSelf disables multicast loopback, so that the transport does
	// not receive copies of its own responses.
	IgnoreSelf bool

	Logger logging.Logger

	pc *ipvx.PacketConn
}

// Listen binds the transport and joins the mDNS group on its interface.
func (t *IPv6Transport) Listen() error {
	addr := IPv6ListenAddress

	conn, err := listenUDP("udp6", addr)
	if err != nil {
		logListenError(t.Logger, addr, err)
		return err
	}

	pc := ipvx.NewPacketConn(conn)

	if err := pc.SetControlMessage(ipvx.FlagInterface, true); err != nil {
		conn.Close()
		logListenError(t.Logger, addr, err)
		return err
	}

	if err := pc.JoinGroup(t.Interface, &net.UDPAddr{IP: IPv6Group}); err != nil {
		conn.Close()
		logJoinError(t.Logger, IPv6Group, t.Interface, err)
		return err
	}

	if err := pc.SetMulticastInterface(t.Interface); err != nil {
		conn.Close()
		logListenError(t.Logger, addr, err)
		return err
	}

	if t.IgnoreSelf {
		if err := pc.SetMulticastLoopback(false); err != nil {
			conn.Close()
			logListenError(t.Logger, addr, err)
			return err
		}
	}

	t.pc = pc

	logListening(t.Logger, addr, t.Interface)

	return nil
}

// Read reads the next packet that arrived via the transport's interface.
func (t *IPv6Transport) Read() (*InboundPacket, error) {
	for {
		buf := getBuffer()

		n, cm, src, err := t.pc.ReadFrom(buf)
		if err != nil {
			putBuffer(buf)
			logReadError(t.Logger, t.Group(), err)
			return nil, err
		}

		if cm != nil && cm.IfIndex != t.Interface.Index {
			putBuffer(buf)
			logForeignPacket(t.Logger, src, cm.IfIndex, t.Interface)
			continue
		}

		return &InboundPacket{
			t,
			Endpoint{
				t.Interface.Index,
				src.(*net.UDPAddr),
			},
			buf[:n],
		}, nil
	}
}

// Write sends a packet via the transport.
func (t *IPv6Transport) Write(p *OutboundPacket) error {
	if _, err := t.pc.WriteTo(
		p.Data,
		&ipvx.ControlMessage{
			IfIndex: p.Destination.InterfaceIndex,
		},
		p.Destination.Address,
	); err != nil {
		logWriteError(t.Logger, p.Destination.Address, t.Group(), err)
		return err
	}

	return nil
}

// Group returns the multicast group address for this transport.
func (t *IPv6Transport) Group() *net.UDPAddr {
	return IPv6GroupAddress
}

// Close closes the transport, preventing further reads and writes.
func (t *IPv6Transport) Close() error {
	return t.pc.Close()
}
