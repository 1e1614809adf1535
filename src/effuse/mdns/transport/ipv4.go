package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"

	ipvx "golang.org/x/net/ipv4"
)

var (
	// IPv4Group is the multicast group used for mDNS over IPv4.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv4Group = net.ParseIP("224.0.0.251")

	// IPv4GroupAddress is the address to which mDNS queries are sent when using IPv4.
	//
	// See https://tools.ietf.org/html/rfc6762#section-3.
	IPv4GroupAddress = &net.UDPAddr{IP: IPv4Group, Port: Port}

	// IPv4ListenAddress is the address to which the mDNS server binds when
	// using IPv4. The wildcard address is used so that the kernel delivers
	// datagrams regardless of which interface they arrive on; the arrival
	// interface is recovered from the packet-info control message instead.
	IPv4ListenAddress = &net.UDPAddr{IP: net.IPv4zero, Port: Port}
)

// IPv4Transport is an IPv4-based UDP transport bound to a single network
// interface.
type IPv4Transport struct {
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
func (t *IPv4Transport) Listen() error {
	addr := IPv4ListenAddress

	conn, err := listenUDP("udp4", addr)
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

	if err := pc.JoinGroup(t.Interface, &net.UDPAddr{IP: IPv4Group}); err != nil {
		conn.Close()
		logJoinError(t.Logger, IPv4Group, t.Interface, err)
		return err
	}

	// Responses written via this transport leave through the interface the
	// group was joined on.
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
func (t *IPv4Transport) Read() (*InboundPacket, error) {
	for {
		buf := getBuffer()

		n, cm, src, err := t.pc.ReadFrom(buf)
		if err != nil {
			putBuffer(buf)
			logReadError(t.Logger, t.Group(), err)
			return nil, err
		}

		if cm != nil && cm.IfIndex != t.Interface.Index {
			// Delivered via some other interface; the transport bound to
			// that interface will see its own copy.
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
func (t *IPv4Transport) Write(p *OutboundPacket) error {
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
func (t *IPv4Transport) Group() *net.UDPAddr {
	return IPv4GroupAddress
}

// Close closes the transport, preventing further reads and writes.
func (t *IPv4Transport) Close() error {
	return t.pc.Close()
}
