package mdns

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/effuse/effuse/src/effuse/mdns/transport"
	"github.com/effuse/effuse/src/effuse/wire"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// fakeTransport is a channel-backed transport used to drive the server's
// receive loop deterministically, without touching the network.
type fakeTransport struct {
	in     chan *transport.InboundPacket
	out    chan *transport.OutboundPacket
	closed chan struct{}
	once   sync.Once
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		in:     make(chan *transport.InboundPacket, 16),
		out:    make(chan *transport.OutboundPacket, 16),
		closed: make(chan struct{}),
	}
}

func (t *fakeTransport) Listen() error {
	return nil
}

func (t *fakeTransport) Read() (*transport.InboundPacket, error) {
	select {
	case p := <-t.in:
		return p, nil
	case <-t.closed:
		return nil, errors.New("transport closed")
	}
}

func (t *fakeTransport) Write(p *transport.OutboundPacket) error {
	// The sender releases p as soon as Write returns, so a copy is queued.
	cp := &transport.OutboundPacket{
		Destination: p.Destination,
		Data:        append([]byte(nil), p.Data...),
	}

	select {
	case t.out <- cp:
		return nil
	case <-t.closed:
		return errors.New("transport closed")
	}
}

func (t *fakeTransport) Group() *net.UDPAddr {
	return transport.IPv4GroupAddress
}

func (t *fakeTransport) Close() error {
	t.once.Do(func() {
		close(t.closed)
	})

	return nil
}

// deliver injects a packed message into the transport, as if it had arrived
// from src.
func (t *fakeTransport) deliver(m *wire.Message, src *net.UDPAddr) {
	data, err := m.Pack(true)
	Expect(err).ShouldNot(HaveOccurred())

	t.in <- &transport.InboundPacket{
		Transport: t,
		Source: transport.Endpoint{
			InterfaceIndex: 1,
			Address:        src,
		},
		Data: data,
	}
}

func ptrQuery(name string) *wire.Message {
	return &wire.Message{
		Questions: []wire.Question{
			{
				Name:  wire.MustParseName(name),
				Type:  wire.TypePTR,
				Class: wire.ClassINET,
			},
		},
	}
}

var _ = Describe("Server", func() {
	var (
		ctx     context.Context
		cancel  func()
		subject *Server
		conn    *fakeTransport
		source  *net.UDPAddr
	)

	// answerer responds to PTR queries for "_fake._tcp.local." and nothing
	// else.
	answerer := func(in *Envelope) (*Envelope, error) {
		q := in.Message.Questions[0]
		if !q.Name.Equal(wire.MustParseName("_fake._tcp.local")) {
			return nil, nil
		}

		res := NewResponse(in.Message, false)
		res.Answers = append(res.Answers, wire.Record{
			Name:  q.Name,
			Type:  wire.TypePTR,
			Class: wire.ClassINET,
			TTL:   10,
			Data:  wire.PTR{Target: wire.MustParseName("test._fake._tcp.local")},
		})

		return &Envelope{Message: res}, nil
	}

	run := func(h Handler) <-chan error {
		var err error
		subject, err = NewServer(
			h,
			UseInterfaces([]net.Interface{{Index: 1, Name: "fake0"}}),
		)
		Expect(err).ShouldNot(HaveOccurred())

		done := make(chan error, 1)
		go func() {
			done <- subject.receive(ctx, conn)
		}()

		return done
	}

	BeforeEach(func() {
		c, f := context.WithTimeout(context.Background(), 5*time.Second)
		ctx, cancel = c, f

		conn = newFakeTransport()
		source = &net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: 5353}
	})

	AfterEach(func() {
		cancel()
	})

	It("responds to a matching query after the mandated delay", func() {
		run(answerer)

		before := time.Now()
		conn.deliver(ptrQuery("_fake._tcp.local"), source)

		var out *transport.OutboundPacket
		Eventually(conn.out, "2s").Should(Receive(&out))

		Expect(time.Since(before)).To(BeNumerically(">=", 20*time.Millisecond))

		var res wire.Message
		Expect(res.Unpack(out.Data)).To(Succeed())

		Expect(res.Header.Response).To(BeTrue())
		Expect(res.Answers).To(HaveLen(1))
		Expect(res.Answers[0].Data.(wire.PTR).Target.String()).To(Equal("test._fake._tcp.local."))
		Expect(res.Answers[0].TTL).To(Equal(uint32(10)))

		// No destination was specified, so the response is multicast to the
		// group on the arrival interface.
		Expect(out.Destination.Address).To(Equal(transport.IPv4GroupAddress))
		Expect(out.Destination.InterfaceIndex).To(Equal(1))
	})

	It("sends nothing when the handler declines to answer", func() {
		run(answerer)

		conn.deliver(ptrQuery("_other._tcp.local"), source)

		Consistently(conn.out, 250*time.Millisecond).ShouldNot(Receive())
	})

	It("ignores queries with a non-zero OPCODE", func() {
		run(answerer)

		q := ptrQuery("_fake._tcp.local")
		q.Header.Opcode = wire.OpcodeStatus
		conn.deliver(q, source)

		Consistently(conn.out, 250*time.Millisecond).ShouldNot(Receive())
	})

	It("ignores inbound responses", func() {
		run(answerer)

		m := ptrQuery("_fake._tcp.local")
		m.Header.Response = true
		conn.deliver(m, source)

		Consistently(conn.out, 250*time.Millisecond).ShouldNot(Receive())
	})

	It("drops undecodable packets without failing", func() {
		run(answerer)

		conn.in <- &transport.InboundPacket{
			Transport: conn,
			Source: transport.Endpoint{
				InterfaceIndex: 1,
				Address:        source,
			},
			Data: []byte{0xFF, 0x00},
		}

		// The responder is still alive for well-formed peers.
		conn.deliver(ptrQuery("_fake._tcp.local"), source)
		Eventually(conn.out, "2s").Should(Receive())
	})

	It("fails the transport when the handler errors", func() {
		done := run(func(*Envelope) (*Envelope, error) {
			return nil, errors.New("answering went sideways")
		})

		conn.deliver(ptrQuery("_fake._tcp.local"), source)

		Eventually(done, "2s").Should(Receive(MatchError("answering went sideways")))
	})

	It("sends unicast responses to the destination the handler chose", func() {
		run(func(in *Envelope) (*Envelope, error) {
			res, err := answerer(in)
			if res != nil {
				res.Endpoint = in.Endpoint
			}
			return res, err
		})

		conn.deliver(ptrQuery("_fake._tcp.local"), source)

		var out *transport.OutboundPacket
		Eventually(conn.out, "2s").Should(Receive(&out))

		Expect(out.Destination.Address).To(Equal(source))
	})
})
