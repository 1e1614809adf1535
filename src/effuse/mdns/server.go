package mdns

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/effuse/effuse/src/effuse/mdns/transport"

	"github.com/dogmatiq/dodeca/logging"
	"golang.org/x/sync/errgroup"
)

// Server is a multicast DNS (mDNS) responder.
//
// It binds one transport per network interface and address family,
// collected under a single Run() call that owns their lifetimes. Each
// inbound query is offered to the server's handler; responses are written
// after the random delay mandated by RFC-6762.
type Server struct {
	handler     Handler
	ifaces      []net.Interface
	disableIPv4 bool
	disableIPv6 bool
	ignoreSelf  bool
	logger      logging.Logger
}

// ServerOption is a function that applies an option to a server created by
// NewServer().
type ServerOption func(*Server) error

// UseLogger returns a server option that sets the logger used by the server.
func UseLogger(l logging.Logger) ServerOption {
	return func(s *Server) error {
		s.logger = l
		return nil
	}
}

// UseInterfaces returns a server option that sets the network interfaces on
// which the server listens for mDNS messages.
func UseInterfaces(ifaces []net.Interface) ServerOption {
	return func(s *Server) error {
		s.ifaces = ifaces
		return nil
	}
}

// DisableIPv4 is a server option that prevents the server from listening
// for IPv4 messages.
func DisableIPv4(s *Server) error {
	s.disableIPv4 = true
	return nil
}

// DisableIPv6 is a server option that prevents the server from listening
// for IPv6 messages.
func DisableIPv6(s *Server) error {
	s.disableIPv6 = true
	return nil
}

// IgnoreSelf is a server option that disables multicast loopback on each
// transport, so that the server does not receive its own responses.
func IgnoreSelf(s *Server) error {
	s.ignoreSelf = true
	return nil
}

// NewServer returns a new mDNS responder that answers queries via h.
func NewServer(h Handler, options ...ServerOption) (*Server, error) {
	s := &Server{
		handler: h,
	}

	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if len(s.ifaces) == 0 {
		ifaces, err := multicastInterfaces()
		if err != nil {
			return nil, err
		}

		s.ifaces = ifaces
	}

	if s.logger == nil {
		s.logger = logging.DefaultLogger
	}

	return s, nil
}

// Run responds to mDNS messages until ctx is canceled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	if s.disableIPv4 && s.disableIPv6 {
		return errors.New("both IPv4 and IPv6 are disabled")
	}

	g, ctx := errgroup.WithContext(ctx)

	for i := range s.ifaces {
		iface := &s.ifaces[i]

		if !s.disableIPv4 {
			t := &transport.IPv4Transport{
				Interface:  iface,
				IgnoreSelf: s.ignoreSelf,
				Logger:     s.logger,
			}

			g.Go(func() error {
				return s.receive(ctx, t)
			})
		}

		if !s.disableIPv6 {
			t := &transport.IPv6Transport{
				Interface:  iface,
				IgnoreSelf: s.ignoreSelf,
				Logger:     s.logger,
			}

			g.Go(func() error {
				return s.receive(ctx, t)
			})
		}
	}

	err := g.Wait()

	if err == context.Canceled {
		return nil
	}

	return err
}

// receive reads and handles packets from t until ctx is canceled or the
// transport fails.
func (s *Server) receive(ctx context.Context, t transport.Transport) error {
	if err := t.Listen(); err != nil {
		return err
	}
	defer t.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = t.Close() // break out of t.Read() when the context is canceled
	}()

	// Response delays are sampled from a PRNG owned by this receive loop,
	// so sampling never contends with other transports.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var pending sync.WaitGroup
	defer pending.Wait()

	for {
		in, err := t.Read()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		if err := s.handle(ctx, t, in, rng, &pending); err != nil {
			return err
		}
	}
}

// handle decodes a packet and offers it to the handler. Responses are
// scheduled for delivery after a random delay.
//
// Malformed packets and invalid queries are dropped; a misbehaving peer
// must not take the responder down for everyone else. Handler errors are
// returned and fail the transport.
func (s *Server) handle(
	ctx context.Context,
	t transport.Transport,
	in *transport.InboundPacket,
	rng *rand.Rand,
	pending *sync.WaitGroup,
) error {
	defer in.Close()

	m, err := in.Message()
	if err != nil {
		logging.Debug(s.logger, "dropping undecodable packet from %s: %s", in.Source.Address, err)
		return nil
	}

	if m.Header.Response {
		// Responses from other participants carry no question for us.
		return nil
	}

	if err := validateQuery(m); err != nil {
		logging.Debug(s.logger, "ignoring query from %s: %s", in.Source.Address, err)
		return nil
	}

	res, err := s.handler(&Envelope{
		Endpoint: in.Source,
		Message:  m,
	})
	if err != nil {
		return err
	}

	if res == nil {
		return nil
	}

	dest := res.Endpoint
	if dest.Address == nil {
		dest = transport.Endpoint{
			InterfaceIndex: in.Source.InterfaceIndex,
			Address:        t.Group(),
		}
	}

	dumpExchange(in, m, res.Message)

	// https://tools.ietf.org/html/rfc6762#section-6
	//
	// Responses to multicast queries are delayed by a uniformly random
	// interval, independently sampled per response, to spread out replies
	// from multiple responders.
	delay := responseDelay(rng)

	pending.Add(1)
	go func() {
		defer pending.Done()

		if sleep(ctx, delay) != nil {
			// The transport is shutting down; scheduled writes are
			// discarded.
			return
		}

		if _, err := transport.SendResponse(in, dest.Address, res.Message); err != nil {
			logging.Debug(s.logger, "response to %s was not sent: %s", dest.Address, err)
		}
	}()

	return nil
}
