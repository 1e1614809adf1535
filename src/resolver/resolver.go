package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/effuse/effuse/src/client"
	"github.com/effuse/effuse/src/effuse/wire"
	"golang.org/x/net/idna"
)

// DefaultMulticastWait is the minimum time multicast queries spend
// gathering responses when the context does not specify one.
var DefaultMulticastWait = 1 * time.Second

// Resolver performs typed DNS queries.
//
// Queries for multicast names (".local." by default) are sent via the
// multicast client when one is configured, gathering answers from every
// responder on the link; all other queries go to the configured unicast
// nameserver and return its single response.
type Resolver struct {
	config        *Config
	unicast       *client.Client
	multicast     *client.Client
	isMulticast   func(string) bool
	multicastWait time.Duration
	logger        logging.Logger
}

// New returns a new resolver.
func New(options ...Option) (*Resolver, error) {
	r := &Resolver{
		multicastWait: DefaultMulticastWait,
		logger:        logging.DefaultLogger,
	}

	for _, opt := range options {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	if r.config == nil {
		r.config = DefaultConfig
	}

	if r.unicast == nil {
		opts := []client.Option{
			client.UseLogger(r.logger),
		}
		if r.config.Timeout > 0 {
			opts = append(opts, client.UseTimeout(r.config.Timeout))
		}

		c, err := client.DialUnicast(r.config.Servers, opts...)
		if err != nil {
			return nil, err
		}

		r.unicast = c
	}

	if r.isMulticast == nil {
		r.isMulticast = func(name string) bool {
			return strings.HasSuffix(name, ".local.")
		}
	}

	return r, nil
}

// Close closes the resolver's clients. Outstanding queries fail.
func (r *Resolver) Close() error {
	err := r.unicast.Close()

	if r.multicast != nil {
		if e := r.multicast.Close(); err == nil {
			err = e
		}
	}

	return err
}

// QueryA resolves host to IPv4 addresses, returned as socket addresses
// carrying the given port.
func (r *Resolver) QueryA(ctx context.Context, host string, port int) ([]*net.UDPAddr, error) {
	name, err := canonicalHost(host)
	if err != nil {
		return nil, err
	}

	answers, err := r.query(ctx, name, wire.TypeA)
	if err != nil {
		return nil, err
	}

	var addrs []*net.UDPAddr
	for _, rec := range answers {
		if a, ok := rec.Data.(wire.A); ok {
			addrs = append(addrs, &net.UDPAddr{IP: a.Addr, Port: port})
		}
	}

	return addrs, nil
}

// QueryAAAA resolves host to IPv6 addresses, returned as socket addresses
// carrying the given port.
func (r *Resolver) QueryAAAA(ctx context.Context, host string, port int) ([]*net.UDPAddr, error) {
	name, err := canonicalHost(host)
	if err != nil {
		return nil, err
	}

	answers, err := r.query(ctx, name, wire.TypeAAAA)
	if err != nil {
		return nil, err
	}

	var addrs []*net.UDPAddr
	for _, rec := range answers {
		if a, ok := rec.Data.(wire.AAAA); ok {
			addrs = append(addrs, &net.UDPAddr{IP: a.Addr, Port: port})
		}
	}

	return addrs, nil
}

// QuerySRV resolves an SRV query for the given service, protocol and name,
// following RFC-2782: it looks up _service._proto.name, unless both service
// and proto are empty, in which case name is looked up directly. Records
// are returned sorted by priority and shuffled by weight within each
// priority.
func (r *Resolver) QuerySRV(ctx context.Context, service, proto, name string) ([]*net.SRV, error) {
	target := name
	if service != "" || proto != "" {
		target = fmt.Sprintf("_%s._%s.%s", service, proto, name)
	}

	qname, err := wire.ParseName(target)
	if err != nil {
		return nil, err
	}

	answers, err := r.query(ctx, qname, wire.TypeSRV)
	if err != nil {
		return nil, err
	}

	var records []*net.SRV
	for _, rec := range answers {
		if srv, ok := rec.Data.(wire.SRV); ok {
			records = append(records, &net.SRV{
				Target:   srv.Target.String(),
				Port:     srv.Port,
				Priority: srv.Priority,
				Weight:   srv.Weight,
			})
		}
	}

	orderSRV(records)

	return records, nil
}

// QueryTXT returns the TXT records for the given name, with the key=value
// convention parsed where it applies.
func (r *Resolver) QueryTXT(ctx context.Context, name string) ([]wire.TXT, error) {
	qname, err := wire.ParseName(name)
	if err != nil {
		return nil, err
	}

	answers, err := r.query(ctx, qname, wire.TypeTXT)
	if err != nil {
		return nil, err
	}

	var texts []wire.TXT
	for _, rec := range answers {
		if txt, ok := rec.Data.(wire.TXT); ok {
			texts = append(texts, txt)
		}
	}

	return texts, nil
}

// QueryPTR returns the targets of the PTR records for the given name, in
// fully-qualified dotted form.
func (r *Resolver) QueryPTR(ctx context.Context, name string) ([]string, error) {
	qname, err := wire.ParseName(name)
	if err != nil {
		return nil, err
	}

	answers, err := r.query(ctx, qname, wire.TypePTR)
	if err != nil {
		return nil, err
	}

	var targets []string
	for _, rec := range answers {
		if ptr, ok := rec.Data.(wire.PTR); ok {
			targets = append(targets, ptr.Target.String())
		}
	}

	return targets, nil
}

// QueryAddr performs a reverse lookup for the given address, returning the
// names mapping to it.
func (r *Resolver) QueryAddr(ctx context.Context, addr string) ([]string, error) {
	arpa, ok := ipToArpa(addr)
	if !ok {
		return nil, fmt.Errorf("'%s' is not an IP address", addr)
	}

	return r.QueryPTR(ctx, arpa)
}

// query builds a single-question message and returns the answer section of
// the response (or responses, for multicast names).
func (r *Resolver) query(ctx context.Context, name wire.Name, qtype wire.Type) ([]wire.Record, error) {
	q := &wire.Message{
		Questions: []wire.Question{
			{
				Name:  name,
				Type:  qtype,
				Class: wire.ClassINET,
			},
		},
	}

	if r.multicast != nil && r.isMulticast(name.String()) {
		return r.queryMulticast(ctx, q)
	}

	q.Header.RecursionDesired = true

	res, err := r.unicast.Send(q, nil)
	if err != nil {
		return nil, err
	}

	reply, err := res.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return reply.Answers, nil
}

// queryMulticast streams responses from every responder on the link,
// gathering answers until the multicast wait threshold passes.
func (r *Resolver) queryMulticast(ctx context.Context, q *wire.Message) ([]wire.Record, error) {
	var (
		mu      sync.Mutex
		answers []wire.Record
	)

	res, err := r.multicast.Send(q, func(m *wire.Message) client.Signal {
		mu.Lock()
		answers = append(answers, m.Answers...)
		mu.Unlock()

		return client.Continue
	})
	if err != nil {
		return nil, err
	}

	deadline := ResolveMulticastWait(ctx, r.multicastWait)

	t := time.NewTimer(time.Until(deadline))
	defer t.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.C:
	}

	mu.Lock()
	defer mu.Unlock()

	if len(answers) == 0 {
		// Nothing was gathered; if the query itself failed (for example the
		// client was closed), surface that instead of an empty result.
		select {
		case <-res.Done():
			if _, err := res.Wait(ctx); err != nil {
				return nil, err
			}
		default:
		}
	}

	return answers, nil
}

// canonicalHost converts a hostname to the ASCII form used on the wire,
// applying IDNA mapping to internationalized names.
func canonicalHost(host string) (wire.Name, error) {
	ascii, err := idna.Lookup.ToASCII(strings.TrimSuffix(host, "."))
	if err != nil {
		return nil, err
	}

	return wire.ParseName(ascii)
}
