package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/effuse/effuse/src/effuse/wire"
)

// DefaultTimeout is the deadline applied to queries when no other timeout
// is configured.
const DefaultTimeout = 30 * time.Second

// Client performs asynchronous DNS queries over a single UDP connection.
//
// A run loop owns the correlation registry; the read loop decodes inbound
// datagrams and posts them to it. A decode failure or socket error fails
// every outstanding query and closes the client, as responses can no longer
// be correlated reliably.
type Client struct {
	conn     *net.UDPConn
	remote   *net.UDPAddr // non-nil when the socket is unconnected (multicast)
	timeout  time.Duration
	compress bool
	logger   logging.Logger

	commands chan command
	closed   chan struct{}
	once     sync.Once
	closeErr error

	// reg is owned by the run loop. No other goroutine touches it.
	reg *registry
}

// Option is a function that applies an option to a client created by Dial().
type Option func(*Client) error

// UseLogger returns an option that sets the logger used by the client.
func UseLogger(l logging.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// UseTimeout returns an option that sets the deadline applied to each
// query.
func UseTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}

		c.timeout = d
		return nil
	}
}

// UseCompression returns an option that controls name compression on
// outbound messages. It is disabled by default; unicast questions are small
// and interoperate more widely uncompressed.
func UseCompression(enabled bool) Option {
	return func(c *Client) error {
		c.compress = enabled
		return nil
	}
}

// Dial creates a client that exchanges DNS messages with the given server,
// from an ephemeral local port.
//
// The socket is connected, so only datagrams from the server are received.
func Dial(server *net.UDPAddr, options ...Option) (*Client, error) {
	network := "udp6"
	if server.IP.To4() != nil {
		network = "udp4"
	}

	conn, err := net.DialUDP(network, nil, server)
	if err != nil {
		return nil, err
	}

	return newClient(conn, nil, options...)
}

// newClient assembles a client around a UDP socket. When remote is non-nil
// the socket is unconnected: queries are addressed to remote, and responses
// are accepted from any source. Multicast queries need this, as responders
// answer from their own addresses rather than from the group.
func newClient(conn *net.UDPConn, remote *net.UDPAddr, options ...Option) (*Client, error) {
	c := &Client{
		conn:     conn,
		remote:   remote,
		timeout:  DefaultTimeout,
		commands: make(chan command),
		closed:   make(chan struct{}),
		reg:      newRegistry(),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			conn.Close()
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = logging.DefaultLogger
	}

	go c.run()
	go c.read()

	return c, nil
}

// Send transmits m and registers it for response correlation.
//
// The message's transaction ID is assigned by the client before encoding.
// callback is invoked on the run loop for every correlated response; nil
// behaves as SingleResponse. The returned handle resolves with the first
// response, or with an error on timeout, cancellation or client failure.
func (c *Client) Send(m *wire.Message, callback Callback) (*Response, error) {
	if callback == nil {
		callback = SingleResponse
	}

	cmd := &send{
		query: &sentQuery{
			message:  m,
			response: newResponse(),
			callback: callback,
		},
		err: make(chan error, 1),
	}

	if !c.post(cmd) {
		return nil, ErrClosed
	}

	select {
	case err := <-cmd.err:
		if err != nil {
			return nil, err
		}
		return cmd.query.response, nil
	case <-c.closed:
		return nil, ErrClosed
	}
}

// Query is a convenience that sends m with the SingleResponse callback and
// waits for the handle to resolve.
func (c *Client) Query(ctx context.Context, m *wire.Message) (*wire.Message, error) {
	res, err := c.Send(m, nil)
	if err != nil {
		return nil, err
	}

	return res.Wait(ctx)
}

// CancelAll fails every outstanding query with ErrCancelled and empties the
// correlation table.
func (c *Client) CancelAll() {
	cmd := &cancel{done: make(chan struct{})}

	if !c.post(cmd) {
		return
	}

	select {
	case <-cmd.done:
	case <-c.closed:
	}
}

// Close closes the client. Outstanding queries fail with ErrClosed.
func (c *Client) Close() error {
	c.fail(ErrClosed)
	return nil
}

// post submits a command to the run loop. It returns false if the client
// has been closed.
func (c *Client) post(cmd command) bool {
	select {
	case c.commands <- cmd:
		return true
	case <-c.closed:
		return false
	}
}

// fail closes the client, recording the error that outstanding queries are
// failed with. The first call wins.
func (c *Client) fail(err error) {
	c.once.Do(func() {
		c.closeErr = err
		close(c.closed)
		c.conn.Close()
	})
}

// run executes commands until the client is closed, then drains the
// registry.
func (c *Client) run() {
	for {
		select {
		case cmd := <-c.commands:
			cmd.execute(c)
		case <-c.closed:
			c.reg.drain(c.closeErr)
			return
		}
	}
}

// write sends an encoded message to the client's server.
func (c *Client) write(data []byte) error {
	if c.remote != nil {
		_, err := c.conn.WriteToUDP(data, c.remote)
		return err
	}

	_, err := c.conn.Write(data)
	return err
}

// read decodes inbound datagrams and posts them to the run loop, in
// arrival order.
func (c *Client) read() {
	buf := make([]byte, 65536)

	for {
		n, _, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			c.fail(fmt.Errorf("%w: %s", ErrClosed, err))
			return
		}

		m := &wire.Message{}
		if err := m.Unpack(buf[:n]); err != nil {
			// Responses can no longer be correlated reliably, so the whole
			// connection is failed rather than resynchronized.
			logging.Log(c.logger, "error decoding message from %s: %s", c.conn.RemoteAddr(), err)
			c.fail(err)
			return
		}

		if !c.post(&deliver{m}) {
			return
		}
	}
}
