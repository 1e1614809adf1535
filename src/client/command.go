package client

import (
	"errors"
	"time"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/effuse/effuse/src/effuse/wire"
)

// command is a unit of work performed on the client's run loop. All
// mutations of the registry happen through commands.
type command interface {
	execute(c *Client)
}

// send registers a query, writes it to the connection and schedules its
// deadline.
type send struct {
	query *sentQuery
	err   chan error
}

func (s *send) execute(c *Client) {
	q := s.query

	c.reg.insert(q)

	data, err := q.message.Pack(c.compress)
	if err != nil {
		c.reg.evict(q)
		q.response.fail(err)
		s.err <- err
		return
	}

	if err := c.write(data); err != nil {
		c.reg.evict(q)
		q.response.fail(err)
		s.err <- err
		return
	}

	q.timer = time.AfterFunc(c.timeout, func() {
		c.post(&expire{q})
	})

	s.err <- nil
}

// deliver routes a decoded inbound message through the registry.
type deliver struct {
	message *wire.Message
}

func (d *deliver) execute(c *Client) {
	if err := c.reg.deliver(d.message); err != nil {
		if errors.Is(err, ErrUnknownQuery) {
			logging.Debug(c.logger, "discarding message: %s", err)
			return
		}

		logging.Log(c.logger, "error delivering message: %s", err)
	}
}

// expire enforces a query's deadline.
type expire struct {
	query *sentQuery
}

func (e *expire) execute(c *Client) {
	c.reg.expire(e.query)
}

// cancel drains the registry, failing every outstanding query.
type cancel struct {
	done chan struct{}
}

func (x *cancel) execute(c *Client) {
	c.reg.drain(ErrCancelled)
	close(x.done)
}
