package client

import (
	"fmt"
	"time"

	"github.com/effuse/effuse/src/effuse/wire"
)

// sentQuery is an outstanding query held by the registry from insertion
// until its callback returns Done, its deadline passes, or the client
// fails. Whichever happens first resolves the handle, exactly once.
type sentQuery struct {
	id       uint16
	message  *wire.Message
	response *Response
	callback Callback
	timer    *time.Timer
}

// registry correlates inbound responses with outstanding queries by
// transaction ID.
//
// It is owned exclusively by a single client run loop and is not safe for
// concurrent use.
type registry struct {
	nextID  uint16
	pending map[uint16]*sentQuery
}

func newRegistry() *registry {
	return &registry{
		pending: map[uint16]*sentQuery{},
	}
}

// insert assigns the next free transaction ID to q and registers it.
//
// IDs are allocated from a wrapping counter, skipping any ID that is still
// in flight. The skip can only fail to terminate with 65536 concurrently
// outstanding queries, at which point the ID space is genuinely exhausted.
func (r *registry) insert(q *sentQuery) uint16 {
	for {
		id := r.nextID
		r.nextID++

		if _, ok := r.pending[id]; !ok {
			q.id = id
			q.message.Header.ID = id
			r.pending[id] = q
			return id
		}
	}
}

// deliver routes m to the outstanding query with a matching transaction ID.
//
// The query's handle is resolved with the first delivered message; the
// callback is invoked for every one. A callback returning Done evicts the
// query.
func (r *registry) deliver(m *wire.Message) error {
	q, ok := r.pending[m.Header.ID]
	if !ok {
		return fmt.Errorf("%w: transaction ID 0x%04x", ErrUnknownQuery, m.Header.ID)
	}

	q.response.resolve(m)

	if q.callback(m) == Done {
		r.evict(q)
	}

	return nil
}

// expire fails q with ErrTimeout. It is a no-op if the query has already
// been evicted, so late-firing timers are harmless.
func (r *registry) expire(q *sentQuery) {
	if r.pending[q.id] != q {
		return
	}

	q.response.fail(ErrTimeout)
	r.evict(q)
}

// drain evicts every outstanding query, failing each handle with err.
func (r *registry) drain(err error) {
	for _, q := range r.pending {
		if q.timer != nil {
			q.timer.Stop()
		}
		q.response.fail(err)
	}

	r.pending = map[uint16]*sentQuery{}
}

func (r *registry) evict(q *sentQuery) {
	if q.timer != nil {
		q.timer.Stop()
	}

	delete(r.pending, q.id)
}

// size returns the number of outstanding queries.
func (r *registry) size() int {
	return len(r.pending)
}
