package wire

import (
	"io"
)

// WriteFrame writes m to w using the framing defined for DNS stream
// transports (RFC-1035 section 4.2.2): a 16-bit big-endian length prefix
// followed by exactly that many bytes of message.
//
// The UDP client core does not use framing; it exists for callers that
// relay messages over a stream.
func WriteFrame(w io.Writer, m *Message, compress bool) error {
	data, err := m.Pack(compress)
	if err != nil {
		return err
	}

	if len(data) > 0xFFFF {
		return protocolErrorf("message is %d bytes, framing limit is 65535", len(data))
	}

	var prefix [2]byte
	nbo.PutUint16(prefix[:], uint16(len(data)))

	if _, err := w.Write(prefix[:]); err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// ReadFrame reads a single length-prefixed message from r.
func ReadFrame(r io.Reader) (*Message, error) {
	var prefix [2]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return nil, err
	}

	data := make([]byte, nbo.Uint16(prefix[:]))
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}

	m := &Message{}
	if err := m.Unpack(data); err != nil {
		return nil, err
	}

	return m, nil
}
