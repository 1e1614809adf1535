package wire

import "encoding/binary"

// bufferSizeHint is the initial allocation for encoded messages. It is the
// classical maximum size of a DNS message carried over UDP (RFC-1035 section
// 4.2.1); the buffer grows past it when mDNS messages need more.
const bufferSizeHint = 512

var nbo = binary.BigEndian

// encoder appends big-endian wire data to a growable buffer.
//
// When name compression is enabled it remembers the offset of every name
// suffix it has written, so that later occurrences of the same suffix can be
// replaced by a two-byte pointer.
type encoder struct {
	buf     []byte
	offsets map[string]int // suffix name -> buffer offset, nil when compression is off
}

func newEncoder(compress bool) *encoder {
	e := &encoder{
		buf: make([]byte, 0, bufferSizeHint),
	}

	if compress {
		e.offsets = map[string]int{}
	}

	return e
}

func (e *encoder) writeByte(v byte) {
	e.buf = append(e.buf, v)
}

func (e *encoder) writeUint16(v uint16) {
	var b [2]byte
	nbo.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) writeUint32(v uint32) {
	var b [4]byte
	nbo.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) writeBytes(v []byte) {
	e.buf = append(e.buf, v...)
}

// patchUint16 overwrites the two bytes at offset. It is used to backpatch
// RDLENGTH once a record's payload has been written.
func (e *encoder) patchUint16(offset int, v uint16) {
	nbo.PutUint16(e.buf[offset:], v)
}

// decoder reads big-endian wire data from a byte slice.
//
// It keeps the whole message visible at all times so that compression
// pointers can be followed backwards into earlier sections.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(data []byte) *decoder {
	return &decoder{buf: data}
}

func (d *decoder) remaining() int {
	return len(d.buf) - d.pos
}

func (d *decoder) readByte() (byte, error) {
	if d.remaining() < 1 {
		return 0, protocolErrorf("unexpected end of message at offset %d", d.pos)
	}

	v := d.buf[d.pos]
	d.pos++

	return v, nil
}

func (d *decoder) readUint16() (uint16, error) {
	if d.remaining() < 2 {
		return 0, protocolErrorf("unexpected end of message at offset %d", d.pos)
	}

	v := nbo.Uint16(d.buf[d.pos:])
	d.pos += 2

	return v, nil
}

func (d *decoder) readUint32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, protocolErrorf("unexpected end of message at offset %d", d.pos)
	}

	v := nbo.Uint32(d.buf[d.pos:])
	d.pos += 4

	return v, nil
}

// readBytes returns a copy of the next n bytes. Decoded values must never
// alias the inbound datagram.
func (d *decoder) readBytes(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, protocolErrorf("unexpected end of message at offset %d", d.pos)
	}

	v := make([]byte, n)
	copy(v, d.buf[d.pos:])
	d.pos += n

	return v, nil
}
