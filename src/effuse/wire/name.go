package wire

import (
	"strings"
)

const (
	// maxLabelLength is the maximum length of a single label, in bytes.
	maxLabelLength = 63

	// maxNameLength is the maximum encoded length of a complete name,
	// including the length prefix of each label and the terminating zero.
	maxNameLength = 255

	// maxPointerHops bounds the number of compression pointers that may be
	// followed while decoding a single name. Together with the requirement
	// that every pointer refers strictly backwards, it guarantees that
	// decoding terminates.
	maxPointerHops = 128

	// maxPointerOffset is the largest buffer offset that can be referred to
	// by a 14-bit compression pointer.
	maxPointerOffset = 1<<14 - 1
)

// Name is a DNS domain name, represented as its sequence of labels.
//
// The empty terminating label is implicit; a zero-length Name is the DNS
// root.
type Name []string

// ParseName parses a dotted domain name. A trailing dot is accepted and
// ignored.
func ParseName(s string) (Name, error) {
	s = strings.TrimSuffix(s, ".")

	if s == "" {
		return Name{}, nil
	}

	n := Name(strings.Split(s, "."))
	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// MustParseName parses a dotted domain name.
// It panics if the name is invalid.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}

	return n
}

// Validate returns nil if every label is 1-63 bytes and the encoded form of
// the name fits in 255 bytes.
func (n Name) Validate() error {
	size := 1 // terminating zero label

	for _, l := range n {
		if len(l) == 0 {
			return protocolErrorf("name '%s' contains an empty label", n)
		}

		if len(l) > maxLabelLength {
			return protocolErrorf("label '%s' exceeds %d bytes", l, maxLabelLength)
		}

		size += len(l) + 1
	}

	if size > maxNameLength {
		return protocolErrorf("name '%s' exceeds %d bytes when encoded", n, maxNameLength)
	}

	return nil
}

// String returns the name in fully-qualified dotted form.
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}

	return strings.Join(n, ".") + "."
}

// Equal returns true if n and o contain the same labels.
//
// DNS names compare case-insensitively (RFC-1035 section 2.3.3).
func (n Name) Equal(o Name) bool {
	if len(n) != len(o) {
		return false
	}

	for i := range n {
		if !strings.EqualFold(n[i], o[i]) {
			return false
		}
	}

	return true
}

// writeName appends the encoded form of n to the buffer.
//
// When the encoder has compression enabled, any suffix of n that has been
// written before is replaced with a two-byte pointer to its first
// occurrence, and each newly-written suffix is recorded for later reuse.
func (e *encoder) writeName(n Name) error {
	if err := n.Validate(); err != nil {
		return err
	}

	for i, label := range n {
		if e.offsets != nil {
			suffix := Name(n[i:]).String()

			if offset, ok := e.offsets[suffix]; ok {
				e.writeUint16(0xC000 | uint16(offset))
				return nil
			}

			if len(e.buf) <= maxPointerOffset {
				e.offsets[suffix] = len(e.buf)
			}
		}

		e.writeByte(byte(len(label)))
		e.writeBytes([]byte(label))
	}

	e.writeByte(0)

	return nil
}

// readName decodes a name starting at the decoder's current position,
// following compression pointers as necessary.
//
// Every pointer must refer strictly backwards of the region being decoded,
// which makes cycles impossible; the hop count and total name length are
// bounded as well, so decoding always terminates. The decoder is left
// positioned immediately after the name's encoding in the original region.
func (d *decoder) readName() (Name, error) {
	var (
		n      Name
		pos    = d.pos
		limit  = d.pos // pointers must land strictly before this offset
		size   = 1     // encoded size, including the terminator
		hops   = 0
		jumped = false
	)

	for {
		if pos >= len(d.buf) {
			return nil, protocolErrorf("name extends past end of message")
		}

		c := d.buf[pos]

		switch {
		case c == 0:
			if !jumped {
				d.pos = pos + 1
			}
			return n, nil

		case c&0xC0 == 0x00:
			size += int(c) + 1
			if size > maxNameLength {
				return nil, protocolErrorf("name exceeds %d bytes", maxNameLength)
			}

			end := pos + 1 + int(c)
			if end > len(d.buf) {
				return nil, protocolErrorf("label extends past end of message")
			}

			n = append(n, string(d.buf[pos+1:end]))
			pos = end

		case c&0xC0 == 0xC0:
			if pos+1 >= len(d.buf) {
				return nil, protocolErrorf("truncated compression pointer")
			}

			offset := int(c&0x3F)<<8 | int(d.buf[pos+1])
			if offset >= limit {
				return nil, protocolErrorf(
					"compression pointer to offset %d does not refer backwards",
					offset,
				)
			}

			hops++
			if hops > maxPointerHops {
				return nil, protocolErrorf("name follows more than %d compression pointers", maxPointerHops)
			}

			if !jumped {
				d.pos = pos + 2
				jumped = true
			}

			pos = offset
			limit = offset

		default:
			// 0x40 and 0x80 are reserved label types (RFC-1035 section 4.1.4).
			return nil, protocolErrorf("reserved label type 0x%02x", c&0xC0)
		}
	}
}
