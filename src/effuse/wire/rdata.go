package wire

import (
	"fmt"
	"net"
	"strings"
)

// RData is the type-specific payload of a resource record.
//
// The set of implementations is closed: A, AAAA, TXT, SRV, PTR and Opaque.
// Records of a type this package does not understand decode into Opaque,
// with the numeric type preserved on the containing Record.
type RData interface {
	// writeTo appends the payload's RDATA encoding to e.
	writeTo(e *encoder) error
}

// A is the payload of an IPv4 host address record.
type A struct {
	Addr net.IP
}

func (a A) writeTo(e *encoder) error {
	v4 := a.Addr.To4()
	if v4 == nil {
		return fmt.Errorf("%w: '%s' is not an IPv4 address", ErrUnsupported, a.Addr)
	}

	e.writeBytes(v4)

	return nil
}

// AAAA is the payload of an IPv6 host address record.
type AAAA struct {
	Addr net.IP
}

func (a AAAA) writeTo(e *encoder) error {
	v6 := a.Addr.To16()
	if v6 == nil {
		return fmt.Errorf("%w: '%s' is not an IPv6 address", ErrUnsupported, a.Addr)
	}

	e.writeBytes(v6)

	return nil
}

// TXT is the payload of a text record.
//
// On the wire the payload is a sequence of length-prefixed character-strings
// (RFC-1035 section 3.3.14); Text is their concatenation. When the text
// follows the "key=value" convention with exactly one '=', Key and Value
// carry the two halves; otherwise both are empty.
type TXT struct {
	Text  string
	Key   string
	Value string
}

// NewTXT returns a TXT payload for the given text, with Key and Value
// populated when the text follows the key=value convention.
func NewTXT(text string) TXT {
	t := TXT{Text: text}
	t.Key, t.Value = splitTextPair(text)

	return t
}

// splitTextPair splits "key=value" text. Text containing zero or multiple
// '=' characters yields empty results.
func splitTextPair(text string) (string, string) {
	i := strings.Index(text, "=")
	if i == -1 || strings.Contains(text[i+1:], "=") {
		return "", ""
	}

	return text[:i], text[i+1:]
}

func (t TXT) writeTo(e *encoder) error {
	text := t.Text

	// Character-strings carry at most 255 bytes each; longer text is split
	// across several of them. Empty text still produces one empty string,
	// as the payload must contain at least one (RFC-1035 section 3.3.14).
	for {
		chunk := text
		if len(chunk) > 255 {
			chunk = chunk[:255]
		}

		e.writeByte(byte(len(chunk)))
		e.writeBytes([]byte(chunk))

		text = text[len(chunk):]
		if text == "" {
			return nil
		}
	}
}

// SRV is the payload of a server-selection record (RFC-2782).
type SRV struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

func (s SRV) writeTo(e *encoder) error {
	e.writeUint16(s.Priority)
	e.writeUint16(s.Weight)
	e.writeUint16(s.Port)

	// The target is never compressed, as per RFC-2782.
	return e.writeNameLiteral(s.Target)
}

// PTR is the payload of a domain name pointer record.
type PTR struct {
	Target Name
}

func (p PTR) writeTo(e *encoder) error {
	return e.writeNameLiteral(p.Target)
}

// Opaque is the payload of a record whose type this package does not
// understand. It owns a copy of the raw RDATA bytes.
type Opaque struct {
	Data []byte
}

func (o Opaque) writeTo(e *encoder) error {
	e.writeBytes(o.Data)
	return nil
}

// SOA is the payload of a start-of-authority record, parsed on demand from
// an Opaque payload via Opaque.SOA().
type SOA struct {
	MName   Name
	RName   Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// SOA parses the opaque payload as an SOA record.
//
// The payload is parsed in isolation, so MNAME and RNAME must be encoded
// without compression pointers; pointers into the original message are no
// longer resolvable once the payload has been copied out of it.
func (o Opaque) SOA() (*SOA, error) {
	d := newDecoder(o.Data)

	mname, err := d.readName()
	if err != nil {
		return nil, invalidSOA(err)
	}

	rname, err := d.readName()
	if err != nil {
		return nil, invalidSOA(err)
	}

	s := &SOA{
		MName: mname,
		RName: rname,
	}

	for _, v := range []*uint32{&s.Serial, &s.Refresh, &s.Retry, &s.Expire, &s.Minimum} {
		if *v, err = d.readUint32(); err != nil {
			return nil, invalidSOA(err)
		}
	}

	return s, nil
}

func invalidSOA(err error) error {
	return fmt.Errorf("%w: %s", ErrInvalidSOA, err)
}

// writeNameLiteral appends the encoded form of n without consulting or
// updating the compression table. Names inside RDATA are always written in
// full.
func (e *encoder) writeNameLiteral(n Name) error {
	if err := n.Validate(); err != nil {
		return err
	}

	for _, label := range n {
		e.writeByte(byte(len(label)))
		e.writeBytes([]byte(label))
	}

	e.writeByte(0)

	return nil
}

// readTXT decodes the sequence of character-strings in a TXT payload.
func (d *decoder) readTXT(rdlength int) (TXT, error) {
	var text strings.Builder

	end := d.pos + rdlength

	for d.pos < end {
		n, err := d.readByte()
		if err != nil {
			return TXT{}, err
		}

		if d.pos+int(n) > end {
			return TXT{}, protocolErrorf("TXT character-string extends past RDATA")
		}

		s, err := d.readBytes(int(n))
		if err != nil {
			return TXT{}, err
		}

		text.Write(s)
	}

	return NewTXT(text.String()), nil
}
