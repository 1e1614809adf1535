package wire

// headerLength is the fixed size of a DNS message header.
const headerLength = 12

// Bit layout of the header options word (RFC-1035 section 4.1.1).
const (
	headerBitQR = 1 << 15 // query (0) / response (1)
	headerBitAA = 1 << 10 // authoritative answer
	headerBitTC = 1 << 9  // truncated
	headerBitRD = 1 << 8  // recursion desired
	headerBitRA = 1 << 7  // recursion available
)

// Header is the fixed 12-byte prefix of every DNS message: the transaction
// ID, the 16-bit options word and the four section counts.
type Header struct {
	ID uint16

	Response           bool
	Opcode             Opcode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	Zero               uint8 // the three reserved Z bits
	RCode              RCode

	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

func (e *encoder) writeHeader(h *Header) {
	options := uint16(h.Opcode&0x0F)<<11 |
		uint16(h.Zero&0x07)<<4 |
		uint16(h.RCode&0x0F)

	if h.Response {
		options |= headerBitQR
	}
	if h.Authoritative {
		options |= headerBitAA
	}
	if h.Truncated {
		options |= headerBitTC
	}
	if h.RecursionDesired {
		options |= headerBitRD
	}
	if h.RecursionAvailable {
		options |= headerBitRA
	}

	e.writeUint16(h.ID)
	e.writeUint16(options)
	e.writeUint16(h.QuestionCount)
	e.writeUint16(h.AnswerCount)
	e.writeUint16(h.AuthorityCount)
	e.writeUint16(h.AdditionalCount)
}

func (d *decoder) readHeader(h *Header) error {
	if d.remaining() < headerLength {
		return protocolErrorf("message is shorter than the %d-byte header", headerLength)
	}

	id, _ := d.readUint16()
	options, _ := d.readUint16()
	qc, _ := d.readUint16()
	ac, _ := d.readUint16()
	nsc, _ := d.readUint16()
	arc, _ := d.readUint16()

	*h = Header{
		ID:                 id,
		Response:           options&headerBitQR != 0,
		Opcode:             Opcode(options>>11) & 0x0F,
		Authoritative:      options&headerBitAA != 0,
		Truncated:          options&headerBitTC != 0,
		RecursionDesired:   options&headerBitRD != 0,
		RecursionAvailable: options&headerBitRA != 0,
		Zero:               uint8(options>>4) & 0x07,
		RCode:              RCode(options) & 0x0F,
		QuestionCount:      qc,
		AnswerCount:        ac,
		AuthorityCount:     nsc,
		AdditionalCount:    arc,
	}

	return nil
}
