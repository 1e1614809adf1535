package wire

// Type identifies the kind of data carried by a resource record or requested
// by a question.
type Type uint16

// Record types understood by this package. Records of any other type decode
// into an Opaque payload, with the numeric type preserved on the record.
//
// See https://www.iana.org/assignments/dns-parameters/dns-parameters.xhtml.
const (
	TypeA     Type = 1  // RFC-1035, a host address
	TypeNS    Type = 2  // RFC-1035, an authoritative name server
	TypeCNAME Type = 5  // RFC-1035, the canonical name for an alias
	TypeSOA   Type = 6  // RFC-1035, marks the start of a zone of authority
	TypePTR   Type = 12 // RFC-1035, a domain name pointer
	TypeTXT   Type = 16 // RFC-1035, text strings
	TypeAAAA  Type = 28 // RFC-3596, an IPv6 host address
	TypeSRV   Type = 33 // RFC-2782, server selection
)

// Class identifies the protocol family of a question or record.
type Class uint16

// Record classes. In practice everything is ClassINET.
const (
	ClassINET   Class = 1
	ClassCHAOS  Class = 3
	ClassHESIOD Class = 4
	ClassANY    Class = 255
)

// classFlagBit is the top bit of the 16-bit class word. RFC-6762 reuses it
// as the unicast-response flag in questions (section 18.12) and as the
// cache-flush flag in records (section 18.13). The lower 15 bits carry the
// numeric class.
const classFlagBit = 1 << 15

// Opcode is a DNS operation code.
type Opcode uint8

// Opcodes. Only standard queries are used by this package.
const (
	OpcodeQuery  Opcode = 0
	OpcodeIQuery Opcode = 1
	OpcodeStatus Opcode = 2
)

// RCode is a DNS response code.
type RCode uint8

// Response codes, per RFC-1035 section 4.1.1.
const (
	RCodeNoError        RCode = 0
	RCodeFormatError    RCode = 1
	RCodeServerFailure  RCode = 2
	RCodeNameError      RCode = 3
	RCodeNotImplemented RCode = 4
	RCodeRefused        RCode = 5
)
