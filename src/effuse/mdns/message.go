package mdns

import (
	"errors"

	"github.com/effuse/effuse/src/effuse/wire"
)

// validateQuery returns an error if m is not a valid mDNS query.
//
// Invalid queries are silently ignored by the server, as the RFC requires.
func validateQuery(m *wire.Message) error {
	if m.Header.Response {
		return errors.New("message is a response")
	}

	// https://tools.ietf.org/html/rfc6762#section-18.3
	//
	// "In both multicast query and multicast response messages, the OPCODE MUST
	// be zero on transmission (only standard queries are currently supported
	// over multicast).  Multicast DNS messages received with an OPCODE other
	// than zero MUST be silently ignored."
	if m.Header.Opcode != wire.OpcodeQuery {
		return errors.New("OPCODE must be zero (query) in mDNS queries")
	}

	// https://tools.ietf.org/html/rfc6762#section-18.11
	//
	// "In both multicast query and multicast response messages, the Response
	// Code MUST be zero on transmission.  Multicast DNS messages received with
	// non-zero Response Codes MUST be silently ignored."
	if m.Header.RCode != wire.RCodeNoError {
		return errors.New("RCODE must be zero in mDNS queries")
	}

	return nil
}

// NewResponse returns a new (empty) response to an mDNS query.
//
// See https://tools.ietf.org/html/rfc6762#section-6 and
// https://tools.ietf.org/html/rfc6762#section-18.
func NewResponse(query *wire.Message, unicast bool) *wire.Message {
	m := &wire.Message{}

	// https://tools.ietf.org/html/rfc6762#section-18.1
	//
	// In multicast responses, including unsolicited multicast responses,
	// the Query Identifier MUST be set to zero on transmission, and MUST be
	// ignored on reception.
	//
	// In legacy unicast response messages generated specifically in
	// response to a particular (unicast or multicast) query, the Query
	// Identifier MUST match the ID from the query message.
	if unicast {
		m.Header.ID = query.Header.ID
	}

	m.Header.Response = true

	// https://tools.ietf.org/html/rfc6762#section-18.4
	//
	// In response messages for Multicast domains, the Authoritative Answer
	// bit MUST be set to one (not setting this bit would imply there's some
	// other place where "better" information may be found) and MUST be
	// ignored on reception.
	m.Header.Authoritative = true

	// https://tools.ietf.org/html/rfc6762#section-6
	//
	// Multicast DNS responses MUST NOT contain any questions in the
	// Question Section. Multicast DNS queriers receiving Multicast DNS
	// responses do not care what question elicited the response; they care
	// only that the information in the response is true and accurate.
	//
	// Sections 18.3 through 18.11 require every other header field to be
	// zero on transmission, which is what a fresh message carries.
	return m
}
