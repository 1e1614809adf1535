// Package wire implements the DNS wire format described by RFC-1035,
// including pointer-based name compression, together with the mDNS
// extensions to the question and record class fields described by RFC-6762.
//
// Messages are encoded and decoded by value; decoded messages never retain
// references into the datagram they were parsed from.
package wire
