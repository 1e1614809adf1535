package client

import (
	"net"

	"github.com/effuse/effuse/src/effuse/mdns"
)

// DialMulticast creates a client that performs one-shot multicast DNS
// queries over IPv4 (RFC-6762 section 5.1).
//
// Queries are sent to the mDNS group from an ephemeral port, which marks
// them as coming from a simple resolver; responders reply directly to this
// client from their own addresses, so the socket is left unconnected.
// Callers interested in more than the first response should pass
// EveryResponse (or their own callback) to Send.
func DialMulticast(options ...Option) (*Client, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, err
	}

	return newClient(
		conn,
		mdns.IPv4Address,
		append([]Option{UseCompression(true)}, options...)...,
	)
}
