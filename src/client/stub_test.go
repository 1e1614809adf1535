package client

import (
	"net"

	"github.com/effuse/effuse/src/effuse/wire"
)

// startStubServer starts a UDP nameserver that passes every inbound message
// to respond and writes back whatever messages it returns. It answers from
// the address it returns; stop closes it.
func startStubServer(respond func(*wire.Message) []*wire.Message) (addr *net.UDPAddr, stop func()) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		panic(err)
	}

	go func() {
		buf := make([]byte, 65536)

		for {
			n, src, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}

			m := &wire.Message{}
			if err := m.Unpack(buf[:n]); err != nil {
				continue
			}

			for _, res := range respond(m) {
				data, err := res.Pack(false)
				if err != nil {
					continue
				}

				_, _ = conn.WriteToUDP(data, src)
			}
		}
	}()

	return conn.LocalAddr().(*net.UDPAddr), func() {
		conn.Close()
	}
}

// reply builds a response to q carrying the given answer records.
func reply(q *wire.Message, answers ...wire.Record) *wire.Message {
	return &wire.Message{
		Header: wire.Header{
			ID:       q.Header.ID,
			Response: true,
		},
		Questions: q.Questions,
		Answers:   answers,
	}
}
