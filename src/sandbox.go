package main

import (
	"context"
	"log"
	"net"

	"github.com/dogmatiq/dodeca/logging"
	"github.com/effuse/effuse/src/effuse/mdns"
	"github.com/effuse/effuse/src/effuse/wire"
)

func answer(in *mdns.Envelope) (*mdns.Envelope, error) {
	for _, q := range in.Message.Questions {
		if q.Type != wire.TypeA {
			continue
		}

		if !q.Name.Equal(wire.MustParseName("foo.bar.local")) {
			continue
		}

		res := mdns.NewResponse(in.Message, false)
		res.Answers = append(res.Answers, wire.Record{
			Name:       q.Name,
			Type:       wire.TypeA,
			Class:      wire.ClassINET,
			CacheFlush: true,
			TTL:        120,
			Data:       wire.A{Addr: net.IPv4(192, 168, 60, 36)},
		})

		return &mdns.Envelope{Message: res}, nil
	}

	return nil, nil
}

func main() {
	svr, err := mdns.NewServer(
		answer,
		mdns.UseLogger(logging.DebugLogger),
		mdns.IgnoreSelf,
	)
	if err != nil {
		log.Fatal(err)
	}

	err = svr.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
