//go:build !debug
// +build !debug

package mdns

import (
	"github.com/effuse/effuse/src/effuse/mdns/transport"
	"github.com/effuse/effuse/src/effuse/wire"
)

// dumpExchange is a no-op unless compiled with the 'debug' build tag.
func dumpExchange(*transport.InboundPacket, *wire.Message, *wire.Message) {}
