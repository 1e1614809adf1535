//go:build debug
// +build debug

package mdns

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/effuse/effuse/src/effuse/mdns/transport"
	"github.com/effuse/effuse/src/effuse/wire"
)

var dumpMutex sync.Mutex

func indent(s string) string {
	return "\t" + strings.Replace(s, "\n", "\n\t", -1)
}

// dumpExchange prints a query and the response the handler produced for it.
// It is a no-op unless compiled with the 'debug' build tag.
func dumpExchange(
	in *transport.InboundPacket,
	query *wire.Message,
	response *wire.Message,
) {
	dumpMutex.Lock()
	defer dumpMutex.Unlock()

	fmt.Fprintln(os.Stderr, strings.Repeat("-", 80))

	fmt.Fprintf(os.Stderr, "QUERY FROM %s", in.Source.Address)
	if in.Source.IsLegacy() {
		fmt.Fprintf(os.Stderr, " (legacy)")
	}
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, indent(spew.Sdump(query)))

	fmt.Fprintln(os.Stderr, "RESPONSE")
	fmt.Fprintln(os.Stderr, indent(spew.Sdump(response)))
}
