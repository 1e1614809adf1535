//go:build windows
// +build windows

package transport

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// reuseAddrAndPort enables SO_REUSEADDR on the socket before it is bound.
// Windows has no SO_REUSEPORT; SO_REUSEADDR alone allows the well-known
// port to be shared.
func reuseAddrAndPort(network, address string, conn syscall.RawConn) error {
	var opErr error

	err := conn.Control(func(fd uintptr) {
		opErr = windows.SetsockoptInt(
			windows.Handle(fd),
			windows.SOL_SOCKET,
			windows.SO_REUSEADDR,
			1,
		)
	})
	if err != nil {
		return err
	}

	return opErr
}
