//go:build !windows
// +build !windows

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddrAndPort enables SO_REUSEADDR and SO_REUSEPORT on the socket
// before it is bound, so that multiple mDNS participants on the host can
// share the well-known port.
func reuseAddrAndPort(network, address string, conn syscall.RawConn) error {
	var opErr error

	err := conn.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if opErr != nil {
			return
		}

		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}

	return opErr
}
