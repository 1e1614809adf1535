package transport

import (
	"net"

	"github.com/dogmatiq/dodeca/logging"
)

func logListening(logger logging.Logger, addr *net.UDPAddr, iface *net.Interface) {
	logging.Debug(
		logger,
		"listening for mDNS messages on %s (%s)",
		addr,
		iface.Name,
	)
}

func logListenError(logger logging.Logger, addr *net.UDPAddr, err error) {
	logging.Log(
		logger,
		"unable to listen for mDNS messages on %s: %s",
		addr,
		err,
	)
}

func logJoinError(logger logging.Logger, group net.IP, iface *net.Interface, err error) {
	logging.Log(
		logger,
		"unable to join the '%s' multicast group on the '%s' interface: %s",
		group,
		iface.Name,
		err,
	)
}

func logReadError(logger logging.Logger, addr *net.UDPAddr, err error) {
	logging.Log(
		logger,
		"unable to read mDNS packet via %s: %s",
		addr,
		err,
	)
}

func logWriteError(logger logging.Logger, dest, addr *net.UDPAddr, err error) {
	logging.Log(
		logger,
		"unable to send mDNS packet to %s via %s: %s",
		dest,
		addr,
		err,
	)
}

func logForeignPacket(logger logging.Logger, src net.Addr, ifIndex int, iface *net.Interface) {
	logging.Debug(
		logger,
		"discarding packet from %s delivered via interface %d, bound to '%s'",
		src,
		ifIndex,
		iface.Name,
	)
}
