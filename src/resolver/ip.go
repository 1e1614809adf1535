package resolver

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ipToArpa returns the "arpa." domain name used to look up the given IP in
// a PTR record. It returns (ip, false) if ip is not an IP address.
func ipToArpa(ip string) (string, bool) {
	v6 := net.ParseIP(ip)
	if v6 == nil {
		return ip, false
	}

	if v4 := v6.To4(); v4 != nil {
		return fmt.Sprintf(
			"%d.%d.%d.%d.in-addr.arpa.",
			v4[3],
			v4[2],
			v4[1],
			v4[0],
		), true
	}

	// IPv6 reverse names spell out each nibble, least significant first.
	var b strings.Builder
	for i := 15; i >= 0; i-- {
		b.WriteString(strconv.FormatUint(uint64(v6[i]&0xF), 16))
		b.WriteByte('.')
		b.WriteString(strconv.FormatUint(uint64(v6[i]>>4), 16))
		b.WriteByte('.')
	}
	b.WriteString("ip6.arpa.")

	return b.String(), true
}
