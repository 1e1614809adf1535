package resolver

import (
	"net"
	"time"

	"github.com/miekg/dns"
)

// Config defines the nameservers and timing used to perform unicast
// queries.
type Config struct {
	// Servers is the ordered list of nameserver addresses. The client
	// prefers the first IPv4 address, falling back to the first address of
	// any family.
	Servers []net.IP

	// Timeout is the deadline applied to each query.
	Timeout time.Duration
}

// DefaultConfig is the configuration used when none is provided. It is
// read from /etc/resolv.conf, with a well-known public fallback when the
// file cannot be parsed.
var DefaultConfig *Config

func init() {
	if conf, err := dns.ClientConfigFromFile("/etc/resolv.conf"); err == nil {
		DefaultConfig = fromClientConfig(conf)
	} else {
		DefaultConfig = &Config{
			Servers: []net.IP{
				net.IPv4(8, 8, 8, 8),
				net.IPv4(8, 8, 4, 4),
			},
			Timeout: 5 * time.Second,
		}
	}
}

// fromClientConfig converts a parsed resolv.conf into a Config, dropping
// any server entries that are not literal IP addresses.
func fromClientConfig(conf *dns.ClientConfig) *Config {
	c := &Config{
		Timeout: time.Duration(conf.Timeout) * time.Second,
	}

	for _, s := range conf.Servers {
		if ip := net.ParseIP(s); ip != nil {
			c.Servers = append(c.Servers, ip)
		}
	}

	return c
}
