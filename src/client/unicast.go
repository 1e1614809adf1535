package client

import "net"

// Port is the conventional unicast DNS port.
const Port = 53

// SelectNameserver chooses which address from an ordered nameserver list to
// use: the first IPv4 address, falling back to the first address of any
// family.
func SelectNameserver(addrs []net.IP) (net.IP, error) {
	if len(addrs) == 0 {
		return nil, ErrNoNameservers
	}

	for _, a := range addrs {
		if a.To4() != nil {
			return a, nil
		}
	}

	return addrs[0], nil
}

// DialUnicast creates a client addressed to the preferred nameserver from
// the given list, on the conventional DNS port.
func DialUnicast(nameservers []net.IP, options ...Option) (*Client, error) {
	ns, err := SelectNameserver(nameservers)
	if err != nil {
		return nil, err
	}

	return Dial(
		&net.UDPAddr{IP: ns, Port: Port},
		options...,
	)
}
