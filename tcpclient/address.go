package tcpclient

import (
	"fmt"
	"net/netip"
)

const localhostName = "localhost"

// parseAddress accepts a dotted-quad IPv4 literal or the literal "localhost".
// No name resolution is performed.
func parseAddress(s string) (netip.Addr, error) {
	if s == localhostName {
		return netip.AddrFrom4([4]byte{127, 0, 0, 1}), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrAddressParse, s)
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %q is not IPv4", ErrAddressParse, s)
	}

	return addr, nil
}
