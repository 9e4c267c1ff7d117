// Package target validates scan targets before any probing starts.
//
// A valid target is either a dotted IPv4 literal or a hostname with at
// least one A record. IPv6 is not supported: IPv6 literals and
// IPv6-only hosts are rejected rather than silently corrected.
package target

import (
	"errors"
	"net"
)

// Validate reports whether the target is scannable: an IPv4 literal or
// a hostname that resolves to at least one IPv4 address. It never
// returns an error; any resolution failure yields false.
//
// The IPv4 literal check runs first because it needs no network
// access. The hostname path performs a DNS lookup, which may block —
// there is no caching and no timeout control, so a hung resolver
// stalls the scan start. Accepted limitation at this scale.
func Validate(target string) bool {
	_, err := ResolveIPv4(target)
	return err == nil
}

// ResolveIPv4 resolves the target to its first IPv4 address as a
// string. IPv6 literals and hosts that resolve only to IPv6 addresses
// produce an error.
func ResolveIPv4(target string) (string, error) {
	if ip := net.ParseIP(target); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
		return "", errors.New("IPv6 addresses are not supported")
	}

	ips, err := net.LookupIP(target)
	if err != nil {
		return "", err
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", errors.New("host resolves only to IPv6 addresses; IPv6 is not supported")
}
