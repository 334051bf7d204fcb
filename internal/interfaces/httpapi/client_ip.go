package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientAddrSources are consulted in order; the first that yields an address wins.
var clientAddrSources = []func(*http.Request) string{
	func(r *http.Request) string {
		first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		return first
	},
	func(r *http.Request) string { return r.Header.Get("X-Real-IP") },
	func(r *http.Request) string { return r.RemoteAddr },
}

// resolveClientIP reports the caller's address for access logs. IPv4-mapped IPv6 is unmapped.
func resolveClientIP(r *http.Request) string {
	for _, source := range clientAddrSources {
		if addr, ok := parseAddr(source(r)); ok {
			return addr.String()
		}
	}
	return ""
}

func parseAddr(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}
