package droute

import (
	"net"
	"strings"
)

// Default ports of the supported upstream protocols.
var (
	PlainDNSPort = "53"
	DoTPort      = "853"
	DoHPort      = "443"
)

// AddressWithDefault appends the default port to an address that doesn't
// carry one. URLs (as used by DoH endpoints) are returned unchanged.
func AddressWithDefault(addr, defaultPort string) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, port, err := net.SplitHostPort(addr); err == nil && port != "" {
		return addr
	}
	host := addr
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	return net.JoinHostPort(host, defaultPort)
}
