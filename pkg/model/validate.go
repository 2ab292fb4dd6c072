package model

import (
	"net/netip"
	"strconv"
	"strings"
	"unicode"
)

// ParseAddress parses s as an address of family f. Zoned addresses are rejected,
// and IPv4-mapped IPv6 text is not accepted as IPv4.
func ParseAddress(s string, f Family) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil || addr.Zone() != "" {
		return netip.Addr{}, AddressSyntaxError{Family: f, Value: s}
	}
	if (f == IPv4) != addr.Is4() {
		return netip.Addr{}, AddressSyntaxError{Family: f, Value: s}
	}
	return addr, nil
}

const (
	reasonBrackets = "unbalanced brackets"
	reasonSpace    = "contains whitespace or control characters"
	reasonPort     = "port is not a number in [0,65535]"
)

// ParseEndpoint splits a host:port endpoint. When the host is a bracketed
// literal the separator must follow the closing bracket, otherwise the last
// colon of the string is the separator. Brackets are stripped from the host.
// The port must be a decimal number in [0,65535], and the endpoint may not
// contain whitespace or control characters.
func ParseEndpoint(s string) (host, port string, err error) {
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return "", "", EndpointSyntaxError{Value: s, Reason: reasonSpace}
	}
	open := strings.Contains(s, "[")
	closed := strings.Contains(s, "]")
	var sep int
	switch {
	case open && closed:
		end := strings.LastIndex(s, "]")
		i := strings.LastIndex(s[end:], ":")
		if i < 0 {
			return "", "", EndpointMissingPortError{Value: s}
		}
		sep = end + i
	case open || closed:
		return "", "", EndpointSyntaxError{Value: s, Reason: reasonBrackets}
	default:
		sep = strings.LastIndex(s, ":")
		if sep < 0 {
			return "", "", EndpointMissingPortError{Value: s}
		}
	}
	port = s[sep+1:]
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return "", "", EndpointSyntaxError{Value: s, Reason: reasonPort}
	}
	host = strings.TrimSuffix(strings.TrimPrefix(s[:sep], "["), "]")
	return host, port, nil
}
