package topology

import (
	"fmt"
	"net/netip"
)

const (
	DefaultEndpoint = "place.holder.local.arpa:51820"
)

var (
	DefaultIPv4Base = netip.MustParseAddr("10.0.0.0")
	DefaultIPv6Base = netip.MustParseAddr("fd00::")
)

type config struct {
	ipv4Base netip.Addr
	ipv6Base netip.Addr
	endpoint string
}

func newDefaultConfig() *config {
	return &config{
		ipv4Base: DefaultIPv4Base,
		ipv6Base: DefaultIPv6Base,
		endpoint: DefaultEndpoint,
	}
}

func (c *config) check() error {
	if !c.ipv4Base.Is4() {
		return fmt.Errorf("ipv4 base %v is not an IPv4 address", c.ipv4Base)
	}
	if !c.ipv6Base.Is6() || c.ipv6Base.Is4In6() {
		return fmt.Errorf("ipv6 base %v is not an IPv6 address", c.ipv6Base)
	}
	return nil
}

type Option func(*config)

// WithIPv4Base sets the network new IPv4 addresses are drawn from when the
// mesh has no addresses yet.
func WithIPv4Base(addr netip.Addr) Option {
	return func(cfg *config) {
		cfg.ipv4Base = addr
	}
}

// WithIPv6Base is WithIPv4Base for IPv6.
func WithIPv6Base(addr netip.Addr) Option {
	return func(cfg *config) {
		cfg.ipv6Base = addr
	}
}

// WithEndpoint sets the endpoint given to new nodes. An empty endpoint leaves
// new nodes unreachable.
func WithEndpoint(endpoint string) Option {
	return func(cfg *config) {
		cfg.endpoint = endpoint
	}
}
