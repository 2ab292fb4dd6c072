package model

import "net/netip"

// Family is an IP address family.
type Family int

const (
	IPv4 Family = 4
	IPv6 Family = 6
)

func (f Family) String() string {
	if f == IPv4 {
		return "ipv4"
	}
	return "ipv6"
}

// Bits returns the address width of the family.
func (f Family) Bits() int {
	if f == IPv4 {
		return 32
	}
	return 128
}

// Overhead is the number of host addresses a subnet reserves: network and
// broadcast for IPv4, network only for IPv6.
func (f Family) Overhead() int {
	if f == IPv4 {
		return 2
	}
	return 1
}

// FamilyOf returns the family of addr. IPv4-mapped IPv6 addresses are IPv6.
func FamilyOf(addr netip.Addr) Family {
	if addr.Is4() {
		return IPv4
	}
	return IPv6
}

// CheckPrefix returns a PrefixOutOfRangeError when prefix does not fit the family.
func CheckPrefix(f Family, prefix int) error {
	if prefix < 0 || prefix > f.Bits() {
		return PrefixOutOfRangeError{Family: f, Prefix: prefix}
	}
	return nil
}
