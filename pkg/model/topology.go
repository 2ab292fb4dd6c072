package model

import (
	"errors"
	"fmt"
	"net/netip"
)

// Topology is the full mesh: its nodes in insertion order plus the subnet
// prefixes shared by every node address.
type Topology struct {
	Nodes      []Node `json:"nodes" yaml:"nodes"`
	IPv4Prefix int    `json:"ipv4_prefix" yaml:"ipv4_prefix"`
	IPv6Prefix int    `json:"ipv6_prefix" yaml:"ipv6_prefix"`
}

// Prefix returns the topology prefix of family f.
func (t *Topology) Prefix(f Family) int {
	if f == IPv4 {
		return t.IPv4Prefix
	}
	return t.IPv6Prefix
}

// Validate runs one full pass over the prefixes and every node. A node failure
// is wrapped with the node's index and tag.
func (t *Topology) Validate() error {
	var errs []error
	if err := CheckPrefix(IPv4, t.IPv4Prefix); err != nil {
		errs = append(errs, err)
	}
	if err := CheckPrefix(IPv6, t.IPv6Prefix); err != nil {
		errs = append(errs, err)
	}
	for i, n := range t.Nodes {
		if err := n.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("node %d (tag %q): %w", i, n.Tag, err))
		}
	}
	return errors.Join(errs...)
}

// Addresses parses the node addresses of family f in node order.
func (t *Topology) Addresses(f Family) ([]netip.Addr, error) {
	out := make([]netip.Addr, 0, len(t.Nodes))
	for i, n := range t.Nodes {
		s := n.IPv4
		if f == IPv6 {
			s = n.IPv6
		}
		addr, err := ParseAddress(s, f)
		if err != nil {
			return nil, fmt.Errorf("node %d (tag %q): %w", i, n.Tag, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

// Clone returns a copy that shares no node storage with t.
func (t *Topology) Clone() *Topology {
	c := *t
	c.Nodes = append([]Node(nil), t.Nodes...)
	return &c
}
