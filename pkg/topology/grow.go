// Package topology creates and grows meshes and derives per-node peer plans.
package topology

import (
	"fmt"
	"net/netip"
	"slices"
	"strconv"

	"wg-mesh/pkg/alloc"
	"wg-mesh/pkg/model"
)

// Template returns the editable skeleton written by init without a count:
// a single empty node in a /24 and /120.
func Template() *model.Topology {
	return &model.Topology{
		Nodes:      []model.Node{{}},
		IPv4Prefix: 24,
		IPv6Prefix: 120,
	}
}

// Generate creates count nodes tagged "1".."count" with fresh keypairs and
// sequential addresses after the network address of each base subnet.
func Generate(count int, opts ...Option) (*model.Topology, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative node count %d", count)
	}
	cfg := newDefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return grow(&model.Topology{}, count, func(i int) string { return strconv.Itoa(i + 1) }, cfg)
}

// Append returns a copy of t grown by count nodes. A single node is tagged
// tag, several are tagged tag-1..tag-count. Prefixes are recomputed for the
// new total and new addresses are the lowest free hosts of the recomputed
// subnets. t itself is left untouched.
func Append(t *model.Topology, tag string, count int, opts ...Option) (*model.Topology, error) {
	if count < 0 {
		return nil, fmt.Errorf("negative node count %d", count)
	}
	cfg := newDefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	name := func(int) string { return tag }
	if count != 1 {
		name = func(i int) string { return fmt.Sprintf("%s-%d", tag, i+1) }
	}
	return grow(t, count, name, cfg)
}

func grow(t *model.Topology, count int, name func(int) string, cfg *config) (*model.Topology, error) {
	total := len(t.Nodes) + count
	p4, err := alloc.PrefixFor(model.IPv4, total)
	if err != nil {
		return nil, err
	}
	p6, err := alloc.PrefixFor(model.IPv6, total)
	if err != nil {
		return nil, err
	}
	v4, err := nextAddresses(t, model.IPv4, p4, count, cfg.ipv4Base)
	if err != nil {
		return nil, err
	}
	v6, err := nextAddresses(t, model.IPv6, p6, count, cfg.ipv6Base)
	if err != nil {
		return nil, err
	}

	out := t.Clone()
	out.IPv4Prefix = p4
	out.IPv6Prefix = p6
	for i := 0; i < count; i++ {
		kp, err := model.NewKeyPair()
		if err != nil {
			return nil, err
		}
		out.Nodes = append(out.Nodes, model.Node{
			Tag:      name(i),
			KeyPair:  kp,
			IPv4:     v4[i].String(),
			IPv6:     v6[i].String(),
			Endpoint: cfg.endpoint,
		})
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// nextAddresses draws count free addresses of family f. The subnet is anchored
// at the lowest address in use, or at base for an empty mesh. The IPv4
// broadcast address is never handed out. Running short is reported as a
// CapacityExceededError whose Max is the node capacity of the recomputed
// subnet.
func nextAddresses(t *model.Topology, f model.Family, prefix, count int, base netip.Addr) ([]netip.Addr, error) {
	used, err := t.Addresses(f)
	if err != nil {
		return nil, err
	}
	subnet := netip.PrefixFrom(base, prefix).Masked()
	seq := alloc.Hosts(subnet)
	if len(used) > 0 {
		subnet = netip.PrefixFrom(slices.MinFunc(used, netip.Addr.Compare), prefix).Masked()
		if seq, err = alloc.AvailableAddresses(used, prefix); err != nil {
			return nil, err
		}
	}
	addrs := alloc.Take(alloc.WithoutBroadcast(seq, subnet), count)
	if len(addrs) < count {
		return nil, alloc.CapacityExceededError{
			Total: len(t.Nodes) + count,
			Max:   alloc.SubnetCapacity(f, prefix),
		}
	}
	return addrs, nil
}
