// Package alloc sizes mesh subnets and hands out free host addresses.
package alloc

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"math/bits"
	"net/netip"

	"wg-mesh/pkg/model"
)

// MaxNodes is the largest mesh that still leaves an IPv4 subnet with a
// positive host-bit margin.
const MaxNodes = 16_777_214

// ErrNoAddresses is returned by AvailableAddresses for an empty used set.
var ErrNoAddresses = errors.New("no used addresses to derive the subnet from")

// CapacityExceededError is returned when a mesh would hold more nodes than
// its address space allows.
type CapacityExceededError struct {
	Total int
	Max   int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("mesh of %d nodes exceeds capacity of %d", e.Total, e.Max)
}

// PrefixFor returns the longest prefix of family f whose subnet holds total
// nodes plus the family's reserved addresses.
func PrefixFor(f model.Family, total int) (int, error) {
	if total < 0 {
		return 0, fmt.Errorf("negative node count %d", total)
	}
	if total > MaxNodes {
		return 0, CapacityExceededError{Total: total, Max: MaxNodes}
	}
	// ceil(log2(n)) for n >= 1
	hostBits := bits.Len(uint(total + f.Overhead() - 1))
	return f.Bits() - hostBits, nil
}

// SubnetCapacity returns how many nodes a subnet of family f with the given
// prefix can number, saturating at math.MaxInt.
func SubnetCapacity(f model.Family, prefix int) int {
	hostBits := f.Bits() - prefix
	if hostBits >= bits.UintSize-2 {
		return math.MaxInt
	}
	return 1<<hostBits - f.Overhead()
}

// Hosts yields every host address of p in ascending order, from offset 1 up to
// and including the all-ones address. The network address is never yielded.
func Hosts(p netip.Prefix) iter.Seq[netip.Addr] {
	p = p.Masked()
	return func(yield func(netip.Addr) bool) {
		for a := p.Addr().Next(); a.IsValid() && p.Contains(a); a = a.Next() {
			if !yield(a) {
				return
			}
		}
	}
}

// AvailableAddresses yields the hosts of the subnet that contains the lowest
// used address, under prefix, skipping every used address. The IPv4 all-ones
// address is included; see WithoutBroadcast.
func AvailableAddresses(used []netip.Addr, prefix int) (iter.Seq[netip.Addr], error) {
	if len(used) == 0 {
		return nil, ErrNoAddresses
	}
	base := used[0]
	f := model.FamilyOf(base)
	taken := make(map[netip.Addr]struct{}, len(used))
	for _, a := range used {
		if model.FamilyOf(a) != f {
			return nil, fmt.Errorf("mixed address families: %v and %v", base, a)
		}
		if a.Less(base) {
			base = a
		}
		taken[a] = struct{}{}
	}
	if err := model.CheckPrefix(f, prefix); err != nil {
		return nil, err
	}
	subnet := netip.PrefixFrom(base, prefix)
	return func(yield func(netip.Addr) bool) {
		for a := range Hosts(subnet) {
			if _, ok := taken[a]; ok {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}, nil
}

// WithoutBroadcast drops the all-ones host address of an IPv4 subnet from seq.
// IPv6 subnets have no broadcast address and pass through unchanged.
func WithoutBroadcast(seq iter.Seq[netip.Addr], p netip.Prefix) iter.Seq[netip.Addr] {
	if !p.Addr().Is4() {
		return seq
	}
	last := broadcast(p)
	return func(yield func(netip.Addr) bool) {
		for a := range seq {
			if a == last {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Take collects the first k values of seq. It returns fewer when seq runs out.
func Take(seq iter.Seq[netip.Addr], k int) []netip.Addr {
	out := make([]netip.Addr, 0, k)
	if k <= 0 {
		return out
	}
	for a := range seq {
		out = append(out, a)
		if len(out) == k {
			break
		}
	}
	return out
}

func broadcast(p netip.Prefix) netip.Addr {
	b := p.Masked().Addr().As4()
	for i := p.Bits(); i < 32; i++ {
		b[i/8] |= 0x80 >> (i % 8)
	}
	return netip.AddrFrom4(b)
}
