// Package wireguard renders mesh topologies into wg-quick configuration text.
package wireguard

import (
	"fmt"
	"strings"

	"wg-mesh/pkg/model"
	"wg-mesh/pkg/topology"
)

// NodeNotFoundError is returned when no node carries the requested tag.
type NodeNotFoundError struct {
	Tag string
}

func (e NodeNotFoundError) Error() string {
	return fmt.Sprintf("no node tagged %q", e.Tag)
}

// RenderConfig produces the wg-quick config text for one node: the own
// section followed by one [Peer] block per peer, in the given order.
func RenderConfig(iface model.Interface, peers []model.Peer) string {
	var b strings.Builder
	b.WriteString("[Interface]\n")
	fmt.Fprintf(&b, "# PublicKey = %s\n", iface.PublicKey)
	fmt.Fprintf(&b, "PrivateKey = %s\n", iface.PrivateKey)
	if iface.ListenPort != "" {
		fmt.Fprintf(&b, "ListenPort = %s\n", iface.ListenPort)
	}
	for _, addr := range iface.Addresses {
		fmt.Fprintf(&b, "Address = %s\n", addr)
	}

	for _, p := range peers {
		b.WriteString("\n[Peer]\n")
		fmt.Fprintf(&b, "PublicKey = %s\n", p.PublicKey)
		if p.Endpoint != "" {
			fmt.Fprintf(&b, "Endpoint = %s\n", p.Endpoint)
		}
		fmt.Fprintf(&b, "AllowedIPs = %s\n", strings.Join(p.AllowedIPs, ", "))
	}
	return b.String()
}

// RenderFor renders the config of the first node tagged selfTag. The whole
// topology is validated first so no unchecked field reaches the output.
func RenderFor(t *model.Topology, selfTag string) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	for i, n := range t.Nodes {
		if n.Tag == selfTag {
			return renderIndex(t, i)
		}
	}
	return "", NodeNotFoundError{Tag: selfTag}
}

func renderIndex(t *model.Topology, self int) (string, error) {
	iface, err := topology.BuildInterface(t, self)
	if err != nil {
		return "", fmt.Errorf("render node %d (tag %q): %w", self, t.Nodes[self].Tag, err)
	}
	return RenderConfig(iface, topology.BuildPeerPlan(t, self)), nil
}
