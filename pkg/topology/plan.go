package topology

import (
	"fmt"

	"wg-mesh/pkg/model"
)

// BuildInterface derives the own section of the node at index self.
// The listen port is the port of the node's own endpoint.
func BuildInterface(t *model.Topology, self int) (model.Interface, error) {
	n := t.Nodes[self]
	iface := model.Interface{
		PublicKey:  n.KeyPair.PublicKey,
		PrivateKey: n.KeyPair.PrivateKey,
		Addresses: []string{
			fmt.Sprintf("%s/%d", n.IPv4, t.IPv4Prefix),
			fmt.Sprintf("%s/%d", n.IPv6, t.IPv6Prefix),
		},
	}
	if n.HasEndpoint() {
		_, port, err := model.ParseEndpoint(n.Endpoint)
		if err != nil {
			return model.Interface{}, err
		}
		iface.ListenPort = port
	}
	return iface, nil
}

// BuildPeerPlan derives a full-mesh peer list for the node at index self.
// Every other node is a peer, in topology order, and only its own two host
// addresses are allowed.
func BuildPeerPlan(t *model.Topology, self int) []model.Peer {
	peers := make([]model.Peer, 0, len(t.Nodes))
	for i, n := range t.Nodes {
		if i == self {
			continue
		}
		peers = append(peers, model.Peer{
			Tag:       n.Tag,
			PublicKey: n.KeyPair.PublicKey,
			Endpoint:  n.Endpoint,
			AllowedIPs: []string{
				n.IPv4 + "/32",
				n.IPv6 + "/128",
			},
		})
	}
	return peers
}
