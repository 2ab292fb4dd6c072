package model

// Interface describes the [Interface] section of a node's WireGuard config.
type Interface struct {
	PublicKey  string
	PrivateKey string
	ListenPort string   // empty when the node has no endpoint
	Addresses  []string // CIDR notation, IPv4 first
}

// Peer describes a WireGuard peer and the addresses it may use.
type Peer struct {
	Tag        string
	PublicKey  string
	Endpoint   string
	AllowedIPs []string
}
