package model

import (
	"errors"
	"fmt"
)

// KeyPair holds a node's base64 encoded Curve25519 keys.
type KeyPair struct {
	PublicKey  string `json:"public_key" yaml:"public_key"`
	PrivateKey string `json:"private_key" yaml:"private_key"`
}

// Node is one participant of the mesh.
type Node struct {
	Tag      string  `json:"tag" yaml:"tag"`
	KeyPair  KeyPair `json:"key_pair" yaml:"key_pair"`
	IPv4     string  `json:"ipv4" yaml:"ipv4"`
	IPv6     string  `json:"ipv6" yaml:"ipv6"`
	Endpoint string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"` // host:port, empty when the node is not reachable
}

// HasEndpoint reports whether peers can reach the node directly.
func (n Node) HasEndpoint() bool {
	return n.Endpoint != ""
}

// Validate checks every field of the node and the keypair correspondence.
// All failures are returned joined.
func (n Node) Validate() error {
	var errs []error
	pub, pubErr := DecodeKey(n.KeyPair.PublicKey)
	if pubErr != nil {
		errs = append(errs, fmt.Errorf("public_key: %w", pubErr))
	}
	priv, privErr := DecodeKey(n.KeyPair.PrivateKey)
	if privErr != nil {
		errs = append(errs, fmt.Errorf("private_key: %w", privErr))
	}
	if pubErr == nil && privErr == nil {
		if err := VerifyKeyPair(pub, priv); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := ParseAddress(n.IPv4, IPv4); err != nil {
		errs = append(errs, fmt.Errorf("ipv4: %w", err))
	}
	if _, err := ParseAddress(n.IPv6, IPv6); err != nil {
		errs = append(errs, fmt.Errorf("ipv6: %w", err))
	}
	if n.HasEndpoint() {
		if _, _, err := ParseEndpoint(n.Endpoint); err != nil {
			errs = append(errs, fmt.Errorf("endpoint: %w", err))
		}
	}
	return errors.Join(errs...)
}
