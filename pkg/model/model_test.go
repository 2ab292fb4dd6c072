package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testPublicKey  = "L+V9o0fNYkMVKNqsX7spBzD/9oSvxM/C7ZCZX1jLO3Q="
	testPrivateKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="
	// a valid key that is not the private half of testPublicKey
	otherPrivateKey = "y3f0fu/krxHKNdt86ElVqBs9jLdvn4AYncjlBKWe/nA="
	otherPublicKey  = "W1plXoB1hHiGPSbVlU9RdKQ1DmyeMHXOFktQpxAB/TU="
)

func testNode() Node {
	return Node{
		Tag:      "1",
		KeyPair:  KeyPair{PublicKey: testPublicKey, PrivateKey: testPrivateKey},
		IPv4:     "10.0.0.1",
		IPv6:     "fd00::1",
		Endpoint: "test.local.arpa:51820",
	}
}

func roundTrip(t *Topology) (*Topology, error) {
	data, err := Save(t)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func TestRoundTrip(t *testing.T) {
	n := testNode()
	orig := &Topology{Nodes: []Node{n}, IPv4Prefix: 24, IPv6Prefix: 120}
	got, err := roundTrip(orig)
	require.NoError(t, err)
	require.Equal(t, orig, got)

	n.Endpoint = ""
	orig = &Topology{Nodes: []Node{n}, IPv4Prefix: 24, IPv6Prefix: 120}
	got, err = roundTrip(orig)
	require.NoError(t, err)
	require.Equal(t, orig, got)
}

func TestRoundTripYAML(t *testing.T) {
	second := Node{
		Tag:     "2",
		KeyPair: KeyPair{PublicKey: otherPublicKey, PrivateKey: otherPrivateKey},
		IPv4:    "10.0.0.2",
		IPv6:    "fd00::2",
	}
	orig := &Topology{Nodes: []Node{testNode(), second}, IPv4Prefix: 30, IPv6Prefix: 126}
	data, err := SaveYAML(orig)
	require.NoError(t, err)
	got, err := LoadYAML(data)
	require.NoError(t, err)
	require.Equal(t, orig, got)
}

func TestLoadRejectsInvalidField(t *testing.T) {
	tcs := []struct {
		name   string
		set    func(n *Node)
		target any
	}{
		{"public_key", func(n *Node) { n.KeyPair.PublicKey = "" }, &DecodingError{}},
		{"private_key", func(n *Node) { n.KeyPair.PrivateKey = "" }, &DecodingError{}},
		{"short_key", func(n *Node) { n.KeyPair.PrivateKey = "AAAA" }, &DecodingError{}},
		{"key_newline", func(n *Node) { n.KeyPair.PublicKey = testPublicKey[:16] + "\n" + testPublicKey[16:] }, &DecodingError{}},
		{"key_crlf", func(n *Node) { n.KeyPair.PrivateKey = testPrivateKey[:20] + "\r\n" + testPrivateKey[20:] }, &DecodingError{}},
		{"key_trailing_bits", func(n *Node) { n.KeyPair.PublicKey = "L+V9o0fNYkMVKNqsX7spBzD/9oSvxM/C7ZCZX1jLO3R=" }, &DecodingError{}},
		{"key_unpadded", func(n *Node) { n.KeyPair.PublicKey = testPublicKey[:43] }, &DecodingError{}},
		{"ipv4", func(n *Node) { n.IPv4 = "invalid-ip" }, &AddressSyntaxError{}},
		{"ipv6", func(n *Node) { n.IPv6 = "invalid-ipv6" }, &AddressSyntaxError{}},
		{"ipv4_as_ipv6", func(n *Node) { n.IPv4 = "fd00::1" }, &AddressSyntaxError{}},
		{"endpoint", func(n *Node) { n.Endpoint = "invalid-endpoint" }, &EndpointMissingPortError{}},
		{"endpoint_brackets", func(n *Node) { n.Endpoint = "[fd00::1:51820" }, &EndpointSyntaxError{}},
		{"endpoint_newline", func(n *Node) { n.Endpoint = "a.local.arpa:51820\nPostUp = touch /tmp/x" }, &EndpointSyntaxError{}},
		{"endpoint_port", func(n *Node) { n.Endpoint = "a.local.arpa:http" }, &EndpointSyntaxError{}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			n := testNode()
			tc.set(&n)
			got, err := roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: 24, IPv6Prefix: 120})
			require.Error(t, err)
			require.Nil(t, got)
			require.ErrorAs(t, err, tc.target)

			// the unmodified node loads again
			_, err = roundTrip(&Topology{Nodes: []Node{testNode()}, IPv4Prefix: 24, IPv6Prefix: 120})
			require.NoError(t, err)
		})
	}
}

func TestKeyPairTamper(t *testing.T) {
	n := testNode()
	n.KeyPair.PrivateKey = otherPrivateKey
	_, err := roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: 24, IPv6Prefix: 120})
	var mismatch KeyPairMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, testPublicKey, mismatch.PublicKey)
	require.Equal(t, otherPublicKey, mismatch.Derived)
}

func TestPrefixBounds(t *testing.T) {
	n := testNode()
	_, err := roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: 33, IPv6Prefix: 128})
	var perr PrefixOutOfRangeError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, IPv4, perr.Family)

	_, err = roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: 32, IPv6Prefix: 129})
	require.ErrorAs(t, err, &perr)
	require.Equal(t, IPv6, perr.Family)

	_, err = roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: -1, IPv6Prefix: 64})
	require.ErrorAs(t, err, &perr)

	_, err = roundTrip(&Topology{Nodes: []Node{n}, IPv4Prefix: 32, IPv6Prefix: 128})
	require.NoError(t, err)
}

func TestValidateReportsEveryNode(t *testing.T) {
	bad4 := testNode()
	bad4.IPv4 = "10.0.0.256"
	bad6 := testNode()
	bad6.Tag = "2"
	bad6.IPv6 = "fd00::g"
	topo := &Topology{Nodes: []Node{testNode(), bad4, bad6}, IPv4Prefix: 24, IPv6Prefix: 120}
	err := topo.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), `node 1 (tag "1")`)
	require.Contains(t, err.Error(), `node 2 (tag "2")`)
	require.NotContains(t, err.Error(), "node 0")
}

func TestParseEndpoint(t *testing.T) {
	tcs := []struct {
		in   string
		host string
		port string
		err  error
	}{
		{in: "example.com:51820", host: "example.com", port: "51820"},
		{in: "10.0.0.1:1", host: "10.0.0.1", port: "1"},
		{in: "[fd00::1]:51820", host: "fd00::1", port: "51820"},
		{in: "[fd00::1]", err: EndpointMissingPortError{Value: "[fd00::1]"}},
		{in: "example.com", err: EndpointMissingPortError{Value: "example.com"}},
		{in: "example.com:0", host: "example.com", port: "0"},
		{in: "example.com:65535", host: "example.com", port: "65535"},
		{in: "[fd00::1:51820", err: EndpointSyntaxError{Value: "[fd00::1:51820", Reason: reasonBrackets}},
		{in: "fd00::1]:51820", err: EndpointSyntaxError{Value: "fd00::1]:51820", Reason: reasonBrackets}},
		{in: "example.com:65536", err: EndpointSyntaxError{Value: "example.com:65536", Reason: reasonPort}},
		{in: "example.com:", err: EndpointSyntaxError{Value: "example.com:", Reason: reasonPort}},
		{in: "example.com:51820\nTable = off", err: EndpointSyntaxError{Value: "example.com:51820\nTable = off", Reason: reasonSpace}},
		{in: "example.com:51820\x00", err: EndpointSyntaxError{Value: "example.com:51820\x00", Reason: reasonSpace}},
		{in: "exa mple.com:51820", err: EndpointSyntaxError{Value: "exa mple.com:51820", Reason: reasonSpace}},
	}
	for _, tc := range tcs {
		host, port, err := ParseEndpoint(tc.in)
		if tc.err != nil {
			require.Equal(t, tc.err, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.host, host)
		require.Equal(t, tc.port, port)
	}
}

func TestParseAddress(t *testing.T) {
	_, err := ParseAddress("10.0.0.1", IPv4)
	require.NoError(t, err)
	_, err = ParseAddress("fd00::1", IPv6)
	require.NoError(t, err)
	_, err = ParseAddress("::ffff:10.0.0.1", IPv6)
	require.NoError(t, err)

	for _, s := range []string{"", "10.0.0", "010.0.0.1", "::ffff:10.0.0.1", "fd00::1"} {
		_, err := ParseAddress(s, IPv4)
		require.True(t, errors.As(err, &AddressSyntaxError{}), s)
	}
	for _, s := range []string{"", "10.0.0.1", "fe80::1%eth0", "fd00:::1"} {
		_, err := ParseAddress(s, IPv6)
		require.True(t, errors.As(err, &AddressSyntaxError{}), s)
	}
}

func TestDecodeKey(t *testing.T) {
	k, err := DecodeKey(testPublicKey)
	require.NoError(t, err)
	require.Equal(t, testPublicKey, k.String())

	for _, s := range []string{
		"",
		testPublicKey[:22] + "\n" + testPublicKey[22:],
		testPublicKey + "\n",
		"L+V9o0fNYkMVKNqsX7spBzD/9oSvxM/C7ZCZX1jLO3R=",
		"L-V9o0fNYkMVKNqsX7spBzD_9oSvxM_C7ZCZX1jLO3Q=",
		"AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=",
	} {
		_, err := DecodeKey(s)
		require.True(t, errors.As(err, &DecodingError{}), "%q", s)
	}
}

func TestNewKeyPair(t *testing.T) {
	kp, err := NewKeyPair()
	require.NoError(t, err)
	pub, err := DecodeKey(kp.PublicKey)
	require.NoError(t, err)
	priv, err := DecodeKey(kp.PrivateKey)
	require.NoError(t, err)
	require.NoError(t, VerifyKeyPair(pub, priv))
}
