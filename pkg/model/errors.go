package model

import "fmt"

// DecodingError is returned for a key that is not base64 or not 32 bytes long.
type DecodingError struct {
	Err error
}

func (e DecodingError) Error() string {
	return fmt.Sprintf("invalid key: %v", e.Err)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

// KeyPairMismatchError is returned when the stored public key is not the one
// derived from the private key.
type KeyPairMismatchError struct {
	PublicKey string
	Derived   string
}

func (e KeyPairMismatchError) Error() string {
	return fmt.Sprintf("public key %s does not match private key (derived %s)", e.PublicKey, e.Derived)
}

// AddressSyntaxError is returned for text that is not an address of the expected family.
type AddressSyntaxError struct {
	Family Family
	Value  string
}

func (e AddressSyntaxError) Error() string {
	return fmt.Sprintf("%q is not a valid %s address", e.Value, e.Family)
}

// EndpointSyntaxError is returned when an endpoint has only one of '[' and ']',
// contains whitespace or control characters, or has a non-numeric port.
type EndpointSyntaxError struct {
	Value  string
	Reason string
}

func (e EndpointSyntaxError) Error() string {
	return fmt.Sprintf("endpoint %q: %s", e.Value, e.Reason)
}

// EndpointMissingPortError is returned when an endpoint has no port separator.
type EndpointMissingPortError struct {
	Value string
}

func (e EndpointMissingPortError) Error() string {
	return fmt.Sprintf("endpoint %q has no port", e.Value)
}

// PrefixOutOfRangeError is returned for a prefix longer than the family's address width.
type PrefixOutOfRangeError struct {
	Family Family
	Prefix int
}

func (e PrefixOutOfRangeError) Error() string {
	return fmt.Sprintf("%s prefix %d out of range [0,%d]", e.Family, e.Prefix, e.Family.Bits())
}
