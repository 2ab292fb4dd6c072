package model

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/curve25519"
	"golang.zx2c4.com/wireguard/wgctrl/wgtypes"
)

var errKeyLineBreak = errors.New("key contains a line break")

// DecodeKey parses a base64 encoded 32 byte key. Only canonical padded
// standard base64 is accepted: no line breaks and no stray trailing bits.
func DecodeKey(s string) (wgtypes.Key, error) {
	if strings.ContainsAny(s, "\r\n") {
		return wgtypes.Key{}, DecodingError{Err: errKeyLineBreak}
	}
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return wgtypes.Key{}, DecodingError{Err: err}
	}
	k, err := wgtypes.NewKey(b)
	if err != nil {
		return wgtypes.Key{}, DecodingError{Err: err}
	}
	return k, nil
}

// VerifyKeyPair derives the public key of priv by scalar multiplication with
// the curve base point and compares it with pub.
func VerifyKeyPair(pub, priv wgtypes.Key) error {
	derived, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return fmt.Errorf("derive public key: %w", err)
	}
	if subtle.ConstantTimeCompare(derived, pub[:]) != 1 {
		return KeyPairMismatchError{
			PublicKey: pub.String(),
			Derived:   base64.StdEncoding.EncodeToString(derived),
		}
	}
	return nil
}

// NewKeyPair generates a fresh keypair from crypto/rand.
func NewKeyPair() (KeyPair, error) {
	priv, err := wgtypes.GeneratePrivateKey()
	if err != nil {
		return KeyPair{}, fmt.Errorf("generate private key: %w", err)
	}
	return KeyPair{
		PublicKey:  priv.PublicKey().String(),
		PrivateKey: priv.String(),
	}, nil
}
