// Package cryptosuite implements the two signature suites described in
// SPEC_FULL.md §4.C: suite A (Ed25519-like) and suite B
// (secp256k1-like), plus their shared serialization and hierarchical
// derivation support.
package cryptosuite

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// PrivateKeyA is a 32-byte suite-A (Ed25519) private key.
type PrivateKeyA struct {
	seed ed25519.PrivateKey // 64 bytes: seed||public, per crypto/ed25519
}

// PublicKeyA is a 32-byte suite-A public key.
type PublicKeyA struct {
	raw ed25519.PublicKey
}

// GenerateA samples a new suite-A key pair from a cryptographically
// strong source.
func GenerateA() (PrivateKeyA, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return PrivateKeyA{}, fmt.Errorf("suite A key generation: %w", err)
	}
	return PrivateKeyA{seed: priv}, nil
}

// PrivateKeyAFromSeed constructs a suite-A private key from its 32-byte seed.
func PrivateKeyAFromSeed(seed []byte) (PrivateKeyA, error) {
	if len(seed) != ed25519.SeedSize {
		return PrivateKeyA{}, fmt.Errorf("suite A seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return PrivateKeyA{seed: ed25519.NewKeyFromSeed(seed)}, nil
}

// Bytes returns the raw 32-byte seed.
func (k PrivateKeyA) Bytes() []byte {
	return append([]byte(nil), k.seed.Seed()...)
}

// PublicKey derives the corresponding public key.
func (k PrivateKeyA) PublicKey() PublicKeyA {
	return PublicKeyA{raw: k.seed.Public().(ed25519.PublicKey)}
}

// Sign produces a deterministic 64-byte signature over raw message bytes.
func (k PrivateKeyA) Sign(message []byte) []byte {
	return ed25519.Sign(k.seed, message)
}

// PublicKeyAFromBytes constructs a suite-A public key from its 32 raw bytes.
func PublicKeyAFromBytes(raw []byte) (PublicKeyA, error) {
	if len(raw) != ed25519.PublicKeySize {
		return PublicKeyA{}, fmt.Errorf("suite A public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return PublicKeyA{raw: append(ed25519.PublicKey(nil), raw...)}, nil
}

// Bytes returns the raw 32-byte public key.
func (k PublicKeyA) Bytes() []byte { return append([]byte(nil), k.raw...) }

// Verify reports whether signature is a valid suite-A signature over
// message by this public key. It returns only a boolean, never which
// check failed.
func (k PublicKeyA) Verify(message, signature []byte) bool {
	if len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(k.raw, message, signature)
}
