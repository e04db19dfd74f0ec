package cryptosuite

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// PrivateKeyB is a 32-byte suite-B (secp256k1) private key.
type PrivateKeyB struct {
	priv *btcec.PrivateKey
}

// PublicKeyB is a 33-byte compressed suite-B public key.
type PublicKeyB struct {
	pub *btcec.PublicKey
}

// GenerateB samples a new suite-B key pair from a cryptographically
// strong source.
func GenerateB() (PrivateKeyB, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return PrivateKeyB{}, fmt.Errorf("suite B key generation: %w", err)
	}
	return PrivateKeyB{priv: priv}, nil
}

// PrivateKeyBFromBytes constructs a suite-B private key from its 32 raw bytes.
func PrivateKeyBFromBytes(raw []byte) (PrivateKeyB, error) {
	if len(raw) != 32 {
		return PrivateKeyB{}, fmt.Errorf("suite B private key must be 32 bytes, got %d", len(raw))
	}
	priv, _ := btcec.PrivKeyFromBytes(raw)
	return PrivateKeyB{priv: priv}, nil
}

// Bytes returns the raw 32-byte private key.
func (k PrivateKeyB) Bytes() []byte {
	return k.priv.Serialize()
}

// PublicKey derives the corresponding 33-byte compressed public key.
func (k PrivateKeyB) PublicKey() PublicKeyB {
	return PublicKeyB{pub: k.priv.PubKey()}
}

// Sign produces a DER-encoded signature over SHA-256(message).
func (k PrivateKeyB) Sign(message []byte) []byte {
	digest := sha256.Sum256(message)
	sig := ecdsa.Sign(k.priv, digest[:])
	return sig.Serialize()
}

// PublicKeyBFromBytes constructs a suite-B public key from its 33-byte
// compressed form.
func PublicKeyBFromBytes(raw []byte) (PublicKeyB, error) {
	if len(raw) != 33 {
		return PublicKeyB{}, fmt.Errorf("suite B public key must be 33 compressed bytes, got %d", len(raw))
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return PublicKeyB{}, fmt.Errorf("invalid suite B public key: %w", err)
	}
	return PublicKeyB{pub: pub}, nil
}

// Bytes returns the raw 33-byte compressed public key.
func (k PublicKeyB) Bytes() []byte { return k.pub.SerializeCompressed() }

// Verify reports whether signature is a valid DER-encoded suite-B
// signature over SHA-256(message) by this public key. It returns only
// a boolean, never which check failed.
func (k PublicKeyB) Verify(message, signature []byte) bool {
	if len(signature) < 8 || len(signature) > 72 {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], k.pub)
}
