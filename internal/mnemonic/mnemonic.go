// Package mnemonic wraps github.com/tyler-smith/go-bip39 for the
// 12/24-word recovery phrases described in SPEC_FULL.md §4.C.
package mnemonic

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// Generate24 produces a fresh 24-word mnemonic (256 bits of entropy).
func Generate24() (string, error) {
	return generate(256)
}

// Generate12 produces a fresh 12-word mnemonic (128 bits of entropy).
func Generate12() (string, error) {
	return generate(128)
}

func generate(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generating mnemonic entropy: %w", err)
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generating mnemonic: %w", err)
	}
	return phrase, nil
}

// Validate checks a phrase's word-count and checksum, rejecting
// misspellings and words outside the fixed wordlist.
func Validate(phrase string) error {
	if !bip39.IsMnemonicValid(phrase) {
		return fmt.Errorf("mnemonic failed checksum or contains unknown words")
	}
	return nil
}

// ToSeed derives a 64-byte seed from a validated mnemonic and optional
// passphrase via PBKDF2-HMAC-SHA-512 (2048 rounds, BIP-39's scheme).
func ToSeed(phrase, passphrase string) ([]byte, error) {
	if err := Validate(phrase); err != nil {
		return nil, err
	}
	seed, err := bip39.NewSeedWithErrorChecking(phrase, passphrase)
	if err != nil {
		return nil, fmt.Errorf("deriving seed: %w", err)
	}
	return seed, nil
}
