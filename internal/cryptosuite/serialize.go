package cryptosuite

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"strings"
)

// Suite identifies which signature suite a parsed key belongs to, as
// inferred from its DER object identifier (SPEC_FULL.md §4.C).
type Suite int

const (
	SuiteUnknown Suite = iota
	SuiteA
	SuiteB
)

var (
	oidEd25519     = asn1.ObjectIdentifier{1, 3, 101, 112}
	oidECPublicKey = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidSecp256k1   = asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

type pkcs8Info struct {
	Version    int
	Algo       pkix.AlgorithmIdentifier
	PrivateKey []byte
}

type spkiInfo struct {
	Algo      pkix.AlgorithmIdentifier
	PublicKey asn1.BitString
}

func marshalPrivateDER(suite Suite, raw []byte) ([]byte, error) {
	algo := pkix.AlgorithmIdentifier{}
	switch suite {
	case SuiteA:
		algo.Algorithm = oidEd25519
	case SuiteB:
		algo.Algorithm = oidECPublicKey
		params, err := asn1.Marshal(oidSecp256k1)
		if err != nil {
			return nil, err
		}
		algo.Parameters = asn1.RawValue{FullBytes: params}
	default:
		return nil, fmt.Errorf("unknown suite")
	}
	inner, err := asn1.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return asn1.Marshal(pkcs8Info{Version: 0, Algo: algo, PrivateKey: inner})
}

func marshalPublicDER(suite Suite, raw []byte) ([]byte, error) {
	algo := pkix.AlgorithmIdentifier{}
	switch suite {
	case SuiteA:
		algo.Algorithm = oidEd25519
	case SuiteB:
		algo.Algorithm = oidECPublicKey
		params, err := asn1.Marshal(oidSecp256k1)
		if err != nil {
			return nil, err
		}
		algo.Parameters = asn1.RawValue{FullBytes: params}
	default:
		return nil, fmt.Errorf("unknown suite")
	}
	return asn1.Marshal(spkiInfo{Algo: algo, PublicKey: asn1.BitString{Bytes: raw, BitLength: len(raw) * 8}})
}

func unmarshalPrivateDER(der []byte) (Suite, []byte, error) {
	var info pkcs8Info
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return SuiteUnknown, nil, fmt.Errorf("invalid PKCS8 DER: %w", err)
	}
	var raw []byte
	if _, err := asn1.Unmarshal(info.PrivateKey, &raw); err != nil {
		return SuiteUnknown, nil, fmt.Errorf("invalid PKCS8 private key octets: %w", err)
	}
	switch {
	case info.Algo.Algorithm.Equal(oidEd25519):
		return SuiteA, raw, nil
	case info.Algo.Algorithm.Equal(oidECPublicKey):
		return SuiteB, raw, nil
	default:
		return SuiteUnknown, nil, fmt.Errorf("unrecognized private key algorithm OID %v", info.Algo.Algorithm)
	}
}

func unmarshalPublicDER(der []byte) (Suite, []byte, error) {
	var info spkiInfo
	if _, err := asn1.Unmarshal(der, &info); err != nil {
		return SuiteUnknown, nil, fmt.Errorf("invalid SubjectPublicKeyInfo DER: %w", err)
	}
	switch {
	case info.Algo.Algorithm.Equal(oidEd25519):
		return SuiteA, info.PublicKey.Bytes, nil
	case info.Algo.Algorithm.Equal(oidECPublicKey):
		return SuiteB, info.PublicKey.Bytes, nil
	default:
		return SuiteUnknown, nil, fmt.Errorf("unrecognized public key algorithm OID %v", info.Algo.Algorithm)
	}
}

// PrivateDER returns the PKCS#8 DER encoding of a raw private key of
// the given suite.
func PrivateDER(suite Suite, raw []byte) ([]byte, error) { return marshalPrivateDER(suite, raw) }

// PublicDER returns the SubjectPublicKeyInfo DER encoding of a raw
// public key of the given suite.
func PublicDER(suite Suite, raw []byte) ([]byte, error) { return marshalPublicDER(suite, raw) }

// PrivatePEM wraps a DER-encoded private key in "PRIVATE KEY" PEM armor.
func PrivatePEM(der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
}

// PublicPEM wraps a DER-encoded public key in "PUBLIC KEY" PEM armor.
func PublicPEM(der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))
}

// ParseAnyPrivateKey auto-detects hex, DER, or PEM input and returns
// the suite and raw key bytes.
func ParseAnyPrivateKey(input string) (Suite, []byte, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "-----BEGIN") {
		block, _ := pem.Decode([]byte(trimmed))
		if block == nil {
			return SuiteUnknown, nil, fmt.Errorf("invalid PEM block")
		}
		return unmarshalPrivateDER(block.Bytes)
	}
	if raw, ok := tryHex(trimmed); ok {
		switch len(raw) {
		case 32:
			// Ambiguous between suite A seed and suite B private key by
			// length alone; SuiteUnknown is returned, and this SDK's
			// ParsePrivateKey treats such a key as suite A.
			return SuiteUnknown, raw, nil
		}
	}
	if der, err := hex.DecodeString(trimmed); err == nil {
		if suite, raw, derErr := unmarshalPrivateDER(der); derErr == nil {
			return suite, raw, nil
		}
	}
	return SuiteUnknown, nil, fmt.Errorf("unrecognized private key encoding")
}

// ParseAnyPublicKey auto-detects hex, DER, or PEM input and returns the
// suite and raw key bytes.
func ParseAnyPublicKey(input string) (Suite, []byte, error) {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "-----BEGIN") {
		block, _ := pem.Decode([]byte(trimmed))
		if block == nil {
			return SuiteUnknown, nil, fmt.Errorf("invalid PEM block")
		}
		return unmarshalPublicDER(block.Bytes)
	}
	if raw, ok := tryHex(trimmed); ok {
		switch len(raw) {
		case 32:
			return SuiteA, raw, nil
		case 33:
			return SuiteB, raw, nil
		}
	}
	if der, err := hex.DecodeString(trimmed); err == nil {
		if suite, raw, derErr := unmarshalPublicDER(der); derErr == nil {
			return suite, raw, nil
		}
	}
	return SuiteUnknown, nil, fmt.Errorf("unrecognized public key encoding")
}

func tryHex(s string) ([]byte, bool) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return raw, true
}
