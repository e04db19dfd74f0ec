package ledgersdk

import (
	"encoding/hex"
	"fmt"

	"github.com/withObsrvr/ledger-sdk/internal/cryptosuite"
	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// MaxKeyDepth bounds how deeply key lists and threshold keys may nest
// (SPEC_FULL.md §4.C, §9).
const MaxKeyDepth = 10

// Key is the polymorphic signing predicate described in SPEC_FULL.md
// §3: a suite-A public key, a suite-B public key, a key list
// (conjunction), a threshold key (M-of-N), or a contract id used as a
// signing principal.
type Key interface {
	depth() int
	encode(w *wire.Writer)
}

// PublicKey is a suite-A or suite-B public key used as a Key leaf.
type PublicKey struct {
	suite cryptosuite.Suite
	a     cryptosuite.PublicKeyA
	b     cryptosuite.PublicKeyB
}

func (PublicKey) depth() int { return 1 }

// PrivateKey is a suite-A or suite-B private key.
type PrivateKey struct {
	suite cryptosuite.Suite
	a     cryptosuite.PrivateKeyA
	b     cryptosuite.PrivateKeyB
}

// GeneratePrivateKeyEd25519 samples a new suite-A private key.
func GeneratePrivateKeyEd25519() (PrivateKey, error) {
	k, err := cryptosuite.GenerateA()
	if err != nil {
		return PrivateKey{}, newErr(ErrCrypto, "suite A key generation failed", err)
	}
	return PrivateKey{suite: cryptosuite.SuiteA, a: k}, nil
}

// GeneratePrivateKeyECDSA samples a new suite-B private key.
func GeneratePrivateKeyECDSA() (PrivateKey, error) {
	k, err := cryptosuite.GenerateB()
	if err != nil {
		return PrivateKey{}, newErr(ErrCrypto, "suite B key generation failed", err)
	}
	return PrivateKey{suite: cryptosuite.SuiteB, b: k}, nil
}

// PrivateKeyFromSuiteASeed constructs a suite-A private key from a
// 32-byte seed (e.g. from hierarchical derivation).
func PrivateKeyFromSuiteASeed(seed []byte) (PrivateKey, error) {
	k, err := cryptosuite.PrivateKeyAFromSeed(seed)
	if err != nil {
		return PrivateKey{}, newErr(ErrCrypto, "invalid suite A seed", err)
	}
	return PrivateKey{suite: cryptosuite.SuiteA, a: k}, nil
}

// PrivateKeyFromSuiteBBytes constructs a suite-B private key from its
// 32 raw bytes (e.g. from hierarchical derivation).
func PrivateKeyFromSuiteBBytes(raw []byte) (PrivateKey, error) {
	k, err := cryptosuite.PrivateKeyBFromBytes(raw)
	if err != nil {
		return PrivateKey{}, newErr(ErrCrypto, "invalid suite B private key", err)
	}
	return PrivateKey{suite: cryptosuite.SuiteB, b: k}, nil
}

// ParsePrivateKey auto-detects hex, DER, or PEM input. A bare 32-byte
// hex/raw value is ambiguous between a suite-A seed and a suite-B key;
// this SDK resolves that ambiguity in favor of suite A, matching the
// network's default key type for newly generated accounts.
func ParsePrivateKey(s string) (PrivateKey, error) {
	suite, raw, err := cryptosuite.ParseAnyPrivateKey(s)
	if err != nil {
		return PrivateKey{}, newErr(ErrParse, "could not parse private key", err)
	}
	switch suite {
	case cryptosuite.SuiteB:
		return PrivateKeyFromSuiteBBytes(raw)
	default:
		return PrivateKeyFromSuiteASeed(raw)
	}
}

// PublicKey derives the corresponding public key.
func (k PrivateKey) PublicKey() PublicKey {
	if k.suite == cryptosuite.SuiteB {
		return PublicKey{suite: cryptosuite.SuiteB, b: k.b.PublicKey()}
	}
	return PublicKey{suite: cryptosuite.SuiteA, a: k.a.PublicKey()}
}

// Sign produces a signature over message using this key's suite.
func (k PrivateKey) Sign(message []byte) []byte {
	if k.suite == cryptosuite.SuiteB {
		return k.b.Sign(message)
	}
	return k.a.Sign(message)
}

// Bytes returns the raw private key bytes.
func (k PrivateKey) Bytes() []byte {
	if k.suite == cryptosuite.SuiteB {
		return k.b.Bytes()
	}
	return k.a.Bytes()
}

// ParsePublicKey auto-detects hex, DER, or PEM input.
func ParsePublicKey(s string) (PublicKey, error) {
	suite, raw, err := cryptosuite.ParseAnyPublicKey(s)
	if err != nil {
		return PublicKey{}, newErr(ErrParse, "could not parse public key", err)
	}
	switch suite {
	case cryptosuite.SuiteB:
		b, err := cryptosuite.PublicKeyBFromBytes(raw)
		if err != nil {
			return PublicKey{}, newErr(ErrCrypto, "invalid suite B public key", err)
		}
		return PublicKey{suite: cryptosuite.SuiteB, b: b}, nil
	default:
		a, err := cryptosuite.PublicKeyAFromBytes(raw)
		if err != nil {
			return PublicKey{}, newErr(ErrCrypto, "invalid suite A public key", err)
		}
		return PublicKey{suite: cryptosuite.SuiteA, a: a}, nil
	}
}

// Bytes returns the raw public key bytes (32 bytes for suite A, 33
// compressed bytes for suite B).
func (k PublicKey) Bytes() []byte {
	if k.suite == cryptosuite.SuiteB {
		return k.b.Bytes()
	}
	return k.a.Bytes()
}

// String renders the public key as lowercase hex.
func (k PublicKey) String() string { return hex.EncodeToString(k.Bytes()) }

// Verify reports whether signature is valid for message under this key.
func (k PublicKey) Verify(message, signature []byte) bool {
	if k.suite == cryptosuite.SuiteB {
		return k.b.Verify(message, signature)
	}
	return k.a.Verify(message, signature)
}

func (k PublicKey) encode(w *wire.Writer) {
	if k.suite == cryptosuite.SuiteB {
		w.WriteBytes(wireTagForSuite(k.suite), k.Bytes())
		return
	}
	w.WriteBytes(wireTagForSuite(k.suite), k.Bytes())
}

func wireTagForSuite(s cryptosuite.Suite) uint32 {
	if s == cryptosuite.SuiteB {
		return 2 // TagKeyECDSASecp, see internal/wire.TagKeyECDSASecp
	}
	return 1 // TagKeyEd25519
}

// KeyList is an ordered conjunction of child keys: every child must be
// satisfied. Children are ordered; that order is preserved through
// serialization (SPEC_FULL.md §3 invariant).
type KeyList struct {
	keys []Key
}

// NewKeyList returns an empty key list.
func NewKeyList() *KeyList { return &KeyList{} }

// Add appends a child key, rejecting it if doing so would exceed
// MaxKeyDepth.
func (kl *KeyList) Add(k Key) error {
	if 1+k.depth() > MaxKeyDepth {
		return newErr(ErrInvalidArgument, "key list nesting would exceed maximum depth", nil)
	}
	kl.keys = append(kl.keys, k)
	return nil
}

// Keys returns the children in insertion order.
func (kl *KeyList) Keys() []Key { return append([]Key(nil), kl.keys...) }

func (kl *KeyList) depth() int {
	max := 0
	for _, k := range kl.keys {
		if d := k.depth(); d > max {
			max = d
		}
	}
	return 1 + max
}

func (kl *KeyList) encode(w *wire.Writer) {
	for _, k := range kl.keys {
		w.WriteMessage(1, func(inner *wire.Writer) { k.encode(inner) })
	}
}

// ThresholdKey requires Threshold of its N children to be satisfied.
type ThresholdKey struct {
	Threshold uint32
	keys      []Key
}

// NewThresholdKey returns an empty threshold key requiring threshold
// satisfied children once keys are added.
func NewThresholdKey(threshold uint32) *ThresholdKey {
	return &ThresholdKey{Threshold: threshold}
}

// Add appends a child key, rejecting it if doing so would exceed
// MaxKeyDepth.
func (tk *ThresholdKey) Add(k Key) error {
	if 1+k.depth() > MaxKeyDepth {
		return newErr(ErrInvalidArgument, "threshold key nesting would exceed maximum depth", nil)
	}
	tk.keys = append(tk.keys, k)
	return nil
}

// Keys returns the children in insertion order.
func (tk *ThresholdKey) Keys() []Key { return append([]Key(nil), tk.keys...) }

// Validate checks 1 <= Threshold <= len(children), per SPEC_FULL.md §8
// boundary cases (threshold 0 and N+1 are rejected).
func (tk *ThresholdKey) Validate() error {
	n := uint32(len(tk.keys))
	if tk.Threshold < 1 || tk.Threshold > n {
		return newErr(ErrInvalidArgument, fmt.Sprintf("threshold must be in [1, %d], got %d", n, tk.Threshold), nil)
	}
	return nil
}

func (tk *ThresholdKey) depth() int {
	max := 0
	for _, k := range tk.keys {
		if d := k.depth(); d > max {
			max = d
		}
	}
	return 1 + max
}

func (tk *ThresholdKey) encode(w *wire.Writer) {
	w.WriteVarintU64(1, uint64(tk.Threshold))
	for _, k := range tk.keys {
		w.WriteMessage(2, func(inner *wire.Writer) { k.encode(inner) })
	}
}

// contractSigningKey lets a ContractID stand in as a signing principal
// (SPEC_FULL.md §3). Signature verification of a transaction's
// attached signature set never satisfies a contract principal directly
// — it is only meaningful in consensus, outside this SDK's boundary.
type contractSigningKey struct {
	ContractID ContractID
}

func (contractSigningKey) depth() int { return 1 }
func (k contractSigningKey) encode(w *wire.Writer) {
	w.WriteVarintU64(1, k.ContractID.Shard)
	w.WriteVarintU64(2, k.ContractID.Realm)
	w.WriteVarintU64(3, k.ContractID.Num)
}

// ContractSigningKey wraps a ContractID as a Key.
func ContractSigningKey(id ContractID) Key { return contractSigningKey{ContractID: id} }

// IsSatisfiedBy reports whether sigs, verified against message, meets
// this key's predicate: a single public key needs a valid signature
// under it; a key list needs every child satisfied; a threshold key
// needs at least Threshold children satisfied. A contract-id principal
// is never satisfied by an attached signature set.
func IsSatisfiedBy(k Key, message []byte, sigs *SignatureMap) bool {
	switch kk := k.(type) {
	case PublicKey:
		sig, ok := sigs.lookup(kk)
		return ok && kk.Verify(message, sig)
	case *KeyList:
		for _, child := range kk.keys {
			if !IsSatisfiedBy(child, message, sigs) {
				return false
			}
		}
		return len(kk.keys) > 0
	case *ThresholdKey:
		satisfied := 0
		for _, child := range kk.keys {
			if IsSatisfiedBy(child, message, sigs) {
				satisfied++
			}
		}
		return uint32(satisfied) >= kk.Threshold
	default:
		return false
	}
}
