package ledgersdk

import "bytes"

// sigEntry is one attached signature, keyed by its signer's public key.
type sigEntry struct {
	pubKey    PublicKey
	signature []byte
}

// SignatureMap is the map from public-key prefix to signature bytes
// described in SPEC_FULL.md §3: "prefix length is the minimal
// unambiguous prefix among attached keys". Internally it stores full
// public keys (so Sign/AddSignature stay idempotent) and only
// computes the minimal prefix length lazily, when serialized.
type SignatureMap struct {
	entries []sigEntry
}

// NewSignatureMap returns an empty signature map.
func NewSignatureMap() *SignatureMap { return &SignatureMap{} }

// Add attaches a signature for pubKey. A duplicate signature from the
// same public key is rejected silently (idempotent), matching the
// spec's "Signing" behavior for re-signing with the same key.
func (m *SignatureMap) Add(pubKey PublicKey, signature []byte) {
	for _, e := range m.entries {
		if bytes.Equal(e.pubKey.Bytes(), pubKey.Bytes()) {
			return
		}
	}
	m.entries = append(m.entries, sigEntry{pubKey: pubKey, signature: signature})
}

// Len reports the number of distinct signatures attached.
func (m *SignatureMap) Len() int { return len(m.entries) }

func (m *SignatureMap) lookup(pubKey PublicKey) ([]byte, bool) {
	for _, e := range m.entries {
		if bytes.Equal(e.pubKey.Bytes(), pubKey.Bytes()) {
			return e.signature, true
		}
	}
	return nil, false
}

// MinimalPrefixLen returns, for each attached key (in attachment
// order), the shortest byte-prefix length that is still unambiguous
// among all attached keys.
func (m *SignatureMap) MinimalPrefixLen() []int {
	out := make([]int, len(m.entries))
	for i, e := range m.entries {
		full := e.pubKey.Bytes()
		length := 1
		for length < len(full) && !isUniquePrefix(m.entries, i, full[:length]) {
			length++
		}
		out[i] = length
	}
	return out
}

func isUniquePrefix(entries []sigEntry, self int, prefix []byte) bool {
	for j, e := range entries {
		if j == self {
			continue
		}
		full := e.pubKey.Bytes()
		if len(full) >= len(prefix) && bytes.Equal(full[:len(prefix)], prefix) {
			return false
		}
	}
	return true
}
