// Package derive implements SLIP-10 hierarchical key derivation for
// both signature suites (SPEC_FULL.md §4.C). The derivation math
// (HMAC-SHA512 child derivation, hardened vs. non-hardened child
// indices) mirrors github.com/anyproto/go-slip10's design — the
// natural pack dependency for this concern — but is implemented
// directly against crypto/hmac and crypto/sha512 because this offline
// exercise could not confirm that library's exact exported function
// signatures against a live module cache; see DESIGN.md.
package derive

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

// MaxPathDepth bounds derivation path length (SPEC_FULL.md §4.C).
const MaxPathDepth = 10

// Node is one level of a derivation tree: a 32-byte key and 32-byte
// chain code.
type Node struct {
	Key       [32]byte
	ChainCode [32]byte
}

// MasterA derives the suite-A (Ed25519) master node from a seed.
func MasterA(seed []byte) Node {
	return hmacMaster("ed25519 seed", seed)
}

// MasterB derives the suite-B (secp256k1) master node from a seed.
func MasterB(seed []byte) Node {
	return hmacMaster("Bitcoin seed", seed)
}

func hmacMaster(key string, seed []byte) Node {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write(seed)
	sum := mac.Sum(nil)
	var n Node
	copy(n.Key[:], sum[:32])
	copy(n.ChainCode[:], sum[32:])
	return n
}

// PathIndex is one path segment: a non-negative index and whether it
// is hardened (trailing ').
type PathIndex struct {
	Index    uint32
	Hardened bool
}

// ParsePath parses a slash-separated path such as "m/44'/3030'/0'/0'/0'".
// A leading "m" segment, if present, is ignored. Paths deeper than
// MaxPathDepth are rejected.
func ParsePath(path string) ([]PathIndex, error) {
	segments := strings.Split(path, "/")
	if len(segments) > 0 && (segments[0] == "m" || segments[0] == "") {
		segments = segments[1:]
	}
	if len(segments) > MaxPathDepth {
		return nil, fmt.Errorf("derivation path depth %d exceeds maximum %d", len(segments), MaxPathDepth)
	}
	out := make([]PathIndex, 0, len(segments))
	for _, seg := range segments {
		hardened := strings.HasSuffix(seg, "'")
		numPart := strings.TrimSuffix(seg, "'")
		n, err := strconv.ParseUint(numPart, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", seg, err)
		}
		out = append(out, PathIndex{Index: uint32(n), Hardened: hardened})
	}
	return out, nil
}

func ser32(index uint32, hardened bool) []byte {
	var buf [4]byte
	if hardened {
		binary.BigEndian.PutUint32(buf[:], index|0x80000000)
	} else {
		binary.BigEndian.PutUint32(buf[:], index)
	}
	return buf[:]
}

// DeriveA derives a suite-A child node. SLIP-10 requires every
// suite-A derivation step to be hardened; a non-hardened index is
// rejected.
func DeriveA(parent Node, idx PathIndex) (Node, error) {
	if !idx.Hardened {
		return Node{}, fmt.Errorf("suite A (Ed25519) derivation requires every path segment to be hardened")
	}
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, parent.Key[:]...)
	data = append(data, ser32(idx.Index, true)...)
	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)
	var n Node
	copy(n.Key[:], sum[:32])
	copy(n.ChainCode[:], sum[32:])
	return n, nil
}

// DeriveB derives a suite-B child node, hardened or not.
func DeriveB(parent Node, idx PathIndex) (Node, error) {
	var data []byte
	if idx.Hardened {
		data = make([]byte, 0, 37)
		data = append(data, 0x00)
		data = append(data, parent.Key[:]...)
	} else {
		priv, _ := btcec.PrivKeyFromBytes(parent.Key[:])
		pub := priv.PubKey().SerializeCompressed()
		data = make([]byte, 0, 33+4)
		data = append(data, pub...)
	}
	data = append(data, ser32(idx.Index, idx.Hardened)...)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	sum := mac.Sum(nil)

	var il, parentScalar, childScalar btcec.ModNScalar
	if overflow := il.SetByteSlice(sum[:32]); overflow {
		return Node{}, fmt.Errorf("derived scalar exceeds curve order; choose a different index")
	}
	parentScalar.SetByteSlice(parent.Key[:])
	childScalar = il
	childScalar.Add(&parentScalar)
	if childScalar.IsZero() {
		return Node{}, fmt.Errorf("derived private key is zero; choose a different index")
	}

	var n Node
	childBytes := childScalar.Bytes()
	copy(n.Key[:], childBytes[:])
	copy(n.ChainCode[:], sum[32:])
	return n, nil
}

// PathA derives the suite-A node at path from seed.
func PathA(seed []byte, path string) (Node, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return Node{}, err
	}
	node := MasterA(seed)
	for _, idx := range indices {
		node, err = DeriveA(node, idx)
		if err != nil {
			return Node{}, err
		}
	}
	return node, nil
}

// PathB derives the suite-B node at path from seed.
func PathB(seed []byte, path string) (Node, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return Node{}, err
	}
	node := MasterB(seed)
	for _, idx := range indices {
		node, err = DeriveB(node, idx)
		if err != nil {
			return Node{}, err
		}
	}
	return node, nil
}
