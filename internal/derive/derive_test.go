package derive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePathRejectsTooDeep(t *testing.T) {
	_, err := ParsePath("m/0'/0'/0'/0'/0'/0'/0'/0'/0'/0'/0'")
	require.Error(t, err)
}

func TestParsePathParsesHardenedMarkers(t *testing.T) {
	indices, err := ParsePath("m/44'/3030'/0'/0'/0'")
	require.NoError(t, err)
	require.Len(t, indices, 5)
	for _, idx := range indices {
		require.True(t, idx.Hardened)
	}
	require.Equal(t, uint32(44), indices[0].Index)
}

func TestDeriveADeterministic(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	n1, err := PathA(seed, "m/44'/3030'/0'/0'/0'")
	require.NoError(t, err)
	n2, err := PathA(seed, "m/44'/3030'/0'/0'/0'")
	require.NoError(t, err)
	require.Equal(t, n1, n2)
}

func TestDeriveARejectsNonHardened(t *testing.T) {
	seed := make([]byte, 64)
	master := MasterA(seed)
	_, err := DeriveA(master, PathIndex{Index: 0, Hardened: false})
	require.Error(t, err)
}

func TestDeriveBSupportsNonHardened(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i * 3)
	}
	node, err := PathB(seed, "m/44'/60'/0'/0/0")
	require.NoError(t, err)
	require.NotEqual(t, [32]byte{}, node.Key)
}

func TestDifferentPathsDeriveDifferentKeys(t *testing.T) {
	seed := make([]byte, 64)
	for i := range seed {
		seed[i] = byte(i)
	}
	n1, _ := PathA(seed, "m/44'/3030'/0'/0'/0'")
	n2, _ := PathA(seed, "m/44'/3030'/0'/0'/1'")
	require.NotEqual(t, n1.Key, n2.Key)
}
