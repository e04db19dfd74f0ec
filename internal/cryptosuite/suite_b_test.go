package cryptosuite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuiteBSignVerify(t *testing.T) {
	priv, err := GenerateB()
	require.NoError(t, err)
	pub := priv.PublicKey()
	msg := []byte("payload")
	sig := priv.Sign(msg)
	require.True(t, pub.Verify(msg, sig))
	require.LessOrEqual(t, len(sig), 72)
	require.GreaterOrEqual(t, len(sig), 8)
}

func TestSuiteBRejectsWrongKey(t *testing.T) {
	priv1, _ := GenerateB()
	priv2, _ := GenerateB()
	msg := []byte("payload")
	sig := priv1.Sign(msg)
	require.False(t, priv2.PublicKey().Verify(msg, sig))
}

func TestSuiteBRoundTripBytes(t *testing.T) {
	priv, _ := GenerateB()
	raw := priv.Bytes()
	restored, err := PrivateKeyBFromBytes(raw)
	require.NoError(t, err)
	require.Equal(t, priv.PublicKey().Bytes(), restored.PublicKey().Bytes())
}

func TestCrossSuiteSignatureDoesNotVerify(t *testing.T) {
	privA, _ := GenerateA()
	privB, _ := GenerateB()
	msg := []byte("payload")
	sigA := privA.Sign(msg)
	require.False(t, privB.PublicKey().Verify(msg, sigA))
}
