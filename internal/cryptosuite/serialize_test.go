package cryptosuite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrivateKeyDERPEMRoundTripSuiteA(t *testing.T) {
	priv, _ := GenerateA()
	raw := priv.Bytes()
	der, err := PrivateDER(SuiteA, raw)
	require.NoError(t, err)
	suite, parsedRaw, err := unmarshalPrivateDER(der)
	require.NoError(t, err)
	require.Equal(t, SuiteA, suite)
	require.Equal(t, raw, parsedRaw)

	pemText := PrivatePEM(der)
	suite, parsedRaw, err = ParseAnyPrivateKey(pemText)
	require.NoError(t, err)
	require.Equal(t, SuiteA, suite)
	require.Equal(t, raw, parsedRaw)
}

func TestPublicKeyDERPEMRoundTripSuiteB(t *testing.T) {
	priv, _ := GenerateB()
	raw := priv.PublicKey().Bytes()
	der, err := PublicDER(SuiteB, raw)
	require.NoError(t, err)
	suite, parsedRaw, err := unmarshalPublicDER(der)
	require.NoError(t, err)
	require.Equal(t, SuiteB, suite)
	require.Equal(t, raw, parsedRaw)

	pemText := PublicPEM(der)
	suite, parsedRaw, err = ParseAnyPublicKey(pemText)
	require.NoError(t, err)
	require.Equal(t, SuiteB, suite)
	require.Equal(t, raw, parsedRaw)
}

func TestParseAnyPublicKeyDetectsHex(t *testing.T) {
	priv, _ := GenerateA()
	raw := priv.PublicKey().Bytes()
	suite, parsedRaw, err := ParseAnyPublicKey("0x" + hexString(raw))
	require.NoError(t, err)
	require.Equal(t, SuiteA, suite)
	require.Equal(t, raw, parsedRaw)
}

func hexString(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = hexDigits[c>>4]
		out[i*2+1] = hexDigits[c&0xf]
	}
	return string(out)
}
