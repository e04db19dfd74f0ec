package ledgersdk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountAddSubtractRoundTrip(t *testing.T) {
	a := NewAmountFromTinyunits(500)
	b := NewAmountFromTinyunits(120)
	sum, err := a.Add(b)
	require.NoError(t, err)
	back, err := sum.Subtract(b)
	require.NoError(t, err)
	require.Equal(t, a, back)
}

func TestAmountOverflowAddDetected(t *testing.T) {
	a := NewAmountFromTinyunits(math.MaxInt64)
	_, err := a.Add(NewAmountFromTinyunits(1))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrOverflow))
}

func TestAmountMinMaxDoNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		min := NewAmountFromTinyunits(math.MinInt64)
		max := NewAmountFromTinyunits(math.MaxInt64)
		_, _ = min.Add(max)
		_, _ = min.Negate()
	})
}

func TestAmountParseUnits(t *testing.T) {
	a, err := ParseAmount("1.5")
	require.NoError(t, err)
	require.Equal(t, int64(150_000_000), a.AsTinyunits())
}

func TestAmountParseTinyunitSuffix(t *testing.T) {
	a, err := ParseAmount("42tℏ")
	require.NoError(t, err)
	require.Equal(t, int64(42), a.AsTinyunits())
}

func TestAmountFormatMinimalPrecision(t *testing.T) {
	a := NewAmountFromTinyunits(150_000_000)
	require.Equal(t, "1.5 ℏ", a.Format(""))
	whole := NewAmountFromTinyunits(TinyunitsPerUnit)
	require.Equal(t, "1 ℏ", whole.Format(""))
}

func TestAmountMultiplyScalarOverflow(t *testing.T) {
	a := NewAmountFromTinyunits(math.MaxInt64 / 2)
	_, err := a.MultiplyScalar(3)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrOverflow))
}
