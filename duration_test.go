package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDurationFromSecondsNormalizes(t *testing.T) {
	d := DurationFromSeconds(180)
	require.Equal(t, int64(180), d.Seconds)
	require.Equal(t, int32(0), d.Nanos)
}

func TestDurationFromMillisecondsNormalizes(t *testing.T) {
	d := DurationFromMilliseconds(1500)
	require.Equal(t, int64(1), d.Seconds)
	require.Equal(t, int32(500_000_000), d.Nanos)
}

func TestDurationFromDaysMatchesSeconds(t *testing.T) {
	require.Equal(t, DurationFromSeconds(90*86400), DurationFromDays(90))
}

func TestDurationCompareOrdersBySecondsThenNanos(t *testing.T) {
	shorter := DurationFromSeconds(10)
	longer := DurationFromSeconds(20)
	require.Equal(t, -1, shorter.Compare(longer))
	require.Equal(t, 1, longer.Compare(shorter))
	require.Equal(t, 0, shorter.Compare(DurationFromSeconds(10)))
}

func TestDurationString(t *testing.T) {
	require.Equal(t, "180.000000000", DurationFromSeconds(180).String())
}
