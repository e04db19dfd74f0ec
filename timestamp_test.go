package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimestampAddSubtractRoundTrip(t *testing.T) {
	ts := TimestampFromSeconds(1000)
	d := DurationFromMilliseconds(1500)
	back := ts.Add(d).SubtractDuration(d)
	require.Equal(t, ts, back)
}

func TestTimestampNormalizesNegativeNanos(t *testing.T) {
	ts := normalizeTimestamp(5, -1_500_000_000)
	require.Equal(t, int64(3), ts.Seconds)
	require.Equal(t, int32(500_000_000), ts.Nanos)
}

func TestTimestampOrdering(t *testing.T) {
	a := TimestampFromSeconds(10)
	b := TimestampFromSeconds(20)
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, 0, a.Compare(a))
}

func TestTimestampParseRoundTrip(t *testing.T) {
	ts := Timestamp{Seconds: 1700000000, Nanos: 123456789}
	parsed, err := ParseTimestamp(ts.String())
	require.NoError(t, err)
	require.Equal(t, ts, parsed)
}

func TestDurationFromMinutesHoursDays(t *testing.T) {
	require.Equal(t, DurationFromSeconds(60), DurationFromMinutes(1))
	require.Equal(t, DurationFromSeconds(3600), DurationFromHours(1))
	require.Equal(t, DurationFromSeconds(86400), DurationFromDays(1))
}
