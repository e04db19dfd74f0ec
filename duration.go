package ledgersdk

import "fmt"

// Duration is a signed span of seconds and nanoseconds, normalized so
// Nanos is in [0, 1e9) (the sign lives in Seconds, matching Timestamp's
// normalization rule).
type Duration struct {
	Seconds int64
	Nanos   int32
}

// DurationFromSeconds constructs a normalized Duration.
func DurationFromSeconds(seconds int64) Duration {
	return normalizeDuration(seconds, 0)
}

// DurationFromMilliseconds constructs a normalized Duration.
func DurationFromMilliseconds(ms int64) Duration {
	return normalizeDuration(ms/1000, (ms%1000)*1_000_000)
}

// DurationFromMinutes constructs a normalized Duration.
func DurationFromMinutes(minutes int64) Duration {
	return normalizeDuration(minutes*60, 0)
}

// DurationFromHours constructs a normalized Duration.
func DurationFromHours(hours int64) Duration {
	return normalizeDuration(hours*3600, 0)
}

// DurationFromDays constructs a normalized Duration.
func DurationFromDays(days int64) Duration {
	return normalizeDuration(days*86400, 0)
}

func normalizeDuration(seconds int64, nanos int64) Duration {
	t := normalizeTimestamp(seconds, nanos)
	return Duration{Seconds: t.Seconds, Nanos: t.Nanos}
}

// Compare returns -1, 0, or 1 as d is shorter than, equal to, or longer
// than other.
func (d Duration) Compare(other Duration) int {
	switch {
	case d.Seconds != other.Seconds:
		return cmpInt64(d.Seconds, other.Seconds)
	default:
		return cmpInt64(int64(d.Nanos), int64(other.Nanos))
	}
}

// String renders "seconds.nanos".
func (d Duration) String() string {
	return fmt.Sprintf("%d.%09d", d.Seconds, d.Nanos)
}
