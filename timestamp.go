package ledgersdk

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is seconds and nanoseconds since the Unix epoch, always
// normalized so Nanos is in [0, 1e9).
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

// TimestampFromSeconds constructs a Timestamp from a whole-second offset.
func TimestampFromSeconds(seconds int64) Timestamp {
	return Timestamp{Seconds: seconds}
}

// TimestampFromMilliseconds constructs a normalized Timestamp.
func TimestampFromMilliseconds(ms int64) Timestamp {
	return normalizeTimestamp(ms/1000, int64(ms%1000)*1_000_000)
}

// TimestampFromMinutes constructs a normalized Timestamp.
func TimestampFromMinutes(minutes int64) Timestamp {
	return normalizeTimestamp(minutes*60, 0)
}

// TimestampFromHours constructs a normalized Timestamp.
func TimestampFromHours(hours int64) Timestamp {
	return normalizeTimestamp(hours*3600, 0)
}

// TimestampFromDays constructs a normalized Timestamp.
func TimestampFromDays(days int64) Timestamp {
	return normalizeTimestamp(days*86400, 0)
}

// nowFunc is the process wall clock used for new timestamps and node
// backoff windows; tests substitute it.
var nowFunc = time.Now

func nowTimestamp() Timestamp {
	t := nowFunc()
	return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
}

func normalizeTimestamp(seconds int64, nanos int64) Timestamp {
	s := seconds + nanos/1_000_000_000
	n := nanos % 1_000_000_000
	if n < 0 {
		n += 1_000_000_000
		s--
	}
	return Timestamp{Seconds: s, Nanos: int32(n)}
}

// ToTime converts the Timestamp to a time.Time in UTC.
func (t Timestamp) ToTime() time.Time {
	return time.Unix(t.Seconds, int64(t.Nanos)).UTC()
}

// Add returns t+d, normalized.
func (t Timestamp) Add(d Duration) Timestamp {
	return normalizeTimestamp(t.Seconds+d.Seconds, int64(t.Nanos)+int64(d.Nanos))
}

// Subtract returns the Duration between t and earlier (t - earlier).
func (t Timestamp) Subtract(earlier Timestamp) Duration {
	return normalizeDuration(t.Seconds-earlier.Seconds, int64(t.Nanos)-int64(earlier.Nanos))
}

// SubtractDuration returns t-d, normalized, the inverse of Add.
func (t Timestamp) SubtractDuration(d Duration) Timestamp {
	return normalizeTimestamp(t.Seconds-d.Seconds, int64(t.Nanos)-int64(d.Nanos))
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after other.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Seconds != other.Seconds:
		return cmpInt64(t.Seconds, other.Seconds)
	default:
		return cmpInt64(int64(t.Nanos), int64(other.Nanos))
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders "seconds.nanos" with nanos zero-padded to nine digits.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09d", t.Seconds, t.Nanos)
}

// ParseTimestamp parses "seconds.nanos".
func ParseTimestamp(s string) (Timestamp, error) {
	secPart, nanoPart, ok := strings.Cut(s, ".")
	seconds, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return Timestamp{}, newErr(ErrParse, "invalid timestamp seconds: "+secPart, err)
	}
	var nanos int64
	if ok {
		nanoPart = (nanoPart + "000000000")[:9]
		nanos, err = strconv.ParseInt(nanoPart, 10, 32)
		if err != nil {
			return Timestamp{}, newErr(ErrParse, "invalid timestamp nanos: "+nanoPart, err)
		}
	}
	return normalizeTimestamp(seconds, nanos), nil
}
