package ledgersdk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNodeHealthyInitially(t *testing.T) {
	n := NewNode(NewAccountID(0, 0, 3), "127.0.0.1:50211")
	require.True(t, n.Healthy(5))
	require.Equal(t, 0, n.ConsecutiveFailures())
}

func TestNodeUnhealthyAtThreshold(t *testing.T) {
	n := NewNode(NewAccountID(0, 0, 3), "127.0.0.1:50211")
	for i := 0; i < 5; i++ {
		n.MarkUnhealthy(8 * time.Second)
	}
	require.Equal(t, 5, n.ConsecutiveFailures())
	require.False(t, n.Healthy(5))
}

func TestNodeMarkSuccessResetsFailures(t *testing.T) {
	n := NewNode(NewAccountID(0, 0, 3), "127.0.0.1:50211")
	n.MarkUnhealthy(8 * time.Second)
	n.MarkUnhealthy(8 * time.Second)
	require.Equal(t, 2, n.ConsecutiveFailures())
	n.MarkSuccess()
	require.Equal(t, 0, n.ConsecutiveFailures())
	require.True(t, n.Healthy(5))
}

func TestNodeBackoffDoublesAndCaps(t *testing.T) {
	defer func() { nowFunc = time.Now }()

	base := time.Unix(1_700_000_000, 0)
	nowFunc = func() time.Time { return base }

	n := NewNode(NewAccountID(0, 0, 3), "127.0.0.1:50211")
	n.MarkUnhealthy(1 * time.Second)
	// first backoff is 250ms; immediately after marking unhealthy the
	// node should not be selectable again until that window elapses.
	require.False(t, n.Healthy(5))

	nowFunc = func() time.Time { return base.Add(250 * time.Millisecond) }
	require.True(t, n.Healthy(5))

	// second failure doubles to 500ms, bounded by the 1s cap passed in.
	nowFunc = func() time.Time { return base.Add(250 * time.Millisecond) }
	n.MarkUnhealthy(1 * time.Second)
	nowFunc = func() time.Time { return base.Add(250*time.Millisecond + 400*time.Millisecond) }
	require.False(t, n.Healthy(5))
	nowFunc = func() time.Time { return base.Add(250*time.Millisecond + 500*time.Millisecond) }
	require.True(t, n.Healthy(5))

	// third failure doubles to 1s; the fourth would double to 2s but is
	// held at the 1s cap.
	nowFunc = func() time.Time { return base.Add(750 * time.Millisecond) }
	n.MarkUnhealthy(1 * time.Second)
	n.MarkUnhealthy(1 * time.Second)
	nowFunc = func() time.Time { return base.Add(750*time.Millisecond + 999*time.Millisecond) }
	require.False(t, n.Healthy(5))
	nowFunc = func() time.Time { return base.Add(750*time.Millisecond + time.Second) }
	require.True(t, n.Healthy(5))
}
