package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShuffleHealthyFirstOrdersHealthyAhead(t *testing.T) {
	healthy := NewNode(NewAccountID(0, 0, 3), "node-3:50211")
	unhealthy := NewNode(NewAccountID(0, 0, 4), "node-4:50211")
	for i := 0; i < 5; i++ {
		unhealthy.MarkUnhealthy(defaultMaxBackoff)
	}

	order := shuffleHealthyFirst([]*Node{unhealthy, healthy}, 5, 42)
	require.Len(t, order, 2)
	require.True(t, order[0].AccountID.Equal(healthy.AccountID))
	require.True(t, order[1].AccountID.Equal(unhealthy.AccountID))
}

func TestNetworkNodesByAccountIDSkipsUnknown(t *testing.T) {
	n := NewNetwork(nil)
	nodeA := NewNode(NewAccountID(0, 0, 3), "a:50211")
	nodeB := NewNode(NewAccountID(0, 0, 4), "b:50211")
	n.AddNode(nodeA)
	n.AddNode(nodeB)

	found := n.NodesByAccountID([]AccountID{NewAccountID(0, 0, 4), NewAccountID(0, 0, 99)})
	require.Len(t, found, 1)
	require.True(t, found[0].AccountID.Equal(nodeB.AccountID))
}

func TestNetworkFailureThresholdDefault(t *testing.T) {
	n := NewNetwork(nil)
	require.Equal(t, defaultFailureThreshold, n.FailureThreshold())
}

func TestNetworkCloseIsIdempotentWithNoChannels(t *testing.T) {
	n := NewNetwork(nil)
	require.NoError(t, n.Close())
	require.NoError(t, n.Close())
}
