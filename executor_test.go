package ledgersdk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func candidateNodesForTest(n int) []*Node {
	nodes := make([]*Node, n)
	for i := range nodes {
		nodes[i] = NewNode(NewAccountID(0, 0, uint64(3+i)), "node")
	}
	return nodes
}

func TestExecuteWithRetrySucceedsImmediately(t *testing.T) {
	nodes := candidateNodesForTest(1)
	status, err := executeWithRetry(context.Background(), nodes, 5, nil, func(ctx context.Context, node *Node) (Status, error) {
		return StatusSuccess, nil
	})
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, status)
	require.Equal(t, 0, nodes[0].ConsecutiveFailures())
}

func TestExecuteWithRetryAdvancesOnRetryNextNode(t *testing.T) {
	nodes := candidateNodesForTest(2)
	var visited []string
	_, err := executeWithRetry(context.Background(), nodes, 5, nil, func(ctx context.Context, node *Node) (Status, error) {
		visited = append(visited, node.Address)
		if len(visited) == 1 {
			return StatusInvalidNodeAccount, nil
		}
		return StatusSuccess, nil
	})
	require.NoError(t, err)
	require.Len(t, visited, 2)
}

func TestExecuteWithRetryFatalStopsWithStatus(t *testing.T) {
	nodes := candidateNodesForTest(1)
	_, err := executeWithRetry(context.Background(), nodes, 5, nil, func(ctx context.Context, node *Node) (Status, error) {
		return StatusInvalidSignature, nil
	})
	require.Error(t, err)
	require.True(t, IsKind(err, ErrFatal))
	var sdkErr *SDKError
	require.ErrorAs(t, err, &sdkErr)
	require.Equal(t, StatusInvalidSignature, sdkErr.Status)
}

func TestExecuteWithRetryNoCandidatesErrors(t *testing.T) {
	_, err := executeWithRetry(context.Background(), nil, 5, nil, func(ctx context.Context, node *Node) (Status, error) {
		return StatusSuccess, nil
	})
	require.Error(t, err)
	require.True(t, IsKind(err, ErrNode))
}

func TestExecuteWithRetryContextCancelledStopsEarly(t *testing.T) {
	nodes := candidateNodesForTest(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := executeWithRetry(ctx, nodes, 5, nil, func(ctx context.Context, node *Node) (Status, error) {
		return StatusBusy, nil
	})
	require.Error(t, err)
	require.True(t, IsKind(err, ErrTimedOut))
}
