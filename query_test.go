package ledgersdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

func encodeCostResponse(tinyunits int64) []byte {
	w := wire.NewWriter()
	w.WriteVarintI64(1, tinyunits)
	return w.Bytes()
}

func TestQueryGetCostCachesResult(t *testing.T) {
	client, stub := testClientWithStub(t, []stubResponse{
		{body: encodeCostResponse(500), precheck: StatusSuccess},
	})

	q := NewAccountBalanceQuery().SetAccountID(NewAccountID(0, 0, 1001))
	cost, err := q.GetCost(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, NewAmountFromTinyunits(500), cost)

	cost2, err := q.GetCost(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, cost, cost2)
	require.Equal(t, 1, stub.calls)
}

func TestQueryExecuteFreeQueryDoesNotRequireOperator(t *testing.T) {
	balanceResp := func() []byte {
		w := wire.NewWriter()
		w.WriteVarintI64(1, 42)
		return w.Bytes()
	}()
	client, stub := testClientWithStub(t, []stubResponse{
		{body: balanceResp, precheck: StatusSuccess},
	})

	q := NewAccountBalanceQuery().SetAccountID(NewAccountID(0, 0, 1001))
	balance, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, NewAmountFromTinyunits(42), balance.Hbars)
	require.Equal(t, 1, stub.calls)
}

func TestQueryExecutePaidQueryAutoPaysMinOfCostAndMax(t *testing.T) {
	recordResp := func() []byte {
		w := wire.NewWriter()
		w.WriteBytes(tagRecordReceipt, EncodeTransactionReceipt(TransactionReceipt{Status: StatusSuccess}))
		return w.Bytes()
	}()
	client, stub := testClientWithStub(t, []stubResponse{
		{body: encodeCostResponse(300), precheck: StatusSuccess},
		{body: recordResp, precheck: StatusSuccess},
	})

	q := NewTransactionRecordQuery().SetTransactionID(NewTransactionID(NewAccountID(0, 0, 1001)))
	rec, err := q.Execute(context.Background(), client)
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, rec.Receipt.Status)
	require.Equal(t, 2, stub.calls)
}

func TestQueryExecutePaidQueryWithoutOperatorErrors(t *testing.T) {
	network := NewNetwork(nil)
	network.AddNode(NewNode(NewAccountID(0, 0, 3), "node-3:50211"))
	client := NewClient(network, "testnet")
	client.transport = &stubTransport{}

	q := NewTransactionRecordQuery().SetTransactionID(NewTransactionID(NewAccountID(0, 0, 1001)))
	_, err := q.Execute(context.Background(), client)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestQueryCandidateNodesDefaultsToNetworkNodes(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	q := NewAccountBalanceQuery()
	nodes, err := q.candidateNodes(client)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestQueryCandidateNodesRejectsUnknownNodeAccountIDs(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	q := NewAccountBalanceQuery().SetNodeAccountIDs([]AccountID{NewAccountID(0, 0, 9999)})
	_, err := q.candidateNodes(client)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}
