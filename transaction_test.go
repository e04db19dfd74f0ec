package ledgersdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubTransport lets transaction/query tests exercise Execute without a
// real network; responses are consumed one per call in FIFO order.
type stubTransport struct {
	responses []stubResponse
	calls     int
}

type stubResponse struct {
	body     []byte
	precheck Status
	err      error
}

func (s *stubTransport) Submit(ctx context.Context, node *Node, method string, body []byte) ([]byte, Status, error) {
	if s.calls >= len(s.responses) {
		return nil, StatusUnknown, newErr(ErrTransient, "stub transport exhausted", nil)
	}
	r := s.responses[s.calls]
	s.calls++
	return r.body, r.precheck, r.err
}

func testClientWithStub(t *testing.T, responses []stubResponse) (*Client, *stubTransport) {
	t.Helper()
	network := NewNetwork(nil)
	network.AddNode(NewNode(NewAccountID(0, 0, 3), "node-3:50211"))
	client := NewClient(network, "testnet")
	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	client.SetOperator(NewAccountID(0, 0, 1001), key)

	stub := &stubTransport{responses: responses}
	client.transport = stub
	return client, stub
}

func TestTransactionFreezeDefaultsNodeListAndFee(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))

	require.NoError(t, tx.Freeze(client))
	require.Equal(t, TransactionStateFrozen, tx.State())
	require.Len(t, tx.NodeAccountIDs(), 1)
	id, ok := tx.TransactionID()
	require.True(t, ok)
	require.True(t, id.AccountID.Equal(NewAccountID(0, 0, 1001)))
}

func TestTransactionFreezeIsIdempotent(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))
	require.NoError(t, tx.Freeze(client))
	firstHash, err := tx.Hash()
	require.NoError(t, err)
	require.NoError(t, tx.Freeze(client))
	secondHash, err := tx.Hash()
	require.NoError(t, err)
	require.Equal(t, firstHash, secondHash)
}

func TestTransactionMutationAfterFreezeRejected(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))
	require.NoError(t, tx.Freeze(client))
	err := tx.SetTransactionMemo("too late")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrFrozen))
}

func TestTransactionMemoOver100BytesRejected(t *testing.T) {
	tx := NewTransferTransaction()
	memo := make([]byte, 101)
	err := tx.SetTransactionMemo(string(memo))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransactionMemoAt100BytesAccepted(t *testing.T) {
	tx := NewTransferTransaction()
	memo := make([]byte, 100)
	require.NoError(t, tx.SetTransactionMemo(string(memo)))
}

func TestTransactionValidDurationOver180sRejected(t *testing.T) {
	tx := NewTransferTransaction()
	err := tx.SetTransactionValidDuration(DurationFromSeconds(181))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransactionValidDurationAt180sAccepted(t *testing.T) {
	tx := NewTransferTransaction()
	require.NoError(t, tx.SetTransactionValidDuration(DurationFromSeconds(180)))
}

func TestTransactionSignProducesSignatureOnEveryNodeVariant(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	network := client.Network()
	network.AddNode(NewNode(NewAccountID(0, 0, 4), "node-4:50211"))

	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))
	require.NoError(t, tx.SetNodeAccountIDs([]AccountID{NewAccountID(0, 0, 3), NewAccountID(0, 0, 4)}))
	require.NoError(t, tx.Freeze(client))

	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	require.NoError(t, tx.Sign(key))
	require.Equal(t, TransactionStateSigned, tx.State())

	for _, nodeID := range tx.NodeAccountIDs() {
		require.Equal(t, 1, tx.sigMaps[nodeID.String()].Len())
	}
}

func TestTransactionAddSignatureUnknownNodeRejected(t *testing.T) {
	client, _ := testClientWithStub(t, nil)
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))
	require.NoError(t, tx.Freeze(client))

	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	bogusNode := NewAccountID(0, 0, 9999)
	err = tx.AddSignature(bogusNode, key.PublicKey(), []byte("sig"))
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransactionExecuteSucceedsAgainstStub(t *testing.T) {
	client, _ := testClientWithStub(t, []stubResponse{
		{body: []byte{byte(StatusSuccess)}, precheck: StatusSuccess},
	})
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))

	id, err := tx.Execute(context.Background(), client)
	require.NoError(t, err)
	require.True(t, id.AccountID.Equal(NewAccountID(0, 0, 1001)))
	require.Equal(t, TransactionStateSucceeded, tx.State())
}

func TestTransactionExecuteFatalStatusFails(t *testing.T) {
	client, _ := testClientWithStub(t, []stubResponse{
		{body: []byte{byte(StatusInvalidSignature)}, precheck: StatusInvalidSignature},
	})
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 1001), NewAmountFromTinyunits(-10)).
		AddHbarTransfer(NewAccountID(0, 0, 1002), NewAmountFromTinyunits(10))

	_, err := tx.Execute(context.Background(), client)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrFatal))
	require.Equal(t, TransactionStateFailed, tx.State())
}
