package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

func TestDecodeTransactionRecordRoundTrip(t *testing.T) {
	payer := NewAccountID(0, 0, 1001)
	receiver := NewAccountID(0, 0, 1002)
	receipt := TransactionReceipt{Status: StatusSuccess}

	w := wire.NewWriter()
	w.WriteBytes(tagRecordReceipt, EncodeTransactionReceipt(receipt))
	w.WriteMessage(tagRecordTransactionID, func(id *wire.Writer) {
		id.WriteMessage(wire.TagTxIDAccountID, func(a *wire.Writer) { encodeEntityID(a, payer.entityID) })
		id.WriteMessage(wire.TagTxIDValidStart, func(ts *wire.Writer) {
			ts.WriteVarintI64(1, 1_700_000_000)
			ts.WriteVarintI64(2, 500)
		})
	})
	w.WriteBytes(tagRecordTransactionHash, []byte{0xAA, 0xBB})
	w.WriteString(tagRecordMemo, "payment")
	w.WriteVarintI64(tagRecordFee, 1_000_000)
	w.WriteMessage(tagRecordConsensusTimestamp, func(ts *wire.Writer) {
		ts.WriteVarintI64(1, 1_700_000_001)
		ts.WriteVarintI64(2, 42)
	})
	w.WriteMessage(tagRecordTransfers, func(aa *wire.Writer) {
		aa.WriteMessage(wire.TagAccountAmountAccountID, func(a *wire.Writer) { encodeEntityID(a, payer.entityID) })
		aa.WriteVarintI64(wire.TagAccountAmountAmount, -100)
	})
	w.WriteMessage(tagRecordTransfers, func(aa *wire.Writer) {
		aa.WriteMessage(wire.TagAccountAmountAccountID, func(a *wire.Writer) { encodeEntityID(a, receiver.entityID) })
		aa.WriteVarintI64(wire.TagAccountAmountAmount, 100)
	})

	out, err := DecodeTransactionRecord(w.Bytes())
	require.NoError(t, err)
	require.Equal(t, StatusSuccess, out.Receipt.Status)
	require.True(t, out.TransactionID.AccountID.Equal(payer))
	require.Equal(t, int64(1_700_000_000), out.TransactionID.ValidStart.Seconds)
	require.Equal(t, int32(500), out.TransactionID.ValidStart.Nanos)
	require.Equal(t, []byte{0xAA, 0xBB}, out.TransactionHash)
	require.Equal(t, "payment", out.TransactionMemo)
	require.Equal(t, NewAmountFromTinyunits(1_000_000), out.TransactionFee)
	require.Equal(t, int64(1_700_000_001), out.ConsensusTimestamp.Seconds)
	require.Equal(t, int32(42), out.ConsensusTimestamp.Nanos)
	require.Len(t, out.HbarTransfers, 2)
	require.True(t, out.HbarTransfers[0].AccountID.Equal(payer))
	require.Equal(t, NewAmountFromTinyunits(-100), out.HbarTransfers[0].Amount)
	require.True(t, out.HbarTransfers[1].AccountID.Equal(receiver))
	require.Equal(t, NewAmountFromTinyunits(100), out.HbarTransfers[1].Amount)
}

func TestDecodeTransactionRecordMalformedErrors(t *testing.T) {
	_, err := DecodeTransactionRecord([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF})
	require.Error(t, err)
	require.True(t, IsKind(err, ErrParse))
}

func TestTransactionRecordQueryRequiresPayment(t *testing.T) {
	q := NewTransactionRecordQuery()
	require.True(t, q.requiresPayment())
	require.Equal(t, "/ledger.CryptoService/getTxRecordByTxID", q.rpcMethod())
}
