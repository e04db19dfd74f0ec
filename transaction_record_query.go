package ledgersdk

import (
	"context"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// TransactionRecordQuery fetches the full record (receipt plus
// transfer detail, memo, fee, and contract output) for a transaction
// that has already reached consensus. Unlike TransactionReceiptQuery it
// is a paid query: the ledger charges for the extra detail returned
// (SPEC_FULL.md §4.E, §6).
type TransactionRecordQuery struct {
	*Query

	transactionID TransactionID
}

// NewTransactionRecordQuery returns a new record query.
func NewTransactionRecordQuery() *TransactionRecordQuery {
	q := &TransactionRecordQuery{}
	q.Query = newQuery(q)
	return q
}

// SetTransactionID sets the transaction whose record is requested.
func (q *TransactionRecordQuery) SetTransactionID(id TransactionID) *TransactionRecordQuery {
	q.transactionID = id
	return q
}

func (q *TransactionRecordQuery) queryKind() string     { return "TransactionRecordQuery" }
func (q *TransactionRecordQuery) requiresPayment() bool { return true }
func (q *TransactionRecordQuery) rpcMethod() string {
	return "/ledger.CryptoService/getTxRecordByTxID"
}

func (q *TransactionRecordQuery) encodeRequest(w *wire.Writer) {
	w.WriteMessage(1, func(id *wire.Writer) {
		id.WriteMessage(wire.TagTxIDAccountID, func(a *wire.Writer) { encodeEntityID(a, q.transactionID.AccountID.entityID) })
		id.WriteMessage(wire.TagTxIDValidStart, func(ts *wire.Writer) {
			ts.WriteVarintI64(wire.TagTimeSeconds, q.transactionID.ValidStart.Seconds)
			ts.WriteVarintI64(wire.TagTimeNanos, int64(q.transactionID.ValidStart.Nanos))
		})
	})
}

// Execute submits the query and decodes the resulting record.
func (q *TransactionRecordQuery) Execute(ctx context.Context, client *Client) (TransactionRecord, error) {
	data, err := q.Query.Execute(ctx, client)
	if err != nil {
		return TransactionRecord{}, err
	}
	return DecodeTransactionRecord(data)
}
