package ledgersdk

import (
	"context"
	"time"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

const (
	defaultReceiptPollInterval = 500 * time.Millisecond
	defaultReceiptPollTimeout  = 30 * time.Second
)

// TransactionReceiptQuery polls a node for a transaction's receipt
// until it reaches a terminal status, treating StatusReceiptNotFound as
// the expected transient answer while consensus is still in flight
// (SPEC_FULL.md §4.E).
type TransactionReceiptQuery struct {
	*Query

	transactionID TransactionID
	pollInterval  time.Duration
	pollTimeout   time.Duration
}

// NewTransactionReceiptQuery returns a new receipt query.
func NewTransactionReceiptQuery() *TransactionReceiptQuery {
	q := &TransactionReceiptQuery{
		pollInterval: defaultReceiptPollInterval,
		pollTimeout:  defaultReceiptPollTimeout,
	}
	q.Query = newQuery(q)
	return q
}

// SetTransactionID sets the transaction whose receipt is requested.
func (q *TransactionReceiptQuery) SetTransactionID(id TransactionID) *TransactionReceiptQuery {
	q.transactionID = id
	return q
}

// SetPollInterval overrides the delay between consecutive polls while
// the receipt is not yet available.
func (q *TransactionReceiptQuery) SetPollInterval(d time.Duration) *TransactionReceiptQuery {
	q.pollInterval = d
	return q
}

// SetPollTimeout bounds the total time spent polling before giving up.
func (q *TransactionReceiptQuery) SetPollTimeout(d time.Duration) *TransactionReceiptQuery {
	q.pollTimeout = d
	return q
}

func (q *TransactionReceiptQuery) queryKind() string     { return "TransactionReceiptQuery" }
func (q *TransactionReceiptQuery) requiresPayment() bool { return false }
func (q *TransactionReceiptQuery) rpcMethod() string {
	return "/ledger.CryptoService/getTransactionReceipts"
}

func (q *TransactionReceiptQuery) encodeRequest(w *wire.Writer) {
	w.WriteMessage(1, func(id *wire.Writer) {
		id.WriteMessage(wire.TagTxIDAccountID, func(a *wire.Writer) { encodeEntityID(a, q.transactionID.AccountID.entityID) })
		id.WriteMessage(wire.TagTxIDValidStart, func(ts *wire.Writer) {
			ts.WriteVarintI64(wire.TagTimeSeconds, q.transactionID.ValidStart.Seconds)
			ts.WriteVarintI64(wire.TagTimeNanos, int64(q.transactionID.ValidStart.Nanos))
		})
	})
}

// Execute polls until the receipt reaches a terminal status (anything
// other than StatusReceiptNotFound/StatusUnknown), the poll timeout
// elapses, or ctx is cancelled.
func (q *TransactionReceiptQuery) Execute(ctx context.Context, client *Client) (TransactionReceipt, error) {
	deadline := time.Now().Add(q.pollTimeout)
	for {
		data, err := q.Query.Execute(ctx, client)
		if err != nil {
			return TransactionReceipt{}, err
		}
		receipt, err := DecodeTransactionReceipt(data)
		if err != nil {
			return TransactionReceipt{}, err
		}
		if receipt.Status != StatusReceiptNotFound && receipt.Status != StatusUnknown {
			return receipt, nil
		}
		if time.Now().After(deadline) {
			return TransactionReceipt{}, newErr(ErrTimedOut, "timed out waiting for transaction receipt", nil)
		}
		if err := sleepCtx(ctx, q.pollInterval); err != nil {
			return TransactionReceipt{}, err
		}
	}
}
