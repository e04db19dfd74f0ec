package ledgersdk

import "context"

// defaultChunkSize is the maximum payload bytes per chunk.
const defaultChunkSize = 1024

// defaultMaxChunks bounds how many chunks a chunked transaction may
// split into.
const defaultMaxChunks = 20

// chunkedBody is implemented by transaction kinds whose payload may
// need to be split across several physical transactions sharing one
// initial transaction id (file append, consensus message submit).
type chunkedBody interface {
	transactionBody
	payload() []byte
	setChunk(data []byte, index, total int, initialID TransactionID)
}

// ExecuteChunked splits t's payload into chunks of at most chunkSize
// bytes (defaultChunkSize if chunkSize <= 0), submitting each as an
// independent transaction that shares the first chunk's transaction id
// as its "initial transaction id". Subsequent chunks use the same
// payer account and a valid-start offset by 1ns times the chunk index.
// Submission stops at the first chunk whose execution fails; maxChunks
// (defaultMaxChunks if <= 0) bounds the split.
func ExecuteChunked(ctx context.Context, client *Client, build func() (*Transaction, chunkedBody), fullPayload []byte, key PrivateKey, chunkSize, maxChunks int) ([]TransactionID, error) {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if maxChunks <= 0 {
		maxChunks = defaultMaxChunks
	}

	total := (len(fullPayload) + chunkSize - 1) / chunkSize
	if total == 0 {
		total = 1
	}
	if total > maxChunks {
		return nil, newErr(ErrInvalidArgument, "payload requires more chunks than max_chunks allows", nil)
	}

	var initialID TransactionID
	ids := make([]TransactionID, 0, total)

	for i := 0; i < total; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(fullPayload) {
			end = len(fullPayload)
		}
		chunk := fullPayload[start:end]

		tx, body := build()
		if i == 0 {
			id := NewTransactionID(mustOperatorAccount(client))
			initialID = id
			if err := tx.SetTransactionID(id); err != nil {
				return nil, err
			}
		} else {
			id := initialID
			id.ValidStart = id.ValidStart.Add(DurationFromNanos(int64(i)))
			if err := tx.SetTransactionID(id); err != nil {
				return nil, err
			}
		}
		body.setChunk(chunk, i, total, initialID)

		if err := tx.Freeze(client); err != nil {
			return nil, err
		}
		if err := tx.Sign(key); err != nil {
			return nil, err
		}
		txID, err := tx.Execute(ctx, client)
		if err != nil {
			return ids, err
		}
		ids = append(ids, txID)
	}
	return ids, nil
}

func mustOperatorAccount(client *Client) AccountID {
	acct, _, _ := client.Operator()
	return acct
}

// DurationFromNanos builds a Duration of exactly n nanoseconds.
func DurationFromNanos(n int64) Duration {
	return normalizeDuration(0, n)
}
