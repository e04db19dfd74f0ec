package ledgersdk

import "github.com/withObsrvr/ledger-sdk/internal/wire"

// TopicMessageSubmitTransaction appends a message to a consensus
// topic. Execute rejects a message larger than defaultChunkSize; such a
// message is submitted with ExecuteChunked, which splits it into chunks.
type TopicMessageSubmitTransaction struct {
	*Transaction

	topicID TopicID
	message []byte

	chunkIndex     int
	chunkTotal     int
	initialID      TransactionID
	hasInitialID   bool
}

// NewTopicMessageSubmitTransaction returns a new message-submit
// transaction targeting topicID.
func NewTopicMessageSubmitTransaction(topicID TopicID) *TopicMessageSubmitTransaction {
	tx := &TopicMessageSubmitTransaction{topicID: topicID, chunkTotal: 1}
	tx.Transaction = newTransaction(tx)
	return tx
}

// SetMessage sets the full message payload. Messages over the chunk
// size must be submitted via ExecuteChunked rather than Execute.
func (tx *TopicMessageSubmitTransaction) SetMessage(message []byte) *TopicMessageSubmitTransaction {
	tx.message = message
	return tx
}

func (tx *TopicMessageSubmitTransaction) transactionKind() string {
	return "TopicMessageSubmitTransaction"
}

func (tx *TopicMessageSubmitTransaction) validateBody() error {
	if len(tx.message) > defaultChunkSize && tx.chunkTotal == 1 {
		return newErr(ErrInvalidArgument, "message exceeds chunk size; submit via ExecuteChunked", nil)
	}
	return nil
}

func (tx *TopicMessageSubmitTransaction) payload() []byte { return tx.message }

func (tx *TopicMessageSubmitTransaction) setChunk(data []byte, index, total int, initialID TransactionID) {
	tx.message = data
	tx.chunkIndex = index
	tx.chunkTotal = total
	tx.initialID = initialID
	tx.hasInitialID = true
}

func (tx *TopicMessageSubmitTransaction) encodeBody(w *wire.Writer) {
	w.WriteMessage(wire.TagBodyDataOneof, func(body *wire.Writer) {
		body.WriteMessage(wire.TagSubmitMessageTopicID, func(t *wire.Writer) { encodeEntityID(t, tx.topicID.entityID) })
		body.WriteBytes(wire.TagSubmitMessageMessage, tx.message)
		if tx.hasInitialID {
			body.WriteMessage(wire.TagSubmitMessageChunkInfo, func(c *wire.Writer) {
				c.WriteMessage(wire.TagChunkInfoInitialTxID, func(id *wire.Writer) {
					id.WriteMessage(1, func(a *wire.Writer) { encodeEntityID(a, tx.initialID.AccountID.entityID) })
					id.WriteMessage(2, func(ts *wire.Writer) {
						ts.WriteVarintI64(1, tx.initialID.ValidStart.Seconds)
						ts.WriteVarintI64(2, int64(tx.initialID.ValidStart.Nanos))
					})
				})
				c.WriteVarintU64(wire.TagChunkInfoTotal, uint64(tx.chunkTotal))
				c.WriteVarintU64(wire.TagChunkInfoNumber, uint64(tx.chunkIndex+1))
			})
		}
	})
}
