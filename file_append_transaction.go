package ledgersdk

import "github.com/withObsrvr/ledger-sdk/internal/wire"

// FileAppendTransaction appends bytes to an existing file. Execute
// rejects content larger than defaultChunkSize; such content is
// submitted with ExecuteChunked, which splits it into chunks.
type FileAppendTransaction struct {
	*Transaction

	fileID  FileID
	content []byte

	chunkIndex   int
	chunkTotal   int
	initialID    TransactionID
	hasInitialID bool
}

// NewFileAppendTransaction returns a new file-append transaction
// targeting fileID.
func NewFileAppendTransaction(fileID FileID) *FileAppendTransaction {
	tx := &FileAppendTransaction{fileID: fileID, chunkTotal: 1}
	tx.Transaction = newTransaction(tx)
	return tx
}

// SetContents sets the full byte payload to append.
func (tx *FileAppendTransaction) SetContents(content []byte) *FileAppendTransaction {
	tx.content = content
	return tx
}

func (tx *FileAppendTransaction) transactionKind() string { return "FileAppendTransaction" }

func (tx *FileAppendTransaction) validateBody() error {
	if len(tx.content) > defaultChunkSize && tx.chunkTotal == 1 {
		return newErr(ErrInvalidArgument, "content exceeds chunk size; submit via ExecuteChunked", nil)
	}
	return nil
}

func (tx *FileAppendTransaction) payload() []byte { return tx.content }

func (tx *FileAppendTransaction) setChunk(data []byte, index, total int, initialID TransactionID) {
	tx.content = data
	tx.chunkIndex = index
	tx.chunkTotal = total
	tx.initialID = initialID
	tx.hasInitialID = true
}

func (tx *FileAppendTransaction) encodeBody(w *wire.Writer) {
	w.WriteMessage(wire.TagBodyDataOneof, func(body *wire.Writer) {
		body.WriteMessage(1, func(f *wire.Writer) { encodeEntityID(f, tx.fileID.entityID) })
		body.WriteBytes(2, tx.content)
		if tx.hasInitialID {
			body.WriteMessage(3, func(c *wire.Writer) {
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
