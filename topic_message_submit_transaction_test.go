package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

func TestTopicMessageSubmitTransactionOversizedMessageRejected(t *testing.T) {
	tx := NewTopicMessageSubmitTransaction(NewTopicID(0, 0, 7)).
		SetMessage(make([]byte, defaultChunkSize+1))
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTopicMessageSubmitTransactionWithinChunkSizePasses(t *testing.T) {
	tx := NewTopicMessageSubmitTransaction(NewTopicID(0, 0, 7)).
		SetMessage(make([]byte, defaultChunkSize))
	require.NoError(t, tx.validateBody())
}

func TestTopicMessageSubmitTransactionEncodeBodyProducesBytes(t *testing.T) {
	tx := NewTopicMessageSubmitTransaction(NewTopicID(0, 0, 7)).
		SetMessage([]byte("hello topic"))
	w := wire.NewWriter()
	tx.encodeBody(w)
	require.NotEmpty(t, w.Bytes())
}

func TestTopicMessageSubmitTransactionSetChunkMarksInitialID(t *testing.T) {
	tx := NewTopicMessageSubmitTransaction(NewTopicID(0, 0, 7))
	initial := NewTransactionID(NewAccountID(0, 0, 1001))
	tx.setChunk([]byte("chunk-1"), 0, 3, initial)

	require.True(t, tx.hasInitialID)
	require.Equal(t, 0, tx.chunkIndex)
	require.Equal(t, 3, tx.chunkTotal)
	require.Equal(t, []byte("chunk-1"), tx.payload())

	w := wire.NewWriter()
	tx.encodeBody(w)
	require.NotEmpty(t, w.Bytes())
}
