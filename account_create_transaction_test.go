package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

func TestAccountCreateTransactionMissingKeyRejected(t *testing.T) {
	tx := NewAccountCreateTransaction().SetInitialBalance(NewAmountFromTinyunits(100))
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestAccountCreateTransactionNegativeBalanceRejected(t *testing.T) {
	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	tx := NewAccountCreateTransaction().
		SetKey(key.PublicKey()).
		SetInitialBalance(NewAmountFromTinyunits(-1))
	err = tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestAccountCreateTransactionValidBodyPasses(t *testing.T) {
	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	tx := NewAccountCreateTransaction().
		SetKey(key.PublicKey()).
		SetInitialBalance(NewAmountFromTinyunits(100))
	require.NoError(t, tx.validateBody())
}

func TestAccountCreateTransactionEncodeBodyProducesBytes(t *testing.T) {
	key, err := GeneratePrivateKeyEd25519()
	require.NoError(t, err)
	tx := NewAccountCreateTransaction().
		SetKey(key.PublicKey()).
		SetInitialBalance(NewAmountFromTinyunits(100)).
		SetAccountMemo("hello")

	w := wire.NewWriter()
	tx.encodeBody(w)
	require.NotEmpty(t, w.Bytes())
}

func TestAccountCreateTransactionDefaultAutoRenewIs90Days(t *testing.T) {
	tx := NewAccountCreateTransaction()
	require.Equal(t, DurationFromDays(90), tx.autoRenewPeriod)
}
