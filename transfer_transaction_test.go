package ledgersdk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

func TestTransferTransactionBalancedHbarPasses(t *testing.T) {
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 3), NewAmountFromTinyunits(-100)).
		AddHbarTransfer(NewAccountID(0, 0, 4), NewAmountFromTinyunits(100))
	require.NoError(t, tx.validateBody())
}

func TestTransferTransactionUnbalancedHbarRejected(t *testing.T) {
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 3), NewAmountFromTinyunits(-100)).
		AddHbarTransfer(NewAccountID(0, 0, 4), NewAmountFromTinyunits(99))
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransferTransactionUnbalancedTokenRejected(t *testing.T) {
	token := NewTokenID(0, 0, 10)
	tx := NewTransferTransaction().
		AddTokenTransfer(token, NewAccountID(0, 0, 3), NewAmountFromTinyunits(-5)).
		AddTokenTransfer(token, NewAccountID(0, 0, 4), NewAmountFromTinyunits(4))
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransferTransactionInconsistentDecimalsRejected(t *testing.T) {
	token := NewTokenID(0, 0, 10)
	tx := NewTransferTransaction().
		AddTokenTransferWithDecimals(token, NewAccountID(0, 0, 3), NewAmountFromTinyunits(-5), 2).
		AddTokenTransferWithDecimals(token, NewAccountID(0, 0, 4), NewAmountFromTinyunits(5), 3)
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransferTransactionDuplicateNftSerialRejected(t *testing.T) {
	token := NewTokenID(0, 0, 10)
	nftID := NftID{TokenID: token, Serial: 1}
	tx := NewTransferTransaction().
		AddNftTransfer(nftID, NewAccountID(0, 0, 3), NewAccountID(0, 0, 4)).
		AddNftTransfer(nftID, NewAccountID(0, 0, 4), NewAccountID(0, 0, 5))
	err := tx.validateBody()
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidArgument))
}

func TestTransferTransactionDistinctNftSerialsPass(t *testing.T) {
	token := NewTokenID(0, 0, 10)
	tx := NewTransferTransaction().
		AddNftTransfer(NftID{TokenID: token, Serial: 1}, NewAccountID(0, 0, 3), NewAccountID(0, 0, 4)).
		AddNftTransfer(NftID{TokenID: token, Serial: 2}, NewAccountID(0, 0, 4), NewAccountID(0, 0, 5))
	require.NoError(t, tx.validateBody())
}

func TestTransferTransactionEncodeBodyProducesBytes(t *testing.T) {
	tx := NewTransferTransaction().
		AddHbarTransfer(NewAccountID(0, 0, 3), NewAmountFromTinyunits(-100)).
		AddHbarTransfer(NewAccountID(0, 0, 4), NewAmountFromTinyunits(100))
	w := wire.NewWriter()
	tx.encodeBody(w)
	require.NotEmpty(t, w.Bytes())
}

// TestTransferTransactionEncodeBodyIsCanonicalAcrossMultipleTokensAndNfts
// guards the canonical-byte-identity invariant (§3, §4.B, §8): encoding
// the same transaction twice must produce identical bytes even though
// tokenTransfers/nftTransfers are stored in maps and Go randomizes map
// iteration order.
func TestTransferTransactionEncodeBodyIsCanonicalAcrossMultipleTokensAndNfts(t *testing.T) {
	tokenA := NewTokenID(0, 0, 10)
	tokenB := NewTokenID(0, 0, 20)
	tokenC := NewTokenID(0, 0, 30)
	nftX := NewTokenID(0, 0, 40)
	nftY := NewTokenID(0, 0, 50)

	build := func() *TransferTransaction {
		return NewTransferTransaction().
			AddTokenTransfer(tokenC, NewAccountID(0, 0, 3), NewAmountFromTinyunits(-5)).
			AddTokenTransfer(tokenC, NewAccountID(0, 0, 4), NewAmountFromTinyunits(5)).
			AddTokenTransfer(tokenA, NewAccountID(0, 0, 3), NewAmountFromTinyunits(-7)).
			AddTokenTransfer(tokenA, NewAccountID(0, 0, 4), NewAmountFromTinyunits(7)).
			AddTokenTransfer(tokenB, NewAccountID(0, 0, 3), NewAmountFromTinyunits(-9)).
			AddTokenTransfer(tokenB, NewAccountID(0, 0, 4), NewAmountFromTinyunits(9)).
			AddNftTransfer(NftID{TokenID: nftY, Serial: 1}, NewAccountID(0, 0, 3), NewAccountID(0, 0, 4)).
			AddNftTransfer(NftID{TokenID: nftX, Serial: 1}, NewAccountID(0, 0, 4), NewAccountID(0, 0, 5))
	}

	tx := build()
	require.NoError(t, tx.validateBody())

	var first []byte
	for i := 0; i < 20; i++ {
		w := wire.NewWriter()
		tx.encodeBody(w)
		encoded := w.Bytes()
		if i == 0 {
			first = encoded
			require.NotEmpty(t, first)
			continue
		}
		require.Equal(t, first, encoded, "encodeBody must be deterministic across repeated calls")
	}
}
