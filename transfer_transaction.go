package ledgersdk

import (
	"sort"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// hbarTransfer is one signed-amount leg of the native-currency part of
// a transfer transaction.
type hbarTransfer struct {
	AccountID AccountID
	Amount    Amount
}

// tokenTransfer is one signed-amount leg of a fungible token transfer
// list.
type tokenTransfer struct {
	AccountID        AccountID
	Amount           Amount
	ExpectedDecimals *uint32
}

// nftTransfer moves a single NFT serial between two accounts.
type nftTransfer struct {
	Sender   AccountID
	Receiver AccountID
	Serial   int64
}

// TransferTransaction moves native currency, fungible tokens, and NFTs
// in one atomic transaction (SPEC_FULL.md §4.D).
type TransferTransaction struct {
	*Transaction

	hbarTransfers  []hbarTransfer
	tokenTransfers map[TokenID][]tokenTransfer
	nftTransfers   map[TokenID][]nftTransfer
	decimalsSeen   map[TokenID]uint32
}

// NewTransferTransaction returns an empty transfer transaction.
func NewTransferTransaction() *TransferTransaction {
	tt := &TransferTransaction{
		tokenTransfers: make(map[TokenID][]tokenTransfer),
		nftTransfers:   make(map[TokenID][]nftTransfer),
		decimalsSeen:   make(map[TokenID]uint32),
	}
	tt.Transaction = newTransaction(tt)
	return tt
}

// AddHbarTransfer appends a native-currency leg. Positive amounts
// credit accountID; negative amounts debit it.
func (tt *TransferTransaction) AddHbarTransfer(accountID AccountID, amount Amount) *TransferTransaction {
	tt.hbarTransfers = append(tt.hbarTransfers, hbarTransfer{AccountID: accountID, Amount: amount})
	return tt
}

// AddTokenTransfer appends a fungible-token leg.
func (tt *TransferTransaction) AddTokenTransfer(tokenID TokenID, accountID AccountID, amount Amount) *TransferTransaction {
	tt.tokenTransfers[tokenID] = append(tt.tokenTransfers[tokenID], tokenTransfer{AccountID: accountID, Amount: amount})
	return tt
}

// AddTokenTransferWithDecimals appends a fungible-token leg asserting
// the token's expected decimal count, validated for consistency across
// every leg of this token in this transaction at freeze time.
func (tt *TransferTransaction) AddTokenTransferWithDecimals(tokenID TokenID, accountID AccountID, amount Amount, decimals uint32) *TransferTransaction {
	tt.tokenTransfers[tokenID] = append(tt.tokenTransfers[tokenID], tokenTransfer{AccountID: accountID, Amount: amount, ExpectedDecimals: &decimals})
	return tt
}

// AddNftTransfer appends an NFT leg.
func (tt *TransferTransaction) AddNftTransfer(nftID NftID, sender, receiver AccountID) *TransferTransaction {
	tt.nftTransfers[nftID.TokenID] = append(tt.nftTransfers[nftID.TokenID], nftTransfer{Sender: sender, Receiver: receiver, Serial: nftID.Serial})
	return tt
}

func (tt *TransferTransaction) transactionKind() string { return "TransferTransaction" }

// validateBody enforces the multi-transfer invariants from
// SPEC_FULL.md §4.D: the hbar legs sum to zero, each token's legs sum
// to zero, every NFT leg is unique, and a token's expected_decimals (if
// given) is the same across all of that token's legs in this
// transaction.
func (tt *TransferTransaction) validateBody() error {
	sum := ZeroAmount
	for _, leg := range tt.hbarTransfers {
		var err error
		sum, err = sum.Add(leg.Amount)
		if err != nil {
			return err
		}
	}
	if !sum.IsZero() {
		return newErr(ErrInvalidArgument, "hbar transfers must sum to zero", nil)
	}

	for tokenID, legs := range tt.tokenTransfers {
		tokenSum := ZeroAmount
		var decimals *uint32
		for _, leg := range legs {
			var err error
			tokenSum, err = tokenSum.Add(leg.Amount)
			if err != nil {
				return err
			}
			if leg.ExpectedDecimals != nil {
				if decimals == nil {
					decimals = leg.ExpectedDecimals
				} else if *decimals != *leg.ExpectedDecimals {
					return newErr(ErrInvalidArgument, "inconsistent expected_decimals for token "+tokenID.String(), nil)
				}
			}
		}
		if !tokenSum.IsZero() {
			return newErr(ErrInvalidArgument, "token transfers must sum to zero for token "+tokenID.String(), nil)
		}
	}

	for tokenID, legs := range tt.nftTransfers {
		seen := make(map[int64]bool, len(legs))
		for _, leg := range legs {
			if seen[leg.Serial] {
				return newErr(ErrInvalidArgument, "nft serial transferred more than once in this transaction", nil)
			}
			seen[leg.Serial] = true
		}
		_ = tokenID
	}
	return nil
}

// sortedTokenIDs returns the keys of a token-keyed map in canonical-text
// order so repeated encodes of the same transaction are byte-identical
// regardless of Go's randomized map iteration order.
func sortedTokenIDs[V any](m map[TokenID]V) []TokenID {
	ids := make([]TokenID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

func encodeAccountAmount(w *wire.Writer, accountID AccountID, amount Amount) {
	w.WriteMessage(wire.TagAccountAmountAccountID, func(a *wire.Writer) { encodeEntityID(a, accountID.entityID) })
	w.WriteVarintI64(wire.TagAccountAmountAmount, amount.AsTinyunits())
}

func (tt *TransferTransaction) encodeBody(w *wire.Writer) {
	w.WriteMessage(wire.TagBodyDataOneof, func(body *wire.Writer) {
		for _, leg := range tt.hbarTransfers {
			body.WriteMessage(wire.TagTransferAccountAmounts, func(aa *wire.Writer) {
				encodeAccountAmount(aa, leg.AccountID, leg.Amount)
			})
		}
		for _, tokenID := range sortedTokenIDs(tt.tokenTransfers) {
			legs := tt.tokenTransfers[tokenID]
			body.WriteMessage(wire.TagTransferTokenTransfers, func(list *wire.Writer) {
				list.WriteMessage(wire.TagTokenTransferToken, func(t *wire.Writer) { encodeEntityID(t, tokenID.entityID) })
				for _, leg := range legs {
					list.WriteMessage(wire.TagTokenTransferTransfers, func(aa *wire.Writer) {
						encodeAccountAmount(aa, leg.AccountID, leg.Amount)
					})
					if leg.ExpectedDecimals != nil {
						list.WriteVarintU64(wire.TagTokenTransferExpectedDecimals, uint64(*leg.ExpectedDecimals))
					}
				}
			})
		}
		for _, tokenID := range sortedTokenIDs(tt.nftTransfers) {
			legs := tt.nftTransfers[tokenID]
			body.WriteMessage(wire.TagTransferTokenTransfers, func(list *wire.Writer) {
				list.WriteMessage(wire.TagTokenTransferToken, func(t *wire.Writer) { encodeEntityID(t, tokenID.entityID) })
				for _, leg := range legs {
					list.WriteMessage(wire.TagTokenTransferNftTransfers, func(nft *wire.Writer) {
						nft.WriteMessage(wire.TagNftTransferSender, func(a *wire.Writer) { encodeEntityID(a, leg.Sender.entityID) })
						nft.WriteMessage(wire.TagNftTransferReceiver, func(a *wire.Writer) { encodeEntityID(a, leg.Receiver.entityID) })
						nft.WriteVarintI64(wire.TagNftTransferSerial, leg.Serial)
					})
				}
			})
		}
	})
}
