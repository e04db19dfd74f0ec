package ledgersdk

import (
	"context"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// AccountBalanceQuery returns an account's current hbar and token
// balances. It requires no payment (SPEC_FULL.md §4.E: balance is a
// free query on this ledger).
type AccountBalanceQuery struct {
	*Query

	accountID AccountID
}

// AccountBalance is the decoded response of an AccountBalanceQuery.
type AccountBalance struct {
	Hbars         Amount
	TokenBalances map[TokenID]int64
}

// NewAccountBalanceQuery returns a new, empty balance query.
func NewAccountBalanceQuery() *AccountBalanceQuery {
	q := &AccountBalanceQuery{}
	q.Query = newQuery(q)
	return q
}

// SetAccountID sets the account whose balance is requested.
func (q *AccountBalanceQuery) SetAccountID(accountID AccountID) *AccountBalanceQuery {
	q.accountID = accountID
	return q
}

func (q *AccountBalanceQuery) queryKind() string    { return "AccountBalanceQuery" }
func (q *AccountBalanceQuery) requiresPayment() bool { return false }
func (q *AccountBalanceQuery) rpcMethod() string     { return "/ledger.CryptoService/cryptoGetBalance" }

func (q *AccountBalanceQuery) encodeRequest(w *wire.Writer) {
	w.WriteMessage(1, func(a *wire.Writer) { encodeEntityID(a, q.accountID.entityID) })
}

// Execute submits the query and decodes the balance response.
func (q *AccountBalanceQuery) Execute(ctx context.Context, client *Client) (AccountBalance, error) {
	data, err := q.Query.Execute(ctx, client)
	if err != nil {
		return AccountBalance{}, err
	}
	return decodeAccountBalance(data)
}

func decodeAccountBalance(data []byte) (AccountBalance, error) {
	r := wire.NewReader(data)
	out := AccountBalance{TokenBalances: make(map[TokenID]int64)}
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return AccountBalance{}, newErr(ErrParse, "malformed account balance response", err)
		}
		switch field {
		case 1:
			v, err := r.ReadVarintI64()
			if err != nil {
				return AccountBalance{}, newErr(ErrParse, "malformed balance field", err)
			}
			out.Hbars = NewAmountFromTinyunits(v)
		case 2:
			sub, err := r.ReadMessage()
			if err != nil {
				return AccountBalance{}, newErr(ErrParse, "malformed token balance entry", err)
			}
			tokenID, balance, err := decodeTokenBalanceEntry(sub)
			if err != nil {
				return AccountBalance{}, err
			}
			out.TokenBalances[tokenID] = balance
		default:
			if err := r.SkipField(wt); err != nil {
				return AccountBalance{}, newErr(ErrParse, "malformed account balance response", err)
			}
		}
	}
	return out, nil
}

func decodeTokenBalanceEntry(r *wire.Reader) (TokenID, int64, error) {
	var tokenID TokenID
	var balance int64
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return TokenID{}, 0, newErr(ErrParse, "malformed token balance entry", err)
		}
		switch field {
		case 1:
			sub, err := r.ReadMessage()
			if err != nil {
				return TokenID{}, 0, newErr(ErrParse, "malformed token balance token id", err)
			}
			id, err := decodeEntityID(sub)
			if err != nil {
				return TokenID{}, 0, err
			}
			tokenID = TokenID{id}
		case 2:
			v, err := r.ReadVarint()
			if err != nil {
				return TokenID{}, 0, newErr(ErrParse, "malformed token balance amount", err)
			}
			balance = int64(v)
		default:
			if err := r.SkipField(wt); err != nil {
				return TokenID{}, 0, newErr(ErrParse, "malformed token balance entry", err)
			}
		}
	}
	return tokenID, balance, nil
}
