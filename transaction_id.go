package ledgersdk

import (
	"fmt"
	"strconv"
	"strings"
)

// TransactionID uniquely identifies a transaction: the paying account,
// the valid-start instant, an optional scheduled-transaction nonce, and
// whether it represents the inner transaction of a scheduled
// transaction (SPEC_FULL.md §6).
type TransactionID struct {
	AccountID  AccountID
	ValidStart Timestamp
	Nonce      *int32
	Scheduled  bool
}

// NewTransactionID builds a transaction id with validStart set to the
// current instant, matching the freeze-time generation behavior
// (SPEC_FULL.md §4.D).
func NewTransactionID(accountID AccountID) TransactionID {
	return TransactionID{AccountID: accountID, ValidStart: nowTimestamp()}
}

// WithNonce returns a copy carrying the given scheduled-transaction
// nonce.
func (id TransactionID) WithNonce(nonce int32) TransactionID {
	id.Nonce = &nonce
	return id
}

// WithScheduled returns a copy marked (or unmarked) as the inner
// transaction of a scheduled transaction.
func (id TransactionID) WithScheduled(scheduled bool) TransactionID {
	id.Scheduled = scheduled
	return id
}

// String renders "account@seconds.nanos[/nonce][?scheduled]".
func (id TransactionID) String() string {
	s := fmt.Sprintf("%s@%s", id.AccountID.String(), id.ValidStart.String())
	if id.Nonce != nil {
		s += fmt.Sprintf("/%d", *id.Nonce)
	}
	if id.Scheduled {
		s += "?scheduled"
	}
	return s
}

// Equal compares two transaction ids field by field.
func (id TransactionID) Equal(other TransactionID) bool {
	if !id.AccountID.Equal(other.AccountID) || id.ValidStart.Compare(other.ValidStart) != 0 || id.Scheduled != other.Scheduled {
		return false
	}
	if (id.Nonce == nil) != (other.Nonce == nil) {
		return false
	}
	if id.Nonce != nil && *id.Nonce != *other.Nonce {
		return false
	}
	return true
}

// ParseTransactionID parses the textual form produced by String.
func ParseTransactionID(s string) (TransactionID, error) {
	scheduled := false
	if strings.HasSuffix(s, "?scheduled") {
		scheduled = true
		s = strings.TrimSuffix(s, "?scheduled")
	}

	var nonce *int32
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		n, err := strconv.ParseInt(s[idx+1:], 10, 32)
		if err != nil {
			return TransactionID{}, newErr(ErrParse, "invalid transaction id nonce", err)
		}
		n32 := int32(n)
		nonce = &n32
		s = s[:idx]
	}

	at := strings.LastIndex(s, "@")
	if at < 0 {
		return TransactionID{}, newErr(ErrParse, "transaction id missing '@'", nil)
	}
	accountID, err := ParseAccountID(s[:at], "")
	if err != nil {
		return TransactionID{}, newErr(ErrParse, "invalid transaction id account", err)
	}
	validStart, err := ParseTimestamp(s[at+1:])
	if err != nil {
		return TransactionID{}, newErr(ErrParse, "invalid transaction id valid-start", err)
	}

	return TransactionID{AccountID: accountID, ValidStart: validStart, Nonce: nonce, Scheduled: scheduled}, nil
}
