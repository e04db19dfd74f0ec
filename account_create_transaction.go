package ledgersdk

import "github.com/withObsrvr/ledger-sdk/internal/wire"

// AccountCreateTransaction creates a new account controlled by a key
// (or key aggregate), funded with an initial balance.
type AccountCreateTransaction struct {
	*Transaction

	key                      Key
	initialBalance           Amount
	receiverSignatureRequired bool
	autoRenewPeriod          Duration
	accountMemo              string
}

// NewAccountCreateTransaction returns a new account-create transaction
// with the default 90-day auto-renew period.
func NewAccountCreateTransaction() *AccountCreateTransaction {
	act := &AccountCreateTransaction{autoRenewPeriod: DurationFromDays(90)}
	act.Transaction = newTransaction(act)
	return act
}

// SetKey sets the key (or key aggregate) that controls the new account.
func (act *AccountCreateTransaction) SetKey(key Key) *AccountCreateTransaction {
	act.key = key
	return act
}

// SetInitialBalance sets the account's starting balance.
func (act *AccountCreateTransaction) SetInitialBalance(amount Amount) *AccountCreateTransaction {
	act.initialBalance = amount
	return act
}

// SetReceiverSignatureRequired requires inbound transfers to this
// account to be co-signed by its key.
func (act *AccountCreateTransaction) SetReceiverSignatureRequired(required bool) *AccountCreateTransaction {
	act.receiverSignatureRequired = required
	return act
}

// SetAutoRenewPeriod overrides the default auto-renew period.
func (act *AccountCreateTransaction) SetAutoRenewPeriod(d Duration) *AccountCreateTransaction {
	act.autoRenewPeriod = d
	return act
}

// SetAccountMemo sets the new account's memo.
func (act *AccountCreateTransaction) SetAccountMemo(memo string) *AccountCreateTransaction {
	act.accountMemo = memo
	return act
}

func (act *AccountCreateTransaction) transactionKind() string { return "AccountCreateTransaction" }

func (act *AccountCreateTransaction) validateBody() error {
	if act.key == nil {
		return newErr(ErrInvalidArgument, "account create transaction requires a key", nil)
	}
	if act.initialBalance.Compare(ZeroAmount) < 0 {
		return newErr(ErrInvalidArgument, "initial balance must not be negative", nil)
	}
	return nil
}

func (act *AccountCreateTransaction) encodeBody(w *wire.Writer) {
	w.WriteMessage(wire.TagBodyDataOneof, func(body *wire.Writer) {
		body.WriteMessage(1, func(k *wire.Writer) { act.key.encode(k) })
		body.WriteVarintI64(2, act.initialBalance.AsTinyunits())
		body.WriteVarintBool(3, act.receiverSignatureRequired)
		body.WriteMessage(4, func(d *wire.Writer) { d.WriteVarintI64(1, act.autoRenewPeriod.Seconds) })
		body.WriteString(5, act.accountMemo)
	})
}
