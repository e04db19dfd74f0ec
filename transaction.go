package ledgersdk

import (
	"context"
	"crypto/sha512"
	"time"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// TransactionState is the lifecycle a Transaction moves through:
// Building -> Frozen -> Signed -> Submitted -> {Succeeded, Failed,
// TimedOut} (SPEC_FULL.md §4.D).
type TransactionState int

const (
	TransactionStateBuilding TransactionState = iota
	TransactionStateFrozen
	TransactionStateSigned
	TransactionStateSubmitted
	TransactionStateSucceeded
	TransactionStateFailed
	TransactionStateTimedOut
)

func (s TransactionState) String() string {
	switch s {
	case TransactionStateBuilding:
		return "BUILDING"
	case TransactionStateFrozen:
		return "FROZEN"
	case TransactionStateSigned:
		return "SIGNED"
	case TransactionStateSubmitted:
		return "SUBMITTED"
	case TransactionStateSucceeded:
		return "SUCCEEDED"
	case TransactionStateFailed:
		return "FAILED"
	case TransactionStateTimedOut:
		return "TIMED_OUT"
	default:
		return "UNKNOWN"
	}
}

// maxTransactionValidDuration is the ceiling on valid duration a
// transaction may request (SPEC_FULL.md §8).
const maxTransactionValidDuration = 180 * time.Second

// defaultTransactionValidDuration is used when the caller never calls
// SetTransactionValidDuration.
const defaultTransactionValidDuration = 120 * time.Second

// maxMemoBytes bounds the transaction memo.
const maxMemoBytes = 100

// defaultNodeSelectionSize is how many nodes Freeze chooses from the
// client's network when the caller never calls SetNodeAccountIDs.
const defaultNodeSelectionSize = 3

// transactionBody is implemented by every concrete transaction kind
// (TransferTransaction, AccountCreateTransaction, ...) to contribute
// its kind-specific fields to the common envelope.
type transactionBody interface {
	transactionKind() string
	encodeBody(w *wire.Writer)
	validateBody() error
}

// Transaction holds the state and behavior shared by every concrete
// transaction kind: identity, fee/duration/memo, the frozen per-node
// canonical bodies, attached signatures, and the execution state
// machine. Concrete kinds embed *Transaction.
type Transaction struct {
	transactionID            *TransactionID
	nodeAccountIDs           []AccountID
	maxTransactionFee        *Amount
	transactionValidDuration Duration
	memo                     string
	regenerateOnExpiry       bool
	grpcDeadline             time.Duration

	state TransactionState

	bodyBytes map[string][]byte
	sigMaps   map[string]*SignatureMap
	hash      []byte

	kind transactionBody
}

func newTransaction(kind transactionBody) *Transaction {
	return &Transaction{regenerateOnExpiry: true, kind: kind}
}

func (t *Transaction) requireBuilding() error {
	if t.state != TransactionStateBuilding {
		return newErr(ErrFrozen, "transaction is already frozen", nil)
	}
	return nil
}

// SetTransactionID overrides the auto-generated transaction id.
func (t *Transaction) SetTransactionID(id TransactionID) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	t.transactionID = &id
	return nil
}

// TransactionID returns the transaction id, which is only guaranteed
// set once the transaction is frozen.
func (t *Transaction) TransactionID() (TransactionID, bool) {
	if t.transactionID == nil {
		return TransactionID{}, false
	}
	return *t.transactionID, true
}

// SetNodeAccountIDs restricts which nodes this transaction may be
// submitted to.
func (t *Transaction) SetNodeAccountIDs(ids []AccountID) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	t.nodeAccountIDs = append([]AccountID(nil), ids...)
	return nil
}

// NodeAccountIDs returns the configured candidate nodes.
func (t *Transaction) NodeAccountIDs() []AccountID {
	return append([]AccountID(nil), t.nodeAccountIDs...)
}

// SetMaxTransactionFee overrides the client's default max fee for this
// transaction.
func (t *Transaction) SetMaxTransactionFee(fee Amount) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	t.maxTransactionFee = &fee
	return nil
}

// SetTransactionValidDuration overrides the default 120s valid
// duration, rejecting anything beyond the 180s ceiling.
func (t *Transaction) SetTransactionValidDuration(d Duration) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	if d.Seconds <= 0 || time.Duration(d.Seconds)*time.Second > maxTransactionValidDuration {
		return newErr(ErrInvalidArgument, "transaction valid duration must be in (0s, 180s]", nil)
	}
	t.transactionValidDuration = d
	return nil
}

// SetTransactionMemo sets the transaction memo, rejecting anything
// over 100 UTF-8 bytes.
func (t *Transaction) SetTransactionMemo(memo string) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	if len(memo) > maxMemoBytes {
		return newErr(ErrInvalidArgument, "memo exceeds 100 bytes", nil)
	}
	t.memo = memo
	return nil
}

// SetRegenerateTransactionID controls whether Execute regenerates the
// transaction id (new valid-start) and retries once after an expired
// transaction id, instead of failing immediately.
func (t *Transaction) SetRegenerateTransactionID(regenerate bool) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	t.regenerateOnExpiry = regenerate
	return nil
}

// SetGrpcDeadline bounds a single node attempt, separate from the
// client's overall request timeout which bounds every attempt
// combined.
func (t *Transaction) SetGrpcDeadline(d time.Duration) error {
	if err := t.requireBuilding(); err != nil {
		return err
	}
	t.grpcDeadline = d
	return nil
}

// IsFrozen reports whether the transaction has left the Building state.
func (t *Transaction) IsFrozen() bool { return t.state != TransactionStateBuilding }

// State reports the current lifecycle state.
func (t *Transaction) State() TransactionState { return t.state }

// Freeze finalizes the transaction against client: filling in a
// default transaction id and node list from the client's operator and
// network if unset, applying fee/duration defaults, and computing the
// per-node canonical wire bodies plus a SHA-384 transaction hash.
// Freeze is idempotent once frozen (an already-frozen transaction is
// returned as-is) to keep kind constructors free to freeze eagerly.
func (t *Transaction) Freeze(client *Client) error {
	if t.state != TransactionStateBuilding {
		return nil
	}
	if err := t.kind.validateBody(); err != nil {
		return err
	}
	if len(t.memo) > maxMemoBytes {
		return newErr(ErrInvalidArgument, "memo exceeds 100 bytes", nil)
	}

	if t.transactionID == nil {
		payerID, _, ok := client.Operator()
		if !ok {
			return newErr(ErrInvalidArgument, "no transaction id set and no client operator configured", nil)
		}
		id := NewTransactionID(payerID)
		t.transactionID = &id
	}
	if len(t.nodeAccountIDs) == 0 {
		nodes := client.Network().Nodes()
		if len(nodes) == 0 {
			return newErr(ErrInvalidArgument, "no node account ids set and client network is empty", nil)
		}
		limit := defaultNodeSelectionSize
		if len(nodes) < limit {
			limit = len(nodes)
		}
		t.nodeAccountIDs = make([]AccountID, 0, limit)
		for i := 0; i < limit; i++ {
			t.nodeAccountIDs = append(t.nodeAccountIDs, nodes[i].AccountID)
		}
	}
	if t.transactionValidDuration.Seconds == 0 {
		t.transactionValidDuration = DurationFromSeconds(int64(defaultTransactionValidDuration.Seconds()))
	}
	if time.Duration(t.transactionValidDuration.Seconds)*time.Second > maxTransactionValidDuration {
		return newErr(ErrInvalidArgument, "transaction valid duration exceeds 180s maximum", nil)
	}
	if t.maxTransactionFee == nil {
		fee := client.DefaultMaxTransactionFee()
		t.maxTransactionFee = &fee
	}

	t.bodyBytes = make(map[string][]byte, len(t.nodeAccountIDs))
	t.sigMaps = make(map[string]*SignatureMap, len(t.nodeAccountIDs))
	for _, node := range t.nodeAccountIDs {
		w := wire.NewWriter()
		t.encodeCommon(w, node)
		t.kind.encodeBody(w)
		t.bodyBytes[node.String()] = w.Bytes()
		t.sigMaps[node.String()] = NewSignatureMap()
	}
	// The transaction hash fingerprints the transaction independent of
	// which node ends up receiving it, so it is computed over the
	// first node variant's bytes; node selection never changes the
	// semantic content of the transaction.
	sum := sha512.Sum384(t.bodyBytes[t.nodeAccountIDs[0].String()])
	t.hash = sum[:]
	t.state = TransactionStateFrozen
	return nil
}

// Hash returns the SHA-384 transaction hash, valid once frozen.
func (t *Transaction) Hash() ([]byte, error) {
	if t.state == TransactionStateBuilding {
		return nil, newErr(ErrInvalidArgument, "transaction is not yet frozen", nil)
	}
	return append([]byte(nil), t.hash...), nil
}

// BodyBytesForNode returns the canonical wire bytes a signer must sign
// to authorize submission to nodeAccountID, for out-of-process signers
// (e.g. hardware wallets) that can't be handed a PrivateKey directly.
func (t *Transaction) BodyBytesForNode(nodeAccountID AccountID) ([]byte, error) {
	if t.state == TransactionStateBuilding {
		return nil, newErr(ErrInvalidArgument, "transaction is not yet frozen", nil)
	}
	b, ok := t.bodyBytes[nodeAccountID.String()]
	if !ok {
		return nil, newErr(ErrInvalidArgument, "unknown node account id for this transaction", nil)
	}
	return append([]byte(nil), b...), nil
}

// Sign signs every per-node body variant with key, auto-freezing
// against client defaults is NOT performed here — the transaction
// must already be frozen.
func (t *Transaction) Sign(key PrivateKey) error {
	if t.state != TransactionStateFrozen && t.state != TransactionStateSigned {
		return newErr(ErrInvalidArgument, "transaction must be frozen before signing", nil)
	}
	for nodeKey, body := range t.bodyBytes {
		t.sigMaps[nodeKey].Add(key.PublicKey(), key.Sign(body))
	}
	t.state = TransactionStateSigned
	return nil
}

// AddSignature attaches a signature computed externally over the
// bytes returned by BodyBytesForNode(nodeAccountID).
func (t *Transaction) AddSignature(nodeAccountID AccountID, pubKey PublicKey, signature []byte) error {
	if t.state != TransactionStateFrozen && t.state != TransactionStateSigned {
		return newErr(ErrInvalidArgument, "transaction must be frozen before attaching a signature", nil)
	}
	m, ok := t.sigMaps[nodeAccountID.String()]
	if !ok {
		return newErr(ErrInvalidArgument, "unknown node account id for this transaction", nil)
	}
	m.Add(pubKey, signature)
	t.state = TransactionStateSigned
	return nil
}

func (t *Transaction) encodeCommon(w *wire.Writer, nodeAccountID AccountID) {
	w.WriteMessage(wire.TagBodyTransactionID, func(tx *wire.Writer) {
		tx.WriteMessage(wire.TagTxIDAccountID, func(a *wire.Writer) { encodeEntityID(a, t.transactionID.AccountID.entityID) })
		tx.WriteMessage(wire.TagTxIDValidStart, func(ts *wire.Writer) {
			ts.WriteVarintI64(wire.TagTimeSeconds, t.transactionID.ValidStart.Seconds)
			ts.WriteVarintI64(wire.TagTimeNanos, int64(t.transactionID.ValidStart.Nanos))
		})
	})
	w.WriteMessage(wire.TagBodyNodeAccountID, func(n *wire.Writer) { encodeEntityID(n, nodeAccountID.entityID) })
	w.WriteVarintU64(wire.TagBodyTransactionFee, uint64(t.maxTransactionFee.AsTinyunits()))
	w.WriteMessage(wire.TagBodyValidDuration, func(d *wire.Writer) {
		d.WriteVarintI64(1, t.transactionValidDuration.Seconds)
	})
	w.WriteString(wire.TagBodyMemo, t.memo)
}

// envelope bundles a node's canonical body with its attached
// signatures, the unit actually submitted over the wire.
func (t *Transaction) envelope(nodeAccountID AccountID) []byte {
	body := t.bodyBytes[nodeAccountID.String()]
	sigMap := t.sigMaps[nodeAccountID.String()]
	w := wire.NewWriter()
	w.WriteBytes(wire.TagSignedBodyBytes, body)
	prefixLens := sigMap.MinimalPrefixLen()
	for i, e := range sigMap.entries {
		w.WriteMessage(wire.TagSignedSigMap, func(sp *wire.Writer) {
			sp.WriteBytes(wire.TagSigPairPrefix, e.pubKey.Bytes()[:prefixLens[i]])
			sp.WriteBytes(wire.TagSigPairEd25519, e.signature)
		})
	}
	return w.Bytes()
}

// Execute submits the transaction, freezing and auto-signing with the
// client's operator first if needed, and returns once a node has
// returned a precheck status (this is NOT the consensus receipt; call
// TransactionReceiptQuery for that). Node iteration and backoff follow
// SPEC_FULL.md §4.D; an expired transaction id is regenerated and
// resubmitted once when SetRegenerateTransactionID(true) (the default)
// is in effect.
func (t *Transaction) Execute(ctx context.Context, client *Client) (TransactionID, error) {
	if err := client.checkNotClosed(); err != nil {
		return TransactionID{}, err
	}
	if t.state == TransactionStateBuilding {
		if err := t.Freeze(client); err != nil {
			return TransactionID{}, err
		}
	}
	if t.state == TransactionStateFrozen {
		_, key, ok := client.Operator()
		if !ok {
			return TransactionID{}, newErr(ErrInvalidArgument, "transaction has no signatures and client has no operator", nil)
		}
		if err := t.Sign(key); err != nil {
			return TransactionID{}, err
		}
	}

	status, err := t.submit(ctx, client)
	if err == nil {
		t.state = TransactionStateSucceeded
		return *t.transactionID, nil
	}

	if t.regenerateOnExpiry && status == StatusTransactionExpired {
		id := NewTransactionID(t.transactionID.AccountID)
		t.transactionID = &id
		t.state = TransactionStateFrozen
		if rfErr := t.refreeze(client); rfErr != nil {
			t.state = TransactionStateFailed
			return TransactionID{}, rfErr
		}
		_, key, _ := client.Operator()
		if sErr := t.Sign(key); sErr != nil {
			t.state = TransactionStateFailed
			return TransactionID{}, sErr
		}
		if _, err2 := t.submit(ctx, client); err2 != nil {
			t.state = TransactionStateFailed
			return TransactionID{}, err2
		}
		t.state = TransactionStateSucceeded
		return *t.transactionID, nil
	}

	if IsKind(err, ErrTimedOut) {
		t.state = TransactionStateTimedOut
	} else {
		t.state = TransactionStateFailed
	}
	return TransactionID{}, err
}

// refreeze recomputes the per-node bodies after the transaction id was
// regenerated, without re-validating or re-defaulting node/fee/memo.
func (t *Transaction) refreeze(client *Client) error {
	t.bodyBytes = make(map[string][]byte, len(t.nodeAccountIDs))
	t.sigMaps = make(map[string]*SignatureMap, len(t.nodeAccountIDs))
	for _, node := range t.nodeAccountIDs {
		w := wire.NewWriter()
		t.encodeCommon(w, node)
		t.kind.encodeBody(w)
		t.bodyBytes[node.String()] = w.Bytes()
		t.sigMaps[node.String()] = NewSignatureMap()
	}
	sum := sha512.Sum384(t.bodyBytes[t.nodeAccountIDs[0].String()])
	t.hash = sum[:]
	return nil
}

func (t *Transaction) submit(ctx context.Context, client *Client) (Status, error) {
	network := client.Network()
	candidates := network.NodesByAccountID(t.nodeAccountIDs)
	if len(candidates) == 0 {
		return StatusUnknown, newErr(ErrInvalidArgument, "none of the transaction's node account ids are in the client's network", nil)
	}
	deadline := t.grpcDeadline

	t.state = TransactionStateSubmitted
	return executeWithRetry(ctx, candidates, network.FailureThreshold(), client.Logger(), func(ctx context.Context, node *Node) (Status, error) {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if deadline > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, deadline)
			defer cancel()
		}
		envelope := t.envelope(node.AccountID)
		_, precheck, err := client.transport.Submit(attemptCtx, node, "/proto.TransactionService/submitTransaction", envelope)
		return precheck, err
	})
}
