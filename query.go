package ledgersdk

import (
	"context"
	"time"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// QueryResponseType selects whether a query asks for its required fee
// (COST_ANSWER) or its actual answer (ANSWER_ONLY).
type QueryResponseType int32

const (
	QueryResponseAnswerOnly QueryResponseType = iota
	QueryResponseCostAnswer
)

// queryBody is implemented by each concrete query kind to contribute
// its request-specific fields and the gRPC method path it calls.
type queryBody interface {
	queryKind() string
	requiresPayment() bool
	encodeRequest(w *wire.Writer)
	rpcMethod() string
}

// Query holds the state shared by every query kind: node selection,
// payment, and request timeout (SPEC_FULL.md §4.E). Concrete kinds
// embed *Query.
type Query struct {
	nodeAccountIDs []AccountID
	payment        *Amount
	maxPayment     *Amount
	requestTimeout time.Duration

	cachedCost *Amount

	kind queryBody
}

func newQuery(kind queryBody) *Query {
	return &Query{kind: kind}
}

// SetNodeAccountIDs restricts which nodes this query may be sent to.
func (q *Query) SetNodeAccountIDs(ids []AccountID) *Query {
	q.nodeAccountIDs = append([]AccountID(nil), ids...)
	return q
}

// SetPayment sets an explicit payment, bypassing automatic
// min(cost, maxPayment) selection.
func (q *Query) SetPayment(amount Amount) *Query {
	q.payment = &amount
	return q
}

// SetMaxQueryPayment overrides the client's default max auto-payment
// for this query.
func (q *Query) SetMaxQueryPayment(amount Amount) *Query {
	q.maxPayment = &amount
	return q
}

// SetRequestTimeout overrides the client's default request timeout for
// this query.
func (q *Query) SetRequestTimeout(d time.Duration) *Query {
	q.requestTimeout = d
	return q
}

func (q *Query) candidateNodes(client *Client) ([]*Node, error) {
	ids := q.nodeAccountIDs
	if len(ids) == 0 {
		nodes := client.Network().Nodes()
		if len(nodes) == 0 {
			return nil, newErr(ErrInvalidArgument, "client network has no nodes", nil)
		}
		limit := defaultNodeSelectionSize
		if len(nodes) < limit {
			limit = len(nodes)
		}
		for i := 0; i < limit; i++ {
			ids = append(ids, nodes[i].AccountID)
		}
	}
	candidates := client.Network().NodesByAccountID(ids)
	if len(candidates) == 0 {
		return nil, newErr(ErrInvalidArgument, "none of the query's node account ids are in the client's network", nil)
	}
	return candidates, nil
}

func (q *Query) timeout(client *Client) time.Duration {
	if q.requestTimeout > 0 {
		return q.requestTimeout
	}
	return client.requestTimeoutDuration()
}

// GetCost issues the query with COST_ANSWER and returns the fee the
// node reports is required for the real answer. The result is cached
// for the life of the query object.
func (q *Query) GetCost(ctx context.Context, client *Client) (Amount, error) {
	if q.cachedCost != nil {
		return *q.cachedCost, nil
	}
	candidates, err := q.candidateNodes(client)
	if err != nil {
		return ZeroAmount, err
	}
	ctx, cancel := context.WithTimeout(ctx, q.timeout(client))
	defer cancel()

	var cost Amount
	_, err = executeWithRetry(ctx, candidates, client.Network().FailureThreshold(), client.Logger(), func(ctx context.Context, node *Node) (Status, error) {
		envelope := q.buildEnvelope(QueryResponseCostAnswer, nil)
		resp, precheck, sErr := client.transport.Submit(ctx, node, q.kind.rpcMethod(), envelope)
		if sErr != nil {
			return precheck, sErr
		}
		cost, _ = decodeQueryCost(resp)
		return precheck, nil
	})
	if err != nil {
		return ZeroAmount, err
	}
	q.cachedCost = &cost
	return cost, nil
}

// Execute runs the query, auto-paying with the client's operator when
// the query kind requires payment and no explicit payment was set.
func (q *Query) Execute(ctx context.Context, client *Client) ([]byte, error) {
	if err := client.checkNotClosed(); err != nil {
		return nil, err
	}
	candidates, err := q.candidateNodes(client)
	if err != nil {
		return nil, err
	}

	var paymentEnvelope []byte
	if q.kind.requiresPayment() {
		payerID, key, ok := client.Operator()
		if !ok {
			return nil, newErr(ErrInvalidArgument, "paid query requires a client operator", nil)
		}
		amount := q.payment
		if amount == nil {
			maxPayment := client.DefaultMaxQueryPayment()
			if q.maxPayment != nil {
				maxPayment = *q.maxPayment
			}
			cost, cErr := q.GetCost(ctx, client)
			if cErr != nil {
				return nil, cErr
			}
			paid := cost
			if cost.Compare(maxPayment) > 0 {
				paid = maxPayment
			}
			amount = &paid
		}

		node := candidates[0]
		transfer := NewTransferTransaction().
			AddHbarTransfer(payerID, negateOrZero(*amount)).
			AddHbarTransfer(node.AccountID, *amount)
		if err := transfer.SetNodeAccountIDs([]AccountID{node.AccountID}); err != nil {
			return nil, err
		}
		if err := transfer.Freeze(client); err != nil {
			return nil, err
		}
		if err := transfer.Sign(key); err != nil {
			return nil, err
		}
		paymentEnvelope = transfer.envelope(node.AccountID)
	}

	ctx, cancel := context.WithTimeout(ctx, q.timeout(client))
	defer cancel()

	var response []byte
	_, err = executeWithRetry(ctx, candidates, client.Network().FailureThreshold(), client.Logger(), func(ctx context.Context, node *Node) (Status, error) {
		envelope := q.buildEnvelope(QueryResponseAnswerOnly, paymentEnvelope)
		resp, precheck, sErr := client.transport.Submit(ctx, node, q.kind.rpcMethod(), envelope)
		if sErr != nil {
			return precheck, sErr
		}
		response = resp
		return precheck, nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func negateOrZero(a Amount) Amount {
	neg, err := a.Negate()
	if err != nil {
		return ZeroAmount
	}
	return neg
}

func (q *Query) buildEnvelope(responseType QueryResponseType, paymentEnvelope []byte) []byte {
	w := wire.NewWriter()
	w.WriteMessage(wire.TagQueryHeader, func(h *wire.Writer) { q.kind.encodeRequest(h) })
	w.WriteVarintEnum(wire.TagQueryResponseType, int32(responseType))
	if len(paymentEnvelope) > 0 {
		w.WriteBytes(wire.TagQueryPayment, paymentEnvelope)
	}
	return w.Bytes()
}

// decodeQueryCost extracts the fee field from a COST_ANSWER response.
// This SDK's minimal response framing puts the fee as the first varint
// field of the response envelope.
func decodeQueryCost(data []byte) (Amount, error) {
	r := wire.NewReader(data)
	if r.Len() == 0 {
		return ZeroAmount, newErr(ErrParse, "empty cost response", nil)
	}
	_, _, err := r.ReadTag()
	if err != nil {
		return ZeroAmount, newErr(ErrParse, "malformed cost response", err)
	}
	v, err := r.ReadVarintI64()
	if err != nil {
		return ZeroAmount, newErr(ErrParse, "malformed cost response fee", err)
	}
	return NewAmountFromTinyunits(v), nil
}
