package ledgersdk

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// maxExecuteAttempts bounds the combined node-iteration/backoff loop
// shared by transaction submission and query execution (SPEC_FULL.md
// §4.D): 10 attempts, unless the caller's context deadline is reached
// first.
const maxExecuteAttempts = 10

// attemptFunc performs one request against node and reports the
// precheck/response status the node returned. A non-nil err means the
// request itself failed (transport-level); the node is marked
// unhealthy and the next node is tried.
type attemptFunc func(ctx context.Context, node *Node) (Status, error)

// executeWithRetry drives attemptFunc across candidates, honoring each
// returned status's disposition: success stops immediately,
// retry-same-node backs off exponentially (250ms start, doubling, 8s
// cap, ±10% jitter) before retrying the same node, retry-next-node
// advances to the next node without backoff, and fatal stops with an
// error. Transport failures mark the node unhealthy, then wait one
// backoff interval before advancing to the next node.
func executeWithRetry(ctx context.Context, candidates []*Node, threshold int, logger *zap.Logger, fn attemptFunc) (Status, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	order := shuffleHealthyFirst(candidates, threshold, time.Now().UnixNano())
	if len(order) == 0 {
		return StatusUnknown, newErr(ErrNode, "no candidate nodes available", nil)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 8 * time.Second
	bo.Multiplier = 2
	bo.RandomizationFactor = 0.1
	bo.MaxElapsedTime = 0

	var lastErr error
	var lastStatus Status
	nodeIdx := 0

	for attempt := 0; attempt < maxExecuteAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return lastStatus, newErr(ErrTimedOut, "execution context expired", ctx.Err())
		default:
		}

		node := order[nodeIdx%len(order)]
		status, err := fn(ctx, node)
		lastStatus, lastErr = status, err

		if err != nil {
			node.MarkUnhealthy(defaultMaxBackoff)
			logger.Warn("node request failed", zap.String("node", node.Address), zap.Error(err), zap.Int("attempt", attempt))
			nodeIdx++
			if waitErr := sleepCtx(ctx, bo.NextBackOff()); waitErr != nil {
				return lastStatus, newErr(ErrTimedOut, "execution context expired during backoff", waitErr)
			}
			continue
		}

		switch status.disposition() {
		case dispositionSuccess:
			node.MarkSuccess()
			return status, nil
		case dispositionRetrySameNode:
			logger.Debug("retrying same node", zap.String("node", node.Address), zap.Stringer("status", status))
			if waitErr := sleepCtx(ctx, bo.NextBackOff()); waitErr != nil {
				return lastStatus, newErr(ErrTimedOut, "execution context expired during backoff", waitErr)
			}
			continue
		case dispositionRetryNextNode:
			node.MarkUnhealthy(defaultMaxBackoff)
			nodeIdx++
			continue
		default:
			node.MarkSuccess()
			return status, newFatal(status, "request failed with status "+status.String())
		}
	}

	return lastStatus, newErr(ErrTimedOut, "exceeded maximum attempts without a terminal status", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
