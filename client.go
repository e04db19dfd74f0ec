package ledgersdk

import (
	"crypto/tls"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

// operator holds the credentials the client signs and pays with by
// default. It is stored behind Client's single mutex and only ever
// read through the narrow accessor below, so a client can be safely
// reconfigured from another goroutine between requests.
type operator struct {
	accountID  AccountID
	privateKey PrivateKey
	set        bool
}

// Client is the entry point for building, signing, and submitting
// transactions and queries against a ledger network (SPEC_FULL.md
// §4.F). It owns a Network (node pool + channel cache), an optional
// default operator, and the shared execution defaults new transactions
// and queries inherit unless overridden.
type Client struct {
	mu sync.RWMutex

	network  *Network
	transport NodeTransport
	ledgerID string

	mirrorNetwork []string

	op operator

	defaultMaxTransactionFee Amount
	defaultMaxQueryPayment   Amount
	requestTimeout           time.Duration

	logger  *zap.Logger
	metrics *clientMetrics

	mirrorConnMu sync.Mutex
	mirrorConn   *grpc.ClientConn

	closed bool
}

// defaultRequestTimeout bounds a single client-level request (covering
// all node/backoff attempts) absent an explicit deadline.
const defaultRequestTimeout = 30 * time.Second

// NewClient constructs a client around an already-populated network.
// Most callers should use ForMainnet, ForTestnet, ForPreviewnet, or
// ForConfigFile instead of calling this directly.
func NewClient(network *Network, ledgerID string) *Client {
	logger := zap.NewNop()
	return &Client{
		network:                  network,
		transport:                newGrpcTransport(network),
		ledgerID:                 ledgerID,
		defaultMaxTransactionFee: NewAmount(1),
		defaultMaxQueryPayment:   NewAmount(1),
		requestTimeout:           defaultRequestTimeout,
		logger:                   logger,
		metrics:                  newClientMetrics(),
	}
}

// SetOperator configures the default paying/signing account for
// transactions and queries that don't set their own.
func (c *Client) SetOperator(accountID AccountID, key PrivateKey) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.op = operator{accountID: accountID, privateKey: key, set: true}
	return c
}

// Operator returns the configured operator account and key, and
// whether one has been set.
func (c *Client) Operator() (AccountID, PrivateKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.op.accountID, c.op.privateKey, c.op.set
}

// SetDefaultMaxTransactionFee overrides the per-transaction maximum fee
// new transactions inherit when they don't set their own.
func (c *Client) SetDefaultMaxTransactionFee(amount Amount) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultMaxTransactionFee = amount
	return c
}

// DefaultMaxTransactionFee returns the currently configured default.
func (c *Client) DefaultMaxTransactionFee() Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultMaxTransactionFee
}

// SetDefaultMaxQueryPayment overrides the per-query maximum
// auto-payment new queries inherit when they don't set their own.
func (c *Client) SetDefaultMaxQueryPayment(amount Amount) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultMaxQueryPayment = amount
	return c
}

// DefaultMaxQueryPayment returns the currently configured default.
func (c *Client) DefaultMaxQueryPayment() Amount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaultMaxQueryPayment
}

// SetRequestTimeout overrides how long a single execute() call (across
// all of its node/backoff attempts) may run.
func (c *Client) SetRequestTimeout(d time.Duration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestTimeout = d
	return c
}

// SetMirrorNetwork configures the mirror node addresses used by
// streaming queries (topic message subscriptions).
func (c *Client) SetMirrorNetwork(addresses []string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mirrorNetwork = append([]string(nil), addresses...)
	return c
}

// MirrorNetwork returns the configured mirror node addresses.
func (c *Client) MirrorNetwork() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.mirrorNetwork...)
}

// LedgerID reports the network identifier used for checksum
// validation of parsed entity ids.
func (c *Client) LedgerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ledgerID
}

// Network exposes the underlying node pool, e.g. so callers can add or
// remove nodes at runtime.
func (c *Client) Network() *Network {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.network
}

// Logger returns the client's structured logger.
func (c *Client) Logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}

// SetLogger replaces the client's structured logger.
func (c *Client) SetLogger(logger *zap.Logger) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Metrics returns the client's prometheus collectors; their Registry
// method exposes them for serving. No request path in this package
// updates these collectors, so they read zero.
func (c *Client) Metrics() *clientMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metrics
}

func (c *Client) requestTimeoutDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.requestTimeout
}

// Close marks the client closed, so further execution is rejected, and
// closes the cached mirror channel and every cached node channel. It
// does not wait for in-flight requests to finish: closing a channel
// cancels any RPC still running on it.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	network := c.network
	c.mu.Unlock()

	c.mirrorConnMu.Lock()
	mirrorConn := c.mirrorConn
	c.mirrorConn = nil
	c.mirrorConnMu.Unlock()
	if mirrorConn != nil {
		if err := mirrorConn.Close(); err != nil {
			return newErr(ErrNode, "error closing mirror channel", err)
		}
	}

	return network.Close()
}

// mirrorChannel returns a cached channel to the first configured mirror
// address, dialing one if none exists yet. Streaming queries (topic
// message subscriptions) run against the mirror plane rather than the
// consensus node pool, so they don't go through Network.Channel.
func (c *Client) mirrorChannel() (*grpc.ClientConn, error) {
	c.mirrorConnMu.Lock()
	defer c.mirrorConnMu.Unlock()

	if c.mirrorConn != nil {
		return c.mirrorConn, nil
	}

	addresses := c.MirrorNetwork()
	if len(addresses) == 0 {
		return nil, newErr(ErrInvalidArgument, "client has no mirror network configured", nil)
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, NextProtos: []string{"h2"}}
	conn, err := grpc.NewClient(addresses[0], grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	if err != nil {
		return nil, newErr(ErrNode, "failed to dial mirror node "+addresses[0], err)
	}
	c.mirrorConn = conn
	return conn, nil
}

func (c *Client) checkNotClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return newErr(ErrClosed, "client is closed", nil)
	}
	return nil
}
