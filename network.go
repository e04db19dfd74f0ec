package ledgersdk

import (
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// defaultMaxBackoff bounds per-node health backoff (SPEC_FULL.md §4.F).
const defaultMaxBackoff = 8 * time.Second

// defaultFailureThreshold is the consecutive-failure count after which a
// node is skipped for selection until it recovers.
const defaultFailureThreshold = 5

// Network owns the pool of consensus nodes, per-node health tracking,
// and the cache of secure gRPC channels to them.
type Network struct {
	mu               sync.RWMutex
	nodes            []*Node
	failureThreshold int
	maxBackoff       time.Duration
	insecureChannel  bool // test/local networks only; never set by the ledger presets

	connMu sync.Mutex
	conns  map[string]*grpc.ClientConn

	logger *zap.Logger
}

// NewNetwork constructs an empty network; nodes are added with
// AddNode. The presets in presets.go populate a Network for each
// well-known ledger.
func NewNetwork(logger *zap.Logger) *Network {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Network{
		failureThreshold: defaultFailureThreshold,
		maxBackoff:       defaultMaxBackoff,
		conns:            make(map[string]*grpc.ClientConn),
		logger:           logger,
	}
}

// AddNode registers a node in the pool.
func (n *Network) AddNode(node *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nodes = append(n.nodes, node)
}

// Nodes returns a snapshot of every registered node, healthy or not.
func (n *Network) Nodes() []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]*Node(nil), n.nodes...)
}

// SelectionOrder returns every registered node shuffled with the given
// seed and filtered to currently-healthy nodes first, unhealthy nodes
// appended last as a fallback so a fully-degraded network still
// attempts delivery (SPEC_FULL.md §4.F).
func (n *Network) SelectionOrder(seed int64) []*Node {
	n.mu.RLock()
	all := append([]*Node(nil), n.nodes...)
	threshold := n.failureThreshold
	n.mu.RUnlock()
	return shuffleHealthyFirst(all, threshold, seed)
}

// NodesByAccountID looks up the registered *Node for each id, in the
// same order, silently skipping ids the network doesn't know about.
func (n *Network) NodesByAccountID(ids []AccountID) []*Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Node, 0, len(ids))
	for _, id := range ids {
		for _, node := range n.nodes {
			if node.AccountID.Equal(id) {
				out = append(out, node)
				break
			}
		}
	}
	return out
}

// FailureThreshold returns the consecutive-failure count after which a
// node is treated as unhealthy.
func (n *Network) FailureThreshold() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.failureThreshold
}

// shuffleHealthyFirst orders nodes randomly (seeded, so a single
// execution attempt is reproducible for tests) with healthy nodes
// ahead of unhealthy ones.
func shuffleHealthyFirst(nodes []*Node, threshold int, seed int64) []*Node {
	all := append([]*Node(nil), nodes...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	healthy := make([]*Node, 0, len(all))
	unhealthy := make([]*Node, 0)
	for _, node := range all {
		if node.Healthy(threshold) {
			healthy = append(healthy, node)
		} else {
			unhealthy = append(unhealthy, node)
		}
	}
	return append(healthy, unhealthy...)
}

// Channel returns a cached secure gRPC channel to node, dialing one if
// none exists yet. Channels use TLS 1.2+ with ALPN "h2"; a cert hash
// pin is enforced via VerifyPeerCertificate when the node carries one.
// SetInsecure (test-only) swaps in plaintext credentials.
func (n *Network) Channel(node *Node) (*grpc.ClientConn, error) {
	n.connMu.Lock()
	defer n.connMu.Unlock()

	if conn, ok := n.conns[node.Address]; ok {
		return conn, nil
	}

	var dialOpts []grpc.DialOption
	if n.insecureChannel {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		tlsConfig := &tls.Config{
			MinVersion: tls.VersionTLS12,
			NextProtos: []string{"h2"},
		}
		if len(node.CertHash) > 0 {
			tlsConfig.InsecureSkipVerify = true
			expected := node.CertHash
			tlsConfig.VerifyPeerCertificate = func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
				return verifyCertHash(rawCerts, expected)
			}
		}
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
	}

	conn, err := grpc.NewClient(node.Address, dialOpts...)
	if err != nil {
		return nil, newErr(ErrNode, "failed to dial node "+node.Address, err)
	}
	n.conns[node.Address] = conn
	n.logger.Debug("dialed node channel", zap.String("address", node.Address), zap.String("node_account", node.AccountID.String()))
	return conn, nil
}

// SetInsecure switches all future channel dials to plaintext. Intended
// for tests against a local stub server; never used by the mainnet,
// testnet, or previewnet presets.
func (n *Network) SetInsecure(insecure bool) {
	n.connMu.Lock()
	defer n.connMu.Unlock()
	n.insecureChannel = insecure
}

// Close tears down every cached channel.
func (n *Network) Close() error {
	n.connMu.Lock()
	defer n.connMu.Unlock()
	var errs []error
	for addr, conn := range n.conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(n.conns, addr)
	}
	if len(errs) > 0 {
		var combined error
		for _, e := range errs {
			combined = multierr.Append(combined, e)
		}
		return newErr(ErrNode, "error(s) closing node channels", combined)
	}
	return nil
}

// verifyCertHash checks the leaf certificate's SHA-256 fingerprint
// against the pinned hash configured on the node, bypassing normal CA
// chain verification (used for nodes identified by certificate hash
// rather than a public CA, per SPEC_FULL.md §4.F).
func verifyCertHash(rawCerts [][]byte, expected []byte) error {
	if len(rawCerts) == 0 {
		return newErr(ErrNode, "no certificate presented by node", nil)
	}
	sum := sha256.Sum256(rawCerts[0])
	if len(expected) != len(sum) {
		return newErr(ErrNode, "unexpected cert hash length", nil)
	}
	for i := range sum {
		if sum[i] != expected[i] {
			return newErr(ErrNode, "node certificate hash mismatch", nil)
		}
	}
	return nil
}
