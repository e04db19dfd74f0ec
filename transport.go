package ledgersdk

import (
	"context"

	"google.golang.org/grpc"

	_ "github.com/withObsrvr/ledger-sdk/internal/wire" // registers the raw codec
)

// NodeTransport is the boundary the execution framework calls to send
// an already wire-encoded request to a node and get back its raw
// response bytes plus the precheck status carried in the envelope.
// Production clients use grpcTransport; tests substitute a stub that
// never touches the network.
type NodeTransport interface {
	Submit(ctx context.Context, node *Node, method string, body []byte) (response []byte, precheck Status, err error)
}

// grpcTransport invokes a unary RPC against a node's cached channel
// using the SDK's own wire-encoded bytes as both request and response,
// via the raw pass-through codec registered in internal/wire.
type grpcTransport struct {
	network *Network
}

func newGrpcTransport(network *Network) *grpcTransport {
	return &grpcTransport{network: network}
}

func (t *grpcTransport) Submit(ctx context.Context, node *Node, method string, body []byte) ([]byte, Status, error) {
	conn, err := t.network.Channel(node)
	if err != nil {
		return nil, StatusUnknown, err
	}
	var resp []byte
	if err := conn.Invoke(ctx, method, body, &resp, grpc.CallContentSubtype("ledgersdk-raw")); err != nil {
		return nil, StatusUnknown, newErr(ErrTransient, "rpc to node "+node.Address+" failed", err)
	}
	// The precheck status is the first byte of the envelope in this
	// SDK's minimal response framing: callers needing the full receipt
	// or record decode resp themselves with internal/wire.
	if len(resp) == 0 {
		return resp, StatusUnknown, nil
	}
	return resp, StatusFromWire(int32(resp[0])), nil
}
