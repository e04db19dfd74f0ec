package wire

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// RawCodecName is registered with grpc's encoding registry so the
// client/network runtime (SPEC_FULL.md §4.F) can invoke node RPCs with
// already-encoded SDK wire bytes instead of a generated protobuf
// message type. Every SDK request/response is a []byte produced by
// internal/wire; there is no protoc-generated .pb.go in this module.
const RawCodecName = "ledgersdk-raw"

type rawCodec struct{}

func (rawCodec) Name() string { return RawCodecName }

func (rawCodec) Marshal(v any) ([]byte, error) {
	b, ok := v.(*[]byte)
	if ok {
		return *b, nil
	}
	bb, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("ledgersdk raw codec: expected []byte, got %T", v)
	}
	return bb, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	b, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("ledgersdk raw codec: expected *[]byte, got %T", v)
	}
	*b = append((*b)[:0], data...)
	return nil
}

func init() {
	encoding.RegisterCodec(rawCodec{})
}
