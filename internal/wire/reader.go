package wire

import (
	"encoding/binary"
	"unicode/utf8"
)

// Reader parses tag/length/varint input. It borrows slices from the
// underlying buffer rather than copying, so the returned []byte from
// ReadBytes is only valid for the lifetime of buf.
type Reader struct {
	buf   []byte
	pos   int
	depth int
}

// NewReader wraps buf for reading.
func NewReader(buf []byte) *Reader { return &Reader{buf: buf} }

// Len reports the number of unread bytes.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

func (r *Reader) getUvarint() (uint64, error) {
	v, n := binary.Uvarint(r.buf[r.pos:])
	if n == 0 {
		return 0, errTruncated("varint ran past end of buffer")
	}
	if n < 0 {
		return 0, errVarintOverflow("varint exceeds 64 bits")
	}
	r.pos += n
	return v, nil
}

// ReadTag reads the next field tag, returning its field number and wire type.
func (r *Reader) ReadTag() (uint32, WireType, error) {
	v, err := r.getUvarint()
	if err != nil {
		return 0, 0, err
	}
	wt := WireType(v & 0x7)
	switch wt {
	case WireVarint, WireFixed64, WireLengthDelim, WireFixed32:
	default:
		return 0, 0, errInvalidWireType("unrecognized wire type")
	}
	return uint32(v >> 3), wt, nil
}

// ReadVarint reads a raw unsigned varint value.
func (r *Reader) ReadVarint() (uint64, error) {
	return r.getUvarint()
}

// ReadVarintI64 reads a zigzag-encoded signed varint value.
func (r *Reader) ReadVarintI64() (int64, error) {
	v, err := r.getUvarint()
	if err != nil {
		return 0, err
	}
	return zigzagDecode(v), nil
}

// ReadSfixed32 reads a little-endian fixed 32-bit value.
func (r *Reader) ReadSfixed32() (int32, error) {
	if r.Len() < 4 {
		return 0, errTruncated("fixed32 ran past end of buffer")
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return int32(v), nil
}

// ReadSfixed64 reads a little-endian fixed 64-bit value.
func (r *Reader) ReadSfixed64() (int64, error) {
	if r.Len() < 8 {
		return 0, errTruncated("fixed64 ran past end of buffer")
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return int64(v), nil
}

// ReadBytes reads a length-delimited byte field, returning a slice
// borrowed from the underlying buffer.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.getUvarint()
	if err != nil {
		return nil, err
	}
	if uint64(r.Len()) < n {
		return nil, errTruncated("length-delimited field ran past end of buffer")
	}
	out := r.buf[r.pos : r.pos+int(n)]
	r.pos += int(n)
	return out, nil
}

// ReadString reads a length-delimited UTF-8 string field.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errUtf8Invalid("string field is not valid UTF-8")
	}
	return string(b), nil
}

// ReadMessage reads a length-delimited nested message and returns a
// sub-Reader over its bytes, enforcing the bounded recursion depth.
func (r *Reader) ReadMessage() (*Reader, error) {
	if r.depth+1 > MaxNestingDepth {
		return nil, errNestedTooDeep("message nesting exceeds maximum depth")
	}
	b, err := r.ReadBytes()
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, depth: r.depth + 1}, nil
}

// SkipField advances past a field's value given its wire type, without
// interpreting it; used for preserving/ignoring unknown fields.
func (r *Reader) SkipField(wt WireType) error {
	switch wt {
	case WireVarint:
		_, err := r.getUvarint()
		return err
	case WireFixed64:
		_, err := r.ReadSfixed64()
		return err
	case WireLengthDelim:
		_, err := r.ReadBytes()
		return err
	case WireFixed32:
		_, err := r.ReadSfixed32()
		return err
	default:
		return errInvalidWireType("cannot skip unrecognized wire type")
	}
}
