package wire

import "encoding/binary"

// Writer accumulates canonical tag/length/varint output. Fields must be
// written in ascending tag order by the caller; Writer itself does not
// reorder, since the canonical ordering invariant (SPEC_FULL.md §4.B)
// is a property of call order, not of buffering.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated canonical output.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) putUvarint(v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	w.buf = append(w.buf, tmp[:n]...)
}

// WriteVarintU64 writes an unsigned varint field.
func (w *Writer) WriteVarintU64(fieldNumber uint32, v uint64) {
	w.putUvarint(tag(fieldNumber, WireVarint))
	w.putUvarint(v)
}

// WriteVarintI64 writes a signed varint field using zigzag encoding.
func (w *Writer) WriteVarintI64(fieldNumber uint32, v int64) {
	w.putUvarint(tag(fieldNumber, WireVarint))
	w.putUvarint(zigzagEncode(v))
}

// WriteVarintBool writes a boolean as a 0/1 varint.
func (w *Writer) WriteVarintBool(fieldNumber uint32, v bool) {
	w.putUvarint(tag(fieldNumber, WireVarint))
	if v {
		w.putUvarint(1)
	} else {
		w.putUvarint(0)
	}
}

// WriteVarintEnum writes an enum ordinal as an unsigned varint.
func (w *Writer) WriteVarintEnum(fieldNumber uint32, v int32) {
	w.putUvarint(tag(fieldNumber, WireVarint))
	w.putUvarint(uint64(uint32(v)))
}

// WriteSfixed32 writes a fixed-width 32-bit field, little-endian.
func (w *Writer) WriteSfixed32(fieldNumber uint32, v int32) {
	w.putUvarint(tag(fieldNumber, WireFixed32))
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	w.buf = append(w.buf, tmp[:]...)
}

// WriteSfixed64 writes a fixed-width 64-bit field, little-endian.
func (w *Writer) WriteSfixed64(fieldNumber uint32, v int64) {
	w.putUvarint(tag(fieldNumber, WireFixed64))
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	w.buf = append(w.buf, tmp[:]...)
}

// WriteBytes writes a length-delimited byte field.
func (w *Writer) WriteBytes(fieldNumber uint32, v []byte) {
	w.putUvarint(tag(fieldNumber, WireLengthDelim))
	w.putUvarint(uint64(len(v)))
	w.buf = append(w.buf, v...)
}

// WriteString writes a length-delimited UTF-8 string field.
func (w *Writer) WriteString(fieldNumber uint32, v string) {
	w.WriteBytes(fieldNumber, []byte(v))
}

// WriteMessage buffers the nested message produced by fn into a
// temporary Writer so its length can be computed before being emitted
// length-delimited under fieldNumber.
func (w *Writer) WriteMessage(fieldNumber uint32, fn func(*Writer)) {
	nested := NewWriter()
	fn(nested)
	w.WriteBytes(fieldNumber, nested.Bytes())
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
