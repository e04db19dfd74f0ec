package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteVarintU64(1, 300)
	w.WriteVarintI64(2, -42)
	w.WriteVarintBool(3, true)

	r := NewReader(w.Bytes())

	fn, wt, err := r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, uint32(1), fn)
	require.Equal(t, WireVarint, wt)
	v, err := r.ReadVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)

	fn, _, err = r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, uint32(2), fn)
	iv, err := r.ReadVarintI64()
	require.NoError(t, err)
	require.Equal(t, int64(-42), iv)

	fn, _, err = r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, uint32(3), fn)
	bv, err := r.ReadVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(1), bv)
}

func TestBytesAndStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteBytes(1, []byte{1, 2, 3})
	w.WriteString(2, "hello")

	r := NewReader(w.Bytes())
	_, _, _ = r.ReadTag()
	b, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)

	_, _, _ = r.ReadTag()
	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestNestedMessageRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteMessage(1, func(inner *Writer) {
		inner.WriteVarintU64(1, 7)
	})
	r := NewReader(w.Bytes())
	_, _, _ = r.ReadTag()
	nested, err := r.ReadMessage()
	require.NoError(t, err)
	_, _, _ = nested.ReadTag()
	v, err := nested.ReadVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(7), v)
}

func TestCanonicalOutputIsIdempotent(t *testing.T) {
	build := func() []byte {
		w := NewWriter()
		w.WriteVarintU64(1, 5)
		w.WriteString(2, "memo")
		w.WriteMessage(3, func(inner *Writer) {
			inner.WriteVarintU64(1, 1)
			inner.WriteVarintU64(2, 2)
		})
		return w.Bytes()
	}
	require.Equal(t, build(), build())
}

func TestSkipFieldAdvancesPastUnknownField(t *testing.T) {
	w := NewWriter()
	w.WriteVarintU64(99, 123)
	w.WriteVarintU64(1, 1)
	r := NewReader(w.Bytes())
	_, wt, err := r.ReadTag()
	require.NoError(t, err)
	require.NoError(t, r.SkipField(wt))
	fn, _, err := r.ReadTag()
	require.NoError(t, err)
	require.Equal(t, uint32(1), fn)
}

func TestTruncatedInputIsDetected(t *testing.T) {
	r := NewReader([]byte{0x08})
	_, _, err := r.ReadTag()
	require.NoError(t, err)
	_, err = r.ReadVarint()
	require.Error(t, err)
	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	require.Equal(t, "Truncated", wireErr.Kind)
}

func TestNestedTooDeepIsDetected(t *testing.T) {
	build := func(depth int) []byte {
		if depth == 0 {
			w := NewWriter()
			w.WriteVarintU64(1, 1)
			return w.Bytes()
		}
		w := NewWriter()
		w.WriteBytes(1, build(depth-1))
		return w.Bytes()
	}
	r := NewReader(build(MaxNestingDepth + 1))
	var err error
	for i := 0; i < MaxNestingDepth+2; i++ {
		_, _, terr := r.ReadTag()
		if terr != nil {
			err = terr
			break
		}
		var nested *Reader
		nested, err = r.ReadMessage()
		if err != nil {
			break
		}
		r = nested
	}
	require.Error(t, err)
	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	require.Equal(t, "NestedTooDeep", wireErr.Kind)
}

func TestInvalidUtf8Detected(t *testing.T) {
	w := NewWriter()
	w.WriteBytes(1, []byte{0xff, 0xfe})
	r := NewReader(w.Bytes())
	_, _, _ = r.ReadTag()
	_, err := r.ReadString()
	require.Error(t, err)
	var wireErr *Error
	require.ErrorAs(t, err, &wireErr)
	require.Equal(t, "Utf8Invalid", wireErr.Kind)
}
