package record

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/ioadapter"
)

type point struct {
	X, Y int32
}

func pointMembers(p *point) Members {
	return Members{
		{
			Encode: func(w codec.Writer) error { return codec.EncodeInt32(w, p.X) },
			Decode: func(r codec.Reader) error { v, err := codec.DecodeInt32(r); p.X = v; return err },
		},
		{
			Encode: func(w codec.Writer) error { return codec.EncodeInt32(w, p.Y) },
			Decode: func(r codec.Reader) error { v, err := codec.DecodeInt32(r); p.Y = v; return err },
		},
	}
}

func TestRecordRoundtrip(t *testing.T) {
	src := &point{X: 1, Y: -2}

	buf := ioadapter.NewBuffer(32)
	require.NoError(t, Encode(buf, pointMembers(src)))

	dst := &point{}
	require.NoError(t, Decode(buf.AsReader(), pointMembers(dst)))
	require.Equal(t, src, dst)
}

func TestRecordMemberCountMismatch(t *testing.T) {
	src := &point{X: 1, Y: 2}

	buf := ioadapter.NewBuffer(32)
	require.NoError(t, Encode(buf, pointMembers(src)))

	dst := &point{}
	err := Decode(buf.AsReader(), pointMembers(dst)[:1])
	require.ErrorIs(t, err, errs.ErrInvalidMemberCount)
}

func TestValueWrapperUnwraps(t *testing.T) {
	var v int32 = 9
	members := Members{{
		Encode: func(w codec.Writer) error { return codec.EncodeInt32(w, v) },
		Decode: func(r codec.Reader) error { n, err := codec.DecodeInt32(r); v = n; return err },
	}}

	require.True(t, IsValueWrapper(members))

	buf := ioadapter.NewBuffer(8)
	require.NoError(t, EncodeValueWrapper(buf, members))

	// Unwrapped form is exactly the inner int32 encoding: no STC prefix.
	got, err := codec.DecodeInt32(buf.AsReader())
	require.NoError(t, err)
	require.Equal(t, int32(9), got)
}

func TestBufferPairLengthEnforced(t *testing.T) {
	bp := NewBufferPair[int32](3)
	bp.Storage[0], bp.Storage[1] = 10, 20
	bp.Length = 2

	buf := ioadapter.NewBuffer(32)
	err := EncodeElements(buf, bp, func(w codec.Writer, v int32) error {
		return codec.EncodeInt32(w, v)
	})
	require.NoError(t, err)

	dst := NewBufferPair[int32](3)
	err = DecodeElements(buf.AsReader(), dst, func(r codec.Reader) (int32, error) {
		return codec.DecodeInt32(r)
	})
	require.NoError(t, err)
	require.Equal(t, []int32{10, 20}, dst.Elements())
}

func TestBufferPairRejectsOverLength(t *testing.T) {
	bp := NewBufferPair[int32](1)
	bp.Length = 5 // exceeds Capacity

	buf := ioadapter.NewBuffer(32)
	err := EncodeElements(buf, bp, func(w codec.Writer, v int32) error {
		return codec.EncodeInt32(w, v)
	})
	require.ErrorIs(t, err, errs.ErrInvalidContainerLength)
}
