// Package record implements the STC (structure) codec: a fixed, declared-
// order member list written with an explicit member count that the reader
// verifies against its own declaration.
package record

import (
	"unsafe"

	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/wire"
)

// Member is one declared field of a record: its encoder and decoder closed
// over the field's storage. The caller builds a []Member in field order; the
// record codec never reorders or names members, it only counts them.
type Member struct {
	Encode func(codec.Writer) error
	Decode func(codec.Reader) error
}

// Members is the ordered member list for one record value, built once per
// Encode/Decode call by the caller (typically a generated or hand-written
// accessor function for a concrete struct type).
type Members []Member

// Encode writes STC | u64 member_count | member_count × member-encoding.
func Encode(w codec.Writer, members Members) error {
	if err := w.WriteByte(byte(wire.Structure)); err != nil {
		return err
	}

	if err := codec.EncodeRawUint64(w, uint64(len(members))); err != nil {
		return err
	}

	for _, m := range members {
		if err := m.Encode(w); err != nil {
			return err
		}
	}

	return nil
}

// Decode reads an STC envelope and requires its wire member count to equal
// len(members) exactly; a mismatch is InvalidMemberCount. Members are
// consumed in declared order into the closures built by the caller.
func Decode(r codec.Reader, members Members) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}

	if wire.Prefix(b) != wire.Structure {
		return errs.ErrUnexpectedEncodingType
	}

	n, err := codec.DecodeRawUint64(r)
	if err != nil {
		return err
	}

	if int(n) != len(members) {
		return errs.ErrInvalidMemberCount
	}

	for _, m := range members {
		if err := m.Decode(r); err != nil {
			return err
		}
	}

	return nil
}

// IsValueWrapper reports whether a one-member record should unwrap
// transparently on the wire: a record declaring exactly one member encodes
// and decodes as that member's own encoding with no STC envelope at all,
// per the fungibility rule treating single-field wrapper structs as
// interchangeable with their bare field type.
func IsValueWrapper(members Members) bool {
	return len(members) == 1
}

// EncodeValueWrapper writes a single-member record's unwrapped form: just
// the member's own encoding, no STC prefix or count.
func EncodeValueWrapper(w codec.Writer, members Members) error {
	return members[0].Encode(w)
}

// DecodeValueWrapper reads a single-member record's unwrapped form.
func DecodeValueWrapper(r codec.Reader, members Members) error {
	return members[0].Decode(r)
}

// BufferPair is a logical buffer pair: fixed-capacity storage paired with a
// runtime Length <= Capacity. It is the record-codec representation of a
// declared (storage[N], length) member, encoded as an array/binary shape of
// exactly Length elements rather than the full backing storage. Go has no
// const-generic array size, so Capacity is a runtime field the caller sets
// once at construction (typically len(Storage)) rather than a type
// parameter.
type BufferPair[T any] struct {
	Storage  []T
	Length   int
	Capacity int
}

// NewBufferPair builds a BufferPair backed by storage of the given
// capacity.
func NewBufferPair[T any](capacity int) *BufferPair[T] {
	return &BufferPair[T]{Storage: make([]T, capacity), Capacity: capacity}
}

// checkLength enforces Length <= Capacity on both encode and decode.
func checkLength[T any](bp *BufferPair[T]) error {
	if bp.Length < 0 || bp.Length > bp.Capacity {
		return errs.ErrInvalidContainerLength
	}

	return nil
}

// Elements returns the active (length-bounded) slice view of Storage.
func (bp *BufferPair[T]) Elements() []T {
	return bp.Storage[:bp.Length]
}

// EncodeElements writes the pair's active elements, after verifying
// Length <= Capacity. An element type whose in-memory size is exactly one
// byte (byte, uint8, int8, ...) uses the binary shape, writing the active
// elements as a single raw byte run instead of one prefixed array element
// per byte; every other element type uses the array shape via encodeElem.
func EncodeElements[T any](w codec.Writer, bp *BufferPair[T], encodeElem func(codec.Writer, T) error) error {
	if err := checkLength(bp); err != nil {
		return err
	}

	var zero T
	if unsafe.Sizeof(zero) == 1 {
		var data []byte
		if bp.Length > 0 {
			data = unsafe.Slice((*byte)(unsafe.Pointer(&bp.Storage[0])), bp.Length)
		}

		return codec.EncodeBinary(w, data)
	}

	return codec.EncodeArray(w, bp.Length, func(w codec.Writer, i int) error {
		return encodeElem(w, bp.Storage[i])
	})
}

// DecodeElements reads the pair's active elements into storage, rejecting a
// wire length that exceeds Capacity. It mirrors EncodeElements' shape
// choice: a one-byte element type is read back via the binary shape, every
// other element type via the array shape using decodeElem.
func DecodeElements[T any](r codec.Reader, bp *BufferPair[T], decodeElem func(codec.Reader) (T, error)) error {
	var zero T
	if unsafe.Sizeof(zero) == 1 {
		data, err := codec.DecodeBinary(r)
		if err != nil {
			return err
		}

		if len(data) > bp.Capacity {
			return errs.ErrInvalidContainerLength
		}

		for i, b := range data {
			bp.Storage[i] = *(*T)(unsafe.Pointer(&b))
		}

		bp.Length = len(data)

		return nil
	}

	n, err := codec.DecodeArrayHeader(r)
	if err != nil {
		return err
	}

	if n > bp.Capacity {
		return errs.ErrInvalidContainerLength
	}

	for i := 0; i < n; i++ {
		v, err := decodeElem(r)
		if err != nil {
			return err
		}

		bp.Storage[i] = v
	}

	bp.Length = n

	return nil
}
