package codec

import (
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/wire"
)

// EncodeOptional writes NIL when present is false, otherwise delegates
// directly to encodeValue with no extra wrapping: the inner encoding's own
// prefix is what distinguishes presence on the wire.
func EncodeOptional(w Writer, present bool, encodeValue func(Writer) error) error {
	if !present {
		return w.WriteByte(byte(wire.Nil))
	}

	return encodeValue(w)
}

// DecodeOptional peeks the next prefix: NIL means empty, anything else is
// handed to decodeValue together with the already-read prefix via peeked.
// peeked lets decodeValue avoid re-reading a prefix byte that has already
// been consumed to distinguish NIL from a present value.
func DecodeOptional(r Reader, decodeValue func(Reader, wire.Prefix) error) (present bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}

	p := wire.Prefix(b)
	if p == wire.Nil {
		return false, nil
	}

	if p.IsReserved() {
		return false, errs.ErrUnexpectedEncodingType
	}

	if err := decodeValue(r, p); err != nil {
		return false, err
	}

	return true, nil
}

// EncodeResult writes the inner T's encoding when ok is true, otherwise
// writes ERR followed by the error value E's encoding.
func EncodeResult(w Writer, ok bool, encodeValue, encodeErr func(Writer) error) error {
	if ok {
		return encodeValue(w)
	}

	if err := w.WriteByte(byte(wire.ErrorKind)); err != nil {
		return err
	}

	return encodeErr(w)
}

// DecodeResult peeks the next prefix: ERR means the error branch, decoded
// via decodeErr; anything else is the value branch, handed to decodeValue
// together with the peeked prefix.
func DecodeResult(r Reader, decodeValue func(Reader, wire.Prefix) error, decodeErr func(Reader) error) (ok bool, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}

	p := wire.Prefix(b)
	if p == wire.ErrorKind {
		if err := decodeErr(r); err != nil {
			return false, err
		}

		return false, nil
	}

	if p.IsReserved() {
		return false, errs.ErrUnexpectedEncodingType
	}

	if err := decodeValue(r, p); err != nil {
		return false, err
	}

	return true, nil
}

// EncodeVariant writes VAR | i32 index | encoding of the active alternative.
// index -1 denotes the explicit empty state, whose payload is NIL;
// encodeActive is not called in that case.
func EncodeVariant(w Writer, index int32, encodeActive func(Writer) error) error {
	if err := w.WriteByte(byte(wire.Variant)); err != nil {
		return err
	}

	if err := EncodeRawInt32(w, index); err != nil {
		return err
	}

	if index == -1 {
		return w.WriteByte(byte(wire.Nil))
	}

	return encodeActive(w)
}

// DecodeVariant reads a VAR envelope and returns its index. n is the
// declared arity (number of alternatives); an index outside [-1, n) is
// UnexpectedVariantType. decodeActive is invoked with the index for every
// non-empty case so the caller can dispatch to the matching alternative's
// decoder; for the empty case the caller should just discard the NIL byte,
// which this function does on the caller's behalf.
func DecodeVariant(r Reader, n int, decodeActive func(Reader, int32) error) (index int32, err error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p != wire.Variant {
		return 0, errs.ErrUnexpectedEncodingType
	}

	index, err = DecodeRawInt32(r)
	if err != nil {
		return 0, err
	}

	if index < -1 || index >= int32(n) {
		return 0, errs.ErrUnexpectedVariantType
	}

	if index == -1 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}

		if wire.Prefix(b) != wire.Nil {
			return 0, errs.ErrUnexpectedEncodingType
		}

		return -1, nil
	}

	if err := decodeActive(r, index); err != nil {
		return 0, err
	}

	return index, nil
}
