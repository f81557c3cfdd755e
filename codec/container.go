package codec

import (
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/wire"
)

// EncodeBinary writes a raw byte buffer using the binary shape: BIN prefix,
// u64 length, raw bytes. Strings and 1-byte-element sequences reuse this
// shape rather than the general array shape.
func EncodeBinary(w Writer, p []byte) error {
	if err := w.WriteByte(byte(wire.Binary)); err != nil {
		return err
	}

	if err := EncodeRawUint64(w, uint64(len(p))); err != nil {
		return err
	}

	if err := w.Prepare(len(p)); err != nil {
		return err
	}

	return w.Write(p)
}

// DecodeBinary reads a byte buffer written by EncodeBinary. It calls
// Ensure(n) before the bulk read so a maliciously large length prefix fails
// fast instead of forcing an oversized allocation.
func DecodeBinary(r Reader) ([]byte, error) {
	p, err := readPrefix(r)
	if err != nil {
		return nil, err
	}

	if p != wire.Binary {
		return nil, errs.ErrUnexpectedEncodingType
	}

	n, err := DecodeRawUint64(r)
	if err != nil {
		return nil, err
	}

	if err := r.Ensure(int(n)); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	if err := r.Read(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// EncodeString writes a string using the binary-shaped STR framing: STR
// prefix, u64 byte length, raw UTF-8 bytes.
func EncodeString(w Writer, s string) error {
	if err := w.WriteByte(byte(wire.String)); err != nil {
		return err
	}

	if err := EncodeRawUint64(w, uint64(len(s))); err != nil {
		return err
	}

	if err := w.Prepare(len(s)); err != nil {
		return err
	}

	return w.Write([]byte(s))
}

// DecodeString reads a string written by EncodeString.
func DecodeString(r Reader) (string, error) {
	p, err := readPrefix(r)
	if err != nil {
		return "", err
	}

	if p != wire.String {
		return "", errs.ErrUnexpectedEncodingType
	}

	n, err := DecodeRawUint64(r)
	if err != nil {
		return "", err
	}

	if err := r.Ensure(int(n)); err != nil {
		return "", err
	}

	buf := make([]byte, n)
	if err := r.Read(buf); err != nil {
		return "", err
	}

	return string(buf), nil
}

// EncodeArray writes count, then calls encodeElem for each of the n
// elements the caller has already arranged to iterate; it is the shape used
// by every typed sequence, set, fixed array, pair, and tuple whose elements
// are not 1-byte integers.
func EncodeArray(w Writer, n int, encodeElem func(Writer, int) error) error {
	if err := w.WriteByte(byte(wire.Array)); err != nil {
		return err
	}

	if err := EncodeRawUint64(w, uint64(n)); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if err := encodeElem(w, i); err != nil {
			return err
		}
	}

	return nil
}

// DecodeArrayHeader reads the ARY prefix and count, returning the count for
// the caller to iterate with its own element decoder. Fixed-size containers
// (fixed arrays, tuples, pairs) should compare the returned count against
// their static arity and return InvalidContainerLength on mismatch.
func DecodeArrayHeader(r Reader) (int, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p != wire.Array {
		return 0, errs.ErrUnexpectedEncodingType
	}

	n, err := DecodeRawUint64(r)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// DecodeArray reads an ARY container of unknown arity, invoking decodeElem
// once per element in order.
func DecodeArray(r Reader, decodeElem func(Reader, int) error) error {
	n, err := DecodeArrayHeader(r)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if err := decodeElem(r, i); err != nil {
			return err
		}
	}

	return nil
}

// DecodeFixedArray reads an ARY container and requires its count to equal
// want exactly; a mismatch is InvalidContainerLength, matching a fixed
// array, tuple, or pair whose arity is declared statically.
func DecodeFixedArray(r Reader, want int, decodeElem func(Reader, int) error) error {
	n, err := DecodeArrayHeader(r)
	if err != nil {
		return err
	}

	if n != want {
		return errs.ErrInvalidContainerLength
	}

	for i := 0; i < n; i++ {
		if err := decodeElem(r, i); err != nil {
			return err
		}
	}

	return nil
}

// EncodeMap writes count, then calls encodeEntry once per entry; entries
// must write a key-encoding immediately followed by a value-encoding.
func EncodeMap(w Writer, n int, encodeEntry func(Writer, int) error) error {
	if err := w.WriteByte(byte(wire.Map)); err != nil {
		return err
	}

	if err := EncodeRawUint64(w, uint64(n)); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if err := encodeEntry(w, i); err != nil {
			return err
		}
	}

	return nil
}

// DecodeMap reads a MAP container, invoking decodeEntry once per entry.
// decodeEntry is responsible for reading one key-encoding followed by one
// value-encoding; duplicate keys are not deduplicated by the codec, per
// spec, the caller's container decides insertion semantics.
func DecodeMap(r Reader, decodeEntry func(Reader, int) error) error {
	p, err := readPrefix(r)
	if err != nil {
		return err
	}

	if p != wire.Map {
		return errs.ErrUnexpectedEncodingType
	}

	n, err := DecodeRawUint64(r)
	if err != nil {
		return err
	}

	for i := 0; i < int(n); i++ {
		if err := decodeEntry(r, i); err != nil {
			return err
		}
	}

	return nil
}
