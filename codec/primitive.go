package codec

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/wire"
)

func readPrefix(r Reader) (wire.Prefix, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	p := wire.Prefix(b)
	if p.IsReserved() {
		return 0, errs.ErrUnexpectedEncodingType
	}

	return p, nil
}

// EncodeBool writes a boolean as the inline False/True prefix byte.
func EncodeBool(w Writer, v bool) error {
	if v {
		return w.WriteByte(byte(wire.True))
	}

	return w.WriteByte(byte(wire.False))
}

// DecodeBool reads a boolean. Any prefix in bool's match set (the inline
// 0x00/0x01 bytes only) is accepted; the declared target type is what
// disambiguates 0x00 from "positive fixint zero" elsewhere in the format.
func DecodeBool(r Reader) (bool, error) {
	p, err := readPrefix(r)
	if err != nil {
		return false, err
	}

	switch p {
	case wire.False:
		return false, nil
	case wire.True:
		return true, nil
	default:
		return false, errs.ErrUnexpectedEncodingType
	}
}

// EncodeUint8 writes the smallest representation of v: inline if v <= 127,
// otherwise U8.
func EncodeUint8(w Writer, v uint8) error {
	if v < 1<<7 {
		return w.WriteByte(byte(v))
	}

	if err := w.WriteByte(byte(wire.U8)); err != nil {
		return err
	}

	return w.WriteByte(v)
}

func MatchUint8(p wire.Prefix) bool {
	return p.IsPositiveFixInt() || p == wire.U8
}

// DecodeUint8 reads a uint8 encoded by EncodeUint8 (or any wider unsigned
// encoder that happened to choose the U8 prefix for a small value).
func DecodeUint8(r Reader) (uint8, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p == wire.U8 {
		b, err := r.ReadByte()
		return b, err
	}

	if p.IsPositiveFixInt() {
		return uint8(p), nil
	}

	return 0, errs.ErrUnexpectedEncodingType
}

// EncodeInt8 writes the smallest representation of v.
func EncodeInt8(w Writer, v int8) error {
	if v >= -64 {
		return w.WriteByte(byte(v))
	}

	if err := w.WriteByte(byte(wire.I8)); err != nil {
		return err
	}

	return w.WriteByte(byte(v))
}

func MatchInt8(p wire.Prefix) bool {
	return p.IsPositiveFixInt() || p.IsNegativeFixInt() || p == wire.I8
}

// DecodeInt8 reads an int8.
func DecodeInt8(r Reader) (int8, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p == wire.I8 {
		b, err := r.ReadByte()
		return int8(b), err
	}

	if p.IsPositiveFixInt() || p.IsNegativeFixInt() {
		return int8(p), nil
	}

	return 0, errs.ErrUnexpectedEncodingType
}

// EncodeUint16 writes the smallest representation of v.
func EncodeUint16(w Writer, v uint16) error {
	switch {
	case v < 1<<7:
		return w.WriteByte(byte(v))
	case v < 1<<8:
		if err := w.WriteByte(byte(wire.U8)); err != nil {
			return err
		}

		return w.WriteByte(byte(v))
	default:
		if err := w.WriteByte(byte(wire.U16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], v)

		return w.Write(buf[:])
	}
}

func MatchUint16(p wire.Prefix) bool { return MatchUint8(p) || p == wire.U16 }

// DecodeUint16 reads a uint16.
func DecodeUint16(r Reader) (uint16, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.U16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint16(buf[:]), nil
	case p == wire.U8:
		b, err := r.ReadByte()
		return uint16(b), err
	case p.IsPositiveFixInt():
		return uint16(p), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeInt16 writes the smallest representation of v.
func EncodeInt16(w Writer, v int16) error {
	switch {
	case v >= -64 && v <= 127:
		return w.WriteByte(byte(v))
	case v >= -128 && v <= 127:
		if err := w.WriteByte(byte(wire.I8)); err != nil {
			return err
		}

		return w.WriteByte(byte(int8(v)))
	default:
		if err := w.WriteByte(byte(wire.I16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v))

		return w.Write(buf[:])
	}
}

func MatchInt16(p wire.Prefix) bool { return MatchInt8(p) || p == wire.I16 }

// DecodeInt16 reads an int16.
func DecodeInt16(r Reader) (int16, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.I16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int16(binary.LittleEndian.Uint16(buf[:])), nil
	case p == wire.I8:
		b, err := r.ReadByte()
		return int16(int8(b)), err
	case p.IsPositiveFixInt() || p.IsNegativeFixInt():
		return int16(int8(p)), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeUint32 writes the smallest representation of v.
func EncodeUint32(w Writer, v uint32) error {
	switch {
	case v < 1<<7:
		return w.WriteByte(byte(v))
	case v < 1<<8:
		if err := w.WriteByte(byte(wire.U8)); err != nil {
			return err
		}

		return w.WriteByte(byte(v))
	case v < 1<<16:
		if err := w.WriteByte(byte(wire.U16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v))

		return w.Write(buf[:])
	default:
		if err := w.WriteByte(byte(wire.U32)); err != nil {
			return err
		}

		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], v)

		return w.Write(buf[:])
	}
}

func MatchUint32(p wire.Prefix) bool { return MatchUint16(p) || p == wire.U32 }

// DecodeUint32 reads a uint32.
func DecodeUint32(r Reader) (uint32, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.U32:
		var buf [4]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint32(buf[:]), nil
	case p == wire.U16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return uint32(binary.LittleEndian.Uint16(buf[:])), nil
	case p == wire.U8:
		b, err := r.ReadByte()
		return uint32(b), err
	case p.IsPositiveFixInt():
		return uint32(p), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeInt32 writes the smallest representation of v.
func EncodeInt32(w Writer, v int32) error {
	switch {
	case v >= -64 && v <= 127:
		return w.WriteByte(byte(v))
	case v >= -128 && v <= 127:
		if err := w.WriteByte(byte(wire.I8)); err != nil {
			return err
		}

		return w.WriteByte(byte(int8(v)))
	case v >= -32768 && v <= 32767:
		if err := w.WriteByte(byte(wire.I16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))

		return w.Write(buf[:])
	default:
		if err := w.WriteByte(byte(wire.I32)); err != nil {
			return err
		}

		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))

		return w.Write(buf[:])
	}
}

func MatchInt32(p wire.Prefix) bool { return MatchInt16(p) || p == wire.I32 }

// DecodeInt32 reads an int32.
func DecodeInt32(r Reader) (int32, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.I32:
		var buf [4]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int32(binary.LittleEndian.Uint32(buf[:])), nil
	case p == wire.I16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int32(int16(binary.LittleEndian.Uint16(buf[:]))), nil
	case p == wire.I8:
		b, err := r.ReadByte()
		return int32(int8(b)), err
	case p.IsPositiveFixInt() || p.IsNegativeFixInt():
		return int32(int8(p)), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeUint64 writes the smallest representation of v.
func EncodeUint64(w Writer, v uint64) error {
	switch {
	case v < 1<<7:
		return w.WriteByte(byte(v))
	case v < 1<<8:
		if err := w.WriteByte(byte(wire.U8)); err != nil {
			return err
		}

		return w.WriteByte(byte(v))
	case v < 1<<16:
		if err := w.WriteByte(byte(wire.U16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(v))

		return w.Write(buf[:])
	case v < 1<<32:
		if err := w.WriteByte(byte(wire.U32)); err != nil {
			return err
		}

		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(v))

		return w.Write(buf[:])
	default:
		if err := w.WriteByte(byte(wire.U64)); err != nil {
			return err
		}

		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], v)

		return w.Write(buf[:])
	}
}

func MatchUint64(p wire.Prefix) bool { return MatchUint32(p) || p == wire.U64 }

// DecodeUint64 reads a uint64.
func DecodeUint64(r Reader) (uint64, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.U64:
		var buf [8]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint64(buf[:]), nil
	case p == wire.U32:
		var buf [4]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return uint64(binary.LittleEndian.Uint32(buf[:])), nil
	case p == wire.U16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return uint64(binary.LittleEndian.Uint16(buf[:])), nil
	case p == wire.U8:
		b, err := r.ReadByte()
		return uint64(b), err
	case p.IsPositiveFixInt():
		return uint64(p), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeInt64 writes the smallest representation of v.
func EncodeInt64(w Writer, v int64) error {
	switch {
	case v >= -64 && v <= 127:
		return w.WriteByte(byte(v))
	case v >= -128 && v <= 127:
		if err := w.WriteByte(byte(wire.I8)); err != nil {
			return err
		}

		return w.WriteByte(byte(int8(v)))
	case v >= -32768 && v <= 32767:
		if err := w.WriteByte(byte(wire.I16)); err != nil {
			return err
		}

		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(int16(v)))

		return w.Write(buf[:])
	case v >= -2147483648 && v <= 2147483647:
		if err := w.WriteByte(byte(wire.I32)); err != nil {
			return err
		}

		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(v)))

		return w.Write(buf[:])
	default:
		if err := w.WriteByte(byte(wire.I64)); err != nil {
			return err
		}

		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))

		return w.Write(buf[:])
	}
}

func MatchInt64(p wire.Prefix) bool { return MatchInt32(p) || p == wire.I64 }

// DecodeInt64 reads an int64.
func DecodeInt64(r Reader) (int64, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	switch {
	case p == wire.I64:
		var buf [8]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int64(binary.LittleEndian.Uint64(buf[:])), nil
	case p == wire.I32:
		var buf [4]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int64(int32(binary.LittleEndian.Uint32(buf[:]))), nil
	case p == wire.I16:
		var buf [2]byte
		if err := r.Read(buf[:]); err != nil {
			return 0, err
		}

		return int64(int16(binary.LittleEndian.Uint16(buf[:]))), nil
	case p == wire.I8:
		b, err := r.ReadByte()
		return int64(int8(b)), err
	case p.IsPositiveFixInt() || p.IsNegativeFixInt():
		return int64(int8(p)), nil
	default:
		return 0, errs.ErrUnexpectedEncodingType
	}
}

// EncodeFloat32 always writes the full F32 prefix and payload.
func EncodeFloat32(w Writer, v float32) error {
	if err := w.WriteByte(byte(wire.F32)); err != nil {
		return err
	}

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))

	return w.Write(buf[:])
}

// DecodeFloat32 reads a float32.
func DecodeFloat32(r Reader) (float32, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p != wire.F32 {
		return 0, errs.ErrUnexpectedEncodingType
	}

	var buf [4]byte
	if err := r.Read(buf[:]); err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(buf[:])), nil
}

// EncodeFloat64 always writes the full F64 prefix and payload.
func EncodeFloat64(w Writer, v float64) error {
	if err := w.WriteByte(byte(wire.F64)); err != nil {
		return err
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))

	return w.Write(buf[:])
}

// DecodeFloat64 reads a float64.
func DecodeFloat64(r Reader) (float64, error) {
	p, err := readPrefix(r)
	if err != nil {
		return 0, err
	}

	if p != wire.F64 {
		return 0, errs.ErrUnexpectedEncodingType
	}

	var buf [8]byte
	if err := r.Read(buf[:]); err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.LittleEndian.Uint64(buf[:])), nil
}

// EncodeChar writes a rune as a byte, matching the teacher source's
// treatment of 'char' as a 7-bit-safe unsigned byte (spec.md's character
// kind). Values outside [0, 255] are an encoder misuse, not a wire
// concern; callers declaring a wider code point type should use a
// string/uint32 member instead.
func EncodeChar(w Writer, v rune) error {
	return EncodeUint8(w, uint8(v))
}

// DecodeChar reads a character encoded by EncodeChar.
func DecodeChar(r Reader) (rune, error) {
	v, err := DecodeUint8(r)
	return rune(v), err
}
