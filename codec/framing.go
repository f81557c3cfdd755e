package codec

import "encoding/binary"

// EncodeRawUint64 writes v as a bare 8-byte little-endian field with no
// prefix byte of its own. Every length/count/id framing field (container
// lengths, record member counts, table hashes/counts/entry sizes) uses
// this fixed u64 width per spec, unlike an ordinary value, which goes
// through EncodeUint64's smallest-prefix selection. record and table use
// this directly for their own framing fields.
func EncodeRawUint64(w Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)

	return w.Write(buf[:])
}

// DecodeRawUint64 reads a field written by EncodeRawUint64.
func DecodeRawUint64(r Reader) (uint64, error) {
	var buf [8]byte
	if err := r.Read(buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(buf[:]), nil
}

// EncodeRawInt32 writes v as a bare 4-byte little-endian field with no
// prefix byte of its own, the shape a Variant's index field uses.
func EncodeRawInt32(w Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))

	return w.Write(buf[:])
}

// DecodeRawInt32 reads a field written by EncodeRawInt32.
func DecodeRawInt32(r Reader) (int32, error) {
	var buf [4]byte
	if err := r.Read(buf[:]); err != nil {
		return 0, err
	}

	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}
