package fungible

import (
	"encoding/binary"
	"strconv"

	"github.com/arloliu/nop/nophash"
)

// Signature computes a structural fingerprint of t as an xxhash-backed
// cache key. It is not a cryptographic or cross-process hash: two
// structurally-identical Types in the same run always hash the same, which
// is all Types needs to memoize repeated comparisons (e.g. a protocol
// gate checking the same declared type against the same concrete type on
// every call in a hot loop).
func Signature(t *Type) uint64 {
	buf := make([]byte, 0, 64)
	buf = appendSignature(buf, t)

	return nophash.SignatureHash(buf)
}

func appendSignature(buf []byte, t *Type) []byte {
	if t == nil {
		return append(buf, "nil;"...)
	}

	buf = strconv.AppendInt(buf, int64(t.Kind), 10)
	buf = append(buf, ':')

	switch t.Kind {
	case KindScalar:
		if t.Scalar != nil {
			buf = append(buf, t.Scalar.PkgPath()...)
			buf = append(buf, '.')
			buf = append(buf, t.Scalar.Name()...)
		}
	case KindArray:
		buf = strconv.AppendInt(buf, int64(t.Len), 10)
		buf = append(buf, '[')
		buf = appendSignature(buf, t.Elem)
		buf = append(buf, ']')
	case KindSequence, KindOptional, KindBufferPair, KindValueWrapper:
		buf = append(buf, '[')
		buf = appendSignature(buf, t.Elem)
		buf = append(buf, ']')
	case KindMap:
		buf = append(buf, '{')
		buf = appendSignature(buf, t.Key)
		buf = append(buf, ':')
		buf = appendSignature(buf, t.Elem)
		buf = append(buf, '}')
	case KindResult:
		if t.ErrType != nil {
			buf = append(buf, t.ErrType.PkgPath()...)
			buf = append(buf, '.')
			buf = append(buf, t.ErrType.Name()...)
		}
		buf = append(buf, '|')
		buf = appendSignature(buf, t.Elem)
	case KindTuple, KindPair, KindVariant, KindRecord:
		buf = append(buf, '(')
		for _, e := range t.Elems {
			buf = appendSignature(buf, e)
			buf = append(buf, ',')
		}
		buf = append(buf, ')')
	case KindTable:
		var h [8]byte
		binary.LittleEndian.PutUint64(h[:], t.TableHash)
		buf = append(buf, h[:]...)
		buf = append(buf, '(')
		for i, e := range t.Elems {
			buf = strconv.AppendUint(buf, t.IDs[i], 10)
			buf = append(buf, ':')
			if t.Tombstones[i] {
				buf = append(buf, "tomb"...)
			} else {
				buf = appendSignature(buf, e)
			}
			buf = append(buf, ',')
		}
		buf = append(buf, ')')
	}

	return append(buf, ';')
}
