// Package nophash provides the two hash functions the wire format depends
// on: a fixed-key SipHash-2-4 over a table's declared name (its wire
// identity), and an xxhash-based memoization key for fungibility decisions.
package nophash

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dchest/siphash"
)

// Fixed SipHash-2-4 keys, per spec: every table name hashes under the same
// two 64-bit keys regardless of declaration site.
const (
	tableHashKey0 = 0xBAADF00DDEADBEEF
	tableHashKey1 = 0x0123456789ABCDEF
)

// TableHash derives a table's wire hash from its declared name. Computed
// once at declaration time and compared verbatim on read; a mismatch is
// errs.ErrInvalidTableHash.
func TableHash(name string) uint64 {
	return siphash.Hash(tableHashKey0, tableHashKey1, []byte(name))
}

// SignatureHash is a cheap, collision-tolerant memoization key for a
// structural signature (see fungible.Signature): it is never compared
// across processes or persisted, only used to short-circuit repeated
// reflect-based structural comparisons within one run.
func SignatureHash(sig []byte) uint64 {
	return xxhash.Sum64(sig)
}
