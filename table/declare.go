package table

import "github.com/cespare/xxhash/v2"

// DeclareID derives a stable numeric entry id from a literal field name,
// for declarations that would rather name their fields than track id
// integers by hand. It is a convenience only: nothing on the wire
// distinguishes an id produced by DeclareID from one chosen by hand, and
// a table's actual identity is still its name-derived TableHash, not its
// entries' ids.
func DeclareID(name string) uint64 {
	return xxhash.Sum64String(name)
}
