// Package fungible implements the structural compatibility relation
// between declared wire types: two types are fungible when they produce
// and accept the same encoding, regardless of their Go type identity or
// field names. The protocol gate consults this package before dispatching
// a read or write.
//
// Go's type system does not distinguish "sequence" from "fixed array" from
// "tuple" the way the original template library does, and it has no
// variadic generics to model an arbitrary-arity tuple or variant. Type is
// therefore an explicit descriptor tree built by the combinators below
// (Sequence, Array, Tuple, Pair, ...) rather than raw reflect.Type
// comparison; leaf scalar types still bottom out in reflect.Type identity,
// which is the only place Go's own type system is authoritative.
package fungible

import (
	"reflect"
	"sync"

	"github.com/arloliu/nop/nophash"
)

// Kind identifies which of the spec's declared-type shapes a Type
// describes.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindArray
	KindTuple
	KindPair
	KindMap
	KindOptional
	KindResult
	KindVariant
	KindRecord
	KindTable
	KindBufferPair
	KindValueWrapper
)

// Type is a structural descriptor for one declared wire type.
type Type struct {
	Kind Kind

	// Elem is the inner element type for Sequence, Array, BufferPair, and
	// Optional.
	Elem *Type
	// Elems holds, depending on Kind: Tuple/Pair element types in order,
	// Variant alternative types in declared order, Record member types in
	// declared order, or Table entry payload types in declared order.
	Elems []*Type
	// Tombstones parallels Elems for KindTable: true at index i means
	// entry i is a declared tombstone.
	Tombstones []bool
	// IDs parallels Elems for KindTable: the declared id of each entry.
	IDs []uint64

	// Len is the static length for KindArray.
	Len int

	// Scalar is the concrete Go type for KindScalar leaves (int32, uint8,
	// string, float64, bool, rune, ...). Two scalars are fungible only if
	// identical, per rule 18.
	Scalar reflect.Type

	// Key is the map key type for KindMap.
	Key *Type

	// ErrType is Result<E,T>'s error type; Result rule 11 requires E to be
	// identical (not merely fungible) between the two sides.
	ErrType reflect.Type

	// TableHash is the declared name hash for KindTable; rule 14 requires
	// it to match exactly.
	TableHash uint64
}

// ScalarOf builds a leaf descriptor for a concrete Go type. Use this for
// every primitive: integers, floats, bool, string, char (rune), Handle
// policies.
func ScalarOf(t reflect.Type) *Type { return &Type{Kind: KindScalar, Scalar: t} }

// Sequence builds a dynamically-sized ordered sequence descriptor.
func Sequence(elem *Type) *Type { return &Type{Kind: KindSequence, Elem: elem} }

// Array builds a fixed-length array descriptor.
func Array(elem *Type, n int) *Type { return &Type{Kind: KindArray, Elem: elem, Len: n} }

// Tuple builds a fixed-arity, heterogeneously-typed tuple descriptor.
func Tuple(elems ...*Type) *Type { return &Type{Kind: KindTuple, Elems: elems} }

// Pair builds a two-element pair descriptor, compared against both other
// pairs and two-element tuples per rule 8.
func Pair(a, b *Type) *Type { return &Type{Kind: KindPair, Elems: []*Type{a, b}} }

// Map builds a key->value mapping descriptor.
func Map(key, value *Type) *Type { return &Type{Kind: KindMap, Key: key, Elem: value} }

// Optional builds an Optional<T> descriptor.
func Optional(inner *Type) *Type { return &Type{Kind: KindOptional, Elem: inner} }

// Result builds a Result<E,T> descriptor. errType must be the exact Go type
// of E; rule 11 requires two Results' error types to be identical.
func Result(errType reflect.Type, value *Type) *Type {
	return &Type{Kind: KindResult, ErrType: errType, Elem: value}
}

// Variant builds a Variant<T0..Tn-1> descriptor from its alternatives in
// declared order.
func Variant(alternatives ...*Type) *Type {
	return &Type{Kind: KindVariant, Elems: alternatives}
}

// Record builds a record descriptor from its declared member types in
// order. A single-member record should be built with ValueWrapper instead,
// so rule 15's unwrapping applies.
func Record(members ...*Type) *Type { return &Type{Kind: KindRecord, Elems: members} }

// ValueWrapper builds a single-member "value wrapper" record descriptor:
// fungible with both other value wrappers over a fungible inner type and
// with the bare inner type itself.
func ValueWrapper(inner *Type) *Type {
	return &Type{Kind: KindValueWrapper, Elem: inner}
}

// Table builds a table descriptor. hash is the declared name's
// nophash.TableHash; ids, tombstones, and payloads are parallel slices in
// declared entry order.
func Table(hash uint64, ids []uint64, tombstones []bool, payloads []*Type) *Type {
	return &Type{Kind: KindTable, TableHash: hash, IDs: ids, Tombstones: tombstones, Elems: payloads}
}

// BufferPair builds a logical buffer pair descriptor: fungible with a
// sequence of the same element type and with any fungible fixed array, per
// rule 16.
func BufferPair(elem *Type) *Type { return &Type{Kind: KindBufferPair, Elem: elem} }

// isIntegral reports whether a scalar descriptor is one of the integer
// kinds; rules 5 and 6 (sequence/array vs tuple) require the element type
// to be non-integral.
func isIntegral(t *Type) bool {
	if t == nil || t.Kind != KindScalar || t.Scalar == nil {
		return false
	}

	switch t.Scalar.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

var memo sync.Map // map[[2]uint64]bool, keyed by ordered Signature hash pair

// Types reports whether a and b are fungible under the structural rules
// for the descriptor kinds above. The result is symmetric in a and b.
// Function signatures have no Kind here, so their fungibility (rule 17)
// is not modeled.
func Types(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	ka, kb := Signature(a), Signature(b)
	key := memoKey(ka, kb)
	if v, ok := memo.Load(key); ok {
		return v.(bool)
	}

	result := types(a, b)
	memo.Store(key, result)

	return result
}

func memoKey(a, b uint64) [2]uint64 {
	if a <= b {
		return [2]uint64{a, b}
	}

	return [2]uint64{b, a}
}

func types(a, b *Type) bool {
	// Rule 18: integer/float/char fungibility is exact, never cross-kind.
	if a.Kind == KindScalar && b.Kind == KindScalar {
		return a.Scalar == b.Scalar
	}

	switch {
	// Rule 2: array<T,N> ≡ array<U,N>.
	case a.Kind == KindArray && b.Kind == KindArray:
		return a.Len == b.Len && Types(a.Elem, b.Elem)

	// Rule 3: sequence<T> ≡ sequence<U>.
	case a.Kind == KindSequence && b.Kind == KindSequence:
		return Types(a.Elem, b.Elem)

	// Rule 4: sequence<T> ≡ array<U,N>, independent of N.
	case a.Kind == KindSequence && b.Kind == KindArray,
		a.Kind == KindArray && b.Kind == KindSequence:
		return Types(a.Elem, b.Elem)

	// Rule 16: buffer pair ≡ sequence of the same element, or any fungible
	// fixed array.
	case a.Kind == KindBufferPair && b.Kind == KindSequence,
		a.Kind == KindSequence && b.Kind == KindBufferPair:
		return Types(a.Elem, b.Elem)
	case a.Kind == KindBufferPair && b.Kind == KindArray,
		a.Kind == KindArray && b.Kind == KindBufferPair:
		return Types(a.Elem, b.Elem)
	case a.Kind == KindBufferPair && b.Kind == KindBufferPair:
		return Types(a.Elem, b.Elem)

	// Rule 5: sequence<T> ≡ tuple<U0..Uk-1> iff T non-integral and
	// fungible with every Ui.
	case a.Kind == KindSequence && b.Kind == KindTuple:
		return !isIntegral(a.Elem) && allFungibleWith(a.Elem, b.Elems)
	case a.Kind == KindTuple && b.Kind == KindSequence:
		return !isIntegral(b.Elem) && allFungibleWith(b.Elem, a.Elems)

	// Rule 6: array<T,N> ≡ tuple<U0..UN-1> iff T non-integral and
	// fungible with every Ui.
	case a.Kind == KindArray && b.Kind == KindTuple:
		return a.Len == len(b.Elems) && !isIntegral(a.Elem) && allFungibleWith(a.Elem, b.Elems)
	case a.Kind == KindTuple && b.Kind == KindArray:
		return b.Len == len(a.Elems) && !isIntegral(b.Elem) && allFungibleWith(b.Elem, a.Elems)

	// Rule 7: tuple<A0..An-1> ≡ tuple<B0..Bn-1>, equal arity pairwise.
	case a.Kind == KindTuple && b.Kind == KindTuple:
		return pairwiseFungible(a.Elems, b.Elems)

	// Rule 8: pair<A,B> ≡ pair<C,D> ≡ tuple<C,D>.
	case a.Kind == KindPair && b.Kind == KindPair:
		return pairwiseFungible(a.Elems, b.Elems)
	case a.Kind == KindPair && b.Kind == KindTuple,
		a.Kind == KindTuple && b.Kind == KindPair:
		return pairwiseFungible(a.Elems, b.Elems)

	// Rule 9: map<K1,V1> ≡ map<K2,V2>.
	case a.Kind == KindMap && b.Kind == KindMap:
		return Types(a.Key, b.Key) && Types(a.Elem, b.Elem)

	// Rule 10: Optional<A> ≡ Optional<B> iff fungible(A,B).
	case a.Kind == KindOptional && b.Kind == KindOptional:
		return Types(a.Elem, b.Elem)

	// Rule 11: Result<E,A> ≡ Result<E,B> iff E identical and fungible(A,B).
	case a.Kind == KindResult && b.Kind == KindResult:
		return a.ErrType == b.ErrType && Types(a.Elem, b.Elem)

	// Rule 12: Variant<A0..Am-1> ≡ Variant<B0..Bm-1>, equal arity pairwise.
	case a.Kind == KindVariant && b.Kind == KindVariant:
		return pairwiseFungible(a.Elems, b.Elems)

	// Rule 13: records fungible iff equal member count, pairwise fungible.
	case a.Kind == KindRecord && b.Kind == KindRecord:
		return pairwiseFungible(a.Elems, b.Elems)

	// Rule 15: a value wrapper is fungible with other value wrappers over
	// a fungible inner type, and with the bare inner type itself.
	case a.Kind == KindValueWrapper && b.Kind == KindValueWrapper:
		return Types(a.Elem, b.Elem)
	case a.Kind == KindValueWrapper:
		return Types(a.Elem, b)
	case b.Kind == KindValueWrapper:
		return Types(a, b.Elem)

	// Rule 14: tables fungible iff hashes identical, arities match, and
	// for every corresponding (id, kind) the payload types are fungible
	// and the tombstone kind matches.
	case a.Kind == KindTable && b.Kind == KindTable:
		return tablesFungible(a, b)

	default:
		return false
	}
}

func allFungibleWith(elem *Type, others []*Type) bool {
	for _, o := range others {
		if !Types(elem, o) {
			return false
		}
	}

	return true
}

func pairwiseFungible(a, b []*Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Types(a[i], b[i]) {
			return false
		}
	}

	return true
}

func tablesFungible(a, b *Type) bool {
	if a.TableHash != b.TableHash {
		return false
	}

	if len(a.IDs) != len(b.IDs) {
		return false
	}

	byID := make(map[uint64]int, len(b.IDs))
	for i, id := range b.IDs {
		byID[id] = i
	}

	for i, id := range a.IDs {
		j, ok := byID[id]
		if !ok {
			return false
		}

		if a.Tombstones[i] != b.Tombstones[j] {
			return false
		}

		if !a.Tombstones[i] && !Types(a.Elems[i], b.Elems[j]) {
			return false
		}
	}

	return true
}
