// Package handle implements the HND encoding: a move-only reference to an
// out-of-band resource (a file descriptor, in the common case) identified
// on the wire by a type tag and an opaque reference token, with the actual
// resource transfer left to the adapter's ioadapter.HandleStore.
//
// Wire shape:
//
//	+-----+-----------+-----------+
//	| HND | U64:TYPE   | U64:REF   |
//	+-----+-----------+-----------+
//
// TYPE is the declared Policy's tag; a mismatch on read is
// errs.ErrUnexpectedHandleType. REF is whatever Writer.PushHandle returned
// when the handle was recorded, or zero for an empty handle (no call to
// PushHandle is made in that case).
package handle

import (
	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/ioadapter"
	"github.com/arloliu/nop/wire"
)

// Policy defines how a handle value of type T is created, validated, and
// released. It mirrors libnop's HandlePolicy trait: an empty sentinel
// value, a validity predicate, and release semantics, plus a type tag
// distinguishing one kind of handle from another on the wire.
type Policy[T any] interface {
	// Empty returns the sentinel value representing no handle.
	Empty() T
	// Valid reports whether v refers to a live resource.
	Valid(v T) bool
	// Close releases the resource referenced by *v and resets *v to Empty.
	// Close on an already-empty value is a no-op.
	Close(v *T)
	// Release resets *v to Empty and returns its prior value, transferring
	// ownership to the caller without releasing the resource.
	Release(v *T) T
	// TypeTag identifies this policy's handle kind on the wire.
	TypeTag() uint64
}

// Ref is a move-only handle of type T governed by Policy. The zero Ref is
// not valid; use NewRef.
type Ref[T any] struct {
	value  T
	policy Policy[T]
}

// NewRef wraps value under policy's ownership rules.
func NewRef[T any](value T, policy Policy[T]) *Ref[T] {
	return &Ref[T]{value: value, policy: policy}
}

// Empty returns an already-released Ref under policy.
func Empty[T any](policy Policy[T]) *Ref[T] {
	return &Ref[T]{value: policy.Empty(), policy: policy}
}

// Valid reports whether r currently owns a live resource.
func (r *Ref[T]) Valid() bool {
	return r.policy.Valid(r.value)
}

// Get returns the underlying value without transferring ownership.
func (r *Ref[T]) Get() T {
	return r.value
}

// Close releases the underlying resource, if any, and empties r.
func (r *Ref[T]) Close() {
	if r.Valid() {
		r.policy.Close(&r.value)
	}
}

// Take transfers ownership of the underlying resource to the caller,
// leaving r empty. The caller becomes responsible for eventually closing
// the returned value through the same policy.
func (r *Ref[T]) Take() T {
	return r.policy.Release(&r.value)
}

// handleWriter is the write-side transport Encode requires: the base
// codec.Writer plus the out-of-band PushHandle a caller's adapter must
// supply to support HND.
type handleWriter interface {
	codec.Writer
	PushHandle(h any) (ioadapter.HandleReference, error)
}

// handleReader is the read-side counterpart of handleWriter.
type handleReader interface {
	codec.Reader
	GetHandle(ref ioadapter.HandleReference) (any, error)
}

// Encode writes r's handle type tag and, if r is valid, records its value
// with w's HandleStore and writes the returned reference; an empty handle
// writes a zero reference without calling PushHandle.
func Encode[T any](w handleWriter, r *Ref[T]) error {
	if err := w.WriteByte(byte(wire.Handle)); err != nil {
		return err
	}

	if err := codec.EncodeUint64(w, r.policy.TypeTag()); err != nil {
		return err
	}

	var ref ioadapter.HandleReference
	if r.Valid() {
		var err error
		ref, err = w.PushHandle(r.value)
		if err != nil {
			return err
		}
	}

	return codec.EncodeUint64(w, uint64(ref))
}

// Decode reads a handle encoded by Encode, resolving its reference through
// r's HandleStore. The resolved value is type-asserted against T;
// errs.ErrInvalidHandleValue is returned on a type mismatch.
func Decode[T any](r handleReader, policy Policy[T]) (*Ref[T], error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	if wire.Prefix(b) != wire.Handle {
		return nil, errs.ErrUnexpectedEncodingType
	}

	typeTag, err := codec.DecodeUint64(r)
	if err != nil {
		return nil, err
	}

	if typeTag != policy.TypeTag() {
		return nil, errs.ErrUnexpectedHandleType
	}

	wireRef, err := codec.DecodeUint64(r)
	if err != nil {
		return nil, err
	}

	ref := Empty(policy)
	if wireRef == 0 {
		return ref, nil
	}

	resolved, err := r.GetHandle(ioadapter.HandleReference(wireRef))
	if err != nil {
		return nil, err
	}

	value, ok := resolved.(T)
	if !ok {
		return nil, errs.ErrInvalidHandleValue
	}

	ref.value = value

	return ref, nil
}
