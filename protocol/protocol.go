// Package protocol implements the sole compatibility checkpoint between a
// declared protocol type and the concrete value an application attempts to
// exchange through it: fungibility, checked once at gate construction and
// again before every read or write.
package protocol

import (
	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/fungible"
)

// Gate binds a declared protocol type P to the fungibility check every
// read and write through it must pass. A wire written against P from one
// side can be read against any Gate whose declared type is fungible with
// P on the other.
type Gate struct {
	declared *fungible.Type
}

// NewGate builds a Gate for the declared protocol type P.
func NewGate(declared *fungible.Type) *Gate {
	return &Gate{declared: declared}
}

// Write checks that valueType is fungible with the gate's declared type,
// then invokes encode. If the types are not fungible, encode is never
// called and the gate returns errs.ErrUnexpectedEncodingType.
func (g *Gate) Write(w codec.Writer, valueType *fungible.Type, encode func(codec.Writer) error) error {
	if !fungible.Types(g.declared, valueType) {
		return errs.ErrUnexpectedEncodingType
	}

	return encode(w)
}

// Read checks that outType is fungible with the gate's declared type, then
// invokes decode. If the types are not fungible, decode is never called
// and the gate returns errs.ErrUnexpectedEncodingType.
func (g *Gate) Read(r codec.Reader, outType *fungible.Type, decode func(codec.Reader) error) error {
	if !fungible.Types(g.declared, outType) {
		return errs.ErrUnexpectedEncodingType
	}

	return decode(r)
}

// Fungible reports whether P' (p2's declared type) is interchangeable with
// this gate's declared type P, without performing any I/O. Applications
// use this to decide ahead of time whether a peer's protocol declaration
// is compatible with their own.
func (g *Gate) Fungible(p2 *Gate) bool {
	return fungible.Types(g.declared, p2.declared)
}
