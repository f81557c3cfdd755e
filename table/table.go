// Package table implements the TAB codec: a versioned, append-only entry
// list keyed by a declared integer id, framed so a reader built against an
// older or newer schema can skip entries it does not recognize.
package table

import (
	"github.com/arloliu/nop/bounded"
	"github.com/arloliu/nop/codec"
	"github.com/arloliu/nop/errs"
	"github.com/arloliu/nop/ioadapter"
	"github.com/arloliu/nop/nophash"
	"github.com/arloliu/nop/wire"
)

// Entry is one declared table member: a stable id, whether it is a
// tombstone (declared but never written), and the accessors the table
// codec uses to test presence, encode, decode, and clear its value.
type Entry struct {
	ID        uint64
	Tombstone bool

	// Present reports whether the entry currently holds a value, for an
	// active (non-tombstone) entry. Nil for tombstones.
	Present func() bool
	// Encode writes the entry's current value. Nil for tombstones.
	Encode func(codec.Writer) error
	// Decode reads a value into the entry's destination, through a bounded
	// sub-reader scoped to the entry's declared payload length. Nil for
	// tombstones.
	Decode func(codec.Reader) error
	// Clear resets the entry to its empty state, called on every
	// destination entry before a table is decoded. Nil for tombstones.
	Clear func()
}

// Declaration is the ordered list of a table's declared entries, built once
// per Encode/Decode call by the caller.
type Declaration []Entry

// paddingByte is the deterministic filler a bounded sub-writer uses when an
// entry's encoded payload comes in under its declared size.
const paddingByte = 0x00

// Encode writes TAB | u64 hash | u64 present_count | present_count ×
// entry. hash is derived from name via nophash.TableHash. Tombstone entries
// and entries with no value present are never written, per spec.
func Encode(w codec.Writer, name string, entries Declaration) error {
	if err := w.WriteByte(byte(wire.Table)); err != nil {
		return err
	}

	if err := codec.EncodeRawUint64(w, nophash.TableHash(name)); err != nil {
		return err
	}

	present := 0
	for _, e := range entries {
		if !e.Tombstone && e.Present() {
			present++
		}
	}

	if err := codec.EncodeRawUint64(w, uint64(present)); err != nil {
		return err
	}

	for _, e := range entries {
		if e.Tombstone || !e.Present() {
			continue
		}

		if err := writeEntry(w, e); err != nil {
			return err
		}
	}

	return nil
}

// writeEntry measures an entry's encoded payload size by writing it to a
// pooled scratch buffer first, then emits id | size | payload verbatim.
// Padding never occurs in practice since the size is exact, but the
// bounded writer still frames the payload, matching the spec's entry
// shape and keeping the door open for callers whose Encode overestimates.
func writeEntry(w codec.Writer, e Entry) error {
	scratch := ioadapter.GetPooledBuffer()
	defer ioadapter.PutPooledBuffer(scratch)

	if err := e.Encode(scratch); err != nil {
		return err
	}

	if err := codec.EncodeRawUint64(w, e.ID); err != nil {
		return err
	}

	size := scratch.Len()
	if err := codec.EncodeRawUint64(w, uint64(size)); err != nil {
		return err
	}

	bw := bounded.NewWriter(w, size)
	if err := bw.Write(scratch.Bytes()); err != nil {
		return err
	}

	return bw.WritePadding(paddingByte)
}

// Decode reads a TAB envelope. It validates the hash against name, reads
// present_count, clears every active destination entry, then consumes
// present_count entries, rejecting an id seen twice and routing each by id: a
// matching active entry decodes its payload through a bounded sub-reader;
// a matching tombstone, or an id with no declared match, has its payload
// skipped.
func Decode(r codec.Reader, name string, entries Declaration) error {
	b, err := r.ReadByte()
	if err != nil {
		return err
	}

	if wire.Prefix(b) != wire.Table {
		return errs.ErrUnexpectedEncodingType
	}

	hash, err := codec.DecodeRawUint64(r)
	if err != nil {
		return err
	}

	if hash != nophash.TableHash(name) {
		return errs.ErrInvalidTableHash
	}

	count, err := codec.DecodeRawUint64(r)
	if err != nil {
		return err
	}

	seen := make(map[uint64]bool, len(entries))
	for _, e := range entries {
		if !e.Tombstone {
			e.Clear()
		}
	}

	for i := uint64(0); i < count; i++ {
		id, err := codec.DecodeRawUint64(r)
		if err != nil {
			return err
		}

		if seen[id] {
			return errs.ErrDuplicateTableEntry
		}
		seen[id] = true

		size, err := codec.DecodeRawUint64(r)
		if err != nil {
			return err
		}

		br := bounded.NewReader(r, int(size))

		entry, ok := findEntry(entries, id)
		if !ok || entry.Tombstone {
			if err := br.ReadPadding(); err != nil {
				return err
			}

			continue
		}

		if err := entry.Decode(br); err != nil {
			return err
		}

		if err := br.ReadPadding(); err != nil {
			return err
		}
	}

	return nil
}

func findEntry(entries Declaration, id uint64) (Entry, bool) {
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}

	return Entry{}, false
}
