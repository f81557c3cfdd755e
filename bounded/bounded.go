// Package bounded implements the sub-scoped reader/writer adapters that
// localize a fixed byte budget within an outer Reader/Writer. The table
// codec uses these exclusively to frame each entry's payload, but they are
// reusable by any caller that needs to hand a callee a hard ceiling on how
// much it may read or write.
package bounded

import "github.com/arloliu/nop/errs"

// parentReader is the subset of ioadapter.Reader that Reader needs. Defined
// locally (instead of importing ioadapter) so bounded has no dependency on
// the concrete adapters, only on the read/write shape it wraps.
type parentReader interface {
	Ensure(n int) error
	ReadByte() (byte, error)
	Read(p []byte) error
	Skip(n int) error
}

type parentWriter interface {
	Prepare(n int) error
	WriteByte(b byte) error
	Write(p []byte) error
	Skip(n int, fill byte) error
}

// Note: handle transfer (the HND prefix) is intentionally not forwarded
// through a bounded sub-scope. Table entries are the only caller of this
// package, and a handle nested inside a table entry's payload would need
// an out-of-band channel the bounded adapter has no way to widen into;
// values containing handles should be declared as top-level record/table
// members instead.

// Reader wraps a parent reader with a byte budget. Every operation fails
// with errs.ErrReadLimitReached if it would read past the budget, even if
// the parent reader has more bytes available.
type Reader struct {
	parent parentReader
	size   int
	index  int
}

// NewReader creates a Reader bounded to exactly size bytes of the parent.
func NewReader(parent parentReader, size int) *Reader {
	return &Reader{parent: parent, size: size}
}

// Ensure implements the Reader contract.
func (r *Reader) Ensure(n int) error {
	if r.size-r.index < n {
		return errs.ErrReadLimitReached
	}

	return r.parent.Ensure(n)
}

// ReadByte implements the Reader contract.
func (r *Reader) ReadByte() (byte, error) {
	if r.index >= r.size {
		return 0, errs.ErrReadLimitReached
	}

	b, err := r.parent.ReadByte()
	if err != nil {
		return 0, err
	}

	r.index++

	return b, nil
}

// Read implements the Reader contract.
func (r *Reader) Read(p []byte) error {
	if len(p) > r.size-r.index {
		return errs.ErrReadLimitReached
	}

	if err := r.parent.Read(p); err != nil {
		return err
	}

	r.index += len(p)

	return nil
}

// Skip implements the Reader contract.
func (r *Reader) Skip(n int) error {
	if n > r.size-r.index {
		return errs.ErrReadLimitReached
	}

	if err := r.parent.Skip(n); err != nil {
		return err
	}

	r.index += n

	return nil
}

// ReadPadding discards whatever remains of the budget. Table entries use
// this to consume trailing filler bytes after a payload that decoded
// shorter than its declared size.
func (r *Reader) ReadPadding() error {
	remaining := r.size - r.index
	if err := r.parent.Skip(remaining); err != nil {
		return err
	}

	r.index += remaining

	return nil
}

// Empty reports whether the budget has been fully consumed.
func (r *Reader) Empty() bool { return r.index == r.size }

// Size returns the number of bytes consumed so far.
func (r *Reader) Size() int { return r.index }

// Capacity returns the total byte budget.
func (r *Reader) Capacity() int { return r.size }

// Writer wraps a parent writer with a byte budget, symmetric with Reader.
type Writer struct {
	parent parentWriter
	size   int
	index  int
}

// NewWriter creates a Writer bounded to exactly size bytes of the parent.
func NewWriter(parent parentWriter, size int) *Writer {
	return &Writer{parent: parent, size: size}
}

// Prepare implements the Writer contract.
func (w *Writer) Prepare(n int) error {
	if w.index+n > w.size {
		return errs.ErrWriteLimitReached
	}

	return w.parent.Prepare(n)
}

// WriteByte implements the Writer contract.
func (w *Writer) WriteByte(b byte) error {
	if w.index >= w.size {
		return errs.ErrWriteLimitReached
	}

	if err := w.parent.WriteByte(b); err != nil {
		return err
	}

	w.index++

	return nil
}

// Write implements the Writer contract.
func (w *Writer) Write(p []byte) error {
	if len(p) > w.size-w.index {
		return errs.ErrWriteLimitReached
	}

	if err := w.parent.Write(p); err != nil {
		return err
	}

	w.index += len(p)

	return nil
}

// Skip implements the Writer contract.
func (w *Writer) Skip(n int, fill byte) error {
	if n > w.size-w.index {
		return errs.ErrWriteLimitReached
	}

	if err := w.parent.Skip(n, fill); err != nil {
		return err
	}

	w.index += n

	return nil
}

// WritePadding fills whatever remains of the budget with padding. The
// table codec calls this after writing an entry whose encoded size came
// in under the declared size, so the entry's framing stays exact.
func (w *Writer) WritePadding(padding byte) error {
	remaining := w.size - w.index
	if err := w.parent.Skip(remaining, padding); err != nil {
		return err
	}

	w.index += remaining

	return nil
}

// Size returns the number of bytes written so far.
func (w *Writer) Size() int { return w.index }

// Capacity returns the total byte budget.
func (w *Writer) Capacity() int { return w.size }
