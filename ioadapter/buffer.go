package ioadapter

import (
	"sync"

	"github.com/arloliu/nop/errs"
)

// Default and maximum retained sizes for pooled buffers, mirroring the
// teacher's internal/pool thresholds.
const (
	DefaultBufferSize  = 1024 * 16  // 16KiB
	MaxBufferThreshold = 1024 * 128 // 128KiB
)

// Buffer is a growable in-memory Reader/Writer adapter. Writing appends to
// an internal slice; reading consumes from the front of the same slice via
// a cursor, so a Buffer can be filled by an encoder and then handed
// directly to a decoder without copying.
type Buffer struct {
	b      []byte
	cursor int
}

// NewBuffer creates an empty Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{b: make([]byte, 0, capacity)}
}

// NewBufferFromBytes wraps an existing byte slice for reading. The slice is
// not copied; the caller must not mutate it while the Buffer is in use.
func NewBufferFromBytes(data []byte) *Buffer {
	return &Buffer{b: data}
}

// Bytes returns the buffer's contents written so far.
func (b *Buffer) Bytes() []byte { return b.b }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.b) }

// Reset empties the buffer but retains its backing storage.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
	b.cursor = 0
}

// grow ensures at least n more bytes of spare capacity, using the same
// tiered growth strategy as the teacher's ByteBuffer.Grow: small buffers
// grow by a fixed increment, larger ones by a fraction of current capacity.
func (b *Buffer) grow(n int) {
	available := cap(b.b) - len(b.b)
	if available >= n {
		return
	}

	growBy := DefaultBufferSize
	if cap(b.b) > 4*DefaultBufferSize {
		growBy = cap(b.b) / 4
	}
	if growBy < n {
		growBy = n
	}

	newBuf := make([]byte, len(b.b), len(b.b)+growBy)
	copy(newBuf, b.b)
	b.b = newBuf
}

// Prepare implements Writer.
func (b *Buffer) Prepare(n int) error {
	b.grow(n)
	return nil
}

// WriteByte implements Writer.
func (b *Buffer) WriteByte(v byte) error {
	b.b = append(b.b, v)
	return nil
}

// Write implements Writer.
func (b *Buffer) Write(p []byte) error {
	b.b = append(b.b, p...)
	return nil
}

// Skip implements Writer by appending n bytes equal to fill.
func (b *Buffer) Skip(n int, fill byte) error {
	b.grow(n)
	for i := 0; i < n; i++ {
		b.b = append(b.b, fill)
	}

	return nil
}

// Ensure implements Reader.
func (b *Buffer) Ensure(n int) error {
	if len(b.b)-b.cursor < n {
		return errs.ErrStreamError
	}

	return nil
}

// ReadByte implements Reader.
func (b *Buffer) ReadByte() (byte, error) {
	if err := b.Ensure(1); err != nil {
		return 0, err
	}

	v := b.b[b.cursor]
	b.cursor++

	return v, nil
}

// Read implements Reader.
func (b *Buffer) Read(p []byte) error {
	if err := b.Ensure(len(p)); err != nil {
		return err
	}

	copy(p, b.b[b.cursor:b.cursor+len(p)])
	b.cursor += len(p)

	return nil
}

// skipRead implements Reader's Skip.
func (b *Buffer) skipRead(n int) error {
	if err := b.Ensure(n); err != nil {
		return err
	}

	b.cursor += n

	return nil
}

// AsReader returns a BufferReader view exposing the Reader interface.
func (b *Buffer) AsReader() *BufferReader { return &BufferReader{b} }

// AsWriter returns the Buffer itself as a Writer (Buffer already implements
// every Writer method directly).
func (b *Buffer) AsWriter() Writer { return b }

// PushHandle implements HandleStore by refusing: a plain in-memory buffer
// has no out-of-band channel to carry a handle across.
func (b *Buffer) PushHandle(any) (HandleReference, error) {
	return 0, errs.ErrInvalidHandleReference
}

// GetHandle implements HandleStore; see PushHandle.
func (b *Buffer) GetHandle(HandleReference) (any, error) {
	return nil, errs.ErrInvalidHandleReference
}

// BufferReader adapts a Buffer to the Reader interface; Buffer's own Skip
// method is reserved for the Writer role (Skip(n, fill)), so reading uses
// this thin wrapper to provide Skip(n) instead.
type BufferReader struct {
	buf *Buffer
}

func (r *BufferReader) Ensure(n int) error               { return r.buf.Ensure(n) }
func (r *BufferReader) ReadByte() (byte, error)          { return r.buf.ReadByte() }
func (r *BufferReader) Read(p []byte) error              { return r.buf.Read(p) }
func (r *BufferReader) Skip(n int) error                 { return r.buf.skipRead(n) }
func (r *BufferReader) GetHandle(ref HandleReference) (any, error) {
	return r.buf.GetHandle(ref)
}

var bufferPool = sync.Pool{
	New: func() any { return NewBuffer(DefaultBufferSize) },
}

// GetPooledBuffer retrieves a reset Buffer from a shared pool, avoiding an
// allocation on the common encode-then-discard path.
func GetPooledBuffer() *Buffer {
	buf, _ := bufferPool.Get().(*Buffer)
	return buf
}

// PutPooledBuffer returns a Buffer to the shared pool. Oversized buffers
// are dropped rather than retained, matching the teacher's maxThreshold
// behavior, to avoid pinning large allocations in the pool indefinitely.
func PutPooledBuffer(b *Buffer) {
	if b == nil {
		return
	}

	if cap(b.b) > MaxBufferThreshold {
		return
	}

	b.Reset()
	bufferPool.Put(b)
}
