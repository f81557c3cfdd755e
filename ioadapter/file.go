package ioadapter

import (
	"io"
	"os"

	"github.com/arloliu/nop/errs"
)

// File adapts a blocking *os.File for writing. Prepare is a no-op: a
// blocking file descriptor has no buffering to hint at.
type File struct {
	f *os.File
}

// NewFile wraps f as a Writer.
func NewFile(f *os.File) *File { return &File{f: f} }

// Prepare implements Writer.
func (a *File) Prepare(int) error { return nil }

// WriteByte implements Writer.
func (a *File) WriteByte(b byte) error {
	if _, err := a.f.Write([]byte{b}); err != nil {
		return errs.ErrIOError
	}

	return nil
}

// Write implements Writer.
func (a *File) Write(p []byte) error {
	if _, err := a.f.Write(p); err != nil {
		return errs.ErrIOError
	}

	return nil
}

// Skip implements Writer by writing n bytes equal to fill.
func (a *File) Skip(n int, fill byte) error {
	if n == 0 {
		return nil
	}

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = fill
	}

	if _, err := a.f.Write(buf); err != nil {
		return errs.ErrIOError
	}

	return nil
}

// PushHandle implements Writer; plain file adapters carry no out-of-band
// handle channel (the fd-passing mechanism itself is out of scope per the
// spec), so this always fails.
func (a *File) PushHandle(any) (HandleReference, error) {
	return 0, errs.ErrInvalidHandleReference
}

// FileReader adapts a blocking *os.File for reading.
type FileReader struct {
	f *os.File
}

// NewFileReader wraps f as a Reader.
func NewFileReader(f *os.File) *FileReader { return &FileReader{f: f} }

// Ensure implements Reader; a blocking file has no "not yet buffered"
// state, so Ensure only checks the handle itself is present.
func (a *FileReader) Ensure(n int) error {
	if a.f == nil {
		return errs.ErrStreamError
	}

	return nil
}

// ReadByte implements Reader.
func (a *FileReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(a.f, b[:]); err != nil {
		return 0, errs.ErrStreamError
	}

	return b[0], nil
}

// Read implements Reader.
func (a *FileReader) Read(p []byte) error {
	if len(p) == 0 {
		return nil
	}

	if _, err := io.ReadFull(a.f, p); err != nil {
		return errs.ErrStreamError
	}

	return nil
}

// Skip implements Reader by discarding n bytes.
func (a *FileReader) Skip(n int) error {
	if n == 0 {
		return nil
	}

	if _, err := io.CopyN(io.Discard, a.f, int64(n)); err != nil {
		return errs.ErrStreamError
	}

	return nil
}

// GetHandle implements Reader; see File.PushHandle.
func (a *FileReader) GetHandle(HandleReference) (any, error) {
	return nil, errs.ErrInvalidHandleReference
}
