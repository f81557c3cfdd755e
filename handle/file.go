package handle

import "os"

// fileHandleTypeTag matches the original file-handle policy's placeholder
// type tag; libnop never defined a real handle-type enum beyond this.
const fileHandleTypeTag uint64 = 1

// FilePolicy is a Policy[*os.File] for managing an open file's lifetime
// through a Ref. The empty value is nil.
type FilePolicy struct{}

var _ Policy[*os.File] = FilePolicy{}

func (FilePolicy) Empty() *os.File { return nil }

func (FilePolicy) Valid(f *os.File) bool { return f != nil }

func (FilePolicy) Close(f **os.File) {
	if *f != nil {
		(*f).Close()
	}

	*f = nil
}

func (FilePolicy) Release(f **os.File) *os.File {
	prev := *f
	*f = nil

	return prev
}

func (FilePolicy) TypeTag() uint64 { return fileHandleTypeTag }

// OpenFile opens path and returns it wrapped in a Ref under FilePolicy.
func OpenFile(path string, flag int, perm os.FileMode) (*Ref[*os.File], error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return NewRef[*os.File](f, FilePolicy{}), nil
}
