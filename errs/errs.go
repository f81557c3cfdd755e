// Package errs defines the closed set of errors the codec can return.
//
// Every fallible operation in this module returns a plain Go error built
// from one of the sentinels below. CodecError is a closed enum: no package
// outside errs defines new members, and callers that need the underlying
// kind (rather than just the opaque error) can recover it with Code.
package errs

import "fmt"

// CodecError identifies one of the fixed codec failure kinds.
type CodecError uint8

const (
	// UnexpectedEncodingType means the prefix byte on the wire falls
	// outside the declared target type's match set.
	UnexpectedEncodingType CodecError = iota + 1
	// UnexpectedHandleType means a handle's type tag does not match the
	// declared handle policy's tag.
	UnexpectedHandleType
	// UnexpectedVariantType means a variant's index fell outside [-1, n).
	UnexpectedVariantType
	// InvalidContainerLength means a fixed-length/tuple/array length
	// mismatched, or a buffer pair's length exceeded its declared capacity.
	InvalidContainerLength
	// InvalidMemberCount means a record's wire member count did not equal
	// the declared member count.
	InvalidMemberCount
	// InvalidStringLength means a string's byte length was not a multiple
	// of its code unit size.
	InvalidStringLength
	// InvalidTableHash means a table's wire hash did not match the
	// declared name-derived hash.
	InvalidTableHash
	// InvalidHandleReference means a handle reference could not be
	// resolved by the active HandleStore.
	InvalidHandleReference
	// InvalidHandleValue means a handle failed its policy's validity
	// predicate.
	InvalidHandleValue
	// InvalidInterfaceMethod means a protocol method selector did not
	// resolve to a declared method.
	InvalidInterfaceMethod
	// DuplicateTableEntry means a second entry for an already-populated
	// table id was encountered on the wire.
	DuplicateTableEntry
	// ReadLimitReached means a bounded reader's byte budget was exceeded.
	ReadLimitReached
	// WriteLimitReached means a bounded writer's byte budget was exceeded.
	WriteLimitReached
	// StreamError is an opaque failure from the underlying I/O adapter
	// while reading.
	StreamError
	// IOError is an opaque failure from the underlying I/O adapter while
	// writing.
	IOError
	// SystemError is an opaque failure unrelated to the wire format
	// itself (e.g. allocation failure in an adapter).
	SystemError
)

var messages = map[CodecError]string{
	UnexpectedEncodingType:  "unexpected encoding type",
	UnexpectedHandleType:    "unexpected handle type",
	UnexpectedVariantType:   "unexpected variant type",
	InvalidContainerLength:  "invalid container length",
	InvalidMemberCount:      "invalid member count",
	InvalidStringLength:     "invalid string length",
	InvalidTableHash:        "invalid table hash",
	InvalidHandleReference:  "invalid handle reference",
	InvalidHandleValue:      "invalid handle value",
	InvalidInterfaceMethod:  "invalid interface method",
	DuplicateTableEntry:     "duplicate table entry",
	ReadLimitReached:        "read limit reached",
	WriteLimitReached:       "write limit reached",
	StreamError:             "stream error",
	IOError:                 "io error",
	SystemError:             "system error",
}

// Error implements the error interface.
func (c CodecError) Error() string {
	if msg, ok := messages[c]; ok {
		return msg
	}

	return fmt.Sprintf("codec error (%d)", uint8(c))
}

// Sentinel errors, one per CodecError kind, matching the teacher's
// errs.Err* naming convention. These are the values callers compare
// against with errors.Is.
var (
	ErrUnexpectedEncodingType = UnexpectedEncodingType
	ErrUnexpectedHandleType   = UnexpectedHandleType
	ErrUnexpectedVariantType  = UnexpectedVariantType
	ErrInvalidContainerLength = InvalidContainerLength
	ErrInvalidMemberCount     = InvalidMemberCount
	ErrInvalidStringLength    = InvalidStringLength
	ErrInvalidTableHash       = InvalidTableHash
	ErrInvalidHandleReference = InvalidHandleReference
	ErrInvalidHandleValue     = InvalidHandleValue
	ErrInvalidInterfaceMethod = InvalidInterfaceMethod
	ErrDuplicateTableEntry    = DuplicateTableEntry
	ErrReadLimitReached       = ReadLimitReached
	ErrWriteLimitReached      = WriteLimitReached
	ErrStreamError            = StreamError
	ErrIOError                = IOError
	ErrSystemError            = SystemError
)

// Code recovers the CodecError kind from an error, if it is one of ours.
func Code(err error) (CodecError, bool) {
	c, ok := err.(CodecError)
	return c, ok
}
