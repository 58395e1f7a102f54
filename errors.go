package diskvec

import "errors"

// Sentinel errors returned by diskvec operations.
//
// Callers should use [errors.Is] to check error types, since I/O failures
// from [Open] and [Vector.Push] are wrapped with additional context via
// fmt.Errorf and %w before being returned.
var (
	// ErrInvalidValue indicates [Vector.Push] was called with the zero
	// value of T, which is reserved to mean "slot never written".
	//
	// This is a programming error: the caller's value happened to be the
	// all-zero bit pattern for T. Callers storing values whose domain
	// includes all-zero bytes should wrap T with a tag byte or checksum
	// field that cannot itself be all zero.
	ErrInvalidValue = errors.New("diskvec: cannot push the zero value of T")

	// ErrClosed indicates the [Vector] has already been closed.
	//
	// This is a programming error.
	ErrClosed = errors.New("diskvec: closed")
)
