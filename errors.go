package simplevector

import "errors"

var (
	// ErrOutOfMemory indicates that a buffer acquisition could not be satisfied.
	// The operation that triggered it leaves the vector exactly as it was.
	ErrOutOfMemory = errors.New("simplevector: out of memory")

	// ErrOutOfRange is returned by the checked accessors when the index is not
	// below the current size.
	ErrOutOfRange = errors.New("simplevector: index out of range")
)
