// File: internal/types/errors.go
package types

import "errors"

// Error kinds surfaced by descriptor loading and the copy engine. Callers
// classify failures with errors.Is; no error is retried internally.
var (
	// ErrNotFound reports a missing descriptor file, source image, or
	// target device path
	ErrNotFound = errors.New("not found")

	// ErrEmptyDescriptor reports a descriptor file with zero bytes
	ErrEmptyDescriptor = errors.New("descriptor file is empty")

	// ErrParse reports a missing or malformed descriptor field
	ErrParse = errors.New("descriptor parse error")

	// ErrUnsupportedFormat reports a source image extension that is not a
	// recognized image format
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrNotImplemented reports a recognized but unsupported compressed
	// image format
	ErrNotImplemented = errors.New("not implemented")

	// ErrIO reports a failed or short read/write on the source image or
	// target device
	ErrIO = errors.New("i/o error")
)
