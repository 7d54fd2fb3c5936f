// Package errs defines the sentinel errors returned by meshpack packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") at the call site,
// so callers should compare with errors.Is rather than by equality.
package errs

import "errors"

// Selector errors.
var (
	// ErrInvalidInput is returned when no geometry or no output buffer is bound to an encoder.
	ErrInvalidInput = errors.New("invalid input geometry")
	// ErrInvalidEncodingMethod is returned when an explicitly requested encoding method
	// cannot be used for the bound geometry.
	ErrInvalidEncodingMethod = errors.New("invalid encoding method")
	// ErrInvalidOption is returned when an option value is out of range.
	ErrInvalidOption = errors.New("invalid option")
)

// Geometry errors.
var (
	ErrInvalidAttribute      = errors.New("invalid attribute")
	ErrAttributeSizeMismatch = errors.New("attribute point count mismatch")
	ErrInvalidFace           = errors.New("invalid face")
	ErrEmptyGeometry         = errors.New("geometry has nothing to encode")
)

// Encoder errors.
var (
	ErrUnsupportedDataType = errors.New("unsupported attribute data type")
	ErrMissingQuantization = errors.New("floating point attribute requires quantization")
)

// Stream errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrUnsupportedVersion = errors.New("unsupported stream version")
	ErrTruncatedBody      = errors.New("truncated body")
	ErrChecksumMismatch   = errors.New("body checksum mismatch")
)
