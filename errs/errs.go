// Package errs defines the sentinel errors returned by sparsepix packages.
//
// Errors are wrapped with context by the returning package, so callers should
// compare with errors.Is rather than equality:
//
//	coo, err := encoding.DecodeCOO(r)
//	if errors.Is(err, errs.ErrBadMagic) {
//	    // not an SPCO stream
//	}
package errs

import "errors"

// Matrix access and construction errors.
var (
	// ErrOutOfRange is returned when a coordinate lies outside the declared shape.
	ErrOutOfRange = errors.New("coordinate out of range")
	// ErrUnsupportedOperation is returned when point mutation is requested on a
	// representation that cannot be edited in place (COO, CSR).
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrShapeMismatch is returned when a structural invariant is violated,
	// e.g. a row pointer array of the wrong length or a duplicate coordinate.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidShape is returned for non-positive dimensions or a channel
	// count other than 1 or 3.
	ErrInvalidShape = errors.New("invalid shape")
	// ErrInvalidValue is returned when a stored value is zero or exceeds the
	// maximum for the channel count.
	ErrInvalidValue = errors.New("invalid pixel value")
	// ErrInvalidKind is returned for an unknown sparse representation kind.
	ErrInvalidKind = errors.New("invalid matrix kind")
)

// Transform errors.
var (
	// ErrInvalidBounds is returned when a crop box is empty or exceeds the shape.
	ErrInvalidBounds = errors.New("invalid crop bounds")
	// ErrInvalidAxis is returned for an unknown flip axis.
	ErrInvalidAxis = errors.New("invalid flip axis")
)

// Serialization errors.
var (
	// ErrBadMagic is returned when a stream does not start with the expected magic tag.
	ErrBadMagic = errors.New("bad magic")
	// ErrTruncatedStream is returned when fewer bytes remain than a header declares.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrUnknownChannelData is returned when a container lacks both COO and CSR
	// entries for a declared channel.
	ErrUnknownChannelData = errors.New("unknown channel data")
	// ErrInvalidCompression is returned for an unknown compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
	// ErrChecksumMismatch is returned when an envelope payload fails its checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUnsupportedVersion is returned when container metadata declares a
	// version newer than this reader understands.
	ErrUnsupportedVersion = errors.New("unsupported container version")
)
