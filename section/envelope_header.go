package section

import (
	"fmt"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
)

// EnvelopeHeader is the fixed prefix of a compressed SPZ1 envelope.
type EnvelopeHeader struct {
	// Checksum is the xxHash64 of the uncompressed inner stream.
	Checksum uint64 // byte offset 10-17
	// RawLength is the length of the uncompressed inner stream.
	RawLength uint32 // byte offset 6-9
	// Compression is the algorithm used for the payload.
	Compression format.CompressionType // byte offset 4
}

// Parse parses the header from a byte slice.
//
// Returns:
//   - error: ErrTruncatedStream for a wrong size, ErrBadMagic for a wrong tag,
//     ErrInvalidCompression for an unknown compression byte
func (h *EnvelopeHeader) Parse(data []byte) error {
	if len(data) != EnvelopeHeaderSize {
		return fmt.Errorf("%w: envelope header is %d bytes, want %d", errs.ErrTruncatedStream, len(data), EnvelopeHeaderSize)
	}

	if !HasMagic(data, MagicEnvelope) {
		return fmt.Errorf("%w: got %q, want %q", errs.ErrBadMagic, data[:MagicSize], MagicEnvelope)
	}

	compression := format.CompressionType(data[4])
	if !compression.IsValid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrInvalidCompression, data[4])
	}

	engine := endian.GetLittleEndianEngine()
	h.Compression = compression
	h.RawLength = engine.Uint32(data[6:10])
	h.Checksum = engine.Uint64(data[10:18])

	return nil
}

// Bytes serializes the header into a new 18-byte slice.
func (h *EnvelopeHeader) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, EnvelopeHeaderSize)
	b = append(b, MagicEnvelope...)
	b = append(b, byte(h.Compression), 0)
	b = engine.AppendUint32(b, h.RawLength)
	b = engine.AppendUint64(b, h.Checksum)

	return b
}
