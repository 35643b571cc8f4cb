package section

import (
	"fmt"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
)

// COOHeader is the fixed prefix of a COO-binary stream.
type COOHeader struct {
	Height   uint32 // byte offset 4-7
	Width    uint32 // byte offset 8-11
	NNZ      uint32 // byte offset 14-17
	Channels uint8  // byte offset 12
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 18 bytes)
//
// Returns:
//   - error: ErrTruncatedStream for a wrong size, ErrBadMagic for a wrong tag
func (h *COOHeader) Parse(data []byte) error {
	if len(data) != COOHeaderSize {
		return fmt.Errorf("%w: COO header is %d bytes, want %d", errs.ErrTruncatedStream, len(data), COOHeaderSize)
	}

	if !HasMagic(data, MagicCOO) {
		return fmt.Errorf("%w: got %q, want %q", errs.ErrBadMagic, data[:MagicSize], MagicCOO)
	}

	engine := endian.GetLittleEndianEngine()
	h.Height = engine.Uint32(data[4:8])
	h.Width = engine.Uint32(data[8:12])
	h.Channels = data[12]
	h.NNZ = engine.Uint32(data[14:18])

	return nil
}

// Bytes serializes the header into a new 18-byte slice.
func (h *COOHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, COOHeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *COOHeader) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, MagicCOO...)
	dst = engine.AppendUint32(dst, h.Height)
	dst = engine.AppendUint32(dst, h.Width)
	dst = append(dst, h.Channels, 0)
	dst = engine.AppendUint32(dst, h.NNZ)

	return dst
}

// PayloadSize returns the byte length of the records that follow the header.
func (h *COOHeader) PayloadSize() uint64 {
	return uint64(h.NNZ) * COORecordSize
}
