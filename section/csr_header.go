package section

import (
	"fmt"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/errs"
)

// CSRHeader is the fixed prefix of a CSR-binary stream.
type CSRHeader struct {
	Height    uint32 // byte offset 4-7
	Width     uint32 // byte offset 8-11
	RowPtrLen uint32 // byte offset 14-17
	ColIdxLen uint32 // byte offset 18-21
	ValuesLen uint32 // byte offset 22-25
	Channels  uint8  // byte offset 12
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 26 bytes)
//
// Returns:
//   - error: ErrTruncatedStream for a wrong size, ErrBadMagic for a wrong tag
func (h *CSRHeader) Parse(data []byte) error {
	if len(data) != CSRHeaderSize {
		return fmt.Errorf("%w: CSR header is %d bytes, want %d", errs.ErrTruncatedStream, len(data), CSRHeaderSize)
	}

	if !HasMagic(data, MagicCSR) {
		return fmt.Errorf("%w: got %q, want %q", errs.ErrBadMagic, data[:MagicSize], MagicCSR)
	}

	engine := endian.GetLittleEndianEngine()
	h.Height = engine.Uint32(data[4:8])
	h.Width = engine.Uint32(data[8:12])
	h.Channels = data[12]
	h.RowPtrLen = engine.Uint32(data[14:18])
	h.ColIdxLen = engine.Uint32(data[18:22])
	h.ValuesLen = engine.Uint32(data[22:26])

	return nil
}

// Validate checks the array lengths against each other and the height.
//
// Returns ErrShapeMismatch when RowPtrLen != Height+1 or ColIdxLen != ValuesLen.
func (h *CSRHeader) Validate() error {
	if uint64(h.RowPtrLen) != uint64(h.Height)+1 {
		return fmt.Errorf("%w: rowPtrLen %d for height %d", errs.ErrShapeMismatch, h.RowPtrLen, h.Height)
	}

	if h.ColIdxLen != h.ValuesLen {
		return fmt.Errorf("%w: colIdxLen %d, valuesLen %d", errs.ErrShapeMismatch, h.ColIdxLen, h.ValuesLen)
	}

	return nil
}

// Bytes serializes the header into a new 26-byte slice.
func (h *CSRHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, CSRHeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *CSRHeader) AppendTo(dst []byte) []byte {
	engine := endian.GetLittleEndianEngine()

	dst = append(dst, MagicCSR...)
	dst = engine.AppendUint32(dst, h.Height)
	dst = engine.AppendUint32(dst, h.Width)
	dst = append(dst, h.Channels, 0)
	dst = engine.AppendUint32(dst, h.RowPtrLen)
	dst = engine.AppendUint32(dst, h.ColIdxLen)
	dst = engine.AppendUint32(dst, h.ValuesLen)

	return dst
}

// PayloadSize returns the byte length of the three arrays that follow the header.
func (h *CSRHeader) PayloadSize() uint64 {
	return (uint64(h.RowPtrLen) + uint64(h.ColIdxLen) + uint64(h.ValuesLen)) * ArrayElemSize
}
