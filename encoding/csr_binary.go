package encoding

import (
	"io"

	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
)

// EncodeCSR writes csr as a CSR-binary stream and returns the number of bytes
// written.
func EncodeCSR(w io.Writer, csr *sparse.CSR) (int64, error) {
	shape := csr.Shape()
	header := section.CSRHeader{
		Height:    uint32(shape.Height),      //nolint:gosec
		Width:     uint32(shape.Width),       //nolint:gosec
		Channels:  uint8(shape.Channels),     //nolint:gosec
		RowPtrLen: uint32(len(csr.RowPtr())), //nolint:gosec
		ColIdxLen: uint32(len(csr.ColIdx())), //nolint:gosec
		ValuesLen: uint32(len(csr.Values())), //nolint:gosec
	}

	sw := newStreamWriter(w)
	sw.buf.B = header.AppendTo(sw.buf.B)
	sw.appendUint32s(csr.RowPtr())
	sw.appendUint32s(csr.ColIdx())
	sw.appendUint32s(csr.Values())

	return sw.close()
}

// DecodeCSR reads one CSR-binary stream from r.
//
// Returns:
//   - ErrBadMagic when the stream does not start with "SPCS"
//   - ErrShapeMismatch when rowPtrLen != height+1 or colIdxLen != valuesLen
//   - ErrTruncatedStream when the header or any array is cut short
//   - ErrInvalidShape, ErrOutOfRange or ErrInvalidValue when the decoded
//     arrays violate a CSR invariant
func DecodeCSR(r io.Reader) (*sparse.CSR, error) {
	var hdr [section.CSRHeaderSize]byte
	if err := readMagic(r, hdr[:], section.MagicCSR); err != nil {
		return nil, err
	}

	if err := readFull(r, hdr[section.MagicSize:], "CSR header"); err != nil {
		return nil, err
	}

	var header section.CSRHeader
	if err := header.Parse(hdr[:]); err != nil {
		return nil, err
	}

	shape, err := sparse.NewShape(int(header.Height), int(header.Width), int(header.Channels))
	if err != nil {
		return nil, err
	}

	if err := header.Validate(); err != nil {
		return nil, err
	}

	chunk := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(chunk)
	chunk.Grow(pool.StreamBufferDefaultSize)
	buf := chunk.B[:pool.StreamBufferDefaultSize]

	rowPtr, err := readUint32s(r, make([]uint32, 0, initialCap(uint64(header.RowPtrLen))),
		uint64(header.RowPtrLen), buf, "CSR row_ptr")
	if err != nil {
		return nil, err
	}

	colIdx, err := readUint32s(r, make([]uint32, 0, initialCap(uint64(header.ColIdxLen))),
		uint64(header.ColIdxLen), buf, "CSR col_idx")
	if err != nil {
		return nil, err
	}

	values, err := readUint32s(r, make([]uint32, 0, initialCap(uint64(header.ValuesLen))),
		uint64(header.ValuesLen), buf, "CSR values")
	if err != nil {
		return nil, err
	}

	return sparse.NewCSR(shape, rowPtr, colIdx, values)
}
