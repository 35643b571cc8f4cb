package encoding

import (
	"fmt"
	"io"

	"github.com/arloliu/sparsepix/endian"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/section"
	"github.com/arloliu/sparsepix/sparse"
)

// canonicalCOO returns coo itself when it is already row-major ordered and a
// reordered copy otherwise.
func canonicalCOO(coo *sparse.COO) (*sparse.COO, error) {
	if coo.Canonical() {
		return coo, nil
	}

	csr, err := sparse.COOToCSR(coo)
	if err != nil {
		return nil, err
	}

	return sparse.CSRToCOO(csr), nil
}

// EncodeCOO writes coo as a COO-binary stream and returns the number of bytes
// written. Records are emitted in row-major order, so equal matrices always
// produce identical output.
func EncodeCOO(w io.Writer, coo *sparse.COO) (int64, error) {
	coo, err := canonicalCOO(coo)
	if err != nil {
		return 0, err
	}

	shape := coo.Shape()
	header := section.COOHeader{
		Height:   uint32(shape.Height),  //nolint:gosec
		Width:    uint32(shape.Width),   //nolint:gosec
		Channels: uint8(shape.Channels), //nolint:gosec
		NNZ:      uint32(coo.NNZ()),     //nolint:gosec
	}

	sw := newStreamWriter(w)
	sw.buf.B = header.AppendTo(sw.buf.B)

	rows, cols, values := coo.Rows(), coo.Cols(), coo.Values()
	for i := range values {
		sw.appendUint32(rows[i])
		sw.appendUint32(cols[i])
		sw.appendUint32(values[i])
	}

	return sw.close()
}

// DecodeCOO reads one COO-binary stream from r.
//
// Returns:
//   - ErrBadMagic when the stream does not start with "SPCO"
//   - ErrTruncatedStream when the header or any record is cut short
//   - ErrInvalidShape, ErrOutOfRange, ErrInvalidValue or ErrShapeMismatch
//     when the decoded data violates a COO invariant
func DecodeCOO(r io.Reader) (*sparse.COO, error) {
	var hdr [section.COOHeaderSize]byte
	if err := readMagic(r, hdr[:], section.MagicCOO); err != nil {
		return nil, err
	}

	if err := readFull(r, hdr[section.MagicSize:], "COO header"); err != nil {
		return nil, err
	}

	var header section.COOHeader
	if err := header.Parse(hdr[:]); err != nil {
		return nil, err
	}

	shape, err := sparse.NewShape(int(header.Height), int(header.Width), int(header.Channels))
	if err != nil {
		return nil, err
	}

	chunk := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(chunk)
	chunk.Grow(pool.StreamBufferDefaultSize)
	buf := chunk.B[:(pool.StreamBufferDefaultSize/section.COORecordSize)*section.COORecordSize]

	nnz := uint64(header.NNZ)
	capHint := initialCap(nnz)
	rows := make([]uint32, 0, capHint)
	cols := make([]uint32, 0, capHint)
	values := make([]uint32, 0, capHint)

	perChunk := uint64(len(buf) / section.COORecordSize)
	engine := endian.GetLittleEndianEngine()
	what := fmt.Sprintf("COO records (%d declared)", nnz)
	for remaining := nnz; remaining > 0; {
		n := min(remaining, perChunk)
		b := buf[:n*section.COORecordSize]
		if err := readFull(r, b, what); err != nil {
			return nil, err
		}

		for off := 0; off < len(b); off += section.COORecordSize {
			rows = append(rows, engine.Uint32(b[off:off+4]))
			cols = append(cols, engine.Uint32(b[off+4:off+8]))
			values = append(values, engine.Uint32(b[off+8:off+12]))
		}
		remaining -= n
	}

	return sparse.NewCOO(shape, rows, cols, values)
}
