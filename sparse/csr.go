package sparse

import (
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/pixel"
)

// CSR is the compressed-sparse-row representation.
//
// Invariants: len(rowPtr) == height+1, rowPtr[0] == 0, rowPtr is
// non-decreasing, rowPtr[height] == nnz, and the column indices of each row
// colIdx[rowPtr[r]:rowPtr[r+1]] are strictly increasing.
type CSR struct {
	shape  Shape
	rowPtr []uint32
	colIdx []uint32
	values []uint32
}

// NewCSR validates and wraps the given arrays. The slices are owned by the
// returned CSR afterwards and must not be modified by the caller.
//
// Returns:
//   - ErrInvalidShape for an invalid shape
//   - ErrShapeMismatch when any row pointer invariant fails, the column and
//     value arrays differ in length, or a row repeats or misorders a column
//   - ErrOutOfRange for a column index outside the shape
//   - ErrInvalidValue for a zero value or one too wide for the channel count
func NewCSR(shape Shape, rowPtr, colIdx, values []uint32) (*CSR, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	if err := validateCSR(shape, rowPtr, colIdx, values); err != nil {
		return nil, err
	}

	return &CSR{shape: shape, rowPtr: rowPtr, colIdx: colIdx, values: values}, nil
}

// EmptyCSR returns a CSR with no entries.
func EmptyCSR(shape Shape) (*CSR, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &CSR{
		shape:  shape,
		rowPtr: make([]uint32, shape.Height+1),
		colIdx: []uint32{},
		values: []uint32{},
	}, nil
}

func validateCSR(shape Shape, rowPtr, colIdx, values []uint32) error {
	if len(rowPtr) != shape.Height+1 {
		return fmt.Errorf("%w: row_ptr length %d, want %d", errs.ErrShapeMismatch, len(rowPtr), shape.Height+1)
	}

	if len(colIdx) != len(values) {
		return fmt.Errorf("%w: col_idx length %d, values length %d", errs.ErrShapeMismatch, len(colIdx), len(values))
	}

	if rowPtr[0] != 0 {
		return fmt.Errorf("%w: row_ptr[0] = %d", errs.ErrShapeMismatch, rowPtr[0])
	}

	if int(rowPtr[shape.Height]) != len(values) {
		return fmt.Errorf("%w: row_ptr[%d] = %d, nnz = %d", errs.ErrShapeMismatch, shape.Height, rowPtr[shape.Height], len(values))
	}

	// Bound every pointer before any row is indexed.
	for r := range shape.Height {
		if rowPtr[r+1] < rowPtr[r] {
			return fmt.Errorf("%w: row_ptr decreases at row %d", errs.ErrShapeMismatch, r)
		}
		if int(rowPtr[r+1]) > len(values) {
			return fmt.Errorf("%w: row_ptr[%d] = %d exceeds nnz %d", errs.ErrShapeMismatch, r+1, rowPtr[r+1], len(values))
		}
	}

	for r := range shape.Height {
		start, end := rowPtr[r], rowPtr[r+1]
		for i := start; i < end; i++ {
			if int(colIdx[i]) >= shape.Width {
				return fmt.Errorf("%w: (%d, %d) outside %dx%d", errs.ErrOutOfRange, r, colIdx[i], shape.Height, shape.Width)
			}

			if i > start && colIdx[i] <= colIdx[i-1] {
				return fmt.Errorf("%w: row %d columns not strictly increasing at %d", errs.ErrShapeMismatch, r, colIdx[i])
			}

			if err := pixel.Validate(values[i], shape.Channels); err != nil {
				return fmt.Errorf("entry (%d, %d): %w", r, colIdx[i], err)
			}
		}
	}

	return nil
}

// Kind returns format.KindCSR.
func (c *CSR) Kind() format.Kind { return format.KindCSR }

// Shape returns the matrix shape.
func (c *CSR) Shape() Shape { return c.shape }

// NNZ returns the number of entries.
func (c *CSR) NNZ() int { return len(c.values) }

// RowPtr returns the row pointer array. The caller must not modify it.
func (c *CSR) RowPtr() []uint32 { return c.rowPtr }

// ColIdx returns the column index array. The caller must not modify it.
func (c *CSR) ColIdx() []uint32 { return c.colIdx }

// Values returns the value array. The caller must not modify it.
func (c *CSR) Values() []uint32 { return c.values }

// Row returns the column indices and values stored for row r.
func (c *CSR) Row(r int) (cols, vals []uint32) {
	start, end := c.rowPtr[r], c.rowPtr[r+1]
	return c.colIdx[start:end], c.values[start:end]
}

// At returns the value at (row, col), or 0 when absent. The lookup is a
// binary search inside the row.
func (c *CSR) At(row, col int) (uint32, error) {
	if err := c.shape.checkBounds(row, col); err != nil {
		return 0, err
	}

	cols, vals := c.Row(row)
	target := uint32(col) //nolint: gosec
	i := sort.Search(len(cols), func(i int) bool { return cols[i] >= target })
	if i < len(cols) && cols[i] == target {
		return vals[i], nil
	}

	return 0, nil
}

// ToDense returns the dense form of the matrix.
func (c *CSR) ToDense() *Dense {
	return scatter(c)
}

// All yields entries row by row.
func (c *CSR) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for r := range c.shape.Height {
			for i := c.rowPtr[r]; i < c.rowPtr[r+1]; i++ {
				if !yield(Entry{Row: r, Col: int(c.colIdx[i]), Value: c.values[i]}) {
					return
				}
			}
		}
	}
}

// Clone returns a CSR with its own copies of the arrays.
func (c *CSR) Clone() *CSR {
	return &CSR{
		shape:  c.shape,
		rowPtr: slices.Clone(c.rowPtr),
		colIdx: slices.Clone(c.colIdx),
		values: slices.Clone(c.values),
	}
}

func (c *CSR) String() string {
	return fmt.Sprintf("CSR%s nnz=%d", c.shape, len(c.values))
}
