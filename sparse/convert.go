package sparse

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/pool"
)

// DenseToDOK extracts every cell whose scalar differs from background.
//
// For three-channel arrays the comparison is made on the packed RGB value.
// Zero cells are never stored, even with a non-zero background, since a DOK
// cannot hold 0.
func DenseToDOK(d *Dense, background uint32) (*DOK, error) {
	if err := d.Shape.Validate(); err != nil {
		return nil, err
	}

	if want := d.Shape.Cells() * d.Shape.Channels; len(d.Pix) != want {
		return nil, fmt.Errorf("%w: %d bytes for shape %s, want %d", errs.ErrShapeMismatch, len(d.Pix), d.Shape, want)
	}

	dok := newDOKSized(d.Shape, 0)
	for r := range d.Shape.Height {
		for c := range d.Shape.Width {
			if v := d.Value(r, c); v != background && v != 0 {
				dok.set(r, c, v)
			}
		}
	}

	return dok, nil
}

// FromDense extracts d with a zero background and converts the result to kind.
func FromDense(d *Dense, kind format.Kind) (Matrix, error) {
	dok, err := DenseToDOK(d, 0)
	if err != nil {
		return nil, err
	}

	return ToKind(dok, kind)
}

// DOKToCOO emits the entries of dok sorted by (row, col). The result is
// canonical, so equal DOKs always produce identical COO arrays.
func DOKToCOO(dok *DOK) *COO {
	n := dok.NNZ()
	rows := make([]uint32, 0, n)
	cols := make([]uint32, 0, n)
	values := make([]uint32, 0, n)

	for e := range dok.Sorted() {
		rows = append(rows, uint32(e.Row)) //nolint: gosec
		cols = append(cols, uint32(e.Col)) //nolint: gosec
		values = append(values, e.Value)
	}

	return &COO{shape: dok.shape, rows: rows, cols: cols, values: values, canonical: true}
}

// COOToCSR orders the triples of coo by row, then column, and compresses the
// row indices into row pointers. Rows without entries get
// rowPtr[r] == rowPtr[r+1].
//
// Returns ErrShapeMismatch when an entry lies outside the declared height or
// a coordinate repeats.
func COOToCSR(coo *COO) (*CSR, error) {
	n := coo.NNZ()
	height := coo.shape.Height

	order, cleanup := pool.GetIntSlice(n)
	defer cleanup()

	for i := range order {
		order[i] = i
	}

	if !coo.canonical {
		slices.SortStableFunc(order, func(a, b int) int {
			if c := cmp.Compare(coo.rows[a], coo.rows[b]); c != 0 {
				return c
			}

			return cmp.Compare(coo.cols[a], coo.cols[b])
		})
	}

	rowPtr := make([]uint32, height+1)
	colIdx := make([]uint32, n)
	values := make([]uint32, n)

	cursor := 0
	for i, src := range order {
		row := int(coo.rows[src])
		if row >= height {
			return nil, fmt.Errorf("%w: row %d outside height %d", errs.ErrShapeMismatch, row, height)
		}

		if i > 0 {
			prev := order[i-1]
			if coo.rows[prev] == coo.rows[src] && coo.cols[prev] == coo.cols[src] {
				return nil, fmt.Errorf("%w: duplicate coordinate (%d, %d)", errs.ErrShapeMismatch, row, coo.cols[src])
			}
		}

		// close every row up to and including the previous one
		for cursor < row {
			cursor++
			rowPtr[cursor] = uint32(i) //nolint: gosec
		}

		colIdx[i] = coo.cols[src]
		values[i] = coo.values[src]
	}

	for cursor < height {
		cursor++
		rowPtr[cursor] = uint32(n) //nolint: gosec
	}

	return &CSR{shape: coo.shape, rowPtr: rowPtr, colIdx: colIdx, values: values}, nil
}

// CSRToDOK inserts every (row, colIdx[i], values[i]) of csr into a new DOK.
func CSRToDOK(csr *CSR) *DOK {
	dok := newDOKSized(csr.shape, csr.NNZ())
	for r := range csr.shape.Height {
		for i := csr.rowPtr[r]; i < csr.rowPtr[r+1]; i++ {
			dok.set(r, int(csr.colIdx[i]), csr.values[i])
		}
	}

	return dok
}

// DOKToCSR is COOToCSR applied to DOKToCOO.
func DOKToCSR(dok *DOK) (*CSR, error) {
	return COOToCSR(DOKToCOO(dok))
}

// COOToDOK inserts every triple of coo into a new DOK.
func COOToDOK(coo *COO) *DOK {
	dok := newDOKSized(coo.shape, coo.NNZ())
	for i := range coo.values {
		dok.set(int(coo.rows[i]), int(coo.cols[i]), coo.values[i])
	}

	return dok
}

// CSRToCOO expands the row pointers of csr back into row indices. The result
// is canonical.
func CSRToCOO(csr *CSR) *COO {
	n := csr.NNZ()
	rows := make([]uint32, n)
	for r := range csr.shape.Height {
		for i := csr.rowPtr[r]; i < csr.rowPtr[r+1]; i++ {
			rows[i] = uint32(r) //nolint: gosec
		}
	}

	return &COO{
		shape:     csr.shape,
		rows:      rows,
		cols:      slices.Clone(csr.colIdx),
		values:    slices.Clone(csr.values),
		canonical: true,
	}
}

// ToDOK converts any matrix to a DOK. A DOK input is cloned, so the result
// can always be mutated without touching m.
func ToDOK(m Matrix) (*DOK, error) {
	switch v := m.(type) {
	case *DOK:
		return v.Clone(), nil
	case *COO:
		return COOToDOK(v), nil
	case *CSR:
		return CSRToDOK(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", errs.ErrInvalidKind, m)
	}
}

// ToKind converts m to the representation named by kind. When m already has
// that kind it is returned as is.
func ToKind(m Matrix, kind format.Kind) (Matrix, error) {
	if m.Kind() == kind {
		return m, nil
	}

	switch kind {
	case format.KindDOK:
		return ToDOK(m)
	case format.KindCOO:
		switch v := m.(type) {
		case *DOK:
			return DOKToCOO(v), nil
		case *CSR:
			return CSRToCOO(v), nil
		}
	case format.KindCSR:
		switch v := m.(type) {
		case *DOK:
			return DOKToCSR(v)
		case *COO:
			return COOToCSR(v)
		}
	}

	return nil, fmt.Errorf("%w: cannot convert %s to %s", errs.ErrInvalidKind, m.Kind(), kind)
}
