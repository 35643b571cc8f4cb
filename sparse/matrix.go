package sparse

import (
	"fmt"
	"iter"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
)

// Entry is one stored (row, col, value) triple.
type Entry struct {
	Row   int
	Col   int
	Value uint32
}

// Matrix is the capability set shared by DOK, COO and CSR.
type Matrix interface {
	// Kind identifies the concrete representation.
	Kind() format.Kind
	// Shape returns the (height, width, channels) triple.
	Shape() Shape
	// At returns the value at (row, col), 0 for absent entries, or
	// ErrOutOfRange for a coordinate outside the shape.
	At(row, col int) (uint32, error)
	// NNZ returns the number of stored entries.
	NNZ() int
	// ToDense scatters the stored entries into a new zero-filled array,
	// unpacking RGB values. The receiver is not modified.
	ToDense() *Dense
	// All yields every stored entry. Only COO and CSR guarantee row-major order.
	All() iter.Seq[Entry]
}

// MutableMatrix is implemented by representations that support point edits.
type MutableMatrix interface {
	Matrix
	// Set upserts a value; a value of 0 deletes the entry.
	Set(row, col int, value uint32) error
}

var (
	_ MutableMatrix = (*DOK)(nil)
	_ Matrix        = (*COO)(nil)
	_ Matrix        = (*CSR)(nil)
)

// AsMutable returns m as a MutableMatrix, or ErrUnsupportedOperation when the
// representation cannot be edited in place. Callers holding a COO or CSR must
// convert to DOK, edit, and convert back.
func AsMutable(m Matrix) (MutableMatrix, error) {
	if mm, ok := m.(MutableMatrix); ok {
		return mm, nil
	}

	return nil, fmt.Errorf("%w: %s does not support point mutation", errs.ErrUnsupportedOperation, m.Kind())
}

// Equal reports whether a and b describe the same image: identical shapes and
// identical values in every cell. The representation kinds may differ.
func Equal(a, b Matrix) bool {
	if a.Shape() != b.Shape() || a.NNZ() != b.NNZ() {
		return false
	}

	for e := range a.All() {
		v, err := b.At(e.Row, e.Col)
		if err != nil || v != e.Value {
			return false
		}
	}

	return true
}

// scatter writes every entry of m into a new dense array.
func scatter(m Matrix) *Dense {
	shape := m.Shape()
	d := &Dense{
		Shape: shape,
		Pix:   make([]uint8, shape.Cells()*shape.Channels),
	}

	for e := range m.All() {
		d.SetValue(e.Row, e.Col, e.Value)
	}

	return d
}
