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

// COO is the coordinate-list representation: three parallel arrays of equal length.
//
// A COO is canonical when its entries are strictly increasing by (row, col).
// Every COO built by this package from a DOK is canonical; COOs loaded from
// external data may not be.
type COO struct {
	shape     Shape
	rows      []uint32
	cols      []uint32
	values    []uint32
	canonical bool
}

// NewCOO validates and wraps the given arrays. The slices are owned by the
// returned COO afterwards and must not be modified by the caller.
//
// Returns:
//   - ErrInvalidShape for an invalid shape
//   - ErrShapeMismatch when the array lengths differ or a coordinate repeats
//   - ErrOutOfRange for a coordinate outside the shape
//   - ErrInvalidValue for a zero value or one too wide for the channel count
func NewCOO(shape Shape, rows, cols, values []uint32) (*COO, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	if len(rows) != len(cols) || len(rows) != len(values) {
		return nil, fmt.Errorf("%w: COO arrays have lengths %d/%d/%d",
			errs.ErrShapeMismatch, len(rows), len(cols), len(values))
	}

	canonical := true
	for i := range rows {
		r, c := int(rows[i]), int(cols[i])
		if err := shape.checkBounds(r, c); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		if err := pixel.Validate(values[i], shape.Channels); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		if i > 0 && !lessRC(rows[i-1], cols[i-1], rows[i], cols[i]) {
			canonical = false
		}
	}

	if !canonical {
		seen := make(map[uint64]struct{}, len(rows))
		for i := range rows {
			k := dokKey(int(rows[i]), int(cols[i]))
			if _, dup := seen[k]; dup {
				return nil, fmt.Errorf("%w: duplicate coordinate (%d, %d)", errs.ErrShapeMismatch, rows[i], cols[i])
			}
			seen[k] = struct{}{}
		}
	}

	return &COO{shape: shape, rows: rows, cols: cols, values: values, canonical: canonical}, nil
}

// EmptyCOO returns a COO with no entries.
func EmptyCOO(shape Shape) (*COO, error) {
	return NewCOO(shape, []uint32{}, []uint32{}, []uint32{})
}

func lessRC(r1, c1, r2, c2 uint32) bool {
	return r1 < r2 || (r1 == r2 && c1 < c2)
}

// Kind returns format.KindCOO.
func (c *COO) Kind() format.Kind { return format.KindCOO }

// Shape returns the matrix shape.
func (c *COO) Shape() Shape { return c.shape }

// NNZ returns the number of entries.
func (c *COO) NNZ() int { return len(c.values) }

// Canonical reports whether entries are strictly ordered by row, then column.
func (c *COO) Canonical() bool { return c.canonical }

// Rows returns the row index array. The caller must not modify it.
func (c *COO) Rows() []uint32 { return c.rows }

// Cols returns the column index array. The caller must not modify it.
func (c *COO) Cols() []uint32 { return c.cols }

// Values returns the value array. The caller must not modify it.
func (c *COO) Values() []uint32 { return c.values }

// At returns the value at (row, col), or 0 when absent.
//
// Canonical COOs are binary-searched; others are scanned linearly.
func (c *COO) At(row, col int) (uint32, error) {
	if err := c.shape.checkBounds(row, col); err != nil {
		return 0, err
	}

	r, cl := uint32(row), uint32(col) //nolint: gosec
	if c.canonical {
		i := sort.Search(len(c.rows), func(i int) bool {
			return !lessRC(c.rows[i], c.cols[i], r, cl)
		})
		if i < len(c.rows) && c.rows[i] == r && c.cols[i] == cl {
			return c.values[i], nil
		}

		return 0, nil
	}

	for i := range c.rows {
		if c.rows[i] == r && c.cols[i] == cl {
			return c.values[i], nil
		}
	}

	return 0, nil
}

// ToDense returns the dense form of the matrix.
func (c *COO) ToDense() *Dense {
	return scatter(c)
}

// All yields entries in storage order.
func (c *COO) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := range c.values {
			if !yield(Entry{Row: int(c.rows[i]), Col: int(c.cols[i]), Value: c.values[i]}) {
				return
			}
		}
	}
}

// Clone returns a COO with its own copies of the arrays.
func (c *COO) Clone() *COO {
	return &COO{
		shape:     c.shape,
		rows:      slices.Clone(c.rows),
		cols:      slices.Clone(c.cols),
		values:    slices.Clone(c.values),
		canonical: c.canonical,
	}
}

func (c *COO) String() string {
	return fmt.Sprintf("COO%s nnz=%d", c.shape, len(c.values))
}
