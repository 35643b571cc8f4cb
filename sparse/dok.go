package sparse

import (
	"iter"
	"maps"
	"slices"

	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/internal/pool"
	"github.com/arloliu/sparsepix/pixel"
)

// DOK is the dictionary-of-keys representation.
//
// Keys pack (row, col) into one uint64 as row<<32|col, so sorting keys sorts
// entries in row-major order. No key ever maps to 0.
type DOK struct {
	shape  Shape
	pixels map[uint64]uint32
}

// NewDOK returns an empty DOK of the given shape.
func NewDOK(shape Shape) (*DOK, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &DOK{shape: shape, pixels: make(map[uint64]uint32)}, nil
}

func newDOKSized(shape Shape, hint int) *DOK {
	return &DOK{shape: shape, pixels: make(map[uint64]uint32, hint)}
}

func dokKey(row, col int) uint64 {
	return uint64(row)<<32 | uint64(col) //nolint: gosec
}

func splitKey(k uint64) (row, col int) {
	return int(k >> 32), int(k & 0xFFFFFFFF) //nolint: gosec
}

// Kind returns format.KindDOK.
func (d *DOK) Kind() format.Kind { return format.KindDOK }

// Shape returns the matrix shape.
func (d *DOK) Shape() Shape { return d.shape }

// NNZ returns the number of stored entries.
func (d *DOK) NNZ() int { return len(d.pixels) }

// At returns the value at (row, col), or 0 when absent.
func (d *DOK) At(row, col int) (uint32, error) {
	if err := d.shape.checkBounds(row, col); err != nil {
		return 0, err
	}

	return d.pixels[dokKey(row, col)], nil
}

// Set upserts value at (row, col). A value of 0 removes the entry.
//
// Returns ErrOutOfRange for coordinates outside the shape and ErrInvalidValue
// for values wider than the channel count allows.
func (d *DOK) Set(row, col int, value uint32) error {
	if err := d.shape.checkBounds(row, col); err != nil {
		return err
	}

	if value == 0 {
		delete(d.pixels, dokKey(row, col))
		return nil
	}

	if err := pixel.Validate(value, d.shape.Channels); err != nil {
		return err
	}

	d.pixels[dokKey(row, col)] = value

	return nil
}

// set is the unchecked insert used by converters that already validated input.
func (d *DOK) set(row, col int, value uint32) {
	d.pixels[dokKey(row, col)] = value
}

// ToDense returns the dense form of the matrix.
func (d *DOK) ToDense() *Dense {
	return scatter(d)
}

// All yields entries in map order.
func (d *DOK) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for k, v := range d.pixels {
			row, col := splitKey(k)
			if !yield(Entry{Row: row, Col: col, Value: v}) {
				return
			}
		}
	}
}

// Sorted yields entries ordered by row, then column.
func (d *DOK) Sorted() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		keys, cleanup := pool.GetUint64Slice(len(d.pixels))
		defer cleanup()

		keys = keys[:0]
		for k := range d.pixels {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, k := range keys {
			row, col := splitKey(k)
			if !yield(Entry{Row: row, Col: col, Value: d.pixels[k]}) {
				return
			}
		}
	}
}

// Clone returns an independent copy.
func (d *DOK) Clone() *DOK {
	return &DOK{shape: d.shape, pixels: maps.Clone(d.pixels)}
}

func (d *DOK) String() string {
	return "DOK" + d.shape.String()
}
