package sparse

import (
	"bytes"
	"fmt"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/pixel"
)

// Dense is a band-interleaved array of 8-bit pixels.
//
// The byte for channel ch of pixel (row, col) is
// Pix[(row*Width+col)*Channels+ch].
type Dense struct {
	Shape Shape
	Pix   []uint8
}

// NewDense allocates a zero-filled dense array.
func NewDense(shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	return &Dense{
		Shape: shape,
		Pix:   make([]uint8, shape.Cells()*shape.Channels),
	}, nil
}

// DenseFrom wraps pix without copying. len(pix) must match the shape.
func DenseFrom(shape Shape, pix []uint8) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	if want := shape.Cells() * shape.Channels; len(pix) != want {
		return nil, fmt.Errorf("%w: %d bytes for shape %s, want %d", errs.ErrShapeMismatch, len(pix), shape, want)
	}

	return &Dense{Shape: shape, Pix: pix}, nil
}

func (d *Dense) offset(row, col int) int {
	return (row*d.Shape.Width + col) * d.Shape.Channels
}

// Value returns the scalar at (row, col): the byte itself for grayscale, the
// packed RGB value for three channels. The coordinate must be in bounds.
func (d *Dense) Value(row, col int) uint32 {
	off := d.offset(row, col)
	if d.Shape.Channels == 3 {
		return pixel.Pack(d.Pix[off], d.Pix[off+1], d.Pix[off+2])
	}

	return uint32(d.Pix[off])
}

// SetValue stores the scalar at (row, col), unpacking it for three channels.
// The coordinate must be in bounds; bits above the channel width are dropped.
func (d *Dense) SetValue(row, col int, v uint32) {
	off := d.offset(row, col)
	if d.Shape.Channels == 3 {
		d.Pix[off], d.Pix[off+1], d.Pix[off+2] = pixel.Unpack(v)
		return
	}

	d.Pix[off] = uint8(v) //nolint: gosec
}

// At is the bounds-checked form of Value.
func (d *Dense) At(row, col int) (uint32, error) {
	if err := d.Shape.checkBounds(row, col); err != nil {
		return 0, err
	}

	return d.Value(row, col), nil
}

// CountNonBackground counts cells whose scalar differs from background and
// from zero, which is exactly the nnz DenseToDOK produces.
func (d *Dense) CountNonBackground(background uint32) int {
	n := 0
	for r := range d.Shape.Height {
		for c := range d.Shape.Width {
			if v := d.Value(r, c); v != background && v != 0 {
				n++
			}
		}
	}

	return n
}

// Equal reports whether both arrays have the same shape and pixels.
func (d *Dense) Equal(other *Dense) bool {
	if d == nil || other == nil {
		return d == other
	}

	return d.Shape == other.Shape && bytes.Equal(d.Pix, other.Pix)
}

// Clone returns a deep copy.
func (d *Dense) Clone() *Dense {
	pix := make([]uint8, len(d.Pix))
	copy(pix, d.Pix)

	return &Dense{Shape: d.Shape, Pix: pix}
}

// Channel extracts plane ch of a three-channel array as a grayscale array.
func (d *Dense) Channel(ch int) (*Dense, error) {
	if ch < 0 || ch >= d.Shape.Channels {
		return nil, fmt.Errorf("%w: channel %d of %d", errs.ErrOutOfRange, ch, d.Shape.Channels)
	}

	shape := Shape{Height: d.Shape.Height, Width: d.Shape.Width, Channels: 1}
	pix := make([]uint8, shape.Cells())
	for i := range pix {
		pix[i] = d.Pix[i*d.Shape.Channels+ch]
	}

	return &Dense{Shape: shape, Pix: pix}, nil
}

// MergeChannels interleaves grayscale planes of equal size into one array.
// One plane yields a grayscale copy, three planes an RGB array.
func MergeChannels(planes ...*Dense) (*Dense, error) {
	if len(planes) != 1 && len(planes) != 3 {
		return nil, fmt.Errorf("%w: %d planes", errs.ErrInvalidShape, len(planes))
	}

	base := planes[0].Shape
	for i, p := range planes {
		if p.Shape.Channels != 1 || p.Shape.Height != base.Height || p.Shape.Width != base.Width {
			return nil, fmt.Errorf("%w: plane %d has shape %s, want (%d, %d, 1)",
				errs.ErrShapeMismatch, i, p.Shape, base.Height, base.Width)
		}
	}

	out, err := NewDense(Shape{Height: base.Height, Width: base.Width, Channels: len(planes)})
	if err != nil {
		return nil, err
	}

	n := len(planes)
	for ch, p := range planes {
		for i, v := range p.Pix {
			out.Pix[i*n+ch] = v
		}
	}

	return out, nil
}
