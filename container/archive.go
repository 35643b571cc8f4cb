package container

import (
	"fmt"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/arloliu/sparsepix/pixel"
	"github.com/arloliu/sparsepix/sparse"
)

// Archive is a set of planar channel matrices of one kind and size.
//
// Channels holds one plane for a grayscale image and three (R, G, B) for a
// color image. Every plane has Channels == 1 in its own shape.
type Archive struct {
	Kind      format.Kind
	Channels  []sparse.Matrix
	ValueType string
}

// New validates the planes and wraps them in an Archive.
//
// Returns:
//   - ErrInvalidShape when the plane count is not 1 or 3
//   - ErrShapeMismatch when planes differ in kind or size, or a plane is not
//     single-channel
func New(channels ...sparse.Matrix) (*Archive, error) {
	a := &Archive{Channels: channels, ValueType: format.ValueTypeUint8}
	if err := a.validate(); err != nil {
		return nil, err
	}
	a.Kind = channels[0].Kind()

	return a, nil
}

func (a *Archive) validate() error {
	if n := len(a.Channels); n != 1 && n != 3 {
		return fmt.Errorf("%w: %d channels, want 1 or 3", errs.ErrInvalidShape, n)
	}

	first := a.Channels[0]
	for i, m := range a.Channels {
		shape := m.Shape()
		if shape.Channels != 1 {
			return fmt.Errorf("%w: channel %d has shape %s, planes must be single-channel",
				errs.ErrShapeMismatch, i, shape)
		}

		if shape != first.Shape() {
			return fmt.Errorf("%w: channel %d has shape %s, channel 0 has %s",
				errs.ErrShapeMismatch, i, shape, first.Shape())
		}

		if m.Kind() != first.Kind() {
			return fmt.Errorf("%w: channel %d is %s, channel 0 is %s",
				errs.ErrShapeMismatch, i, m.Kind(), first.Kind())
		}
	}

	return nil
}

// PlaneShape returns the (height, width, 1) shape shared by every channel.
func (a *Archive) PlaneShape() sparse.Shape {
	return a.Channels[0].Shape()
}

// ImageShape returns the shape of the merged image.
func (a *Archive) ImageShape() sparse.Shape {
	s := a.PlaneShape()
	s.Channels = len(a.Channels)

	return s
}

// NNZ returns the number of stored entries over all channels.
func (a *Archive) NNZ() int {
	n := 0
	for _, m := range a.Channels {
		n += m.NNZ()
	}

	return n
}

// ToDense merges the channels into one array: grayscale for one plane,
// band-interleaved RGB for three.
func (a *Archive) ToDense() (*sparse.Dense, error) {
	planes := make([]*sparse.Dense, len(a.Channels))
	for i, m := range a.Channels {
		planes[i] = m.ToDense()
	}

	return sparse.MergeChannels(planes...)
}

// SplitDense builds an archive of the given kind from a dense image. A
// grayscale image gives one plane, an RGB image three.
//
// background is compared per plane. For an RGB image it is a packed value
// and each plane uses its own component, so SplitDense(d, k, pixel.Pack(0,0,0))
// keeps every non-zero channel byte.
func SplitDense(d *sparse.Dense, kind format.Kind, background uint32) (*Archive, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidKind, kind)
	}

	if err := d.Shape.Validate(); err != nil {
		return nil, err
	}

	var (
		planes      []*sparse.Dense
		backgrounds []uint32
	)

	if d.Shape.Channels == 1 {
		planes = []*sparse.Dense{d}
		backgrounds = []uint32{background}
	} else {
		r, g, b := pixel.Unpack(background)
		backgrounds = []uint32{uint32(r), uint32(g), uint32(b)}
		for ch := range d.Shape.Channels {
			plane, err := d.Channel(ch)
			if err != nil {
				return nil, err
			}
			planes = append(planes, plane)
		}
	}

	channels := make([]sparse.Matrix, len(planes))
	for i, plane := range planes {
		dok, err := sparse.DenseToDOK(plane, backgrounds[i])
		if err != nil {
			return nil, err
		}

		if channels[i], err = sparse.ToKind(dok, kind); err != nil {
			return nil, err
		}
	}

	return New(channels...)
}
