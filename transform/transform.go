// Package transform implements geometric edits on sparse matrices.
//
// Every operation converts its input to a DOK, re-keys the entries into a new
// DOK of the output shape, and converts the result back to the kind it was
// given. Inputs are never modified.
package transform

import (
	"fmt"
	"strings"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/sparse"
)

// Box is a crop rectangle in pixel coordinates. X runs along columns and Y
// along rows; X2 and Y2 are exclusive.
type Box struct {
	X1, Y1, X2, Y2 int
}

// Width returns X2-X1.
func (b Box) Width() int { return b.X2 - b.X1 }

// Height returns Y2-Y1.
func (b Box) Height() int { return b.Y2 - b.Y1 }

// Validate checks 0 <= X1 < X2 <= shape.Width and 0 <= Y1 < Y2 <= shape.Height.
func (b Box) Validate(shape sparse.Shape) error {
	if b.X1 < 0 || b.X1 >= b.X2 || b.X2 > shape.Width ||
		b.Y1 < 0 || b.Y1 >= b.Y2 || b.Y2 > shape.Height {
		return fmt.Errorf("%w: box %s in %dx%d", errs.ErrInvalidBounds, b, shape.Height, shape.Width)
	}

	return nil
}

// Within translates inner, expressed relative to b, into the coordinates b
// itself is expressed in. Cropping by b and then by inner equals cropping by
// b.Within(inner).
func (b Box) Within(inner Box) Box {
	return Box{
		X1: b.X1 + inner.X1,
		Y1: b.Y1 + inner.Y1,
		X2: b.X1 + inner.X2,
		Y2: b.Y1 + inner.Y2,
	}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.X1, b.Y1, b.X2, b.Y2)
}

// ParseBox parses "x1,y1,x2,y2".
func ParseBox(s string) (Box, error) {
	var b Box
	n, err := fmt.Sscanf(strings.ReplaceAll(s, " ", ""), "%d,%d,%d,%d", &b.X1, &b.Y1, &b.X2, &b.Y2)
	if err != nil || n != 4 {
		return Box{}, fmt.Errorf("%w: %q, want x1,y1,x2,y2", errs.ErrInvalidBounds, s)
	}

	return b, nil
}

// Axis selects the mirror line for Flip.
type Axis uint8

const (
	// Vertical flips rows: (r, c) -> (height-1-r, c).
	Vertical Axis = iota + 1
	// Horizontal flips columns: (r, c) -> (r, width-1-c).
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// ParseAxis parses "vertical" or "horizontal", case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidAxis, s)
	}
}

// remap moves every entry of m through fn into a new DOK of shape out and
// converts the result back to m's kind. fn reports false to drop an entry.
func remap(m sparse.Matrix, out sparse.Shape, fn func(r, c int) (int, int, bool)) (sparse.Matrix, error) {
	src, err := sparse.ToDOK(m)
	if err != nil {
		return nil, err
	}

	dst, err := sparse.NewDOK(out)
	if err != nil {
		return nil, err
	}

	for e := range src.All() {
		r, c, ok := fn(e.Row, e.Col)
		if !ok {
			continue
		}

		if err := dst.Set(r, c, e.Value); err != nil {
			return nil, err
		}
	}

	return sparse.ToKind(dst, m.Kind())
}

// Crop keeps the entries inside box, re-keyed relative to its top-left
// corner. The result has shape (box.Height(), box.Width(), channels).
//
// Returns ErrInvalidBounds when box does not fit the matrix.
func Crop(m sparse.Matrix, box Box) (sparse.Matrix, error) {
	shape := m.Shape()
	if err := box.Validate(shape); err != nil {
		return nil, err
	}

	out := sparse.Shape{Height: box.Height(), Width: box.Width(), Channels: shape.Channels}

	return remap(m, out, func(r, c int) (int, int, bool) {
		if r < box.Y1 || r >= box.Y2 || c < box.X1 || c >= box.X2 {
			return 0, 0, false
		}

		return r - box.Y1, c - box.X1, true
	})
}

// Rotate90 rotates m a quarter turn clockwise: (r, c) -> (c, height-1-r) in a
// matrix of shape (width, height, channels).
func Rotate90(m sparse.Matrix) (sparse.Matrix, error) {
	shape := m.Shape()

	return remap(m, shape.Transposed(), func(r, c int) (int, int, bool) {
		return c, shape.Height - 1 - r, true
	})
}

// Rotate applies Rotate90 quarterTurns times. Negative counts turn
// counter-clockwise. A multiple of four returns a copy of m.
func Rotate(m sparse.Matrix, quarterTurns int) (sparse.Matrix, error) {
	turns := ((quarterTurns % 4) + 4) % 4
	if turns == 0 {
		switch v := m.(type) {
		case *sparse.DOK:
			return v.Clone(), nil
		case *sparse.COO:
			return v.Clone(), nil
		case *sparse.CSR:
			return v.Clone(), nil
		default:
			return nil, fmt.Errorf("%w: cannot copy %T", errs.ErrInvalidKind, m)
		}
	}

	out := m
	for range turns {
		var err error
		if out, err = Rotate90(out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Flip mirrors m along axis. The shape is unchanged.
//
// Returns ErrInvalidAxis for an unknown axis.
func Flip(m sparse.Matrix, axis Axis) (sparse.Matrix, error) {
	shape := m.Shape()

	switch axis {
	case Vertical:
		return remap(m, shape, func(r, c int) (int, int, bool) {
			return shape.Height - 1 - r, c, true
		})
	case Horizontal:
		return remap(m, shape, func(r, c int) (int, int, bool) {
			return r, shape.Width - 1 - c, true
		})
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidAxis, axis)
	}
}
