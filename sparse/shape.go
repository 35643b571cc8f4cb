package sparse

import (
	"fmt"
	"math"

	"github.com/arloliu/sparsepix/errs"
)

// MaxDenseBytes bounds Height*Width*Channels, the size of the dense array
// every shape must be able to materialize.
const MaxDenseBytes = 1 << 31

// Shape is the (height, width, channels) triple carried by every representation.
type Shape struct {
	Height   int
	Width    int
	Channels int
}

// NewShape returns a validated shape.
func NewShape(height, width, channels int) (Shape, error) {
	s := Shape{Height: height, Width: width, Channels: channels}
	if err := s.Validate(); err != nil {
		return Shape{}, err
	}

	return s, nil
}

// Validate checks that both dimensions are positive and fit the uint32 wire
// fields, that the channel count is 1 or 3, and that the dense array holds
// at most MaxDenseBytes.
func (s Shape) Validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return fmt.Errorf("%w: %dx%d", errs.ErrInvalidShape, s.Height, s.Width)
	}

	if uint64(s.Height) > math.MaxUint32-1 || uint64(s.Width) > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d exceeds uint32 range", errs.ErrInvalidShape, s.Height, s.Width)
	}

	if s.Channels != 1 && s.Channels != 3 {
		return fmt.Errorf("%w: %d channels", errs.ErrInvalidShape, s.Channels)
	}

	// both factors are below 2^32, so the product fits in uint64
	if cells := uint64(s.Height) * uint64(s.Width); cells > MaxDenseBytes/uint64(s.Channels) {
		return fmt.Errorf("%w: %s needs more than %d dense bytes", errs.ErrInvalidShape, s, MaxDenseBytes)
	}

	return nil
}

// Contains reports whether (row, col) lies inside the shape.
func (s Shape) Contains(row, col int) bool {
	return row >= 0 && row < s.Height && col >= 0 && col < s.Width
}

// Cells returns height*width.
func (s Shape) Cells() int {
	return s.Height * s.Width
}

// Transposed returns the shape with height and width swapped.
func (s Shape) Transposed() Shape {
	return Shape{Height: s.Width, Width: s.Height, Channels: s.Channels}
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.Height, s.Width, s.Channels)
}

func (s Shape) checkBounds(row, col int) error {
	if !s.Contains(row, col) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d", errs.ErrOutOfRange, row, col, s.Height, s.Width)
	}

	return nil
}
