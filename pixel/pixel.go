// Package pixel packs 8-bit RGB triplets into the 24-bit scalar stored by
// sparse representations, and back.
//
// The packed layout is (r<<16)|(g<<8)|b. Pack and Unpack are exact inverses on
// [0,255]^3 and [0, 2^24). Channel values are typed uint8, so wider inputs
// cannot reach Pack; PackInts validates untyped integer input at the boundary.
package pixel

import (
	"fmt"

	"github.com/arloliu/sparsepix/errs"
)

const (
	// MaxGray is the largest value stored for a single-channel image.
	MaxGray uint32 = 0xFF
	// MaxPacked is the largest packed RGB value.
	MaxPacked uint32 = 1<<24 - 1
)

// Pack packs an RGB triplet into a 24-bit scalar.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed scalar into its RGB triplet. Bits above 24 are ignored.
func Unpack(v uint32) (r, g, b uint8) {
	return uint8(v >> 16), uint8(v >> 8), uint8(v) //nolint: gosec
}

// PackInts packs integer channel values, rejecting anything outside [0,255].
func PackInts(r, g, b int) (uint32, error) {
	for _, c := range [3]int{r, g, b} {
		if c < 0 || c > 0xFF {
			return 0, fmt.Errorf("%w: channel value %d outside [0,255]", errs.ErrInvalidValue, c)
		}
	}

	return Pack(uint8(r), uint8(g), uint8(b)), nil //nolint: gosec
}

// MaxValue returns the largest scalar a representation with the given channel
// count may store, or 0 for an unsupported channel count.
func MaxValue(channels int) uint32 {
	switch channels {
	case 1:
		return MaxGray
	case 3:
		return MaxPacked
	default:
		return 0
	}
}

// Validate checks that v is a storable non-zero value for the channel count.
func Validate(v uint32, channels int) error {
	if v == 0 {
		return fmt.Errorf("%w: zero is never stored", errs.ErrInvalidValue)
	}

	if maxVal := MaxValue(channels); v > maxVal {
		return fmt.Errorf("%w: value %d exceeds %d for %d channel(s)", errs.ErrInvalidValue, v, maxVal, channels)
	}

	return nil
}
