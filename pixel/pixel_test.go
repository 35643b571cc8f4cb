package pixel

import (
	"testing"

	"github.com/arloliu/sparsepix/errs"
	"github.com/stretchr/testify/require"
)

func TestPack(t *testing.T) {
	v := Pack(10, 20, 30)
	require.Equal(t, uint32(660510), v)

	r, g, b := Unpack(v)
	require.Equal(t, uint8(10), r)
	require.Equal(t, uint8(20), g)
	require.Equal(t, uint8(30), b)
}

func TestPack_Extremes(t *testing.T) {
	require.Equal(t, uint32(0), Pack(0, 0, 0))
	require.Equal(t, MaxPacked, Pack(255, 255, 255))
	require.Equal(t, uint32(1), Pack(0, 0, 1))
	require.Equal(t, uint32(1<<16), Pack(1, 0, 0))
}

func TestPackUnpack_Bijection(t *testing.T) {
	// Sample the cube on a stride that still touches every channel boundary.
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 5 {
				v := Pack(uint8(r), uint8(g), uint8(b))
				require.LessOrEqual(t, v, MaxPacked)

				ur, ug, ub := Unpack(v)
				require.Equal(t, [3]uint8{uint8(r), uint8(g), uint8(b)}, [3]uint8{ur, ug, ub})
			}
		}
	}
}

func TestPackInts(t *testing.T) {
	v, err := PackInts(10, 20, 30)
	require.NoError(t, err)
	require.Equal(t, uint32(660510), v)

	_, err = PackInts(256, 0, 0)
	require.ErrorIs(t, err, errs.ErrInvalidValue)

	_, err = PackInts(0, -1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(255, 1))
	require.NoError(t, Validate(MaxPacked, 3))

	require.ErrorIs(t, Validate(0, 1), errs.ErrInvalidValue)
	require.ErrorIs(t, Validate(256, 1), errs.ErrInvalidValue)
	require.ErrorIs(t, Validate(MaxPacked+1, 3), errs.ErrInvalidValue)
	require.ErrorIs(t, Validate(1, 2), errs.ErrInvalidValue)
}
