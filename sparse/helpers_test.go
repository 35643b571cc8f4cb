package sparse

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomDense fills roughly density of the cells with random non-zero pixels.
func randomDense(t testing.TB, shape Shape, density float64, seed uint64) *Dense {
	t.Helper()

	d, err := NewDense(shape)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for r := range shape.Height {
		for c := range shape.Width {
			if rng.Float64() >= density {
				continue
			}

			off := (r*shape.Width + c) * shape.Channels
			for ch := range shape.Channels {
				d.Pix[off+ch] = uint8(1 + rng.IntN(255))
			}
		}
	}

	return d
}

// scenarioDense is the 4x4 grayscale image with (0,0)=10, (1,2)=20, (3,3)=30.
func scenarioDense(t testing.TB) *Dense {
	t.Helper()

	d, err := NewDense(Shape{Height: 4, Width: 4, Channels: 1})
	require.NoError(t, err)

	d.SetValue(0, 0, 10)
	d.SetValue(1, 2, 20)
	d.SetValue(3, 3, 30)

	return d
}

func requireCSRInvariants(t *testing.T, csr *CSR) {
	t.Helper()

	rowPtr := csr.RowPtr()
	require.Len(t, rowPtr, csr.Shape().Height+1)
	require.Equal(t, uint32(0), rowPtr[0])
	require.Equal(t, uint32(csr.NNZ()), rowPtr[len(rowPtr)-1])

	for r := range csr.Shape().Height {
		require.LessOrEqual(t, rowPtr[r], rowPtr[r+1], "row_ptr must be non-decreasing at row %d", r)

		cols, _ := csr.Row(r)
		for i := 1; i < len(cols); i++ {
			require.Less(t, cols[i-1], cols[i], "row %d columns must strictly increase", r)
		}
	}
}
