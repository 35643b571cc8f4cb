package sparse

import (
	"testing"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/stretchr/testify/require"
)

func TestConvert_Scenario(t *testing.T) {
	dense := scenarioDense(t)

	dok, err := DenseToDOK(dense, 0)
	require.NoError(t, err)
	require.Equal(t, 3, dok.NNZ())

	coo := DOKToCOO(dok)
	require.Equal(t, []uint32{0, 1, 3}, coo.Rows())
	require.Equal(t, []uint32{0, 2, 3}, coo.Cols())
	require.Equal(t, []uint32{10, 20, 30}, coo.Values())

	csr, err := COOToCSR(coo)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 1, 2, 2, 3}, csr.RowPtr())
	require.Equal(t, []uint32{0, 2, 3}, csr.ColIdx())
	require.Equal(t, 3, csr.NNZ())

	require.True(t, CSRToDOK(csr).ToDense().Equal(dense))
}

func TestConvert_RoundTrip(t *testing.T) {
	shapes := []Shape{
		{Height: 1, Width: 1, Channels: 1},
		{Height: 17, Width: 9, Channels: 1},
		{Height: 8, Width: 33, Channels: 3},
	}
	densities := []float64{0, 0.05, 0.5, 1}

	for _, shape := range shapes {
		for i, density := range densities {
			t.Run(shape.String(), func(t *testing.T) {
				dense := randomDense(t, shape, density, uint64(i+1))
				want := dense.CountNonBackground(0)

				dok, err := DenseToDOK(dense, 0)
				require.NoError(t, err)
				require.True(t, dok.ToDense().Equal(dense))

				coo := DOKToCOO(dok)
				require.True(t, coo.Canonical())

				csr, err := COOToCSR(coo)
				require.NoError(t, err)
				requireCSRInvariants(t, csr)

				back := CSRToDOK(csr)
				require.True(t, back.ToDense().Equal(dense))

				for _, m := range []Matrix{dok, coo, csr, back} {
					require.Equal(t, want, m.NNZ())
					require.Equal(t, shape, m.Shape())
				}

				require.True(t, Equal(dok, csr))
				require.True(t, Equal(coo, back))
			})
		}
	}
}

func TestConvert_Empty(t *testing.T) {
	dense, err := NewDense(Shape{Height: 3, Width: 5, Channels: 1})
	require.NoError(t, err)

	dok, err := DenseToDOK(dense, 0)
	require.NoError(t, err)

	csr, err := DOKToCSR(dok)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 0, 0, 0}, csr.RowPtr())
	require.Zero(t, csr.NNZ())
	require.True(t, csr.ToDense().Equal(dense))
}

func TestDenseToDOK_Background(t *testing.T) {
	dense, err := DenseFrom(Shape{Height: 2, Width: 3, Channels: 1}, []uint8{
		7, 7, 0,
		7, 3, 9,
	})
	require.NoError(t, err)

	dok, err := DenseToDOK(dense, 7)
	require.NoError(t, err)
	require.Equal(t, dense.CountNonBackground(7), dok.NNZ())
	require.Equal(t, 2, dok.NNZ())

	v, err := dok.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(9), v)

	_, err = DenseToDOK(&Dense{Shape: dense.Shape, Pix: dense.Pix[:5]}, 0)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestCOOToCSR_Unordered(t *testing.T) {
	shape := Shape{Height: 4, Width: 4, Channels: 1}
	coo, err := NewCOO(shape, []uint32{3, 1, 0, 1}, []uint32{3, 2, 0, 0}, []uint32{30, 20, 10, 15})
	require.NoError(t, err)

	csr, err := COOToCSR(coo)
	require.NoError(t, err)
	requireCSRInvariants(t, csr)
	require.Equal(t, []uint32{0, 1, 3, 3, 4}, csr.RowPtr())
	require.Equal(t, []uint32{0, 0, 2, 3}, csr.ColIdx())
	require.Equal(t, []uint32{10, 15, 20, 30}, csr.Values())

	// a COO that bypassed validation still fails fast
	forged := &COO{shape: shape, rows: []uint32{1, 1}, cols: []uint32{2, 2}, values: []uint32{1, 2}}
	_, err = COOToCSR(forged)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)

	forged = &COO{shape: shape, rows: []uint32{4}, cols: []uint32{0}, values: []uint32{1}}
	_, err = COOToCSR(forged)
	require.ErrorIs(t, err, errs.ErrShapeMismatch)
}

func TestToKind(t *testing.T) {
	dense := randomDense(t, Shape{Height: 6, Width: 5, Channels: 3}, 0.3, 42)

	for _, from := range format.Kinds {
		src, err := FromDense(dense, from)
		require.NoError(t, err)
		require.Equal(t, from, src.Kind())

		for _, to := range format.Kinds {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				got, err := ToKind(src, to)
				require.NoError(t, err)
				require.Equal(t, to, got.Kind())
				require.True(t, got.ToDense().Equal(dense))
			})
		}
	}

	_, err := ToKind(scenarioCOO(t), format.Kind(9))
	require.ErrorIs(t, err, errs.ErrInvalidKind)
}

func TestToDOK_Clones(t *testing.T) {
	dok, err := DenseToDOK(scenarioDense(t), 0)
	require.NoError(t, err)

	c, err := ToDOK(dok)
	require.NoError(t, err)
	require.NoError(t, c.Set(0, 0, 0))
	require.Equal(t, 3, dok.NNZ())
}

func TestCSRToCOO(t *testing.T) {
	dok, err := DenseToDOK(scenarioDense(t), 0)
	require.NoError(t, err)

	csr, err := DOKToCSR(dok)
	require.NoError(t, err)

	c := CSRToCOO(csr)
	require.True(t, c.Canonical())
	require.Equal(t, DOKToCOO(dok).Rows(), c.Rows())
	require.True(t, Equal(c, dok))
}

func BenchmarkDOKToCSR(b *testing.B) {
	dense := randomDense(b, Shape{Height: 512, Width: 512, Channels: 1}, 0.05, 7)
	dok, err := DenseToDOK(dense, 0)
	require.NoError(b, err)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := DOKToCSR(dok); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDenseToDOK(b *testing.B) {
	dense := randomDense(b, Shape{Height: 512, Width: 512, Channels: 3}, 0.05, 8)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := DenseToDOK(dense, 0); err != nil {
			b.Fatal(err)
		}
	}
}
