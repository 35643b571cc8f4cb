package sparse

import (
	"slices"
	"testing"

	"github.com/arloliu/sparsepix/errs"
	"github.com/arloliu/sparsepix/format"
	"github.com/stretchr/testify/require"
)

func TestNewCSR(t *testing.T) {
	shape := Shape{Height: 4, Width: 4, Channels: 1}

	csr, err := NewCSR(shape, []uint32{0, 1, 2, 2, 3}, []uint32{0, 2, 3}, []uint32{10, 20, 30})
	require.NoError(t, err)
	require.Equal(t, format.KindCSR, csr.Kind())
	requireCSRInvariants(t, csr)

	v, err := csr.At(3, 3)
	require.NoError(t, err)
	require.Equal(t, uint32(30), v)

	v, err = csr.At(1, 0)
	require.NoError(t, err)
	require.Zero(t, v)

	v, err = csr.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint32(20), v)

	cols, vals := csr.Row(2)
	require.Empty(t, cols)
	require.Empty(t, vals)

	require.Equal(t, []Entry{
		{Row: 0, Col: 0, Value: 10},
		{Row: 1, Col: 2, Value: 20},
		{Row: 3, Col: 3, Value: 30},
	}, slices.Collect(csr.All()))

	empty, err := EmptyCSR(shape)
	require.NoError(t, err)
	requireCSRInvariants(t, empty)
}

func TestNewCSR_Errors(t *testing.T) {
	shape := Shape{Height: 2, Width: 3, Channels: 1}

	tests := []struct {
		name   string
		rowPtr []uint32
		colIdx []uint32
		values []uint32
		want   error
	}{
		{"short row_ptr", []uint32{0, 1}, []uint32{0}, []uint32{1}, errs.ErrShapeMismatch},
		{"length mismatch", []uint32{0, 1, 1}, []uint32{0}, []uint32{1, 2}, errs.ErrShapeMismatch},
		{"non-zero start", []uint32{1, 1, 1}, []uint32{0}, []uint32{1}, errs.ErrShapeMismatch},
		{"bad tail", []uint32{0, 1, 2}, []uint32{0}, []uint32{1}, errs.ErrShapeMismatch},
		{"decreasing", []uint32{0, 2, 1}, []uint32{0}, []uint32{1}, errs.ErrShapeMismatch},
		{"pointer past nnz", []uint32{0, 5, 1}, []uint32{1}, []uint32{7}, errs.ErrShapeMismatch},
		{"column out of range", []uint32{0, 1, 1}, []uint32{3}, []uint32{1}, errs.ErrOutOfRange},
		{"duplicate column", []uint32{0, 2, 2}, []uint32{1, 1}, []uint32{1, 2}, errs.ErrShapeMismatch},
		{"unsorted columns", []uint32{0, 2, 2}, []uint32{2, 1}, []uint32{1, 2}, errs.ErrShapeMismatch},
		{"zero value", []uint32{0, 1, 1}, []uint32{0}, []uint32{0}, errs.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSR(shape, tt.rowPtr, tt.colIdx, tt.values)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
