package sparse

import (
	"testing"

	"github.com/arloliu/sparsepix/errs"
	"github.com/stretchr/testify/require"
)

func TestShape_Validate(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		ok    bool
	}{
		{"gray", Shape{4, 4, 1}, true},
		{"rgb", Shape{1, 1, 3}, true},
		{"zero height", Shape{0, 4, 1}, false},
		{"negative width", Shape{4, -1, 1}, false},
		{"two channels", Shape{4, 4, 2}, false},
		{"four channels", Shape{4, 4, 4}, false},
		{"at dense cap", Shape{1 << 15, 1 << 16, 1}, true},
		{"rgb over dense cap", Shape{1 << 15, 1 << 16, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shape.Validate()
			if tt.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errs.ErrInvalidShape)
			}
		})
	}
}

func TestShape_Helpers(t *testing.T) {
	s, err := NewShape(3, 5, 3)
	require.NoError(t, err)

	require.Equal(t, 15, s.Cells())
	require.Equal(t, Shape{Height: 5, Width: 3, Channels: 3}, s.Transposed())
	require.Equal(t, "(3, 5, 3)", s.String())

	require.True(t, s.Contains(0, 0))
	require.True(t, s.Contains(2, 4))
	require.False(t, s.Contains(3, 0))
	require.False(t, s.Contains(0, -1))

	require.ErrorIs(t, s.checkBounds(0, 5), errs.ErrOutOfRange)

	_, err = NewShape(3, 5, 2)
	require.ErrorIs(t, err, errs.ErrInvalidShape)
}
