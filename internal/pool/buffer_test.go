package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(StreamBufferDefaultSize)

	n, err := bb.Write([]byte("SPCO"))
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("SPCO"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op with sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		_, _ = bb.Write([]byte("12345678"))
		bb.Grow(1)

		require.Equal(t, 8+StreamBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("12345678"), bb.Bytes())
	})

	t.Run("grows at least the requested amount", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(StreamBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), StreamBufferDefaultSize*3)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * StreamBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
	})
}

func TestByteBuffer_Flush(t *testing.T) {
	bb := NewByteBuffer(16)
	var out bytes.Buffer

	n, err := bb.Flush(&out)
	require.NoError(t, err)
	require.Zero(t, n)

	_, _ = bb.Write([]byte("records"))
	n, err = bb.Flush(&out)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "records", out.String())
	require.Zero(t, bb.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestByteBuffer_FlushError(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("x"))

	_, err := bb.Flush(failingWriter{})
	require.EqualError(t, err, "disk full")
	require.Zero(t, bb.Len())
}

func TestBufferPool(t *testing.T) {
	p := NewBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())

	_, _ = bb.Write([]byte("data"))
	p.Put(bb)

	// Put resets before pooling, so whichever buffer comes back is empty.
	again := p.Get()
	require.Zero(t, again.Len())

	oversized := NewByteBuffer(128)
	p.Put(oversized) // dropped, must not panic
	p.Put(nil)
}

func TestDefaultPools(t *testing.T) {
	sb := GetStreamBuffer()
	require.Zero(t, sb.Len())
	PutStreamBuffer(sb)

	ab := GetArrayBuffer()
	require.Zero(t, ab.Len())
	PutArrayBuffer(ab)
}
