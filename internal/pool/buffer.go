package pool

import (
	"io"
	"sync"
)

// Buffer classes. Stream buffers hold one chunk of serialized records;
// array buffers hold a whole serialized stream.
const (
	StreamBufferDefaultSize  = 16 << 10  // also the flush threshold of the record writers
	StreamBufferMaxThreshold = 128 << 10
	ArrayBufferDefaultSize   = 256 << 10
	ArrayBufferMaxThreshold  = 8 << 20
)

// ByteBuffer is an append-only byte slice recycled through a BufferPool.
type ByteBuffer struct {
	B []byte
}

func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

func (bb *ByteBuffer) Bytes() []byte { return bb.B }
func (bb *ByteBuffer) Len() int      { return len(bb.B) }
func (bb *ByteBuffer) Reset()        { bb.B = bb.B[:0] }

// Grow makes room for n more bytes. Buffers up to four stream chunks grow
// by one chunk, larger ones by a quarter of their capacity, and never by
// less than n.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	step := StreamBufferDefaultSize
	if cap(bb.B) > 4*StreamBufferDefaultSize {
		step = cap(bb.B) / 4
	}

	grown := make([]byte, len(bb.B), len(bb.B)+max(step, n))
	copy(grown, bb.B)
	bb.B = grown
}

// Write appends data and never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// Flush writes the pending bytes to w and empties the buffer, even when w
// fails.
func (bb *ByteBuffer) Flush(w io.Writer) (int64, error) {
	if len(bb.B) == 0 {
		return 0, nil
	}

	n, err := w.Write(bb.B)
	bb.Reset()

	return int64(n), err
}

// BufferPool recycles ByteBuffers of one size class. A buffer whose
// capacity grew past the class limit is dropped on Put so one large image
// does not pin memory for the life of the process.
type BufferPool struct {
	pool  sync.Pool
	limit int
}

// NewBufferPool creates a pool of buffers starting at size bytes. A limit
// of zero keeps every buffer.
func NewBufferPool(size, limit int) *BufferPool {
	return &BufferPool{
		pool:  sync.Pool{New: func() any { return NewByteBuffer(size) }},
		limit: limit,
	}
}

func (p *BufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

func (p *BufferPool) Put(bb *ByteBuffer) {
	if bb == nil || (p.limit > 0 && cap(bb.B) > p.limit) {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var (
	streamBuffers = NewBufferPool(StreamBufferDefaultSize, StreamBufferMaxThreshold)
	arrayBuffers  = NewBufferPool(ArrayBufferDefaultSize, ArrayBufferMaxThreshold)
)

// GetStreamBuffer returns an empty buffer sized for one chunk of records.
func GetStreamBuffer() *ByteBuffer { return streamBuffers.Get() }

func PutStreamBuffer(bb *ByteBuffer) { streamBuffers.Put(bb) }

// GetArrayBuffer returns an empty buffer sized for a whole stream.
func GetArrayBuffer() *ByteBuffer { return arrayBuffers.Get() }

func PutArrayBuffer(bb *ByteBuffer) { arrayBuffers.Put(bb) }
