package pool

import "sync"

// slicePool recycles scratch slices of one element type.
type slicePool[T any] struct {
	pool sync.Pool
}

func newSlicePool[T any]() *slicePool[T] {
	return &slicePool[T]{
		pool: sync.Pool{
			New: func() any { return &[]T{} },
		},
	}
}

// get returns a slice of length size and the cleanup that hands it back.
func (p *slicePool[T]) get(size int) ([]T, func()) {
	ptr, _ := p.pool.Get().(*[]T)

	slice := (*ptr)[:0]
	if cap(slice) < size {
		slice = make([]T, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { p.pool.Put(ptr) }
}

var (
	uint64SlicePool = newSlicePool[uint64]()
	intSlicePool    = newSlicePool[int]()
)

// GetUint64Slice retrieves a uint64 scratch slice of the given length.
//
// The contents are undefined. The caller must call the returned cleanup
// function, typically with defer, and must not retain the slice afterwards.
//
//	keys, cleanup := pool.GetUint64Slice(dok.NNZ())
//	defer cleanup()
func GetUint64Slice(size int) ([]uint64, func()) {
	return uint64SlicePool.get(size)
}

// GetIntSlice retrieves an int scratch slice of the given length.
//
// The same ownership rules as GetUint64Slice apply.
func GetIntSlice(size int) ([]int, func()) {
	return intSlicePool.get(size)
}
