package pool

import "sync"

var (
	int64SlicePool = sync.Pool{
		New: func() any { return &[]int64{} },
	}
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
)

// GetInt64Slice retrieves an int64 slice of length size from the pool.
//
// The caller must call the returned cleanup function, typically with defer, once the
// slice is no longer used.
//
// Example:
//
//	values, cleanup := pool.GetInt64Slice(n)
//	defer cleanup()
func GetInt64Slice(size int) ([]int64, func()) {
	ptr, _ := int64SlicePool.Get().(*[]int64)
	slice := *ptr
	if cap(slice) < size {
		slice = make([]int64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { int64SlicePool.Put(ptr) }
}

// GetUint32Slice retrieves a uint32 slice of length size from the pool.
// See GetInt64Slice for the cleanup contract.
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	slice := *ptr
	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint32SlicePool.Put(ptr) }
}
