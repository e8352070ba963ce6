package secmem

// HeapAllocator allocates from the Go heap. Release erases the extent and
// drops the reference; the garbage collector reclaims the zeroed storage.
//
// The zero value is ready to use with default options.
type HeapAllocator[T any] struct {
	opts *options
}

// NewHeapAllocator returns a heap allocator configured by opts.
func NewHeapAllocator[T any](opts ...Option) *HeapAllocator[T] {
	return &HeapAllocator[T]{opts: newOptions(opts)}
}

func (a HeapAllocator[T]) config() *options {
	if a.opts == nil {
		return defaultOptions
	}
	return a.opts
}

// Allocate implements Allocator.
func (a HeapAllocator[T]) Allocate(n int) ([]T, error) {
	return allocate(a.config(), n, func(n int, _ uintptr) ([]T, error) {
		return make([]T, n), nil
	})
}

// Deallocate implements Allocator.
func (a HeapAllocator[T]) Deallocate(p []T, n int) {
	deallocate(a.config(), p, n, func([]T, uintptr) {})
}

// Equal implements Allocator. Heap allocators carry no per-instance storage
// state, so any two are compatible.
func (HeapAllocator[T]) Equal(other Allocator[T]) bool {
	switch other.(type) {
	case HeapAllocator[T], *HeapAllocator[T]:
		return true
	default:
		return false
	}
}
