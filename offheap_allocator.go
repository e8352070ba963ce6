package secmem

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/hupe1980/secmem/internal/conv"
	"github.com/hupe1980/secmem/internal/mem"
	"github.com/hupe1980/secmem/internal/mmap"
)

// OffHeapAllocator allocates each request as its own anonymous memory
// mapping outside the Go heap. Release erases the extent and unmaps it, so
// the pages go back to the operating system immediately.
//
// The garbage collector does not scan off-heap memory, so T must not contain
// Go pointers. Mappings are tracked process-wide: storage acquired through one
// OffHeapAllocator may be released through any other.
type OffHeapAllocator[T any] struct {
	opts *options
}

// NewOffHeapAllocator returns an off-heap allocator configured by opts.
// It fails with ErrPointerType if T contains Go pointers.
func NewOffHeapAllocator[T any](opts ...Option) (*OffHeapAllocator[T], error) {
	if mem.HasPointers[T]() {
		return nil, fmt.Errorf("%w: %v", ErrPointerType, reflect.TypeFor[T]())
	}
	return &OffHeapAllocator[T]{opts: newOptions(opts)}, nil
}

func (a OffHeapAllocator[T]) config() *options {
	if a.opts == nil {
		return defaultOptions
	}
	return a.opts
}

// Allocate implements Allocator. The mapping is rounded up to whole pages;
// the returned slice covers exactly n elements.
func (a OffHeapAllocator[T]) Allocate(n int) ([]T, error) {
	o := a.config()
	return allocate(o, n, func(n int, bytes uintptr) ([]T, error) {
		if mem.HasPointers[T]() {
			return nil, fmt.Errorf("%w: %v", ErrPointerType, reflect.TypeFor[T]())
		}
		if bytes == 0 {
			// Zero-size elements occupy no memory.
			return make([]T, n), nil
		}

		size, err := conv.UintptrToInt(bytes)
		if err != nil {
			return nil, err
		}
		m, err := mmap.MapAnon(size)
		if err != nil {
			return nil, err
		}
		if o.dontDump {
			if err := m.Advise(mmap.AccessDontDump); err != nil {
				o.logger.LogAdviseFailed(context.Background(), "dontdump", err)
			}
		}

		if !mem.Aligned(m.Bytes(), mem.AlignOf[T]()) {
			_ = m.Close()
			return nil, fmt.Errorf("mapping at %#x is not aligned for element type", m.Addr())
		}

		mappings.add(m)
		return mem.Cast[T](m.Bytes(), n), nil
	})
}

// Deallocate implements Allocator. Storage that was not acquired from an
// off-heap allocator is erased but left to its owner.
func (a OffHeapAllocator[T]) Deallocate(p []T, n int) {
	o := a.config()
	deallocate(o, p, n, func(s []T, bytes uintptr) {
		if bytes == 0 {
			return
		}
		m := mappings.take(uintptr(unsafe.Pointer(unsafe.SliceData(s)))) //nolint:gosec // address used as a registry key
		if m == nil {
			o.logger.LogForeignRelease(context.Background(), len(s), bytes)
			return
		}
		if err := m.Close(); err != nil {
			o.logger.WarnContext(context.Background(), "munmap failed", "bytes", m.Size(), "error", err)
		}
	})
}

// Equal implements Allocator. Mappings are tracked process-wide, so any two
// off-heap allocators are compatible.
func (OffHeapAllocator[T]) Equal(other Allocator[T]) bool {
	switch other.(type) {
	case OffHeapAllocator[T], *OffHeapAllocator[T]:
		return true
	default:
		return false
	}
}

// OffHeapMappings returns the number of live off-heap mappings in the process.
func OffHeapMappings() int {
	return mappings.len()
}

// mappings tracks every live off-heap mapping by base address.
var mappings = &mappingRegistry{m: make(map[uintptr]*mmap.Mapping)}

type mappingRegistry struct {
	mu sync.Mutex
	m  map[uintptr]*mmap.Mapping
}

func (r *mappingRegistry) add(m *mmap.Mapping) {
	r.mu.Lock()
	r.m[m.Addr()] = m
	r.mu.Unlock()
}

func (r *mappingRegistry) take(addr uintptr) *mmap.Mapping {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.m[addr]
	if !ok {
		return nil
	}
	delete(r.m, addr)
	return m
}

func (r *mappingRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.m)
}
