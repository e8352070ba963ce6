package mmap

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/secmem/internal/conv"
)

// Mapping is an anonymous read-write memory mapping.
// It owns the underlying pages and is responsible for unmapping them.
type Mapping struct {
	data   []byte
	size   int
	closed atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
}

// PageSize returns the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}

// MapAnon creates an anonymous mapping of size bytes, rounded up to whole pages.
// The memory is zero-filled by the kernel.
func MapAnon(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	r, err := conv.RoundUp(uintptr(size), uintptr(PageSize()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	rounded, err := conv.UintptrToInt(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	data, unmapFunc, err := osMapAnon(rounded)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d anonymous bytes: %w", rounded, err)
	}

	return &Mapping{
		data:  data,
		size:  rounded,
		unmap: unmapFunc,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		data := m.data
		m.data = nil
		return m.unmap(data)
	}
	return nil
}

// Bytes returns the mapped memory.
// Warning: The slice is valid only until Close() is called.
// Accessing the slice after Close() results in undefined behavior (likely a crash).
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Addr returns the base address of the mapping, or 0 once closed.
func (m *Mapping) Addr() uintptr {
	if m.closed.Load() || len(m.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(m.data))) //nolint:gosec // address used as a registry key
}

// Size returns the size of the mapping in bytes (a multiple of the page size).
func (m *Mapping) Size() int {
	return m.size
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}
