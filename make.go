package secmem

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/secmem/internal/conv"
	"github.com/hupe1980/secmem/internal/mem"
)

// MakeUniqueArray allocates n zeroed elements and wraps them in a Unique that
// erases all n on release.
func MakeUniqueArray[T any](n int) (*Unique[T, ArrayReleaser[T]], error) {
	p, err := newArray[T](n)
	if err != nil {
		return nil, err
	}
	return NewUnique(p, ArrayReleaser[T]{Count: n}), nil
}

// MakeSharedArray allocates n zeroed elements and wraps them in a Shared that
// erases all n when the last reference is closed.
func MakeSharedArray[T any](n int) (*Shared[T], error) {
	p, err := newArray[T](n)
	if err != nil {
		return nil, err
	}
	return NewShared[T](p, ArrayReleaser[T]{Count: n}), nil
}

// MakeUniqueObject allocates a T, applies init in order, and wraps it in a
// Unique that erases the object on release.
func MakeUniqueObject[T any](init ...func(*T)) *Unique[T, ObjectReleaser[T]] {
	return NewUnique(newObject(init), ObjectReleaser[T]{})
}

// MakeSharedObject allocates a T, applies init in order, and wraps it in a
// Shared that erases the object when the last reference is closed.
func MakeSharedObject[T any](init ...func(*T)) *Shared[T] {
	return NewShared[T](newObject(init), ObjectReleaser[T]{})
}

// AllocateUnique obtains n elements from alloc (HeapAllocator if nil) and wraps them in a Unique
// that returns them to alloc on release.
func AllocateUnique[T any](alloc Allocator[T], n int) (*Unique[T, AllocatorReleaser[T]], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	p, err := allocateArray(alloc, n)
	if err != nil {
		return nil, err
	}
	return NewUnique(p, AllocatorReleaser[T]{Allocator: alloc, Count: n}), nil
}

// AllocateShared obtains n elements from alloc and wraps them in a Shared
// that returns them to alloc when the last reference is closed.
func AllocateShared[T any](alloc Allocator[T], n int) (*Shared[T], error) {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	p, err := allocateArray(alloc, n)
	if err != nil {
		return nil, err
	}
	return NewShared[T](p, AllocatorReleaser[T]{Allocator: alloc, Count: n}), nil
}

// lengther is implemented by array releasers.
type lengther interface {
	Len() int
}

// UniqueSlice returns the array owned by u as a slice.
func UniqueSlice[T any, R interface {
	Releaser[T]
	lengther
}](u *Unique[T, R]) []T {
	return mem.Extent(u.Get(), u.Releaser().Len())
}

// SharedSlice returns the array behind s as a slice, or nil if s does not
// own an array.
func SharedSlice[T any](s *Shared[T]) []T {
	l, ok := s.Releaser().(lengther)
	if !ok {
		return nil
	}
	return mem.Extent(s.Get(), l.Len())
}

func newArray[T any](n int) (*T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length %d", ErrInvalidArgument, n)
	}
	elemSize := mem.SizeOf[T]()
	if _, err := conv.ByteSize(n, elemSize); err != nil {
		return nil, allocationError(n, elemSize, fmt.Errorf("%w: %w", ErrLengthOverflow, err))
	}
	if n == 0 {
		return nil, nil
	}
	return unsafe.SliceData(make([]T, n)), nil
}

func allocateArray[T any](alloc Allocator[T], n int) (*T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length %d", ErrInvalidArgument, n)
	}
	s, err := alloc.Allocate(n)
	if err != nil {
		return nil, err
	}
	return unsafe.SliceData(s), nil
}

func newObject[T any](init []func(*T)) *T {
	p := new(T)
	for _, fn := range init {
		fn(p)
	}
	return p
}
