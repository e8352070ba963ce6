package secmem

import (
	"fmt"
	"iter"
	"runtime"

	"github.com/hupe1980/secmem/internal/conv"
	"github.com/hupe1980/secmem/internal/mem"
)

// Vector is a growable array whose storage comes from an Allocator. Every
// reallocation erases the old buffer, slots vacated by Pop, Resize and Clear
// are erased immediately, and Close erases the remaining buffer.
//
// Slots between Len and Cap are always zero.
//
// Vector is not safe for concurrent use.
type Vector[T any] struct {
	s       *vectorState[T]
	cleanup runtime.Cleanup
}

// vectorState is what the cleanup safety net releases. It must not point back
// at the Vector.
type vectorState[T any] struct {
	alloc  Allocator[T]
	buf    []T // len(buf) == capacity
	n      int
	closed bool
}

// NewVector returns an empty vector with room for capacity elements.
// A nil alloc selects HeapAllocator.
func NewVector[T any](alloc Allocator[T], capacity int) (*Vector[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity)
	}
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}

	s := &vectorState[T]{alloc: alloc}
	if err := s.reallocate(capacity, nil); err != nil {
		return nil, err
	}

	v := &Vector[T]{s: s}
	v.cleanup = runtime.AddCleanup(v, (*vectorState[T]).release, s)
	return v, nil
}

// VectorOf returns a vector holding a copy of values. The caller remains
// responsible for erasing values.
func VectorOf[T any](alloc Allocator[T], values ...T) (*Vector[T], error) {
	v, err := NewVector(alloc, len(values))
	if err != nil {
		return nil, err
	}
	copy(v.s.buf, values)
	v.s.n = len(values)
	return v, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.s.n }

// Cap returns the number of elements the current buffer holds.
func (v *Vector[T]) Cap() int { return len(v.s.buf) }

// At returns element i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T {
	return v.s.buf[:v.s.n][i]
}

// Set replaces element i. It panics if i is out of range.
func (v *Vector[T]) Set(i int, x T) {
	v.s.buf[:v.s.n][i] = x
}

// Append adds values to the end, growing the buffer if needed.
func (v *Vector[T]) Append(values ...T) error {
	s := v.s
	if s.closed {
		return ErrClosed
	}
	if s.n+len(values) > len(s.buf) {
		// values may alias the old buffer, so it is copied before release.
		if err := s.grow(s.n+len(values), values); err != nil {
			return err
		}
	} else {
		copy(s.buf[s.n:], values)
	}
	s.n += len(values)
	return nil
}

// Pop removes and returns the last element. Its slot is erased.
func (v *Vector[T]) Pop() (T, bool) {
	s := v.s
	var zero T
	if s.n == 0 {
		return zero, false
	}
	x := s.buf[s.n-1]
	EraseSlice(s.buf[s.n-1 : s.n])
	s.n--
	return x, true
}

// Resize sets the length to n. New elements are zero; removed elements
// are erased.
func (v *Vector[T]) Resize(n int) error {
	s := v.s
	if s.closed {
		return ErrClosed
	}
	if n < 0 {
		return fmt.Errorf("%w: negative length %d", ErrInvalidArgument, n)
	}
	if n < s.n {
		EraseSlice(s.buf[n:s.n])
	} else if err := s.grow(n, nil); err != nil {
		return err
	}
	s.n = n
	return nil
}

// Reserve ensures the buffer holds at least n elements without reallocating.
func (v *Vector[T]) Reserve(n int) error {
	s := v.s
	if s.closed {
		return ErrClosed
	}
	if n <= len(s.buf) {
		return nil
	}
	return s.reallocate(n, nil)
}

// ShrinkToFit reallocates the buffer to exactly Len elements.
func (v *Vector[T]) ShrinkToFit() error {
	s := v.s
	if s.closed || s.n == len(s.buf) {
		return nil
	}
	return s.reallocate(s.n, nil)
}

// Clear erases all elements and sets the length to zero. The buffer is kept.
func (v *Vector[T]) Clear() {
	s := v.s
	EraseSlice(s.buf[:s.n])
	s.n = 0
}

// Slice returns a view of the elements. The view is invalidated by the next
// call that changes the capacity, and by Close. Appending to the view copies
// into memory secmem does not manage.
func (v *Vector[T]) Slice() []T {
	return v.s.buf[:v.s.n:v.s.n]
}

// All returns an iterator over index/value pairs.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.s.n; i++ {
			if !yield(i, v.s.buf[i]) {
				return
			}
		}
	}
}

// Close erases and releases the buffer. The vector is empty afterwards and
// further modifications fail with ErrClosed. Close is idempotent.
func (v *Vector[T]) Close() error {
	v.cleanup.Stop()
	v.s.release()
	return nil
}

// grow makes room for need elements, doubling the capacity. tail is copied
// after the current elements.
func (s *vectorState[T]) grow(need int, tail []T) error {
	if need <= len(s.buf) {
		return nil
	}
	newCap := max(need, 2*len(s.buf), 4)
	if limit := conv.MaxCount(mem.SizeOf[T]()); newCap > limit && need <= limit {
		newCap = limit
	}
	return s.reallocate(newCap, tail)
}

// reallocate moves the elements, followed by tail, into a buffer of exactly
// capacity elements and deallocates (erases) the old one. tail is not counted
// in n.
func (s *vectorState[T]) reallocate(capacity int, tail []T) error {
	buf, err := s.alloc.Allocate(capacity)
	if err != nil {
		return err
	}
	copy(buf, s.buf[:s.n])
	copy(buf[s.n:], tail)

	old := s.buf
	s.buf = buf
	s.alloc.Deallocate(old, len(old))
	return nil
}

func (s *vectorState[T]) release() {
	if s.closed {
		return
	}
	s.closed = true
	old := s.buf
	s.buf, s.n = nil, 0
	s.alloc.Deallocate(old, len(old))
}
