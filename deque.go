package secmem

import (
	"iter"
	"runtime"

	"github.com/hupe1980/secmem/internal/conv"
	"github.com/hupe1980/secmem/internal/mem"
)

// Deque is a double-ended queue on a ring buffer from an Allocator. Popped
// slots are erased immediately, growth erases the old buffer, and Close
// erases the rest.
//
// Deque is not safe for concurrent use.
type Deque[T any] struct {
	s       *dequeState[T]
	cleanup runtime.Cleanup
}

type dequeState[T any] struct {
	alloc  Allocator[T]
	buf    []T
	head   int
	n      int
	closed bool
}

// NewDeque returns an empty deque. A nil alloc selects HeapAllocator.
func NewDeque[T any](alloc Allocator[T]) *Deque[T] {
	if alloc == nil {
		alloc = HeapAllocator[T]{}
	}
	s := &dequeState[T]{alloc: alloc}
	d := &Deque[T]{s: s}
	d.cleanup = runtime.AddCleanup(d, (*dequeState[T]).release, s)
	return d
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int { return d.s.n }

// Cap returns the number of elements the ring holds before growing.
func (d *Deque[T]) Cap() int { return len(d.s.buf) }

// PushBack adds x at the back.
func (d *Deque[T]) PushBack(x T) error {
	s := d.s
	if err := s.grow(); err != nil {
		return err
	}
	s.buf[s.index(s.n)] = x
	s.n++
	return nil
}

// PushFront adds x at the front.
func (d *Deque[T]) PushFront(x T) error {
	s := d.s
	if err := s.grow(); err != nil {
		return err
	}
	s.head = (s.head - 1 + len(s.buf)) % len(s.buf)
	s.buf[s.head] = x
	s.n++
	return nil
}

// PopBack removes and returns the back element.
func (d *Deque[T]) PopBack() (T, bool) {
	s := d.s
	var zero T
	if s.n == 0 {
		return zero, false
	}
	i := s.index(s.n - 1)
	x := s.buf[i]
	EraseSlice(s.buf[i : i+1])
	s.n--
	return x, true
}

// PopFront removes and returns the front element.
func (d *Deque[T]) PopFront() (T, bool) {
	s := d.s
	var zero T
	if s.n == 0 {
		return zero, false
	}
	x := s.buf[s.head]
	EraseSlice(s.buf[s.head : s.head+1])
	s.head = (s.head + 1) % len(s.buf)
	s.n--
	return x, true
}

// Front returns the front element without removing it.
func (d *Deque[T]) Front() (T, bool) {
	var zero T
	if d.s.n == 0 {
		return zero, false
	}
	return d.s.buf[d.s.head], true
}

// Back returns the back element without removing it.
func (d *Deque[T]) Back() (T, bool) {
	var zero T
	if d.s.n == 0 {
		return zero, false
	}
	return d.s.buf[d.s.index(d.s.n-1)], true
}

// At returns element i counted from the front. It panics if i is out of range.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.s.n {
		panic("secmem: deque index out of range")
	}
	return d.s.buf[d.s.index(i)]
}

// Clear erases all elements. The buffer is kept.
func (d *Deque[T]) Clear() {
	s := d.s
	EraseSlice(s.buf)
	s.head, s.n = 0, 0
}

// All returns an iterator over index/value pairs from front to back.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.s.n; i++ {
			if !yield(i, d.s.buf[d.s.index(i)]) {
				return
			}
		}
	}
}

// Close erases and releases the ring. Further pushes fail with ErrClosed.
// Close is idempotent.
func (d *Deque[T]) Close() error {
	d.cleanup.Stop()
	d.s.release()
	return nil
}

func (s *dequeState[T]) index(i int) int {
	return (s.head + i) % len(s.buf)
}

// grow makes room for one more element, moving the ring into a buffer twice
// the size and erasing the old one.
func (s *dequeState[T]) grow() error {
	if s.closed {
		return ErrClosed
	}
	if s.n < len(s.buf) {
		return nil
	}

	newCap := max(2*len(s.buf), 4)
	if limit := conv.MaxCount(mem.SizeOf[T]()); newCap > limit && s.n < limit {
		newCap = limit
	}
	buf, err := s.alloc.Allocate(newCap)
	if err != nil {
		return err
	}
	for i := range s.n {
		buf[i] = s.buf[s.index(i)]
	}

	old := s.buf
	s.buf, s.head = buf, 0
	s.alloc.Deallocate(old, len(old))
	return nil
}

func (s *dequeState[T]) release() {
	if s.closed {
		return
	}
	s.closed = true
	old := s.buf
	s.buf, s.head, s.n = nil, 0, 0
	s.alloc.Deallocate(old, len(old))
}
