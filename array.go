package secmem

import (
	"errors"
	"fmt"
	"iter"
	"runtime"
)

// Array is a fixed-capacity sequence of scalars. The capacity is set at
// construction and the storage is never reallocated, so it is never copied.
//
// Close erases the whole storage as its first step, then runs the functions
// registered with OnClose. Types embedding an Array can use OnClose for their
// own teardown; by then the array reads as all zero.
type Array[T Scalar] struct {
	fixed[T]
}

// PointerArray is the Array counterpart for pointers. Close sets every
// element to nil; the pointees are left untouched.
type PointerArray[E any] struct {
	fixed[*E]
}

// NewArray returns an array of n elements initialised from init. Elements
// beyond len(init) are zero. It fails with ErrInvalidArgument if n is
// negative or init is longer than n.
func NewArray[T Scalar](n int, init ...T) (*Array[T], error) {
	data, err := newFixedData(n, init)
	if err != nil {
		return nil, err
	}
	a := &Array[T]{fixed[T]{data: data}}
	a.cleanup = runtime.AddCleanup(a, EraseSlice[T], a.data)
	return a, nil
}

// NewPointerArray returns an array of n pointers initialised from init.
// Elements beyond len(init) are nil. Arguments are checked as in NewArray.
func NewPointerArray[E any](n int, init ...*E) (*PointerArray[E], error) {
	data, err := newFixedData(n, init)
	if err != nil {
		return nil, err
	}
	a := &PointerArray[E]{fixed[*E]{data: data}}
	a.cleanup = runtime.AddCleanup(a, EraseSlice[*E], a.data)
	return a, nil
}

func newFixedData[T any](n int, init []T) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative array length %d", ErrInvalidArgument, n)
	}
	if len(init) > n {
		return nil, fmt.Errorf("%w: %d initializers for array of length %d", ErrInvalidArgument, len(init), n)
	}
	data := make([]T, n)
	copy(data, init)
	return data, nil
}

// fixed holds the storage and teardown shared by Array and PointerArray.
type fixed[T any] struct {
	data    []T
	onClose []func() error
	closed  bool
	cleanup runtime.Cleanup
}

// Len returns the fixed capacity.
func (a *fixed[T]) Len() int { return len(a.data) }

// At returns element i. It panics if i is out of range.
func (a *fixed[T]) At(i int) T { return a.data[i] }

// Set replaces element i. It panics if i is out of range.
func (a *fixed[T]) Set(i int, x T) { a.data[i] = x }

// Data returns the storage. Writes through it are visible in the array.
func (a *fixed[T]) Data() []T { return a.data }

// All returns an iterator over index/value pairs.
func (a *fixed[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range a.data {
			if !yield(i, x) {
				return
			}
		}
	}
}

// OnClose registers fn to run after the storage has been erased. Functions
// run in reverse registration order.
func (a *fixed[T]) OnClose(fn func() error) {
	a.onClose = append(a.onClose, fn)
}

// Close erases the storage, then runs the OnClose functions and joins their
// errors. The length is unchanged and every element reads as zero.
// Close is idempotent.
func (a *fixed[T]) Close() error {
	EraseSlice(a.data)
	if a.closed {
		return nil
	}
	a.closed = true
	a.cleanup.Stop()

	var errs []error
	for i := len(a.onClose) - 1; i >= 0; i-- {
		if err := a.onClose[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.onClose = nil
	return errors.Join(errs...)
}
