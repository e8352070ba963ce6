package secmem

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when storage cannot be acquired.
	ErrAllocation = errors.New("allocation failed")

	// ErrLengthOverflow is returned when a requested element count does not
	// fit the platform's maximum allocation size.
	ErrLengthOverflow = errors.New("length overflows maximum allocation size")

	// ErrInvalidArgument is returned for malformed construction arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPointerType is returned when an off-heap allocator is instantiated
	// for an element type that contains Go pointers.
	ErrPointerType = errors.New("element type contains pointers")

	// ErrBudgetExceeded is returned when an allocation would exceed the
	// configured memory budget.
	ErrBudgetExceeded = errors.New("memory budget exceeded")

	// ErrClosed is returned when a closed container is modified.
	ErrClosed = errors.New("closed")
)

// AllocationError describes a failed allocation.
//
// It matches ErrAllocation with errors.Is. The original underlying error
// (if any) can be accessed via errors.Unwrap.
type AllocationError struct {
	Count    int
	ElemSize uintptr
	cause    error
}

func (e *AllocationError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("allocation failed: %d elements of %d bytes", e.Count, e.ElemSize)
	}
	return fmt.Sprintf("allocation failed: %d elements of %d bytes: %v", e.Count, e.ElemSize, e.cause)
}

func (e *AllocationError) Unwrap() error { return e.cause }

// Is reports whether target is ErrAllocation.
func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }

func allocationError(n int, elemSize uintptr, cause error) error {
	return &AllocationError{Count: n, ElemSize: elemSize, cause: cause}
}
