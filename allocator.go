package secmem

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/hupe1980/secmem/internal/conv"
	"github.com/hupe1980/secmem/internal/mem"
)

// Allocator acquires storage for elements of T and erases it on release.
//
// Allocate(0) returns nil and is not an allocation. Deallocate must be passed
// the same count that was passed to Allocate; the count is not cross-checked
// and a mismatch changes how much is erased. Deallocate never fails and is a
// no-op for nil storage.
type Allocator[T any] interface {
	// Allocate returns storage for n zeroed elements with len and cap n.
	Allocate(n int) ([]T, error)

	// Deallocate erases n elements starting at p's first element, then
	// releases the storage.
	Deallocate(p []T, n int)

	// Equal reports whether storage acquired from other may be released
	// through this allocator.
	Equal(other Allocator[T]) bool
}

// allocate performs the shared bookkeeping for an allocation: size checks,
// budget, metrics and logging. acquire obtains the storage itself.
func allocate[T any](o *options, n int, acquire func(n int, bytes uintptr) ([]T, error)) ([]T, error) {
	if n == 0 {
		return nil, nil
	}

	start := time.Now()
	elemSize := mem.SizeOf[T]()

	p, bytes, err := func() ([]T, uintptr, error) {
		bytes, err := conv.ByteSize(n, elemSize)
		if err != nil {
			return nil, 0, allocationError(n, elemSize, fmt.Errorf("%w: %w", ErrLengthOverflow, err))
		}
		if err := o.budget.charge(bytes, o.budgetWait); err != nil {
			return nil, bytes, allocationError(n, elemSize, err)
		}
		p, err := acquire(n, bytes)
		if err != nil {
			o.budget.refund(bytes)
			return nil, bytes, allocationError(n, elemSize, err)
		}
		return p, bytes, nil
	}()

	o.metricsCollector.RecordAllocate(int64(bytes), time.Since(start), err) //nolint:gosec // bounded by conv.MaxAllocBytes
	o.logger.LogAllocate(context.Background(), n, bytes, err)

	return p, err
}

// deallocate erases n elements at p and hands the erased extent to release.
// n is clamped to cap(p).
func deallocate[T any](o *options, p []T, n int, release func(s []T, bytes uintptr)) {
	if n <= 0 || cap(p) == 0 {
		return
	}
	n = min(n, cap(p))

	start := time.Now()
	s := mem.Extent(unsafe.SliceData(p), n)
	bytes := uintptr(n) * mem.SizeOf[T]()

	EraseSlice(s)
	release(s, bytes)
	o.budget.refund(bytes)

	o.metricsCollector.RecordDeallocate(int64(bytes), time.Since(start)) //nolint:gosec // bounded by conv.MaxAllocBytes
	o.logger.LogDeallocate(context.Background(), n, bytes)
}
