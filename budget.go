package secmem

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/secmem/internal/resource"
)

// Budget caps the number of bytes live across the allocators that share it.
// A nil *Budget is unlimited. Budget is safe for concurrent use.
type Budget struct {
	c *resource.Controller
}

// NewBudget returns a budget of limitBytes. A limit of zero or less only
// tracks usage.
func NewBudget(limitBytes int64) *Budget {
	if limitBytes < 0 {
		limitBytes = 0
	}
	return &Budget{c: resource.NewController(resource.Config{MemoryLimitBytes: limitBytes})}
}

// Used returns the bytes currently charged.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.c.MemoryUsage()
}

// Peak returns the highest charge observed.
func (b *Budget) Peak() int64 {
	if b == nil {
		return 0
	}
	return b.c.PeakMemoryUsage()
}

// Limit returns the configured limit (0 if unlimited).
func (b *Budget) Limit() int64 {
	if b == nil {
		return 0
	}
	return b.c.MemoryLimit()
}

// charge reserves bytes. With a positive wait it blocks up to wait for
// other allocations to be released; otherwise it fails immediately.
func (b *Budget) charge(bytes uintptr, wait time.Duration) error {
	if b == nil || bytes == 0 {
		return nil
	}
	// bytes never exceeds conv.MaxAllocBytes, which fits int64.
	n := int64(bytes) //nolint:gosec // bounded above

	var err error
	if wait > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		err = b.c.WaitMemory(ctx, n)
		cancel()
	} else {
		err = b.c.AcquireMemory(n)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
	}
	return nil
}

func (b *Budget) refund(bytes uintptr) {
	if b == nil || bytes == 0 {
		return
	}
	b.c.ReleaseMemory(int64(bytes)) //nolint:gosec // bounded above
}
