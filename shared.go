package secmem

import (
	"runtime"
	"sync/atomic"
)

// Shared is one reference to a reference-counted pointee. The releaser runs
// exactly once, when the last reference is closed (or collected by the
// cleanup safety net).
//
// The count is atomic, so references may be closed from different
// goroutines. A single Shared value is not safe for concurrent use.
type Shared[T any] struct {
	c       *sharedControl[T]
	closed  atomic.Bool
	cleanup runtime.Cleanup
}

type sharedControl[T any] struct {
	p    *T
	r    Releaser[T]
	refs atomic.Int64
}

// NewShared takes ownership of p, to be released through r once the last
// reference is closed.
func NewShared[T any](p *T, r Releaser[T]) *Shared[T] {
	c := &sharedControl[T]{p: p, r: r}
	c.refs.Store(1)
	return c.handle()
}

func (c *sharedControl[T]) handle() *Shared[T] {
	h := &Shared[T]{c: c}
	h.cleanup = runtime.AddCleanup(h, (*sharedControl[T]).drop, c)
	return h
}

func (c *sharedControl[T]) drop() {
	if c.refs.Add(-1) != 0 {
		return
	}
	p := c.p
	c.p = nil
	if p != nil && c.r != nil {
		c.r.Release(p)
	}
}

// Get returns the shared pointer, or nil once this reference is closed.
func (h *Shared[T]) Get() *T {
	if h.closed.Load() {
		return nil
	}
	return h.c.p
}

// Releaser returns the release policy.
func (h *Shared[T]) Releaser() Releaser[T] { return h.c.r }

// Clone returns a new reference to the same pointee. Cloning a closed
// reference returns nil.
func (h *Shared[T]) Clone() *Shared[T] {
	if h.closed.Load() {
		return nil
	}
	h.c.refs.Add(1)
	return h.c.handle()
}

// UseCount returns the number of live references, or 0 once this reference
// is closed.
func (h *Shared[T]) UseCount() int64 {
	if h.closed.Load() {
		return 0
	}
	return h.c.refs.Load()
}

// Close drops this reference. The releaser runs if it was the last one.
// Close is idempotent.
func (h *Shared[T]) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	h.cleanup.Stop()
	h.c.drop()
	return nil
}
