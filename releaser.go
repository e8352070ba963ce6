package secmem

import (
	"github.com/hupe1980/secmem/internal/mem"
)

// Releaser is the release policy of an ownership handle. Release is called
// exactly once, with exclusive access to the pointee, when the handle lets
// go of p.
type Releaser[T any] interface {
	Release(p *T)
}

// ArrayReleaser erases Count elements starting at p, then drops them.
// Count must match the length of the array p points into; it is not checked.
type ArrayReleaser[T any] struct {
	Count int
}

// Release implements Releaser.
func (r ArrayReleaser[T]) Release(p *T) {
	EraseSlice(mem.Extent(p, r.Count))
}

// Len returns Count.
func (r ArrayReleaser[T]) Len() int { return r.Count }

// ObjectReleaser erases the pointee's own storage, then drops it. Memory the
// object owns indirectly (a slice or map field, say) is not erased.
type ObjectReleaser[T any] struct{}

// Release implements Releaser.
func (ObjectReleaser[T]) Release(p *T) {
	EraseObject(p)
}

// AllocatorReleaser returns Count elements at p to Allocator, which erases
// and releases them. p must be the first element of storage obtained from a
// compatible allocator with the same count.
type AllocatorReleaser[T any] struct {
	Allocator Allocator[T]
	Count     int
}

// Release implements Releaser.
func (r AllocatorReleaser[T]) Release(p *T) {
	if p == nil || r.Allocator == nil {
		return
	}
	r.Allocator.Deallocate(mem.Extent(p, r.Count), r.Count)
}

// Len returns Count.
func (r AllocatorReleaser[T]) Len() int { return r.Count }

// ReleaserFunc adapts a function to Releaser.
type ReleaserFunc[T any] func(p *T)

// Release implements Releaser.
func (f ReleaserFunc[T]) Release(p *T) { f(p) }
