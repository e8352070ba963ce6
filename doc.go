// Package secmem erases sensitive memory at the moment it is released.
//
// Secrets held in ordinary Go memory linger after use: the garbage collector
// reclaims storage whenever it likes and never clears it, and growing a slice
// leaves the old backing array behind untouched. secmem attaches a zeroing
// guarantee to the points where storage is given up.
//
// # Erasure
//
// Erase and its typed forms overwrite memory with zeros through a call the
// compiler cannot elide:
//
//	key := make([]byte, 32)
//	defer secmem.EraseBytes(key)
//
//	var nonce uint64
//	defer secmem.EraseValue(&nonce)
//
// Pointer-free memory is cleared with a raw fill; memory holding Go pointers
// is cleared element-wise so the garbage collector observes every overwritten
// pointer.
//
// # Allocators
//
// An Allocator hands out storage and erases the full extent when it is
// returned. Two backends exist:
//
//	heap := secmem.HeapAllocator[byte]{}                  // Go heap, zero value ready
//	off, _ := secmem.NewOffHeapAllocator[byte](           // anonymous mmap
//	    secmem.WithDontDump(),
//	    secmem.WithBudget(secmem.NewBudget(64 << 20)),
//	)
//
// # Containers
//
// Vector, Deque and BasicString (String, U16String, WString) reimplement the
// usual container operations on top of an Allocator. Every reallocation
// erases the old buffer, vacated slots are erased immediately, and Close
// erases the rest:
//
//	v, _ := secmem.NewVector[byte](off, 0)
//	defer v.Close()
//	_ = v.Append(secret...)
//
// Only the container's own buffer is erased. Elements that own separate
// allocations (a string inside a Vector[string], say) keep those allocations
// un-erased; use the erasing containers at every level when that matters.
//
// # Arrays and Handles
//
// Array is a fixed-capacity sequence of scalars that erases its storage as the
// first step of Close. Unique and Shared are ownership handles that run a
// Releaser (ArrayReleaser, ObjectReleaser, AllocatorReleaser) exactly once:
//
//	u, _ := secmem.MakeUniqueArray[uint32](100)
//	defer u.Close() // erases 100 elements
//
//	s := secmem.MakeSharedObject(func(k *Key) { k.ID = 7 })
//	c := s.Clone()
//	_ = s.Close() // still referenced by c
//	_ = c.Close() // erased here
//
// # Lifetime
//
// Go has no destructors, so every owning type has an explicit Close. As a
// safety net, owners created through constructors also register a runtime
// cleanup that performs the same erasure if the owner becomes unreachable
// without being closed. Explicit Close is always preferred: cleanups run at
// the garbage collector's discretion.
//
// # Limits
//
// secmem does not lock memory against swapping, cannot erase copies made by
// code that bypasses these types (including string conversions), and offers
// no defence against cold-boot or DMA attacks.
package secmem
