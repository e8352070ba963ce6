//go:build !secmem_purego

package wipe

import "unsafe"

//go:linkname memclrNoHeapPointers runtime.memclrNoHeapPointers
//go:noescape
func memclrNoHeapPointers(ptr unsafe.Pointer, n uintptr)

func zeroImpl(p unsafe.Pointer, n uintptr) {
	memclrNoHeapPointers(p, n)
}

// Impl names the active fill implementation.
const Impl = "runtime.memclr"
