//go:build secmem_purego

package wipe

import (
	"runtime"
	"unsafe"
)

//go:noinline
func zeroImpl(p unsafe.Pointer, n uintptr) {
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Impl names the active fill implementation.
const Impl = "loop"
