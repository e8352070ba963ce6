package wipe

import (
	"runtime"
	"unsafe"
)

// zeroFunc performs the fill. Tests swap it to observe calls.
var zeroFunc = zeroImpl

// Zero sets every byte of [p, p+n) to zero.
// It is a no-op when p is nil or n is zero. The range must not contain Go pointers.
func Zero(p unsafe.Pointer, n uintptr) {
	if p == nil || n == 0 {
		return
	}
	zeroFunc(p, n)
	runtime.KeepAlive(p)
}

// Bytes zeroes b.
func Bytes(b []byte) {
	if len(b) == 0 {
		return
	}
	Zero(unsafe.Pointer(unsafe.SliceData(b)), uintptr(len(b)))
}

// Typed clears s element-wise with write barriers.
//
//go:noinline
func Typed[T any](s []T) {
	if len(s) == 0 {
		return
	}
	clear(s)
	runtime.KeepAlive(unsafe.SliceData(s))
}
