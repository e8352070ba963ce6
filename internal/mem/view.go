package mem

import (
	"unsafe"
)

// AsBytes returns the bytes backing s[:len(s)].
// T must be pointer-free for the view to be written through.
func AsBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	n := uintptr(len(s)) * SizeOf[T]()
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), n) //nolint:gosec // unsafe is required for typed views
}

// Cast reinterprets the start of b as n values of T.
// b must be suitably aligned for T and hold at least n*sizeof(T) bytes.
func Cast[T any](b []byte, n int) []T {
	if n <= 0 || len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n) //nolint:gosec // unsafe is required for typed views
}

// Extent returns the n elements starting at p, regardless of any slice
// bounds previously attached to p.
func Extent[T any](p *T, n int) []T {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(p, n)
}

// Aligned reports whether the address of b's first byte is a multiple of align.
func Aligned(b []byte, align uintptr) bool {
	if len(b) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))%align == 0 //nolint:gosec // address inspection only
}
