package secmem

import (
	"unsafe"

	"github.com/hupe1980/secmem/internal/mem"
	"github.com/hupe1980/secmem/internal/wipe"
)

// rawErase clears pointer-free extents. Tests swap it to observe calls.
var rawErase = wipe.Zero

// Erase sets every byte of [p, p+n) to zero. It is a no-op when p is nil or
// n is zero. The range must not contain Go pointers; use EraseSlice or
// EraseObject for typed memory.
func Erase(p unsafe.Pointer, n uintptr) {
	if p == nil || n == 0 {
		return
	}
	rawErase(p, n)
}

// EraseBytes zeroes b[:len(b)].
func EraseBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	rawErase(unsafe.Pointer(unsafe.SliceData(b)), uintptr(len(b)))
}

// EraseValue zeroes a single scalar. Enums become their zero member.
func EraseValue[T Scalar](v *T) {
	if v == nil {
		return
	}
	rawErase(unsafe.Pointer(v), unsafe.Sizeof(*v))
}

// ErasePointer sets *p to nil. The pointee is left untouched.
func ErasePointer[E any](p **E) {
	if p == nil {
		return
	}
	wipe.Typed(unsafe.Slice(p, 1))
}

// EraseSlice zeroes s[:len(s)]. Use arr[:] for fixed-size arrays.
//
// Only the elements' own storage is erased; memory the elements point to is
// not.
func EraseSlice[T any](s []T) {
	if len(s) == 0 {
		return
	}
	if mem.HasPointers[T]() {
		wipe.Typed(s)
		return
	}
	size := uintptr(len(s)) * mem.SizeOf[T]()
	if size == 0 {
		return
	}
	rawErase(unsafe.Pointer(unsafe.SliceData(s)), size)
}

// EraseObject zeroes the value at p, member storage only.
func EraseObject[T any](p *T) {
	if p == nil {
		return
	}
	EraseSlice(unsafe.Slice(p, 1))
}

// EraseString zeroes the characters of s (length times character size).
// The length is unchanged; the characters read as zero afterwards.
func EraseString[C Char](s *BasicString[C]) {
	if s == nil {
		return
	}
	EraseSlice(s.Chars())
}
