package conv

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrOverflow is returned when a size computation does not fit the platform.
var ErrOverflow = errors.New("integer overflow")

// MaxAllocBytes is the largest single allocation this module will request.
// It mirrors the runtime's addressable heap limit (47 bits on 64-bit
// platforms), so requests above it fail with an error instead of a fatal
// runtime throw inside make.
const MaxAllocBytes = uintptr(maxAlloc64*(bits.UintSize/64) + math.MaxInt32*(1-bits.UintSize/64))

const maxAlloc64 = 1 << 47

// ByteSize returns n*elemSize, failing on negative counts and overflow.
func ByteSize(n int, elemSize uintptr) (uintptr, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrOverflow, n)
	}
	if n == 0 || elemSize == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul(uint(n), uint(elemSize))
	if hi != 0 || uintptr(lo) > MaxAllocBytes {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, n, elemSize)
	}
	return uintptr(lo), nil
}

// MaxCount returns the largest element count whose byte size stays within
// MaxAllocBytes.
func MaxCount(elemSize uintptr) int {
	if elemSize == 0 {
		return math.MaxInt
	}
	n := MaxAllocBytes / elemSize
	if uint64(n) > uint64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

// RoundUp rounds size up to the next multiple of align (a power of two).
func RoundUp(size, align uintptr) (uintptr, error) {
	if align == 0 || align&(align-1) != 0 {
		return 0, fmt.Errorf("%w: alignment %d is not a power of two", ErrOverflow, align)
	}
	r := (size + align - 1) &^ (align - 1)
	if r < size {
		return 0, fmt.Errorf("%w: rounding %d to %d", ErrOverflow, size, align)
	}
	return r, nil
}

// UintptrToInt converts uintptr to int safely.
func UintptrToInt(v uintptr) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}
