package secmem

import (
	"slices"
	"unicode/utf16"
	"unsafe"

	"github.com/hupe1980/secmem/internal/mem"
)

// BasicString is a character string whose buffer comes from an Allocator and
// is erased on every reallocation and on Close.
//
// BasicString is not safe for concurrent use.
type BasicString[C Char] struct {
	v *Vector[C]
}

type (
	// String is an erasing UTF-8 string.
	String = BasicString[byte]
	// U16String is an erasing UTF-16 string.
	U16String = BasicString[uint16]
	// WString is an erasing string of runes.
	WString = BasicString[rune]
)

// NewBasicString returns a string holding a copy of chars.
// A nil alloc selects HeapAllocator.
func NewBasicString[C Char](alloc Allocator[C], chars ...C) (*BasicString[C], error) {
	v, err := VectorOf(alloc, chars...)
	if err != nil {
		return nil, err
	}
	return &BasicString[C]{v: v}, nil
}

// FromString returns an erasing string encoding str in C's width.
// str itself is a Go string and cannot be erased.
func FromString[C Char](alloc Allocator[C], str string) (*BasicString[C], error) {
	s, err := NewBasicString[C](alloc)
	if err != nil {
		return nil, err
	}
	if err := s.AppendString(str); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// NewString returns an erasing UTF-8 copy of str.
func NewString(alloc Allocator[byte], str string) (*String, error) {
	return FromString(alloc, str)
}

// Len returns the length in characters of C's width.
func (s *BasicString[C]) Len() int { return s.v.Len() }

// Chars returns a view of the characters, valid until the next call that
// changes the capacity.
func (s *BasicString[C]) Chars() []C { return s.v.Slice() }

// Append adds characters.
func (s *BasicString[C]) Append(chars ...C) error {
	return s.v.Append(chars...)
}

// AppendString adds str, encoded as UTF-8, UTF-16 or runes depending on
// the width of C.
func (s *BasicString[C]) AppendString(str string) error {
	switch unsafe.Sizeof(C(0)) {
	case 1:
		if err := s.v.Reserve(s.Len() + len(str)); err != nil {
			return err
		}
		for i := 0; i < len(str); i++ {
			if err := s.v.Append(C(str[i])); err != nil {
				return err
			}
		}
	case 2:
		for _, r := range str {
			if utf16.RuneLen(r) == 2 {
				r1, r2 := utf16.EncodeRune(r)
				if err := s.v.Append(C(r1), C(r2)); err != nil {
					return err
				}
				continue
			}
			if err := s.v.Append(C(r)); err != nil {
				return err
			}
		}
	default:
		for _, r := range str {
			if err := s.v.Append(C(r)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reserve ensures room for n characters without reallocating.
func (s *BasicString[C]) Reserve(n int) error { return s.v.Reserve(n) }

// Clear erases the characters and sets the length to zero.
func (s *BasicString[C]) Clear() { s.v.Clear() }

// Equal reports whether s and other hold the same characters.
func (s *BasicString[C]) Equal(other *BasicString[C]) bool {
	return slices.Equal(s.Chars(), other.Chars())
}

// Compare compares s and other lexicographically by character value.
func (s *BasicString[C]) Compare(other *BasicString[C]) int {
	return slices.Compare(s.Chars(), other.Chars())
}

// String returns the contents as a Go string. The result is an ordinary,
// un-erasable copy; avoid it for secrets where possible.
func (s *BasicString[C]) String() string {
	chars := s.Chars()
	if len(chars) == 0 {
		return ""
	}
	p := unsafe.Pointer(unsafe.SliceData(chars))

	switch unsafe.Sizeof(C(0)) {
	case 1:
		return string(mem.AsBytes(chars))
	case 2:
		runes := utf16.Decode(unsafe.Slice((*uint16)(p), len(chars)))
		str := string(runes)
		EraseSlice(runes)
		return str
	default:
		return string(unsafe.Slice((*rune)(p), len(chars)))
	}
}

// Close erases and releases the buffer. Close is idempotent.
func (s *BasicString[C]) Close() error {
	return s.v.Close()
}
