package secmem

// Integer is the set of integer types, including uintptr and any named type
// over them (enums).
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the set of floating-point types.
type Float interface {
	~float32 | ~float64
}

// Complex is the set of complex types.
type Complex interface {
	~complex64 | ~complex128
}

// Scalar is the set of types that own nothing beyond their own bytes and may
// be reduced to zero bytes at any time. Enums declared over integer types
// qualify; pointers, strings, slices, maps and structs do not.
type Scalar interface {
	Integer | Float | Complex | ~bool
}

// Char is the set of character unit types usable in BasicString:
// UTF-8 bytes, UTF-16 code units and runes.
type Char interface {
	~uint8 | ~uint16 | ~int32
}
