// Package mem provides layout queries and unsafe views over typed memory.
//
// # Layout
//
// HasPointers reports whether a type's memory holds Go pointers. Pointer-free
// memory may be filled with a raw byte clear and may live outside the Go heap;
// pointer-bearing memory may not.
//
// # Views
//
// Cast and AsBytes reinterpret an existing backing array without copying.
// The views alias the original storage and are valid only as long as it is.
package mem
