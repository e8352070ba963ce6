// Package conv provides overflow-checked size arithmetic.
//
// Allocation requests arrive as element counts. Before any storage is
// requested the count has to be turned into a byte length without wrapping:
//
//	size, err := conv.ByteSize(n, unsafe.Sizeof(v))
//	if err != nil { ... } // ErrOverflow
//
// The helpers also cover the int/uintptr conversions needed when handing
// lengths to unsafe.Slice and to the OS mapping calls.
package conv
