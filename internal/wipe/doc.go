// Package wipe is the single place where memory is overwritten with zeros.
//
// # Dead-store resistance
//
// A store to memory that is about to be released looks dead to an optimizer.
// Every fill in this package goes through zeroFunc, a package-level function
// variable. The compiler cannot resolve its target statically, so it cannot
// inline the call or prove it free of side effects.
//
// By default zeroFunc points at runtime.memclrNoHeapPointers, an assembly
// routine the compiler never sees into. Building with the secmem_purego tag
// replaces it with a non-inlinable byte loop followed by runtime.KeepAlive.
//
// # Pointer-bearing memory
//
// Zero and Bytes must only be used on memory that holds no Go pointers. The
// garbage collector's write barrier has to observe every overwritten pointer,
// which a raw fill bypasses. Typed clears such memory element by element with
// the builtin clear, keeping the barrier intact.
package wipe
