// Package mmap provides anonymous memory mappings for off-heap storage.
//
// # Overview
//
// Anonymous mappings live outside the Go heap: the garbage collector neither
// scans nor moves them, and unmapping returns the pages to the operating
// system immediately. The off-heap allocator uses one mapping per
// allocation so that releasing storage is deterministic.
//
// # Usage
//
//	m, err := mmap.MapAnon(4096)
//	if err != nil { ... }
//	defer m.Close()
//
//	buf := m.Bytes()
//
//	// Keep the pages out of core dumps (Linux only, no-op elsewhere)
//	_ = m.Advise(mmap.AccessDontDump)
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with MAP_ANON|MAP_PRIVATE, madvise(2) for hints
//   - Windows: VirtualAlloc/VirtualFree (hints are no-ops)
//
// # Thread Safety
//
// Close is idempotent and protected by an atomic flag. Callers must ensure no
// goroutine touches Bytes() after Close() returns. Mappings must never hold
// Go pointers.
package mmap
