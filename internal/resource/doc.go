// Package resource implements a process-wide memory budget for erasing allocators.
//
// A Controller caps how many bytes of secret-bearing storage may be live at
// once. Allocators acquire the byte size of an allocation before handing it
// out and release it after the storage has been erased.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64MB of secrets at most
//	})
//
//	// Non-blocking acquire (returns error immediately if limit exceeded)
//	if err := rc.AcquireMemory(4096); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(4096)
//
//	// Blocking acquire, bounded by ctx
//	if err := rc.WaitMemory(ctx, 4096); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops.
// This allows optional budgeting without nil checks everywhere.
package resource
