package secmem

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting allocator metrics.
// Implement this interface to integrate with monitoring systems; adapters for
// Prometheus and OpenTelemetry live in the metrics subpackages.
//
// Sizes are reported as requested (count times element size), not rounded to
// pages.
type MetricsCollector interface {
	// RecordAllocate is called after each allocation attempt with a
	// non-zero count. err is nil if successful.
	RecordAllocate(bytes int64, duration time.Duration, err error)

	// RecordDeallocate is called after each erase-and-release.
	// duration covers both the erase and the release.
	RecordDeallocate(bytes int64, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAllocate(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordDeallocate(int64, time.Duration)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and for checking that every allocation is matched by
// exactly one release.
type BasicMetricsCollector struct {
	AllocateCount        atomic.Int64
	AllocateErrors       atomic.Int64
	AllocatedBytes       atomic.Int64
	DeallocateCount      atomic.Int64
	DeallocatedBytes     atomic.Int64
	DeallocateTotalNanos atomic.Int64
}

// RecordAllocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocate(bytes int64, _ time.Duration, err error) {
	if err != nil {
		b.AllocateErrors.Add(1)
		return
	}
	b.AllocateCount.Add(1)
	b.AllocatedBytes.Add(bytes)
}

// RecordDeallocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDeallocate(bytes int64, duration time.Duration) {
	b.DeallocateCount.Add(1)
	b.DeallocatedBytes.Add(bytes)
	b.DeallocateTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	allocs := b.AllocateCount.Load()
	deallocs := b.DeallocateCount.Load()
	allocBytes := b.AllocatedBytes.Load()
	deallocBytes := b.DeallocatedBytes.Load()

	return BasicMetricsStats{
		AllocateCount:      allocs,
		AllocateErrors:     b.AllocateErrors.Load(),
		AllocatedBytes:     allocBytes,
		DeallocateCount:    deallocs,
		DeallocatedBytes:   deallocBytes,
		DeallocateAvgNanos: b.getAvgDeallocateNanos(),
		LiveAllocations:    allocs - deallocs,
		LiveBytes:          allocBytes - deallocBytes,
	}
}

func (b *BasicMetricsCollector) getAvgDeallocateNanos() int64 {
	count := b.DeallocateCount.Load()
	if count == 0 {
		return 0
	}
	return b.DeallocateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AllocateCount      int64
	AllocateErrors     int64
	AllocatedBytes     int64
	DeallocateCount    int64
	DeallocatedBytes   int64
	DeallocateAvgNanos int64
	LiveAllocations    int64
	LiveBytes          int64
}
