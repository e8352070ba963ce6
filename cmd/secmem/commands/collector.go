package commands

import (
	"time"

	"github.com/hupe1980/secmem"
)

// teeCollector forwards every event to two collectors.
type teeCollector struct {
	a, b secmem.MetricsCollector
}

func (t teeCollector) RecordAllocate(bytes int64, d time.Duration, err error) {
	t.a.RecordAllocate(bytes, d, err)
	t.b.RecordAllocate(bytes, d, err)
}

func (t teeCollector) RecordDeallocate(bytes int64, d time.Duration) {
	t.a.RecordDeallocate(bytes, d)
	t.b.RecordDeallocate(bytes, d)
}
