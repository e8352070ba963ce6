package prom

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/secmem"
)

func TestCollector_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "test")
	require.NoError(t, err)

	c.RecordAllocate(64, time.Millisecond, nil)
	c.RecordAllocate(0, time.Millisecond, errors.New("boom"))
	c.RecordDeallocate(64, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("allocate", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("allocate", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("deallocate", "success")))
	assert.Equal(t, 64.0, testutil.ToFloat64(c.bytes.WithLabelValues("allocate")))
	assert.Equal(t, 64.0, testutil.ToFloat64(c.bytes.WithLabelValues("deallocate")))
	assert.Zero(t, testutil.ToFloat64(c.live))

	assert.Equal(t, 2, testutil.CollectAndCount(c.duration))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"test_operations_total",
		"test_bytes_total",
		"test_live_bytes",
		"test_operation_duration_seconds",
	}, names)
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "dup")
	require.NoError(t, err)

	_, err = NewCollector(reg, "dup")
	assert.Error(t, err)
}

func TestCollector_WithOffHeapAllocator(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg, "secmem")
	require.NoError(t, err)

	alloc, err := secmem.NewOffHeapAllocator[byte](secmem.WithMetricsCollector(c))
	require.NoError(t, err)

	s, err := secmem.NewString(alloc, "top secret")
	require.NoError(t, err)
	assert.Equal(t, 10.0, testutil.ToFloat64(c.live))

	require.NoError(t, s.Close())
	assert.Zero(t, testutil.ToFloat64(c.live))
	assert.Equal(t,
		testutil.ToFloat64(c.operations.WithLabelValues("allocate", "success")),
		testutil.ToFloat64(c.operations.WithLabelValues("deallocate", "success")),
	)
}
