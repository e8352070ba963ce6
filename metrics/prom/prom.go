// Package prom records secmem allocator metrics with the Prometheus client.
package prom

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/secmem"
)

// Collector implements secmem.MetricsCollector with Prometheus metrics.
type Collector struct {
	operations *prometheus.CounterVec
	bytes      *prometheus.CounterVec
	live       prometheus.Gauge
	duration   *prometheus.HistogramVec
}

var _ secmem.MetricsCollector = (*Collector)(nil)

// NewCollector creates the metrics under namespace and registers them with reg.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total number of allocate and deallocate operations.",
		}, []string{"operation", "status"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_total",
			Help:      "Total bytes allocated and erased.",
		}, []string{"operation"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_bytes",
			Help:      "Bytes currently allocated and not yet erased.",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of allocate and deallocate operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"operation"}),
	}

	for _, col := range []prometheus.Collector{c.operations, c.bytes, c.live, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return c, nil
}

// RecordAllocate implements secmem.MetricsCollector.
func (c *Collector) RecordAllocate(bytes int64, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.operations.WithLabelValues("allocate", status).Inc()
	c.duration.WithLabelValues("allocate").Observe(duration.Seconds())
	if err != nil {
		return
	}
	c.bytes.WithLabelValues("allocate").Add(float64(bytes))
	c.live.Add(float64(bytes))
}

// RecordDeallocate implements secmem.MetricsCollector.
func (c *Collector) RecordDeallocate(bytes int64, duration time.Duration) {
	c.operations.WithLabelValues("deallocate", "success").Inc()
	c.duration.WithLabelValues("deallocate").Observe(duration.Seconds())
	c.bytes.WithLabelValues("deallocate").Add(float64(bytes))
	c.live.Sub(float64(bytes))
}
