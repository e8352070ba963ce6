// Package otel records secmem allocator metrics with OpenTelemetry.
package otel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hupe1980/secmem"
)

const (
	opAllocate   = "allocate"
	opDeallocate = "deallocate"
)

// Collector implements secmem.MetricsCollector using OpenTelemetry instruments.
type Collector struct {
	operations metric.Int64Counter
	bytes      metric.Int64Counter
	live       metric.Int64UpDownCounter
	duration   metric.Float64Histogram
}

var _ secmem.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "secmem").
func NewCollector(meterProvider metric.MeterProvider, namespace string) (*Collector, error) {
	meter := meterProvider.Meter(namespace)

	operations, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations", namespace),
		metric.WithDescription("Total number of allocate and deallocate operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	bytes, err := meter.Int64Counter(
		fmt.Sprintf("%s_bytes", namespace),
		metric.WithDescription("Total bytes allocated and erased"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bytes counter: %w", err)
	}

	live, err := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_live_bytes", namespace),
		metric.WithDescription("Bytes currently allocated and not yet erased"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create live bytes counter: %w", err)
	}

	duration, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of allocate and deallocate operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	return &Collector{
		operations: operations,
		bytes:      bytes,
		live:       live,
		duration:   duration,
	}, nil
}

// RecordAllocate implements secmem.MetricsCollector.
func (c *Collector) RecordAllocate(bytes int64, duration time.Duration, err error) {
	ctx := context.Background()
	status := "success"
	if err != nil {
		status = "error"
	}

	c.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opAllocate),
		attribute.String("status", status),
	))
	c.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", opAllocate),
	))
	if err != nil {
		return
	}
	c.bytes.Add(ctx, bytes, metric.WithAttributes(attribute.String("operation", opAllocate)))
	c.live.Add(ctx, bytes)
}

// RecordDeallocate implements secmem.MetricsCollector.
func (c *Collector) RecordDeallocate(bytes int64, duration time.Duration) {
	ctx := context.Background()
	opAttr := metric.WithAttributes(attribute.String("operation", opDeallocate))

	c.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opDeallocate),
		attribute.String("status", "success"),
	))
	c.duration.Record(ctx, duration.Seconds(), opAttr)
	c.bytes.Add(ctx, bytes, opAttr)
	c.live.Add(ctx, -bytes)
}
