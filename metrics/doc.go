// Package metrics groups the secmem.MetricsCollector adapters.
//
// Subpackages:
//
//   - prom: Prometheus client_golang counters, gauges and histograms
//   - otel: OpenTelemetry instruments, plus a Provider exporting them in
//     Prometheus format
//
// Both report sizes and durations only; secret contents never leave the
// allocator.
package metrics
