package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/secmem"
	"github.com/hupe1980/secmem/config"
)

func quietEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SECMEM_LOG_LEVEL", "error")
	t.Setenv("SECMEM_BACKEND", "heap")
	t.Setenv("SECMEM_METRICS_EXPORTER", "none")
	t.Setenv("SECMEM_METRICS_NAMESPACE", "secmem")
}

func TestRunSelfTest(t *testing.T) {
	for _, backend := range []string{config.BackendHeap, config.BackendOffHeap} {
		t.Run(backend, func(t *testing.T) {
			quietEnv(t)

			var out bytes.Buffer
			require.NoError(t, RunSelfTest(context.Background(), &out, backend, "text"))

			assert.Contains(t, out.String(), "backend="+backend)
			assert.Contains(t, out.String(), "PASS  symmetry")
			assert.NotContains(t, out.String(), "FAIL")
		})
	}
}

func TestRunSelfTestJSON(t *testing.T) {
	quietEnv(t)

	var out bytes.Buffer
	require.NoError(t, RunSelfTest(context.Background(), &out, "", "json"))

	var report Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.True(t, report.Passed)
	assert.Equal(t, config.BackendHeap, report.Backend)
	assert.Len(t, report.Results, len(checks)+1)
	assert.Equal(t, report.Allocations.AllocateCount, report.Allocations.DeallocateCount)
	assert.Zero(t, report.Allocations.LiveBytes)
}

func TestRunSelfTestInvalidBackend(t *testing.T) {
	quietEnv(t)

	var out bytes.Buffer
	err := RunSelfTest(context.Background(), &out, "tape", "text")
	require.ErrorIs(t, err, secmem.ErrInvalidArgument)
	assert.Empty(t, out.String())
}

func TestRunCheckRecoversPanic(t *testing.T) {
	r := runCheck(check{name: "boom", run: func(*harness) error { panic("boom") }}, nil)
	assert.False(t, r.Passed)
	assert.Equal(t, "boom", r.Name)
	assert.Contains(t, r.Error, "panic: boom")
}

func TestRunBench(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunBench(context.Background(), &out, 4096, 100))
	assert.Contains(t, out.String(), "size=4096 iterations=100")
	assert.Contains(t, out.String(), "impl=")
}

func TestBenchInvalidArguments(t *testing.T) {
	_, err := bench(context.Background(), 0, 10)
	require.ErrorIs(t, err, secmem.ErrInvalidArgument)

	_, err = bench(context.Background(), 10, -1)
	require.ErrorIs(t, err, secmem.ErrInvalidArgument)
}

func TestBenchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bench(ctx, 64, 10)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBenchResult(t *testing.T) {
	r := BenchResult{Size: 1 << 20, Iterations: 10, Elapsed: time.Second}
	assert.InDelta(t, 1e8, r.NsPerOp(), 1)
	assert.InDelta(t, 10, r.MiBPerSec(), 1e-9)
	assert.Zero(t, BenchResult{Size: 1, Iterations: 1}.MiBPerSec())
}

func TestRunMetrics(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		want     []string
	}{
		{
			name:     "prometheus",
			exporter: config.ExporterPrometheus,
			want:     []string{"secmem_operations_total", `operation="allocate"`, "secmem_live_bytes 0"},
		},
		{
			name:     "otel",
			exporter: config.ExporterOTel,
			want:     []string{"secmem_operations", `operation="deallocate"`},
		},
		{
			name:     "default",
			exporter: "",
			want:     []string{"secmem_operations_total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quietEnv(t)

			var out bytes.Buffer
			require.NoError(t, RunMetrics(context.Background(), &out, tt.exporter, ""))
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestRunMetricsUnknownExporter(t *testing.T) {
	quietEnv(t)

	err := RunMetrics(context.Background(), &bytes.Buffer{}, "statsd", "")
	require.ErrorIs(t, err, secmem.ErrInvalidArgument)
}

func TestTeeCollector(t *testing.T) {
	a := &secmem.BasicMetricsCollector{}
	b := &secmem.BasicMetricsCollector{}
	tee := teeCollector{a, b}

	tee.RecordAllocate(64, time.Microsecond, nil)
	tee.RecordDeallocate(64, time.Microsecond)

	for _, c := range []*secmem.BasicMetricsCollector{a, b} {
		stats := c.GetStats()
		assert.Equal(t, int64(1), stats.AllocateCount)
		assert.Equal(t, int64(1), stats.DeallocateCount)
		assert.Zero(t, stats.LiveBytes)
	}
}
