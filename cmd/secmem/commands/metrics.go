package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/secmem"
	"github.com/hupe1980/secmem/config"
	otelmetrics "github.com/hupe1980/secmem/metrics/otel"
	"github.com/hupe1980/secmem/metrics/prom"
)

// RunMetrics runs the self-test workload with the given exporter attached and
// writes the gathered metric families. An empty exporter uses the configured
// one, falling back to prometheus.
func RunMetrics(ctx context.Context, w io.Writer, exporter, backend string) error {
	cfg, err := loadConfig(backend)
	if err != nil {
		return err
	}
	if exporter == "" {
		exporter = cfg.MetricsExporter
	}
	if exporter == config.ExporterNone {
		exporter = config.ExporterPrometheus
	}

	var (
		gatherer  prometheus.Gatherer
		collector secmem.MetricsCollector
	)

	switch exporter {
	case config.ExporterPrometheus:
		reg := prometheus.NewRegistry()
		c, err := prom.NewCollector(reg, cfg.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create prometheus collector: %w", err)
		}
		gatherer, collector = reg, c
	case config.ExporterOTel:
		p, err := otelmetrics.NewProvider()
		if err != nil {
			return fmt.Errorf("failed to create meter provider: %w", err)
		}
		defer func() {
			if err := p.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down meter provider", slog.Any("error", err))
			}
		}()
		c, err := otelmetrics.NewCollector(p.MeterProvider(), cfg.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create otel collector: %w", err)
		}
		gatherer, collector = p.Gatherer(), c
	default:
		return fmt.Errorf("%w: unknown metrics exporter %q", secmem.ErrInvalidArgument, exporter)
	}

	cfg.Logger().InfoContext(ctx, "collecting metrics",
		slog.String("exporter", exporter), slog.String("backend", cfg.Backend))

	report := runChecks(cfg, collector)
	if !report.Passed {
		writeReportText(w, report)
		return errors.New("workload failed")
	}

	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), cfg.MetricsNamespace) {
			continue
		}
		fmt.Fprintf(w, "# %s %s\n", f.GetName(), f.GetType())
		for _, m := range f.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, l.GetName()+"="+strconv.Quote(l.GetValue()))
			}
			sort.Strings(labels)

			name := f.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
	return nil
}
