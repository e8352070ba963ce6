// Package config provides secmem configuration through environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"

	"github.com/hupe1980/secmem"
)

// Backend names accepted in SECMEM_BACKEND.
const (
	BackendHeap    = "heap"
	BackendOffHeap = "offheap"
)

// Metrics exporters accepted in SECMEM_METRICS_EXPORTER.
const (
	ExporterNone       = "none"
	ExporterPrometheus = "prometheus"
	ExporterOTel       = "otel"
)

// Config holds all secmem configuration.
type Config struct {
	// Backend selects the allocator backend ("heap" or "offheap").
	Backend string
	// MemoryLimitBytes caps live secret memory. 0 means unlimited.
	MemoryLimitBytes int64
	// DontDump excludes off-heap mappings from core dumps.
	DontDump bool

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string
	// LogFormat is "text" or "json".
	LogFormat string

	// MetricsExporter is "none", "prometheus" or "otel".
	MetricsExporter string
	// MetricsNamespace is the namespace for exported metrics.
	MetricsNamespace string
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Allocator
		Backend:          strings.ToLower(env.GetString("SECMEM_BACKEND", BackendHeap)),
		MemoryLimitBytes: int64(env.GetInt("SECMEM_MEMORY_LIMIT_KB", 0)) << 10,
		DontDump:         env.GetBool("SECMEM_DONT_DUMP", true),

		// Logging
		LogLevel:  strings.ToLower(env.GetString("SECMEM_LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(env.GetString("SECMEM_LOG_FORMAT", "text")),

		// Metrics
		MetricsExporter:  strings.ToLower(env.GetString("SECMEM_METRICS_EXPORTER", ExporterNone)),
		MetricsNamespace: env.GetString("SECMEM_METRICS_NAMESPACE", "secmem"),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendHeap, BackendOffHeap:
	default:
		return fmt.Errorf("%w: unknown backend %q", secmem.ErrInvalidArgument, c.Backend)
	}
	if c.MemoryLimitBytes < 0 {
		return fmt.Errorf("%w: negative memory limit", secmem.ErrInvalidArgument)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", secmem.ErrInvalidArgument, c.LogFormat)
	}
	switch c.MetricsExporter {
	case ExporterNone, ExporterPrometheus, ExporterOTel:
	default:
		return fmt.Errorf("%w: unknown metrics exporter %q", secmem.ErrInvalidArgument, c.MetricsExporter)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger builds the configured logger.
func (c *Config) Logger() *secmem.Logger {
	if c.LogFormat == "json" {
		return secmem.NewJSONLogger(c.SlogLevel())
	}
	return secmem.NewTextLogger(c.SlogLevel())
}

// AllocatorOptions translates the configuration into allocator options.
// extra options are applied last.
func (c *Config) AllocatorOptions(extra ...secmem.Option) []secmem.Option {
	opts := []secmem.Option{secmem.WithLogger(c.Logger())}
	if c.MemoryLimitBytes > 0 {
		opts = append(opts, secmem.WithBudget(secmem.NewBudget(c.MemoryLimitBytes)))
	}
	if c.DontDump {
		opts = append(opts, secmem.WithDontDump())
	}
	return append(opts, extra...)
}

// NewAllocator returns an allocator for the configured backend.
func NewAllocator[T any](c *Config, opts ...secmem.Option) (secmem.Allocator[T], error) {
	switch c.Backend {
	case BackendHeap:
		return secmem.NewHeapAllocator[T](opts...), nil
	case BackendOffHeap:
		a, err := secmem.NewOffHeapAllocator[T](opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", secmem.ErrInvalidArgument, c.Backend)
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
