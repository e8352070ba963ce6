package secmem

import (
	"log/slog"
	"time"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	budget           *Budget
	budgetWait       time.Duration
	dontDump         bool
}

// defaultOptions backs zero-value allocators.
var defaultOptions = newOptions(nil)

func newOptions(opts []Option) *options {
	o := &options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures an allocator.
type Option func(*options)

// WithMetricsCollector sets a custom metrics collector for allocation and
// release events.
//
// If nil is passed, metrics are disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger sets a custom structured logger.
//
// If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel logs to stderr as text at the given level.
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithBudget charges every allocation against b. Allocations that would
// exceed the budget fail with ErrBudgetExceeded. A budget may be shared by
// several allocators.
func WithBudget(b *Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithBudgetWait makes allocations that would exceed the budget wait up to
// d for other allocations to be released before failing with
// ErrBudgetExceeded. Requests larger than the whole budget fail at once.
func WithBudgetWait(d time.Duration) Option {
	return func(o *options) {
		o.budgetWait = d
	}
}

// WithDontDump excludes off-heap mappings from core dumps where the platform
// supports it (Linux). The heap backend ignores it.
func WithDontDump() Option {
	return func(o *options) {
		o.dontDump = true
	}
}
