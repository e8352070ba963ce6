package secmem

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with secmem-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithBackend adds a backend field to the logger.
func (l *Logger) WithBackend(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("backend", name),
	}
}

// LogAllocate logs an allocation. Contents are never logged, only sizes.
func (l *Logger) LogAllocate(ctx context.Context, count int, bytes uintptr, err error) {
	if err != nil {
		l.WarnContext(ctx, "allocate failed",
			"count", count,
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "allocate completed",
			"count", count,
			"bytes", bytes,
		)
	}
}

// LogDeallocate logs an erase-and-release.
func (l *Logger) LogDeallocate(ctx context.Context, count int, bytes uintptr) {
	l.DebugContext(ctx, "deallocate completed",
		"count", count,
		"bytes", bytes,
	)
}

// LogForeignRelease logs a release of storage the backend did not hand out.
// The storage is erased but cannot be returned.
func (l *Logger) LogForeignRelease(ctx context.Context, count int, bytes uintptr) {
	l.WarnContext(ctx, "deallocate of foreign storage; erased but not released",
		"count", count,
		"bytes", bytes,
	)
}

// LogAdviseFailed logs a failed kernel hint on an off-heap mapping.
func (l *Logger) LogAdviseFailed(ctx context.Context, advice string, err error) {
	l.WarnContext(ctx, "madvise failed",
		"advice", advice,
		"error", err,
	)
}
