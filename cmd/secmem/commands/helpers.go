package commands

import (
	"fmt"

	"github.com/hupe1980/secmem"
	"github.com/hupe1980/secmem/config"
)

// loadConfig loads the environment configuration and applies a non-empty
// backend override.
func loadConfig(backend string) (*config.Config, error) {
	cfg := config.Load()
	if backend != "" {
		cfg.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// pattern returns n bytes that are never zero.
func pattern(n int) []byte {
	b := make([]byte, n)
	fill(b)
	return b
}

func fill(b []byte) {
	for i := range b {
		b[i] = byte(i%255 + 1)
	}
}

func isZero[T comparable](s []T) bool {
	var zero T
	for _, x := range s {
		if x != zero {
			return false
		}
	}
	return true
}

func newAllocator[T any](h *harness) (secmem.Allocator[T], error) {
	return config.NewAllocator[T](h.cfg, h.opts...)
}
