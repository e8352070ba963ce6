package testutil

import (
	"math/rand"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/secmem/internal/mem"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// FillNonZero fills b with random bytes in [1, 255].
func (r *RNG) FillNonZero(b []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range b {
		b[i] = byte(1 + r.rand.Intn(255))
	}
}

// Bytes returns n random non-zero bytes.
func (r *RNG) Bytes(n int) []byte {
	b := make([]byte, n)
	r.FillNonZero(b)
	return b
}

// Fill fills the bytes of a pointer-free slice with random non-zero bytes.
func Fill[T any](r *RNG, s []T) {
	if mem.HasPointers[T]() {
		panic("testutil: Fill on pointer-bearing type")
	}
	r.FillNonZero(mem.AsBytes(s))
}

// IsZero reports whether every byte of a pointer-free slice is zero.
func IsZero[T any](s []T) bool {
	return !slices.ContainsFunc(mem.AsBytes(s), func(b byte) bool { return b != 0 })
}

// RequireZero fails the test unless every byte of s is zero.
func RequireZero[T any](t testing.TB, s []T) {
	t.Helper()
	b := mem.AsBytes(s)
	i := slices.IndexFunc(b, func(b byte) bool { return b != 0 })
	require.Equal(t, -1, i, "byte %d of %d is not zero", i, len(b))
}

// RequireNonZero fails the test if every byte of s is zero.
func RequireNonZero[T any](t testing.TB, s []T) {
	t.Helper()
	require.False(t, IsZero(s), "expected non-zero contents")
}
