package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillNonZero(t *testing.T) {
	rng := NewRNG(4711)

	b := rng.Bytes(4096)
	assert.Len(t, b, 4096)
	for _, x := range b {
		assert.NotZero(t, x)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Bytes(32)

	rng.Reset()
	b := rng.Bytes(32)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestFillTyped(t *testing.T) {
	rng := NewRNG(1)

	s := make([]uint64, 16)
	Fill(rng, s)
	assert.False(t, IsZero(s))
	RequireNonZero(t, s)

	clear(s)
	assert.True(t, IsZero(s))
	RequireZero(t, s)
}

func TestFillRejectsPointers(t *testing.T) {
	rng := NewRNG(1)
	assert.Panics(t, func() {
		Fill(rng, make([]*int, 1))
	})
}

func TestIsZeroEmpty(t *testing.T) {
	assert.True(t, IsZero[byte](nil))
	assert.True(t, IsZero([]uint32{}))
}
