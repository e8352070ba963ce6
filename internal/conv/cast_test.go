package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteSize(t *testing.T) {
	t.Run("zero count", func(t *testing.T) {
		got, err := ByteSize(0, 8)
		require.NoError(t, err)
		assert.Equal(t, uintptr(0), got)
	})

	t.Run("zero element size", func(t *testing.T) {
		got, err := ByteSize(10, 0)
		require.NoError(t, err)
		assert.Equal(t, uintptr(0), got)
	})

	t.Run("valid", func(t *testing.T) {
		got, err := ByteSize(100, 4)
		require.NoError(t, err)
		assert.Equal(t, uintptr(400), got)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := ByteSize(-1, 4)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("multiplication overflow", func(t *testing.T) {
		_, err := ByteSize(math.MaxInt, 16)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("above allocation limit", func(t *testing.T) {
		_, err := ByteSize(int(MaxAllocBytes), 2)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("exactly at allocation limit", func(t *testing.T) {
		got, err := ByteSize(int(MaxAllocBytes), 1)
		require.NoError(t, err)
		assert.Equal(t, MaxAllocBytes, got)
	})
}

func TestMaxCount(t *testing.T) {
	assert.Equal(t, math.MaxInt, MaxCount(0))
	assert.Equal(t, int(MaxAllocBytes/8), MaxCount(8))

	_, err := ByteSize(MaxCount(8), 8)
	assert.NoError(t, err)
	_, err = ByteSize(MaxCount(8)+1, 8)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		size, align, want uintptr
	}{
		{0, 4096, 0},
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{7, 8, 8},
	}
	for _, tt := range tests {
		got, err := RoundUp(tt.size, tt.align)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "size=%d align=%d", tt.size, tt.align)
	}

	_, err := RoundUp(10, 3)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = RoundUp(^uintptr(0), 4096)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestUintptrToInt(t *testing.T) {
	got, err := UintptrToInt(123)
	require.NoError(t, err)
	assert.Equal(t, 123, got)
}
