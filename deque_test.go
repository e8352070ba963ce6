package secmem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/secmem/testutil"
)

func TestDeque_PushPop(t *testing.T) {
	d := NewDeque[int](nil)
	defer d.Close()

	_, ok := d.PopFront()
	assert.False(t, ok)
	_, ok = d.Back()
	assert.False(t, ok)

	require.NoError(t, d.PushBack(2))
	require.NoError(t, d.PushBack(3))
	require.NoError(t, d.PushFront(1))
	require.NoError(t, d.PushFront(0))

	assert.Equal(t, 4, d.Len())
	front, _ := d.Front()
	back, _ := d.Back()
	assert.Equal(t, 0, front)
	assert.Equal(t, 3, back)

	var got []int
	for i, x := range d.All() {
		assert.Equal(t, d.At(i), x)
		got = append(got, x)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)

	x, ok := d.PopFront()
	require.True(t, ok)
	assert.Equal(t, 0, x)
	x, ok = d.PopBack()
	require.True(t, ok)
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, d.Len())

	assert.Panics(t, func() { d.At(2) })
}

func TestDeque_GrowthWrapsAndErases(t *testing.T) {
	mc := &BasicMetricsCollector{}
	d := NewDeque[uint32](NewHeapAllocator[uint32](WithMetricsCollector(mc)))

	for i := range 4 {
		require.NoError(t, d.PushFront(uint32(i+1)))
	}
	require.Equal(t, 4, d.Cap())
	old := d.s.buf

	require.NoError(t, d.PushBack(99))
	testutil.RequireZero(t, old)

	var got []uint32
	for _, x := range d.All() {
		got = append(got, x)
	}
	assert.Equal(t, []uint32{4, 3, 2, 1, 99}, got)

	require.NoError(t, d.Close())
	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.AllocateCount)
	assert.Equal(t, stats.AllocateCount, stats.DeallocateCount)
}

func TestDeque_PoppedSlotsAreErased(t *testing.T) {
	d := NewDeque[uint64](nil)
	defer d.Close()

	for _, x := range []uint64{0xAA, 0xBB, 0xCC} {
		require.NoError(t, d.PushBack(x))
	}
	buf := d.s.buf

	_, _ = d.PopFront()
	_, _ = d.PopBack()
	assert.Equal(t, []uint64{0, 0xBB, 0, 0}, buf)

	d.Clear()
	testutil.RequireZero(t, buf)
	assert.Zero(t, d.Len())
}

func TestDeque_Close(t *testing.T) {
	d := NewDeque[byte](nil)
	require.NoError(t, d.PushBack(7))
	buf := d.s.buf

	require.NoError(t, d.Close())
	testutil.RequireZero(t, buf)
	require.NoError(t, d.Close())

	require.ErrorIs(t, d.PushBack(1), ErrClosed)
	require.ErrorIs(t, d.PushFront(1), ErrClosed)
	assert.Zero(t, d.Len())
}
