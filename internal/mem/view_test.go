package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsBytes(t *testing.T) {
	s := []uint32{0x01020304, 0x05060708}
	b := AsBytes(s)
	require.Len(t, b, 8)

	for i := range b {
		b[i] = 0
	}
	assert.Equal(t, []uint32{0, 0}, s)

	assert.Nil(t, AsBytes[uint32](nil))
}

func TestCast(t *testing.T) {
	buf := make([]byte, 64)
	require.True(t, Aligned(buf, 8))

	vals := Cast[uint64](buf, 8)
	require.Len(t, vals, 8)
	vals[0] = 0xffffffffffffffff
	assert.Equal(t, byte(0xff), buf[0])
	assert.Equal(t, byte(0xff), buf[7])

	assert.Nil(t, Cast[uint64](buf, 0))
	assert.Nil(t, Cast[uint64](nil, 4))
}

func TestExtent(t *testing.T) {
	backing := []int{1, 2, 3, 4, 5}
	head := backing[:1]

	ext := Extent(&head[0], 5)
	assert.Equal(t, backing, ext)

	assert.Nil(t, Extent[int](nil, 3))
	assert.Nil(t, Extent(&backing[0], 0))
}
