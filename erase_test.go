package secmem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/secmem/testutil"
)

func TestErase(t *testing.T) {
	rng := testutil.NewRNG(42)

	t.Run("full range", func(t *testing.T) {
		buf := rng.Bytes(257)
		Erase(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
		testutil.RequireZero(t, buf)
	})

	t.Run("partial range", func(t *testing.T) {
		buf := rng.Bytes(64)
		Erase(unsafe.Pointer(&buf[8]), 16)
		testutil.RequireNonZero(t, buf[:8])
		testutil.RequireZero(t, buf[8:24])
		testutil.RequireNonZero(t, buf[24:])
	})

	t.Run("nil and zero length", func(t *testing.T) {
		buf := rng.Bytes(8)
		Erase(nil, 8)
		Erase(unsafe.Pointer(&buf[0]), 0)
		testutil.RequireNonZero(t, buf)
	})

	t.Run("idempotent", func(t *testing.T) {
		buf := rng.Bytes(32)
		EraseBytes(buf)
		EraseBytes(buf)
		testutil.RequireZero(t, buf)
	})
}

func TestErase_SingleCallPerExtent(t *testing.T) {
	rec := recordErase(t)

	buf := make([]uint64, 100)
	testutil.Fill(testutil.NewRNG(1), buf)
	EraseSlice(buf)

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, unsafe.Pointer(&buf[0]), calls[0].p)
	assert.Equal(t, uintptr(800), calls[0].n)
	assert.True(t, rec.AllZero())
}

func TestEraseValue(t *testing.T) {
	n := 0x1234_5678
	EraseValue(&n)
	assert.Zero(t, n)

	s := stateDone
	EraseValue(&s)
	assert.Equal(t, stateIdle, s)

	f := 3.5
	EraseValue(&f)
	assert.Zero(t, f)

	c := complex(1, 2)
	EraseValue(&c)
	assert.Zero(t, c)

	b := true
	EraseValue(&b)
	assert.False(t, b)

	u := uintptr(0xdeadbeef)
	EraseValue(&u)
	assert.Zero(t, u)

	EraseValue[int](nil) // no-op
}

func TestErasePointer(t *testing.T) {
	secret := [4]byte{1, 2, 3, 4}
	p := &secret

	ErasePointer(&p)

	assert.Nil(t, p)
	assert.Equal(t, [4]byte{1, 2, 3, 4}, secret, "pointee must not be erased")

	ErasePointer[int](nil) // no-op
}

func TestEraseSlice(t *testing.T) {
	t.Run("fixed array", func(t *testing.T) {
		arr := [8]int32{1, 2, 3, 4, 5, 6, 7, 8}
		EraseSlice(arr[:])
		assert.Equal(t, [8]int32{}, arr)
	})

	t.Run("enums", func(t *testing.T) {
		s := []state{stateActive, stateDone}
		EraseSlice(s)
		assert.Equal(t, []state{stateIdle, stateIdle}, s)
	})

	t.Run("pointer-bearing elements", func(t *testing.T) {
		user := "alice"
		tags := []string{"a", "b"}
		s := []credentials{{user: &user, token: [16]byte{9}, tags: tags}}

		EraseSlice(s)

		assert.Equal(t, credentials{}, s[0])
		assert.Equal(t, "alice", user, "nested allocations are not erased")
		assert.Equal(t, []string{"a", "b"}, tags)
	})

	t.Run("empty", func(t *testing.T) {
		EraseSlice[byte](nil)
		EraseSlice([]struct{}{{}, {}})
	})
}

func TestEraseObject(t *testing.T) {
	k := keyMaterial{ID: 7}
	testutil.Fill(testutil.NewRNG(3), k.Bytes[:])

	EraseObject(&k)

	assert.Equal(t, keyMaterial{}, k)
	EraseObject[keyMaterial](nil)
}

func TestEraseString(t *testing.T) {
	s, err := NewString(nil, "hunter2")
	require.NoError(t, err)
	defer s.Close()

	EraseString(s)

	assert.Equal(t, 7, s.Len())
	testutil.RequireZero(t, s.Chars())

	EraseString[byte](nil)
}

func TestErase_ConcurrentDisjoint(t *testing.T) {
	const (
		workers = 16
		chunk   = 64 << 10
	)
	buf := testutil.NewRNG(7).Bytes(workers * chunk)

	var g errgroup.Group
	for i := range workers {
		part := buf[i*chunk : (i+1)*chunk]
		g.Go(func() error {
			for range 4 {
				EraseBytes(part)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	testutil.RequireZero(t, buf)
}

func BenchmarkEraseBytes(b *testing.B) {
	for _, size := range []int{32, 4096, 1 << 20} {
		buf := make([]byte, size)
		b.Run(byteLabel(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for b.Loop() {
				EraseBytes(buf)
			}
		})
	}
}

func byteLabel(n int) string {
	switch {
	case n >= 1<<20:
		return "1MiB"
	case n >= 1<<10:
		return "4KiB"
	default:
		return "32B"
	}
}
