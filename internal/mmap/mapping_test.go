package mmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAnon(t *testing.T) {
	m, err := MapAnon(100)
	require.NoError(t, err)
	defer m.Close()

	page := PageSize()
	assert.Equal(t, page, m.Size())
	require.Len(t, m.Bytes(), page)
	assert.NotZero(t, m.Addr())
	assert.Zero(t, m.Addr()%uintptr(page))

	// Kernel hands out zeroed pages.
	for _, b := range m.Bytes() {
		require.Equal(t, byte(0), b)
	}

	// Read-write.
	buf := m.Bytes()
	buf[0] = 0xAA
	buf[len(buf)-1] = 0xBB
	assert.Equal(t, byte(0xAA), m.Bytes()[0])
}

func TestMapAnon_RoundsToPages(t *testing.T) {
	page := PageSize()

	m, err := MapAnon(page + 1)
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2*page, m.Size())
}

func TestMapAnon_InvalidSize(t *testing.T) {
	_, err := MapAnon(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = MapAnon(-5)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestMapping_Close(t *testing.T) {
	m, err := MapAnon(64)
	require.NoError(t, err)

	require.NoError(t, m.Close())
	assert.Nil(t, m.Bytes())
	assert.Zero(t, m.Addr())

	// Idempotent
	require.NoError(t, m.Close())

	assert.ErrorIs(t, m.Advise(AccessDontDump), ErrClosed)
}

func TestMapping_Advise(t *testing.T) {
	m, err := MapAnon(PageSize())
	require.NoError(t, err)
	defer m.Close()

	assert.NoError(t, m.Advise(AccessDontDump))
	assert.NoError(t, m.Advise(AccessPattern(0)))
}
