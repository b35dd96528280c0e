package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMapCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	m := NewMemoryMap(src)
	src[0] = 0xFF

	got, err := m.Get(0, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestMemoryMapSetGet(t *testing.T) {
	m := NewMemoryMap(make([]byte, 8))

	require.NoError(t, m.Set(2, []byte{0xAA, 0xBB}))
	got, err := m.Get(2, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, got)

	b, err := m.GetByte(3)
	require.NoError(t, err)
	assert.Equal(t, byte(0xBB), b)

	require.NoError(t, m.SetByte(0, 0x12))
	assert.Equal(t, byte(0x12), m.Bytes()[0])
}

func TestMemoryMapFixedLength(t *testing.T) {
	m := NewMemoryMap(make([]byte, 4))

	cases := []struct {
		name string
		fn   func() error
	}{
		{"set past end", func() error { return m.Set(3, []byte{1, 2}) }},
		{"set negative", func() error { return m.Set(-1, []byte{1}) }},
		{"fill past end", func() error { return m.Fill(2, 3, 0xFF) }},
		{"get past end", func() error { _, err := m.Get(4, 1); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.fn()
			require.Error(t, err)
			var oob *OutOfBoundsError
			assert.True(t, errors.As(err, &oob))
		})
	}

	// a failed write leaves length and content alone
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, []byte{0, 0, 0, 0}, m.Bytes())
}

func TestMemoryMapFill(t *testing.T) {
	m := NewMemoryMap(make([]byte, 4))
	require.NoError(t, m.Fill(1, 2, 0xFF))
	assert.Equal(t, []byte{0, 0xFF, 0xFF, 0}, m.Bytes())
}

func TestMemoryMapBlank(t *testing.T) {
	m := NewBlankMemoryMap(3, 0xFF)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF}, m.Bytes())
}

func TestMemoryMapPrintable(t *testing.T) {
	m := NewMemoryMap([]byte{0x00, 0x01, 0xAB})
	s := m.Printable(0, -1)
	assert.Contains(t, s, "AB")
	assert.Contains(t, s, "00000000")
}
