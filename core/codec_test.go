package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		bits   int
		signed bool
		le     bool
		values []int64
	}{
		{"u8", 8, false, false, []int64{0, 1, 0x7F, 0xFF}},
		{"u16", 16, false, false, []int64{0, 0x1234, 0xFFFF}},
		{"ul16", 16, false, true, []int64{0, 0x1234, 0xFFFF}},
		{"u24", 24, false, false, []int64{0, 0x123456, 0xFFFFFF}},
		{"ul24", 24, false, true, []int64{0, 0x123456, 0xFFFFFF}},
		{"u32", 32, false, false, []int64{0, 0x12345678, 0xFFFFFFFF}},
		{"ul32", 32, false, true, []int64{0, 0x12345678, 0xFFFFFFFF}},
		{"i8", 8, true, false, []int64{-128, -1, 0, 127}},
		{"i16", 16, true, false, []int64{-32768, -1, 0, 32767}},
		{"il16", 16, true, true, []int64{-32768, -1, 0, 32767}},
		{"i24", 24, true, false, []int64{-(1 << 23), -1, 0, (1 << 23) - 1}},
		{"il32", 32, true, true, []int64{-(1 << 31), -1, 0, (1 << 31) - 1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for _, v := range c.values {
				data, err := EncodeInt(v, c.bits, c.signed, c.le)
				require.NoError(t, err)
				require.Len(t, data, c.bits/8)

				var got int64
				if c.signed {
					got = DecodeSigned(data, c.le)
				} else {
					got = int64(DecodeUint(data, c.le))
				}
				assert.Equal(t, v, got, "value %d", v)
			}
		})
	}
}

func TestIntByteOrder(t *testing.T) {
	be, err := EncodeInt(0x1234, 16, false, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34}, be)

	le, err := EncodeInt(0x1234, 16, false, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x34, 0x12}, le)

	be24, err := EncodeInt(0x123456, 24, false, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, be24)
}

func TestEncodeIntOutOfRange(t *testing.T) {
	cases := []struct {
		name   string
		value  int64
		bits   int
		signed bool
	}{
		{"u8 overflow", 256, 8, false},
		{"u8 negative", -1, 8, false},
		{"i8 overflow", 128, 8, true},
		{"i8 underflow", -129, 8, true},
		{"u16 overflow", 0x10000, 16, false},
		{"u32 overflow", 0x100000000, 32, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := EncodeInt(c.value, c.bits, c.signed, false)
			require.Error(t, err)
			var ee *EncodingError
			assert.True(t, errors.As(err, &ee))
		})
	}
}

func TestBCDRoundTrip(t *testing.T) {
	data, err := EncodeBCD(1234, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x12, 0x34}, data)
	assert.Equal(t, int64(1234), DecodeBCD(data, false))

	data, err = EncodeBCD(1234, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x34, 0x12}, data)
	assert.Equal(t, int64(1234), DecodeBCD(data, true))

	// short values zero-pad the high digits
	data, err = EncodeBCD(99, 2, false)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x99}, data)
	assert.Equal(t, int64(99), DecodeBCD(data, false))
}

func TestEncodeBCDRejects(t *testing.T) {
	_, err := EncodeBCD(100, 1, false)
	require.Error(t, err)
	var ee *EncodingError
	assert.True(t, errors.As(err, &ee))

	_, err = EncodeBCD(10000, 2, false)
	require.Error(t, err)

	_, err = EncodeBCD(-1, 2, false)
	require.Error(t, err)
}

func TestBits(t *testing.T) {
	assert.Equal(t, uint64(0xF0), BitsBetween(4, 8))
	assert.Equal(t, uint64(0x0F), BitsBetween(0, 4))

	// 0xAB: high nibble then low nibble
	assert.Equal(t, uint64(0xA), DecodeBits(0xAB, 8, 4))
	assert.Equal(t, uint64(0xB), DecodeBits(0xAB, 4, 4))

	// writing one nibble leaves the other alone
	word, err := EncodeBits(0xAB, 4, 4, 0xF)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xAF), word)

	word, err = EncodeBits(0xAB, 8, 4, 0x1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1B), word)

	_, err = EncodeBits(0xAB, 4, 4, 0x10)
	require.Error(t, err)
}
