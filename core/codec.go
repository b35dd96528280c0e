package core

import (
	"encoding/binary"

	"github.com/vuuvv/bitmem/utils"
)

// Codec functions are pure: they map between a run of bytes (or bits in a
// word) and a semantic value, and never touch a MemoryMap themselves.
// Out-of-range values are always an EncodingError, never a silent modulo.

func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// DecodeUint interprets up to 8 bytes as an unsigned integer.
func DecodeUint(data []byte, littleEndian bool) uint64 {
	var result uint64
	if littleEndian {
		for i := len(data) - 1; i >= 0; i-- {
			result = (result << 8) | uint64(data[i])
		}
	} else {
		for i := 0; i < len(data); i++ {
			result = (result << 8) | uint64(data[i])
		}
	}
	return result
}

// DecodeSigned sign-extends the two's-complement value held in data.
func DecodeSigned(data []byte, littleEndian bool) int64 {
	bits := len(data) * 8
	v := DecodeUint(data, littleEndian)
	if bits < 64 && v&(1<<(bits-1)) != 0 {
		v |= ^uint64(0) << bits
	}
	return int64(v)
}

// EncodeInt packs value into bits/8 bytes, rejecting anything outside the
// exact representable range of the width.
func EncodeInt(value int64, bits int, signed, littleEndian bool) ([]byte, error) {
	if signed {
		min := -(int64(1) << (bits - 1))
		max := (int64(1) << (bits - 1)) - 1
		if value < min || value > max {
			return nil, NewEncodingError("value", "%d out of range [%d, %d]", value, min, max)
		}
	} else {
		if value < 0 || uint64(value) > (uint64(1)<<bits)-1 {
			return nil, NewEncodingError("value", "%d out of range [0, %d]", value, (uint64(1)<<bits)-1)
		}
	}
	return utils.Uint64ToBytes(value, bits/8, byteOrder(littleEndian)), nil
}

// DecodeBCD reads count bytes of two decimal digits each. The high nibble
// of every byte holds the tens digit; littleEndian selects which end of the
// run is most significant.
func DecodeBCD(data []byte, littleEndian bool) int64 {
	var value int64
	for i := 0; i < len(data); i++ {
		b := data[i]
		if littleEndian {
			b = data[len(data)-1-i]
		}
		tens := int64(b>>4) & 0x0F
		ones := int64(b) & 0x0F
		value = value*100 + tens*10 + ones
	}
	return value
}

// EncodeBCD packs value into count BCD bytes. A value needing more digits
// than the field holds, or a negative value, is an EncodingError.
func EncodeBCD(value int64, count int, littleEndian bool) ([]byte, error) {
	if value < 0 {
		return nil, NewEncodingError("value", "BCD cannot hold negative %d", value)
	}
	limit := int64(1)
	for i := 0; i < count*2; i++ {
		limit *= 10
	}
	if value >= limit {
		return nil, NewEncodingError("value", "%d exceeds %d BCD digits", value, count*2)
	}

	out := make([]byte, count)
	for i := count - 1; i >= 0; i-- {
		twodigits := value % 100
		value /= 100
		b := byte(twodigits/10)<<4 | byte(twodigits%10)
		if littleEndian {
			out[count-1-i] = b
		} else {
			out[i] = b
		}
	}
	return out, nil
}

// BitsBetween builds a mask covering bit positions [start, end).
func BitsBetween(start, end int) uint64 {
	bits := uint64(1)<<(end-start) - 1
	return bits << start
}

// DecodeBits extracts nbits ending at shift from a group word. shift counts
// from the least significant bit; declaration order fills MSB-first.
func DecodeBits(word uint64, shift, nbits int) uint64 {
	mask := BitsBetween(shift-nbits, shift)
	return (word & mask) >> (shift - nbits)
}

// EncodeBits read-modify-writes only the addressed bits of word, leaving
// sibling fields untouched.
func EncodeBits(word uint64, shift, nbits int, value uint64) (uint64, error) {
	if value > (uint64(1)<<nbits)-1 {
		return 0, NewEncodingError("value", "%d out of range for %d bits", value, nbits)
	}
	mask := BitsBetween(shift-nbits, shift)
	return (word &^ mask) | (value << (shift - nbits)), nil
}
