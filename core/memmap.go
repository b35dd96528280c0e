package core

import (
	"github.com/vuuvv/bitmem/utils"
)

// MemoryMap is the raw mutable image of a device's memory. Its length is
// fixed at construction; every access is range-checked before any byte
// moves, so a failed write leaves the image untouched. The map knows
// nothing about schemas.
type MemoryMap struct {
	data []byte
}

// NewMemoryMap copies data so the caller's slice stays independent of the
// edit session.
func NewMemoryMap(data []byte) *MemoryMap {
	d := make([]byte, len(data))
	copy(d, data)
	return &MemoryMap{data: d}
}

func NewBlankMemoryMap(size int, fill byte) *MemoryMap {
	d := make([]byte, size)
	for i := range d {
		d[i] = fill
	}
	return &MemoryMap{data: d}
}

func (m *MemoryMap) Len() int {
	return len(m.data)
}

func (m *MemoryMap) check(offset, length int) error {
	if offset < 0 || length < 0 || offset+length > len(m.data) {
		return NewOutOfBoundsError(offset, length, len(m.data))
	}
	return nil
}

// Get returns a copy of length bytes starting at offset.
func (m *MemoryMap) Get(offset, length int) ([]byte, error) {
	if err := m.check(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[offset:offset+length])
	return out, nil
}

func (m *MemoryMap) GetByte(offset int) (byte, error) {
	if err := m.check(offset, 1); err != nil {
		return 0, err
	}
	return m.data[offset], nil
}

// Set overwrites len(value) bytes starting at offset.
func (m *MemoryMap) Set(offset int, value []byte) error {
	if err := m.check(offset, len(value)); err != nil {
		return err
	}
	copy(m.data[offset:], value)
	return nil
}

func (m *MemoryMap) SetByte(offset int, value byte) error {
	if err := m.check(offset, 1); err != nil {
		return err
	}
	m.data[offset] = value
	return nil
}

// Fill sets length bytes starting at offset to pattern.
func (m *MemoryMap) Fill(offset, length int, pattern byte) error {
	if err := m.check(offset, length); err != nil {
		return err
	}
	for i := offset; i < offset+length; i++ {
		m.data[i] = pattern
	}
	return nil
}

// Bytes returns a copy of the whole image, ready for upload.
func (m *MemoryMap) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// Printable renders [start, end) as a hex dump. end < 0 means the whole
// remainder.
func (m *MemoryMap) Printable(start, end int) string {
	if end < 0 || end > len(m.data) {
		end = len(m.data)
	}
	if start < 0 || start > end {
		start = 0
	}
	return utils.HexDump(m.data[start:end], start)
}
