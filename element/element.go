package element

import (
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/errors"
)

// Element is an ephemeral, non-owning view over one resolved field of a
// shared MemoryMap. Elements are created on navigation and hold no copy of
// data: every read and write goes straight to the map, so views over
// overlapping bytes observe each other immediately. Capabilities beyond
// this interface (Int, String, Field, Index) live on the concrete variants
// only.
type Element interface {
	GetName() string
	BitSize() int
	Offset() int
	GetRaw() ([]byte, error)
	SetRaw(data []byte) error
	FillRaw(pattern byte) error
	Value() (any, error)
	SetValue(value any) error
	GetPath(path string) (Element, error)
}

type base struct {
	def    core.Def
	mem    *core.MemoryMap
	offset int
	bits   int
}

func (e *base) GetName() string {
	return e.def.GetName()
}

func (e *base) BitSize() int {
	return e.bits
}

func (e *base) Offset() int {
	return e.offset
}

func (e *base) byteSize() int {
	return (e.bits + 7) / 8
}

// GetRaw bypasses the codec layer for a byte-exact copy of the region.
func (e *base) GetRaw() ([]byte, error) {
	return e.mem.Get(e.offset, e.byteSize())
}

// SetRaw writes a byte-exact region; the length must match the element.
func (e *base) SetRaw(data []byte) error {
	if len(data) != e.byteSize() {
		return core.NewEncodingError(e.GetName(), "raw data is %d bytes, field is %d", len(data), e.byteSize())
	}
	return e.mem.Set(e.offset, data)
}

// FillRaw floods the element's bytes with one pattern byte, the blank-fill
// primitive used when initializing fresh images.
func (e *base) FillRaw(pattern byte) error {
	return e.mem.Fill(e.offset, e.byteSize(), pattern)
}

// Bind combines a compiled+resolved scheme with a concrete memory map. It
// fails closed when the image cannot cover the resolved span.
func Bind(scheme *core.Scheme, mem *core.MemoryMap) (*Struct, error) {
	if mem.Len() < scheme.Size() {
		return nil, errors.Wrapf(
			core.NewOutOfBoundsError(0, scheme.Size(), mem.Len()),
			"image too small for layout")
	}

	// the root spans the whole resolved image, directive gaps included
	rootDef := &core.StructDef{Name: "root", Fields: scheme.Schema.Fields}
	return &Struct{
		base:   base{def: rootDef, mem: mem, offset: 0, bits: scheme.Size() * 8},
		def:    rootDef,
		layout: scheme.Layout,
	}, nil
}

// newElement builds the bound view for one def. delta rebases placements of
// array element instances past the first.
func newElement(def core.Def, layout *core.Layout, mem *core.MemoryMap, delta int) (Element, error) {
	p, ok := layout.Placement(def)
	if !ok {
		return nil, core.NewTypeMismatchError(def.GetName(), "field has no resolved placement")
	}
	b := base{def: def, mem: mem, offset: p.ByteOffset + delta, bits: p.BitWidth}

	switch v := def.(type) {
	case *core.IntDef:
		return &Int{base: b, def: v}, nil
	case *core.BCDDef:
		return &BCD{base: b, def: v}, nil
	case *core.StringDef:
		return &Chars{base: b, def: v}, nil
	case *core.StructDef:
		return &Struct{base: b, def: v, layout: layout, delta: delta}, nil
	case *core.ArrayDef:
		return &Array{base: b, def: v, layout: layout, delta: delta, stride: layout.Stride(def)}, nil
	case *core.BitArrayDef:
		return &BitArray{base: b, def: v}, nil
	case *core.BitDef:
		return nil, core.NewTypeMismatchError(v.Name, "bitfield member must be reached through its record")
	}
	return nil, core.NewTypeMismatchError(def.GetName(), "unbindable def %T", def)
}
