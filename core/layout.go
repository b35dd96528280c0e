package core

import (
	"fmt"

	"github.com/vuuvv/bitmem/log"
	"go.uber.org/zap"
)

// Placement is one resolved address: the byte offset of the containing
// unit, the bit offset from that unit's most significant bit, and the
// field's total width in bits. For array elements the placement belongs to
// instance 0; further instances are rebased by i*stride at bind time.
type Placement struct {
	ByteOffset int
	BitOffset  int
	BitWidth   int
}

func (p Placement) ByteWidth() int {
	return (p.BitWidth + 7) / 8
}

// Layout maps every def of one compiled schema to its placement. It is
// computed once, without touching any buffer, and is reused across every
// image of the same device model.
type Layout struct {
	placements map[Def]Placement
	strides    map[Def]int
	Size       int
}

func (l *Layout) Placement(d Def) (Placement, bool) {
	p, ok := l.placements[d]
	return p, ok
}

// Stride returns the byte size of one element instance of an array def.
func (l *Layout) Stride(d Def) int {
	return l.strides[d]
}

// Resolve walks the field tree in declaration order and assigns every def
// an absolute placement. Resolution is deterministic: the same tree always
// yields the same layout.
func Resolve(schema *SchemaDef) (*Layout, error) {
	r := &resolver{layout: &Layout{
		placements: map[Def]Placement{},
		strides:    map[Def]int{},
	}}
	if _, err := r.resolveFields(schema.Fields, 0); err != nil {
		return nil, err
	}
	return r.layout, nil
}

type resolver struct {
	layout  *Layout
	inArray bool
}

func (r *resolver) place(d Def, p Placement) {
	r.layout.placements[d] = p
	if end := p.ByteOffset + p.ByteWidth(); end > r.layout.Size {
		r.layout.Size = end
	}
}

// resolveFields returns the cursor after the last sibling and the summed
// bit width of the placed fields (directives add no width).
func (r *resolver) resolveFields(fields []Def, cursor int) (int, error) {
	for _, d := range fields {
		var err error
		cursor, err = r.resolveDef(d, cursor)
		if err != nil {
			return 0, err
		}
	}
	return cursor, nil
}

func (r *resolver) resolveDef(d Def, cursor int) (int, error) {
	switch v := d.(type) {
	case *SeekToDef:
		if r.inArray {
			return 0, NewLayoutError(v.GetName(), "absolute seek inside an array element breaks the stride")
		}
		if v.Offset == cursor {
			log.Warn(fmt.Sprintf("unnecessary #seekto 0x%x", v.Offset), zap.Int("line", v.Line))
		} else if v.Offset < cursor {
			log.Warn(fmt.Sprintf("negative seek from 0x%04x to 0x%04x", cursor, v.Offset), zap.Int("line", v.Line))
		}
		return v.Offset, nil

	case *SeekDef:
		return cursor + v.Offset, nil

	case *PrintOffsetDef:
		log.Debug(fmt.Sprintf("%s: %d (0x%08X)", v.Label, cursor, cursor))
		return cursor, nil

	case *IntDef:
		r.place(v, Placement{ByteOffset: cursor, BitWidth: v.Type.Bits})
		return cursor + v.Type.Bits/8, nil

	case *BCDDef:
		r.place(v, Placement{ByteOffset: cursor, BitWidth: v.Count * 8})
		return cursor + v.Count, nil

	case *StringDef:
		r.place(v, Placement{ByteOffset: cursor, BitWidth: v.Length * 8})
		return cursor + v.Length, nil

	case *BitArrayDef:
		r.place(v, Placement{ByteOffset: cursor, BitWidth: v.Count})
		return cursor + v.Count/8, nil

	case *BitfieldDef:
		bitsleft := v.Base.Bits
		for _, m := range v.Members {
			if bitsleft < m.Bits {
				return 0, NewLayoutError(m.Name, "bitfield overruns its %s base", v.Base.Name)
			}
			r.place(m, Placement{ByteOffset: cursor, BitOffset: v.Base.Bits - bitsleft, BitWidth: m.Bits})
			bitsleft -= m.Bits
		}
		r.place(v, Placement{ByteOffset: cursor, BitWidth: v.Base.Bits})
		return cursor + v.Base.Bits/8, nil

	case *StructDef:
		start := cursor
		end, err := r.resolveFields(v.Fields, cursor)
		if err != nil {
			return 0, err
		}
		// a record spans its whole byte range, #seek padding included
		width := (end - start) * 8
		if width < 0 {
			width = 0
		}
		r.place(v, Placement{ByteOffset: start, BitWidth: width})
		return end, nil

	case *ArrayDef:
		saved := r.inArray
		r.inArray = true
		end, err := r.resolveDef(v.Elem, cursor)
		r.inArray = saved
		if err != nil {
			return 0, err
		}
		stride := end - cursor
		if stride <= 0 {
			return 0, NewLayoutError(v.Name, "array element resolves to %d bytes", stride)
		}
		r.layout.strides[v] = stride
		r.place(v, Placement{ByteOffset: cursor, BitWidth: stride * 8 * v.Count})
		return cursor + stride*v.Count, nil
	}

	return 0, NewLayoutError(d.GetName(), "unhandled def %T", d)
}
