package element

import (
	"github.com/spf13/cast"
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/bitmem/utils"
	"github.com/vuuvv/errors"
)

// Bit is a sub-byte field: one member of a bitfield group, or a single
// flag of a bit array. It reads and writes through the whole group word so
// that only its own bits change.
type Bit struct {
	base
	grpOffset int
	grpBits   int
	grpLE     bool
	shift     int
	nbits     int
}

func newBitfieldMember(group *core.BitfieldDef, member *core.BitDef, layout *core.Layout, mem *core.MemoryMap, delta int) (*Bit, error) {
	p, ok := layout.Placement(member)
	if !ok {
		return nil, core.NewTypeMismatchError(member.Name, "bitfield member has no resolved placement")
	}
	return &Bit{
		base:      base{def: member, mem: mem, offset: p.ByteOffset + delta, bits: member.Bits},
		grpOffset: p.ByteOffset + delta,
		grpBits:   group.Base.Bits,
		grpLE:     group.Base.LittleEndian,
		shift:     group.Base.Bits - p.BitOffset,
		nbits:     member.Bits,
	}, nil
}

func (e *Bit) word() (uint64, error) {
	data, err := e.mem.Get(e.grpOffset, e.grpBits/8)
	if err != nil {
		return 0, err
	}
	return core.DecodeUint(data, e.grpLE), nil
}

func (e *Bit) Int() (int64, error) {
	word, err := e.word()
	if err != nil {
		return 0, err
	}
	return int64(core.DecodeBits(word, e.shift, e.nbits)), nil
}

// SetInt read-modify-writes the group word, leaving sibling bits in the
// same bytes untouched. Validation happens before any byte moves.
func (e *Bit) SetInt(value int64) error {
	if value < 0 {
		return core.NewEncodingError(e.GetName(), "%d out of range for %d bits", value, e.nbits)
	}
	word, err := e.word()
	if err != nil {
		return err
	}
	word, err = core.EncodeBits(word, e.shift, e.nbits, uint64(value))
	if err != nil {
		return errors.Wrapf(err, "field %s", e.GetName())
	}
	data, err := core.EncodeInt(int64(word), e.grpBits, false, e.grpLE)
	if err != nil {
		return errors.Wrapf(err, "field %s", e.GetName())
	}
	return e.mem.Set(e.grpOffset, data)
}

func (e *Bit) Value() (any, error) {
	return e.Int()
}

func (e *Bit) SetValue(value any) error {
	if b, ok := value.(bool); ok {
		return e.SetInt(int64(utils.BoolToInt(b)))
	}
	v, err := cast.ToInt64E(value)
	if err != nil {
		return core.NewEncodingError(e.GetName(), "cannot coerce %v to an integer", value)
	}
	return e.SetInt(v)
}

func (e *Bit) GetPath(path string) (Element, error) {
	return getPath(e, path)
}

// BitArray is `bit name[n]`: n independent single-bit flags.
type BitArray struct {
	base
	def *core.BitArrayDef
}

func (e *BitArray) Len() int {
	return e.def.Count
}

func (e *BitArray) Index(i int) (*Bit, error) {
	if i < 0 || i >= e.def.Count {
		return nil, core.NewOutOfBoundsError(i, 1, e.def.Count)
	}
	shift := 8 - i%8
	if e.def.LittleEndian {
		shift = i%8 + 1
	}
	return &Bit{
		base:      base{def: e.def, mem: e.mem, offset: e.offset + i/8, bits: 1},
		grpOffset: e.offset + i/8,
		grpBits:   8,
		shift:     shift,
		nbits:     1,
	}, nil
}

// Value decodes every flag in index order.
func (e *BitArray) Value() (any, error) {
	out := make([]any, e.def.Count)
	for i := 0; i < e.def.Count; i++ {
		bit, err := e.Index(i)
		if err != nil {
			return nil, err
		}
		v, err := bit.Int()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *BitArray) SetValue(value any) error {
	return core.NewTypeMismatchError(e.GetName(), "bit arrays are assigned per index")
}

func (e *BitArray) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
