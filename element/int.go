package element

import (
	"github.com/spf13/cast"
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/errors"
)

// Int is a fixed-width integer field of 8, 16, 24 or 32 bits.
type Int struct {
	base
	def *core.IntDef
}

func (e *Int) Int() (int64, error) {
	data, err := e.mem.Get(e.offset, e.byteSize())
	if err != nil {
		return 0, err
	}
	if e.def.Type.Signed {
		return core.DecodeSigned(data, e.def.Type.LittleEndian), nil
	}
	return int64(core.DecodeUint(data, e.def.Type.LittleEndian)), nil
}

// SetInt encodes first and commits only on success; a failed encode leaves
// the image bit-for-bit unchanged.
func (e *Int) SetInt(value int64) error {
	data, err := core.EncodeInt(value, e.def.Type.Bits, e.def.Type.Signed, e.def.Type.LittleEndian)
	if err != nil {
		return errors.Wrapf(err, "field %s (%s)", e.GetName(), e.def.Type.Name)
	}
	return e.mem.Set(e.offset, data)
}

func (e *Int) Value() (any, error) {
	return e.Int()
}

func (e *Int) SetValue(value any) error {
	v, err := cast.ToInt64E(value)
	if err != nil {
		return core.NewEncodingError(e.GetName(), "cannot coerce %v to an integer", value)
	}
	return e.SetInt(v)
}

func (e *Int) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
