package element

import (
	"github.com/spf13/cast"
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/errors"
)

// BCD is a run of binary-coded-decimal bytes read as one decimal number,
// two digits per byte.
type BCD struct {
	base
	def *core.BCDDef
}

func (e *BCD) Int() (int64, error) {
	data, err := e.mem.Get(e.offset, e.def.Count)
	if err != nil {
		return 0, err
	}
	return core.DecodeBCD(data, e.def.LittleEndian), nil
}

func (e *BCD) SetInt(value int64) error {
	data, err := core.EncodeBCD(value, e.def.Count, e.def.LittleEndian)
	if err != nil {
		return errors.Wrapf(err, "field %s", e.GetName())
	}
	return e.mem.Set(e.offset, data)
}

func (e *BCD) Value() (any, error) {
	return e.Int()
}

func (e *BCD) SetValue(value any) error {
	v, err := cast.ToInt64E(value)
	if err != nil {
		return core.NewEncodingError(e.GetName(), "cannot coerce %v to an integer", value)
	}
	return e.SetInt(v)
}

func (e *BCD) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
