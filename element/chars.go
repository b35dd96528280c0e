package element

import (
	"github.com/spf13/cast"
	"github.com/vuuvv/bitmem/core"
	"github.com/vuuvv/bitmem/utils"
)

// Chars is a fixed-length character array mapped byte-for-byte to a string.
type Chars struct {
	base
	def *core.StringDef
}

func (e *Chars) Len() int {
	return e.def.Length
}

func (e *Chars) String() (string, error) {
	data, err := e.mem.Get(e.offset, e.def.Length)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetString requires exactly the declared length; anything else is an
// EncodingError and the image stays untouched.
func (e *Chars) SetString(value string) error {
	if len(value) != e.def.Length {
		return core.NewEncodingError(e.GetName(), "string needs exactly %d characters, got %d", e.def.Length, len(value))
	}
	return e.mem.Set(e.offset, []byte(value))
}

// SetStringPadded pads a short string to the declared length with pad.
// Longer strings are still rejected, never truncated.
func (e *Chars) SetStringPadded(value string, pad byte) error {
	if len(value) > e.def.Length {
		return core.NewEncodingError(e.GetName(), "string needs at most %d characters, got %d", e.def.Length, len(value))
	}
	return e.mem.Set(e.offset, utils.ResizeBytes([]byte(value), e.def.Length, pad, utils.PaddingRight))
}

func (e *Chars) Value() (any, error) {
	return e.String()
}

func (e *Chars) SetValue(value any) error {
	s, err := cast.ToStringE(value)
	if err != nil {
		return core.NewEncodingError(e.GetName(), "cannot coerce %v to a string", value)
	}
	return e.SetString(s)
}

func (e *Chars) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
