package element

import (
	"github.com/vuuvv/bitmem/core"
)

// Array is a bound fixed-count array. Element i lives at exactly
// base + i*stride; the element layout is resolved once and rebased per
// index, never re-resolved.
type Array struct {
	base
	def    *core.ArrayDef
	layout *core.Layout
	delta  int
	stride int
}

func (e *Array) Len() int {
	return e.def.Count
}

func (e *Array) Stride() int {
	return e.stride
}

func (e *Array) Index(i int) (Element, error) {
	if i < 0 || i >= e.def.Count {
		return nil, core.NewOutOfBoundsError(i, 1, e.def.Count)
	}
	return newElement(e.def.Elem, e.layout, e.mem, e.delta+i*e.stride)
}

// Value decodes every element in index order.
func (e *Array) Value() (any, error) {
	out := make([]any, e.def.Count)
	for i := 0; i < e.def.Count; i++ {
		child, err := e.Index(i)
		if err != nil {
			return nil, err
		}
		v, err := child.Value()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (e *Array) SetValue(value any) error {
	return core.NewTypeMismatchError(e.GetName(), "arrays are assigned per index, or raw via SetRaw")
}

func (e *Array) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
