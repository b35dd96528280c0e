package element

import (
	"github.com/vuuvv/bitmem/core"
)

// Struct is a bound record: attribute-style navigation by declared field
// name. Two Structs bound over the same map alias the same bytes.
type Struct struct {
	base
	def    *core.StructDef
	layout *core.Layout
	delta  int
}

// Field returns the named child as a bound element. Bitfield members are
// addressed directly by name, as if declared flat in the record.
func (e *Struct) Field(name string) (Element, error) {
	for _, f := range e.def.Fields {
		if group, ok := f.(*core.BitfieldDef); ok {
			for _, m := range group.Members {
				if m.Name == name {
					return newBitfieldMember(group, m, e.layout, e.mem, e.delta)
				}
			}
			continue
		}
		if f.GetName() == name {
			return newElement(f, e.layout, e.mem, e.delta)
		}
	}
	return nil, core.NewTypeMismatchError(e.GetName(), "no field %q in record", name)
}

// Names lists the record's addressable field names in declaration order.
func (e *Struct) Names() []string {
	var names []string
	for _, f := range e.def.Fields {
		switch v := f.(type) {
		case *core.BitfieldDef:
			for _, m := range v.Members {
				names = append(names, m.Name)
			}
		case *core.SeekToDef, *core.SeekDef, *core.PrintOffsetDef:
		default:
			names = append(names, f.GetName())
		}
	}
	return names
}

// Values decodes the whole record into a name-keyed map, nested records as
// maps and arrays as slices. This is what model checks evaluate against.
func (e *Struct) Values() (map[string]any, error) {
	out := map[string]any{}
	for _, name := range e.Names() {
		child, err := e.Field(name)
		if err != nil {
			return nil, err
		}
		v, err := child.Value()
		if err != nil {
			return nil, err
		}
		out[name] = v
	}
	return out, nil
}

func (e *Struct) Value() (any, error) {
	return e.Values()
}

func (e *Struct) SetValue(value any) error {
	return core.NewTypeMismatchError(e.GetName(), "records are assigned per field, or raw via SetRaw")
}

func (e *Struct) GetPath(path string) (Element, error) {
	return getPath(e, path)
}
