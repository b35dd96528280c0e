package core

import (
	"os"

	"github.com/vuuvv/errors"
)

// Scheme is one compiled and resolved schema: the unit a device model
// caches and binds against every image it clones. Immutable after
// construction; a layout change means a new Scheme, never a patched one.
type Scheme struct {
	Text   string
	Schema *SchemaDef
	Layout *Layout
}

func NewScheme(text string) (*Scheme, error) {
	schema, err := Compile(text)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	layout, err := Resolve(schema)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Scheme{Text: text, Schema: schema, Layout: layout}, nil
}

func NewSchemeFromFile(path string) (*Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return NewScheme(string(data))
}

// Size is the byte span the layout covers; binding a shorter image fails.
func (s *Scheme) Size() int {
	return s.Layout.Size
}
