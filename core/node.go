package core

// PrimKind discriminates how a primitive's bytes are interpreted.
type PrimKind int

const (
	KindInt PrimKind = iota
	KindChar
	KindBCD
	KindBit
)

// PrimType describes one schema type keyword.
type PrimType struct {
	Name         string
	Kind         PrimKind
	Bits         int
	Signed       bool
	LittleEndian bool
}

// PrimTypes maps every type keyword the grammar accepts. The `l` inside a
// name marks little-endian byte order; it never changes bit order within a
// byte.
var PrimTypes = map[string]*PrimType{
	"bit":  {Name: "bit", Kind: KindBit, Bits: 1},
	"lbit": {Name: "lbit", Kind: KindBit, Bits: 1, LittleEndian: true},
	"u8":   {Name: "u8", Kind: KindInt, Bits: 8},
	"u16":  {Name: "u16", Kind: KindInt, Bits: 16},
	"ul16": {Name: "ul16", Kind: KindInt, Bits: 16, LittleEndian: true},
	"u24":  {Name: "u24", Kind: KindInt, Bits: 24},
	"ul24": {Name: "ul24", Kind: KindInt, Bits: 24, LittleEndian: true},
	"u32":  {Name: "u32", Kind: KindInt, Bits: 32},
	"ul32": {Name: "ul32", Kind: KindInt, Bits: 32, LittleEndian: true},
	"i8":   {Name: "i8", Kind: KindInt, Bits: 8, Signed: true},
	"i16":  {Name: "i16", Kind: KindInt, Bits: 16, Signed: true},
	"il16": {Name: "il16", Kind: KindInt, Bits: 16, Signed: true, LittleEndian: true},
	"i24":  {Name: "i24", Kind: KindInt, Bits: 24, Signed: true},
	"il24": {Name: "il24", Kind: KindInt, Bits: 24, Signed: true, LittleEndian: true},
	"i32":  {Name: "i32", Kind: KindInt, Bits: 32, Signed: true},
	"il32": {Name: "il32", Kind: KindInt, Bits: 32, Signed: true, LittleEndian: true},
	"char": {Name: "char", Kind: KindChar, Bits: 8},
	"lbcd": {Name: "lbcd", Kind: KindBCD, Bits: 8, LittleEndian: true},
	"bbcd": {Name: "bbcd", Kind: KindBCD, Bits: 8},
}

// Def is one node of the compiled field tree. Concrete variants carry only
// what their kind needs; dispatch is by type switch, never by name probing.
type Def interface {
	GetName() string
	GetLine() int
}

// IntDef is a scalar fixed-width integer field.
type IntDef struct {
	Name string
	Type *PrimType
	Line int
}

func (d *IntDef) GetName() string { return d.Name }
func (d *IntDef) GetLine() int    { return d.Line }

// BCDDef is a run of Count BCD bytes read as one decimal number. bbcd puts
// the most significant byte first, lbcd the least.
type BCDDef struct {
	Name         string
	Count        int
	LittleEndian bool
	Line         int
}

func (d *BCDDef) GetName() string { return d.Name }
func (d *BCDDef) GetLine() int    { return d.Line }

// StringDef is a fixed-length character array (char / char[n]).
type StringDef struct {
	Name   string
	Length int
	Line   int
}

func (d *StringDef) GetName() string { return d.Name }
func (d *StringDef) GetLine() int    { return d.Line }

// BitDef is one named member of a bitfield group.
type BitDef struct {
	Name string
	Bits int
	Line int
}

func (d *BitDef) GetName() string { return d.Name }
func (d *BitDef) GetLine() int    { return d.Line }

// BitfieldDef is one declaration line of comma-chained sub-byte fields.
// The group occupies the base type's whole bytes and is consumed as a unit.
type BitfieldDef struct {
	Base    *PrimType
	Members []*BitDef
	Line    int
}

func (d *BitfieldDef) GetName() string {
	if len(d.Members) > 0 {
		return d.Members[0].Name
	}
	return "(empty bitfield)"
}
func (d *BitfieldDef) GetLine() int { return d.Line }

// BitArrayDef is `bit name[n]` / `lbit name[n]`: n single-bit flags packed
// into n/8 bytes.
type BitArrayDef struct {
	Name         string
	Count        int
	LittleEndian bool
	Line         int
}

func (d *BitArrayDef) GetName() string { return d.Name }
func (d *BitArrayDef) GetLine() int    { return d.Line }

// StructDef is a named, ordered record of child defs. TypeName is set when
// the record was declared from a reusable `struct defn {...};` definition.
type StructDef struct {
	Name     string
	TypeName string
	Fields   []Def
	Line     int
}

func (d *StructDef) GetName() string { return d.Name }
func (d *StructDef) GetLine() int    { return d.Line }

// ArrayDef repeats Elem Count times at a fixed stride.
type ArrayDef struct {
	Name  string
	Count int
	Elem  Def
	Line  int
}

func (d *ArrayDef) GetName() string { return d.Name }
func (d *ArrayDef) GetLine() int    { return d.Line }

// SeekToDef jumps the layout cursor to an absolute byte address. It is not
// a field and only affects placement of what follows.
type SeekToDef struct {
	Offset int
	Line   int
}

func (d *SeekToDef) GetName() string { return "#seekto" }
func (d *SeekToDef) GetLine() int    { return d.Line }

// SeekDef advances the layout cursor by a byte count.
type SeekDef struct {
	Offset int
	Line   int
}

func (d *SeekDef) GetName() string { return "#seek" }
func (d *SeekDef) GetLine() int    { return d.Line }

// PrintOffsetDef logs the running offset during resolution, labelled.
type PrintOffsetDef struct {
	Label string
	Line  int
}

func (d *PrintOffsetDef) GetName() string { return "#printoffset" }
func (d *PrintOffsetDef) GetLine() int    { return d.Line }

// SchemaDef is the root of a compiled field tree.
type SchemaDef struct {
	Fields []Def
}

// CloneDef deep-copies a def tree. Reusable struct definitions are
// instantiated by clone so every instance owns distinct nodes and therefore
// distinct layout placements.
func CloneDef(d Def) Def {
	switch v := d.(type) {
	case *IntDef:
		c := *v
		return &c
	case *BCDDef:
		c := *v
		return &c
	case *StringDef:
		c := *v
		return &c
	case *BitDef:
		c := *v
		return &c
	case *BitfieldDef:
		c := &BitfieldDef{Base: v.Base, Line: v.Line}
		for _, m := range v.Members {
			mc := *m
			c.Members = append(c.Members, &mc)
		}
		return c
	case *BitArrayDef:
		c := *v
		return &c
	case *StructDef:
		c := &StructDef{Name: v.Name, TypeName: v.TypeName, Line: v.Line}
		for _, f := range v.Fields {
			c.Fields = append(c.Fields, CloneDef(f))
		}
		return c
	case *ArrayDef:
		return &ArrayDef{Name: v.Name, Count: v.Count, Elem: CloneDef(v.Elem), Line: v.Line}
	case *SeekToDef:
		c := *v
		return &c
	case *SeekDef:
		c := *v
		return &c
	case *PrintOffsetDef:
		c := *v
		return &c
	}
	return d
}
