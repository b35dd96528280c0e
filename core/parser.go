package core

import (
	"fmt"

	"github.com/vuuvv/bitmem/log"
	"go.uber.org/zap"
)

// Compile turns schema text into a field tree. Compilation is a pure
// function of the text: the first error aborts the whole compile and no
// partial tree is ever returned.
func Compile(text string) (*SchemaDef, error) {
	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, userTypes: map[string][]Def{}}
	fields, err := p.parseBlock(false)
	if err != nil {
		return nil, err
	}
	return &SchemaDef{Fields: fields}, nil
}

type parser struct {
	toks      []token
	pos       int
	userTypes map[string][]Def
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		line := 0
		if len(p.toks) > 0 {
			line = p.toks[len(p.toks)-1].line
		}
		return token{kind: tokEOF, line: line}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expectPunct(text string) (token, error) {
	t := p.next()
	if !t.is(text) {
		return t, NewSyntaxError(t.line, "expected %q, got %q", text, t.text)
	}
	return t, nil
}

func (p *parser) expectSymbol() (token, error) {
	t := p.next()
	if t.kind != tokSymbol {
		return t, NewSyntaxError(t.line, "expected name, got %q", t.text)
	}
	return t, nil
}

func (p *parser) expectNumber() (int, token, error) {
	t := p.next()
	if t.kind != tokNumber {
		return 0, t, NewSyntaxError(t.line, "expected number, got %q", t.text)
	}
	v, err := parseCount(t)
	return v, t, err
}

// uniqueName renames duplicate declarations within one record instead of
// failing, matching the register maps in the wild that repeat a name.
func uniqueName(names map[string]int, name string, line int) string {
	prev, dup := names[name]
	if dup {
		renamed := fmt.Sprintf("%s_%06x", name, line)
		log.Error(fmt.Sprintf("duplicate definition for %s on line %d; renaming to %s", name, line, renamed),
			zap.Int("previousLine", prev))
		name = renamed
	}
	names[name] = line
	return name
}

func (p *parser) parseBlock(inBraces bool) ([]Def, error) {
	var defs []Def
	names := map[string]int{}

	for {
		t := p.peek()
		switch {
		case t.kind == tokEOF:
			if inBraces {
				return nil, NewSyntaxError(t.line, "unterminated block")
			}
			return defs, nil

		case t.is("}"):
			if !inBraces {
				return nil, NewSyntaxError(t.line, "unexpected %q", "}")
			}
			p.next()
			return defs, nil

		case t.is("#"):
			d, err := p.parseDirective()
			if err != nil {
				return nil, err
			}
			defs = append(defs, d)

		case t.kind == tokSymbol && t.text == "struct":
			d, err := p.parseStruct(names)
			if err != nil {
				return nil, err
			}
			if d != nil {
				defs = append(defs, d)
			}

		case t.kind == tokSymbol:
			pt, ok := PrimTypes[t.text]
			if !ok {
				return nil, NewSyntaxError(t.line, "unknown type %q", t.text)
			}
			d, err := p.parseDefinition(pt, names)
			if err != nil {
				return nil, err
			}
			defs = append(defs, d)

		default:
			return nil, NewSyntaxError(t.line, "unexpected %q", t.text)
		}
	}
}

func (p *parser) parseDefinition(pt *PrimType, names map[string]int) (Def, error) {
	typeTok := p.next()
	sym, err := p.expectSymbol()
	if err != nil {
		return nil, err
	}

	if p.peek().is(":") {
		return p.parseBitfield(pt, sym, names)
	}

	count := 1
	if p.peek().is("[") {
		p.next()
		count, _, err = p.expectNumber()
		if err != nil {
			return nil, err
		}
		if count <= 0 {
			return nil, NewSyntaxError(sym.line, "array count must be positive, got %d", count)
		}
		if _, err = p.expectPunct("]"); err != nil {
			return nil, err
		}
	}
	if _, err = p.expectPunct(";"); err != nil {
		return nil, err
	}

	name := uniqueName(names, sym.text, sym.line)
	return makeScalar(pt, name, count, typeTok.line)
}

func makeScalar(pt *PrimType, name string, count int, line int) (Def, error) {
	switch pt.Kind {
	case KindInt:
		elem := &IntDef{Name: name, Type: pt, Line: line}
		if count == 1 {
			return elem, nil
		}
		return &ArrayDef{Name: name, Count: count, Elem: elem, Line: line}, nil
	case KindChar:
		return &StringDef{Name: name, Length: count, Line: line}, nil
	case KindBCD:
		return &BCDDef{Name: name, Count: count, LittleEndian: pt.LittleEndian, Line: line}, nil
	case KindBit:
		if count%8 != 0 {
			return nil, NewSyntaxError(line, "bit array %s must be divisible by 8, got %d", name, count)
		}
		return &BitArrayDef{Name: name, Count: count, LittleEndian: pt.LittleEndian, Line: line}, nil
	}
	return nil, NewSyntaxError(line, "unhandled type %q", pt.Name)
}

func (p *parser) parseBitfield(pt *PrimType, first token, names map[string]int) (Def, error) {
	if pt.Kind != KindInt {
		return nil, NewSyntaxError(first.line, "bitfields require an integer base type, got %q", pt.Name)
	}

	group := &BitfieldDef{Base: pt, Line: first.line}
	sum := 0
	sym := first
	for {
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		width, wtok, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		if width <= 0 {
			return nil, NewSyntaxError(wtok.line, "bitfield %s width must be positive, got %d", sym.text, width)
		}
		name := uniqueName(names, sym.text, sym.line)
		group.Members = append(group.Members, &BitDef{Name: name, Bits: width, Line: sym.line})
		sum += width

		t := p.next()
		if t.is(",") {
			if sym, err = p.expectSymbol(); err != nil {
				return nil, err
			}
			continue
		}
		if t.is(";") {
			break
		}
		return nil, NewSyntaxError(t.line, "expected %q or %q in bitfield, got %q", ",", ";", t.text)
	}

	if sum > pt.Bits {
		return nil, NewSyntaxError(group.Line, "bitfield widths sum to %d bits, exceeding %s", sum, pt.Name)
	}
	if sum%8 != 0 {
		return nil, NewSyntaxError(group.Line, "bitfield widths sum to %d bits, not a whole number of bytes", sum)
	}
	if sum < pt.Bits {
		log.Warn(fmt.Sprintf("%d trailing bits unaccounted for in %s", pt.Bits-sum, group.GetName()),
			zap.Int("line", group.Line))
	}

	return group, nil
}

func (p *parser) parseStruct(names map[string]int) (Def, error) {
	kw := p.next() // struct

	var fields []Def
	typeName := ""

	t := p.peek()
	if t.is("{") {
		var err error
		if fields, err = p.parseBraceBlock(); err != nil {
			return nil, err
		}
	} else {
		sym, err := p.expectSymbol()
		if err != nil {
			return nil, err
		}
		if p.peek().is("{") {
			// struct defn {...}; registers a reusable definition
			if fields, err = p.parseBraceBlock(); err != nil {
				return nil, err
			}
			if _, err = p.expectPunct(";"); err != nil {
				return nil, err
			}
			p.userTypes[sym.text] = fields
			return nil, nil
		}
		tmpl, ok := p.userTypes[sym.text]
		if !ok {
			return nil, NewSyntaxError(sym.line, "undefined struct type %q", sym.text)
		}
		typeName = sym.text
		for _, f := range tmpl {
			fields = append(fields, CloneDef(f))
		}
	}

	sym, err := p.expectSymbol()
	if err != nil {
		return nil, err
	}
	count := 1
	if p.peek().is("[") {
		p.next()
		count, _, err = p.expectNumber()
		if err != nil {
			return nil, err
		}
		if count <= 0 {
			return nil, NewSyntaxError(sym.line, "array count must be positive, got %d", count)
		}
		if _, err = p.expectPunct("]"); err != nil {
			return nil, err
		}
	}
	if _, err = p.expectPunct(";"); err != nil {
		return nil, err
	}

	name := uniqueName(names, sym.text, sym.line)
	s := &StructDef{Name: name, TypeName: typeName, Fields: fields, Line: kw.line}
	if count == 1 {
		return s, nil
	}
	return &ArrayDef{Name: name, Count: count, Elem: s, Line: kw.line}, nil
}

func (p *parser) parseBraceBlock() ([]Def, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	return p.parseBlock(true)
}

func (p *parser) parseDirective() (Def, error) {
	p.next() // '#'
	sym, err := p.expectSymbol()
	if err != nil {
		return nil, err
	}

	var d Def
	switch sym.text {
	case "seekto":
		offset, _, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		d = &SeekToDef{Offset: offset, Line: sym.line}
	case "seek":
		offset, _, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		d = &SeekDef{Offset: offset, Line: sym.line}
	case "printoffset":
		t := p.next()
		if t.kind != tokString {
			return nil, NewSyntaxError(t.line, "printoffset expects a quoted label, got %q", t.text)
		}
		d = &PrintOffsetDef{Label: t.text, Line: sym.line}
	default:
		return nil, NewSyntaxError(sym.line, "unknown directive %q", sym.text)
	}

	if _, err = p.expectPunct(";"); err != nil {
		return nil, err
	}
	return d, nil
}
