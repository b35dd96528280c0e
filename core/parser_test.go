package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileScalarsAndArrays(t *testing.T) {
	schema, err := Compile(`
		u8 mode;        // comments vanish
		ul16 rxtone;
		char name[8];
		bbcd freq[4];
		u8 flags[2];
		bit used[16];
	`)
	require.NoError(t, err)
	require.Len(t, schema.Fields, 6)

	assert.IsType(t, &IntDef{}, schema.Fields[0])
	assert.Equal(t, "mode", schema.Fields[0].GetName())

	rx := schema.Fields[1].(*IntDef)
	assert.True(t, rx.Type.LittleEndian)
	assert.Equal(t, 16, rx.Type.Bits)

	name := schema.Fields[2].(*StringDef)
	assert.Equal(t, 8, name.Length)

	freq := schema.Fields[3].(*BCDDef)
	assert.Equal(t, 4, freq.Count)
	assert.False(t, freq.LittleEndian)

	flags := schema.Fields[4].(*ArrayDef)
	assert.Equal(t, 2, flags.Count)
	assert.IsType(t, &IntDef{}, flags.Elem)

	used := schema.Fields[5].(*BitArrayDef)
	assert.Equal(t, 16, used.Count)
}

func TestCompileBitfield(t *testing.T) {
	schema, err := Compile(`u8 unknown:1, skip:1, power:2, mode:4;`)
	require.NoError(t, err)
	require.Len(t, schema.Fields, 1)

	group := schema.Fields[0].(*BitfieldDef)
	assert.Equal(t, "u8", group.Base.Name)
	require.Len(t, group.Members, 4)
	assert.Equal(t, "power", group.Members[2].Name)
	assert.Equal(t, 2, group.Members[2].Bits)
}

func TestCompileStructs(t *testing.T) {
	schema, err := Compile(`
		struct {
			ul32 freq;
			u8 tune_step;
		} vfo;
		struct memslot {
			ul32 freq;
			char name[6];
		};
		struct memslot memory[16];
	`)
	require.NoError(t, err)
	require.Len(t, schema.Fields, 2)

	vfo := schema.Fields[0].(*StructDef)
	assert.Equal(t, "vfo", vfo.Name)
	require.Len(t, vfo.Fields, 2)

	mem := schema.Fields[1].(*ArrayDef)
	assert.Equal(t, 16, mem.Count)
	slot := mem.Elem.(*StructDef)
	assert.Equal(t, "memslot", slot.TypeName)
	require.Len(t, slot.Fields, 2)
}

func TestCompileStructReuseClones(t *testing.T) {
	schema, err := Compile(`
		struct slot { u8 a; };
		struct slot one;
		struct slot two;
	`)
	require.NoError(t, err)
	one := schema.Fields[0].(*StructDef)
	two := schema.Fields[1].(*StructDef)
	// instances own distinct nodes, so each gets its own placement
	assert.NotSame(t, one.Fields[0], two.Fields[0])
}

func TestCompileDirectives(t *testing.T) {
	schema, err := Compile(`
		#seekto 0x1AB;
		u8 a;
		#seek 4;
		u8 b;
		#printoffset "checkpoint";
	`)
	require.NoError(t, err)
	require.Len(t, schema.Fields, 5)

	seekto := schema.Fields[0].(*SeekToDef)
	assert.Equal(t, 0x1AB, seekto.Offset)

	seek := schema.Fields[2].(*SeekDef)
	assert.Equal(t, 4, seek.Offset)

	po := schema.Fields[4].(*PrintOffsetDef)
	assert.Equal(t, "checkpoint", po.Label)
}

func TestCompileCommentInsideString(t *testing.T) {
	schema, err := Compile(`#printoffset "a//b"; // trailing comment`)
	require.NoError(t, err)
	require.Len(t, schema.Fields, 1)
	po := schema.Fields[0].(*PrintOffsetDef)
	assert.Equal(t, "a//b", po.Label)
}

func TestCompileDuplicateNamesRenamed(t *testing.T) {
	schema, err := Compile("u8 twin;\nu8 twin;")
	require.NoError(t, err)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, "twin", schema.Fields[0].GetName())
	assert.NotEqual(t, "twin", schema.Fields[1].GetName())
}

func TestCompileErrors(t *testing.T) {
	cases := []struct {
		name   string
		schema string
		line   int
	}{
		{"unknown type", "u9 foo;", 1},
		{"unterminated block", "struct {\nu8 a;", 2},
		{"missing semicolon", "u8 a", 1},
		{"zero array count", "u8 a[0];", 1},
		{"bad array count", "u8 a[bogus];", 1},
		{"bitfield not byte aligned", "u8 a:3;", 1},
		{"bitfield overruns base", "u8 a:4, b:4, c:8;", 1},
		{"bitfield on char", "char a:4, b:4;", 1},
		{"bit array not multiple of 8", "bit flags[7];", 1},
		{"unknown directive", "#seekaround 4;", 1},
		{"undefined struct type", "struct nosuch x;", 1},
		{"unterminated string", "#printoffset \"oops;", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Compile(c.schema)
			require.Error(t, err)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "want SyntaxError, got %v", err)
			assert.Equal(t, c.line, se.Line)
		})
	}
}

func TestCompileIsPure(t *testing.T) {
	text := "u8 a;\nul16 b;"
	s1, err := Compile(text)
	require.NoError(t, err)
	s2, err := Compile(text)
	require.NoError(t, err)
	require.Len(t, s2.Fields, len(s1.Fields))
	for i := range s1.Fields {
		assert.Equal(t, s1.Fields[i].GetName(), s2.Fields[i].GetName())
	}
}
