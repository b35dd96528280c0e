package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResolve(t *testing.T, text string) (*SchemaDef, *Layout) {
	t.Helper()
	schema, err := Compile(text)
	require.NoError(t, err)
	layout, err := Resolve(schema)
	require.NoError(t, err)
	return schema, layout
}

func TestResolveSequentialOffsets(t *testing.T) {
	schema, layout := mustResolve(t, `
		u8 a;
		ul16 b;
		u24 c;
		char name[4];
	`)

	want := []struct {
		offset int
		bits   int
	}{
		{0, 8},
		{1, 16},
		{3, 24},
		{6, 32},
	}
	for i, w := range want {
		p, ok := layout.Placement(schema.Fields[i])
		require.True(t, ok)
		assert.Equal(t, w.offset, p.ByteOffset, "field %d", i)
		assert.Equal(t, w.bits, p.BitWidth, "field %d", i)
	}
	assert.Equal(t, 10, layout.Size)
}

func TestResolveBitfieldMSBFirst(t *testing.T) {
	schema, layout := mustResolve(t, `u8 hi:4, lo:4;`)

	group := schema.Fields[0].(*BitfieldDef)
	hi, ok := layout.Placement(group.Members[0])
	require.True(t, ok)
	lo, ok := layout.Placement(group.Members[1])
	require.True(t, ok)

	// first declared member occupies the most significant bits
	assert.Equal(t, 0, hi.BitOffset)
	assert.Equal(t, 4, lo.BitOffset)
	assert.Equal(t, hi.ByteOffset, lo.ByteOffset)

	// the group advances the cursor as one unit
	g, ok := layout.Placement(group)
	require.True(t, ok)
	assert.Equal(t, 8, g.BitWidth)
}

func TestResolveSeekto(t *testing.T) {
	schema, layout := mustResolve(t, `
		u8 a;
		#seekto 0x10;
		u8 b;
	`)
	p, ok := layout.Placement(schema.Fields[2])
	require.True(t, ok)
	assert.Equal(t, 0x10, p.ByteOffset)
	assert.Equal(t, 0x11, layout.Size)
}

func TestResolveSeekRelative(t *testing.T) {
	schema, layout := mustResolve(t, `
		u8 a;
		#seek 3;
		u8 b;
	`)
	p, _ := layout.Placement(schema.Fields[2])
	assert.Equal(t, 4, p.ByteOffset)
}

func TestResolveBackwardSeekAllowed(t *testing.T) {
	schema, layout := mustResolve(t, `
		#seekto 0x08;
		u8 a;
		#seekto 0x02;
		u8 b;
	`)
	pa, _ := layout.Placement(schema.Fields[1])
	pb, _ := layout.Placement(schema.Fields[3])
	assert.Equal(t, 0x08, pa.ByteOffset)
	assert.Equal(t, 0x02, pb.ByteOffset)
	assert.Equal(t, 9, layout.Size)
}

func TestResolveArrayStride(t *testing.T) {
	schema, layout := mustResolve(t, `
		struct {
			ul16 freq;
			u8 mode;
		} memory[10];
	`)
	arr := schema.Fields[0].(*ArrayDef)
	assert.Equal(t, 3, layout.Stride(arr))

	p, _ := layout.Placement(arr)
	assert.Equal(t, 0, p.ByteOffset)
	assert.Equal(t, 10*3*8, p.BitWidth)
	assert.Equal(t, 30, layout.Size)
}

func TestResolveArrayWithInternalSeek(t *testing.T) {
	// relative seeks pad the stride
	schema, layout := mustResolve(t, `
		struct {
			u8 x;
			#seek 1;
		} slots[4];
	`)
	arr := schema.Fields[0].(*ArrayDef)
	assert.Equal(t, 2, layout.Stride(arr))
	assert.Equal(t, 8, layout.Size)

	// the element record's span covers the pad byte too
	p, ok := layout.Placement(arr.Elem)
	require.True(t, ok)
	assert.Equal(t, 16, p.BitWidth)
}

func TestResolveStructWidthIncludesSeekGap(t *testing.T) {
	schema, layout := mustResolve(t, `
		struct {
			u8 a;
			#seek 2;
			u8 b;
		} padded;
	`)
	p, ok := layout.Placement(schema.Fields[0])
	require.True(t, ok)
	assert.Equal(t, 4*8, p.BitWidth)
	assert.Equal(t, 4, layout.Size)
}

func TestResolveSeektoInsideArrayFails(t *testing.T) {
	schema, err := Compile(`
		struct {
			#seekto 0x10;
			u8 x;
		} slots[4];
	`)
	require.NoError(t, err)
	_, err = Resolve(schema)
	require.Error(t, err)
	var le *LayoutError
	assert.True(t, errors.As(err, &le))
}

func TestResolveStructSize(t *testing.T) {
	schema, layout := mustResolve(t, `
		struct {
			u8 a;
			u8 flags:4, mode:4;
			char name[6];
		} settings;
	`)
	p, _ := layout.Placement(schema.Fields[0])
	assert.Equal(t, (1+1+6)*8, p.BitWidth)
}

func TestResolveDeterministic(t *testing.T) {
	text := `
		#seekto 0x20;
		struct {
			ul16 a;
			u8 b:2, c:6;
			bbcd d[2];
		} rec[5];
		char label[8];
	`
	schema, err := Compile(text)
	require.NoError(t, err)

	l1, err := Resolve(schema)
	require.NoError(t, err)
	l2, err := Resolve(schema)
	require.NoError(t, err)

	assert.Equal(t, l1.Size, l2.Size)
	for d, p1 := range l1.placements {
		p2, ok := l2.placements[d]
		require.True(t, ok)
		assert.Equal(t, p1, p2)
	}
}
