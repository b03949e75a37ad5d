package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
	"shapegen/internal/parser"
	"shapegen/token"
)

func typeStream(t *testing.T, src string) token.Stream {
	t.Helper()
	stream, errs := parser.Read("test.shape", src)
	require.Empty(t, errs)
	return stream
}

func TestGoType(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"u8", "uint8"},
		{"usize", "uint"},
		{"String", "string"},
		{"&str", "*string"},
		{"&mut i32", "*int32"},
		{"Vec<String>", "[]string"},
		{"Vec<Vec<u8>>", "[][]uint8"},
		{"Option<Box<Node>>", "**Node"},
		{"HashMap<String, Vec<u32>>", "map[string][]uint32"},
		{"BTreeSet<char>", "map[rune]struct{}"},
		{"[u8; 0x10]", "[16]uint8"},
		{"[f64]", "[]float64"},
		{"()", "struct{}"},
		{"std::collections::HashMap<u8, bool>", "map[uint8]bool"},
		{"crate::model::Point", "Point"},
		{"Pair<A, B,>", "Pair[A, B]"},
	}
	m := NewTypeMapper(nil)
	for _, tt := range tests {
		got, err := m.GoType(typeStream(t, tt.src))
		require.Nil(t, err, tt.src)
		assert.Equal(t, tt.want, got, tt.src)
	}
}

func TestGoTypeOverrides(t *testing.T) {
	m := NewTypeMapper(map[string]string{
		"Uuid":            "[16]byte",
		"chrono::Instant": "int64",
	})

	got, err := m.GoType(typeStream(t, "Vec<uuid::Uuid>"))
	require.Nil(t, err)
	assert.Equal(t, "[][16]byte", got)

	got, err = m.GoType(typeStream(t, "chrono::Instant"))
	require.Nil(t, err)
	assert.Equal(t, "int64", got)
}

func TestGoTypeErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
		column  int
	}{
		{"(u8, u8)", "unsupported type `(u8, u8)`", 1},
		{"Vec<u8, u8>", "`Vec` takes 1 type argument, found 2", 1},
		{"HashMap<u8>", "`HashMap` takes 2 type arguments, found 1", 1},
		{"u8<bool>", "`u8` does not take type arguments", 1},
		{"Vec<u8", "unexpected end of input, expected `>`", 7},
		{"[u8; N]", "expected array length, found `N`", 6},
		{"u8 u16", "expected end of type, found `u16`", 4},
		{"std::", "unexpected end of input, expected path segment", 6},
		{"std::क्ष", "`क्ष` is not a valid Go type name", 6},
		{"Vec<type>", "`type` is not a valid Go type name", 5},
	}
	m := NewTypeMapper(nil)
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := m.GoType(typeStream(t, tt.src))
			require.NotNil(t, err)
			assert.Equal(t, errors.ErrorMalformedInput, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.column, err.Span.Start.Column)
		})
	}
}

func structFacts(t *testing.T, src string) *facts.StructFacts {
	t.Helper()
	shape, err := parser.ParseShape(typeStream(t, src), parser.Options{})
	require.Nil(t, err)
	f, err := facts.Struct(shape.(*ast.Struct))
	require.Nil(t, err)
	return f
}

func TestStruct(t *testing.T) {
	s, err := NewTypeMapper(nil).Struct(structFacts(t, "struct User { user_name: String, tags: Vec<String> }"))
	require.Nil(t, err)
	assert.Equal(t, &Struct{
		Name: "User",
		Fields: []Field{
			{Name: "UserName", Type: "string", Tag: "`shape:\"user_name\"`"},
			{Name: "Tags", Type: "[]string", Tag: "`shape:\"tags\"`"},
		},
	}, s)

	s, err = NewTypeMapper(nil).Struct(structFacts(t, "struct P(i32, i32);"))
	require.Nil(t, err)
	assert.Equal(t, []Field{{Name: "F0", Type: "int32"}, {Name: "F1", Type: "int32"}}, s.Fields)

	s, err = NewTypeMapper(nil).Struct(structFacts(t, "struct Unit;"))
	require.Nil(t, err)
	assert.Empty(t, s.Fields)
}

func TestStructBadFieldType(t *testing.T) {
	_, err := NewTypeMapper(nil).Struct(structFacts(t, "struct S { a: u8, b: (u8, u8) }"))
	require.NotNil(t, err)
	assert.Equal(t, "unsupported type `(u8, u8)`", err.Message)
	assert.Equal(t, 22, err.Span.Start.Column)
}

func TestEnum(t *testing.T) {
	shape, perr := parser.ParseShape(typeStream(t, "enum Level { Low, Mid = 10, High = -3 }"), parser.Options{})
	require.Nil(t, perr)
	f, err := facts.Enum(shape.(*ast.Enum))
	require.Nil(t, err)

	e := EnumDecl(f)
	assert.Equal(t, "int64", e.Underlying)
	assert.Equal(t, []Const{
		{Name: "LevelLow", Value: "0"},
		{Name: "LevelMid", Value: "10"},
		{Name: "LevelHigh", Value: "-3"},
	}, e.Consts)
}
