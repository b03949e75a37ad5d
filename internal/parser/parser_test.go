package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

func readDecl(t *testing.T, src string) token.Stream {
	t.Helper()
	stream, errs := Read("test.shape", src)
	require.Empty(t, errs)
	return stream
}

func parseShape(t *testing.T, src string) (ast.Shape, *errors.CompilerError) {
	t.Helper()
	return ParseShape(readDecl(t, src), Options{})
}

func TestParseStructForms(t *testing.T) {
	tests := []struct {
		src    string
		form   ast.StructForm
		fields []string
	}{
		{"struct Unit;", ast.UnitStruct, nil},
		{"struct Empty {}", ast.NamedStruct, nil},
		{"struct Nothing();", ast.TupleStruct, nil},
		{"struct Point(i32, i32);", ast.TupleStruct, []string{"i32", "i32"}},
		{"struct Pair(HashMap<String, u32>, Vec<u8>,);", ast.TupleStruct, []string{"HashMap<String, u32>", "Vec<u8>"}},
		{"struct User { name: String, tags: Vec<String>, }", ast.NamedStruct, []string{"name: String", "tags: Vec<String>"}},
		{"struct Grid { cells: [[u8; 3]; 3] }", ast.NamedStruct, []string{"cells: [[u8; 3]; 3]"}},
		{"struct Token { type: u8 }", ast.NamedStruct, []string{"type: u8"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			shape, err := parseShape(t, tt.src)
			require.Nil(t, err)
			s, ok := shape.(*ast.Struct)
			require.True(t, ok)
			assert.Equal(t, tt.form, s.Form)
			require.Len(t, s.Fields, len(tt.fields))
			for i, f := range s.Fields {
				assert.Equal(t, tt.fields[i], f.String())
			}
		})
	}
}

func TestParseStructSpan(t *testing.T) {
	shape, err := parseShape(t, "struct Foo { a: u8 }")
	require.Nil(t, err)
	assert.Equal(t, 0, shape.NodeSpan().Start.Offset)
	assert.Equal(t, 20, shape.NodeSpan().End.Offset)
	assert.Equal(t, "Foo", shape.ShapeName().Value)
}

func TestParseStructErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    string
		column  int
		message string
	}{
		{"bare type in braces", "struct S { a: u8, u16 }", errors.ErrorMalformedInput, 19, "expected `name: Type`, found `u16`"},
		{"named field in parens", "struct S(a: u8);", errors.ErrorMalformedInput, 11, "unexpected `:` in tuple struct field"},
		{"missing type", "struct S { a: , }", errors.ErrorMalformedInput, 15, "unexpected end of input, expected field type"},
		{"generics", "struct S<T> { a: T }", errors.ErrorMalformedInput, 9, "generic parameters are not supported"},
		{"where clause", "struct S where T: Copy { }", errors.ErrorMalformedInput, 10, "expected `;`, `(` or `{`, found `where`"},
		{"tuple without semicolon", "struct S(u8)", errors.ErrorMalformedInput, 13, "unexpected end of input, expected `;`"},
		{"double comma", "struct S { a: u8,, }", errors.ErrorMalformedInput, 18, "expected field, found `,`"},
		{"duplicate field", "struct S { a: u8, a: u16 }", errors.ErrorMalformedInput, 19, "field `a` is already declared"},
		{"keyword name", "struct type;", errors.ErrorMalformedInput, 8, "`type` cannot be used as a name: it is a Go keyword"},
		{"predeclared name", "struct string;", errors.ErrorMalformedInput, 8, "`string` cannot be used as a name: it is predeclared in Go"},
		{"reserved prefix", "struct _sgHelper;", errors.ErrorMalformedInput, 8, "identifier `_sgHelper` uses the reserved prefix `_sg`"},
		{"non-Go type name", "struct क्ष;", errors.ErrorMalformedInput, 8, "`क्ष` is not a valid Go identifier"},
		{"non-Go field name", "struct S { क्ष: u8 }", errors.ErrorMalformedInput, 12, "`क्ष` is not a valid Go identifier"},
		{"unbalanced angle", "struct S(u8>);", errors.ErrorMalformedInput, 12, "unbalanced `>`"},
		{"unclosed angle", "struct S(Vec<u8);", errors.ErrorMalformedInput, 16, "unexpected end of input, expected `>`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := parseShape(t, tt.src)
			assert.Nil(t, shape)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.column, err.Span.Start.Column)
		})
	}
}

func TestParseEnum(t *testing.T) {
	shape, err := parseShape(t, "enum Level { Low, Mid = 10, Neg = -0x2, Big = 1_000u32, }")
	require.Nil(t, err)
	e, ok := shape.(*ast.Enum)
	require.True(t, ok)
	assert.Equal(t, "Level", e.Name.Value)
	require.Len(t, e.Variants, 4)

	assert.Nil(t, e.Variants[0].Discriminant)
	require.NotNil(t, e.Variants[1].Discriminant)
	assert.Equal(t, int64(10), e.Variants[1].Discriminant.Value)
	assert.Equal(t, int64(-2), e.Variants[2].Discriminant.Value)
	assert.Equal(t, "-0x2", e.Variants[2].Discriminant.Text)
	assert.Equal(t, int64(1000), e.Variants[3].Discriminant.Value)
}

func TestParseEnumErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    string
		column  int
		message string
	}{
		{"expression", "enum E { A = 1 + 2 }", errors.ErrorUnsupportedDiscriminant, 14, "unsupported discriminant `1+2`: only integer literals are allowed"},
		{"string", `enum E { A = "x" }`, errors.ErrorUnsupportedDiscriminant, 14, "unsupported discriminant `\"x\"`: only integer literals are allowed"},
		{"path", "enum E { A = B::C }", errors.ErrorUnsupportedDiscriminant, 14, "unsupported discriminant `B::C`: only integer literals are allowed"},
		{"bad literal", "enum E { A = 12abc }", errors.ErrorUnsupportedDiscriminant, 14, "unsupported discriminant `12abc`: only integer literals are allowed"},
		{"overflow", "enum E { A = 9223372036854775808 }", errors.ErrorUnsupportedDiscriminant, 14, "discriminant of variant `A` overflows a 64-bit integer"},
		{"missing value", "enum E { A = , B }", errors.ErrorMalformedInput, 14, "unexpected end of input, expected discriminant"},
		{"tuple variant", "enum E { A(u8) }", errors.ErrorMalformedInput, 11, "enum variants with fields are not supported"},
		{"duplicate name", "enum E { A, A }", errors.ErrorMalformedInput, 13, "variant `A` is already declared"},
		{"missing body", "enum E;", errors.ErrorMalformedInput, 7, "expected `{`, found `;`"},
		{"not a declaration", "union U {}", errors.ErrorMalformedInput, 1, "expected `struct` or `enum`, found `union`"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := parseShape(t, tt.src)
			assert.Nil(t, shape)
			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.column, err.Span.Start.Column)
		})
	}
}

func TestParseMinInt(t *testing.T) {
	shape, err := parseShape(t, "enum E { A = -9223372036854775808 }")
	require.Nil(t, err)
	assert.Equal(t, int64(-9223372036854775808), shape.(*ast.Enum).Variants[0].Discriminant.Value)
}

func TestParseCustomPrefix(t *testing.T) {
	stream := readDecl(t, "struct _sgOk; ")
	_, err := ParseShape(stream, Options{HygienePrefix: "zz"})
	assert.Nil(t, err)

	stream = readDecl(t, "struct zzNo;")
	_, err = ParseShape(stream, Options{HygienePrefix: "zz"})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "reserved prefix `zz`")
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		text string
		want uint64
		ok   bool
	}{
		{"0", 0, true},
		{"1_000", 1000, true},
		{"0xFF", 255, true},
		{"0o17", 15, true},
		{"0b1010", 10, true},
		{"10u8", 10, true},
		{"7usize", 7, true},
		{"18446744073709551615", 1<<64 - 1, true},
		{"18446744073709551616", 0, false},
		{"0x", 0, false},
		{"_", 0, false},
		{"12abc", 0, false},
		{"010", 10, true},
	}
	for _, tt := range tests {
		got, err := ParseUint(tt.text)
		if !tt.ok {
			assert.Error(t, err, tt.text)
			continue
		}
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestParsePathList(t *testing.T) {
	stream := readDecl(t, `("words/a.txt", "b\tc.txt",)`)
	list, err := ParsePathList(stream[0])
	require.Nil(t, err)
	require.Len(t, list.Paths, 2)
	assert.Equal(t, "words/a.txt", list.Paths[0].Value)
	assert.Equal(t, "b\tc.txt", list.Paths[1].Value)
	assert.Equal(t, 2, list.Paths[0].Span.Start.Column)

	stream = readDecl(t, `()`)
	_, err = ParsePathList(stream[0])
	require.NotNil(t, err)
	assert.Equal(t, "unexpected end of input, expected string literal", err.Message)
	assert.Equal(t, 2, err.Span.Start.Column)

	stream = readDecl(t, `("a.txt" "b.txt")`)
	_, err = ParsePathList(stream[0])
	require.NotNil(t, err)
	assert.Equal(t, 10, err.Span.Start.Column)

	stream = readDecl(t, `(a)`)
	_, err = ParsePathList(stream[0])
	require.NotNil(t, err)
	assert.Equal(t, "expected string literal, found `a`", err.Message)
}
