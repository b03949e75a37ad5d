package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/internal/ast"
	"shapegen/internal/parser"
)

func items(t *testing.T, src string) []ast.Item {
	t.Helper()
	res := parser.ParseSource("t.shape", src, parser.Options{})
	require.Empty(t, res.Errors)
	return res.Items
}

func TestItemString(t *testing.T) {
	got := items(t, `#[derive(Describe, Ranges)]
enum Level { Low = 1, High }
enum_ranges! { LogTen { Zero: 0, Ones: 1..10 } }
const WORDS = file_words!("a.txt", "b.txt");
`)
	require.Len(t, got, 3)
	assert.Equal(t, "#[derive(Describe, Ranges)]\nenum Level {Low = 1, High}", got[0].(*ast.DeclItem).String())
	assert.Equal(t, "enum_ranges! {LogTen {Zero: 0, Ones: 1..10}}", got[1].(*ast.MacroItem).String())
	assert.Equal(t, `const WORDS = file_words!("a.txt", "b.txt");`, got[2].(*ast.ExprItem).String())
}

func TestShapeString(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"struct S;", "struct S;"},
		{"struct P(i32, Vec<u8>);", "struct P(i32, Vec<u8>);"},
		{"struct E {}", "struct E {}"},
		{"struct U { name: String, age: u8 }", "struct U {\n    name: String,\n    age: u8,\n}"},
		{"enum E {}", "enum E {}"},
		{"enum L { A = -1, B }", "enum L {\n    A = -1,\n    B,\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			decl := items(t, tt.src)[0].(*ast.DeclItem)
			shape, err := parser.ParseShape(decl.Tokens, parser.Options{})
			require.Nil(t, err)
			assert.Equal(t, tt.want, shape.(interface{ String() string }).String())
		})
	}
}

func TestRangedEnumString(t *testing.T) {
	item := items(t, "enum_ranges! { #[derive(Describe)] LogTen { Zero: 0, Ones: 1..10, Tens: 10..0x64 } }")[0]
	r, err := parser.ParseRangedEnum(item.(*ast.MacroItem).Group, parser.Options{})
	require.Nil(t, err)
	assert.Equal(t, "#[derive(Describe)] LogTen { Zero: 0, Ones: 1..10, Tens: 10..0x64 }", r.String())
}
