package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegen/internal/errors"
	"shapegen/token"
)

func TestReadGroups(t *testing.T) {
	stream, errs := Read("test.shape", "struct P(i32, [u8; 4]) ; // tail")
	require.Empty(t, errs)
	require.Len(t, stream, 4)

	assert.Equal(t, token.Ident, stream[0].Kind)
	assert.Equal(t, "P", stream[1].Text)

	group := stream[2]
	require.True(t, group.IsGroup(token.Paren))
	assert.Equal(t, 8, group.Span.Start.Offset)
	assert.Equal(t, 22, group.Span.End.Offset)
	require.Len(t, group.Stream, 3)
	assert.True(t, group.Stream[2].IsGroup(token.Bracket))
	assert.Equal(t, "(i32, [u8; 4])", group.String())

	assert.True(t, stream[3].Is(";"))
}

func TestReadNormalizesIdentifiers(t *testing.T) {
	// "e" followed by a combining acute accent
	stream, errs := Read("test.shape", "struct Cafe\u0301;")
	require.Empty(t, errs)
	assert.Equal(t, "Caf\u00e9", stream[1].Text)
}

func TestReadLiterals(t *testing.T) {
	stream, errs := Read("test.shape", `0x1F "a b"`)
	require.Empty(t, errs)
	require.Len(t, stream, 2)
	assert.Equal(t, token.IntLit, stream[0].Lit)
	assert.Equal(t, token.StrLit, stream[1].Lit)
	assert.Equal(t, `"a b"`, stream[1].Text)
}

func TestReadDelimiterErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
		column  int
	}{
		{"unexpected close", "struct A; }", "unexpected closing delimiter `}`", 11},
		{"mismatched close", "struct A(u8];", "mismatched closing delimiter `]`", 12},
		{"unclosed", "struct A {\n  a: u8,\n", "unclosed delimiter `{`", 10},
		{"unterminated string", `const A = file_words!("a);`, "unterminated string literal", 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Read("test.shape", tt.src)
			require.NotEmpty(t, errs)
			assert.Equal(t, errors.ErrorMalformedInput, errs[0].Code)
			assert.Equal(t, tt.message, errs[0].Message)
			assert.Equal(t, 1, errs[0].Span.Start.Line)
			assert.Equal(t, tt.column, errs[0].Span.Start.Column)
		})
	}
}

func TestReadDropsComments(t *testing.T) {
	stream, errs := Read("test.shape", "/* a */ struct /// doc\n A;")
	require.Empty(t, errs)
	require.Len(t, stream, 3)
	assert.Equal(t, "struct A;", stream.String())
}
