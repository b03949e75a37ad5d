package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var RangesLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// Identifiers may start with any Unicode letter
		{"Ident", `[\p{L}_][\p{L}\p{N}\p{Mn}_]*`, nil},

		// Integer literals with optional base prefix and separators
		{"Integer", `0[xX][0-9a-fA-F_]+|0[oO][0-7_]+|0[bB][01_]+|[0-9][0-9_]*`, nil},

		// Range operator before single-character punctuation
		{"Punctuation", `\.\.|[{}[\]#:,()]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
