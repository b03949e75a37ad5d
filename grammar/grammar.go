package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

// RangedEnum is the body of an enum_ranges! invocation.
type RangedEnum struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Attrs    []*Attribute     `@@*`
	Name     PosIdent         `@@ "{"`
	Variants []*RangedVariant `[ @@ { "," @@ } [ "," ] ] "}"`
}

type Attribute struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent   `"#" "[" @@`
	Args   []PosIdent `[ "(" [ @@ { "," @@ } [ "," ] ] ")" ] "]"`
}

type RangedVariant struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   PosIdent `@@ ":"`
	Start  Integer  `@@`
	End    *Integer `[ ".." @@ ]`
}

type Integer struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Text   string `@Integer`
}
