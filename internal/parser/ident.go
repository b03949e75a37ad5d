package parser

import (
	"fmt"
	gotoken "go/token"
	"strings"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// DefaultHygienePrefix starts every helper identifier the generator emits.
const DefaultHygienePrefix = "_sg"

// Options control identifier validation.
type Options struct {
	HygienePrefix string
}

func (o Options) prefix() string {
	if o.HygienePrefix == "" {
		return DefaultHygienePrefix
	}
	return o.HygienePrefix
}

// predeclared identifiers of the Go universe scope
var predeclared = map[string]bool{
	"any": true, "bool": true, "byte": true, "comparable": true,
	"complex64": true, "complex128": true, "error": true,
	"float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"true": true, "false": true, "iota": true, "nil": true,
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "make": true,
	"max": true, "min": true, "new": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true,
}

// ident validates tok as a user identifier. Every identifier must be
// spelled like a Go identifier; keywords are allowed for names that are
// case-converted before use. Names that end up verbatim in generated Go
// (type names, bindings) must also avoid Go keywords and predeclared
// identifiers.
func (o Options) ident(tok token.Token, goName bool) (ast.Ident, *errors.CompilerError) {
	name := tok.Text
	if strings.HasPrefix(name, o.prefix()) {
		return ast.Ident{}, errors.NewError(errors.ErrorMalformedInput,
			fmt.Sprintf("identifier `%s` uses the reserved prefix `%s`", name, o.prefix()), tok.Span).
			WithHelp("names starting with the prefix are reserved for generated helpers").
			Build()
	}
	if !gotoken.IsIdentifier(name) && !gotoken.IsKeyword(name) {
		return ast.Ident{}, errors.NewError(errors.ErrorMalformedInput,
			fmt.Sprintf("`%s` is not a valid Go identifier", name), tok.Span).
			WithNote("identifiers may only contain letters, digits and `_`").
			Build()
	}
	if goName && (gotoken.IsKeyword(name) || predeclared[name]) {
		reason := "predeclared in Go"
		if gotoken.IsKeyword(name) {
			reason = "a Go keyword"
		}
		return ast.Ident{}, errors.NewError(errors.ErrorMalformedInput,
			fmt.Sprintf("`%s` cannot be used as a name: it is %s", name, reason), tok.Span).
			WithReplacement("rename it", strings.ToUpper(name[:1])+name[1:]).
			Build()
	}
	return ast.Ident{Span: tok.Span, Value: name}, nil
}
