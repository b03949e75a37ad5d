package parser

import (
	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// ParseShape parses one struct or enum declaration. Any input outside the
// declaration grammar fails with a MalformedInput diagnostic at the first
// token that does not fit.
func ParseShape(decl token.Stream, opts Options) (ast.Shape, *errors.CompilerError) {
	p := newParser(decl, endOf(decl), opts)

	var shape ast.Shape
	switch {
	case p.check("struct"):
		if s := p.parseStruct(); s != nil {
			shape = s
		}
	case p.check("enum"):
		if e := p.parseEnum(); e != nil {
			shape = e
		}
	default:
		p.errorAtCurrent("`struct` or `enum`")
	}

	if p.failed() {
		return nil, p.err
	}
	return shape, nil
}

// rejectGenerics fails on a `<` following a declaration name.
func (p *Parser) rejectGenerics() {
	if p.check("<") {
		p.fail(errors.MalformedInput("generic parameters are not supported", p.peek().Span))
	}
}
