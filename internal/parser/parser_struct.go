package parser

import (
	"fmt"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

func (p *Parser) parseStruct() *ast.Struct {
	start := p.advance() // struct

	name, ok := p.consumeIdent("struct name", true)
	if !ok {
		return nil
	}
	p.rejectGenerics()
	if p.failed() {
		return nil
	}

	s := &ast.Struct{Name: name}
	switch {
	case p.match(";"):
		s.Form = ast.UnitStruct
	case p.checkGroup(token.Paren):
		s.Form = ast.TupleStruct
		s.Fields = p.parseTupleFields(p.advance())
		if p.failed() {
			return nil
		}
		if _, ok := p.consume(";"); !ok {
			return nil
		}
	case p.checkGroup(token.Brace):
		s.Form = ast.NamedStruct
		s.Fields = p.parseNamedFields(p.advance())
	default:
		p.errorAtCurrent("`;`, `(` or `{`")
	}
	p.expectEnd("end of struct declaration")
	if p.failed() {
		return nil
	}

	s.Span = start.Span.Cover(p.previous().Span)
	return s
}

// parseNamedFields parses `name: Type` fields of a braced struct body.
func (p *Parser) parseNamedFields(body token.Token) []*ast.Field {
	segments := p.splitCommas(body, true, "field")
	fields := make([]*ast.Field, 0, len(segments))
	seen := make(map[string]bool, len(segments))

	for _, seg := range segments {
		if p.failed() {
			return nil
		}
		first := seg.tokens[0]
		if first.Kind != token.Ident || len(seg.tokens) < 2 || !seg.tokens[1].Is(":") {
			p.fail(errors.NewError(errors.ErrorMalformedInput,
				fmt.Sprintf("expected `name: Type`, found `%s`", seg.tokens.String()), first.Span).
				WithNote("named and unnamed fields cannot be mixed").
				Build())
			return nil
		}
		name, err := p.opts.ident(first, false)
		if err != nil {
			p.fail(err)
			return nil
		}
		if seen[name.Value] {
			p.fail(errors.MalformedInput(fmt.Sprintf("field `%s` is already declared", name.Value), name.Span))
			return nil
		}
		seen[name.Value] = true

		typ := seg.tokens[2:]
		if len(typ) == 0 {
			p.fail(errors.UnexpectedEnd("field type", seg.next))
			return nil
		}
		fields = append(fields, &ast.Field{
			Span: seg.tokens.Span(),
			Name: &name,
			Type: typ,
		})
	}
	return fields
}

// parseTupleFields parses the bare types of a tuple struct.
func (p *Parser) parseTupleFields(body token.Token) []*ast.Field {
	segments := p.splitCommas(body, true, "field type")
	fields := make([]*ast.Field, 0, len(segments))

	for _, seg := range segments {
		if p.failed() {
			return nil
		}
		for _, tok := range seg.tokens {
			if tok.Is(":") {
				p.fail(errors.NewError(errors.ErrorMalformedInput,
					"unexpected `:` in tuple struct field", tok.Span).
					WithNote("named and unnamed fields cannot be mixed").
					Build())
				return nil
			}
		}
		fields = append(fields, &ast.Field{
			Span: seg.tokens.Span(),
			Type: seg.tokens,
		})
	}
	return fields
}
