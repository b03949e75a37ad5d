package parser

import (
	"fmt"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

func (p *Parser) parseEnum() *ast.Enum {
	start := p.advance() // enum

	name, ok := p.consumeIdent("enum name", true)
	if !ok {
		return nil
	}
	p.rejectGenerics()
	if p.failed() {
		return nil
	}

	body, ok := p.consumeGroup(token.Brace)
	if !ok {
		return nil
	}
	variants := p.parseVariants(body)
	p.expectEnd("end of enum declaration")
	if p.failed() {
		return nil
	}

	return &ast.Enum{
		Span:     start.Span.Cover(body.Span),
		Name:     name,
		Variants: variants,
	}
}

// parseVariants parses `Name` and `Name = <integer>` variants.
// Discriminants are validated here; resolving implicit values and
// detecting duplicates is left to fact extraction.
func (p *Parser) parseVariants(body token.Token) []*ast.Variant {
	segments := p.splitCommas(body, false, "variant")
	variants := make([]*ast.Variant, 0, len(segments))
	seen := make(map[string]bool, len(segments))

	for _, seg := range segments {
		if p.failed() {
			return nil
		}
		first := seg.tokens[0]
		if first.Kind != token.Ident {
			p.fail(errors.Unexpected("variant name", first))
			return nil
		}
		name, err := p.opts.ident(first, false)
		if err != nil {
			p.fail(err)
			return nil
		}
		if seen[name.Value] {
			p.fail(errors.MalformedInput(fmt.Sprintf("variant `%s` is already declared", name.Value), name.Span))
			return nil
		}
		seen[name.Value] = true

		v := &ast.Variant{Span: seg.tokens.Span(), Name: name}
		if len(seg.tokens) > 1 {
			v.Discriminant = p.parseVariantValue(name.Value, seg)
			if p.failed() {
				return nil
			}
		}
		variants = append(variants, v)
	}
	return variants
}

func (p *Parser) parseVariantValue(variant string, seg segment) *ast.IntLit {
	next := seg.tokens[1]
	if next.Kind == token.Group && next.Delim != token.Bracket {
		p.fail(errors.MalformedInput("enum variants with fields are not supported", next.Span))
		return nil
	}
	if !next.Is("=") {
		p.fail(errors.Unexpected("`=` or `,`", next))
		return nil
	}
	expr := seg.tokens[2:]
	if len(expr) == 0 {
		p.fail(errors.UnexpectedEnd("discriminant", seg.next))
		return nil
	}
	lit, err := parseDiscriminant(variant, expr)
	if err != nil {
		p.fail(err)
		return nil
	}
	return lit
}
