package parser

import (
	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// ReadItems splits a file's token trees into items. A malformed item is
// reported and skipped; reading resumes at the next item boundary.
func ReadItems(stream token.Stream, opts Options) ([]ast.Item, []*errors.CompilerError) {
	var (
		items []ast.Item
		errs  []*errors.CompilerError
	)
	p := newParser(stream, endOf(stream), opts)
	for !p.isAtEnd() {
		start := p.current
		item := p.parseItem()
		if p.failed() {
			errs = append(errs, p.err)
			p.err = nil
			p.synchronize(start)
			continue
		}
		items = append(items, item)
	}
	return items, errs
}

func (p *Parser) parseItem() ast.Item {
	start := p.current

	var attrs []*ast.Attribute
	for p.check("#") {
		attr := p.parseAttribute()
		if p.failed() {
			return nil
		}
		attrs = append(attrs, attr)
	}

	switch {
	case p.check("struct"), p.check("enum"):
		return p.parseDeclItem(start, attrs)
	case p.check("const"):
		if len(attrs) > 0 {
			p.fail(errors.MalformedInput("attributes are not allowed on macro invocations", attrs[0].Span))
			return nil
		}
		return p.parseExprItem()
	case p.checkKind(token.Ident) && p.current+1 < len(p.tokens) && p.tokens[p.current+1].Is("!"):
		if len(attrs) > 0 {
			p.fail(errors.MalformedInput("attributes are not allowed on macro invocations", attrs[0].Span))
			return nil
		}
		return p.parseMacroItem()
	case p.check("pub"):
		p.fail(errors.NewError(errors.ErrorMalformedInput, "visibility modifiers are not supported", p.peek().Span).
			WithHelp("every generated type is exported when its name is capitalized").
			Build())
		return nil
	}
	p.errorAtCurrent("item")
	return nil
}

// parseAttribute parses #[name] and #[name(A, B)]. Only derive is known.
func (p *Parser) parseAttribute() *ast.Attribute {
	pound := p.advance()
	body, ok := p.consumeGroup(token.Bracket)
	if !ok {
		return nil
	}

	inner := newParser(body.Stream, body.CloseSpan(), p.opts)
	if !inner.checkKind(token.Ident) {
		inner.errorAtCurrent("attribute name")
		p.fail(inner.err)
		return nil
	}
	nameTok := inner.advance()
	name := ast.Ident{Span: nameTok.Span, Value: nameTok.Text}
	if name.Value != "derive" {
		p.fail(errors.UnknownMacro("attribute", name.Value, name.Span, []string{"derive"}))
		return nil
	}

	attr := &ast.Attribute{Span: pound.Span.Cover(body.Span), Name: name}
	args, ok := inner.consumeGroup(token.Paren)
	if !ok {
		p.fail(inner.err)
		return nil
	}
	inner.expectEnd("`]`")
	for _, seg := range inner.splitCommas(args, false, "derive name") {
		if inner.failed() {
			break
		}
		if seg.tokens[0].Kind != token.Ident {
			inner.fail(errors.Unexpected("derive name", seg.tokens[0]))
			break
		}
		if len(seg.tokens) > 1 {
			inner.fail(errors.Unexpected("`,`", seg.tokens[1]))
			break
		}
		attr.Args = append(attr.Args, ast.Ident{Span: seg.tokens[0].Span, Value: seg.tokens[0].Text})
	}
	if inner.failed() {
		p.fail(inner.err)
		return nil
	}
	return attr
}

// parseDeclItem collects a declaration up to and including its closing `;`
// or brace group. The declaration itself is parsed later by ParseShape.
func (p *Parser) parseDeclItem(start int, attrs []*ast.Attribute) *ast.DeclItem {
	declStart := p.current
	for !p.isAtEnd() {
		tok := p.advance()
		if tok.Is(";") || tok.IsGroup(token.Brace) {
			decl := p.tokens[declStart:p.current]
			return &ast.DeclItem{
				Span:   p.tokens[start].Span.Cover(tok.Span),
				Attrs:  attrs,
				Tokens: decl,
			}
		}
		if tok.Is("#") || (p.current > declStart+1 && (tok.Is("struct") || tok.Is("enum"))) {
			p.current--
			break
		}
	}
	p.errorAtCurrent("`;` or `{`")
	return nil
}

// parseMacroItem parses name!(...); name![...]; and name! {...}.
func (p *Parser) parseMacroItem() *ast.MacroItem {
	nameTok := p.advance()
	p.advance() // !
	if !p.checkKind(token.Group) {
		p.errorAtCurrent("macro arguments")
		return nil
	}
	group := p.advance()
	end := group.Span
	if group.Delim != token.Brace {
		semi, ok := p.consume(";")
		if !ok {
			return nil
		}
		end = semi.Span
	}
	return &ast.MacroItem{
		Span:  nameTok.Span.Cover(end),
		Name:  ast.Ident{Span: nameTok.Span, Value: nameTok.Text},
		Group: group,
	}
}

// parseExprItem parses const NAME = name!(...);
func (p *Parser) parseExprItem() *ast.ExprItem {
	start := p.advance() // const
	binding, ok := p.consumeIdent("constant name", true)
	if !ok {
		return nil
	}
	if _, ok := p.consume("="); !ok {
		return nil
	}
	if !p.checkKind(token.Ident) {
		p.errorAtCurrent("macro invocation")
		return nil
	}
	nameTok := p.advance()
	if _, ok := p.consume("!"); !ok {
		return nil
	}
	if !p.checkKind(token.Group) {
		p.errorAtCurrent("macro arguments")
		return nil
	}
	group := p.advance()
	semi, ok := p.consume(";")
	if !ok {
		return nil
	}
	return &ast.ExprItem{
		Span:    start.Span.Cover(semi.Span),
		Binding: binding,
		Name:    ast.Ident{Span: nameTok.Span, Value: nameTok.Text},
		Group:   group,
	}
}

// synchronize skips to the next likely item start. It always makes
// progress past start.
func (p *Parser) synchronize(start int) {
	if p.current == start && !p.isAtEnd() {
		p.advance()
	}
	for !p.isAtEnd() {
		if prev := p.previous(); prev.Is(";") || prev.IsGroup(token.Brace) {
			return
		}
		switch {
		case p.check("#"), p.check("struct"), p.check("enum"), p.check("const"):
			return
		}
		p.advance()
	}
}
