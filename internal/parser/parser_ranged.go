package parser

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"shapegen/grammar"
	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// rangedLayout is the text of a group laid out at the group's original
// byte offsets, with gaps filled by spaces. Grammar positions map back to
// source spans through the leaf tokens.
type rangedLayout struct {
	base   int
	text   string
	leaves []token.Span // sorted by start offset
	close  token.Span
}

func layoutGroup(group token.Token) *rangedLayout {
	base := group.Span.Start.Offset + 1
	buf := make([]byte, max(0, group.Span.End.Offset-1-base))
	for i := range buf {
		buf[i] = ' '
	}

	l := &rangedLayout{base: base, close: group.CloseSpan()}
	put := func(text string, span token.Span) {
		copy(buf[span.Start.Offset-base:], text)
		l.leaves = append(l.leaves, span)
	}
	var walk func(token.Stream)
	walk = func(s token.Stream) {
		for _, tok := range s {
			if tok.Kind != token.Group {
				put(tok.Text, tok.Span)
				continue
			}
			put(tok.Delim.Open(), tok.OpenSpan())
			walk(tok.Stream)
			put(tok.Delim.Close(), tok.CloseSpan())
		}
	}
	walk(group.Stream)

	sort.Slice(l.leaves, func(i, j int) bool {
		return l.leaves[i].Start.Offset < l.leaves[j].Start.Offset
	})
	l.text = string(buf)
	return l
}

// span returns the span of the first token starting at or after pos.
func (l *rangedLayout) span(pos lexer.Position) token.Span {
	abs := pos.Offset + l.base
	i := sort.Search(len(l.leaves), func(i int) bool {
		return l.leaves[i].Start.Offset >= abs
	})
	if i == len(l.leaves) {
		return l.close
	}
	return l.leaves[i]
}

// ParseRangedEnum parses the contents of an enum_ranges! group.
func ParseRangedEnum(group token.Token, opts Options) (*ast.RangedEnum, *errors.CompilerError) {
	layout := layoutGroup(group)

	parsed, err := grammar.ParseRanged(group.Span.File, layout.text)
	if err != nil {
		var pe participle.Error
		if stderrors.As(err, &pe) {
			return nil, errors.MalformedInput(pe.Message(), layout.span(pe.Position()))
		}
		return nil, errors.MalformedInput(err.Error(), group.Span)
	}

	p := newParser(nil, group.CloseSpan(), opts)
	ranged := &ast.RangedEnum{
		Span: layout.span(parsed.Pos).Cover(layout.close),
	}

	for _, attr := range parsed.Attrs {
		a, err := convertAttribute(layout, attr)
		if err != nil {
			return nil, err
		}
		ranged.Attrs = append(ranged.Attrs, a)
	}

	name, ok := p.convertIdent(layout, parsed.Name, true)
	if !ok {
		return nil, p.err
	}
	ranged.Name = name

	seen := make(map[string]bool, len(parsed.Variants))
	for _, v := range parsed.Variants {
		variant, err := convertVariant(p, layout, v)
		if err != nil {
			return nil, err
		}
		if seen[variant.Name.Value] {
			return nil, errors.MalformedInput(
				fmt.Sprintf("variant `%s` is already declared", variant.Name.Value), variant.Name.Span)
		}
		seen[variant.Name.Value] = true
		ranged.Variants = append(ranged.Variants, variant)
	}
	return ranged, nil
}

func (p *Parser) convertIdent(l *rangedLayout, id grammar.PosIdent, goName bool) (ast.Ident, bool) {
	tok := token.Token{Kind: token.Ident, Text: id.Value, Span: l.span(id.Pos)}
	ident, err := p.opts.ident(tok, goName)
	if err != nil {
		p.fail(err)
		return ast.Ident{}, false
	}
	return ident, true
}

func convertAttribute(l *rangedLayout, attr *grammar.Attribute) (*ast.Attribute, *errors.CompilerError) {
	name := ast.Ident{Span: l.span(attr.Name.Pos), Value: attr.Name.Value}
	if name.Value != "derive" {
		return nil, errors.UnknownMacro("attribute", name.Value, name.Span, []string{"derive"})
	}
	a := &ast.Attribute{
		Span: l.span(attr.Pos),
		Name: name,
	}
	for _, arg := range attr.Args {
		a.Args = append(a.Args, ast.Ident{Span: l.span(arg.Pos), Value: arg.Value})
	}
	return a, nil
}

func convertVariant(p *Parser, l *rangedLayout, v *grammar.RangedVariant) (*ast.RangedVariant, *errors.CompilerError) {
	name, ok := p.convertIdent(l, v.Name, false)
	if !ok {
		return nil, p.err
	}

	start, err := convertBound(name.Value, l, v.Start)
	if err != nil {
		return nil, err
	}
	variant := &ast.RangedVariant{
		Span:  name.Span.Cover(start.Span),
		Name:  name,
		Start: start,
	}
	if v.End == nil {
		return variant, nil
	}

	end, err := convertBound(name.Value, l, *v.End)
	if err != nil {
		return nil, err
	}
	variant.End = &end
	variant.Span = variant.Span.Cover(end.Span)
	if start.Value >= end.Value {
		return nil, errors.NewError(errors.ErrorMalformedInput,
			fmt.Sprintf("range `%s..%s` of variant `%s` is empty", start.Text, end.Text, name.Value),
			start.Span.Cover(end.Span)).
			WithHelp("the upper bound is exclusive and must be greater than the lower bound").
			Build()
	}
	return variant, nil
}

func convertBound(variant string, l *rangedLayout, lit grammar.Integer) (ast.UintLit, *errors.CompilerError) {
	span := l.span(lit.Pos)
	v, err := ParseUint(lit.Text)
	if err != nil {
		if isRangeErr(err) {
			return ast.UintLit{}, errors.DiscriminantOverflow(variant, span)
		}
		return ast.UintLit{}, errors.MalformedInput(fmt.Sprintf("invalid integer literal `%s`", lit.Text), span)
	}
	return ast.UintLit{Span: span, Text: lit.Text, Value: v}, nil
}
