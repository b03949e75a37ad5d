package parser

import (
	"fmt"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// Parser walks one token stream. It stops at the first error: every
// method is a no-op once err is set, and callers check failed().
type Parser struct {
	tokens  token.Stream
	current int
	end     token.Span // reported when the stream runs out
	opts    Options
	err     *errors.CompilerError
}

func newParser(tokens token.Stream, end token.Span, opts Options) *Parser {
	return &Parser{tokens: tokens, end: end, opts: opts}
}

// endOf returns a zero-width span just past the last token of s.
func endOf(s token.Stream) token.Span {
	if len(s) == 0 {
		return token.Span{}
	}
	last := s[len(s)-1].Span
	return token.Span{File: last.File, Start: last.End, End: last.End}
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

// check reports whether the current token is the identifier or punctuation
// spelled text.
func (p *Parser) check(text string) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Is(text)
}

func (p *Parser) checkKind(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) checkGroup(d token.Delimiter) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().IsGroup(d)
}

func (p *Parser) match(texts ...string) bool {
	for _, text := range texts {
		if p.check(text) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(text string) (token.Token, bool) {
	if p.check(text) {
		return p.advance(), true
	}
	p.errorAtCurrent(fmt.Sprintf("`%s`", text))
	return token.Token{}, false
}

func (p *Parser) consumeGroup(d token.Delimiter) (token.Token, bool) {
	if p.checkGroup(d) {
		return p.advance(), true
	}
	p.errorAtCurrent(fmt.Sprintf("`%s`", d.Open()))
	return token.Token{}, false
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens)
}

func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) fail(err *errors.CompilerError) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Parser) errorAtCurrent(expected string) {
	if p.isAtEnd() {
		p.fail(errors.UnexpectedEnd(expected, p.end))
		return
	}
	p.fail(errors.Unexpected(expected, p.peek()))
}

// expectEnd fails unless every token has been consumed.
func (p *Parser) expectEnd(expected string) {
	if !p.isAtEnd() {
		p.fail(errors.Unexpected(expected, p.peek()))
	}
}

// consumeIdent consumes an identifier and validates it as a user name.
func (p *Parser) consumeIdent(what string, goName bool) (ast.Ident, bool) {
	if !p.checkKind(token.Ident) {
		p.errorAtCurrent(what)
		return ast.Ident{}, false
	}
	ident, err := p.opts.ident(p.advance(), goName)
	if err != nil {
		p.fail(err)
		return ast.Ident{}, false
	}
	return ident, true
}

// segment is one comma-separated part of a group, with the span of the
// token that ended it.
type segment struct {
	tokens token.Stream
	next   token.Span
}

// splitCommas splits a group's contents on top-level commas. With angles
// set, commas between < and > do not split. A trailing comma is allowed;
// an empty segment anywhere else is an error.
func (p *Parser) splitCommas(group token.Token, angles bool, what string) []segment {
	var (
		segments []segment
		start    int
		depth    int
	)
	stream := group.Stream
	for i, tok := range stream {
		if angles && tok.Is("<") {
			depth++
			continue
		}
		if angles && tok.Is(">") {
			if depth == 0 {
				p.fail(errors.MalformedInput("unbalanced `>`", tok.Span))
				return nil
			}
			depth--
			continue
		}
		if depth > 0 || !tok.Is(",") {
			continue
		}
		if i == start {
			p.fail(errors.Unexpected(what, tok))
			return nil
		}
		segments = append(segments, segment{tokens: stream[start:i], next: tok.Span})
		start = i + 1
	}
	if depth > 0 {
		p.fail(errors.UnexpectedEnd("`>`", group.CloseSpan()))
		return nil
	}
	if start < len(stream) {
		segments = append(segments, segment{tokens: stream[start:], next: group.CloseSpan()})
	}
	return segments
}
