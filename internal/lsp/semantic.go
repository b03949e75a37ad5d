package lsp

import (
	"shapegen/internal/errors"
	"shapegen/internal/parser"
	"shapegen/token"
)

// SemanticTokenTypes is the legend advertised to clients. Token type
// indexes refer to this slice.
var SemanticTokenTypes = []string{
	"type",
	"property",
	"enumMember",
	"macro",
	"decorator",
	"keyword",
	"variable",
	"number",
	"string",
}

// SemanticTokenModifiers is the modifier legend. Modifier bits refer to
// this slice.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

const (
	modDeclaration = 1 << iota
	modReadonly
)

var keywords = map[string]bool{
	"struct": true,
	"enum":   true,
	"const":  true,
	"pub":    true,
	"mut":    true,
}

// SemanticToken is one classified token. Line and StartChar are 0-based;
// StartChar and Length count UTF-16 code units.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// bodyKind tells the walker what the enclosing group declares.
type bodyKind int

const (
	bodyOther bodyKind = iota
	bodyStruct
	bodyEnum
	bodyAttr
	bodyDerive
)

type tokenCollector struct {
	lines  *lineIndex
	tokens []SemanticToken
}

// collectSemanticTokens classifies the tokens of a .shape document. It
// works on the token trees alone so a document with parse errors still
// gets highlighting up to the first unbalanced delimiter.
func collectSemanticTokens(path, text string) ([]SemanticToken, []*errors.CompilerError) {
	stream, errs := parser.Read(path, text)
	c := &tokenCollector{lines: newLineIndex(text)}
	c.walk(stream, bodyOther)
	return c.tokens, errs
}

func (c *tokenCollector) walk(s token.Stream, body bodyKind) {
	for i, tok := range s {
		var prev, next *token.Token
		if i > 0 {
			prev = &s[i-1]
		}
		if i+1 < len(s) {
			next = &s[i+1]
		}

		switch tok.Kind {
		case token.Group:
			c.walk(tok.Stream, childBody(s, i, body))
		case token.Literal:
			if tok.Lit == token.StrLit {
				c.add(tok.Span, "string", 0)
			} else {
				c.add(tok.Span, "number", 0)
			}
		case token.Ident:
			c.ident(tok, prev, next, body, segmentStart(s, i))
		}
	}
}

func (c *tokenCollector) ident(tok token.Token, prev, next *token.Token, body bodyKind, start bool) {
	switch {
	case keywords[tok.Text]:
		c.add(tok.Span, "keyword", 0)
	case next != nil && next.Is("!"):
		c.add(tok.Span, "macro", 0)
	case prev != nil && (prev.Is("struct") || prev.Is("enum")):
		c.add(tok.Span, "type", modDeclaration)
	case prev != nil && prev.Is("const"):
		c.add(tok.Span, "variable", modDeclaration|modReadonly)
	case body == bodyAttr:
		c.add(tok.Span, "decorator", 0)
	case body == bodyDerive:
		c.add(tok.Span, "macro", 0)
	case body == bodyStruct && start && next != nil && next.Is(":"):
		c.add(tok.Span, "property", modDeclaration)
	case body == bodyEnum && start:
		c.add(tok.Span, "enumMember", modDeclaration)
	case next != nil && next.IsGroup(token.Brace):
		// enum_ranges! { Name { ... } }
		c.add(tok.Span, "type", modDeclaration)
	default:
		c.add(tok.Span, "type", 0)
	}
}

// childBody decides what the group at s[i] declares from the tokens
// leading up to it.
func childBody(s token.Stream, i int, body bodyKind) bodyKind {
	group := s[i]
	at := func(j int) *token.Token {
		if j < 0 {
			return nil
		}
		return &s[j]
	}
	prev, prev2 := at(i-1), at(i-2)

	switch group.Delim {
	case token.Bracket:
		if prev != nil && prev.Is("#") {
			return bodyAttr
		}
	case token.Paren:
		if body == bodyAttr && prev != nil && prev.Is("derive") {
			return bodyDerive
		}
	case token.Brace:
		if prev == nil || prev.Kind != token.Ident {
			return bodyOther
		}
		switch {
		case prev2 != nil && prev2.Is("struct"):
			return bodyStruct
		case prev2 != nil && prev2.Is("enum"):
			return bodyEnum
		}
		// the inner group of enum_ranges!
		if body == bodyOther && !keywords[prev.Text] {
			return bodyEnum
		}
	}
	return bodyOther
}

func segmentStart(s token.Stream, i int) bool {
	if i == 0 {
		return true
	}
	prev := s[i-1]
	return prev.Is(",") || prev.Is("pub") || prev.IsGroup(token.Bracket)
}

func (c *tokenCollector) add(span token.Span, tokenType string, modifiers int) {
	start := c.lines.position(span.Start.Offset)
	end := c.lines.position(span.End.Offset)
	if end.Line != start.Line || end.Character <= start.Character {
		return
	}
	c.tokens = append(c.tokens, SemanticToken{
		Line:           start.Line,
		StartChar:      start.Character,
		Length:         end.Character - start.Character,
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	})
}

// encodeSemanticTokens applies the LSP relative encoding.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		deltaStart := tok.StartChar
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		}
		data = append(data, deltaLine, deltaStart, tok.Length, toUInteger(tok.TokenType), toUInteger(tok.TokenModifiers))
		prevLine = tok.Line
		prevStart = tok.StartChar
	}
	return data
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
