package parser

import (
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

var intSuffixes = []string{
	"i128", "u128", "isize", "usize",
	"i64", "u64", "i32", "u32", "i16", "u16", "i8", "u8",
}

// ParseUint parses an integer literal: decimal, 0x, 0o or 0b, with `_`
// separators and an optional integer type suffix. Failures are
// *strconv.NumError values wrapping strconv.ErrSyntax or strconv.ErrRange.
func ParseUint(text string) (uint64, error) {
	digits, base := text, 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'x', 'X':
			digits, base = digits[2:], 16
		case 'o', 'O':
			digits, base = digits[2:], 8
		case 'b', 'B':
			digits, base = digits[2:], 2
		}
	}
	if base != 16 {
		for _, suffix := range intSuffixes {
			if trimmed, ok := strings.CutSuffix(digits, suffix); ok && trimmed != "" {
				digits = trimmed
				break
			}
		}
	}
	digits = strings.ReplaceAll(digits, "_", "")
	if digits == "" {
		return 0, &strconv.NumError{Func: "ParseUint", Num: text, Err: strconv.ErrSyntax}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, &strconv.NumError{Func: "ParseUint", Num: text, Err: err.(*strconv.NumError).Err}
	}
	return v, nil
}

// ParseInt parses a literal as ParseUint does and applies the sign.
func ParseInt(text string, negative bool) (int64, error) {
	u, err := ParseUint(text)
	if err != nil {
		return 0, err
	}
	if !negative {
		v, err := safecast.Conv[int64](u)
		if err != nil {
			return 0, &strconv.NumError{Func: "ParseInt", Num: text, Err: strconv.ErrRange}
		}
		return v, nil
	}
	switch {
	case u == 1<<63:
		return math.MinInt64, nil
	case u > 1<<63:
		return 0, &strconv.NumError{Func: "ParseInt", Num: "-" + text, Err: strconv.ErrRange}
	}
	return -int64(u), nil
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// parseDiscriminant accepts an optionally negated integer literal and
// nothing else.
func parseDiscriminant(variant string, expr token.Stream) (*ast.IntLit, *errors.CompilerError) {
	toks := expr
	negative := false
	if toks[0].Is("-") {
		negative = true
		toks = toks[1:]
	}
	if len(toks) != 1 || toks[0].Kind != token.Literal || toks[0].Lit != token.IntLit {
		return nil, errors.UnsupportedDiscriminant(expr)
	}
	v, err := ParseInt(toks[0].Text, negative)
	if err != nil {
		if isRangeErr(err) {
			return nil, errors.DiscriminantOverflow(variant, expr.Span())
		}
		return nil, errors.UnsupportedDiscriminant(expr)
	}
	text := toks[0].Text
	if negative {
		text = "-" + text
	}
	return &ast.IntLit{Span: expr.Span(), Text: text, Value: v}, nil
}

// parseStrLit resolves the quotes and escapes of a string literal token.
func parseStrLit(tok token.Token) (ast.StrLit, *errors.CompilerError) {
	if tok.Kind != token.Literal || tok.Lit != token.StrLit {
		return ast.StrLit{}, errors.Unexpected("string literal", tok)
	}
	value, err := strconv.Unquote(tok.Text)
	if err != nil {
		return ast.StrLit{}, errors.MalformedInput("invalid escape in string literal", tok.Span)
	}
	return ast.StrLit{Span: tok.Span, Value: value}, nil
}

// ParsePathList parses the contents of a file_words! group: one or more
// comma-separated string literals.
func ParsePathList(group token.Token) (*ast.PathList, *errors.CompilerError) {
	p := newParser(nil, group.CloseSpan(), Options{})
	segments := p.splitCommas(group, false, "string literal")
	if p.failed() {
		return nil, p.err
	}
	if len(segments) == 0 {
		return nil, errors.UnexpectedEnd("string literal", group.CloseSpan())
	}

	list := &ast.PathList{Span: group.Span}
	for _, seg := range segments {
		lit, err := parseStrLit(seg.tokens[0])
		if err != nil {
			return nil, err
		}
		if len(seg.tokens) > 1 {
			return nil, errors.Unexpected("`,`", seg.tokens[1])
		}
		list.Paths = append(list.Paths, lit)
	}
	return list, nil
}
