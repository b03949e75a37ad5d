package parser

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"shapegen/internal/errors"
	"shapegen/token"
)

// Read scans source and groups delimited tokens into token trees. Comments
// are dropped. Every scan error and unbalanced delimiter is reported; the
// returned stream is still usable up to the first unbalanced delimiter.
func Read(file, source string) (token.Stream, []*errors.CompilerError) {
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()

	var errs []*errors.CompilerError
	for _, se := range scanner.Errors() {
		errs = append(errs, errors.MalformedInput(se.Message, scanSpan(file, se.Position, se.Length)))
	}

	type frame struct {
		open   Token
		stream token.Stream
	}
	stack := []frame{{}}

	for _, tok := range tokens {
		top := &stack[len(stack)-1]
		switch tok.Type {
		case EOF:
		case COMMENT, DOC_COMMENT, BLOCK_COMMENT:
		case LEFT_PAREN, LEFT_BRACE, LEFT_BRACKET:
			stack = append(stack, frame{open: tok})
		case RIGHT_PAREN, RIGHT_BRACE, RIGHT_BRACKET:
			if len(stack) == 1 {
				errs = append(errs, errors.MalformedInput(
					fmt.Sprintf("unexpected closing delimiter `%s`", tok.Lexeme), tokenSpan(file, tok)))
				continue
			}
			if closerFor(top.open.Type) != tok.Type {
				errs = append(errs, errors.NewError(errors.ErrorMalformedInput,
					fmt.Sprintf("mismatched closing delimiter `%s`", tok.Lexeme), tokenSpan(file, tok)).
					WithNote(fmt.Sprintf("unclosed delimiter `%s` opened at %s", top.open.Lexeme, tokenSpan(file, top.open))).
					Build())
				return stack[0].stream, errs
			}
			open := top.open
			group := token.Token{
				Kind:   token.Group,
				Delim:  delimiterFor(open.Type),
				Stream: top.stream,
				Span: token.Span{
					File:  file,
					Start: position(open.Position),
					End:   position(tok.End()),
				},
			}
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.stream = append(parent.stream, group)
		default:
			top.stream = append(top.stream, convert(file, tok))
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		errs = append(errs, errors.MalformedInput(
			fmt.Sprintf("unclosed delimiter `%s`", open.Lexeme), tokenSpan(file, open)))
	}
	return stack[0].stream, errs
}

func convert(file string, tok Token) token.Token {
	out := token.Token{
		Text: tok.Lexeme,
		Span: tokenSpan(file, tok),
	}
	switch tok.Type {
	case IDENTIFIER, STRUCT, ENUM, CONST:
		out.Kind = token.Ident
		out.Text = norm.NFC.String(tok.Lexeme)
	case NUMBER:
		out.Kind = token.Literal
		out.Lit = token.IntLit
	case STRING:
		out.Kind = token.Literal
		out.Lit = token.StrLit
	default:
		out.Kind = token.Punct
	}
	return out
}

func closerFor(tt TokenType) TokenType {
	switch tt {
	case LEFT_PAREN:
		return RIGHT_PAREN
	case LEFT_BRACE:
		return RIGHT_BRACE
	case LEFT_BRACKET:
		return RIGHT_BRACKET
	}
	return ILLEGAL
}

func delimiterFor(tt TokenType) token.Delimiter {
	switch tt {
	case LEFT_PAREN:
		return token.Paren
	case LEFT_BRACE:
		return token.Brace
	case LEFT_BRACKET:
		return token.Bracket
	}
	return token.NoDelim
}

func position(pos Position) token.Position {
	return token.Position{Offset: pos.Offset, Line: pos.Line, Column: pos.Column}
}

func tokenSpan(file string, tok Token) token.Span {
	return token.Span{File: file, Start: position(tok.Position), End: position(tok.End())}
}

func scanSpan(file string, pos Position, length int) token.Span {
	end := pos
	end.Offset += length
	end.Column += length
	return token.Span{File: file, Start: position(pos), End: position(end)}
}
