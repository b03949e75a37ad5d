// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Ident Kind = iota
	Punct
	Literal
	Group
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "identifier"
	case Punct:
		return "punctuation"
	case Literal:
		return "literal"
	case Group:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

type LitKind int

const (
	NoLit LitKind = iota
	IntLit
	StrLit
)

type Delimiter int

const (
	NoDelim Delimiter = iota
	Paren
	Brace
	Bracket
)

// Open returns the opening delimiter text.
func (d Delimiter) Open() string {
	switch d {
	case Paren:
		return "("
	case Brace:
		return "{"
	case Bracket:
		return "["
	}
	return ""
}

// Close returns the closing delimiter text.
func (d Delimiter) Close() string {
	switch d {
	case Paren:
		return ")"
	case Brace:
		return "}"
	case Bracket:
		return "]"
	}
	return ""
}

type Position struct {
	Offset int // 0-based byte offset
	Line   int // 1-based
	Column int // 1-based, in bytes
}

// Span is a half-open byte range of one source file.
type Span struct {
	File  string
	Start Position
	End   Position
}

func (s Span) IsZero() bool {
	return s.File == "" && s.Start == Position{} && s.End == Position{}
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
}

// Token is one node of a token tree. Group tokens own the tokens between
// their delimiters; their Span covers both delimiters.
type Token struct {
	Kind   Kind
	Text   string
	Lit    LitKind
	Delim  Delimiter
	Span   Span
	Stream Stream
}

// Is reports whether t is the identifier or punctuation spelled text.
func (t Token) Is(text string) bool {
	return (t.Kind == Ident || t.Kind == Punct) && t.Text == text
}

func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == Group && t.Delim == d
}

// OpenSpan returns the span of a group's opening delimiter.
func (t Token) OpenSpan() Span {
	s := t.Span
	s.End = s.Start
	s.End.Offset++
	s.End.Column++
	return s
}

// CloseSpan returns the span of a group's closing delimiter.
func (t Token) CloseSpan() Span {
	s := t.Span
	s.Start = s.End
	s.Start.Offset--
	s.Start.Column--
	return s
}

func (t Token) String() string {
	if t.Kind == Group {
		return t.Delim.Open() + t.Stream.String() + t.Delim.Close()
	}
	return t.Text
}

// Stream is an immutable sequence of token trees.
type Stream []Token

// Span covers every token of the stream. An empty stream has a zero span.
func (s Stream) Span() Span {
	if len(s) == 0 {
		return Span{}
	}
	return s[0].Span.Cover(s[len(s)-1].Span)
}

// String renders the stream back to compact source text.
func (s Stream) String() string {
	var b strings.Builder
	for i, tok := range s {
		if i > 0 && needsSpace(s[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}

func needsSpace(prev, next Token) bool {
	if prev.Kind == Punct {
		switch prev.Text {
		case ",", ";", ":", "=":
			return true
		}
		return false
	}
	if next.Kind == Punct {
		return next.Text == "="
	}
	if next.Kind == Group {
		return next.Delim == Brace
	}
	return prev.Kind != Group
}
