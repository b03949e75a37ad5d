package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type Token struct {
	Type     TokenType
	Lexeme   string
	Position Position
}

// End returns the position just past the token. Tokens never span lines
// except block comments, which the reader discards.
func (t Token) End() Position {
	return Position{
		Line:   t.Position.Line,
		Column: t.Position.Column + len(t.Lexeme),
		Offset: t.Position.Offset + len(t.Lexeme),
	}
}

type Scanner struct {
	source      string
	tokens      []Token
	start       int
	current     int
	line        int
	startLine   int
	startColumn int
	column      int
	errors      []ScanError
}

type ScanError struct {
	Message  string
	Position Position // line, column, offset
	Length   int      // optional: how many characters it covers
}

func NewScanner(source string) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Errors returns the errors collected by ScanTokens.
func (s *Scanner) Errors() []ScanError {
	return s.errors
}

func (s *Scanner) ScanTokens() []Token {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Type: EOF, Position: Position{Line: s.line, Column: s.column, Offset: s.current}})
	return s.tokens
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	// Simple single-character tokens
	case '(':
		s.addToken(LEFT_PAREN)
	case ')':
		s.addToken(RIGHT_PAREN)
	case '{':
		s.addToken(LEFT_BRACE)
	case '}':
		s.addToken(RIGHT_BRACE)
	case '[':
		s.addToken(LEFT_BRACKET)
	case ']':
		s.addToken(RIGHT_BRACKET)
	case ',':
		s.addToken(COMMA)
	case ';':
		s.addToken(SEMICOLON)
	case '#':
		s.addToken(POUND)
	case '=':
		s.addToken(EQUAL)
	case '-':
		s.addToken(MINUS)
	case '!':
		s.addToken(BANG)
	case '&':
		s.addToken(AMPERSAND)
	case '*':
		s.addToken(STAR)
	case '+':
		s.addToken(PLUS)
	case '<':
		s.addToken(LESS)
	case '>':
		s.addToken(GREATER)

	// Operators with potential multi-character variants
	case '.':
		s.scanDotOperator()
	case ':':
		s.scanColonOperator()
	case '/':
		s.scanSlashOperator()

	// Whitespace (ignored)
	case ' ', '\r', '\t':
	case '\n':
		// Handled in advance()

	case '"':
		s.scanString()

	default:
		s.scanDefault(c)
	}
}

func (s *Scanner) scanDotOperator() {
	if s.matchNext('.') {
		s.addToken(DOT_DOT)
	} else {
		s.addToken(DOT)
	}
}

func (s *Scanner) scanColonOperator() {
	if s.matchNext(':') {
		s.addToken(DOUBLE_COLON)
	} else {
		s.addToken(COLON)
	}
}

func (s *Scanner) scanSlashOperator() {
	if s.matchNext('/') {
		s.scanSingleLineComment()
	} else if s.matchNext('*') {
		s.scanBlockComment()
	} else {
		s.addToken(SLASH)
	}
}

func (s *Scanner) scanDefault(c byte) {
	if isDigit(c) {
		s.scanNumber()
		return
	}
	// identifiers may start with any Unicode letter
	s.current--
	s.column--
	r, size := utf8.DecodeRuneInString(s.source[s.current:])
	if r == '_' || unicode.IsLetter(r) {
		s.advanceN(size)
		s.scanIdentifier()
		return
	}
	s.advanceN(size)
	s.reportError(fmt.Sprintf("unexpected character %q", r))
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		s.advance()
	}
}

func (s *Scanner) matchNext(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.advance()
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) addToken(tokenType TokenType) {
	s.tokens = append(s.tokens, Token{
		Type:   tokenType,
		Lexeme: s.source[s.start:s.current],
		Position: Position{
			Line:   s.startLine,
			Column: s.startColumn,
			Offset: s.start,
		},
	})
}

func (s *Scanner) reportError(message string) {
	s.errors = append(s.errors, ScanError{
		Message:  message,
		Position: Position{Line: s.startLine, Column: s.startColumn, Offset: s.start},
		Length:   s.current - s.start,
	})
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

// Helper functions.

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func (s *Scanner) scanIdentifier() {
	for !s.isAtEnd() {
		r, size := utf8.DecodeRuneInString(s.source[s.current:])
		if !isIdentPart(r) {
			break
		}
		s.advanceN(size)
	}
	s.addToken(lookupIdentifier(s.source[s.start:s.current]))
}

// scanNumber consumes digits, base prefixes, underscores and any trailing
// letters. Validation of the literal happens in the parser so that a bad
// literal is reported against the construct it appears in.
func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) || s.peek() == '_' || isASCIILetter(s.peek()) {
		s.advance()
	}
	s.addToken(NUMBER)
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.reportError("unterminated string literal")
			return
		}
		if s.peek() == '\\' && s.peekNext() != 0 {
			s.advance()
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.reportError("unterminated string literal")
		return
	}
	s.advance()
	s.addToken(STRING)
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}

func (s *Scanner) scanSingleLineComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
	tokenType := COMMENT
	if commentText := s.source[s.start:s.current]; len(commentText) >= 3 && commentText[:3] == "///" {
		tokenType = DOC_COMMENT
	}
	s.addToken(tokenType)
}

func (s *Scanner) scanBlockComment() {
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance() // *
			s.advance() // /
			s.addToken(BLOCK_COMMENT)
			return
		}
		s.advance()
	}
	s.reportError("unterminated block comment")
}
