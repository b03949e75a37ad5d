package parser

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Keywords
	STRUCT
	ENUM
	CONST

	// Operators
	EQUAL
	MINUS
	BANG
	AMPERSAND
	STAR
	PLUS
	SLASH
	LESS
	GREATER

	// Separators
	COMMA
	DOT
	DOT_DOT
	SEMICOLON
	COLON
	DOUBLE_COLON

	// Brackets
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	POUND

	// Comments
	COMMENT
	DOC_COMMENT
	BLOCK_COMMENT
)

var tokenTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
	STRUCT:        "STRUCT",
	ENUM:          "ENUM",
	CONST:         "CONST",
	EQUAL:         "EQUAL",
	MINUS:         "MINUS",
	BANG:          "BANG",
	AMPERSAND:     "AMPERSAND",
	STAR:          "STAR",
	PLUS:          "PLUS",
	SLASH:         "SLASH",
	LESS:          "LESS",
	GREATER:       "GREATER",
	COMMA:         "COMMA",
	DOT:           "DOT",
	DOT_DOT:       "DOT_DOT",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	DOUBLE_COLON:  "DOUBLE_COLON",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	POUND:         "POUND",
	COMMENT:       "COMMENT",
	DOC_COMMENT:   "DOC_COMMENT",
	BLOCK_COMMENT: "BLOCK_COMMENT",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "TokenType(?)"
}

type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based absolute index in input
}
