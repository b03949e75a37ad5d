package parser

import (
	"testing"
)

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "struct enum const customIdent _under ünïcode"
	expected := []TokenType{STRUCT, ENUM, CONST, IDENTIFIER, IDENTIFIER, IDENTIFIER}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
	}
	if tokens[5].Lexeme != "ünïcode" {
		t.Errorf("expected lexeme %q, got %q", "ünïcode", tokens[5].Lexeme)
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 1_000 0x1F 0o17 0b1010 10u8 0x"
	expectedLexemes := []string{"42", "0", "1_000", "0x1F", "0o17", "0b1010", "10u8", "0x"}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) != len(expectedLexemes)+1 {
		t.Fatalf("expected %d tokens, got %d", len(expectedLexemes)+1, len(tokens))
	}

	for i, exp := range expectedLexemes {
		if tokens[i].Type != NUMBER {
			t.Errorf("token %d: expected NUMBER, got %s", i, tokens[i].Type)
		}
		if tokens[i].Lexeme != exp {
			t.Errorf("token %d: expected lexeme %q, got %q", i, exp, tokens[i].Lexeme)
		}
	}
}

func TestStrings(t *testing.T) {
	input := `"hello" "wo\"rld"`
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Type != STRING || tokens[0].Lexeme != `"hello"` {
		t.Errorf("expected STRING '\"hello\"', got %s %s", tokens[0].Type, tokens[0].Lexeme)
	}
	if tokens[1].Type != STRING || tokens[1].Lexeme != `"wo\"rld"` {
		t.Errorf("expected escaped STRING, got %s %s", tokens[1].Type, tokens[1].Lexeme)
	}
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `(){},.;+-*/!&=<># [ ] :: : ..`
	expected := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		SEMICOLON, PLUS, MINUS, STAR, SLASH, BANG, AMPERSAND, EQUAL,
		LESS, GREATER, POUND, LEFT_BRACKET, RIGHT_BRACKET, DOUBLE_COLON,
		COLON, DOT_DOT,
	}
	expectedLexemes := []string{"(", ")", "{", "}", ",", ".", ";", "+", "-", "*", "/", "!", "&", "=", "<", ">", "#", "[", "]", "::", ":", ".."}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}

	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("expected %s, got %s", exp, tokens[i].Type)
		}
		if tokens[i].Lexeme != expectedLexemes[i] {
			t.Errorf("expected lexeme '%s', got '%s'", expectedLexemes[i], tokens[i].Lexeme)
		}
	}
}

func TestComments(t *testing.T) {
	input := "// comment line\n/// doc comment line\n/* block\ncomment */ x"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Type != COMMENT {
		t.Errorf("expected COMMENT, got %s", tokens[0].Type)
	}
	if tokens[1].Type != DOC_COMMENT {
		t.Errorf("expected DOC_COMMENT, got %s", tokens[1].Type)
	}
	if tokens[2].Type != BLOCK_COMMENT {
		t.Errorf("expected BLOCK_COMMENT, got %s", tokens[2].Type)
	}
	if tokens[3].Position.Line != 4 || tokens[3].Position.Column != 12 {
		t.Errorf("expected x at 4:12, got %d:%d", tokens[3].Position.Line, tokens[3].Position.Column)
	}
}

func TestUnterminatedString(t *testing.T) {
	input := `"unterminated`
	scanner := NewScanner(input)
	_ = scanner.ScanTokens()

	if len(scanner.Errors()) == 0 {
		t.Fatal("expected an unterminated string error, got none")
	}

	assertError(t, scanner.Errors()[0], "unterminated string literal", 1, 1, 0)
}

func TestUnterminatedBlockComment(t *testing.T) {
	input := `/* unterminated comment`
	scanner := NewScanner(input)
	_ = scanner.ScanTokens()

	if len(scanner.Errors()) == 0 {
		t.Fatal("expected an unterminated block comment error, got none")
	}

	assertError(t, scanner.Errors()[0], "unterminated block comment", 1, 1, 0)
}

func TestUnexpectedCharacter(t *testing.T) {
	input := "struct $Foo;"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(scanner.Errors()) != 1 {
		t.Fatalf("expected one error, got %d", len(scanner.Errors()))
	}
	assertError(t, scanner.Errors()[0], `unexpected character '$'`, 1, 8, 7)

	// scanning continues after the bad character
	if tokens[1].Lexeme != "Foo" {
		t.Errorf("expected Foo after error, got %q", tokens[1].Lexeme)
	}
}

func assertError(t *testing.T, got ScanError, wantMessage string, wantLine, wantCol, wantOffset int) {
	t.Helper()
	if got.Message != wantMessage {
		t.Errorf("expected message '%s', got %q", wantMessage, got.Message)
	}
	if got.Position.Line != wantLine || got.Position.Column != wantCol || got.Position.Offset != wantOffset {
		t.Errorf("unexpected position: got line %d, column %d, offset %d",
			got.Position.Line, got.Position.Column, got.Position.Offset)
	}
}

func TestTokenPositions(t *testing.T) {
	input := "struct\nenum 123\n0x1F \"str\""
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []struct {
		typ    TokenType
		lexeme string
		line   int
		column int
	}{
		{STRUCT, "struct", 1, 1},
		{ENUM, "enum", 2, 1},
		{NUMBER, "123", 2, 6},
		{NUMBER, "0x1F", 3, 1},
		{STRING, `"str"`, 3, 6},
	}

	for i, exp := range expected {
		if i >= len(tokens) {
			t.Fatalf("missing token at index %d", i)
		}
		tok := tokens[i]
		if tok.Type != exp.typ {
			t.Errorf("token %d: expected type %s, got %s", i, exp.typ, tok.Type)
		}
		if tok.Lexeme != exp.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, exp.lexeme, tok.Lexeme)
		}
		if tok.Position.Line != exp.line {
			t.Errorf("token %d: expected line %d, got %d", i, exp.line, tok.Position.Line)
		}
		if tok.Position.Column != exp.column {
			t.Errorf("token %d: expected column %d, got %d", i, exp.column, tok.Position.Column)
		}
	}

	for i := 1; i < len(tokens); i++ {
		if tokens[i].Position.Offset <= tokens[i-1].Position.Offset {
			t.Errorf("token %d: expected offset to increase, got %d after %d",
				i, tokens[i].Position.Offset, tokens[i-1].Position.Offset)
		}
	}
}
