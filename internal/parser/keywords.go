package parser

var KEYWORDS = map[string]TokenType{
	"struct": STRUCT,
	"enum":   ENUM,
	"const":  CONST,
}
