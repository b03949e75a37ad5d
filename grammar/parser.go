package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var rangesParser = buildParser()

func buildParser() *participle.Parser[RangedEnum] {
	p, err := participle.Build[RangedEnum](
		participle.Lexer(RangesLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// ParseRanged parses the body of an enum_ranges! invocation. Offsets in the
// returned positions are byte offsets into source, so callers can lay the
// text out at its original offsets and map positions back directly.
func ParseRanged(filename, source string) (*RangedEnum, error) {
	return rangesParser.ParseString(filename, source)
}
