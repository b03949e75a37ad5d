// Package lower maps shape declarations onto Go declarations.
package lower

import (
	"fmt"
	gotoken "go/token"
	"strings"

	"shapegen/internal/errors"
	"shapegen/internal/parser"
	"shapegen/token"
)

var primitives = map[string]string{
	"u8":     "uint8",
	"u16":    "uint16",
	"u32":    "uint32",
	"u64":    "uint64",
	"usize":  "uint",
	"i8":     "int8",
	"i16":    "int16",
	"i32":    "int32",
	"i64":    "int64",
	"isize":  "int",
	"f32":    "float32",
	"f64":    "float64",
	"bool":   "bool",
	"char":   "rune",
	"str":    "string",
	"String": "string",
}

// generic containers by name, with their arity
var containers = map[string]int{
	"Vec":      1,
	"VecDeque": 1,
	"Option":   1,
	"Box":      1,
	"Rc":       1,
	"Arc":      1,
	"HashSet":  1,
	"BTreeSet": 1,
	"HashMap":  2,
	"BTreeMap": 2,
}

// TypeMapper lowers field type streams to Go type expressions.
type TypeMapper struct {
	overrides map[string]string
}

// NewTypeMapper returns a mapper. Overrides are keyed by the type as
// written, or by its last path segment, and win over the built-in table.
func NewTypeMapper(overrides map[string]string) *TypeMapper {
	return &TypeMapper{overrides: overrides}
}

// GoType returns the Go spelling of ty.
func (m *TypeMapper) GoType(ty token.Stream) (string, *errors.CompilerError) {
	if len(ty) == 0 {
		return "", errors.MalformedInput("missing type", token.Span{})
	}
	c := &typeCursor{tokens: ty}
	goType, err := m.lowerType(c)
	if err != nil {
		return "", err
	}
	if !c.atEnd() {
		return "", errors.Unexpected("end of type", c.peek())
	}
	return goType, nil
}

type typeCursor struct {
	tokens token.Stream
	pos    int
}

func (c *typeCursor) atEnd() bool       { return c.pos >= len(c.tokens) }
func (c *typeCursor) peek() token.Token { return c.tokens[c.pos] }

func (c *typeCursor) next() token.Token {
	tok := c.tokens[c.pos]
	c.pos++
	return tok
}

func (c *typeCursor) is(text string) bool {
	return !c.atEnd() && c.peek().Is(text)
}

func (c *typeCursor) endSpan() token.Span {
	last := c.tokens[len(c.tokens)-1].Span
	last.Start = last.End
	return last
}

func (m *TypeMapper) lowerType(c *typeCursor) (string, *errors.CompilerError) {
	if c.atEnd() {
		return "", errors.UnexpectedEnd("type", c.endSpan())
	}

	if c.pos == 0 {
		if override, ok := m.overrides[c.tokens.String()]; ok {
			c.pos = len(c.tokens)
			return override, nil
		}
	}

	tok := c.peek()
	switch {
	case tok.Is("&"), tok.Is("*"):
		c.next()
		if c.is("mut") || c.is("const") {
			c.next()
		}
		elem, err := m.lowerType(c)
		if err != nil {
			return "", err
		}
		return "*" + elem, nil

	case tok.IsGroup(token.Bracket):
		c.next()
		return m.lowerArray(tok)

	case tok.IsGroup(token.Paren):
		c.next()
		if len(tok.Stream) == 0 {
			return "struct{}", nil
		}
		return "", unsupportedType(tok)

	case tok.Kind == token.Ident:
		return m.lowerPath(c)
	}
	return "", errors.Unexpected("type", tok)
}

func (m *TypeMapper) lowerArray(group token.Token) (string, *errors.CompilerError) {
	inner := &typeCursor{tokens: group.Stream}
	if inner.atEnd() {
		return "", errors.UnexpectedEnd("element type", group.CloseSpan())
	}
	elem, err := m.lowerType(inner)
	if err != nil {
		return "", err
	}
	if inner.atEnd() {
		return "[]" + elem, nil
	}
	if !inner.is(";") {
		return "", errors.Unexpected("`;` or `]`", inner.peek())
	}
	inner.next()
	if inner.atEnd() {
		return "", errors.UnexpectedEnd("array length", group.CloseSpan())
	}
	n := inner.next()
	if n.Lit != token.IntLit {
		return "", errors.Unexpected("array length", n)
	}
	if !inner.atEnd() {
		return "", errors.Unexpected("`]`", inner.peek())
	}
	length, perr := parser.ParseUint(n.Text)
	if perr != nil {
		return "", errors.MalformedInput(fmt.Sprintf("invalid array length `%s`", n.Text), n.Span)
	}
	return fmt.Sprintf("[%d]%s", length, elem), nil
}

func (m *TypeMapper) lowerPath(c *typeCursor) (string, *errors.CompilerError) {
	start := c.next()
	last := start
	for c.is("::") {
		c.next()
		if c.atEnd() || c.peek().Kind != token.Ident {
			if c.atEnd() {
				return "", errors.UnexpectedEnd("path segment", c.endSpan())
			}
			return "", errors.Unexpected("path segment", c.peek())
		}
		last = c.next()
	}
	name := last.Text

	var args []string
	if c.is("<") {
		open := c.next()
		for {
			arg, err := m.lowerType(c)
			if err != nil {
				return "", err
			}
			args = append(args, arg)
			if c.is(",") {
				c.next()
				if c.is(">") {
					break
				}
				continue
			}
			break
		}
		if !c.is(">") {
			if c.atEnd() {
				return "", errors.UnexpectedEnd("`>`", c.endSpan())
			}
			return "", errors.Unexpected("`,` or `>`", c.peek())
		}
		c.next()
		if len(args) == 0 {
			return "", errors.Unexpected("type argument", open)
		}
	}

	if override, ok := m.overrides[name]; ok && len(args) == 0 {
		return override, nil
	}
	if goType, ok := primitives[name]; ok {
		if len(args) > 0 {
			return "", errors.MalformedInput(fmt.Sprintf("`%s` does not take type arguments", name), start.Span)
		}
		return goType, nil
	}
	if arity, ok := containers[name]; ok {
		if len(args) != arity {
			return "", errors.MalformedInput(
				fmt.Sprintf("`%s` takes %d type %s, found %d", name, arity, plural(arity, "argument"), len(args)),
				start.Span)
		}
		return container(name, args), nil
	}
	if !gotoken.IsIdentifier(name) {
		return "", errors.MalformedInput(fmt.Sprintf("`%s` is not a valid Go type name", name), last.Span)
	}
	if len(args) > 0 {
		return fmt.Sprintf("%s[%s]", name, strings.Join(args, ", ")), nil
	}
	return name, nil
}

func container(name string, args []string) string {
	switch name {
	case "Vec", "VecDeque":
		return "[]" + args[0]
	case "HashSet", "BTreeSet":
		return fmt.Sprintf("map[%s]struct{}", args[0])
	case "HashMap", "BTreeMap":
		return fmt.Sprintf("map[%s]%s", args[0], args[1])
	default:
		return "*" + args[0]
	}
}

func unsupportedType(tok token.Token) *errors.CompilerError {
	return errors.NewError(errors.ErrorMalformedInput,
		fmt.Sprintf("unsupported type `%s`", tok), tok.Span).
		WithHelp("map it to a Go type in the [types] table of shapegen.toml").
		Build()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
