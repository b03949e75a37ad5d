package parser

import (
	"shapegen/internal/ast"
	"shapegen/internal/errors"
)

// ParseResult contains the items of one file and every diagnostic found
// while reading them.
type ParseResult struct {
	Items  []ast.Item
	Errors []*errors.CompilerError
}

// ParseSource reads source into items. Reading errors stop item splitting,
// since token trees are unreliable after an unbalanced delimiter.
func ParseSource(path string, source string, opts Options) *ParseResult {
	stream, errs := Read(path, source)
	if len(errs) > 0 {
		return &ParseResult{Errors: errs}
	}
	items, errs := ReadItems(stream, opts)
	return &ParseResult{Items: items, Errors: errs}
}
