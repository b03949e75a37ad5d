// Package facts derives the values code emission needs from parsed shapes.
package facts

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

type FieldFact struct {
	Name     string // empty for tuple fields
	GoName   string
	Type     token.Stream
	TypeText string // as written in the declaration
	Index    int
	Span     token.Span
}

type StructFacts struct {
	Name       string
	Form       ast.StructForm
	FieldCount int
	Fields     []FieldFact
}

// GoFieldName returns the Go name of a struct field. Tuple fields are named
// by position.
func GoFieldName(f *ast.Field, index int) string {
	if f.Name == nil {
		return fmt.Sprintf("F%d", index)
	}
	return strcase.ToCamel(f.Name.Value)
}

// Struct extracts field facts. It fails only when two fields map to the
// same Go name.
func Struct(s *ast.Struct) (*StructFacts, *errors.CompilerError) {
	facts := &StructFacts{
		Name:       s.Name.Value,
		Form:       s.Form,
		FieldCount: len(s.Fields),
		Fields:     make([]FieldFact, 0, len(s.Fields)),
	}

	byGoName := make(map[string]string, len(s.Fields))
	for i, f := range s.Fields {
		fact := FieldFact{
			GoName:   GoFieldName(f, i),
			Type:     f.Type,
			TypeText: f.Type.String(),
			Index:    i,
			Span:     f.Span,
		}
		if f.Name != nil {
			fact.Name = f.Name.Value
		}
		if fact.GoName == "" {
			return nil, errors.MalformedInput(fmt.Sprintf("field `%s` has no Go name", fact.Name), f.Span)
		}
		if other, ok := byGoName[fact.GoName]; ok {
			return nil, errors.NewError(errors.ErrorMalformedInput,
				fmt.Sprintf("field `%s` collides with field `%s`", fact.Name, other), f.Span).
				WithNote(fmt.Sprintf("both become the Go field `%s`", fact.GoName)).
				Build()
		}
		byGoName[fact.GoName] = fact.Name
		facts.Fields = append(facts.Fields, fact)
	}
	return facts, nil
}
