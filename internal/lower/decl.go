package lower

import (
	"strconv"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
)

// Field is a Go struct field. Tag is empty for tuple fields.
type Field struct {
	Name string
	Type string
	Tag  string
}

type Struct struct {
	Name   string
	Fields []Field
}

type Const struct {
	Name  string
	Value string
}

// Enum is a Go integer type with one constant per variant.
type Enum struct {
	Name       string
	Underlying string
	Consts     []Const
}

// ConstName returns the Go constant name of an enum variant.
func ConstName(enum, variant string) string {
	return enum + variant
}

// Struct lowers the field types of s.
func (m *TypeMapper) Struct(s *facts.StructFacts) (*Struct, *errors.CompilerError) {
	out := &Struct{Name: s.Name, Fields: make([]Field, 0, len(s.Fields))}
	for _, f := range s.Fields {
		goType, err := m.GoType(f.Type)
		if err != nil {
			return nil, err
		}
		field := Field{Name: f.GoName, Type: goType}
		if s.Form == ast.NamedStruct {
			field.Tag = "`shape:" + strconv.Quote(f.Name) + "`"
		}
		out.Fields = append(out.Fields, field)
	}
	return out, nil
}

// EnumDecl lowers a declared enum to an int64 type.
func EnumDecl(e *facts.EnumFacts) *Enum {
	out := &Enum{Name: e.Name, Underlying: "int64", Consts: make([]Const, len(e.Variants))}
	for i, v := range e.Variants {
		out.Consts[i] = Const{Name: ConstName(e.Name, v.Name), Value: strconv.FormatInt(v.Value, 10)}
	}
	return out
}

// Ranged lowers an enum_ranges! body to a uint64 type. Each constant takes
// the start of its range.
func Ranged(r *facts.RangedFacts) *Enum {
	out := &Enum{Name: r.Name, Underlying: "uint64", Consts: make([]Const, len(r.Variants))}
	for i, v := range r.Variants {
		out.Consts[i] = Const{Name: ConstName(r.Name, v.Name), Value: strconv.FormatUint(v.Start, 10)}
	}
	return out
}
