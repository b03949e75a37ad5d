package ast

import "shapegen/token"

// Ident represents any identifier like type, field and variant names.
// Value is NFC-normalized.
// Example: "Point", "user_name", "Low"
type Ident struct {
	Span  token.Span
	Value string
}

// IntLit is a signed integer literal used as an enum discriminant.
// Example: "10", "-0x1F", "1_000"
type IntLit struct {
	Span  token.Span
	Text  string
	Value int64
}

// UintLit is an unsigned integer literal used as a range bound.
type UintLit struct {
	Span  token.Span
	Text  string
	Value uint64
}

// StrLit is a string literal with its quotes removed and escapes resolved.
type StrLit struct {
	Span  token.Span
	Value string
}

// Shape is a parsed declaration: either *Struct or *Enum.
type Shape interface {
	Node
	ShapeName() Ident
	isShape()
}

func (*Struct) isShape() {}
func (*Enum) isShape()   {}

func (s *Struct) ShapeName() Ident { return s.Name }
func (e *Enum) ShapeName() Ident   { return e.Name }

type StructForm int

const (
	UnitStruct StructForm = iota
	TupleStruct
	NamedStruct
)

func (f StructForm) String() string {
	switch f {
	case UnitStruct:
		return "unit"
	case TupleStruct:
		return "tuple"
	case NamedStruct:
		return "named"
	}
	return "StructForm(?)"
}

// Struct represents a struct declaration in one of its three forms.
// Example: "struct Unit;", "struct Point(i32, i32);", "struct User { name: String }"
type Struct struct {
	Span   token.Span
	Name   Ident
	Form   StructForm
	Fields []*Field
}

// Field is one struct field. Name is nil for tuple fields. Type is kept as
// the raw token sub-stream.
type Field struct {
	Span token.Span
	Name *Ident
	Type token.Stream
}

// Enum represents a fieldless enum declaration.
// Example: "enum Level { Low, Mid = 10, High }"
type Enum struct {
	Span     token.Span
	Name     Ident
	Variants []*Variant
}

type Variant struct {
	Span         token.Span
	Name         Ident
	Discriminant *IntLit
}
