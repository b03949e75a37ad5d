package ast

import "shapegen/token"

// Item is one top-level unit of a .shape file.
type Item interface {
	Node
	isItem()
}

func (*DeclItem) isItem()  {}
func (*MacroItem) isItem() {}
func (*ExprItem) isItem()  {}

// Attribute is an outer attribute such as #[derive(Describe, Ranges)].
type Attribute struct {
	Span token.Span
	Name Ident
	Args []Ident
}

// DeclItem is a struct or enum declaration with its attributes. Tokens
// holds the declaration itself, attributes excluded.
type DeclItem struct {
	Span   token.Span
	Attrs  []*Attribute
	Tokens token.Stream
}

// Derives returns the derive names of all derive attributes in order.
func (d *DeclItem) Derives() []Ident {
	var names []Ident
	for _, attr := range d.Attrs {
		if attr.Name.Value == "derive" {
			names = append(names, attr.Args...)
		}
	}
	return names
}

// MacroItem is a macro invocation in item position.
// Example: "enum_ranges! { Small { A: 0, B: 1..4 } }"
type MacroItem struct {
	Span  token.Span
	Name  Ident
	Group token.Token
}

// ExprItem binds the result of an expression macro to a name.
// Example: "const WORDS = file_words!("a.txt");"
type ExprItem struct {
	Span    token.Span
	Binding Ident
	Name    Ident
	Group   token.Token
}

// RangedEnum is the input of enum_ranges!.
// Example: "#[derive(Describe)] LogTen { Zero: 0, Ones: 1..10 }"
type RangedEnum struct {
	Span     token.Span
	Attrs    []*Attribute
	Name     Ident
	Variants []*RangedVariant
}

// RangedVariant covers Start alone, or the half-open range Start..End.
type RangedVariant struct {
	Span  token.Span
	Name  Ident
	Start UintLit
	End   *UintLit
}

// PathList is the input of file_words!.
type PathList struct {
	Span  token.Span
	Paths []StrLit
}
