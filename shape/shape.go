// Package shape is the runtime support imported by shapegen output.
package shape

import (
	"fmt"
	"sort"

	"golang.org/x/exp/constraints"
)

type Kind int

const (
	KindUnit Kind = iota
	KindTuple
	KindStruct
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindTuple:
		return "tuple"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field describes one struct field. Name is empty for tuple fields; Type is
// the type as written in the declaration.
type Field struct {
	Name   string
	GoName string
	Type   string
	Index  int
}

type Variant struct {
	Name  string
	Value int64
}

// Descriptor is the value returned by generated Describe methods.
type Descriptor struct {
	Name     string
	Kind     Kind
	Fields   []Field
	Variants []Variant
}

// Describer is implemented by every type with a derived Describe.
type Describer interface {
	Describe() Descriptor
	StructName() string
	FieldCount() int
}

// FieldNames returns the declared field names in order.
func (d Descriptor) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}

// Range covers [Start, End], or [Start, ∞) when Open is set.
type Range[T constraints.Integer] struct {
	Start T
	End   T
	Open  bool
	Name  string
}

func (r Range[T]) Contains(v T) bool {
	return v >= r.Start && (r.Open || v <= r.End)
}

// Lookup returns the index of the range containing v, or -1. ranges must
// be sorted by Start and must not overlap.
func Lookup[T constraints.Integer](ranges []Range[T], v T) int {
	i := sort.Search(len(ranges), func(i int) bool {
		return ranges[i].Start > v
	}) - 1
	if i < 0 || !ranges[i].Contains(v) {
		return -1
	}
	return i
}

// RangeError reports a value that no variant of an enum covers.
type RangeError[T constraints.Integer] struct {
	Type  string
	Value T
}

func (e *RangeError[T]) Error() string {
	return fmt.Sprintf("%d is not a valid %s", e.Value, e.Type)
}

// Unknown formats a value that has no variant name.
func Unknown[T constraints.Integer](typeName string, v T) string {
	return fmt.Sprintf("%s(%d)", typeName, v)
}
