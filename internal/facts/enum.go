package facts

import (
	"math"
	"strconv"

	"github.com/tidwall/btree"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

// Range is the inclusive span of values belonging to one variant. The
// range with the largest start is open-ended.
type Range struct {
	Start int64
	End   int64
	Open  bool
}

type VariantFact struct {
	Name  string
	Value int64
	Range Range
	Span  token.Span
}

type EnumFacts struct {
	Name     string
	Variants []VariantFact // declaration order
	Sorted   []int         // variant indexes by ascending value
}

// Enum resolves discriminants. A variant without an explicit value takes
// the previous variant's value plus one, or zero for the first variant.
// Each range ends just before the nearest larger value of any variant.
func Enum(e *ast.Enum) (*EnumFacts, *errors.CompilerError) {
	facts := &EnumFacts{
		Name:     e.Name.Value,
		Variants: make([]VariantFact, len(e.Variants)),
	}

	var (
		index     btree.Map[int64, int]
		next      int64
		exhausted bool
	)
	for i, v := range e.Variants {
		value := next
		if v.Discriminant != nil {
			value = v.Discriminant.Value
		} else if exhausted {
			return nil, errors.DiscriminantOverflow(v.Name.Value, v.Span)
		}

		if j, ok := index.Get(value); ok {
			return nil, errors.DuplicateDiscriminant(
				v.Name.Value, strconv.FormatInt(value, 10), e.Variants[j].Name.Value, v.Span)
		}
		index.Set(value, i)

		exhausted = value == math.MaxInt64
		if !exhausted {
			next = value + 1
		}
		facts.Variants[i] = VariantFact{Name: v.Name.Value, Value: value, Span: v.Span}
	}

	facts.Sorted = make([]int, 0, len(e.Variants))
	iter := index.Iter()
	for ok := iter.First(); ok; {
		i := iter.Value()
		r := Range{Start: iter.Key()}
		if ok = iter.Next(); ok {
			r.End = iter.Key() - 1
		} else {
			r.End, r.Open = math.MaxInt64, true
		}
		facts.Variants[i].Range = r
		facts.Sorted = append(facts.Sorted, i)
	}
	return facts, nil
}
