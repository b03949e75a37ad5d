package facts

import (
	"github.com/tidwall/btree"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/token"
)

type RangedVariantFact struct {
	Name  string
	Start uint64
	End   uint64 // inclusive
	Span  token.Span
}

type RangedFacts struct {
	Name     string
	Variants []RangedVariantFact // declaration order
	Sorted   []int               // variant indexes by ascending start
}

// Ranged checks that the variants of an enum_ranges! body are disjoint. An
// overlap is reported at the later of the two variants.
func Ranged(r *ast.RangedEnum) (*RangedFacts, *errors.CompilerError) {
	facts := &RangedFacts{
		Name:     r.Name.Value,
		Variants: make([]RangedVariantFact, len(r.Variants)),
	}

	var index btree.Map[uint64, int]
	for i, v := range r.Variants {
		fact := RangedVariantFact{Name: v.Name.Value, Start: v.Start.Value, End: v.Start.Value, Span: v.Span}
		if v.End != nil {
			fact.End = v.End.Value - 1
		}

		overlap := -1
		index.Descend(fact.Start, func(_ uint64, j int) bool {
			if facts.Variants[j].End >= fact.Start {
				overlap = j
			}
			return false
		})
		if overlap < 0 {
			index.Ascend(fact.Start, func(start uint64, j int) bool {
				if start <= fact.End {
					overlap = j
				}
				return false
			})
		}
		if overlap >= 0 {
			return nil, errors.OverlappingRange(fact.Name, facts.Variants[overlap].Name, v.Span)
		}

		index.Set(fact.Start, i)
		facts.Variants[i] = fact
	}

	facts.Sorted = make([]int, 0, len(r.Variants))
	index.Scan(func(_ uint64, i int) bool {
		facts.Sorted = append(facts.Sorted, i)
		return true
	})
	return facts, nil
}
