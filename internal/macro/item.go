package macro

import (
	"context"

	"shapegen/internal/ast"
)

// Invocations lists the invocations an item carries, in expansion order.
// The first invocation of a declaration is the declaration itself.
func Invocations(item ast.Item) []Invocation {
	switch it := item.(type) {
	case *ast.DeclItem:
		invs := []Invocation{{Kind: Declare, Input: it.Tokens}}
		seen := make(map[string]ast.Ident)
		for _, name := range it.Derives() {
			inv := Invocation{Kind: Derive, Name: name, Input: it.Tokens}
			if first, ok := seen[name.Value]; ok {
				inv.Repeats = &first
			} else {
				seen[name.Value] = name
			}
			invs = append(invs, inv)
		}
		return invs
	case *ast.MacroItem:
		return []Invocation{{Kind: ItemMacro, Name: it.Name, Group: it.Group}}
	case *ast.ExprItem:
		return []Invocation{{Kind: ExprMacro, Name: it.Name, Group: it.Group, Binding: it.Binding}}
	}
	return nil
}

// ExpandItem expands the invocations of item in order. When a declaration
// fails to lower, its derives are skipped and only that failure is
// reported.
func (x *Expander) ExpandItem(ctx context.Context, item ast.Item) []Output {
	invs := Invocations(item)
	outs := make([]Output, 0, len(invs))
	for _, inv := range invs {
		out := x.Expand(ctx, inv)
		outs = append(outs, out)
		if inv.Kind == Declare && out.Err != nil {
			break
		}
	}
	return outs
}
