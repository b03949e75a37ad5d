package macro

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"shapegen/internal/ast"
	"shapegen/internal/emit"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
	"shapegen/internal/lower"
	"shapegen/internal/parser"
	"shapegen/token"
)

// methods added by the Describe derive
var describeMethods = []string{"Describe", "StructName", "FieldCount"}

// Standard derives that enum_ranges! accepts without expanding. Every Go
// integer type already has these properties; String stands in for Debug.
var integerDerives = map[string]bool{
	"Clone": true, "Copy": true, "Debug": true, "Eq": true,
	"Hash": true, "Ord": true, "PartialEq": true, "PartialOrd": true,
}

func renderFailed(span token.Span, err error) *errors.CompilerError {
	return errors.Internal(span, err)
}

// declare lowers a declaration to its Go type.
func declare(c *Context, input token.Stream) ([]emit.Fragment, *errors.CompilerError) {
	c.Parsing()
	shape, err := parser.ParseShape(input, c.ParseOptions())
	if err != nil {
		return nil, err
	}

	c.Extracting()
	switch s := shape.(type) {
	case *ast.Struct:
		sf, err := facts.Struct(s)
		if err != nil {
			return nil, err
		}
		decl, err := c.Types().Struct(sf)
		if err != nil {
			return nil, err
		}
		c.Emitting()
		frag, ferr := c.Emitter().StructDecl(decl)
		if ferr != nil {
			return nil, renderFailed(s.Span, ferr)
		}
		return []emit.Fragment{frag}, nil

	case *ast.Enum:
		ef, err := facts.Enum(s)
		if err != nil {
			return nil, err
		}
		c.Emitting()
		frag, ferr := c.Emitter().EnumDecl(lower.EnumDecl(ef))
		if ferr != nil {
			return nil, renderFailed(s.Span, ferr)
		}
		return []emit.Fragment{frag}, nil
	}
	return nil, errors.Internal(input.Span(), fmt.Sprintf("unexpected shape %T", shape))
}

func deriveDescribe(c *Context, shape ast.Shape, _ ast.Ident) ([]emit.Fragment, *errors.CompilerError) {
	c.Extracting()
	var (
		frag emit.Fragment
		ferr error
	)
	switch s := shape.(type) {
	case *ast.Struct:
		sf, err := facts.Struct(s)
		if err != nil {
			return nil, err
		}
		for _, f := range sf.Fields {
			if slices.Contains(describeMethods, f.GoName) {
				return nil, errors.NewError(errors.ErrorMalformedInput,
					fmt.Sprintf("field `%s` conflicts with the method `%s` added by `Describe`", f.Name, f.GoName), f.Span).
					WithHelp("rename the field").
					Build()
			}
		}
		c.Emitting()
		frag, ferr = c.Emitter().DescribeStruct(sf)

	case *ast.Enum:
		ef, err := facts.Enum(s)
		if err != nil {
			return nil, err
		}
		c.Emitting()
		frag, ferr = c.Emitter().DescribeEnum(ef)

	default:
		return nil, errors.Internal(shape.NodeSpan(), fmt.Sprintf("unexpected shape %T", shape))
	}
	if ferr != nil {
		return nil, renderFailed(shape.NodeSpan(), ferr)
	}
	return []emit.Fragment{frag}, nil
}

func deriveRanges(c *Context, shape ast.Shape, name ast.Ident) ([]emit.Fragment, *errors.CompilerError) {
	e, ok := shape.(*ast.Enum)
	if !ok {
		return nil, errors.NewError(errors.ErrorMalformedInput,
			fmt.Sprintf("`%s` can only be derived for enums", name.Value), name.Span).
			WithNote(fmt.Sprintf("`%s` is a struct", shape.ShapeName().Value)).
			Build()
	}

	c.Extracting()
	ef, err := facts.Enum(e)
	if err != nil {
		return nil, err
	}
	c.Emitting()
	frag, ferr := c.Emitter().Ranges(ef)
	if ferr != nil {
		return nil, renderFailed(e.Span, ferr)
	}
	return []emit.Fragment{frag}, nil
}

// enumRanges expands enum_ranges! { #[derive(..)] Name { A: 0, B: 1..10 } }.
func enumRanges(c *Context, group token.Token) ([]emit.Fragment, *errors.CompilerError) {
	c.Parsing()
	ranged, err := parser.ParseRangedEnum(group, c.ParseOptions())
	if err != nil {
		return nil, err
	}

	c.Extracting()
	rf, err := facts.Ranged(ranged)
	if err != nil {
		return nil, err
	}

	c.Emitting()
	decl, ferr := c.Emitter().EnumDecl(lower.Ranged(rf))
	if ferr != nil {
		return nil, renderFailed(ranged.Span, ferr)
	}
	body, ferr := c.Emitter().RangedEnum(rf)
	if ferr != nil {
		return nil, renderFailed(ranged.Span, ferr)
	}
	frags := []emit.Fragment{decl, body}

	var derives []ast.Ident
	seen := make(map[string]ast.Ident)
	for _, attr := range ranged.Attrs {
		for _, name := range attr.Args {
			if first, ok := seen[name.Value]; ok {
				return nil, repeatedDerive(name, first)
			}
			seen[name.Value] = name
			if !integerDerives[name.Value] {
				derives = append(derives, name)
			}
		}
	}
	if len(derives) == 0 {
		return frags, nil
	}

	shape, err := rangedShape(ranged)
	if err != nil {
		return nil, err
	}
	for _, name := range derives {
		more, err := c.Derive(shape, name)
		if err != nil {
			return nil, err
		}
		frags = append(frags, more...)
	}
	return frags, nil
}

// rangedShape views an enum_ranges! body as a declared enum whose
// discriminants are the range starts.
func rangedShape(r *ast.RangedEnum) (*ast.Enum, *errors.CompilerError) {
	e := &ast.Enum{Span: r.Span, Name: r.Name, Variants: make([]*ast.Variant, 0, len(r.Variants))}
	for _, v := range r.Variants {
		value, err := safecast.Conv[int64](v.Start.Value)
		if err != nil {
			return nil, errors.DiscriminantOverflow(v.Name.Value, v.Start.Span)
		}
		e.Variants = append(e.Variants, &ast.Variant{
			Span:         v.Span,
			Name:         v.Name,
			Discriminant: &ast.IntLit{Span: v.Start.Span, Text: v.Start.Text, Value: value},
		})
	}
	return e, nil
}

// fileWords expands file_words!("a.txt", ...) to an array of the words of
// the named files.
func fileWords(c *Context, group token.Token) (string, *errors.CompilerError) {
	c.Parsing()
	list, err := parser.ParsePathList(group)
	if err != nil {
		return "", err
	}

	c.Extracting()
	words, err := c.Words(list)
	if err != nil {
		return "", err
	}

	c.Emitting()
	return c.Emitter().Words(words), nil
}
