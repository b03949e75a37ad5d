// Package emit renders extracted facts as Go source.
package emit

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"shapegen/internal/ast"
	"shapegen/internal/errors"
	"shapegen/internal/facts"
	"shapegen/internal/lower"
)

// Header is the first line of every generated file.
const Header = "// Code generated by shapegen. DO NOT EDIT."

type Options struct {
	Prefix      string
	RuntimePath string
}

// Fragment is a piece of top-level Go source.
type Fragment struct {
	Code string
	// Runtime is set when Code refers to the runtime package.
	Runtime bool
}

type Emitter struct {
	namer       Namer
	runtimePath string
}

func New(opts Options) *Emitter {
	if opts.RuntimePath == "" {
		opts.RuntimePath = DefaultRuntimePath
	}
	return &Emitter{namer: Namer{Prefix: opts.Prefix}, runtimePath: opts.RuntimePath}
}

func (e *Emitter) Namer() Namer {
	return e.namer
}

func (e *Emitter) render(name string, data any, runtime bool) (Fragment, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return Fragment{}, fmt.Errorf("render %s: %w", name, err)
	}
	return Fragment{Code: buf.String(), Runtime: runtime}, nil
}

// StructDecl renders the Go type declaration of a struct.
func (e *Emitter) StructDecl(s *lower.Struct) (Fragment, error) {
	return e.render("struct", s, false)
}

// EnumDecl renders an integer type and its constants.
func (e *Emitter) EnumDecl(en *lower.Enum) (Fragment, error) {
	return e.render("enum", en, false)
}

type describeData struct {
	N          Namer
	Name       string
	Kind       string
	FieldCount int
	Fields     []facts.FieldFact
	Variants   []facts.VariantFact
}

func structKind(form ast.StructForm) string {
	switch form {
	case ast.UnitStruct:
		return "KindUnit"
	case ast.TupleStruct:
		return "KindTuple"
	default:
		return "KindStruct"
	}
}

// DescribeStruct renders Describe, StructName and FieldCount for a struct.
func (e *Emitter) DescribeStruct(f *facts.StructFacts) (Fragment, error) {
	return e.render("describe", describeData{
		N:          e.namer,
		Name:       f.Name,
		Kind:       structKind(f.Form),
		FieldCount: f.FieldCount,
		Fields:     f.Fields,
	}, true)
}

// DescribeEnum renders Describe for an enum. Enums report zero fields.
func (e *Emitter) DescribeEnum(f *facts.EnumFacts) (Fragment, error) {
	return e.render("describe", describeData{
		N:        e.namer,
		Name:     f.Name,
		Kind:     "KindEnum",
		Variants: f.Variants,
	}, true)
}

type tableRow struct {
	Start string
	End   string
	Open  bool
	Name  string
	Const string
}

type tableData struct {
	N      Namer
	Name   string
	Elem   string
	Table  string
	Values string
	Rows   []tableRow
}

// Ranges renders the value lookup of a declared enum. Rows are sorted by
// range start.
func (e *Emitter) Ranges(f *facts.EnumFacts) (Fragment, error) {
	data := tableData{N: e.namer, Name: f.Name, Elem: "int64", Table: "Ranges", Values: "Values"}
	for _, i := range f.Sorted {
		v := f.Variants[i]
		data.Rows = append(data.Rows, tableRow{
			Start: strconv.FormatInt(v.Range.Start, 10),
			End:   strconv.FormatInt(v.Range.End, 10),
			Open:  v.Range.Open,
			Name:  v.Name,
			Const: lower.ConstName(f.Name, v.Name),
		})
	}
	return e.render("ranges", data, true)
}

// RangedEnum renders TryFrom and String for an enum_ranges! type. The type
// declaration itself comes from EnumDecl.
func (e *Emitter) RangedEnum(f *facts.RangedFacts) (Fragment, error) {
	data := tableData{N: e.namer, Name: f.Name, Elem: "uint64", Table: "Bounds", Values: "Variants"}
	for _, i := range f.Sorted {
		v := f.Variants[i]
		data.Rows = append(data.Rows, tableRow{
			Start: strconv.FormatUint(v.Start, 10),
			End:   strconv.FormatUint(v.End, 10),
			Name:  v.Name,
			Const: lower.ConstName(f.Name, v.Name),
		})
	}
	return e.render("ranged", data, true)
}

// Words renders the array literal of file_words!.
func (e *Emitter) Words(f *facts.WordsFacts) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d]string{", len(f.Words))
	for i, w := range f.Words {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(w))
	}
	b.WriteString("}")
	return b.String()
}

// Var binds expr to a package-level variable.
func (e *Emitter) Var(name, expr string) (Fragment, error) {
	return e.render("var", struct{ Name, Expr string }{name, expr}, false)
}

// File assembles a complete Go file. Diagnostics are appended after all
// emitted code, so their line directives do not move the positions of
// generated declarations.
func (e *Emitter) File(pkg string, fragments []Fragment, diags []*errors.CompilerError) ([]byte, error) {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\npackage ")
	b.WriteString(pkg)
	b.WriteString("\n")

	for _, f := range fragments {
		if f.Runtime {
			fmt.Fprintf(&b, "\nimport %s %s\n", e.namer.Runtime(), strconv.Quote(e.runtimePath))
			break
		}
	}
	for _, f := range fragments {
		b.WriteString("\n")
		b.WriteString(f.Code)
	}
	for _, d := range diags {
		b.WriteString("\n")
		b.WriteString(errors.FormatFragment(d))
	}

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}
