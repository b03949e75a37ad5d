package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func (i *Ident) String() string {
	return i.Value
}

func (l *IntLit) String() string {
	return l.Text
}

func (l *UintLit) String() string {
	return l.Text
}

func (l *StrLit) String() string {
	return strconv.Quote(l.Value)
}

func (a *Attribute) String() string {
	if len(a.Args) == 0 {
		return fmt.Sprintf("#[%s]", a.Name.Value)
	}
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.Value
	}
	return fmt.Sprintf("#[%s(%s)]", a.Name.Value, strings.Join(args, ", "))
}

func (s *Struct) String() string {
	var b strings.Builder
	b.WriteString("struct ")
	b.WriteString(s.Name.Value)

	switch s.Form {
	case UnitStruct:
		b.WriteString(";")
	case TupleStruct:
		b.WriteString("(")
		for i, f := range s.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.String())
		}
		b.WriteString(");")
	case NamedStruct:
		if len(s.Fields) == 0 {
			b.WriteString(" {}")
			break
		}
		b.WriteString(" {\n")
		for _, f := range s.Fields {
			b.WriteString("    " + f.String() + ",\n")
		}
		b.WriteString("}")
	}
	return b.String()
}

func (f *Field) String() string {
	if f.Name == nil {
		return f.Type.String()
	}
	return f.Name.Value + ": " + f.Type.String()
}

func (e *Enum) String() string {
	var b strings.Builder
	b.WriteString("enum ")
	b.WriteString(e.Name.Value)
	if len(e.Variants) == 0 {
		b.WriteString(" {}")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, v := range e.Variants {
		b.WriteString("    " + v.String() + ",\n")
	}
	b.WriteString("}")
	return b.String()
}

func (v *Variant) String() string {
	if v.Discriminant == nil {
		return v.Name.Value
	}
	return v.Name.Value + " = " + v.Discriminant.Text
}

func (r *RangedEnum) String() string {
	var b strings.Builder
	for _, attr := range r.Attrs {
		b.WriteString(attr.String())
		b.WriteString(" ")
	}
	b.WriteString(r.Name.Value)
	b.WriteString(" {")
	for i, v := range r.Variants {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(" " + v.String())
	}
	b.WriteString(" }")
	return b.String()
}

func (v *RangedVariant) String() string {
	if v.End == nil {
		return v.Name.Value + ": " + v.Start.Text
	}
	return v.Name.Value + ": " + v.Start.Text + ".." + v.End.Text
}

func (p *PathList) String() string {
	paths := make([]string, len(p.Paths))
	for i := range p.Paths {
		paths[i] = p.Paths[i].String()
	}
	return strings.Join(paths, ", ")
}

func (d *DeclItem) String() string {
	var b strings.Builder
	for _, attr := range d.Attrs {
		b.WriteString(attr.String())
		b.WriteString("\n")
	}
	b.WriteString(d.Tokens.String())
	return b.String()
}

func (m *MacroItem) String() string {
	return m.Name.Value + "! " + m.Group.String()
}

func (e *ExprItem) String() string {
	return fmt.Sprintf("const %s = %s!%s;", e.Binding.Value, e.Name.Value, e.Group.String())
}
