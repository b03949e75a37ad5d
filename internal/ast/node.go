package ast

import "shapegen/token"

type Node interface {
	NodeSpan() token.Span
	NodeType() NodeType
	String() string
}

func (i *Ident) NodeSpan() token.Span { return i.Span }
func (*Ident) NodeType() NodeType     { return IDENT }

func (l *IntLit) NodeSpan() token.Span { return l.Span }
func (*IntLit) NodeType() NodeType     { return INT_LIT }

func (l *UintLit) NodeSpan() token.Span { return l.Span }
func (*UintLit) NodeType() NodeType     { return UINT_LIT }

func (l *StrLit) NodeSpan() token.Span { return l.Span }
func (*StrLit) NodeType() NodeType     { return STR_LIT }

func (a *Attribute) NodeSpan() token.Span { return a.Span }
func (*Attribute) NodeType() NodeType     { return ATTRIBUTE }

func (s *Struct) NodeSpan() token.Span { return s.Span }
func (*Struct) NodeType() NodeType     { return STRUCT }

func (f *Field) NodeSpan() token.Span { return f.Span }
func (*Field) NodeType() NodeType     { return FIELD }

func (e *Enum) NodeSpan() token.Span { return e.Span }
func (*Enum) NodeType() NodeType     { return ENUM }

func (v *Variant) NodeSpan() token.Span { return v.Span }
func (*Variant) NodeType() NodeType     { return VARIANT }

func (r *RangedEnum) NodeSpan() token.Span { return r.Span }
func (*RangedEnum) NodeType() NodeType     { return RANGED_ENUM }

func (v *RangedVariant) NodeSpan() token.Span { return v.Span }
func (*RangedVariant) NodeType() NodeType     { return RANGED_VARIANT }

func (p *PathList) NodeSpan() token.Span { return p.Span }
func (*PathList) NodeType() NodeType     { return PATH_LIST }

func (d *DeclItem) NodeSpan() token.Span { return d.Span }
func (*DeclItem) NodeType() NodeType     { return DECL_ITEM }

func (m *MacroItem) NodeSpan() token.Span { return m.Span }
func (*MacroItem) NodeType() NodeType     { return MACRO_ITEM }

func (e *ExprItem) NodeSpan() token.Span { return e.Span }
func (*ExprItem) NodeType() NodeType     { return EXPR_ITEM }
