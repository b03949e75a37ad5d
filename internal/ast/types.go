package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	IDENT
	INT_LIT
	UINT_LIT
	STR_LIT
	ATTRIBUTE

	// Shapes
	STRUCT
	FIELD
	ENUM
	VARIANT

	// Macro inputs
	RANGED_ENUM
	RANGED_VARIANT
	PATH_LIST

	// Items
	DECL_ITEM
	MACRO_ITEM
	EXPR_ITEM
)

var nodeTypeNames = [...]string{
	ILLEGAL:        "ILLEGAL",
	IDENT:          "IDENT",
	INT_LIT:        "INT_LIT",
	UINT_LIT:       "UINT_LIT",
	STR_LIT:        "STR_LIT",
	ATTRIBUTE:      "ATTRIBUTE",
	STRUCT:         "STRUCT",
	FIELD:          "FIELD",
	ENUM:           "ENUM",
	VARIANT:        "VARIANT",
	RANGED_ENUM:    "RANGED_ENUM",
	RANGED_VARIANT: "RANGED_VARIANT",
	PATH_LIST:      "PATH_LIST",
	DECL_ITEM:      "DECL_ITEM",
	MACRO_ITEM:     "MACRO_ITEM",
	EXPR_ITEM:      "EXPR_ITEM",
}

func (t NodeType) String() string {
	if int(t) >= 0 && int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}
