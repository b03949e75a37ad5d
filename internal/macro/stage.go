package macro

// Stage is the progress of one invocation. Stages only move forward.
type Stage int

const (
	Reading Stage = iota
	Parsing
	Extracting
	Emitting
	Failed
	Done
)

var stageNames = [...]string{
	Reading:    "reading",
	Parsing:    "parsing",
	Extracting: "extracting",
	Emitting:   "emitting",
	Failed:     "failed",
	Done:       "done",
}

func (s Stage) String() string {
	if int(s) >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "Stage(?)"
}

// Kind is the call shape of an invocation.
type Kind int

const (
	// Declare lowers a struct or enum declaration itself.
	Declare Kind = iota
	// Derive adds code for an attributed declaration.
	Derive
	// ItemMacro expands name! { ... } at the top level.
	ItemMacro
	// ExprMacro expands the right-hand side of const NAME = name!(...);
	ExprMacro
)

func (k Kind) String() string {
	switch k {
	case Declare:
		return "declaration"
	case Derive:
		return "derive"
	case ItemMacro:
		return "item macro"
	case ExprMacro:
		return "expression macro"
	}
	return "Kind(?)"
}
