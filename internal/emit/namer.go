package emit

// DefaultRuntimePath is the import path of the runtime support package.
const DefaultRuntimePath = "shapegen/shape"

// Namer builds the identifiers emitted code declares for itself. User
// identifiers may not start with Prefix, so these never collide with
// declarations of the invoking file.
type Namer struct {
	Prefix string
}

// Helper names a package-level helper of typeName, e.g. _sgLevelRanges.
func (n Namer) Helper(typeName, role string) string {
	return n.Prefix + typeName + role
}

// Local names a parameter or local variable.
func (n Namer) Local(name string) string {
	return n.Prefix + name
}

// Runtime is the alias the runtime package is imported under.
func (n Namer) Runtime() string {
	return n.Prefix + "shape"
}
