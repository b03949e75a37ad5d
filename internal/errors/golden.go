package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatGolden renders a diagnostic on one stable, colorless line. The
// corpus tests compare against this form.
func FormatGolden(err *CompilerError) string {
	return fmt.Sprintf("%s %s %s %s", err.Level, err.Code, err.Span, err.Message)
}

// FormatFragment renders a diagnostic as Go source that fails to type
// check at the diagnostic's span. Inserting the fragment in generated code
// makes the Go toolchain report the message against the input file. The
// compiler reports the mismatch at the string literal, so the line
// directive sits directly in front of it.
func FormatFragment(err *CompilerError) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("const _ int = /*line %s*/ ", err.Span))
	b.WriteString(strconv.Quote(fmt.Sprintf("%s[%s]: %s", err.Level, err.Code, err.Message)))
	b.WriteString("\n")
	return b.String()
}
