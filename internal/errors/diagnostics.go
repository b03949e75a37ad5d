package errors

import (
	"fmt"
	"strings"

	"shapegen/token"
)

// DiagnosticBuilder provides a fluent interface for creating diagnostics with suggestions
type DiagnosticBuilder struct {
	err CompilerError
}

// NewError creates a new error builder anchored at span
func NewError(code, message string, span token.Span) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		err: CompilerError{
			Level:   Error,
			Code:    code,
			Message: message,
			Span:    span,
		},
	}
}

// WithSuggestion adds a suggestion to the error
func (b *DiagnosticBuilder) WithSuggestion(message string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *DiagnosticBuilder) WithReplacement(message, replacement string) *DiagnosticBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
	})
	return b
}

// WithNote adds a note to the error
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() *CompilerError {
	err := b.err
	return &err
}

// MalformedInput reports a grammar violation at span.
func MalformedInput(message string, span token.Span) *CompilerError {
	return NewError(ErrorMalformedInput, message, span).Build()
}

// Unexpected reports that found does not match what the grammar expected.
func Unexpected(expected string, found token.Token) *CompilerError {
	return NewError(ErrorMalformedInput, fmt.Sprintf("expected %s, found `%s`", expected, describe(found)), found.Span).Build()
}

// UnexpectedEnd reports that input ended where more tokens were required.
// span should point at the closing delimiter or the last token seen.
func UnexpectedEnd(expected string, span token.Span) *CompilerError {
	return NewError(ErrorMalformedInput, fmt.Sprintf("unexpected end of input, expected %s", expected), span).Build()
}

func UnsupportedDiscriminant(expr token.Stream) *CompilerError {
	return NewError(ErrorUnsupportedDiscriminant,
		fmt.Sprintf("unsupported discriminant `%s`: only integer literals are allowed", expr.String()), expr.Span()).
		WithHelp("write the value as a decimal, 0x, 0o or 0b integer literal").
		Build()
}

func DiscriminantOverflow(variant string, span token.Span) *CompilerError {
	return NewError(ErrorUnsupportedDiscriminant,
		fmt.Sprintf("discriminant of variant `%s` overflows a 64-bit integer", variant), span).
		Build()
}

// DuplicateDiscriminant is reported at the later of the two variants. The
// earlier one is only named in a note.
func DuplicateDiscriminant(variant string, value string, first string, span token.Span) *CompilerError {
	return NewError(ErrorDuplicateDiscriminant,
		fmt.Sprintf("discriminant value `%s` assigned more than once", value), span).
		WithNote(fmt.Sprintf("`%s` and `%s` both resolve to %s", first, variant, value)).
		Build()
}

// OverlappingRange reports a ranged variant that intersects an earlier one.
func OverlappingRange(variant, first string, span token.Span) *CompilerError {
	return NewError(ErrorDuplicateDiscriminant,
		fmt.Sprintf("range of variant `%s` overlaps variant `%s`", variant, first), span).
		Build()
}

// UnknownMacro creates an error for unregistered derive or macro names with suggestions
func UnknownMacro(kind, name string, span token.Span, known []string) *CompilerError {
	builder := NewError(ErrorUnknownMacro, fmt.Sprintf("cannot find %s `%s`", kind, name), span)

	similar := findSimilarNames(name, known)
	if len(similar) == 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean `%s`?", similar[0]))
	} else if len(similar) > 1 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: `%s`?", strings.Join(similar, "`, `")))
	}
	if len(known) > 0 {
		builder = builder.WithNote("available: " + strings.Join(known, ", "))
	}
	return builder.Build()
}

func MissingResource(path string, span token.Span, cause error) *CompilerError {
	builder := NewError(ErrorMissingResource, fmt.Sprintf("couldn't read %s", path), span)
	if cause != nil {
		builder = builder.WithNote(cause.Error())
	}
	return builder.Build()
}

// Internal converts a recovered panic into a diagnostic.
// InvalidOutput reports generated code that does not parse as Go. It is
// anchored at the start of the input file.
func InvalidOutput(file string, cause error) *CompilerError {
	start := token.Position{Line: 1, Column: 1}
	return NewError(ErrorInternal, "generated code is not valid Go", token.Span{File: file, Start: start, End: start}).
		WithNote(cause.Error()).
		Build()
}

func Internal(span token.Span, recovered any) *CompilerError {
	return NewError(ErrorInternal, "macro expansion panicked", span).
		WithNote(fmt.Sprint(recovered)).
		Build()
}

func describe(tok token.Token) string {
	if tok.Kind == token.Group {
		return tok.Delim.Open()
	}
	return tok.Text
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(strings.ToLower(target), strings.ToLower(candidate)) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
