package lsp

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"shapegen/internal/errors"
)

const diagnosticSource = "shapegen"

// ConvertDiagnostics turns expansion diagnostics into LSP diagnostics.
// Notes, suggestions and help are folded into the message since the editor
// shows a single span per diagnostic.
func ConvertDiagnostics(text string, diags []*errors.CompilerError) []protocol.Diagnostic {
	lines := newLineIndex(text)
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, protocol.Diagnostic{
			Range:    lines.span(d.Span),
			Severity: ptrSeverity(severityFor(d.Level)),
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   ptrString(diagnosticSource),
			Message:  diagnosticMessage(d),
		})
	}
	return out
}

func diagnosticMessage(d *errors.CompilerError) string {
	var b strings.Builder
	b.WriteString(d.Message)
	for _, s := range d.Suggestions {
		b.WriteString("\nhelp: ")
		b.WriteString(s.Message)
	}
	for _, note := range d.Notes {
		b.WriteString("\nnote: ")
		b.WriteString(note)
	}
	if d.HelpText != "" {
		b.WriteString("\nhelp: ")
		b.WriteString(d.HelpText)
	}
	return b.String()
}

func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note, errors.Help:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
