package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pyfront/internal/errors"
)

// Diagnostics converts a compile error into zero or one LSP
// protocol.Diagnostic values.
func Diagnostics(err error) []protocol.Diagnostic {
	if err == nil {
		return nil
	}
	ce, ok := err.(*errors.CompilerError)
	if !ok || ce.Position.Line <= 0 {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("pyfront"),
			Message:  err.Error(),
		}}
	}

	line := uint32(ce.Position.Line - 1)
	col := uint32(0)
	if ce.Position.Column > 0 {
		col = uint32(ce.Position.Column - 1)
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString("pyfront"),
		Message:  ce.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }

func ptrString(s string) *string { return &s }
