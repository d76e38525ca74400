// Package errors defines the front-end's error taxonomy: every diagnosed
// failure kind, each with a stable code so the CLI and LSP can report them
// consistently.
package errors

// Error code ranges, mirroring how a front-end commonly buckets its
// diagnostics by phase:
//
// E01xx: parsing
// E02xx: top-level / function-table construction
// E03xx: type lattice / annotations
// E04xx: operator type-checking
// E05xx: unsupported AST shapes
// E06xx: scoping / assignment
// E07xx: built-in call validation
const (
	CodeParseError             = "E0100"
	CodeTopLevelNotAFunction   = "E0200"
	CodeNoMainFunction         = "E0201"
	CodeMissingTypeAnnotation  = "E0300"
	CodeUnknownType            = "E0301"
	CodeOperatorTypeError      = "E0400"
	CodeUnsupportedStatement   = "E0500"
	CodeUnsupportedExpression  = "E0501"
	CodeUnsupportedCall        = "E0502"
	CodeUndeclaredAssignment   = "E0600"
	CodeInvalidRangeArgs       = "E0700"
)
