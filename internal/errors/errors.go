package errors

import (
	"fmt"

	"pyfront/internal/ast"
)

// CompilerError is a single fatal compile-time diagnostic. Every kind is
// fatal and unrecovered: there is no warning level, since the front-end
// aborts on the first one.
type CompilerError struct {
	Code     string
	Message  string
	Position ast.Position
}

func (e *CompilerError) Error() string {
	if e.Position.Filename == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Code, e.Message)
}

func newErr(code string, pos ast.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Code: code, Position: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseError wraps a parser-reported syntax error.
func ParseError(pos ast.Position, msg string) *CompilerError {
	return newErr(CodeParseError, pos, "%s", msg)
}

// TopLevelNotAFunction: a top-level statement is not a function definition.
func TopLevelNotAFunction(pos ast.Position) *CompilerError {
	return newErr(CodeTopLevelNotAFunction, pos, "top-level statements must be function definitions")
}

// NoMainFunction: `main` is not defined.
func NoMainFunction() *CompilerError {
	return newErr(CodeNoMainFunction, ast.Position{}, "no \"main\" function defined")
}

// MissingTypeAnnotation: a parameter or declaration lacks an annotation.
func MissingTypeAnnotation(pos ast.Position, what string) *CompilerError {
	return newErr(CodeMissingTypeAnnotation, pos, "%s requires a type annotation", what)
}

// UnknownType: an annotation is not int/bool.
func UnknownType(pos ast.Position, name string) *CompilerError {
	return newErr(CodeUnknownType, pos, "unknown type %q (expected \"int\" or \"bool\")", name)
}

// OperatorTypeError: operands of an operator are incompatible.
func OperatorTypeError(pos ast.Position, op string, left, right string) *CompilerError {
	return newErr(CodeOperatorTypeError, pos, "operator %q is not defined for operands %s and %s", op, left, right)
}

// UnsupportedStatement: an AST statement node outside the supported subset.
func UnsupportedStatement(pos ast.Position, kind string) *CompilerError {
	return newErr(CodeUnsupportedStatement, pos, "unsupported statement: %s", kind)
}

// UnsupportedExpression: an AST expression node outside the supported subset.
func UnsupportedExpression(pos ast.Position, kind string) *CompilerError {
	return newErr(CodeUnsupportedExpression, pos, "unsupported expression: %s", kind)
}

// UnsupportedCall: a call whose callee cannot be resolved to a known built-in.
func UnsupportedCall(pos ast.Position, name string) *CompilerError {
	return newErr(CodeUnsupportedCall, pos, "unsupported call: %s", name)
}

// UndeclaredAssignment: plain assignment to a never-declared name.
func UndeclaredAssignment(pos ast.Position, name string) *CompilerError {
	return newErr(CodeUndeclaredAssignment, pos, "assignment to undeclared variable %q (declarations require a type annotation)", name)
}

// InvalidRangeArgs: `range` invoked with non-literal or wrong-arity args.
func InvalidRangeArgs(pos ast.Position, reason string) *CompilerError {
	return newErr(CodeInvalidRangeArgs, pos, "invalid range() arguments: %s", reason)
}
