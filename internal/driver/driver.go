// Package driver is the compilation entry point: read a source file,
// parse it, run the lowering engine over "main", and return the resulting
// computation keyed by its function name.
package driver

import (
	"os"

	"pyfront/internal/ast"
	"pyfront/internal/circify"
	"pyfront/internal/errors"
	"pyfront/internal/ir"
	"pyfront/internal/lower"
	"pyfront/internal/parser"
)

// Computation is the single named output artifact: a computation keyed by
// "main" exposing the declared symbolic inputs and the bug predicate
// output.
type Computation struct {
	Name    string
	Inputs  []ir.Input
	Outputs []ir.Output
}

// Bug returns the bug predicate term, or nil if none was ever registered
// (for example, a main with no return statement on any path).
func (c Computation) Bug() ir.Term {
	for _, o := range c.Outputs {
		if o.Name == "bug" {
			return o.Term
		}
	}
	return nil
}

// Options configures a compilation run.
type Options struct {
	// SVFunctions enables the __VERIFIER_assume/__VERIFIER_assert builtins.
	SVFunctions bool
}

// CompileFile reads path, parses it, and compiles it into a named
// computation map ("main" -> Computation).
func CompileFile(path string, opts Options) (map[string]Computation, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return CompileSource(path, string(source), opts)
}

// CompileSource runs the full pipeline over in-memory source, useful for
// tests and the LSP server which both hold buffers rather than files.
func CompileSource(filename, source string, opts Options) (map[string]Computation, error) {
	file, err := parser.ParseSource(filename, source)
	if err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			return nil, errors.ParseError(pe.Position, pe.Message)
		}
		return nil, errors.ParseError(ast.Position{Filename: filename}, err.Error())
	}

	ctx := circify.NewContext()
	l := lower.New(ctx, opts.SVFunctions)
	if err := l.LowerFile(file); err != nil {
		return nil, err
	}

	comp := Computation{
		Name:    "main",
		Inputs:  ctx.Circuit.Inputs,
		Outputs: ctx.Circuit.Outputs,
	}
	return map[string]Computation{"main": comp}, nil
}
