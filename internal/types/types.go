// Package types is the front-end's type lattice: the two nominal surface
// types, Bool and Int, and their mapping onto IR sorts.
package types

import (
	"fmt"

	"pyfront/internal/ir"
)

// Width is the bit-width used for every Int value. It is a single module
// value: widening is not attempted, and mixing widths is out of scope.
// Production compilation always runs at DefaultWidth; tests
// that need to brute-force a bug predicate to a verdict (internal/solve)
// temporarily narrow it, since the downstream SMT solver this front-end
// targets is out of scope and no such solver exists in the retrieval
// corpus to depend on instead.
var Width = DefaultWidth

const DefaultWidth = 32

// Ty is the closed sum of surface types.
type Ty int

const (
	Int Ty = iota
	Bool
)

func (t Ty) String() string {
	switch t {
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return "?"
	}
}

// Sort maps a Ty onto its unique IR sort: Int -> BitVector(Width), Bool -> Bool.
func Sort(t Ty) ir.Sort {
	if t == Bool {
		return ir.BoolSort()
	}
	return ir.BitVectorSort(Width)
}

// Parse accepts exactly "int" and "bool"; anything else is UnknownType.
func Parse(name string) (Ty, error) {
	switch name {
	case "int":
		return Int, nil
	case "bool":
		return Bool, nil
	default:
		return 0, &UnknownTypeError{Name: name}
	}
}

// Equal is structural equality on the two variants.
func Equal(a, b Ty) bool { return a == b }

// UnknownTypeError is raised when an annotation is not int/bool.
type UnknownTypeError struct{ Name string }

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type annotation %q (expected \"int\" or \"bool\")", e.Name)
}
