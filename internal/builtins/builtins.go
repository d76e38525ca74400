// Package builtins implements the two built-in call families: the
// `range(...)` loop-unrolling helper and the verification primitives
// `__VERIFIER_assert` / `__VERIFIER_assume`.
package builtins

import (
	"math/big"

	"pyfront/internal/ast"
	"pyfront/internal/errors"
)

const (
	RangeName  = "range"
	AssertName = "__VERIFIER_assert"
	AssumeName = "__VERIFIER_assume"
)

// IsVerifierCall reports whether name is one of the verification built-ins.
func IsVerifierCall(name string) bool {
	return name == AssertName || name == AssumeName
}

// Range evaluates the literal-only `range(...)` shapes into a finite,
// concrete sequence of indices for loop unrolling. `range(a,b,s)` is a
// stable, permanent failure (not implemented).
func Range(pos ast.Position, args []ast.Argument) ([]*big.Int, error) {
	lits := make([]*big.Int, len(args))
	for i, a := range args {
		n, ok := literalInt(a.Value)
		if !ok {
			return nil, errors.InvalidRangeArgs(pos, "every argument must be a positional integer literal")
		}
		lits[i] = n
	}

	switch len(lits) {
	case 1:
		return sequence(big.NewInt(0), lits[0]), nil
	case 2:
		return sequence(lits[0], lits[1]), nil
	case 3:
		return nil, errors.InvalidRangeArgs(pos, "range(a, b, s) with an explicit step is not implemented")
	default:
		return nil, errors.InvalidRangeArgs(pos, "range() takes 1 or 2 arguments")
	}
}

func sequence(from, to *big.Int) []*big.Int {
	var out []*big.Int
	i := new(big.Int).Set(from)
	for i.Cmp(to) < 0 {
		out = append(out, new(big.Int).Set(i))
		i.Add(i, big.NewInt(1))
	}
	return out
}

func literalInt(e ast.Expr) (*big.Int, bool) {
	lit, ok := e.(*ast.Int)
	if !ok {
		return nil, false
	}
	n, ok := new(big.Int).SetString(lit.Value, 10)
	return n, ok
}
