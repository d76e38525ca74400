// Package ops implements the coercion and operator rules: the total
// Bool<->Int cast law, and the arithmetic/bitwise/comparison operator
// wrappers that lift mixed-tag operands before dispatching to the IR's
// bit-vector and boolean constructors.
package ops

import (
	"math/big"

	"pyfront/internal/ast"
	"pyfront/internal/errors"
	"pyfront/internal/ir"
	"pyfront/internal/term"
	"pyfront/internal/types"
)

var bigZero = big.NewInt(0)

// Cast is total over {Bool,Int} x {Bool,Int}: identity on a matching tag,
// zero-extension Bool->Int via BoolToBv, and `v != 0` Int->Bool via the
// negation of an equality-to-zero.
func Cast(cache *ir.Cache, to types.Ty, v term.PyTerm) term.PyTerm {
	if v.Type() == to {
		return v
	}
	switch to {
	case types.Int:
		return term.New(types.Int, cache.BoolToBV(v.Inner(), types.Width))
	case types.Bool:
		zero := cache.BVConst(bigZero, types.Width)
		eqZero := cache.Eq(v.Inner(), zero)
		return term.New(types.Bool, cache.Not(eqZero))
	}
	panic("unreachable: Ty is a closed two-variant sum")
}

// CastToBool is Cast(Bool, v).Inner(), used where only the wrapped term is
// needed (e.g. as a branch condition or path-condition conjunct).
func CastToBool(cache *ir.Cache, v term.PyTerm) ir.Term {
	return Cast(cache, types.Bool, v).Inner()
}

// WrapBinArith implements the arithmetic/bitwise operator table. The
// result tag is always Int; a Bool left operand is cast to Int first, and
// the right operand is always cast to Int.
func WrapBinArith(cache *ir.Cache, pos ast.Position, op string, left, right term.PyTerm) (term.PyTerm, error) {
	irOp, ok := arithOps[op]
	if !ok {
		return term.PyTerm{}, errors.OperatorTypeError(pos, op, left.String(), right.String())
	}
	l := Cast(cache, types.Int, left)
	r := Cast(cache, types.Int, right)
	return term.New(types.Int, cache.BVBinary(irOp, l.Inner(), r.Inner())), nil
}

// WrapUnArith implements unary `-`: Bool is cast to Int first, result tag
// is Int, IR op BvNeg.
func WrapUnArith(cache *ir.Cache, op string, operand term.PyTerm) (term.PyTerm, error) {
	if op != "-" {
		return term.PyTerm{}, errors.OperatorTypeError(ast.Position{}, op, operand.String(), "")
	}
	v := Cast(cache, types.Int, operand)
	return term.New(types.Int, cache.BVUnary(ir.BVNeg, v.Inner())), nil
}

// WrapBinCmp implements the comparison operator table. The result tag is
// always Bool. Allowed input shapes are (Bool,Bool), (Int,Int), and the two
// mixed shapes with the Bool operand lifted to Int.
func WrapBinCmp(cache *ir.Cache, pos ast.Position, op string, left, right term.PyTerm) (term.PyTerm, error) {
	if left.Type() == types.Bool && right.Type() == types.Bool {
		return cmpEq(cache, op, left, right)
	}

	// (Int,Bool) or (Bool,Int): lift the Bool side, then dispatch as Int,Int.
	l, r := left, right
	if l.Type() != r.Type() {
		l = Cast(cache, types.Int, l)
		r = Cast(cache, types.Int, r)
	}
	if l.Type() != types.Int || r.Type() != types.Int {
		return term.PyTerm{}, errors.OperatorTypeError(pos, op, left.String(), right.String())
	}

	switch op {
	case "==":
		return term.New(types.Bool, cache.Eq(l.Inner(), r.Inner())), nil
	case "!=":
		return term.New(types.Bool, cache.Not(cache.Eq(l.Inner(), r.Inner()))), nil
	case "<":
		return term.New(types.Bool, cache.BVCompare(ir.BVSlt, l.Inner(), r.Inner())), nil
	case "<=":
		return term.New(types.Bool, cache.BVCompare(ir.BVSle, l.Inner(), r.Inner())), nil
	case ">":
		return term.New(types.Bool, cache.BVCompare(ir.BVSgt, l.Inner(), r.Inner())), nil
	case ">=":
		return term.New(types.Bool, cache.BVCompare(ir.BVSge, l.Inner(), r.Inner())), nil
	default:
		return term.PyTerm{}, errors.OperatorTypeError(pos, op, left.String(), right.String())
	}
}

func cmpEq(cache *ir.Cache, op string, left, right term.PyTerm) (term.PyTerm, error) {
	switch op {
	case "==":
		return term.New(types.Bool, cache.Eq(left.Inner(), right.Inner())), nil
	case "!=":
		return term.New(types.Bool, cache.Not(cache.Eq(left.Inner(), right.Inner()))), nil
	default:
		return term.PyTerm{}, errors.OperatorTypeError(ast.Position{}, op, left.String(), right.String())
	}
}

var arithOps = map[string]ir.BVBinaryOp{
	"+":   ir.BVAdd,
	"-":   ir.BVSub,
	"*":   ir.BVMul,
	"//":  ir.BVUdiv,
	"&":   ir.BVAnd,
	"and": ir.BVAnd,
	"|":   ir.BVOr,
	"or":  ir.BVOr,
	"^":   ir.BVXor,
}
