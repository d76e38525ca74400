// Package solve is a bounded, brute-force stand-in for the downstream SMT
// solver this front-end hands its bug predicate to. It exists only to let
// tests decide whether a compiled predicate is satisfiable; it is never
// wired into the CLI or LSP, which report the bug predicate itself and
// leave solving to whatever real backend a caller plugs in.
//
// It decides satisfiability by exhaustively enumerating every input
// assignment, so it is only practical at the narrow bit-widths tests use
// (see internal/types.Width); it is not a substitute for a real solver at
// production width.
package solve

import (
	"fmt"
	"math/big"

	"pyfront/internal/ir"
)

// Value is a concrete evaluation result: either a boolean or a bit-vector
// held as its unsigned residue mod 2^width.
type Value struct {
	IsBool bool
	Bool   bool
	Int    *big.Int
	Width  int
}

// Env maps variable names to concrete values for one candidate assignment.
type Env map[string]Value

// Eval interprets a term under env. It panics on sort mismatches, which
// would indicate a bug in the lowerer rather than a reachable runtime
// condition (terms are well-typed by construction).
func Eval(t ir.Term, env Env) Value {
	switch n := t.(type) {
	case *ir.BoolConst:
		return Value{IsBool: true, Bool: n.Value}
	case *ir.BVConst:
		return Value{Int: new(big.Int).Set(n.Value), Width: n.Width}
	case *ir.Var:
		v, ok := env[n.Name]
		if !ok {
			panic(fmt.Sprintf("solve: unbound variable %q", n.Name))
		}
		return v
	case *ir.Not:
		return Value{IsBool: true, Bool: !Eval(n.Operand, env).Bool}
	case *ir.And:
		for _, o := range n.Operands {
			if !Eval(o, env).Bool {
				return Value{IsBool: true, Bool: false}
			}
		}
		return Value{IsBool: true, Bool: true}
	case *ir.Or:
		for _, o := range n.Operands {
			if Eval(o, env).Bool {
				return Value{IsBool: true, Bool: true}
			}
		}
		return Value{IsBool: true, Bool: false}
	case *ir.Eq:
		l, r := Eval(n.Left, env), Eval(n.Right, env)
		if l.IsBool {
			return Value{IsBool: true, Bool: l.Bool == r.Bool}
		}
		return Value{IsBool: true, Bool: l.Int.Cmp(r.Int) == 0}
	case *ir.Ite:
		if Eval(n.Cond, env).Bool {
			return Eval(n.Then, env)
		}
		return Eval(n.Else, env)
	case *ir.BoolToBV:
		v := Eval(n.Operand, env)
		if v.Bool {
			return Value{Int: big.NewInt(1), Width: n.Width}
		}
		return Value{Int: big.NewInt(0), Width: n.Width}
	case *ir.BVUnary:
		v := Eval(n.Operand, env)
		switch n.Op {
		case ir.BVNeg:
			return Value{Int: reduce(new(big.Int).Neg(v.Int), v.Width), Width: v.Width}
		}
	case *ir.BVBinary:
		l, r := Eval(n.Left, env), Eval(n.Right, env)
		return Value{Int: reduce(applyBinary(n.Op, l.Int, r.Int), l.Width), Width: l.Width}
	case *ir.BVCompare:
		l, r := Eval(n.Left, env), Eval(n.Right, env)
		return Value{IsBool: true, Bool: applyCompare(n.Op, signed(l.Int, l.Width), signed(r.Int, r.Width))}
	}
	panic(fmt.Sprintf("solve: unhandled term %T", t))
}

func applyBinary(op ir.BVBinaryOp, a, b *big.Int) *big.Int {
	switch op {
	case ir.BVAdd:
		return new(big.Int).Add(a, b)
	case ir.BVSub:
		return new(big.Int).Sub(a, b)
	case ir.BVMul:
		return new(big.Int).Mul(a, b)
	case ir.BVUdiv:
		if b.Sign() == 0 {
			return new(big.Int) // division by zero: treat as 0, outside spec's scope
		}
		return new(big.Int).Div(a, b)
	case ir.BVAnd:
		return new(big.Int).And(a, b)
	case ir.BVOr:
		return new(big.Int).Or(a, b)
	case ir.BVXor:
		return new(big.Int).Xor(a, b)
	}
	panic("solve: unknown binary op " + string(op))
}

func applyCompare(op ir.BVCompareOp, a, b *big.Int) bool {
	c := a.Cmp(b)
	switch op {
	case ir.BVSlt:
		return c < 0
	case ir.BVSle:
		return c <= 0
	case ir.BVSgt:
		return c > 0
	case ir.BVSge:
		return c >= 0
	}
	panic("solve: unknown compare op " + string(op))
}

func reduce(v *big.Int, width int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r
}

// signed reinterprets an unsigned residue mod 2^width as two's-complement.
func signed(v *big.Int, width int) *big.Int {
	half := new(big.Int).Lsh(big.NewInt(1), uint(width-1))
	if v.Cmp(half) < 0 {
		return v
	}
	full := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return new(big.Int).Sub(v, full)
}
