package ir

import (
	"fmt"
	"math/big"
	"strings"
)

// BoolConst is a literal boolean term.
type BoolConst struct{ Value bool }

func (t *BoolConst) Sort() Sort      { return BoolSort() }
func (t *BoolConst) Children() []Term { return nil }
func (t *BoolConst) String() string {
	if t.Value {
		return "true"
	}
	return "false"
}

// BVConst is a literal bit-vector term, already reduced modulo 2^Width.
type BVConst struct {
	Value *big.Int
	Width int
}

func (t *BVConst) Sort() Sort       { return BitVectorSort(t.Width) }
func (t *BVConst) Children() []Term { return nil }
func (t *BVConst) String() string   { return fmt.Sprintf("#x%s:%d", t.Value.Text(16), t.Width) }

// Var is a named symbolic input, the leaf introduced by a declared input.
type Var struct {
	Name     string
	VarSort  Sort
	Instance int // SSA version, for display only
}

func (t *Var) Sort() Sort       { return t.VarSort }
func (t *Var) Children() []Term { return nil }
func (t *Var) String() string {
	if t.Instance == 0 {
		return t.Name
	}
	return fmt.Sprintf("%s!%d", t.Name, t.Instance)
}

// Not is boolean negation.
type Not struct{ Operand Term }

func (t *Not) Sort() Sort       { return BoolSort() }
func (t *Not) Children() []Term { return []Term{t.Operand} }
func (t *Not) String() string   { return fmt.Sprintf("(not %s)", t.Operand) }

// And/Or are n-ary boolean connectives.
type And struct{ Operands []Term }

func (t *And) Sort() Sort       { return BoolSort() }
func (t *And) Children() []Term { return t.Operands }
func (t *And) String() string   { return joinOp("and", t.Operands) }

type Or struct{ Operands []Term }

func (t *Or) Sort() Sort       { return BoolSort() }
func (t *Or) Children() []Term { return t.Operands }
func (t *Or) String() string   { return joinOp("or", t.Operands) }

// Eq is structural equality between two same-sort terms.
type Eq struct{ Left, Right Term }

func (t *Eq) Sort() Sort       { return BoolSort() }
func (t *Eq) Children() []Term { return []Term{t.Left, t.Right} }
func (t *Eq) String() string   { return fmt.Sprintf("(= %s %s)", t.Left, t.Right) }

// Ite merges two values under a boolean condition, the mechanism circify
// uses to collapse path-conditional assignment into a single SSA value.
type Ite struct {
	Cond, Then, Else Term
}

func (t *Ite) Sort() Sort       { return t.Then.Sort() }
func (t *Ite) Children() []Term { return []Term{t.Cond, t.Then, t.Else} }
func (t *Ite) String() string   { return fmt.Sprintf("(ite %s %s %s)", t.Cond, t.Then, t.Else) }

// BoolToBV zero-extends a boolean to a bit-vector of the given width.
type BoolToBV struct {
	Operand Term
	Width   int
}

func (t *BoolToBV) Sort() Sort       { return BitVectorSort(t.Width) }
func (t *BoolToBV) Children() []Term { return []Term{t.Operand} }
func (t *BoolToBV) String() string   { return fmt.Sprintf("(bool2bv %s)", t.Operand) }

// BVUnaryOp names the supported unary bit-vector operators.
type BVUnaryOp string

const BVNeg BVUnaryOp = "BvNeg"

type BVUnary struct {
	Op      BVUnaryOp
	Operand Term
}

func (t *BVUnary) Sort() Sort       { return t.Operand.Sort() }
func (t *BVUnary) Children() []Term { return []Term{t.Operand} }
func (t *BVUnary) String() string   { return fmt.Sprintf("(%s %s)", t.Op, t.Operand) }

// BVBinaryOp names the supported bit-vector operators, always applied
// binary at the construction site.
type BVBinaryOp string

const (
	BVAdd  BVBinaryOp = "BvAdd"
	BVSub  BVBinaryOp = "BvSub"
	BVMul  BVBinaryOp = "BvMul"
	BVUdiv BVBinaryOp = "BvUdiv"
	BVAnd  BVBinaryOp = "BvAnd"
	BVOr   BVBinaryOp = "BvOr"
	BVXor  BVBinaryOp = "BvXor"
)

type BVBinary struct {
	Op          BVBinaryOp
	Left, Right Term
}

func (t *BVBinary) Sort() Sort       { return t.Left.Sort() }
func (t *BVBinary) Children() []Term { return []Term{t.Left, t.Right} }
func (t *BVBinary) String() string   { return fmt.Sprintf("(%s %s %s)", t.Op, t.Left, t.Right) }

// BVCompareOp names the signed bit-vector comparison predicates.
type BVCompareOp string

const (
	BVSlt BVCompareOp = "BvSlt"
	BVSle BVCompareOp = "BvSle"
	BVSgt BVCompareOp = "BvSgt"
	BVSge BVCompareOp = "BvSge"
)

type BVCompare struct {
	Op          BVCompareOp
	Left, Right Term
}

func (t *BVCompare) Sort() Sort       { return BoolSort() }
func (t *BVCompare) Children() []Term { return []Term{t.Left, t.Right} }
func (t *BVCompare) String() string   { return fmt.Sprintf("(%s %s %s)", t.Op, t.Left, t.Right) }

func joinOp(name string, ops []Term) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.String()
	}
	return fmt.Sprintf("(%s %s)", name, strings.Join(parts, " "))
}

// Constructors. Each builds (or reuses, via cache) an immutable shared
// node.

func (c *Cache) BoolConst(b bool) Term {
	key := fmt.Sprintf("bc:%v", b)
	return c.intern(key, func() Term { return &BoolConst{Value: b} })
}

func (c *Cache) BVConst(v *big.Int, width int) Term {
	reduced := reduceModWidth(v, width)
	key := fmt.Sprintf("bv:%s:%d", reduced.Text(16), width)
	return c.intern(key, func() Term { return &BVConst{Value: reduced, Width: width} })
}

func (c *Cache) Var(name string, sort Sort) Term {
	key := fmt.Sprintf("var:%s:%s", name, sort)
	return c.intern(key, func() Term { return &Var{Name: name, VarSort: sort} })
}

func (c *Cache) Not(a Term) Term {
	key := fmt.Sprintf("not:%s", a)
	return c.intern(key, func() Term { return &Not{Operand: a} })
}

func (c *Cache) And(ops ...Term) Term {
	key := fmt.Sprintf("and:%s", joinKeys(ops))
	return c.intern(key, func() Term { return &And{Operands: ops} })
}

func (c *Cache) Or(ops ...Term) Term {
	key := fmt.Sprintf("or:%s", joinKeys(ops))
	return c.intern(key, func() Term { return &Or{Operands: ops} })
}

func (c *Cache) Eq(a, b Term) Term {
	key := fmt.Sprintf("eq:%s:%s", a, b)
	return c.intern(key, func() Term { return &Eq{Left: a, Right: b} })
}

func (c *Cache) Ite(cond, then, els Term) Term {
	key := fmt.Sprintf("ite:%s:%s:%s", cond, then, els)
	return c.intern(key, func() Term { return &Ite{Cond: cond, Then: then, Else: els} })
}

func (c *Cache) BoolToBV(a Term, width int) Term {
	key := fmt.Sprintf("b2bv:%s:%d", a, width)
	return c.intern(key, func() Term { return &BoolToBV{Operand: a, Width: width} })
}

func (c *Cache) BVUnary(op BVUnaryOp, a Term) Term {
	key := fmt.Sprintf("bvu:%s:%s", op, a)
	return c.intern(key, func() Term { return &BVUnary{Op: op, Operand: a} })
}

func (c *Cache) BVBinary(op BVBinaryOp, a, b Term) Term {
	key := fmt.Sprintf("bvb:%s:%s:%s", op, a, b)
	return c.intern(key, func() Term { return &BVBinary{Op: op, Left: a, Right: b} })
}

func (c *Cache) BVCompare(op BVCompareOp, a, b Term) Term {
	key := fmt.Sprintf("bvc:%s:%s:%s", op, a, b)
	return c.intern(key, func() Term { return &BVCompare{Op: op, Left: a, Right: b} })
}

func joinKeys(ops []Term) string {
	parts := make([]string, len(ops))
	for i, o := range ops {
		parts[i] = o.String()
	}
	return strings.Join(parts, ",")
}
