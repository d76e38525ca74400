package solve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"pyfront/internal/ir"
)

func TestEvalArithmetic(t *testing.T) {
	c := ir.NewCache()
	x := c.Var("x", ir.BitVectorSort(8))
	sum := c.BVBinary(ir.BVAdd, x, c.BVConst(big.NewInt(1), 8))

	v := Eval(sum, Env{"x": {Int: big.NewInt(41), Width: 8}})
	assert.Equal(t, big.NewInt(42), v.Int)
}

func TestEvalWraparound(t *testing.T) {
	c := ir.NewCache()
	sum := c.BVBinary(ir.BVAdd, c.BVConst(big.NewInt(255), 8), c.BVConst(big.NewInt(1), 8))
	v := Eval(sum, Env{})
	assert.Equal(t, big.NewInt(0), v.Int)
}

func TestEvalSignedCompare(t *testing.T) {
	c := ir.NewCache()
	// at width 8, 255 is -1 signed; -1 < 1 must hold.
	lt := c.BVCompare(ir.BVSlt, c.BVConst(big.NewInt(255), 8), c.BVConst(big.NewInt(1), 8))
	v := Eval(lt, Env{})
	assert.True(t, v.Bool)
}

func TestEvalIteSelectsBranch(t *testing.T) {
	c := ir.NewCache()
	ite := c.Ite(c.BoolConst(true), c.BVConst(big.NewInt(1), 8), c.BVConst(big.NewInt(2), 8))
	assert.Equal(t, big.NewInt(1), Eval(ite, Env{}).Int)

	ite = c.Ite(c.BoolConst(false), c.BVConst(big.NewInt(1), 8), c.BVConst(big.NewInt(2), 8))
	assert.Equal(t, big.NewInt(2), Eval(ite, Env{}).Int)
}

func TestHoldsTautologyIsUnsat(t *testing.T) {
	circuit := ir.NewCircuit()
	x := circuit.DeclareInput("x", ir.BitVectorSort(4))
	cache := circuit.Cache

	// bug = (x > 0) AND NOT(x > 0): never satisfiable.
	gt := cache.BVCompare(ir.BVSgt, x, cache.BVConst(big.NewInt(0), 4))
	bug := cache.And(gt, cache.Not(gt))

	assert.True(t, Holds(bug, circuit.Inputs))
}

func TestHoldsCounterexampleExists(t *testing.T) {
	circuit := ir.NewCircuit()
	x := circuit.DeclareInput("x", ir.BitVectorSort(4))
	cache := circuit.Cache

	bug := cache.BVCompare(ir.BVSgt, x, cache.BVConst(big.NewInt(0), 4))
	assert.False(t, Holds(bug, circuit.Inputs), "x=1 is a satisfying assignment")
}

func TestHoldsOverBoolInput(t *testing.T) {
	circuit := ir.NewCircuit()
	flag := circuit.DeclareInput("flag", ir.BoolSort())
	cache := circuit.Cache

	bug := cache.And(flag, cache.Not(flag))
	assert.True(t, Holds(bug, circuit.Inputs))
}

func TestHoldsNilBugIsVacuouslySafe(t *testing.T) {
	assert.True(t, Holds(nil, nil))
}
