package ir

import "math/big"

// Input is a symbolic input declared into the circuit, with public
// visibility (the only visibility this front-end emits).
type Input struct {
	Name string
	Sort Sort
	Term Term
}

// Output is a named circuit output; this front-end emits exactly one, the
// bug predicate, but the circuit type itself places no such restriction.
type Output struct {
	Name string
	Term Term
}

// Circuit accumulates the symbolic inputs and outputs of a compilation. It
// is the mutable circuit half of the external circify context: the lowerer
// declares inputs into it as it encounters function parameters, and the
// driver reads its outputs back out once lowering finishes.
type Circuit struct {
	Cache   *Cache
	Inputs  []Input
	Outputs []Output
}

func NewCircuit() *Circuit {
	return &Circuit{Cache: NewCache()}
}

func (c *Circuit) DeclareInput(name string, sort Sort) Term {
	t := c.Cache.Var(name, sort)
	c.Inputs = append(c.Inputs, Input{Name: name, Sort: sort, Term: t})
	return t
}

func (c *Circuit) AddOutput(name string, t Term) {
	c.Outputs = append(c.Outputs, Output{Name: name, Term: t})
}

// reduceModWidth narrows an arbitrary-precision integer to width bits,
// two's-complement, wrapping on overflow.
func reduceModWidth(v *big.Int, width int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	r := new(big.Int).Mod(v, mod)
	if r.Sign() < 0 {
		r.Add(r, mod)
	}
	return r
}
