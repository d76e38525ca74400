package solve

import (
	"fmt"
	"math/big"

	"pyfront/internal/ir"
)

// Holds exhaustively enumerates every assignment to inputs and reports
// whether bug is unsatisfiable (true: the predicate never fires, matching
// a "holds"/safe verdict; false: some assignment makes it true, i.e. a
// counterexample exists). It panics if any input's bit-width makes
// enumeration impractically large; callers (tests) are expected to run at
// a narrowed internal/types.Width for exactly this reason.
func Holds(bug ir.Term, inputs []ir.Input) bool {
	if bug == nil {
		return true // no bug predicate was ever synthesized: vacuously safe
	}

	domains := make([][]Value, len(inputs))
	for i, in := range inputs {
		domains[i] = domain(in.Sort)
	}

	env := make(Env, len(inputs))
	return !exists(inputs, domains, 0, env, bug)
}

// exists returns true as soon as some assignment makes bug evaluate true.
func exists(inputs []ir.Input, domains [][]Value, idx int, env Env, bug ir.Term) bool {
	if idx == len(inputs) {
		return Eval(bug, env).Bool
	}
	name := inputs[idx].Name
	for _, v := range domains[idx] {
		env[name] = v
		if exists(inputs, domains, idx+1, env, bug) {
			return true
		}
	}
	delete(env, name)
	return false
}

func domain(s ir.Sort) []Value {
	if s.IsBool() {
		return []Value{{IsBool: true, Bool: false}, {IsBool: true, Bool: true}}
	}
	width := s.Width
	if width > 20 {
		panic(fmt.Sprintf("solve: width %d too large to brute-force; narrow internal/types.Width in tests", width))
	}
	count := 1 << uint(width)
	values := make([]Value, count)
	for i := 0; i < count; i++ {
		values[i] = Value{Int: big.NewInt(int64(i)), Width: width}
	}
	return values
}
