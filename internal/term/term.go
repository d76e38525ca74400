// Package term is the typed value carried through lowering: a tagged pair
// of a surface Ty and the IR term it wraps.
package term

import (
	"math/big"

	"pyfront/internal/ir"
	"pyfront/internal/types"
)

// PyTerm pairs a type tag with the IR term it denotes. The tag is the sole
// authoritative type during lowering: Inner never re-inspects the
// wrapped term's sort to recover it.
type PyTerm struct {
	tag   types.Ty
	inner ir.Term
}

// New wraps an IR term at the given tag. Callers are responsible for the
// invariant that inner's sort agrees with tag (types.Sort(tag)); New
// itself does not check it.
func New(tag types.Ty, inner ir.Term) PyTerm {
	return PyTerm{tag: tag, inner: inner}
}

func (p PyTerm) Type() types.Ty  { return p.tag }
func (p PyTerm) Inner() ir.Term  { return p.inner }
func (p PyTerm) String() string  { return p.inner.String() }

// Bool builds a boolean literal term.
func Bool(cache *ir.Cache, b bool) PyTerm {
	return New(types.Bool, cache.BoolConst(b))
}

// Int builds an integer literal term from an arbitrary-precision decimal
// value, narrowed to types.Width bits with wraparound.
func Int(cache *ir.Cache, n *big.Int) PyTerm {
	return New(types.Int, cache.BVConst(n, types.Width))
}

// Default returns the canonical zero/false value for a Ty (component A's
// `default`, placed here since it needs to build a PyTerm).
func Default(cache *ir.Cache, t types.Ty) PyTerm {
	if t == types.Bool {
		return Bool(cache, false)
	}
	return Int(cache, big.NewInt(0))
}
