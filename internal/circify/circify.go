// Package circify is the lowerer's mutable compilation context: lexical
// scopes, the path-condition stack for conditional assignment, the single
// function frame, and the circuit that collects declared inputs and
// outputs. Go has no interior-mutability idiom for a shared mutable
// handle, so the lowerer threads an explicit *Context through every call
// instead.
package circify

import (
	"fmt"

	"pyfront/internal/ir"
	"pyfront/internal/term"
	"pyfront/internal/types"
)

// scope is one lexical level's bindings.
type scope map[string]term.PyTerm

// frame is the single function activation this front-end ever has live at
// once (no nested functions, no recursion, no call graph).
type frame struct {
	returnType  types.Ty
	returnValue *term.PyTerm // nil until a return is registered
	returnedOn  ir.Term      // OR of every return statement's own condition seen so far; nil if none yet
	returned    bool
}

// Context is the circify facade. Exactly one is constructed per
// compilation; exactly one function frame is ever entered.
type Context struct {
	Circuit *ir.Circuit
	scopes  []scope
	path    []ir.Term
	fn      *frame
}

func NewContext() *Context {
	return &Context{Circuit: ir.NewCircuit()}
}

// EnterFn pushes the function's activation frame and its outermost scope.
func (c *Context) EnterFn(returnType types.Ty) {
	c.fn = &frame{returnType: returnType}
	c.scopes = append(c.scopes, scope{})
}

// ExitFn pops the outermost scope and returns the aggregated return value,
// if any was registered along any path.
func (c *Context) ExitFn() (term.PyTerm, bool) {
	c.scopes = c.scopes[:len(c.scopes)-1]
	fn := c.fn
	c.fn = nil
	if fn == nil || fn.returnValue == nil {
		return term.PyTerm{}, false
	}
	return *fn.returnValue, true
}

// EnterScope/ExitScope bracket a lexical sub-block (used by each unrolled
// `for` iteration; `if` branches only push a condition, so a name declared
// inside a branch stays bound after the `if`).
func (c *Context) EnterScope() { c.scopes = append(c.scopes, scope{}) }

func (c *Context) ExitScope() { c.scopes = c.scopes[:len(c.scopes)-1] }

// EnterCondition pushes a governing condition; ExitCondition pops it. Every
// assignment made while conditions are on the stack is merged against the
// prior value with Ite(AND(path), newValue, oldValue) so that, outside the
// condition, the assignment is observed only along the paths where it
// actually ran.
func (c *Context) EnterCondition(cond ir.Term) { c.path = append(c.path, cond) }

func (c *Context) ExitCondition() { c.path = c.path[:len(c.path)-1] }

func (c *Context) pathCondition(cache *ir.Cache) (ir.Term, bool) {
	if len(c.path) == 0 {
		return nil, false
	}
	if len(c.path) == 1 {
		return c.path[0], true
	}
	return cache.And(c.path...), true
}

// DeclareInput declares a new symbolic input with public visibility and
// binds it in the current scope.
func (c *Context) DeclareInput(name string, t types.Ty) term.PyTerm {
	raw := c.Circuit.DeclareInput(name, types.Sort(t))
	v := term.New(t, raw)
	c.bindNew(name, v)
	return v
}

// DeclareInit declares a new local, initialized to v, in the current scope.
func (c *Context) DeclareInit(name string, v term.PyTerm) {
	c.bindNew(name, v)
}

// AlreadyDeclared reports whether name is bound in any enclosing scope.
func (c *Context) AlreadyDeclared(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Assign updates an existing binding for name, merging with the path
// condition if one is active. It panics if name was never declared; the
// lowerer is responsible for raising UndeclaredAssignment first.
func (c *Context) Assign(cache *ir.Cache, name string, v term.PyTerm) {
	idx, ok := c.findScope(name)
	if !ok {
		panic(fmt.Sprintf("circify: assign to undeclared %q", name))
	}
	if cond, has := c.pathCondition(cache); has {
		old := c.scopes[idx][name]
		merged := cache.Ite(cond, v.Inner(), old.Inner())
		c.scopes[idx][name] = term.New(v.Type(), merged)
		return
	}
	c.scopes[idx][name] = v
}

// GetValue reads the current value of name from the innermost scope it is
// bound in.
func (c *Context) GetValue(name string) (term.PyTerm, bool) {
	return c.lookup(name)
}

// Return registers a return value for the active frame. Because returns
// are lowered as straight-line assignments to a virtual return slot
// rather than as control-flow jumps, a return that follows an earlier
// conditional return must not simply overwrite it: the frame tracks
// returnedOn, the OR of every prior return statement's own condition, and
// guards each new return by the current path condition AND NOT(already
// returned) before merging it in with Ite. This gives a return sequence
// the same if/elif/else priority it would have under real control flow:
// `if c1: return a` followed by an unconditional `return b` lowers to
// Ite(NOT c1, b, a), which yields a wherever c1 holds, not a bare
// overwrite of a by b.
func (c *Context) Return(cache *ir.Cache, v term.PyTerm) {
	pc, hasPC := c.pathCondition(cache)
	notReturned, hasNotReturned := c.fn.returnedOn, c.fn.returnedOn != nil

	var cond ir.Term
	switch {
	case hasPC && hasNotReturned:
		cond = cache.And(pc, cache.Not(notReturned))
	case hasPC:
		cond = pc
	case hasNotReturned:
		cond = cache.Not(notReturned)
	default:
		cond = cache.BoolConst(true)
	}

	if c.fn.returnValue == nil {
		c.fn.returnValue = &v
	} else {
		merged := cache.Ite(cond, v.Inner(), c.fn.returnValue.Inner())
		nv := term.New(v.Type(), merged)
		c.fn.returnValue = &nv
	}

	own := pc
	if !hasPC {
		own = cache.BoolConst(true)
	}
	if c.fn.returnedOn == nil {
		c.fn.returnedOn = own
	} else {
		c.fn.returnedOn = cache.Or(c.fn.returnedOn, own)
	}
}

func (c *Context) bindNew(name string, v term.PyTerm) {
	top := len(c.scopes) - 1
	c.scopes[top][name] = v
}

func (c *Context) findScope(name string) (int, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			return i, true
		}
	}
	return 0, false
}

func (c *Context) lookup(name string) (term.PyTerm, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}
	return term.PyTerm{}, false
}
