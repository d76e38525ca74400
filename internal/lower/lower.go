// Package lower is the lowering engine: it walks the AST, drives a
// circify.Context, produces typed term.PyTerm values, and records the
// assumption/assertion sets that verification mode synthesizes into a
// single bug predicate.
package lower

import (
	"math/big"

	"pyfront/internal/ast"
	"pyfront/internal/builtins"
	"pyfront/internal/circify"
	"pyfront/internal/errors"
	"pyfront/internal/ir"
	"pyfront/internal/ops"
	"pyfront/internal/term"
	"pyfront/internal/types"
)

func parseBigInt(s string) (*big.Int, bool) {
	return new(big.Int).SetString(s, 10)
}

// Lowerer holds the per-compilation state: the function table, the
// accumulated assumption/assertion lists, and whether verification
// built-ins are recognized.
type Lowerer struct {
	Cache *ir.Cache
	Ctx   *circify.Context

	// ReturnValue and Returned hold the merged result of the entry
	// function's return statements after EntryFn completes. The driver
	// only surfaces the bug predicate as a circuit output, so this is the
	// one place the fully-merged return value itself can still be
	// inspected.
	ReturnValue term.PyTerm
	Returned    bool

	funcs       map[string]*ast.FuncDef
	assumptions []ir.Term
	assertions  []ir.Term
	enableSV    bool
}

// New builds a Lowerer sharing cache with ctx's circuit.
func New(ctx *circify.Context, enableSV bool) *Lowerer {
	return &Lowerer{
		Cache:    ctx.Circuit.Cache,
		Ctx:      ctx,
		funcs:    make(map[string]*ast.FuncDef),
		enableSV: enableSV,
	}
}

// LowerFile builds the function table from every top-level statement (each
// must be a FuncDef; duplicate names: last-wins) and lowers "main".
func (l *Lowerer) LowerFile(f *ast.File) error {
	for _, s := range f.Statements {
		comp, ok := s.(*ast.Compound)
		var fn *ast.FuncDef
		if ok {
			fn, ok = comp.Node.(*ast.FuncDef)
		}
		if !ok {
			return errors.TopLevelNotAFunction(s.Pos())
		}
		l.funcs[fn.Name] = fn
	}

	if _, ok := l.funcs["main"]; !ok {
		return errors.NoMainFunction()
	}

	return l.EntryFn("main")
}

// EntryFn lowers the named function as the verification entry point: its
// return type is fixed to Int, its parameters become public symbolic
// inputs, and — once lowering completes, if a return was registered on
// some path — the bug predicate is synthesized and registered as a
// circuit output.
func (l *Lowerer) EntryFn(name string) error {
	fn, ok := l.funcs[name]
	if !ok {
		return errors.NoMainFunction()
	}

	l.Ctx.EnterFn(types.Int)
	for _, p := range fn.Params {
		if p.Annotation == "" {
			return errors.MissingTypeAnnotation(fn.Position, "parameter \""+p.Name+"\"")
		}
		ty, err := types.Parse(p.Annotation)
		if err != nil {
			return errors.UnknownType(fn.Position, p.Annotation)
		}
		l.Ctx.DeclareInput(p.Name, ty)
	}

	if err := l.lowerStmts(fn.Body); err != nil {
		return err
	}

	l.ReturnValue, l.Returned = l.Ctx.ExitFn()
	if l.Returned {
		l.synthesizeBugPredicate()
	}
	return nil
}

// synthesizeBugPredicate appends `true` to both lists (guaranteeing
// non-emptiness), then emits AND(assumptions) AND OR(NOT assertion_i) as
// the "bug" output.
func (l *Lowerer) synthesizeBugPredicate() {
	trueTerm := l.Cache.BoolConst(true)
	assumptions := append(append([]ir.Term{}, l.assumptions...), trueTerm)
	assertions := append(append([]ir.Term{}, l.assertions...), trueTerm)

	negated := make([]ir.Term, len(assertions))
	for i, a := range assertions {
		negated[i] = l.Cache.Not(a)
	}

	a := l.Cache.And(assumptions...)
	v := l.Cache.Or(negated...)
	bug := l.Cache.And(a, v)

	l.Ctx.Circuit.AddOutput("bug", bug)
}

// lowerStmts lowers a block in order.
func (l *Lowerer) lowerStmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := l.lowerStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerStmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Return:
		return l.lowerReturn(n)
	case *ast.TypedAssignment:
		return l.lowerTypedAssignment(n)
	case *ast.Assignment:
		return l.lowerAssignment(n)
	case *ast.Compound:
		return l.lowerCompoundStmt(n)
	default:
		return errors.UnsupportedStatement(s.Pos(), "unknown statement node")
	}
}

func (l *Lowerer) lowerReturn(n *ast.Return) error {
	var v term.PyTerm
	if n.Value != nil {
		val, err := l.lowerExpr(n.Value)
		if err != nil {
			return err
		}
		v = val
	} else {
		v = term.Default(l.Cache, types.Int)
	}
	v = ops.Cast(l.Cache, types.Int, v)
	l.Ctx.Return(l.Cache, v)
	return nil
}

// lowerAssignment handles `x = e`: assign if x is declared, else
// UndeclaredAssignment. An empty RHS is an expression statement, lowered
// only for side effects.
func (l *Lowerer) lowerAssignment(n *ast.Assignment) error {
	if n.RHS == nil {
		_, err := l.lowerExpr(n.LHS)
		return err
	}

	name, ok := n.LHS.(*ast.Name)
	if !ok {
		return errors.UnsupportedStatement(n.Position, "assignment target must be a name")
	}
	if !l.Ctx.AlreadyDeclared(name.Ident) {
		return errors.UndeclaredAssignment(n.Position, name.Ident)
	}

	v, err := l.lowerExpr(n.RHS)
	if err != nil {
		return err
	}
	l.Ctx.Assign(l.Cache, name.Ident, v)
	return nil
}

// lowerTypedAssignment handles `x: T = e`. If x is new, it is declared at
// type T, initialized to cast(T, e); if x already exists, the annotation is
// ignored and this behaves like a plain assignment.
func (l *Lowerer) lowerTypedAssignment(n *ast.TypedAssignment) error {
	name, ok := n.LHS.(*ast.Name)
	if !ok {
		return errors.UnsupportedStatement(n.Position, "assignment target must be a name")
	}

	v, err := l.lowerExpr(n.RHS)
	if err != nil {
		return err
	}

	if l.Ctx.AlreadyDeclared(name.Ident) {
		l.Ctx.Assign(l.Cache, name.Ident, v)
		return nil
	}

	ty, err := types.Parse(n.Annotation)
	if err != nil {
		return errors.UnknownType(n.Position, n.Annotation)
	}
	v = ops.Cast(l.Cache, ty, v)
	l.Ctx.DeclareInit(name.Ident, v)
	return nil
}

func (l *Lowerer) lowerCompoundStmt(c *ast.Compound) error {
	switch n := c.Node.(type) {
	case *ast.If:
		return l.lowerIf(n)
	case *ast.For:
		return l.lowerFor(n)
	default:
		return errors.UnsupportedStatement(c.Position, "unsupported compound statement")
	}
}

// lowerIf implements single if/optional-else lowering: the then-block
// runs under EnterCondition(c), the else-block (if any) under
// EnterCondition(not c).
func (l *Lowerer) lowerIf(n *ast.If) error {
	cv, err := l.lowerExpr(n.Cond)
	if err != nil {
		return err
	}
	c := ops.CastToBool(l.Cache, cv)

	l.Ctx.EnterCondition(c)
	err = l.lowerStmts(n.Then)
	l.Ctx.ExitCondition()
	if err != nil {
		return err
	}

	if n.Else != nil {
		notC := l.Cache.Not(c)
		l.Ctx.EnterCondition(notC)
		err = l.lowerStmts(n.Else)
		l.Ctx.ExitCondition()
		if err != nil {
			return err
		}
	}
	return nil
}

// lowerFor implements the unrolled `for item in range(...)` loop: the
// iterator must be exactly a call to range with literal arguments, and
// async/else clauses must be absent. Each concrete index lowers the body
// in a fresh lexical scope; the loop variable is deliberately not bound
// into scope.
func (l *Lowerer) lowerFor(n *ast.For) error {
	if n.Async {
		return errors.UnsupportedStatement(n.Position, "async for")
	}
	if n.ElseBody != nil {
		return errors.UnsupportedStatement(n.Position, "for/else")
	}

	call, ok := n.Iterator.(*ast.Call)
	if !ok {
		return errors.UnsupportedStatement(n.Position, "for iterator must be a call to range")
	}
	callee, ok := call.Callee.(*ast.Name)
	if !ok || callee.Ident != builtins.RangeName {
		return errors.UnsupportedStatement(n.Position, "for iterator must be a call to range")
	}

	indices, err := builtins.Range(n.Position, call.Args)
	if err != nil {
		return err
	}

	for range indices {
		l.Ctx.EnterScope()
		err := l.lowerStmts(n.Body)
		l.Ctx.ExitScope()
		if err != nil {
			return err
		}
	}
	return nil
}

// lowerExpr lowers literal, name, unary, binary, and call expressions.
func (l *Lowerer) lowerExpr(e ast.Expr) (term.PyTerm, error) {
	switch n := e.(type) {
	case *ast.Int:
		return l.lowerInt(n)
	case *ast.True:
		return term.Bool(l.Cache, true), nil
	case *ast.False:
		return term.Bool(l.Cache, false), nil
	case *ast.Name:
		return l.lowerName(n)
	case *ast.Bop:
		return l.lowerBop(n)
	case *ast.Uop:
		return l.lowerUop(n)
	case *ast.Call:
		return l.lowerCall(n)
	default:
		return term.PyTerm{}, errors.UnsupportedExpression(e.Pos(), "unknown expression node")
	}
}

func (l *Lowerer) lowerInt(n *ast.Int) (term.PyTerm, error) {
	v, ok := parseBigInt(n.Value)
	if !ok {
		return term.PyTerm{}, errors.UnsupportedExpression(n.Position, "malformed integer literal")
	}
	return term.Int(l.Cache, v), nil
}

func (l *Lowerer) lowerName(n *ast.Name) (term.PyTerm, error) {
	v, ok := l.Ctx.GetValue(n.Ident)
	if !ok {
		return term.PyTerm{}, errors.UndeclaredAssignment(n.Position, n.Ident)
	}
	return v, nil
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (l *Lowerer) lowerBop(n *ast.Bop) (term.PyTerm, error) {
	left, err := l.lowerExpr(n.Left)
	if err != nil {
		return term.PyTerm{}, err
	}
	right, err := l.lowerExpr(n.Right)
	if err != nil {
		return term.PyTerm{}, err
	}
	if comparisonOps[n.Op] {
		return ops.WrapBinCmp(l.Cache, n.Position, n.Op, left, right)
	}
	return ops.WrapBinArith(l.Cache, n.Position, n.Op, left, right)
}

func (l *Lowerer) lowerUop(n *ast.Uop) (term.PyTerm, error) {
	operand, err := l.lowerExpr(n.Operand)
	if err != nil {
		return term.PyTerm{}, err
	}
	return ops.WrapUnArith(l.Cache, n.Op, operand)
}

// lowerCall routes an identifier call through the built-in handler; any
// other callee shape, or any unhandled identifier, is UnsupportedCall.
func (l *Lowerer) lowerCall(n *ast.Call) (term.PyTerm, error) {
	callee, ok := n.Callee.(*ast.Name)
	if !ok {
		return term.PyTerm{}, errors.UnsupportedCall(n.Position, "<non-identifier callee>")
	}

	if l.enableSV && builtins.IsVerifierCall(callee.Ident) {
		return l.lowerVerifierCall(n, callee.Ident)
	}

	return term.PyTerm{}, errors.UnsupportedCall(n.Position, callee.Ident)
}

func (l *Lowerer) lowerVerifierCall(n *ast.Call, name string) (term.PyTerm, error) {
	if len(n.Args) != 1 {
		return term.PyTerm{}, errors.UnsupportedCall(n.Position, name)
	}
	argVal, err := l.lowerExpr(n.Args[0].Value)
	if err != nil {
		return term.PyTerm{}, err
	}
	cond := ops.CastToBool(l.Cache, argVal)

	switch name {
	case builtins.AssumeName:
		l.assumptions = append(l.assumptions, cond)
	case builtins.AssertName:
		l.assertions = append(l.assertions, cond)
	}
	return term.Default(l.Cache, types.Bool), nil
}
