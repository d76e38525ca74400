package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionString(t *testing.T) {
	assert.Equal(t, "", Position{}.String())
	assert.Equal(t, "a.py", Position{Filename: "a.py", Line: 1, Column: 1}.String())
}

func TestStmtAndExprInterfaces(t *testing.T) {
	var _ Stmt = (*Return)(nil)
	var _ Stmt = (*Assignment)(nil)
	var _ Stmt = (*TypedAssignment)(nil)
	var _ Stmt = (*Compound)(nil)

	var _ Expr = (*Int)(nil)
	var _ Expr = (*True)(nil)
	var _ Expr = (*False)(nil)
	var _ Expr = (*Name)(nil)
	var _ Expr = (*Bop)(nil)
	var _ Expr = (*Uop)(nil)
	var _ Expr = (*Call)(nil)

	var _ CompoundNode = (*If)(nil)
	var _ CompoundNode = (*For)(nil)
	var _ CompoundNode = (*FuncDef)(nil)
}

func TestPosAccessors(t *testing.T) {
	pos := Position{Filename: "a.py", Line: 2, Column: 3}
	ret := &Return{Position: pos}
	assert.Equal(t, pos, ret.Pos())

	name := &Name{Position: pos, Ident: "x"}
	assert.Equal(t, pos, name.Pos())
}
