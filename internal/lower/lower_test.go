package lower

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyfront/internal/circify"
	"pyfront/internal/ir"
	"pyfront/internal/parser"
)

func compile(t *testing.T, source string, sv bool) (*circify.Context, error) {
	t.Helper()
	file, err := parser.ParseSource("test.py", source)
	require.NoError(t, err, "source must parse")

	ctx := circify.NewContext()
	l := New(ctx, sv)
	return ctx, l.LowerFile(file)
}

func TestLowerSimpleReturn(t *testing.T) {
	ctx, err := compile(t, "def main(x: int):\n    return x\n", false)
	require.NoError(t, err)
	require.Len(t, ctx.Circuit.Inputs, 1)

	bug := findOutput(ctx, "bug")
	require.NotNil(t, bug, "a reachable return must synthesize a bug output")
}

func TestLowerNoReturnProducesNoBugOutput(t *testing.T) {
	ctx, err := compile(t, "def main(x: int):\n    y: int = x\n", false)
	require.NoError(t, err)
	assert.Nil(t, findOutput(ctx, "bug"))
}

func TestLowerIsDeterministic(t *testing.T) {
	source := "def main(x: int):\n    if x > 0:\n        return x\n    else:\n        return 0 - x\n"

	ctx1, err := compile(t, source, false)
	require.NoError(t, err)
	ctx2, err := compile(t, source, false)
	require.NoError(t, err)

	bug1 := findOutput(ctx1, "bug")
	bug2 := findOutput(ctx2, "bug")
	require.NotNil(t, bug1)
	require.NotNil(t, bug2)
	assert.Equal(t, bug1.String(), bug2.String(), "identical sources must lower to structurally identical terms")
}

func TestLowerEmptyRangeIsZeroIterations(t *testing.T) {
	ctx, err := compile(t, "def main(x: int):\n    for i in range(0):\n        x = x\n    return x\n", false)
	require.NoError(t, err)
	require.NotNil(t, findOutput(ctx, "bug"))
}

func TestLowerUndeclaredAssignmentFails(t *testing.T) {
	_, err := compile(t, "def main(x: int):\n    y = x\n    return y\n", false)
	assert.Error(t, err)
}

func TestLowerNoMainFunction(t *testing.T) {
	_, err := compile(t, "def helper(x: int):\n    return x\n", false)
	assert.Error(t, err)
}

func TestLowerTopLevelNonFunction(t *testing.T) {
	_, err := compile(t, "x = 1\n", false)
	assert.Error(t, err)
}

func TestLowerVerifierBuiltinsAccumulate(t *testing.T) {
	source := "def main(x: int):\n    __VERIFIER_assume(x > 0)\n    __VERIFIER_assert(x != 0)\n    return x\n"
	ctx, err := compile(t, source, true)
	require.NoError(t, err)
	require.NotNil(t, findOutput(ctx, "bug"))
}

func TestLowerVerifierBuiltinsRejectedWithoutSVMode(t *testing.T) {
	source := "def main(x: int):\n    __VERIFIER_assume(x > 0)\n    return x\n"
	_, err := compile(t, source, false)
	assert.Error(t, err)
}

func findOutput(ctx *circify.Context, name string) ir.Term {
	for _, o := range ctx.Circuit.Outputs {
		if o.Name == name {
			return o.Term
		}
	}
	return nil
}
