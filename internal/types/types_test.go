package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		ty, err := Parse("int")
		assert.NoError(t, err)
		assert.Equal(t, Int, ty)
	})

	t.Run("Bool", func(t *testing.T) {
		ty, err := Parse("bool")
		assert.NoError(t, err)
		assert.Equal(t, Bool, ty)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := Parse("string")
		assert.Error(t, err)
		var unknown *UnknownTypeError
		assert.ErrorAs(t, err, &unknown)
	})
}

func TestString(t *testing.T) {
	assert.Equal(t, "int", Int.String())
	assert.Equal(t, "bool", Bool.String())
}

func TestSort(t *testing.T) {
	assert.True(t, Sort(Bool).IsBool())
	bv := Sort(Int)
	assert.True(t, bv.IsBitVector())
	assert.Equal(t, Width, bv.Width)
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Int, Int))
	assert.False(t, Equal(Int, Bool))
}
