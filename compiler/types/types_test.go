package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wfl-lang/wfl/compiler/types"
)

func TestPrimitiveEquals(t *testing.T) {
	assert.True(t, types.Number.Equals(types.NewPrimitive(types.KindNumber)))
	assert.False(t, types.Number.Equals(types.Text))
}

func TestNothingAssignableToAnyPrimitive(t *testing.T) {
	assert.True(t, types.Number.IsAssignableFrom(types.Nothing))
	assert.True(t, types.Text.IsAssignableFrom(types.Nothing))
	assert.False(t, types.Nothing.IsAssignableFrom(types.Number))
}

func TestListAssignability(t *testing.T) {
	numbers := types.NewList(types.Number)
	assert.True(t, numbers.IsAssignableFrom(types.NewList(types.Number)))
	assert.False(t, numbers.IsAssignableFrom(types.NewList(types.Text)))
	assert.False(t, numbers.IsAssignableFrom(types.Number))
}

func TestMapAssignability(t *testing.T) {
	m := types.NewMap(types.Text, types.Number)
	assert.True(t, m.IsAssignableFrom(types.NewMap(types.Text, types.Number)))
	assert.False(t, m.IsAssignableFrom(types.NewMap(types.Number, types.Number)))
}

func TestFunctionAssignability(t *testing.T) {
	fn := types.NewFunction([]types.Type{types.Number, types.Number}, types.Number)
	same := types.NewFunction([]types.Type{types.Number, types.Number}, types.Number)
	assert.True(t, fn.IsAssignableFrom(same))

	wrongArity := types.NewFunction([]types.Type{types.Number}, types.Number)
	assert.False(t, fn.IsAssignableFrom(wrongArity))
}

func TestUnionFlattensNestedUnions(t *testing.T) {
	inner := types.NewUnion(types.Number, types.Text)
	outer := types.NewUnion(inner, types.Boolean)
	assert.Len(t, outer.Members, 3)
}

func TestUnionIsAssignableFromMember(t *testing.T) {
	u := types.NewUnion(types.Number, types.Text)
	assert.True(t, u.IsAssignableFrom(types.Number))
	assert.True(t, u.IsAssignableFrom(types.Text))
	assert.False(t, u.IsAssignableFrom(types.Boolean))
}

func TestUnionIsAssignableFromSubsetUnion(t *testing.T) {
	wide := types.NewUnion(types.Number, types.Text, types.Boolean)
	narrow := types.NewUnion(types.Number, types.Text)
	assert.True(t, wide.IsAssignableFrom(narrow))
	assert.False(t, narrow.IsAssignableFrom(wide))
}

func TestUnknownIsAssignableFromAndToAnything(t *testing.T) {
	assert.True(t, types.Any.IsAssignableFrom(types.Number))
	assert.True(t, types.Number.IsAssignableFrom(types.Any))
	assert.True(t, types.NewList(types.Text).IsAssignableFrom(types.Any))
}

func TestContainerEquality(t *testing.T) {
	a := types.NewContainer("Person")
	b := types.NewContainer("Person")
	other := types.NewContainer("Animal")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(other))
}
