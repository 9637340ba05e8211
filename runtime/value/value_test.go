package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/pattern"
	"github.com/wfl-lang/wfl/runtime/value"
)

func TestNumberToTextDropsTrailingZero(t *testing.T) {
	assert.Equal(t, "3", value.Number(3).ToText())
	assert.Equal(t, "3.5", value.Number(3.5).ToText())
}

func TestTextBooleanNothingToText(t *testing.T) {
	assert.Equal(t, "hi", value.Text("hi").ToText())
	assert.Equal(t, "true", value.Boolean(true).ToText())
	assert.Equal(t, "false", value.Boolean(false).ToText())
	assert.Equal(t, "nothing", value.Nothing.ToText())
}

func TestListToTextAndMutationThroughAlias(t *testing.T) {
	list := value.NewList([]value.Value{value.Number(1), value.Number(2)})
	alias := list
	alias.Push(value.Number(3))
	assert.Equal(t, "[1, 2, 3]", list.ToText())
	assert.Equal(t, 3, list.Len())

	v, ok := list.Get(0)
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	_, ok = list.Get(99)
	assert.False(t, ok)

	popped, ok := list.Pop()
	require.True(t, ok)
	assert.Equal(t, value.Number(3), popped)
}

func TestMapPreservesInsertionOrderInToText(t *testing.T) {
	m := value.NewMap()
	m.Set("b", value.Number(2))
	m.Set("a", value.Number(1))
	assert.Equal(t, "{b: 2, a: 1}", m.ToText())
	assert.Equal(t, []string{"b", "a"}, m.Keys())

	ok := m.Delete("b")
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, m.Keys())
	assert.Equal(t, 1, m.Len())
}

func TestDateTimeFamilyToText(t *testing.T) {
	ts := time.Date(2026, 7, 30, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-30", value.Date{T: ts}.ToText())
	assert.Equal(t, "14:05:00", value.Time{T: ts}.ToText())
	assert.Equal(t, "2026-07-30T14:05:00Z", value.DateTime{T: ts}.ToText())
	assert.Equal(t, "1h0m0s", value.Duration{D: time.Hour}.ToText())
}

func TestNativeFunctionToText(t *testing.T) {
	fn := &value.NativeFunction{Name: "length", Arity: 1, Fn: func(args []value.Value) (value.Value, error) {
		return value.Number(0), nil
	}}
	assert.Equal(t, "<native length>", fn.ToText())
}

func TestResourceCloseIsIdempotent(t *testing.T) {
	calls := 0
	r := &value.Resource{KindName: "file", ID: 7, Closer: func() error { calls++; return nil }}
	assert.Equal(t, "<file handle #7>", r.ToText())
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Equal(t, 1, calls)
	assert.True(t, r.Closed())
}

func TestEnvironmentDeclareGetAssign(t *testing.T) {
	parent := value.NewEnvironment(nil)
	require.NoError(t, parent.Declare("x", value.Number(1)))

	child := value.NewEnvironment(parent)
	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, value.Number(1), v)

	require.NoError(t, child.Assign("x", value.Number(2)))
	v, _ = parent.Get("x")
	assert.Equal(t, value.Number(2), v)

	assert.ErrorIs(t, parent.Declare("x", value.Number(3)), value.ErrAlreadyDeclared)
	require.NoError(t, child.Declare("y", value.Number(4)))
	_, ok = parent.Get("y")
	assert.False(t, ok)

	assert.ErrorIs(t, child.Assign("never_declared", value.Number(1)), value.ErrUndefinedName)
}

func TestFunctionClosureUpgrade(t *testing.T) {
	env := value.NewEnvironment(nil)
	require.NoError(t, env.Declare("greeting", value.Text("hi")))

	fn := value.NewFunction("greet", []string{"name"}, nil, false, env)
	assert.Equal(t, "<action greet>", fn.ToText())

	got, ok := fn.Closure()
	require.True(t, ok)
	v, ok := got.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, value.Text("hi"), v)

	anon := value.NewFunction("", nil, nil, false, env)
	assert.Equal(t, "<anonymous action>", anon.ToText())
}

func TestContainerClassInterfaceToText(t *testing.T) {
	greeter := &value.Interface{Name: "Greeter"}
	assert.Equal(t, "Greeter", greeter.ToText())

	class := &value.Class{
		Name:        "Person",
		Implements:  []*value.Interface{greeter},
		Methods:     map[string]*ast.MethodDecl{"greet": {Name: "greet"}},
		Events:      map[string]bool{"greeted": true},
		StaticProps: value.NewEnvironment(nil),
	}
	assert.Equal(t, "Person", class.ToText())

	instance := value.NewContainer(class, nil)
	assert.Equal(t, "<Person instance>", instance.ToText())

	require.NoError(t, instance.Properties.Declare("name", value.Text("Ada")))
	v, ok := instance.Properties.Get("name")
	require.True(t, ok)
	assert.Equal(t, value.Text("Ada"), v)

	m, found := class.FindMethod("greet")
	require.True(t, found != nil)
	assert.Equal(t, "greet", m.Name)

	_, missing := class.FindMethod("wave")
	assert.Nil(t, missing)

	assert.True(t, class.DeclaresEvent("greeted"))
	assert.False(t, class.DeclaresEvent("left"))

	handler := value.NewFunction("on_greeted", nil, nil, false, value.NewEnvironment(nil))
	instance.On("greeted", handler)
	assert.Equal(t, []*value.Function{handler}, instance.Handlers("greeted"))
}

func TestPatternToText(t *testing.T) {
	prog := &pattern.Program{}
	named := &value.Pattern{Name: "digits", Program: prog}
	assert.Equal(t, "<pattern digits>", named.ToText())

	anon := &value.Pattern{Program: prog}
	assert.Equal(t, "<pattern>", anon.ToText())
}
