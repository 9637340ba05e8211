package stdlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/runtime/value"
)

func findNative(t *testing.T, fns []*value.NativeFunction, name string) *value.NativeFunction {
	t.Helper()
	for _, fn := range fns {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("native %q not found", name)
	return nil
}

func TestCoreNatives(t *testing.T) {
	fns := coreNatives()

	v, err := findNative(t, fns, "type_of").Fn([]value.Value{value.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, value.Text("number"), v)

	v, err = findNative(t, fns, "length").Fn([]value.Value{value.Text("hello")})
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), v)

	v, err = findNative(t, fns, "is_nothing").Fn([]value.Value{value.Nothing})
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), v)
}

func TestTextNatives(t *testing.T) {
	fns := textNatives()

	v, err := findNative(t, fns, "upcase").Fn([]value.Value{value.Text("hi")})
	require.NoError(t, err)
	assert.Equal(t, value.Text("HI"), v)

	v, err = findNative(t, fns, "slugify").Fn([]value.Value{value.Text("Hello World!")})
	require.NoError(t, err)
	assert.Equal(t, value.Text("hello-world"), v)

	v, err = findNative(t, fns, "starts_with").Fn([]value.Value{value.Text("hello"), value.Text("he")})
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), v)

	v, err = findNative(t, fns, "substring").Fn([]value.Value{value.Text("hello"), value.Number(1), value.Number(3)})
	require.NoError(t, err)
	assert.Equal(t, value.Text("el"), v)

	_, err = findNative(t, fns, "substring").Fn([]value.Value{value.Text("hi"), value.Number(0), value.Number(5)})
	assert.Error(t, err)
}

func TestMathNatives(t *testing.T) {
	fns := mathNatives()

	v, err := findNative(t, fns, "abs").Fn([]value.Value{value.Number(-4)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(4), v)

	v, err = findNative(t, fns, "power").Fn([]value.Value{value.Number(2), value.Number(10)})
	require.NoError(t, err)
	assert.Equal(t, value.Number(1024), v)

	_, err = findNative(t, fns, "modulo").Fn([]value.Value{value.Number(5), value.Number(0)})
	assert.Error(t, err)
}

func TestListNatives(t *testing.T) {
	fns := listNatives()
	list := value.NewList([]value.Value{value.Number(3), value.Number(1), value.Number(2)})

	v, err := findNative(t, fns, "sum").Fn([]value.Value{list})
	require.NoError(t, err)
	assert.Equal(t, value.Number(6), v)

	v, err = findNative(t, fns, "sort_numbers").Fn([]value.Value{list})
	require.NoError(t, err)
	sorted := v.(*value.List)
	assert.Equal(t, "[1, 2, 3]", sorted.ToText())

	v, err = findNative(t, fns, "list_contains").Fn([]value.Value{list, value.Number(2)})
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), v)

	empty := value.NewList(nil)
	_, err = findNative(t, fns, "pop").Fn([]value.Value{empty})
	assert.Error(t, err)
}

func TestMapNatives(t *testing.T) {
	fns := mapNatives()
	m := value.NewMap()
	m.Set("a", value.Number(1))
	m.Set("b", value.Number(2))

	v, err := findNative(t, fns, "has_key").Fn([]value.Value{m, value.Text("a")})
	require.NoError(t, err)
	assert.Equal(t, value.Boolean(true), v)

	v, err = findNative(t, fns, "keys_of").Fn([]value.Value{m})
	require.NoError(t, err)
	assert.Equal(t, "[a, b]", v.(*value.List).ToText())
}

func TestRandomNativesStayInRange(t *testing.T) {
	fns := randomNatives()
	for i := 0; i < 20; i++ {
		v, err := findNative(t, fns, "random_number").Fn([]value.Value{value.Number(1), value.Number(3)})
		require.NoError(t, err)
		n := v.(value.Number)
		assert.True(t, n >= 1 && n <= 3)
	}
}

func TestCryptoNativesAreDeterministic(t *testing.T) {
	fns := cryptoNatives()

	v1, err := findNative(t, fns, "wflhash256").Fn([]value.Value{value.Text("hello")})
	require.NoError(t, err)
	v2, err := findNative(t, fns, "wflhash256").Fn([]value.Value{value.Text("hello")})
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
	assert.Len(t, string(v1.(value.Text)), 64)

	v3, err := findNative(t, fns, "wflhash512").Fn([]value.Value{value.Text("hello")})
	require.NoError(t, err)
	assert.Len(t, string(v3.(value.Text)), 128)
	assert.NotEqual(t, v1, v3)

	mac1, err := findNative(t, fns, "wflmac256").Fn([]value.Value{value.Text("msg"), value.Text("key1")})
	require.NoError(t, err)
	mac2, err := findNative(t, fns, "wflmac256").Fn([]value.Value{value.Text("msg"), value.Text("key2")})
	require.NoError(t, err)
	assert.NotEqual(t, mac1, mac2)
}
