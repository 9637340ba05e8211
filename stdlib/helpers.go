// Package stdlib is WFL's native function registry: a name->signature
// catalogue consulted by the type checker, plus the Go bodies actually
// invoked by the interpreter for the representative subset its test
// suite exercises. Bodies are registered into an *interp.Interpreter
// by RegisterNatives, kept in a package separate from runtime/interp so the
// interpreter itself never needs to import the standard library.
package stdlib

import (
	"fmt"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

func typeMismatch(want string, got value.Value) error {
	return werrors.NewCondition(werrors.CondTypeMismatch,
		fmt.Sprintf("expected %s, got %s", want, got.ToText()),
		werrors.SourceLocation{})
}

func asText(v value.Value) (string, error) {
	t, ok := v.(value.Text)
	if !ok {
		return "", typeMismatch("Text", v)
	}
	return string(t), nil
}

func asNumber(v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, typeMismatch("Number", v)
	}
	return float64(n), nil
}

func asInt(v value.Value) (int, error) {
	n, err := asNumber(v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func asBool(v value.Value) (bool, error) {
	b, ok := v.(value.Boolean)
	if !ok {
		return false, typeMismatch("Boolean", v)
	}
	return bool(b), nil
}

func asList(v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, typeMismatch("List", v)
	}
	return l, nil
}

func asMap(v value.Value) (*value.Map, error) {
	m, ok := v.(*value.Map)
	if !ok {
		return nil, typeMismatch("Map", v)
	}
	return m, nil
}

func asDateTime(v value.Value) (value.DateTime, error) {
	dt, ok := v.(value.DateTime)
	if !ok {
		return value.DateTime{}, typeMismatch("DateTime", v)
	}
	return dt, nil
}

// native is a small builder for the common fixed-arity case, cutting
// the arity/Fn boilerplate every registration would otherwise repeat.
func native(name string, arity int, fn func(args []value.Value) (value.Value, error)) *value.NativeFunction {
	return &value.NativeFunction{Name: name, Arity: arity, Fn: fn}
}

func variadicNative(name string, minArity int, fn func(args []value.Value) (value.Value, error)) *value.NativeFunction {
	return &value.NativeFunction{Name: name, Arity: minArity, Variadic: true, Fn: fn}
}
