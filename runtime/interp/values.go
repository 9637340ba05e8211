package interp

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

func typeName(v value.Value) string {
	switch v.(type) {
	case value.Number:
		return "Number"
	case value.Text:
		return "Text"
	case value.Boolean:
		return "Boolean"
	case *value.List:
		return "List"
	case *value.Map:
		return "Map"
	case *value.Function, *value.NativeFunction:
		return "Action"
	case *value.Pattern:
		return "Pattern"
	case *value.Container:
		return "Container"
	case *value.Class:
		return "Class"
	case *value.Interface:
		return "Interface"
	case *value.Resource:
		return "Resource"
	case value.Date:
		return "Date"
	case value.Time:
		return "Time"
	case value.DateTime:
		return "DateTime"
	case value.Duration:
		return "Duration"
	default:
		return "Nothing"
	}
}

func typeMismatch(expected string, got value.Value, loc ast.SourceLocation) error {
	return werrors.NewCondition(werrors.CondTypeMismatch,
		"expected "+expected+" got "+typeName(got), sourceLocation(loc)).
		WithData("expected", expected).
		WithData("actual", typeName(got))
}

func requireNumber(v value.Value, loc ast.SourceLocation) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, typeMismatch("Number", v, loc)
	}
	return float64(n), nil
}

func requireText(v value.Value, loc ast.SourceLocation) (string, error) {
	t, ok := v.(value.Text)
	if !ok {
		return "", typeMismatch("Text", v, loc)
	}
	return string(t), nil
}

// isTruthy implements WFL's condition semantics: Booleans are used
// directly, Nothing is false, every other value (including 0 and "")
// is true — WFL has no implicit numeric/string falsiness.
func isTruthy(v value.Value, loc ast.SourceLocation) (bool, error) {
	if b, ok := v.(value.Boolean); ok {
		return bool(b), nil
	}
	return v.Kind() != value.KindNothing, nil
}

// valuesEqual implements WFL's `is equal to` / `is` structural equality.
func valuesEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case value.Number:
		return av == b.(value.Number)
	case value.Text:
		return av == b.(value.Text)
	case value.Boolean:
		return av == b.(value.Boolean)
	case *value.List:
		bv := b.(*value.List)
		if av.Len() != bv.Len() {
			return false
		}
		for i := 0; i < av.Len(); i++ {
			ea, _ := av.Get(i)
			eb, _ := bv.Get(i)
			if !valuesEqual(ea, eb) {
				return false
			}
		}
		return true
	case *value.Map:
		bv := b.(*value.Map)
		if av.Len() != bv.Len() {
			return false
		}
		for _, k := range av.Keys() {
			va, _ := av.Get(k)
			vb, ok := bv.Get(k)
			if !ok || !valuesEqual(va, vb) {
				return false
			}
		}
		return true
	default:
		if a.Kind() == value.KindNothing {
			return true
		}
		return a == b
	}
}
