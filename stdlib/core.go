package stdlib

import "github.com/wfl-lang/wfl/runtime/value"

// coreNatives covers the handful of functions that operate on any
// Value regardless of its concrete kind, grounded on the teacher's own
// small set of namespace-less helpers in native_legacy.go (UUID.generate,
// Hash.has_key) generalized to the WFL value model.
func coreNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("type_of", 1, func(args []value.Value) (value.Value, error) {
			return value.Text(kindName(args[0].Kind())), nil
		}),
		native("to_text", 1, func(args []value.Value) (value.Value, error) {
			return value.Text(args[0].ToText()), nil
		}),
		native("is_nothing", 1, func(args []value.Value) (value.Value, error) {
			return value.Boolean(args[0].Kind() == value.KindNothing), nil
		}),
		native("length", 1, func(args []value.Value) (value.Value, error) {
			return polyLength(args[0])
		}),
	}
}

func kindName(k value.Kind) string {
	switch k {
	case value.KindNumber:
		return "number"
	case value.KindText:
		return "text"
	case value.KindBoolean:
		return "boolean"
	case value.KindNothing:
		return "nothing"
	case value.KindList:
		return "list"
	case value.KindMap:
		return "map"
	case value.KindDate:
		return "date"
	case value.KindTime:
		return "time"
	case value.KindDateTime:
		return "datetime"
	case value.KindDuration:
		return "duration"
	case value.KindFunction, value.KindNativeFunction:
		return "action"
	case value.KindPattern:
		return "pattern"
	case value.KindContainer:
		return "container"
	case value.KindClass:
		return "class"
	case value.KindInterface:
		return "interface"
	case value.KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// polyLength backs the single `length` native (catalogued once, under
// Core) for text, lists and maps alike, since spec.md's
// surface syntax (`length of x`) is a single call form regardless of
// x's kind.
func polyLength(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Text:
		return value.Number(float64(len([]rune(string(x))))), nil
	case *value.List:
		return value.Number(float64(x.Len())), nil
	case *value.Map:
		return value.Number(float64(x.Len())), nil
	default:
		return nil, typeMismatch("Text, List, or Map", v)
	}
}
