package stdlib

import (
	"sort"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// listNatives generalizes native_legacy.go's Array namespace
// (ArrayLength, ArrayContains — originally hand-switched over Go's
// []interface{}/[]string/[]int/... types) to the single *value.List
// representation every WFL list shares, adding the mutation and
// aggregation operations spec.md's "list" stdlib category implies
// beyond what Conduit's registry catalogued.
func listNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("list_contains", 2, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			for i := 0; i < l.Len(); i++ {
				v, _ := l.Get(i)
				if v.ToText() == args[1].ToText() && v.Kind() == args[1].Kind() {
					return value.Boolean(true), nil
				}
			}
			return value.Boolean(false), nil
		}),
		native("push", 2, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			l.Push(args[1])
			return l, nil
		}),
		native("pop", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := l.Pop()
			if !ok {
				return nil, werrors.NewCondition(werrors.CondPopFromEmpty,
					"cannot pop from empty list", werrors.SourceLocation{})
			}
			return v, nil
		}),
		native("first", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := l.Get(0)
			if !ok {
				return nil, werrors.NewCondition(werrors.CondIndexOutOfBounds,
					"list is empty", werrors.SourceLocation{})
			}
			return v, nil
		}),
		native("last", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := l.Get(l.Len() - 1)
			if !ok {
				return nil, werrors.NewCondition(werrors.CondIndexOutOfBounds,
					"list is empty", werrors.SourceLocation{})
			}
			return v, nil
		}),
		native("reverse", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]value.Value, l.Len())
			for i := 0; i < l.Len(); i++ {
				v, _ := l.Get(i)
				elems[l.Len()-1-i] = v
			}
			return value.NewList(elems), nil
		}),
		native("sort_numbers", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			elems := make([]value.Value, l.Len())
			nums := make([]float64, l.Len())
			for i := 0; i < l.Len(); i++ {
				v, _ := l.Get(i)
				n, err := asNumber(v)
				if err != nil {
					return nil, err
				}
				nums[i] = n
			}
			idx := make([]int, l.Len())
			for i := range idx {
				idx[i] = i
			}
			sort.Slice(idx, func(i, j int) bool { return nums[idx[i]] < nums[idx[j]] })
			for i, j := range idx {
				v, _ := l.Get(j)
				elems[i] = v
			}
			return value.NewList(elems), nil
		}),
		native("sum", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			total := 0.0
			for i := 0; i < l.Len(); i++ {
				v, _ := l.Get(i)
				n, err := asNumber(v)
				if err != nil {
					return nil, err
				}
				total += n
			}
			return value.Number(total), nil
		}),
	}
}

// mapNatives generalizes native_legacy.go's single Hash.has_key entry
// (hand-switched over six concrete Go map-type permutations) to
// *value.Map, adding the insertion-order-preserving Keys/Values/merge
// operations the concrete WFL Map type supports directly.
func mapNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("has_key", 2, func(args []value.Value) (value.Value, error) {
			m, err := asMap(args[0])
			if err != nil {
				return nil, err
			}
			key, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			_, ok := m.Get(key)
			return value.Boolean(ok), nil
		}),
		native("keys_of", 1, func(args []value.Value) (value.Value, error) {
			m, err := asMap(args[0])
			if err != nil {
				return nil, err
			}
			keys := m.Keys()
			elems := make([]value.Value, len(keys))
			for i, k := range keys {
				elems[i] = value.Text(k)
			}
			return value.NewList(elems), nil
		}),
		native("values_of", 1, func(args []value.Value) (value.Value, error) {
			m, err := asMap(args[0])
			if err != nil {
				return nil, err
			}
			keys := m.Keys()
			elems := make([]value.Value, len(keys))
			for i, k := range keys {
				v, _ := m.Get(k)
				elems[i] = v
			}
			return value.NewList(elems), nil
		}),
		native("delete_key", 2, func(args []value.Value) (value.Value, error) {
			m, err := asMap(args[0])
			if err != nil {
				return nil, err
			}
			key, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			return value.Boolean(m.Delete(key)), nil
		}),
		native("merge_into", 2, func(args []value.Value) (value.Value, error) {
			into, err := asMap(args[0])
			if err != nil {
				return nil, err
			}
			from, err := asMap(args[1])
			if err != nil {
				return nil, err
			}
			for _, k := range from.Keys() {
				v, _ := from.Get(k)
				into.Set(k, v)
			}
			return into, nil
		}),
	}
}
