package stdlib

import (
	"math"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// mathNatives has no teacher counterpart (Conduit's registry has no
// Math namespace at all); grounded directly on spec.md §1's "core,
// math" stdlib categories and built with plain math.* calls, since
// nothing in the example pack wraps basic arithmetic functions.
func mathNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("abs", 1, func(args []value.Value) (value.Value, error) {
			n, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Abs(n)), nil
		}),
		native("round", 1, func(args []value.Value) (value.Value, error) {
			n, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Round(n)), nil
		}),
		native("floor", 1, func(args []value.Value) (value.Value, error) {
			n, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Floor(n)), nil
		}),
		native("ceiling", 1, func(args []value.Value) (value.Value, error) {
			n, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Ceil(n)), nil
		}),
		native("sqrt", 1, func(args []value.Value) (value.Value, error) {
			n, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, werrors.NewCondition(werrors.CondInvalidRange,
					"cannot take the square root of a negative number", werrors.SourceLocation{})
			}
			return value.Number(math.Sqrt(n)), nil
		}),
		native("power", 2, func(args []value.Value) (value.Value, error) {
			base, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			exp, err := asNumber(args[1])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Pow(base, exp)), nil
		}),
		native("modulo", 2, func(args []value.Value) (value.Value, error) {
			a, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asNumber(args[1])
			if err != nil {
				return nil, err
			}
			if b == 0 {
				return nil, werrors.NewCondition(werrors.CondDivisionByZero,
					"modulo by zero", werrors.SourceLocation{})
			}
			return value.Number(math.Mod(a, b)), nil
		}),
		native("min_of", 2, func(args []value.Value) (value.Value, error) {
			a, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asNumber(args[1])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Min(a, b)), nil
		}),
		native("max_of", 2, func(args []value.Value) (value.Value, error) {
			a, err := asNumber(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asNumber(args[1])
			if err != nil {
				return nil, err
			}
			return value.Number(math.Max(a, b)), nil
		}),
	}
}
