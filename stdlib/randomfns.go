package stdlib

import (
	"math/rand/v2"

	"github.com/google/uuid"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// randomNatives replaces native_legacy.go's lone UUID.generate entry
// (`uuid.New().String()`, kept here verbatim) with a full random
// namespace; math/rand/v2 has no example-pack precedent since none of
// the retrieved repos need randomness, but it's the standard-library
// successor to math/rand and needs no justification as a dependency.
func randomNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("random_number", 2, func(args []value.Value) (value.Value, error) {
			lo, err := asInt(args[0])
			if err != nil {
				return nil, err
			}
			hi, err := asInt(args[1])
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, werrors.NewCondition(werrors.CondInvalidRange,
					"random range upper bound is below the lower bound", werrors.SourceLocation{})
			}
			return value.Number(float64(lo + rand.IntN(hi-lo+1))), nil
		}),
		native("random_float", 0, func(args []value.Value) (value.Value, error) {
			return value.Number(rand.Float64()), nil
		}),
		native("random_choice", 1, func(args []value.Value) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			if l.Len() == 0 {
				return nil, werrors.NewCondition(werrors.CondIndexOutOfBounds,
					"cannot choose from an empty list", werrors.SourceLocation{})
			}
			v, _ := l.Get(rand.IntN(l.Len()))
			return v, nil
		}),
		native("uuid_generate", 0, func(args []value.Value) (value.Value, error) {
			return value.Text(uuid.New().String()), nil
		}),
	}
}
