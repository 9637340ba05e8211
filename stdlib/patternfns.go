package stdlib

import (
	"errors"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/pattern"
	"github.com/wfl-lang/wfl/runtime/value"
)

func asPattern(v value.Value) (*value.Pattern, error) {
	p, ok := v.(*value.Pattern)
	if !ok {
		return nil, typeMismatch("Pattern", v)
	}
	return p, nil
}

func wrapPatternErr(err error) error {
	cond := werrors.CondPatternSteps
	if errors.Is(err, pattern.ErrDepthLimitExceeded) {
		cond = werrors.CondPatternDepth
	}
	return werrors.NewCondition(cond, err.Error(), werrors.SourceLocation{})
}

// patternNatives exposes a boolean-only match test as a plain
// callable, alongside `find`/`find_all`/`replace`/`split`, which
// spec.md's grammar already surfaces as dedicated expression forms
// (runtime/interp/patterns.go) rather than named function calls. This
// namespace fills the one gap those forms leave: asking whether a
// pattern matches without paying for a capture object.
func patternNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("pattern_matches", 2, func(args []value.Value) (value.Value, error) {
			p, err := asPattern(args[0])
			if err != nil {
				return nil, err
			}
			text, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			ok, merr := pattern.Matches(p.Program, text)
			if merr != nil {
				return nil, wrapPatternErr(merr)
			}
			return value.Boolean(ok), nil
		}),
	}
}
