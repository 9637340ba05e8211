package interp

import (
	"context"
	"errors"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/pattern"
	"github.com/wfl-lang/wfl/runtime/value"
)

// wrapPatternErr classifies a pattern-engine failure into the closed
// pattern condition taxonomy, distinguishing step-limit overruns from
// lookaround recursion-depth overruns.
func wrapPatternErr(err error, loc ast.SourceLocation) error {
	if err == nil {
		return nil
	}
	cond := werrors.CondPatternSteps
	if errors.Is(err, pattern.ErrDepthLimitExceeded) {
		cond = werrors.CondPatternDepth
	}
	return wrapRuntimeErr(err, werrors.RuntimePattern, cond, loc)
}

func (it *Interpreter) execPatternDefine(ctx context.Context, env *value.Environment, s *ast.PatternDefine) (signal, value.Value, error) {
	prog, err := pattern.GetOrCompile(s)
	if err != nil {
		return sigNone, nil, werrors.New(werrors.RuntimePattern, err.Error(), sourceLocation(s.Loc))
	}
	pv := &value.Pattern{Name: s.Name, Program: prog}
	if err := env.Declare(s.Name, pv); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func patternMatches(pat *value.Pattern, text string, loc ast.SourceLocation) (bool, error) {
	ok, err := pattern.Matches(pat.Program, text)
	if err != nil {
		return false, wrapPatternErr(err, loc)
	}
	return ok, nil
}

// buildMatchObject renders a pattern.Match as the {match, position,
// captures} Map the language exposes for find/find-all results, with
// a capture's value as Text when it participated or Nothing otherwise.
func buildMatchObject(m *pattern.Match) value.Value {
	if m == nil {
		return value.Nothing
	}
	obj := value.NewMap()
	obj.Set("match", value.Text(m.Text))
	obj.Set("position", value.Number(float64(m.Start)))
	captures := value.NewMap()
	for name, cap := range m.Captures {
		if cap == nil {
			captures.Set(name, value.Nothing)
		} else {
			captures.Set(name, value.Text(*cap))
		}
	}
	obj.Set("captures", captures)
	return obj
}

func patternFind(pat *value.Pattern, text string, loc ast.SourceLocation) (value.Value, error) {
	m, err := pattern.Find(pat.Program, text)
	if err != nil {
		return nil, wrapPatternErr(err, loc)
	}
	return buildMatchObject(m), nil
}

func patternFindAll(pat *value.Pattern, text string, loc ast.SourceLocation) (value.Value, error) {
	matches, err := pattern.FindAll(pat.Program, text)
	if err != nil {
		return nil, wrapPatternErr(err, loc)
	}
	elems := make([]value.Value, len(matches))
	for i, m := range matches {
		elems[i] = buildMatchObject(m)
	}
	return value.NewList(elems), nil
}

func patternReplace(pat *value.Pattern, source, replacement string, loc ast.SourceLocation) (value.Value, error) {
	out, err := pattern.Replace(pat.Program, source, replacement)
	if err != nil {
		return nil, wrapPatternErr(err, loc)
	}
	return value.Text(out), nil
}

func patternSplit(pat *value.Pattern, text string, loc ast.SourceLocation) (value.Value, error) {
	parts, err := pattern.Split(pat.Program, text)
	if err != nil {
		return nil, wrapPatternErr(err, loc)
	}
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.Text(p)
	}
	return value.NewList(elems), nil
}
