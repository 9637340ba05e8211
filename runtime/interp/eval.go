package interp

import (
	"context"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

func (it *Interpreter) evalExpr(ctx context.Context, env *value.Environment, expr ast.ExprNode) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e.Value), nil

	case *ast.ListLiteralExpr:
		elems := make([]value.Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := it.evalExpr(ctx, env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewList(elems), nil

	case *ast.IdentifierExpr:
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, werrors.New(werrors.Semantic, "undefined name: "+e.Name, sourceLocation(e.Loc))
		}
		return v, nil

	case *ast.BinaryExpr:
		return it.evalBinary(ctx, env, e)

	case *ast.LogicalExpr:
		return it.evalLogical(ctx, env, e)

	case *ast.UnaryExpr:
		v, err := it.evalExpr(ctx, env, e.Operand)
		if err != nil {
			return nil, err
		}
		n, err := requireNumber(v, e.Loc)
		if err != nil {
			return nil, err
		}
		return value.Number(-n), nil

	case *ast.ActionCall:
		return it.evalActionCall(ctx, env, e)

	case *ast.IndexExpr:
		return it.evalIndex(ctx, env, e)

	case *ast.MemberAccessExpr:
		return it.evalMemberAccess(ctx, env, e)

	case *ast.StaticMemberAccessExpr:
		return it.evalStaticMemberAccess(ctx, env, e)

	case *ast.ParentMethodCall:
		return it.evalParentMethodCall(ctx, env, e)

	case *ast.PatternMatchExpr:
		return it.evalPatternMatch(ctx, env, e)

	case *ast.PatternFindExpr:
		return it.evalPatternFind(ctx, env, e)

	case *ast.PatternFindAllExpr:
		return it.evalPatternFindAll(ctx, env, e)

	case *ast.PatternReplaceExpr:
		return it.evalPatternReplace(ctx, env, e)

	case *ast.PatternSplitExpr:
		return it.evalPatternSplit(ctx, env, e)

	default:
		return nil, werrors.New(werrors.Internal, "undefined invariant: unhandled expression node", sourceLocation(expr.Location()))
	}
}

func literalValue(v interface{}) value.Value {
	switch lv := v.(type) {
	case int64:
		return value.Number(float64(lv))
	case float64:
		return value.Number(lv)
	case string:
		return value.Text(lv)
	case bool:
		return value.Boolean(lv)
	case nil:
		return value.Nothing
	default:
		return value.Nothing
	}
}

func (it *Interpreter) evalLogical(ctx context.Context, env *value.Environment, e *ast.LogicalExpr) (value.Value, error) {
	if e.Operator == ast.LogNot {
		rv, err := it.evalExpr(ctx, env, e.Right)
		if err != nil {
			return nil, err
		}
		truthy, err := isTruthy(rv, e.Loc)
		if err != nil {
			return nil, err
		}
		return value.Boolean(!truthy), nil
	}

	lv, err := it.evalExpr(ctx, env, e.Left)
	if err != nil {
		return nil, err
	}
	ltruthy, err := isTruthy(lv, e.Loc)
	if err != nil {
		return nil, err
	}

	if e.Operator == ast.LogAnd && !ltruthy {
		return value.Boolean(false), nil
	}
	if e.Operator == ast.LogOr && ltruthy {
		return value.Boolean(true), nil
	}

	rv, err := it.evalExpr(ctx, env, e.Right)
	if err != nil {
		return nil, err
	}
	rtruthy, err := isTruthy(rv, e.Loc)
	if err != nil {
		return nil, err
	}
	return value.Boolean(rtruthy), nil
}

func (it *Interpreter) evalBinary(ctx context.Context, env *value.Environment, e *ast.BinaryExpr) (value.Value, error) {
	lv, err := it.evalExpr(ctx, env, e.Left)
	if err != nil {
		return nil, err
	}
	rv, err := it.evalExpr(ctx, env, e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case ast.OpWith:
		return value.Text(lv.ToText() + rv.ToText()), nil
	case ast.OpEqual:
		return value.Boolean(valuesEqual(lv, rv)), nil
	case ast.OpNotEqual:
		return value.Boolean(!valuesEqual(lv, rv)), nil
	case ast.OpIs:
		return value.Boolean(valuesEqual(lv, rv)), nil
	case ast.OpIsNot:
		return value.Boolean(!valuesEqual(lv, rv)), nil
	}

	// Remaining operators are arithmetic or ordering comparisons, both
	// of which require two Numbers.
	ln, err := requireNumber(lv, e.Loc)
	if err != nil {
		return nil, err
	}
	rn, err := requireNumber(rv, e.Loc)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case ast.OpPlus:
		return value.Number(ln + rn), nil
	case ast.OpMinus:
		return value.Number(ln - rn), nil
	case ast.OpTimes:
		return value.Number(ln * rn), nil
	case ast.OpDividedBy:
		if rn == 0 {
			return nil, werrors.NewCondition(werrors.CondDivisionByZero, "division by zero", sourceLocation(e.Loc))
		}
		return value.Number(ln / rn), nil
	case ast.OpMod:
		if rn == 0 {
			return nil, werrors.NewCondition(werrors.CondDivisionByZero, "division by zero", sourceLocation(e.Loc))
		}
		return value.Number(float64(int64(ln) % int64(rn))), nil
	case ast.OpGreaterThan, ast.OpAbove:
		return value.Boolean(ln > rn), nil
	case ast.OpGreaterThanOrEqual:
		return value.Boolean(ln >= rn), nil
	case ast.OpLessThan, ast.OpBelow:
		return value.Boolean(ln < rn), nil
	case ast.OpLessThanOrEqual:
		return value.Boolean(ln <= rn), nil
	default:
		return nil, werrors.New(werrors.Internal, "undefined invariant: unhandled binary operator", sourceLocation(e.Loc))
	}
}

func (it *Interpreter) evalIndex(ctx context.Context, env *value.Environment, e *ast.IndexExpr) (value.Value, error) {
	obj, err := it.evalExpr(ctx, env, e.Object)
	if err != nil {
		return nil, err
	}
	idx, err := it.evalExpr(ctx, env, e.Index)
	if err != nil {
		return nil, err
	}

	switch o := obj.(type) {
	case *value.List:
		n, err := requireNumber(idx, e.Loc)
		if err != nil {
			return nil, err
		}
		v, ok := o.Get(int(n))
		if !ok {
			return nil, werrors.NewCondition(werrors.CondIndexOutOfBounds, "index out of bounds", sourceLocation(e.Loc)).
				WithData("index", int(n)).WithData("length", o.Len())
		}
		return v, nil
	case *value.Map:
		k, err := requireText(idx, e.Loc)
		if err != nil {
			return nil, err
		}
		v, ok := o.Get(k)
		if !ok {
			return nil, werrors.NewCondition(werrors.CondKeyNotFound, "key not found: "+k, sourceLocation(e.Loc)).
				WithData("key", k)
		}
		return v, nil
	default:
		return nil, typeMismatch("List or Map", obj, e.Loc)
	}
}

func (it *Interpreter) evalPatternMatch(ctx context.Context, env *value.Environment, e *ast.PatternMatchExpr) (value.Value, error) {
	text, pat, err := it.evalTextAndPattern(ctx, env, e.Text, e.Pattern, e.Loc)
	if err != nil {
		return nil, err
	}
	ok, err := patternMatches(pat, text, e.Loc)
	if err != nil {
		return nil, err
	}
	return value.Boolean(ok), nil
}

func (it *Interpreter) evalPatternFind(ctx context.Context, env *value.Environment, e *ast.PatternFindExpr) (value.Value, error) {
	text, pat, err := it.evalTextAndPattern(ctx, env, e.Text, e.Pattern, e.Loc)
	if err != nil {
		return nil, err
	}
	return patternFind(pat, text, e.Loc)
}

func (it *Interpreter) evalPatternFindAll(ctx context.Context, env *value.Environment, e *ast.PatternFindAllExpr) (value.Value, error) {
	text, pat, err := it.evalTextAndPattern(ctx, env, e.Text, e.Pattern, e.Loc)
	if err != nil {
		return nil, err
	}
	return patternFindAll(pat, text, e.Loc)
}

func (it *Interpreter) evalPatternReplace(ctx context.Context, env *value.Environment, e *ast.PatternReplaceExpr) (value.Value, error) {
	source, pat, err := it.evalTextAndPattern(ctx, env, e.Source, e.Pattern, e.Loc)
	if err != nil {
		return nil, err
	}
	replV, err := it.evalExpr(ctx, env, e.Replacement)
	if err != nil {
		return nil, err
	}
	repl, err := requireText(replV, e.Loc)
	if err != nil {
		return nil, err
	}
	return patternReplace(pat, source, repl, e.Loc)
}

func (it *Interpreter) evalPatternSplit(ctx context.Context, env *value.Environment, e *ast.PatternSplitExpr) (value.Value, error) {
	text, pat, err := it.evalTextAndPattern(ctx, env, e.Text, e.Pattern, e.Loc)
	if err != nil {
		return nil, err
	}
	return patternSplit(pat, text, e.Loc)
}

// evalTextAndPattern evaluates the text operand and resolves the
// pattern operand to a *value.Pattern, used by all five pattern
// expression forms.
func (it *Interpreter) evalTextAndPattern(ctx context.Context, env *value.Environment, textExpr, patExpr ast.ExprNode, loc ast.SourceLocation) (string, *value.Pattern, error) {
	tv, err := it.evalExpr(ctx, env, textExpr)
	if err != nil {
		return "", nil, err
	}
	text, err := requireText(tv, loc)
	if err != nil {
		return "", nil, err
	}

	pv, err := it.evalExpr(ctx, env, patExpr)
	if err != nil {
		return "", nil, err
	}
	pat, ok := pv.(*value.Pattern)
	if !ok {
		return "", nil, typeMismatch("Pattern", pv, loc)
	}
	return text, pat, nil
}
