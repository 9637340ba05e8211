package interp

import (
	"context"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/scheduler"
	"github.com/wfl-lang/wfl/runtime/value"
)

// callAsync runs fn's body on the scheduler's worker rather than
// inline, so other queued tasks (request handlers, other async calls
// already in flight) can run while this call's goroutine blocks on the
// returned Future — the only place in the interpreter concurrency
// actually happens.
func (it *Interpreter) callAsync(ctx context.Context, fn *value.Function, callEnv *value.Environment, loc ast.SourceLocation) (value.Value, error) {
	var result value.Value = value.Nothing

	future, err := it.Scheduler.Spawn(scheduler.Task{
		Name: fn.Name,
		Fn: func(taskCtx context.Context) error {
			sig, retv, err := it.execBlock(taskCtx, callEnv, fn.Body)
			if err != nil {
				return err
			}
			if sig == sigReturn {
				result = retv
			}
			return nil
		},
	})
	if err != nil {
		return nil, werrors.New(werrors.Internal, "undefined invariant: "+err.Error(), sourceLocation(loc))
	}

	if werr := future.Wait(ctx); werr != nil {
		return nil, werr
	}
	return result, nil
}

// execWaitFor evaluates s.Expr as a suspension point: a call to an
// async action runs on the scheduler and is awaited here; any other
// expression already completes synchronously, so waiting on it is a
// direct evaluation.
func (it *Interpreter) execWaitFor(ctx context.Context, env *value.Environment, s *ast.WaitFor) (signal, value.Value, error) {
	v, err := it.evalAwaited(ctx, env, s.Expr)
	if err != nil {
		return sigNone, nil, err
	}
	if s.Variable != "" {
		if err := env.Declare(s.Variable, v); err != nil {
			return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
		}
	}
	return sigNone, nil, nil
}

func (it *Interpreter) evalAwaited(ctx context.Context, env *value.Environment, expr ast.ExprNode) (value.Value, error) {
	call, ok := expr.(*ast.ActionCall)
	if !ok {
		return it.evalExpr(ctx, env, expr)
	}
	callee, ok := env.Get(call.Name)
	if !ok {
		return it.evalExpr(ctx, env, expr)
	}
	fn, ok := callee.(*value.Function)
	if !ok || !fn.IsAsync {
		return it.evalExpr(ctx, env, expr)
	}

	args, err := it.evalArgs(ctx, env, call.Arguments)
	if err != nil {
		return nil, err
	}
	return it.callFunction(ctx, fn, args, nil, call.Loc)
}
