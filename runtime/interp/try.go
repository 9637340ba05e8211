package interp

import (
	"context"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// execTryBlock runs s.Body, dispatching any WFLError to the first
// matching When clause in source order, falling back to Catch, and
// always running Finally on every exit path — normal completion, a
// handled error, an unhandled error still propagating, or a non-local
// signal (break/continue/return) unwinding out of the body.
func (it *Interpreter) execTryBlock(ctx context.Context, env *value.Environment, s *ast.TryBlock) (signal, value.Value, error) {
	retries := 0

	for {
		sig, retv, err := it.execBlock(ctx, value.NewEnvironment(env), s.Body)

		if err == nil {
			fsig, fretv, ferr := it.runFinally(ctx, env, s.Finally)
			if ferr != nil {
				return sigNone, nil, ferr
			}
			if fsig != sigNone {
				return fsig, fretv, nil
			}
			return sig, retv, nil
		}

		we, ok := err.(werrors.WFLError)
		if !ok {
			fsig, fretv, ferr := it.runFinally(ctx, env, s.Finally)
			if ferr != nil {
				return sigNone, nil, ferr
			}
			if fsig != sigNone {
				return fsig, fretv, nil
			}
			return sigNone, nil, err
		}

		handlerBody, matched := it.matchHandler(s, we)
		if !matched {
			fsig, fretv, ferr := it.runFinally(ctx, env, s.Finally)
			if ferr != nil {
				return sigNone, nil, ferr
			}
			if fsig != sigNone {
				return fsig, fretv, nil
			}
			return sigNone, nil, we
		}

		handlerEnv := value.NewEnvironment(env)
		hsig, hretv, herr := it.execBlock(ctx, handlerEnv, handlerBody)

		if hsig == sigRetry {
			retries++
			if retries > MaxRetries {
				fsig, fretv, ferr := it.runFinally(ctx, env, s.Finally)
				if ferr != nil {
					return sigNone, nil, ferr
				}
				if fsig != sigNone {
					return fsig, fretv, nil
				}
				return sigNone, nil, werrors.New(werrors.RuntimeTimeout,
					"retry exceeded the maximum of 1000 attempts", sourceLocation(s.Loc))
			}
			continue
		}

		fsig, fretv, ferr := it.runFinally(ctx, env, s.Finally)
		if ferr != nil {
			return sigNone, nil, ferr
		}
		if fsig != sigNone {
			return fsig, fretv, nil
		}
		if herr != nil {
			return sigNone, nil, herr
		}
		return hsig, hretv, nil
	}
}

// matchHandler finds the first When clause (in source order) whose
// ErrorKind matches we, falling back to Catch if present.
func (it *Interpreter) matchHandler(s *ast.TryBlock, we werrors.WFLError) ([]ast.StmtNode, bool) {
	for _, clause := range s.When {
		if we.Matches(clause.ErrorKind) {
			return clause.Body, true
		}
	}
	if s.Catch != nil {
		return s.Catch, true
	}
	return nil, false
}

func (it *Interpreter) runFinally(ctx context.Context, env *value.Environment, finally []ast.StmtNode) (signal, value.Value, error) {
	if finally == nil {
		return sigNone, nil, nil
	}
	return it.execBlock(ctx, value.NewEnvironment(env), finally)
}
