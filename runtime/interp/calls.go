package interp

import (
	"context"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// evalActionCall resolves e.Name to a user-defined action or a native
// function and invokes it with its evaluated arguments.
func (it *Interpreter) evalActionCall(ctx context.Context, env *value.Environment, e *ast.ActionCall) (value.Value, error) {
	args, err := it.evalArgs(ctx, env, e.Arguments)
	if err != nil {
		return nil, err
	}

	if callee, ok := env.Get(e.Name); ok {
		return it.call(ctx, callee, args, e.Loc)
	}
	if native, ok := it.Native(e.Name); ok {
		return it.callNative(native, args, e.Loc)
	}
	return nil, werrors.New(werrors.Semantic, "undefined action: "+e.Name, sourceLocation(e.Loc))
}

func (it *Interpreter) evalArgs(ctx context.Context, env *value.Environment, exprs []ast.ExprNode) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, a := range exprs {
		v, err := it.evalExpr(ctx, env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// call dispatches to a user-defined Function or a NativeFunction value
// found by identifier lookup (as opposed to a registry lookup by name).
func (it *Interpreter) call(ctx context.Context, callee value.Value, args []value.Value, loc ast.SourceLocation) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		return it.callFunction(ctx, fn, args, nil, loc)
	case *value.NativeFunction:
		return it.callNative(fn, args, loc)
	default:
		return nil, typeMismatch("Action", callee, loc)
	}
}

func (it *Interpreter) callNative(fn *value.NativeFunction, args []value.Value, loc ast.SourceLocation) (value.Value, error) {
	if err := checkArity(fn.Name, fn.Arity, fn.Variadic, len(args), loc); err != nil {
		return nil, err
	}
	v, err := fn.Fn(args)
	if err != nil {
		return nil, wrapRuntimeErr(err, werrors.RuntimeResource, "", loc)
	}
	return v, nil
}

func checkArity(name string, arity int, variadic bool, got int, loc ast.SourceLocation) error {
	if variadic {
		if got < arity {
			return werrors.New(werrors.Semantic,
				"action "+name+" expects at least "+itoa(arity)+" arguments", sourceLocation(loc))
		}
		return nil
	}
	if got != arity {
		return werrors.New(werrors.Semantic,
			"action "+name+" expects "+itoa(arity)+" arguments, got "+itoa(got), sourceLocation(loc))
	}
	return nil
}

// itoa avoids pulling in strconv just for this one error-message path.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// callFunction invokes a user-defined action. receiverEnv, when
// non-nil, is spliced into the scope chain between the call frame and
// the function's own closure so container methods see the instance's
// properties as bare identifiers, per spec.md's implicit-this rule.
func (it *Interpreter) callFunction(ctx context.Context, fn *value.Function, args []value.Value, receiverEnv *value.Environment, loc ast.SourceLocation) (value.Value, error) {
	if len(args) != len(fn.Parameters) {
		return nil, werrors.New(werrors.Semantic,
			"action "+fn.Name+" expects "+itoa(len(fn.Parameters))+" arguments, got "+itoa(len(args)),
			sourceLocation(loc))
	}

	closure, ok := fn.Closure()
	if !ok {
		return nil, werrors.New(werrors.Internal, "undefined invariant: action closure no longer reachable", sourceLocation(loc))
	}

	parent := closure
	if receiverEnv != nil {
		parent = receiverEnv
	}
	callEnv := value.NewEnvironment(parent)
	for i, p := range fn.Parameters {
		if err := callEnv.Declare(p, args[i]); err != nil {
			return nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(loc))
		}
	}

	if fn.IsAsync {
		return it.callAsync(ctx, fn, callEnv, loc)
	}

	sig, retv, err := it.execBlock(ctx, callEnv, fn.Body)
	if err != nil {
		return nil, err
	}
	if sig == sigReturn {
		return retv, nil
	}
	return value.Nothing, nil
}
