package interp

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// stmtKind names a statement node for logging, trimmed down to the bare
// AST type name ("Display", "If", "CountLoop", ...).
func stmtKind(stmt ast.StmtNode) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", stmt), "*ast.")
}

// execStmt executes one statement, returning a non-sigNone signal when
// control should unwind (break/continue/return/retry), and the return
// value when the signal is sigReturn.
func (it *Interpreter) execStmt(ctx context.Context, env *value.Environment, stmt ast.StmtNode) (signal, value.Value, error) {
	if err := ctx.Err(); err != nil {
		return sigNone, nil, wrapRuntimeErr(err, werrors.RuntimeTimeout, werrors.CondExecutionTimeout, stmt.Location())
	}
	if it.Watchdog != nil {
		if err := it.Watchdog.Check(); err != nil {
			return sigNone, nil, wrapRuntimeErr(err, werrors.RuntimeTimeout, werrors.CondExecutionTimeout, stmt.Location())
		}
	}
	it.Logger.Statement(stmtKind(stmt), stmt.Location().Line)

	switch s := stmt.(type) {
	case *ast.SeqStmt:
		return it.execBlock(ctx, env, s.Statements)

	case *ast.VariableDeclare:
		v, err := it.evalExpr(ctx, env, s.Initializer)
		if err != nil {
			return sigNone, nil, err
		}
		if err := env.Declare(s.Name, v); err != nil {
			return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
		}
		return sigNone, nil, nil

	case *ast.VariableAssign:
		v, err := it.evalExpr(ctx, env, s.Value)
		if err != nil {
			return sigNone, nil, err
		}
		if err := env.Assign(s.Name, v); err != nil {
			return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
		}
		return sigNone, nil, nil

	case *ast.Display:
		for i, expr := range s.Values {
			if i > 0 {
				io.WriteString(it.Stdout, " ")
			}
			v, err := it.evalExpr(ctx, env, expr)
			if err != nil {
				return sigNone, nil, err
			}
			io.WriteString(it.Stdout, v.ToText())
		}
		io.WriteString(it.Stdout, "\n")
		return sigNone, nil, nil

	case *ast.If:
		cond, err := it.evalExpr(ctx, env, s.Condition)
		if err != nil {
			return sigNone, nil, err
		}
		truthy, err := isTruthy(cond, s.Loc)
		if err != nil {
			return sigNone, nil, err
		}
		if truthy {
			return it.execBlock(ctx, value.NewEnvironment(env), s.ThenBranch)
		}
		return it.execBlock(ctx, value.NewEnvironment(env), s.ElseBranch)

	case *ast.CountLoop:
		return it.execCountLoop(ctx, env, s)

	case *ast.ForEachLoop:
		return it.execForEachLoop(ctx, env, s)

	case *ast.WhileLoop:
		return it.execConditionLoop(ctx, env, s.Condition, s.Body, s.Loc, false)

	case *ast.UntilLoop:
		return it.execConditionLoop(ctx, env, s.Condition, s.Body, s.Loc, true)

	case *ast.ForeverLoop:
		for {
			it.Logger.LoopIteration("forever", s.Loc.Line)
			sig, retv, err := it.execBlock(ctx, value.NewEnvironment(env), s.Body)
			if err != nil {
				return sigNone, nil, err
			}
			switch sig {
			case sigBreak:
				return sigNone, nil, nil
			case sigReturn, sigRetry:
				return sig, retv, nil
			}
		}

	case *ast.MainLoop:
		if it.Watchdog != nil {
			it.Watchdog.Disable()
			defer it.Watchdog.Enable()
		}
		for {
			it.Logger.LoopIteration("main", s.Loc.Line)
			sig, retv, err := it.execBlock(ctx, value.NewEnvironment(env), s.Body)
			if err != nil {
				return sigNone, nil, err
			}
			switch sig {
			case sigBreak:
				return sigNone, nil, nil
			case sigReturn, sigRetry:
				return sig, retv, nil
			}
		}

	case *ast.Break:
		return sigBreak, nil, nil

	case *ast.Continue:
		return sigContinue, nil, nil

	case *ast.Return:
		if s.Value == nil {
			return sigReturn, value.Nothing, nil
		}
		v, err := it.evalExpr(ctx, env, s.Value)
		if err != nil {
			return sigNone, nil, err
		}
		return sigReturn, v, nil

	case *ast.ActionDefine:
		fn := value.NewFunction(s.Name, s.Parameters, s.Body, s.IsAsync, env)
		if err := env.Declare(s.Name, fn); err != nil {
			return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
		}
		return sigNone, nil, nil

	case *ast.ActionCallStmt:
		_, err := it.evalActionCall(ctx, env, s.Call)
		return sigNone, nil, err

	case *ast.TryBlock:
		return it.execTryBlock(ctx, env, s)

	case *ast.Retry:
		return sigRetry, nil, nil

	case *ast.PatternDefine:
		return it.execPatternDefine(ctx, env, s)

	case *ast.WaitFor:
		return it.execWaitFor(ctx, env, s)

	case *ast.OpenResource:
		return it.execOpenResource(ctx, env, s)

	case *ast.CloseResource:
		return it.execCloseResource(ctx, env, s)

	case *ast.ReadResource:
		return it.execReadResource(ctx, env, s)

	case *ast.WriteResource:
		return it.execWriteResource(ctx, env, s)

	case *ast.ListenOnPort:
		return it.execListenOnPort(ctx, env, s)

	case *ast.WaitForRequest:
		return it.execWaitForRequest(ctx, env, s)

	case *ast.RespondToRequest:
		return it.execRespondToRequest(ctx, env, s)

	case *ast.ExecuteCommand:
		return it.execExecuteCommand(ctx, env, s)

	case *ast.SpawnCommand:
		return it.execSpawnCommand(ctx, env, s)

	case *ast.KillProcess:
		return it.execKillProcess(ctx, env, s)

	case *ast.WaitForProcess:
		return it.execWaitForProcess(ctx, env, s)

	case *ast.ContainerDefine:
		return it.execContainerDefine(ctx, env, s)

	case *ast.InterfaceDefine:
		return it.execInterfaceDefine(ctx, env, s)

	case *ast.CreateInstance:
		return it.execCreateInstance(ctx, env, s)

	case *ast.TriggerEvent:
		return it.execTriggerEvent(ctx, env, s)

	case *ast.EventHandler:
		return it.execEventHandler(ctx, env, s)

	default:
		return sigNone, nil, werrors.New(werrors.Internal, "undefined invariant: unhandled statement node", sourceLocation(stmt.Location()))
	}
}

// execBlock runs stmts in a sequence, stopping at the first signal or
// error.
func (it *Interpreter) execBlock(ctx context.Context, env *value.Environment, stmts []ast.StmtNode) (signal, value.Value, error) {
	for _, stmt := range stmts {
		sig, retv, err := it.execStmt(ctx, env, stmt)
		if err != nil {
			return sigNone, nil, err
		}
		if sig != sigNone {
			return sig, retv, nil
		}
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execCountLoop(ctx context.Context, env *value.Environment, s *ast.CountLoop) (signal, value.Value, error) {
	startV, err := it.evalExpr(ctx, env, s.Start)
	if err != nil {
		return sigNone, nil, err
	}
	endV, err := it.evalExpr(ctx, env, s.End)
	if err != nil {
		return sigNone, nil, err
	}
	start, err := requireNumber(startV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}
	end, err := requireNumber(endV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	step := 1.0
	if s.Step != nil {
		stepV, err := it.evalExpr(ctx, env, s.Step)
		if err != nil {
			return sigNone, nil, err
		}
		step, err = requireNumber(stepV, s.Loc)
		if err != nil {
			return sigNone, nil, err
		}
	}
	if step < 0 {
		step = -step
	}
	if step == 0 {
		step = 1
	}

	i := start
	for (s.Direction == ast.CountUp && i <= end) || (s.Direction == ast.CountDown && i >= end) {
		it.Logger.LoopIteration("count", s.Loc.Line)
		loopEnv := value.NewEnvironment(env)
		_ = loopEnv.Declare(s.Variable, value.Number(i))
		sig, retv, err := it.execBlock(ctx, loopEnv, s.Body)
		if err != nil {
			return sigNone, nil, err
		}
		switch sig {
		case sigBreak:
			return sigNone, nil, nil
		case sigReturn, sigRetry:
			return sig, retv, nil
		}
		if s.Direction == ast.CountUp {
			i += step
		} else {
			i -= step
		}
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execForEachLoop(ctx context.Context, env *value.Environment, s *ast.ForEachLoop) (signal, value.Value, error) {
	coll, err := it.evalExpr(ctx, env, s.Collection)
	if err != nil {
		return sigNone, nil, err
	}

	iterate := func(v value.Value) (signal, value.Value, error) {
		it.Logger.LoopIteration("for_each", s.Loc.Line)
		loopEnv := value.NewEnvironment(env)
		_ = loopEnv.Declare(s.Variable, v)
		return it.execBlock(ctx, loopEnv, s.Body)
	}

	switch c := coll.(type) {
	case *value.List:
		for i := 0; i < c.Len(); i++ {
			elem, _ := c.Get(i)
			sig, retv, err := iterate(elem)
			if err != nil {
				return sigNone, nil, err
			}
			switch sig {
			case sigBreak:
				return sigNone, nil, nil
			case sigReturn, sigRetry:
				return sig, retv, nil
			}
		}
	case *value.Map:
		for _, k := range c.Keys() {
			v, _ := c.Get(k)
			entry := value.NewMap()
			entry.Set("key", value.Text(k))
			entry.Set("value", v)
			sig, retv, err := iterate(entry)
			if err != nil {
				return sigNone, nil, err
			}
			switch sig {
			case sigBreak:
				return sigNone, nil, nil
			case sigReturn, sigRetry:
				return sig, retv, nil
			}
		}
	default:
		return sigNone, nil, werrors.New(werrors.RuntimeType, "for each requires a list or map", sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execConditionLoop(ctx context.Context, env *value.Environment, cond ast.ExprNode, body []ast.StmtNode, loc ast.SourceLocation, until bool) (signal, value.Value, error) {
	for {
		cv, err := it.evalExpr(ctx, env, cond)
		if err != nil {
			return sigNone, nil, err
		}
		truthy, err := isTruthy(cv, loc)
		if err != nil {
			return sigNone, nil, err
		}
		if until {
			truthy = !truthy
		}
		if !truthy {
			return sigNone, nil, nil
		}

		loopKind := "while"
		if until {
			loopKind = "until"
		}
		it.Logger.LoopIteration(loopKind, loc.Line)
		sig, retv, err := it.execBlock(ctx, value.NewEnvironment(env), body)
		if err != nil {
			return sigNone, nil, err
		}
		switch sig {
		case sigBreak:
			return sigNone, nil, nil
		case sigReturn, sigRetry:
			return sig, retv, nil
		}
	}
}
