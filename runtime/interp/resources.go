package interp

import (
	"context"
	"errors"
	"os"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/resource"
	"github.com/wfl-lang/wfl/runtime/value"
)

// classifyOSError maps a Go stdlib I/O error to the closed resource
// condition taxonomy, falling back to a bare RuntimeResource error for
// anything the taxonomy doesn't name specifically.
func classifyOSError(err error, loc ast.SourceLocation) error {
	switch {
	case os.IsNotExist(err):
		return werrors.NewCondition(werrors.CondFileNotFound, err.Error(), sourceLocation(loc))
	case os.IsPermission(err):
		return werrors.NewCondition(werrors.CondPermissionDenied, err.Error(), sourceLocation(loc))
	case errors.Is(err, context.DeadlineExceeded):
		return werrors.NewCondition(werrors.CondNetworkTimeout, err.Error(), sourceLocation(loc))
	default:
		return werrors.New(werrors.RuntimeResource, err.Error(), sourceLocation(loc))
	}
}

func (it *Interpreter) execOpenResource(ctx context.Context, env *value.Environment, s *ast.OpenResource) (signal, value.Value, error) {
	targetV, err := it.evalExpr(ctx, env, s.Target)
	if err != nil {
		return sigNone, nil, err
	}
	target, err := requireText(targetV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	var res *value.Resource
	switch s.Kind {
	case ast.ResourceFile:
		mode := fileModeOf(s.Mode)
		r, handle, oerr := resource.OpenFile(target, mode)
		if oerr != nil {
			return sigNone, nil, classifyOSError(oerr, s.Loc)
		}
		res = it.trackHandle(r, handle)

	case ast.ResourceURL:
		r, handle, oerr := resource.OpenURL(ctx, target, resource.RequestSpec{})
		if oerr != nil {
			return sigNone, nil, wrapRuntimeErr(oerr, werrors.RuntimeResource, werrors.CondNetworkTimeout, s.Loc)
		}
		res = it.trackHandle(r, handle)

	case ast.ResourceDatabase:
		r, handle, oerr := resource.OpenDatabase(ctx, target)
		if oerr != nil {
			return sigNone, nil, wrapRuntimeErr(oerr, werrors.RuntimeResource, werrors.CondDatabaseLocked, s.Loc)
		}
		res = it.trackHandle(r, handle)

	default:
		return sigNone, nil, werrors.New(werrors.Internal, "undefined invariant: unsupported open resource kind", sourceLocation(s.Loc))
	}

	if err := env.Declare(s.Variable, res); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func fileModeOf(m ast.ResourceMode) resource.FileMode {
	switch m {
	case ast.ModeWrite:
		return resource.WriteMode
	case ast.ModeAppend:
		return resource.AppendMode
	default:
		return resource.ReadMode
	}
}

func (it *Interpreter) execCloseResource(ctx context.Context, env *value.Environment, s *ast.CloseResource) (signal, value.Value, error) {
	v, err := it.evalExpr(ctx, env, s.Handle)
	if err != nil {
		return sigNone, nil, err
	}
	res, ok := v.(*value.Resource)
	if !ok {
		return sigNone, nil, typeMismatch("Resource", v, s.Loc)
	}
	// Closing an already-closed handle is a no-op per the resource
	// contract; interp has no warning channel yet so it's silent here.
	if err := res.Close(); err != nil {
		return sigNone, nil, classifyOSError(err, s.Loc)
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execReadResource(ctx context.Context, env *value.Environment, s *ast.ReadResource) (signal, value.Value, error) {
	v, err := it.evalExpr(ctx, env, s.Handle)
	if err != nil {
		return sigNone, nil, err
	}
	_, h, err := it.handleFor(v, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	var out value.Value
	switch handle := h.(type) {
	case *resource.File:
		text, rerr := handle.ReadAll()
		if rerr != nil {
			return sigNone, nil, classifyOSError(rerr, s.Loc)
		}
		out = value.Text(text)

	case *resource.HTTPResponse:
		out = value.Text(handle.Body)

	default:
		return sigNone, nil, werrors.New(werrors.RuntimeResource, "this resource does not support read", sourceLocation(s.Loc))
	}

	if err := env.Declare(s.Variable, out); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execWriteResource(ctx context.Context, env *value.Environment, s *ast.WriteResource) (signal, value.Value, error) {
	handleV, err := it.evalExpr(ctx, env, s.Handle)
	if err != nil {
		return sigNone, nil, err
	}
	valV, err := it.evalExpr(ctx, env, s.Value)
	if err != nil {
		return sigNone, nil, err
	}
	_, h, err := it.handleFor(handleV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	switch handle := h.(type) {
	case *resource.File:
		if werr := handle.Write(valV.ToText()); werr != nil {
			return sigNone, nil, classifyOSError(werr, s.Loc)
		}
	default:
		return sigNone, nil, werrors.New(werrors.RuntimeResource, "this resource does not support write", sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execListenOnPort(ctx context.Context, env *value.Environment, s *ast.ListenOnPort) (signal, value.Value, error) {
	portV, err := it.evalExpr(ctx, env, s.Port)
	if err != nil {
		return sigNone, nil, err
	}
	portN, err := requireNumber(portV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	r, srv, lerr := resource.Listen(it.BindAddr, int(portN))
	if lerr != nil {
		return sigNone, nil, wrapRuntimeErr(lerr, werrors.RuntimeResource, werrors.CondNetworkTimeout, s.Loc)
	}
	res := it.trackHandle(r, srv)

	if err := env.Declare(s.Variable, res); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execWaitForRequest(ctx context.Context, env *value.Environment, s *ast.WaitForRequest) (signal, value.Value, error) {
	serverV, err := it.evalExpr(ctx, env, s.Server)
	if err != nil {
		return sigNone, nil, err
	}
	_, h, err := it.handleFor(serverV, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}
	srv, ok := h.(*resource.Server)
	if !ok {
		return sigNone, nil, typeMismatch("Resource(server)", serverV, s.Loc)
	}

	req, aerr := srv.Accept(ctx)
	if aerr != nil {
		return sigNone, nil, wrapRuntimeErr(aerr, werrors.RuntimeTimeout, werrors.CondExecutionTimeout, s.Loc)
	}

	reqRes := &value.Resource{KindName: "request", ID: requestHandleID(), Closer: func() error { return nil }}
	it.handles[reqRes.ID] = req

	reqMap := value.NewMap()
	reqMap.Set("method", value.Text(req.Method))
	reqMap.Set("path", value.Text(req.Path))
	reqMap.Set("body", value.Text(req.Body))
	headers := value.NewMap()
	for k, v := range req.Headers {
		headers.Set(k, value.Text(v))
	}
	reqMap.Set("headers", headers)
	reqMap.Set("handle", reqRes)

	if err := env.Declare(s.Variable, reqMap); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

// requestIDSeq hands out IDs for the synthetic request-handle resources
// execWaitForRequest wraps around *resource.Request, independent of
// resource.Table's own sequence since requests aren't tracked for
// CloseAll (the server closes them on shutdown).
var requestIDSeq int64

func requestHandleID() int64 {
	requestIDSeq++
	return requestIDSeq
}

func (it *Interpreter) execRespondToRequest(ctx context.Context, env *value.Environment, s *ast.RespondToRequest) (signal, value.Value, error) {
	reqV, err := it.evalExpr(ctx, env, s.Request)
	if err != nil {
		return sigNone, nil, err
	}
	bodyV, err := it.evalExpr(ctx, env, s.Body)
	if err != nil {
		return sigNone, nil, err
	}

	status := 200
	if s.Status != nil {
		sv, serr := it.evalExpr(ctx, env, s.Status)
		if serr != nil {
			return sigNone, nil, serr
		}
		n, nerr := requireNumber(sv, s.Loc)
		if nerr != nil {
			return sigNone, nil, nerr
		}
		status = int(n)
	}

	contentType := "text/plain"
	if s.ContentType != nil {
		cv, cerr := it.evalExpr(ctx, env, s.ContentType)
		if cerr != nil {
			return sigNone, nil, cerr
		}
		ct, terr := requireText(cv, s.Loc)
		if terr != nil {
			return sigNone, nil, terr
		}
		contentType = ct
	}

	reqRes, ok := reqV.(*value.Resource)
	if !ok {
		// A map returned by wait-for-request (its "handle" field) is
		// the common case; unwrap it if a whole request map was passed.
		if m, isMap := reqV.(*value.Map); isMap {
			if h, hok := m.Get("handle"); hok {
				reqRes, ok = h.(*value.Resource)
			}
		}
	}
	if !ok {
		return sigNone, nil, typeMismatch("Resource(request)", reqV, s.Loc)
	}

	h, tracked := it.handles[reqRes.ID]
	if !tracked {
		return sigNone, nil, werrors.New(werrors.Internal, "undefined invariant: untracked request handle", sourceLocation(s.Loc))
	}
	req, ok := h.(*resource.Request)
	if !ok {
		return sigNone, nil, typeMismatch("Resource(request)", reqV, s.Loc)
	}

	req.Respond(bodyV.ToText(), status, contentType)
	return sigNone, nil, nil
}

func (it *Interpreter) execExecuteCommand(ctx context.Context, env *value.Environment, s *ast.ExecuteCommand) (signal, value.Value, error) {
	_, sp, _, err := it.spawn(ctx, env, s.Command, s.UseShell, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	stdout, werr := sp.Wait()
	result := value.NewMap()
	result.Set("stdout", value.Text(stdout))
	result.Set("stderr", value.Text(sp.Stderr()))
	if werr != nil {
		result.Set("succeeded", value.Boolean(false))
		result.Set("error", value.Text(werr.Error()))
	} else {
		result.Set("succeeded", value.Boolean(true))
	}

	if err := env.Declare(s.Variable, result); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execSpawnCommand(ctx context.Context, env *value.Environment, s *ast.SpawnCommand) (signal, value.Value, error) {
	res, _, _, err := it.spawn(ctx, env, s.Command, s.UseShell, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}

	if err := env.Declare(s.Variable, res); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

// spawn evaluates a command expression, tokenizes it when not running
// through a shell (Spawn expects program/args split apart, but only
// tokenizes internally for the shell path), and launches it under the
// interpreter's configured subprocess policy.
func (it *Interpreter) spawn(ctx context.Context, env *value.Environment, cmdExpr ast.ExprNode, useShell bool, loc ast.SourceLocation) (*value.Resource, *resource.Subprocess, bool, error) {
	cmdV, err := it.evalExpr(ctx, env, cmdExpr)
	if err != nil {
		return nil, nil, false, err
	}
	raw, err := requireText(cmdV, loc)
	if err != nil {
		return nil, nil, false, err
	}

	program := raw
	var args []string
	if !useShell {
		tokens, terr := resource.Tokenize(raw)
		if terr != nil {
			return nil, nil, false, werrors.NewCondition(werrors.CondCommandNotFound, terr.Error(), sourceLocation(loc))
		}
		if len(tokens) == 0 {
			return nil, nil, false, werrors.NewCondition(werrors.CondCommandNotFound, "empty command", sourceLocation(loc))
		}
		program = tokens[0]
		args = tokens[1:]
	}

	r, sp, warn, serr := resource.Spawn(ctx, program, args, useShell, it.Policy)
	if serr != nil {
		cond := werrors.CondProcessSpawnFailed
		if os.IsNotExist(serr) {
			cond = werrors.CondCommandNotFound
		}
		return nil, nil, warn, werrors.NewCondition(cond, serr.Error(), sourceLocation(loc))
	}
	res := it.trackHandle(r, sp)
	return res, sp, warn, nil
}

func (it *Interpreter) execKillProcess(ctx context.Context, env *value.Environment, s *ast.KillProcess) (signal, value.Value, error) {
	v, err := it.evalExpr(ctx, env, s.Process)
	if err != nil {
		return sigNone, nil, err
	}
	_, h, err := it.handleFor(v, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}
	sp, ok := h.(*resource.Subprocess)
	if !ok {
		return sigNone, nil, typeMismatch("Resource(process)", v, s.Loc)
	}
	if kerr := sp.Kill(); kerr != nil {
		return sigNone, nil, werrors.New(werrors.RuntimeResource, kerr.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execWaitForProcess(ctx context.Context, env *value.Environment, s *ast.WaitForProcess) (signal, value.Value, error) {
	v, err := it.evalExpr(ctx, env, s.Process)
	if err != nil {
		return sigNone, nil, err
	}
	_, h, err := it.handleFor(v, s.Loc)
	if err != nil {
		return sigNone, nil, err
	}
	sp, ok := h.(*resource.Subprocess)
	if !ok {
		return sigNone, nil, typeMismatch("Resource(process)", v, s.Loc)
	}

	stdout, werr := sp.Wait()
	result := value.NewMap()
	result.Set("stdout", value.Text(stdout))
	result.Set("stderr", value.Text(sp.Stderr()))
	if werr != nil {
		result.Set("succeeded", value.Boolean(false))
	} else {
		result.Set("succeeded", value.Boolean(true))
	}

	if err := env.Declare(s.Variable, result); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}
