// Package interp is WFL's tree-walking evaluator: it executes an
// analyzed, type-checked *ast.Program directly against the runtime
// value representation, cooperating with runtime/scheduler for async
// suspension and runtime/resource for file/network/process handles.
package interp

import (
	"context"
	"io"
	"os"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/internal/logger"
	"github.com/wfl-lang/wfl/runtime/resource"
	"github.com/wfl-lang/wfl/runtime/scheduler"
	"github.com/wfl-lang/wfl/runtime/value"
)

// MaxRetries bounds how many times a `retry` inside a try handler may
// restart its body, per the resolved Open Question in spec.md §9.1:
// the language permits unlimited retry but implementations must bound
// it, so WFL picks a generous default applications can't silently spin
// forever on.
const MaxRetries = 1000

// Interpreter holds the process-wide state a running WFL program needs:
// the global scope, the cooperative scheduler, tracked resource
// handles, the subprocess security policy, and where `display` writes.
type Interpreter struct {
	Globals   *value.Environment
	Scheduler *scheduler.Scheduler
	Watchdog  *scheduler.Watchdog
	Resources *resource.Table
	Policy    resource.SubprocessPolicy
	Stdout    io.Writer
	BindAddr  string

	// Logger traces statement and loop execution per .wflcfg's logging
	// keys. A nil Logger is a valid zero value: every Logger method has
	// a nil-safe receiver, so call sites never need to guard it.
	Logger *logger.Logger

	natives map[string]*value.NativeFunction

	// handles maps a *value.Resource's ID back to the concrete Go
	// handle runtime/resource returned alongside it (*resource.File,
	// *resource.Database, ...), since value.Resource itself only
	// carries enough to render and close, not to read/write/respond.
	handles map[int64]any
}

// New constructs an Interpreter with a fresh global scope, the default
// subprocess policy, and natives registered from the stdlib package via
// RegisterNatives (called by cmd/wfl; kept separate so interp doesn't
// import stdlib and create a cycle).
func New() *Interpreter {
	return &Interpreter{
		Globals:   value.NewEnvironment(nil),
		Scheduler: scheduler.New(),
		Resources: resource.NewTable(),
		Policy:    resource.DefaultPolicy(),
		Stdout:    os.Stdout,
		BindAddr:  "127.0.0.1",
		natives:   make(map[string]*value.NativeFunction),
		handles:   make(map[int64]any),
	}
}

// trackHandle registers res with the resource table and remembers its
// concrete Go handle so later statements (read/write/respond/kill) can
// recover it by the value.Resource they were given.
func (it *Interpreter) trackHandle(res *value.Resource, handle any) *value.Resource {
	it.Resources.Track(res)
	it.handles[res.ID] = handle
	return res
}

// handleFor recovers the concrete Go handle behind a resource value
// bound in WFL source, failing with a RuntimeResource error if v isn't
// a live resource handle at all.
func (it *Interpreter) handleFor(v value.Value, loc ast.SourceLocation) (*value.Resource, any, error) {
	res, ok := v.(*value.Resource)
	if !ok {
		return nil, nil, typeMismatch("Resource", v, loc)
	}
	if res.Closed() {
		return res, nil, werrors.New(werrors.RuntimeResource, "resource is already closed", sourceLocation(loc))
	}
	h, ok := it.handles[res.ID]
	if !ok {
		return res, nil, werrors.New(werrors.Internal, "undefined invariant: untracked resource handle", sourceLocation(loc))
	}
	return res, h, nil
}

// RegisterNative installs a native function under name, callable from
// WFL source as an ordinary action call.
func (it *Interpreter) RegisterNative(fn *value.NativeFunction) {
	it.natives[fn.Name] = fn
}

// Native looks up a registered native function by name.
func (it *Interpreter) Native(name string) (*value.NativeFunction, bool) {
	fn, ok := it.natives[name]
	return fn, ok
}

// Run executes prog's top-level statements in the global scope,
// starting the scheduler first so any `wait for` suspension inside the
// program has a worker to service it.
func (it *Interpreter) Run(ctx context.Context, prog *ast.Program) error {
	it.Scheduler.Start()
	defer it.Scheduler.Stop()
	defer it.Resources.CloseAll()

	for _, stmt := range prog.Statements {
		if _, _, err := it.execStmt(ctx, it.Globals, stmt); err != nil {
			if we, ok := err.(werrors.WFLError); ok {
				it.Logger.RuntimeError(we.Kind.String(), we.Message, we.Location.Line)
			}
			return err
		}
	}
	return nil
}

// signal is the tree-walker's internal non-local control transfer:
// break/continue/return/retry all unwind through exec as a signal
// rather than a Go panic, so ordinary WFLError propagation and
// signal propagation share one return path.
type signal int

const (
	sigNone signal = iota
	sigBreak
	sigContinue
	sigReturn
	sigRetry
)

// wrapRuntimeErr normalizes a Go error raised by a native call or a
// resource operation into a werrors.WFLError so it can flow through
// try/when matching uniformly. Errors already of that type pass through.
func wrapRuntimeErr(err error, kind werrors.Kind, cond werrors.Condition, loc ast.SourceLocation) error {
	if err == nil {
		return nil
	}
	if we, ok := err.(werrors.WFLError); ok {
		return we
	}
	we := werrors.New(kind, err.Error(), sourceLocation(loc))
	if cond != "" {
		we.Kind = werrors.KindOf(cond)
		we.Condition = cond
	}
	return we
}

func sourceLocation(loc ast.SourceLocation) werrors.SourceLocation {
	return werrors.SourceLocation{Line: loc.Line, Column: loc.Column, Length: loc.Length}
}
