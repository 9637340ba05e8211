package analyzer

import (
	"fmt"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/pattern"
)

// knownErrorConditions is the closed set of phrases a `when` clause may
// legally name, computed once from compiler/errors' own taxonomy.
var knownErrorConditions = werrors.KnownWhenConditions()

// Analyzer walks a Program resolving names, validating control-flow
// placement, and checking container/interface conformance.
type Analyzer struct {
	global *scope
	cur    *scope

	actions    map[string]*ast.ActionDefine
	containers map[string]*ast.ContainerDefine
	interfaces map[string]*ast.InterfaceDefine
	patterns   map[string]*ast.PatternDefine

	loopDepth    int
	actionDepth  int
	handlerDepth int // inside a TryBlock's When/Catch body: retry is valid

	errors []AnalysisError
}

// New creates an Analyzer ready to check a single Program.
func New() *Analyzer {
	global := newScope(nil)
	return &Analyzer{
		global:     global,
		cur:        global,
		actions:    make(map[string]*ast.ActionDefine),
		containers: make(map[string]*ast.ContainerDefine),
		interfaces: make(map[string]*ast.InterfaceDefine),
		patterns:   make(map[string]*ast.PatternDefine),
	}
}

// Analyze runs name resolution and the control-flow/conformance checks
// over program, returning every diagnostic collected.
func Analyze(program *ast.Program) []AnalysisError {
	a := New()
	a.hoist(program.Statements)
	a.computeAsync(program.Statements)
	a.checkUnreachable(program.Statements)
	for _, stmt := range program.Statements {
		a.checkStmt(stmt)
	}
	a.checkInterfaceConformance()
	a.reportUnused(a.global)
	return a.errors
}

// hoist registers top-level action, container, interface, and pattern
// names before the main walk, so forward references resolve.
func (a *Analyzer) hoist(stmts []ast.StmtNode) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ActionDefine:
			if _, exists := a.actions[s.Name]; exists {
				a.errors = append(a.errors, newError(ErrAlreadyDeclared, s.Loc, "action redeclared: "+s.Name))
			}
			a.actions[s.Name] = s
			a.global.declare(s.Name, s.Loc)
		case *ast.ContainerDefine:
			a.containers[s.Name] = s
			a.global.declare(s.Name, s.Loc)
		case *ast.InterfaceDefine:
			a.interfaces[s.Name] = s
			a.global.declare(s.Name, s.Loc)
		case *ast.PatternDefine:
			a.patterns[s.Name] = s
			a.global.declare(s.Name, s.Loc)
		}
	}
}

func (a *Analyzer) pushScope() { a.cur = newScope(a.cur) }
func (a *Analyzer) popScope() {
	a.reportUnused(a.cur)
	a.cur = a.cur.parent
}

func (a *Analyzer) reportUnused(s *scope) {
	for name, b := range s.names {
		if !b.used {
			a.errors = append(a.errors, newWarning(ErrUnusedVariable, b.loc, "unused variable: "+name))
		}
	}
}

func (a *Analyzer) declare(name string, loc ast.SourceLocation) {
	if _, exists := a.cur.names[name]; exists {
		a.errors = append(a.errors, newError(ErrAlreadyDeclared, loc, "already declared in this scope: "+name))
		return
	}
	a.cur.declare(name, loc)
}

//nolint:gocyclo,cyclop // statement-kind dispatch is inherently a big switch
func (a *Analyzer) checkStmt(stmt ast.StmtNode) {
	switch s := stmt.(type) {
	case *ast.VariableDeclare:
		a.checkExpr(s.Initializer)
		a.declare(s.Name, s.Loc)
	case *ast.VariableAssign:
		a.checkExpr(s.Value)
		if b, ok := a.cur.resolve(s.Name); ok && b.readOnly {
			a.errors = append(a.errors, newError(ErrReadOnlyAssignment, s.Loc, "cannot reassign loop variable: "+s.Name))
			break
		}
		a.use(s.Name, s.Loc)
	case *ast.Display:
		for _, v := range s.Values {
			a.checkExpr(v)
		}
	case *ast.If:
		a.checkExpr(s.Condition)
		a.checkBlock(s.ThenBranch)
		a.checkBlock(s.ElseBranch)
	case *ast.CountLoop:
		a.checkExpr(s.Start)
		a.checkExpr(s.End)
		if s.Step != nil {
			a.checkExpr(s.Step)
		}
		a.pushScope()
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
		a.cur.markReadOnly(s.Variable)
		a.loopDepth++
		a.checkUnreachable(s.Body)
		for _, b := range s.Body {
			a.checkStmt(b)
		}
		a.loopDepth--
		a.popScope()
	case *ast.ForEachLoop:
		a.checkExpr(s.Collection)
		a.pushScope()
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
		a.cur.markReadOnly(s.Variable)
		a.loopDepth++
		a.checkUnreachable(s.Body)
		for _, b := range s.Body {
			a.checkStmt(b)
		}
		a.loopDepth--
		a.popScope()
	case *ast.WhileLoop:
		a.checkExpr(s.Condition)
		a.loopDepth++
		a.checkBlock(s.Body)
		a.loopDepth--
	case *ast.UntilLoop:
		a.checkExpr(s.Condition)
		a.loopDepth++
		a.checkBlock(s.Body)
		a.loopDepth--
	case *ast.ForeverLoop:
		a.loopDepth++
		a.checkBlock(s.Body)
		a.loopDepth--
	case *ast.MainLoop:
		a.loopDepth++
		a.checkBlock(s.Body)
		a.loopDepth--
	case *ast.Break:
		if a.loopDepth == 0 {
			a.errors = append(a.errors, newError(ErrBreakOutsideLoop, s.Loc, "break used outside of a loop"))
		}
	case *ast.Continue:
		if a.loopDepth == 0 {
			a.errors = append(a.errors, newError(ErrContinueOutsideLoop, s.Loc, "continue used outside of a loop"))
		}
	case *ast.Return:
		if a.actionDepth == 0 {
			a.errors = append(a.errors, newError(ErrReturnOutsideAction, s.Loc, "return used outside of an action"))
		}
		if s.Value != nil {
			a.checkExpr(s.Value)
		}
	case *ast.ActionDefine:
		a.checkActionBody(s)
	case *ast.ActionCallStmt:
		a.checkExpr(s.Call)
	case *ast.TryBlock:
		a.checkBlock(s.Body)
		for _, when := range s.When {
			if !knownErrorConditions[when.ErrorKind] {
				a.errors = append(a.errors, newError(ErrUnknownErrorCondition, when.Loc, "unknown error condition: "+when.ErrorKind))
			}
			a.handlerDepth++
			a.checkBlock(when.Body)
			a.handlerDepth--
		}
		a.handlerDepth++
		a.checkBlock(s.Catch)
		a.handlerDepth--
		a.checkBlock(s.Finally)
	case *ast.Retry:
		if a.handlerDepth == 0 {
			a.errors = append(a.errors, newError(ErrRetryOutsideHandler, s.Loc, "retry used outside of a when/catch handler"))
		}
	case *ast.PatternDefine:
		// already hoisted into a.patterns; compile now so a malformed
		// pattern body is reported at analysis time rather than the
		// first time a program actually exercises it.
		if _, err := pattern.GetOrCompile(s); err != nil {
			a.errors = append(a.errors, newError(ErrInvalidPattern, s.Loc, "invalid pattern "+s.Name+": "+err.Error()))
		}
	case *ast.WaitFor:
		a.checkExpr(s.Expr)
		if s.Variable != "" {
			a.declare(s.Variable, s.Loc)
			a.cur.markUsed(s.Variable)
		}
	case *ast.OpenResource:
		a.checkExpr(s.Target)
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
	case *ast.CloseResource:
		a.checkExpr(s.Handle)
	case *ast.ReadResource:
		a.checkExpr(s.Handle)
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
	case *ast.WriteResource:
		a.checkExpr(s.Handle)
		a.checkExpr(s.Value)
	case *ast.ListenOnPort:
		a.checkExpr(s.Port)
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
	case *ast.WaitForRequest:
		a.checkExpr(s.Server)
		if s.Variable != "" {
			a.declare(s.Variable, s.Loc)
			a.cur.markUsed(s.Variable)
		}
	case *ast.RespondToRequest:
		a.checkExpr(s.Request)
		a.checkExpr(s.Body)
		if s.Status != nil {
			a.checkExpr(s.Status)
		}
		if s.ContentType != nil {
			a.checkExpr(s.ContentType)
		}
	case *ast.ExecuteCommand:
		a.checkExpr(s.Command)
		if s.Variable != "" {
			a.declare(s.Variable, s.Loc)
			a.cur.markUsed(s.Variable)
		}
	case *ast.SpawnCommand:
		a.checkExpr(s.Command)
		if s.Variable != "" {
			a.declare(s.Variable, s.Loc)
			a.cur.markUsed(s.Variable)
		}
	case *ast.KillProcess:
		a.checkExpr(s.Process)
	case *ast.WaitForProcess:
		a.checkExpr(s.Process)
		if s.Variable != "" {
			a.declare(s.Variable, s.Loc)
			a.cur.markUsed(s.Variable)
		}
	case *ast.SeqStmt:
		for _, inner := range s.Statements {
			a.checkStmt(inner)
		}
	case *ast.ContainerDefine:
		a.checkContainer(s)
	case *ast.InterfaceDefine:
		// method signatures only; nothing to resolve
	case *ast.CreateInstance:
		if _, ok := a.containers[s.ClassName]; !ok {
			a.errors = append(a.errors, newError(ErrUndefinedName, s.Loc, "unknown container: "+s.ClassName))
		}
		for _, f := range s.Fields {
			a.checkExpr(f.Value)
		}
		a.declare(s.Variable, s.Loc)
		a.cur.markUsed(s.Variable)
	case *ast.TriggerEvent:
		if s.Instance != nil {
			a.checkExpr(s.Instance)
		}
	case *ast.EventHandler:
		a.checkExpr(s.Instance)
		a.checkBlock(s.Body)
	default:
		a.errors = append(a.errors, newError(ErrUndefinedName, stmt.Location(), fmt.Sprintf("unrecognized statement node %T", stmt)))
	}
}

func (a *Analyzer) checkBlock(stmts []ast.StmtNode) {
	a.pushScope()
	a.checkUnreachable(stmts)
	for _, s := range stmts {
		a.checkStmt(s)
	}
	a.popScope()
}

func (a *Analyzer) checkActionBody(action *ast.ActionDefine) {
	a.pushScope()
	for _, param := range action.Parameters {
		a.declare(param, action.Loc)
		a.cur.markUsed(param) // parameters are never flagged unused
	}
	a.actionDepth++
	a.checkUnreachable(action.Body)
	for _, stmt := range action.Body {
		a.checkStmt(stmt)
	}
	a.actionDepth--
	a.popScope()
}

// checkUnreachable flags the first statement following an unconditional
// return/break/continue in the same block as dead code; it does not
// recurse into nested blocks, which each get their own check when
// checkBlock/checkActionBody runs over them.
func (a *Analyzer) checkUnreachable(stmts []ast.StmtNode) {
	for i, s := range stmts {
		name := terminatorName(s)
		if name == "" {
			continue
		}
		if i+1 < len(stmts) {
			a.errors = append(a.errors, newWarning(
				ErrUnreachableCode, stmts[i+1].Location(),
				"unreachable code after "+name,
			))
		}
		return
	}
}

func terminatorName(s ast.StmtNode) string {
	switch s.(type) {
	case *ast.Return:
		return "return"
	case *ast.Break:
		return "break"
	case *ast.Continue:
		return "continue"
	default:
		return ""
	}
}

func (a *Analyzer) use(name string, loc ast.SourceLocation) {
	if _, ok := a.cur.resolve(name); !ok {
		if _, ok := a.actions[name]; ok {
			return
		}
		a.errors = append(a.errors, newError(ErrUndefinedName, loc, "undefined name: "+name))
		return
	}
	a.cur.markUsed(name)
}
