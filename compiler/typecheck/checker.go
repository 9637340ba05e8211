package typecheck

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/types"
)

// Checker performs static type checking and inference over a WFL
// program, generalizing the teacher's resource-field type checker from
// Conduit's nullable-primitive system into spec.md's Primitive/List/
// Map/Function/Union/Unknown lattice.
type Checker struct {
	global *typeScope
	cur    *typeScope

	actions    map[string]*ast.ActionDefine
	containers map[string]*ast.ContainerDefine

	errors ErrorList
}

// NewChecker creates a Checker ready to check a single Program.
func NewChecker() *Checker {
	global := newTypeScope(nil)
	return &Checker{
		global:     global,
		cur:        global,
		actions:    make(map[string]*ast.ActionDefine),
		containers: make(map[string]*ast.ContainerDefine),
	}
}

// CheckProgram is the entry point: it registers hoistable declarations,
// then walks every statement, and returns the accumulated diagnostics.
func CheckProgram(program *ast.Program) ErrorList {
	c := NewChecker()
	c.hoist(program.Statements)
	for _, stmt := range program.Statements {
		c.checkStmt(stmt)
	}
	return c.errors
}

func (c *Checker) hoist(stmts []ast.StmtNode) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ActionDefine:
			c.actions[s.Name] = s
		case *ast.ContainerDefine:
			c.containers[s.Name] = s
		}
	}
}

func (c *Checker) pushScope() { c.cur = newTypeScope(c.cur) }
func (c *Checker) popScope()  { c.cur = c.cur.parent }

func (c *Checker) declare(name string, t types.Type) { c.cur.declare(name, t) }

// assign records the type flowing into an existing (or newly seen)
// binding. Re-assigning with an incompatible type does not raise an
// error — WFL variables are not statically locked to their first
// inferred type — but widens the tracked type to a union so later
// reads see both possibilities.
func (c *Checker) assign(name string, t types.Type) {
	if existing, ok := c.cur.resolve(name); ok {
		if existing.Equals(t) || existing.IsAssignableFrom(t) {
			return
		}
		c.cur.declare(name, types.NewUnion(existing, t))
		return
	}
	c.cur.declare(name, t)
}

//nolint:gocyclo,cyclop // statement-kind dispatch is inherently a big switch
func (c *Checker) checkStmt(stmt ast.StmtNode) {
	switch s := stmt.(type) {
	case *ast.VariableDeclare:
		c.declare(s.Name, c.infer(s.Initializer))
	case *ast.VariableAssign:
		c.assign(s.Name, c.infer(s.Value))
	case *ast.Display:
		for _, v := range s.Values {
			c.infer(v)
		}
	case *ast.If:
		c.requireBoolean(s.Condition, "check if condition")
		c.checkBlock(s.ThenBranch)
		c.checkBlock(s.ElseBranch)
	case *ast.CountLoop:
		c.requireNumber(s.Start, "count loop start")
		c.requireNumber(s.End, "count loop end")
		if s.Step != nil {
			c.requireNumber(s.Step, "count loop step")
		}
		c.pushScope()
		c.declare(s.Variable, types.Number)
		for _, b := range s.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.ForEachLoop:
		elemType := types.Type(types.Any)
		switch collType := c.infer(s.Collection).(type) {
		case *types.List:
			elemType = collType.Element
		case *types.Map:
			elemType = collType.Value
		case *types.Unknown:
			// element type cannot be narrowed
		default:
			c.errors = append(c.errors, newInvalidIndexOp(s.Loc, collType))
		}
		c.pushScope()
		c.declare(s.Variable, elemType)
		for _, b := range s.Body {
			c.checkStmt(b)
		}
		c.popScope()
	case *ast.WhileLoop:
		c.requireBoolean(s.Condition, "while loop condition")
		c.checkBlock(s.Body)
	case *ast.UntilLoop:
		c.requireBoolean(s.Condition, "until loop condition")
		c.checkBlock(s.Body)
	case *ast.ForeverLoop:
		c.checkBlock(s.Body)
	case *ast.MainLoop:
		c.checkBlock(s.Body)
	case *ast.Break, *ast.Continue, *ast.Retry:
		// no expressions to check
	case *ast.Return:
		if s.Value != nil {
			c.infer(s.Value)
		}
	case *ast.ActionDefine:
		c.checkActionBody(s.Parameters, s.Body)
	case *ast.ActionCallStmt:
		c.infer(s.Call)
	case *ast.TryBlock:
		c.checkBlock(s.Body)
		for _, when := range s.When {
			c.checkBlock(when.Body)
		}
		c.checkBlock(s.Catch)
		c.checkBlock(s.Finally)
	case *ast.PatternDefine:
		// compiled by the pattern package; nothing to type-check here
	case *ast.WaitFor:
		c.infer(s.Expr)
		if s.Variable != "" {
			c.declare(s.Variable, types.Any)
		}
	case *ast.OpenResource:
		c.requireText(s.Target, "open target")
		c.declare(s.Variable, types.Any)
	case *ast.CloseResource:
		c.infer(s.Handle)
	case *ast.ReadResource:
		c.infer(s.Handle)
		c.declare(s.Variable, types.Text)
	case *ast.WriteResource:
		c.infer(s.Handle)
		c.infer(s.Value)
	case *ast.ListenOnPort:
		c.requireNumber(s.Port, "listen port")
		c.declare(s.Variable, types.Any)
	case *ast.WaitForRequest:
		c.infer(s.Server)
		if s.Variable != "" {
			c.declare(s.Variable, types.Any)
		}
	case *ast.RespondToRequest:
		c.infer(s.Request)
		c.infer(s.Body)
		if s.Status != nil {
			c.requireNumber(s.Status, "response status")
		}
		if s.ContentType != nil {
			c.requireText(s.ContentType, "response content type")
		}
	case *ast.ExecuteCommand:
		c.requireText(s.Command, "execute command")
		if s.Variable != "" {
			c.declare(s.Variable, types.Any)
		}
	case *ast.SpawnCommand:
		c.requireText(s.Command, "spawn command")
		if s.Variable != "" {
			c.declare(s.Variable, types.Any)
		}
	case *ast.KillProcess:
		c.infer(s.Process)
	case *ast.WaitForProcess:
		c.infer(s.Process)
		if s.Variable != "" {
			c.declare(s.Variable, types.Any)
		}
	case *ast.SeqStmt:
		for _, inner := range s.Statements {
			c.checkStmt(inner)
		}
	case *ast.ContainerDefine:
		c.checkContainer(s)
	case *ast.InterfaceDefine:
		// structural contract only; enforced by compiler/analyzer
	case *ast.CreateInstance:
		if _, ok := c.containers[s.ClassName]; !ok {
			c.errors = append(c.errors, newUndefinedContainer(s.Loc, s.ClassName))
		}
		for _, f := range s.Fields {
			c.infer(f.Value)
		}
		c.declare(s.Variable, types.NewContainer(s.ClassName))
	case *ast.TriggerEvent:
		if s.Instance != nil {
			c.infer(s.Instance)
		}
	case *ast.EventHandler:
		c.infer(s.Instance)
		c.checkBlock(s.Body)
	}
}

func (c *Checker) checkBlock(stmts []ast.StmtNode) {
	c.pushScope()
	for _, s := range stmts {
		c.checkStmt(s)
	}
	c.popScope()
}

func (c *Checker) checkActionBody(params []string, body []ast.StmtNode) {
	c.pushScope()
	for _, p := range params {
		c.declare(p, types.Any)
	}
	for _, stmt := range body {
		c.checkStmt(stmt)
	}
	c.popScope()
}

func (c *Checker) checkContainer(def *ast.ContainerDefine) {
	c.pushScope()
	for _, prop := range def.Properties {
		t := types.Type(types.Any)
		if prop.Default != nil {
			t = c.infer(prop.Default)
		}
		c.declare(prop.Name, t)
	}
	for _, method := range def.Methods {
		c.checkActionBody(method.Parameters, method.Body)
	}
	c.popScope()
}

func (c *Checker) requireNumber(expr ast.ExprNode, context string) {
	t := c.infer(expr)
	if !types.Number.IsAssignableFrom(t) {
		c.errors = append(c.errors, newTypeMismatch(expr.Location(), context, types.Number, t))
	}
}

func (c *Checker) requireText(expr ast.ExprNode, context string) {
	t := c.infer(expr)
	if !types.Text.IsAssignableFrom(t) {
		c.errors = append(c.errors, newTypeMismatch(expr.Location(), context, types.Text, t))
	}
}

func (c *Checker) requireBoolean(expr ast.ExprNode, context string) {
	t := c.infer(expr)
	if !types.Boolean.IsAssignableFrom(t) {
		c.errors = append(c.errors, newTypeMismatch(expr.Location(), context, types.Boolean, t))
	}
}
