package analyzer

import "github.com/wfl-lang/wfl/compiler/ast"

//nolint:gocyclo,cyclop // expression-kind dispatch is inherently a big switch
func (a *Analyzer) checkExpr(expr ast.ExprNode) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		// no names to resolve
	case *ast.ListLiteralExpr:
		for _, el := range e.Elements {
			a.checkExpr(el)
		}
	case *ast.IdentifierExpr:
		a.use(e.Name, e.Loc)
	case *ast.BinaryExpr:
		a.checkExpr(e.Left)
		a.checkExpr(e.Right)
	case *ast.LogicalExpr:
		if e.Left != nil {
			a.checkExpr(e.Left)
		}
		a.checkExpr(e.Right)
	case *ast.UnaryExpr:
		a.checkExpr(e.Operand)
	case *ast.ActionCall:
		a.checkActionCall(e)
	case *ast.IndexExpr:
		a.checkExpr(e.Object)
		a.checkExpr(e.Index)
	case *ast.MemberAccessExpr:
		a.checkExpr(e.Object)
		for _, arg := range e.Arguments {
			a.checkExpr(arg)
		}
	case *ast.StaticMemberAccessExpr:
		if _, ok := a.containers[e.ClassName]; !ok {
			a.errors = append(a.errors, newError(ErrUndefinedName, e.Loc, "unknown container: "+e.ClassName))
		}
		for _, arg := range e.Arguments {
			a.checkExpr(arg)
		}
	case *ast.ParentMethodCall:
		for _, arg := range e.Arguments {
			a.checkExpr(arg)
		}
	case *ast.PatternMatchExpr:
		a.checkExpr(e.Text)
		a.checkExpr(e.Pattern)
	case *ast.PatternFindExpr:
		a.checkExpr(e.Text)
		a.checkExpr(e.Pattern)
	case *ast.PatternFindAllExpr:
		a.checkExpr(e.Text)
		a.checkExpr(e.Pattern)
	case *ast.PatternReplaceExpr:
		a.checkExpr(e.Source)
		a.checkExpr(e.Pattern)
		a.checkExpr(e.Replacement)
	case *ast.PatternSplitExpr:
		a.checkExpr(e.Text)
		a.checkExpr(e.Pattern)
	default:
		a.errors = append(a.errors, newError(ErrUndefinedName, expr.Location(), "unrecognized expression node"))
	}
}

// checkActionCall resolves a call target against declared actions and
// native standard-library functions (the latter are opaque to the
// analyzer and simply assumed to exist; the stdlib registry validates
// arity at call time).
func (a *Analyzer) checkActionCall(call *ast.ActionCall) {
	for _, arg := range call.Arguments {
		a.checkExpr(arg)
	}
	if _, ok := a.actions[call.Name]; ok {
		return
	}
	if _, ok := a.cur.resolve(call.Name); ok {
		a.cur.markUsed(call.Name)
		return
	}
	// Unresolved names are assumed to be native stdlib functions; the
	// registry is the authority on what exists, not the analyzer.
}
