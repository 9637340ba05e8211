package analyzer

import "github.com/wfl-lang/wfl/compiler/ast"

// checkContainer walks a container's properties and methods in a fresh
// scope, so property names are visible to method bodies without leaking
// into the enclosing scope.
func (a *Analyzer) checkContainer(c *ast.ContainerDefine) {
	if c.Extends != "" {
		if _, ok := a.containers[c.Extends]; !ok {
			a.errors = append(a.errors, newError(ErrUndefinedName, c.Loc, "unknown parent container: "+c.Extends))
		}
	}

	a.pushScope()
	for _, prop := range c.Properties {
		a.declare(prop.Name, prop.Loc)
		a.cur.markUsed(prop.Name)
		if prop.Default != nil {
			a.checkExpr(prop.Default)
		}
	}
	for _, method := range c.Methods {
		a.checkMethodBody(method)
	}
	a.popScope()
}

func (a *Analyzer) checkMethodBody(method *ast.MethodDecl) {
	a.pushScope()
	for _, param := range method.Parameters {
		a.declare(param, method.Loc)
		a.cur.markUsed(param)
	}
	a.actionDepth++
	a.checkUnreachable(method.Body)
	for _, stmt := range method.Body {
		a.checkStmt(stmt)
	}
	a.actionDepth--
	a.popScope()
}

// collectMethods gathers every method name c can answer to, own methods
// first, then walking the Extends chain so an ancestor's method counts
// toward conformance too, without letting an ancestor's arity shadow an
// overriding method declared closer to c.
func (a *Analyzer) collectMethods(c *ast.ContainerDefine) map[string]int {
	methods := make(map[string]int)
	for cur := c; cur != nil; cur = a.containers[cur.Extends] {
		for _, m := range cur.Methods {
			if _, seen := methods[m.Name]; !seen {
				methods[m.Name] = len(m.Parameters)
			}
		}
		if cur.Extends == "" {
			break
		}
	}
	return methods
}

// checkInterfaceConformance verifies every container's declared
// Implements list against the registered interfaces by method name and
// arity, counting methods satisfied through an ancestor as well as the
// container's own, run once all containers and interfaces have been
// hoisted.
func (a *Analyzer) checkInterfaceConformance() {
	for _, c := range a.containers {
		if len(c.Implements) > 0 {
			methods := a.collectMethods(c)
			for _, ifaceName := range c.Implements {
				iface, ok := a.interfaces[ifaceName]
				if !ok {
					a.errors = append(a.errors, newError(ErrUndefinedName, c.Loc, "unknown interface: "+ifaceName))
					continue
				}
				for _, required := range iface.Methods {
					arity, found := methods[required.Name]
					if !found || arity != required.Arity {
						a.errors = append(a.errors, newError(
							ErrInterfaceNotSatisfied, c.Loc,
							"container "+c.Name+" does not satisfy "+ifaceName+"'s "+required.Name+" requirement",
						))
					}
				}
			}
		}
		a.checkMethodOverrideArity(c)
	}
}

// checkMethodOverrideArity verifies that a method c declares under a
// name already used by an ancestor keeps that ancestor's parameter
// count, since an overriding method is called through the same
// `instance.method(...)` call site as the one it replaces.
func (a *Analyzer) checkMethodOverrideArity(c *ast.ContainerDefine) {
	if c.Extends == "" {
		return
	}
	parent := a.containers[c.Extends]
	for _, m := range c.Methods {
		for anc := parent; anc != nil; anc = a.containers[anc.Extends] {
			pm, found := findMethod(anc, m.Name)
			if found {
				if len(pm.Parameters) != len(m.Parameters) {
					a.errors = append(a.errors, newError(
						ErrArityMismatch, m.Loc,
						"method "+m.Name+" overrides "+anc.Name+"'s own "+m.Name+" with a different number of parameters",
					))
				}
				break
			}
			if anc.Extends == "" {
				break
			}
		}
	}
}

func findMethod(c *ast.ContainerDefine, name string) (*ast.MethodDecl, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
