package value

import (
	"weak"

	"github.com/wfl-lang/wfl/compiler/ast"
)

// Function is a user-defined action value. It captures its defining
// environment through a weak back-reference rather than a strong
// pointer: an action value stored on a container or returned out of
// its own enclosing scope must not keep that whole scope chain alive
// forever just by existing.
type Function struct {
	Name       string
	Parameters []string
	Body       []ast.StmtNode
	IsAsync    bool
	closure    weak.Pointer[Environment]
}

// NewFunction builds a Function closing over env.
func NewFunction(name string, params []string, body []ast.StmtNode, isAsync bool, env *Environment) *Function {
	return &Function{
		Name:       name,
		Parameters: params,
		Body:       body,
		IsAsync:    isAsync,
		closure:    weak.Make(env),
	}
}

func (*Function) Kind() Kind { return KindFunction }

// ToText renders `<action name>`, or `<anonymous action>` for an
// action value with no name (e.g. one never bound by `define action`).
func (f *Function) ToText() string {
	if f.Name == "" {
		return "<anonymous action>"
	}
	return "<action " + f.Name + ">"
}

// Closure upgrades the weak back-reference to the defining
// environment. It reports false only if that environment has already
// been collected, which should never happen for a Function reachable
// by a valid, still-running program: invoking it is always reachable
// through a call chain that also keeps the environment it was defined
// in alive.
func (f *Function) Closure() (*Environment, bool) {
	env := f.closure.Value()
	return env, env != nil
}
