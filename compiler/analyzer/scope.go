package analyzer

import "github.com/wfl-lang/wfl/compiler/ast"

// binding tracks a single name's declaration site and whether it was
// ever read, so the analyzer can flag unused variables at scope exit.
// readOnly marks a binding that may never appear as a `change` target,
// currently just a loop's own iteration variable.
type binding struct {
	loc      ast.SourceLocation
	used     bool
	readOnly bool
}

// scope is one lexical level of name bindings; scopes nest following
// the innermost-wins lookup rule.
type scope struct {
	names  map[string]*binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]*binding), parent: parent}
}

func (s *scope) declare(name string, loc ast.SourceLocation) *binding {
	b := &binding{loc: loc}
	s.names[name] = b
	return b
}

func (s *scope) resolve(name string) (*binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.names[name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (s *scope) markUsed(name string) {
	if b, ok := s.resolve(name); ok {
		b.used = true
	}
}

// markReadOnly flags name's nearest binding as never assignable with
// `change`, used for a loop's own iteration variable.
func (s *scope) markReadOnly(name string) {
	if b, ok := s.resolve(name); ok {
		b.readOnly = true
	}
}
