package typecheck

import "github.com/wfl-lang/wfl/compiler/types"

// typeScope is one lexical level of variable-to-type bindings, chained
// to its enclosing scope the same way compiler/analyzer's scope is,
// generalized here to track inferred types instead of use sites.
type typeScope struct {
	vars   map[string]types.Type
	parent *typeScope
}

func newTypeScope(parent *typeScope) *typeScope {
	return &typeScope{vars: make(map[string]types.Type), parent: parent}
}

func (s *typeScope) declare(name string, t types.Type) {
	s.vars[name] = t
}

func (s *typeScope) resolve(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}
