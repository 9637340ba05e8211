package value

import "github.com/wfl-lang/wfl/pattern"

// Pattern wraps a compiled pattern program so it can flow through the
// interpreter like any other value (bound to a name, passed to
// `matches`/`find`/`replace`/`split`).
type Pattern struct {
	Name    string // empty for a pattern literal with no `create pattern` binding
	Program *pattern.Program
}

func (*Pattern) Kind() Kind { return KindPattern }

// ToText renders `<pattern name>`, or `<pattern>` if anonymous.
func (p *Pattern) ToText() string {
	if p.Name == "" {
		return "<pattern>"
	}
	return "<pattern " + p.Name + ">"
}
