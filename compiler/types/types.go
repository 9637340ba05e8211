// Package types implements WFL's type lattice: primitives, lists, maps,
// functions, unions, and the gradual-typing escape hatch Unknown.
package types

import (
	"fmt"
	"strings"
)

// Kind identifies a primitive type.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindBoolean
	KindNothing
	KindPattern
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBoolean:
		return "boolean"
	case KindNothing:
		return "nothing"
	case KindPattern:
		return "pattern"
	default:
		return "unknown"
	}
}

// Type is any member of the WFL type lattice.
type Type interface {
	// String returns the human-readable representation of the type.
	String() string

	// Equals reports whether two types are structurally identical.
	Equals(other Type) bool

	// IsAssignableFrom reports whether a value of type other may be used
	// where this type is expected.
	IsAssignableFrom(other Type) bool
}

// Primitive is one of WFL's built-in scalar types.
type Primitive struct {
	Kind Kind
}

// NewPrimitive builds a primitive type for kind.
func NewPrimitive(kind Kind) *Primitive { return &Primitive{Kind: kind} }

// Well-known primitive singletons, used throughout the checker and
// stdlib signature tables.
var (
	Number  = NewPrimitive(KindNumber)
	Text    = NewPrimitive(KindText)
	Boolean = NewPrimitive(KindBoolean)
	Nothing = NewPrimitive(KindNothing)
	Pattern = NewPrimitive(KindPattern)
)

func (p *Primitive) String() string { return p.Kind.String() }

// Equals reports whether other is the same primitive kind.
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Kind == p.Kind
}

// IsAssignableFrom allows number-from-number, text-from-text, and so
// on; nothing is assignable to any type (every value may be absent),
// matching spec.md's Nothing/optional-result semantics.
func (p *Primitive) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	if o, ok := other.(*Primitive); ok {
		if o.Kind == KindNothing {
			return true
		}
		return o.Kind == p.Kind
	}
	if u, ok := other.(*Union); ok {
		return u.allAssignableTo(p)
	}
	return false
}

// List is a homogeneous sequence type.
type List struct {
	Element Type
}

// NewList builds a list type with the given element type.
func NewList(element Type) *List { return &List{Element: element} }

func (l *List) String() string { return fmt.Sprintf("list of %s", l.Element.String()) }

// Equals reports whether other is a list with an equal element type.
func (l *List) Equals(other Type) bool {
	o, ok := other.(*List)
	return ok && l.Element.Equals(o.Element)
}

// IsAssignableFrom requires the other list's element type to be
// assignable to this list's element type.
func (l *List) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	o, ok := other.(*List)
	if !ok {
		return false
	}
	return l.Element.IsAssignableFrom(o.Element)
}

// Map is a key/value dictionary type.
type Map struct {
	Key   Type
	Value Type
}

// NewMap builds a map type with the given key and value types.
func NewMap(key, value Type) *Map { return &Map{Key: key, Value: value} }

func (m *Map) String() string {
	return fmt.Sprintf("map of %s to %s", m.Key.String(), m.Value.String())
}

// Equals reports whether other is a map with equal key and value types.
func (m *Map) Equals(other Type) bool {
	o, ok := other.(*Map)
	return ok && m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
}

// IsAssignableFrom requires both the key and value types to be
// assignable.
func (m *Map) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	o, ok := other.(*Map)
	if !ok {
		return false
	}
	return m.Key.IsAssignableFrom(o.Key) && m.Value.IsAssignableFrom(o.Value)
}

// Function is an action's callable signature.
type Function struct {
	Parameters []Type
	Return     Type
}

// NewFunction builds a function type from parameter types and a return type.
func NewFunction(parameters []Type, ret Type) *Function {
	return &Function{Parameters: parameters, Return: ret}
}

func (f *Function) String() string {
	names := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		names[i] = p.String()
	}
	return fmt.Sprintf("action(%s) returning %s", strings.Join(names, ", "), f.Return.String())
}

// Equals reports whether other is a function with an identical
// parameter list and return type.
func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(f.Parameters) != len(o.Parameters) || !f.Return.Equals(o.Return) {
		return false
	}
	for i, p := range f.Parameters {
		if !p.Equals(o.Parameters[i]) {
			return false
		}
	}
	return true
}

// IsAssignableFrom requires an exact arity match with contravariant
// parameter checking and covariant return checking.
func (f *Function) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	o, ok := other.(*Function)
	if !ok || len(f.Parameters) != len(o.Parameters) {
		return false
	}
	for i, p := range f.Parameters {
		if !o.Parameters[i].IsAssignableFrom(p) {
			return false
		}
	}
	return f.Return.IsAssignableFrom(o.Return)
}

// Container is a reference to a user-defined container (class) type.
type Container struct {
	Name string
}

// NewContainer builds a container type referencing the named class.
func NewContainer(name string) *Container { return &Container{Name: name} }

func (c *Container) String() string { return c.Name }

// Equals reports whether other refers to the same container name.
func (c *Container) Equals(other Type) bool {
	o, ok := other.(*Container)
	return ok && o.Name == c.Name
}

// IsAssignableFrom allows the same container name. Parent/child
// covariance is resolved by the analyzer's Extends chain, not here,
// since the type lattice has no notion of container inheritance.
func (c *Container) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	o, ok := other.(*Container)
	return ok && o.Name == c.Name
}

// Union represents a value that may be any one of several types,
// produced when branches of an if/try disagree on a variable's type.
type Union struct {
	Members []Type
}

// NewUnion builds a union type from its member types, flattening any
// nested unions so Members never itself contains a *Union.
func NewUnion(members ...Type) *Union {
	var flat []Type
	for _, m := range members {
		if nested, ok := m.(*Union); ok {
			flat = append(flat, nested.Members...)
		} else {
			flat = append(flat, m)
		}
	}
	return &Union{Members: flat}
}

func (u *Union) String() string {
	names := make([]string, len(u.Members))
	for i, m := range u.Members {
		names[i] = m.String()
	}
	return strings.Join(names, " or ")
}

// Equals reports whether other is a union with the same member set,
// order-independent.
func (u *Union) Equals(other Type) bool {
	o, ok := other.(*Union)
	if !ok || len(u.Members) != len(o.Members) {
		return false
	}
	for _, m := range u.Members {
		found := false
		for _, om := range o.Members {
			if m.Equals(om) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsAssignableFrom accepts other if other is assignable to at least one
// member (other is a concrete type) or if other is itself a union whose
// every member is assignable to some member of u.
func (u *Union) IsAssignableFrom(other Type) bool {
	if _, ok := other.(*Unknown); ok {
		return true
	}
	if o, ok := other.(*Union); ok {
		for _, om := range o.Members {
			if !u.IsAssignableFrom(om) {
				return false
			}
		}
		return true
	}
	for _, m := range u.Members {
		if m.IsAssignableFrom(other) {
			return true
		}
	}
	return false
}

// allAssignableTo reports whether every member of u is assignable to target.
func (u *Union) allAssignableTo(target Type) bool {
	for _, m := range u.Members {
		if !target.IsAssignableFrom(m) {
			return false
		}
	}
	return true
}

// Unknown is the gradual-typing escape hatch: assignable to and from
// anything. The checker assigns it to expressions it cannot statically
// resolve (e.g. stdlib calls with no declared signature) rather than
// rejecting the program.
type Unknown struct{}

// Any is the shared Unknown instance.
var Any = &Unknown{}

func (u *Unknown) String() string { return "unknown" }

// Equals reports whether other is also Unknown.
func (u *Unknown) Equals(other Type) bool {
	_, ok := other.(*Unknown)
	return ok
}

// IsAssignableFrom always succeeds: Unknown is compatible with every type.
func (u *Unknown) IsAssignableFrom(other Type) bool { return true }
