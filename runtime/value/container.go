package value

import "github.com/wfl-lang/wfl/compiler/ast"

// Interface is a required-method contract declared by `create
// interface`. Conformance is checked statically by compiler/analyzer;
// at runtime an Interface value exists only to be named and displayed.
type Interface struct {
	Name    string
	Methods []*ast.InterfaceMethod
}

func (*Interface) Kind() Kind        { return KindInterface }
func (i *Interface) ToText() string { return i.Name }

// Class is a container's static description: its inheritance chain,
// the interfaces it claims to implement, its instance property
// defaults, its methods, and its declared events. StaticProps holds
// `is static` property bindings, shared across every instance rather
// than copied into each one.
type Class struct {
	Name        string
	Parent      *Class
	Implements  []*Interface
	Properties  []*ast.PropertyDecl
	Methods     map[string]*ast.MethodDecl
	Events      map[string]bool
	StaticProps *Environment
}

func (*Class) Kind() Kind       { return KindClass }
func (c *Class) ToText() string { return c.Name }

// FindMethod looks up name on c or, failing that, walks the Extends
// chain, returning the class that actually declares it (needed so the
// interpreter can bind `self` to the original instance while still
// running an inherited method body).
func (c *Class) FindMethod(name string) (*ast.MethodDecl, *Class) {
	for cls := c; cls != nil; cls = cls.Parent {
		if m, ok := cls.Methods[name]; ok {
			return m, cls
		}
	}
	return nil, nil
}

// DeclaresEvent reports whether name is a valid event for c or any
// ancestor.
func (c *Class) DeclaresEvent(name string) bool {
	for cls := c; cls != nil; cls = cls.Parent {
		if cls.Events[name] {
			return true
		}
	}
	return false
}

// Container is a live instance of a Class: its own property bindings
// plus the event handlers registered against it with `on`.
type Container struct {
	Class      *Class
	Properties *Environment
	handlers   map[string][]*Function
}

// NewContainer allocates an instance with an empty property
// environment parented to module, the defining scope at the point of
// instantiation, so method bodies can still call top-level actions and
// reference top-level patterns and classes by bare name. Property
// lookups themselves are unambiguous: a name bound directly on the
// instance always wins before module is ever consulted.
func NewContainer(class *Class, module *Environment) *Container {
	return &Container{
		Class:      class,
		Properties: NewEnvironment(module),
		handlers:   make(map[string][]*Function),
	}
}

func (*Container) Kind() Kind { return KindContainer }

// ToText renders `<ClassName instance>`. A container's own `to_text`
// method, if it declares one, overrides this — but that requires
// invoking interpreted code, so the override happens in runtime/interp,
// not here.
func (c *Container) ToText() string { return "<" + c.Class.Name + " instance>" }

// On registers handler to fire, in registration order, whenever event
// is triggered on this instance.
func (c *Container) On(event string, handler *Function) {
	c.handlers[event] = append(c.handlers[event], handler)
}

// Handlers returns the handlers registered for event, in registration
// order.
func (c *Container) Handlers(event string) []*Function {
	return c.handlers[event]
}
