package interp

import (
	"context"

	"github.com/wfl-lang/wfl/compiler/ast"
	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// execContainerDefine builds a Class from s and binds it by name. A
// parent class or implemented interface must already be bound in env
// (containers are defined top to bottom, parent before child).
func (it *Interpreter) execContainerDefine(ctx context.Context, env *value.Environment, s *ast.ContainerDefine) (signal, value.Value, error) {
	var parent *value.Class
	if s.Extends != "" {
		pv, ok := env.Get(s.Extends)
		if !ok {
			return sigNone, nil, werrors.New(werrors.Semantic, "undefined container: "+s.Extends, sourceLocation(s.Loc))
		}
		parent, ok = pv.(*value.Class)
		if !ok {
			return sigNone, nil, typeMismatch("Container", pv, s.Loc)
		}
	}

	implements := make([]*value.Interface, 0, len(s.Implements))
	for _, name := range s.Implements {
		iv, ok := env.Get(name)
		if !ok {
			return sigNone, nil, werrors.New(werrors.Semantic, "undefined interface: "+name, sourceLocation(s.Loc))
		}
		iface, ok := iv.(*value.Interface)
		if !ok {
			return sigNone, nil, typeMismatch("Interface", iv, s.Loc)
		}
		implements = append(implements, iface)
	}

	methods := make(map[string]*ast.MethodDecl, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name] = m
	}
	events := make(map[string]bool, len(s.Events))
	for _, e := range s.Events {
		events[e.Name] = true
	}

	class := &value.Class{
		Name:        s.Name,
		Parent:      parent,
		Implements:  implements,
		Properties:  s.Properties,
		Methods:     methods,
		Events:      events,
		StaticProps: value.NewEnvironment(nil),
	}

	for _, p := range s.Properties {
		if !p.IsStatic {
			continue
		}
		v := value.Value(value.Nothing)
		if p.Default != nil {
			dv, err := it.evalExpr(ctx, env, p.Default)
			if err != nil {
				return sigNone, nil, err
			}
			v = dv
		}
		if err := class.StaticProps.Declare(p.Name, v); err != nil {
			return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
		}
	}

	if err := env.Declare(s.Name, class); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

func (it *Interpreter) execInterfaceDefine(ctx context.Context, env *value.Environment, s *ast.InterfaceDefine) (signal, value.Value, error) {
	iface := &value.Interface{Name: s.Name, Methods: s.Methods}
	if err := env.Declare(s.Name, iface); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

// execCreateInstance allocates a Container, seeding every inherited
// property with its declared default (root class first, so a subclass
// re-declaring the same name wins) before applying s.Fields.
func (it *Interpreter) execCreateInstance(ctx context.Context, env *value.Environment, s *ast.CreateInstance) (signal, value.Value, error) {
	cv, ok := env.Get(s.ClassName)
	if !ok {
		return sigNone, nil, werrors.New(werrors.Semantic, "undefined container: "+s.ClassName, sourceLocation(s.Loc))
	}
	class, ok := cv.(*value.Class)
	if !ok {
		return sigNone, nil, typeMismatch("Container", cv, s.Loc)
	}

	inst := value.NewContainer(class, it.Globals)

	var chain []*value.Class
	for c := class; c != nil; c = c.Parent {
		chain = append(chain, c)
	}
	applied := make(map[string]bool)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, p := range chain[i].Properties {
			if p.IsStatic || applied[p.Name] {
				continue
			}
			v := value.Value(value.Nothing)
			if p.Default != nil {
				dv, err := it.evalExpr(ctx, env, p.Default)
				if err != nil {
					return sigNone, nil, err
				}
				v = dv
			}
			inst.Properties.Declare(p.Name, v)
			applied[p.Name] = true
		}
	}

	for _, f := range s.Fields {
		v, err := it.evalExpr(ctx, env, f.Value)
		if err != nil {
			return sigNone, nil, err
		}
		if applied[f.Field] {
			inst.Properties.Assign(f.Field, v)
		} else {
			inst.Properties.Declare(f.Field, v)
			applied[f.Field] = true
		}
	}

	if err := env.Declare(s.Variable, inst); err != nil {
		return sigNone, nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(s.Loc))
	}
	return sigNone, nil, nil
}

// execEventHandler registers a handler closing directly over the
// instance's own property environment, so its body sees instance
// properties as bare identifiers the same way a method does. Reusing
// Properties rather than wrapping it in a throwaway child environment
// keeps the handler's weak closure reference alive for as long as the
// instance itself is reachable.
func (it *Interpreter) execEventHandler(ctx context.Context, env *value.Environment, s *ast.EventHandler) (signal, value.Value, error) {
	objv, err := it.evalExpr(ctx, env, s.Instance)
	if err != nil {
		return sigNone, nil, err
	}
	cont, ok := objv.(*value.Container)
	if !ok {
		return sigNone, nil, typeMismatch("Container", objv, s.Loc)
	}
	if !cont.Class.DeclaresEvent(s.EventName) {
		return sigNone, nil, werrors.New(werrors.Semantic, "undeclared event: "+s.EventName, sourceLocation(s.Loc))
	}

	handler := value.NewFunction("<on "+s.EventName+">", nil, s.Body, false, cont.Properties)
	cont.On(s.EventName, handler)
	return sigNone, nil, nil
}

// execTriggerEvent runs every handler registered for s.EventName, in
// registration order, synchronously and in full before returning.
func (it *Interpreter) execTriggerEvent(ctx context.Context, env *value.Environment, s *ast.TriggerEvent) (signal, value.Value, error) {
	objv, err := it.evalExpr(ctx, env, s.Instance)
	if err != nil {
		return sigNone, nil, err
	}
	cont, ok := objv.(*value.Container)
	if !ok {
		return sigNone, nil, typeMismatch("Container", objv, s.Loc)
	}
	if !cont.Class.DeclaresEvent(s.EventName) {
		return sigNone, nil, werrors.New(werrors.Semantic, "undeclared event: "+s.EventName, sourceLocation(s.Loc))
	}

	for _, h := range cont.Handlers(s.EventName) {
		if _, err := it.callFunction(ctx, h, nil, nil, s.Loc); err != nil {
			return sigNone, nil, err
		}
	}
	return sigNone, nil, nil
}

// callMethod invokes method, declared on defClass, against instance.
// __self__ and __class__ are hidden bindings a parent-method call
// reads back out of the scope chain to resolve `parent name(...)`
// relative to where the currently running method was actually found,
// not the instance's most-derived class.
func (it *Interpreter) callMethod(ctx context.Context, instance *value.Container, method *ast.MethodDecl, defClass *value.Class, args []value.Value, loc ast.SourceLocation) (value.Value, error) {
	if len(args) != len(method.Parameters) {
		return nil, werrors.New(werrors.Semantic,
			"method "+method.Name+" expects "+itoa(len(method.Parameters))+" arguments, got "+itoa(len(args)),
			sourceLocation(loc))
	}

	callEnv := value.NewEnvironment(instance.Properties)
	callEnv.Declare("__self__", instance)
	callEnv.Declare("__class__", defClass)
	for i, p := range method.Parameters {
		if err := callEnv.Declare(p, args[i]); err != nil {
			return nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(loc))
		}
	}

	sig, retv, err := it.execBlock(ctx, callEnv, method.Body)
	if err != nil {
		return nil, err
	}
	if sig == sigReturn {
		return retv, nil
	}
	return value.Nothing, nil
}

func (it *Interpreter) evalMemberAccess(ctx context.Context, env *value.Environment, e *ast.MemberAccessExpr) (value.Value, error) {
	objv, err := it.evalExpr(ctx, env, e.Object)
	if err != nil {
		return nil, err
	}
	// Map values (pattern match objects, request maps) expose their keys
	// as members, e.g. `result.captures.area`.
	if m, isMap := objv.(*value.Map); isMap && !e.IsCall {
		v, ok := m.Get(e.Member)
		if !ok {
			return nil, werrors.NewCondition(werrors.CondKeyNotFound, "key not found: "+e.Member, sourceLocation(e.Loc)).
				WithData("key", e.Member)
		}
		return v, nil
	}
	cont, ok := objv.(*value.Container)
	if !ok {
		return nil, typeMismatch("Container", objv, e.Loc)
	}

	if e.IsCall {
		method, defClass := cont.Class.FindMethod(e.Member)
		if method == nil {
			return nil, werrors.New(werrors.Semantic, "undefined method: "+e.Member, sourceLocation(e.Loc))
		}
		args, err := it.evalArgs(ctx, env, e.Arguments)
		if err != nil {
			return nil, err
		}
		return it.callMethod(ctx, cont, method, defClass, args, e.Loc)
	}

	v, ok := cont.Properties.Get(e.Member)
	if !ok {
		return nil, werrors.New(werrors.Semantic, "undefined property: "+e.Member, sourceLocation(e.Loc))
	}
	return v, nil
}

func (it *Interpreter) evalStaticMemberAccess(ctx context.Context, env *value.Environment, e *ast.StaticMemberAccessExpr) (value.Value, error) {
	cv, ok := env.Get(e.ClassName)
	if !ok {
		return nil, werrors.New(werrors.Semantic, "undefined container: "+e.ClassName, sourceLocation(e.Loc))
	}
	class, ok := cv.(*value.Class)
	if !ok {
		return nil, typeMismatch("Container", cv, e.Loc)
	}

	if e.IsCall {
		method, defClass := class.FindMethod(e.Member)
		if method == nil || !method.IsStatic {
			return nil, werrors.New(werrors.Semantic,
				"container "+e.ClassName+" has no static action "+e.Member, sourceLocation(e.Loc))
		}
		args, err := it.evalArgs(ctx, env, e.Arguments)
		if err != nil {
			return nil, err
		}
		return it.callStaticMethod(ctx, defClass, method, args, e.Loc)
	}

	v, ok := class.StaticProps.Get(e.Member)
	if !ok {
		return nil, werrors.New(werrors.Semantic, "undefined static property: "+e.Member, sourceLocation(e.Loc))
	}
	return v, nil
}

// callStaticMethod runs a `static action` body against defClass's own
// StaticProps environment rather than an instance's Properties, so the
// body can read and assign static properties by bare name but has no
// __self__ to resolve a `parent` call against.
func (it *Interpreter) callStaticMethod(ctx context.Context, defClass *value.Class, method *ast.MethodDecl, args []value.Value, loc ast.SourceLocation) (value.Value, error) {
	if len(args) != len(method.Parameters) {
		return nil, werrors.New(werrors.Semantic,
			"static action "+method.Name+" expects "+itoa(len(method.Parameters))+" arguments, got "+itoa(len(args)),
			sourceLocation(loc))
	}

	callEnv := value.NewEnvironment(defClass.StaticProps)
	for i, p := range method.Parameters {
		if err := callEnv.Declare(p, args[i]); err != nil {
			return nil, werrors.New(werrors.Semantic, err.Error(), sourceLocation(loc))
		}
	}

	sig, retv, err := it.execBlock(ctx, callEnv, method.Body)
	if err != nil {
		return nil, err
	}
	if sig == sigReturn {
		return retv, nil
	}
	return value.Nothing, nil
}

// evalParentMethodCall resolves `parent name(args)` relative to the
// class that declared the method currently executing, found via the
// hidden __self__/__class__ bindings callMethod leaves in scope.
func (it *Interpreter) evalParentMethodCall(ctx context.Context, env *value.Environment, e *ast.ParentMethodCall) (value.Value, error) {
	selfv, ok := env.Get("__self__")
	if !ok {
		return nil, werrors.New(werrors.Semantic, "parent method call outside a method body", sourceLocation(e.Loc))
	}
	self, ok := selfv.(*value.Container)
	if !ok {
		return nil, werrors.New(werrors.Internal, "undefined invariant: __self__ is not a container", sourceLocation(e.Loc))
	}

	classv, _ := env.Get("__class__")
	defClass, ok := classv.(*value.Class)
	if !ok {
		return nil, werrors.New(werrors.Internal, "undefined invariant: __class__ is not a class", sourceLocation(e.Loc))
	}
	if defClass.Parent == nil {
		return nil, werrors.New(werrors.Semantic, "container "+defClass.Name+" has no parent", sourceLocation(e.Loc))
	}

	method, foundClass := defClass.Parent.FindMethod(e.Method)
	if method == nil {
		return nil, werrors.New(werrors.Semantic, "undefined method: "+e.Method, sourceLocation(e.Loc))
	}
	args, err := it.evalArgs(ctx, env, e.Arguments)
	if err != nil {
		return nil, err
	}
	return it.callMethod(ctx, self, method, foundClass, args, e.Loc)
}
