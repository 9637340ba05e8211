package typecheck

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/types"
)

//nolint:gocyclo,cyclop // expression-kind dispatch is inherently a big switch
func (c *Checker) infer(expr ast.ExprNode) types.Type {
	if expr == nil {
		return types.Any
	}
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalType(e.Value)
	case *ast.ListLiteralExpr:
		return c.inferList(e)
	case *ast.IdentifierExpr:
		if t, ok := c.cur.resolve(e.Name); ok {
			return t
		}
		return types.Any
	case *ast.BinaryExpr:
		return c.inferBinary(e)
	case *ast.LogicalExpr:
		return c.inferLogical(e)
	case *ast.UnaryExpr:
		c.requireNumber(e.Operand, "unary minus")
		return types.Number
	case *ast.ActionCall:
		return c.inferActionCall(e)
	case *ast.IndexExpr:
		return c.inferIndex(e)
	case *ast.MemberAccessExpr:
		return c.inferMemberAccess(e)
	case *ast.StaticMemberAccessExpr:
		if _, ok := c.containers[e.ClassName]; !ok {
			c.errors = append(c.errors, newUndefinedContainer(e.Loc, e.ClassName))
		}
		for _, arg := range e.Arguments {
			c.infer(arg)
		}
		return types.Any
	case *ast.ParentMethodCall:
		for _, arg := range e.Arguments {
			c.infer(arg)
		}
		return types.Any
	case *ast.PatternMatchExpr:
		if t := c.infer(e.Text); !types.Text.IsAssignableFrom(t) {
			c.errors = append(c.errors, newInvalidPatternOp(e.Text.Location(), "pattern match", t))
		}
		c.infer(e.Pattern)
		return types.Boolean
	case *ast.PatternFindExpr:
		c.requireText(e.Text, "find text")
		c.infer(e.Pattern)
		return types.Any
	case *ast.PatternFindAllExpr:
		c.requireText(e.Text, "find all text")
		c.infer(e.Pattern)
		return types.NewList(types.Any)
	case *ast.PatternReplaceExpr:
		c.requireText(e.Source, "replace source")
		c.infer(e.Pattern)
		c.requireText(e.Replacement, "replace replacement")
		return types.Text
	case *ast.PatternSplitExpr:
		c.requireText(e.Text, "split text")
		c.infer(e.Pattern)
		return types.NewList(types.Text)
	default:
		return types.Any
	}
}

func literalType(value interface{}) types.Type {
	switch value.(type) {
	case int64, float64:
		return types.Number
	case string:
		return types.Text
	case bool:
		return types.Boolean
	case nil:
		return types.Nothing
	default:
		return types.Any
	}
}

func (c *Checker) inferList(e *ast.ListLiteralExpr) types.Type {
	if len(e.Elements) == 0 {
		return types.NewList(types.Any)
	}
	elemType := c.infer(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := c.infer(el)
		if !elemType.Equals(t) {
			elemType = types.NewUnion(elemType, t)
		}
	}
	return types.NewList(elemType)
}

var arithmeticOps = map[ast.BinaryOp]string{
	ast.OpPlus:      "plus",
	ast.OpMinus:     "minus",
	ast.OpTimes:     "times",
	ast.OpDividedBy: "divided by",
	ast.OpMod:       "mod",
}

var relationalOps = map[ast.BinaryOp]string{
	ast.OpGreaterThan:        "greater than",
	ast.OpGreaterThanOrEqual: "greater than or equal to",
	ast.OpLessThan:           "less than",
	ast.OpLessThanOrEqual:    "less than or equal to",
	ast.OpAbove:              "above",
	ast.OpBelow:              "below",
}

func (c *Checker) inferBinary(e *ast.BinaryExpr) types.Type {
	if name, ok := arithmeticOps[e.Operator]; ok {
		left, right := c.infer(e.Left), c.infer(e.Right)
		if !types.Number.IsAssignableFrom(left) || !types.Number.IsAssignableFrom(right) {
			c.errors = append(c.errors, newInvalidBinaryOp(e.Loc, name, left, right))
		}
		return types.Number
	}
	if e.Operator == ast.OpWith {
		left, right := c.infer(e.Left), c.infer(e.Right)
		if !isTextLike(left) || !isTextLike(right) {
			c.errors = append(c.errors, newInvalidBinaryOp(e.Loc, "with", left, right))
		}
		return types.Text
	}
	if name, ok := relationalOps[e.Operator]; ok {
		left, right := c.infer(e.Left), c.infer(e.Right)
		if !types.Number.IsAssignableFrom(left) || !types.Number.IsAssignableFrom(right) {
			c.errors = append(c.errors, newInvalidBinaryOp(e.Loc, name, left, right))
		}
		return types.Boolean
	}
	// Equal/NotEqual/Is/IsNot compare any two types for value equality.
	c.infer(e.Left)
	c.infer(e.Right)
	return types.Boolean
}

func isTextLike(t types.Type) bool {
	return types.Text.IsAssignableFrom(t) || types.Number.IsAssignableFrom(t) || types.Boolean.IsAssignableFrom(t)
}

func (c *Checker) inferLogical(e *ast.LogicalExpr) types.Type {
	if e.Operator == ast.LogNot {
		c.requireBoolean(e.Right, "not operand")
		return types.Boolean
	}
	c.requireBoolean(e.Left, "logical operand")
	c.requireBoolean(e.Right, "logical operand")
	return types.Boolean
}

func (c *Checker) inferActionCall(e *ast.ActionCall) types.Type {
	argTypes := make([]types.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = c.infer(arg)
	}
	action, ok := c.actions[e.Name]
	if ok {
		if len(action.Parameters) != len(e.Arguments) {
			c.errors = append(c.errors, newInvalidArgumentCount(e.Loc, e.Name, len(action.Parameters), len(e.Arguments)))
		}
		return types.Any
	}
	if sig, ok := nativeSignatures[e.Name]; ok {
		return c.checkNativeCall(e, sig, argTypes)
	}
	// Assumed to be a native function outside the representative
	// signature table, or resolved at runtime; compiler/analyzer is the
	// authority on whether the name exists at all.
	return types.Any
}

func (c *Checker) inferIndex(e *ast.IndexExpr) types.Type {
	objType := c.infer(e.Object)
	indexType := c.infer(e.Index)
	switch t := objType.(type) {
	case *types.List:
		if !types.Number.IsAssignableFrom(indexType) {
			c.errors = append(c.errors, newIndexNotNumber(e.Index.Location(), indexType))
		}
		return t.Element
	case *types.Map:
		return t.Value
	case *types.Unknown:
		return types.Any
	default:
		c.errors = append(c.errors, newInvalidIndexOp(e.Loc, objType))
		return types.Any
	}
}

func (c *Checker) inferMemberAccess(e *ast.MemberAccessExpr) types.Type {
	objType := c.infer(e.Object)
	for _, arg := range e.Arguments {
		c.infer(arg)
	}
	container, ok := objType.(*types.Container)
	if !ok {
		// Unknown/list/map objects (e.g. pattern match results) expose
		// members the static lattice cannot model; assume the access
		// is valid and let the interpreter raise a runtime error if not.
		return types.Any
	}
	def, ok := c.containers[container.Name]
	if !ok {
		c.errors = append(c.errors, newUndefinedContainer(e.Loc, container.Name))
		return types.Any
	}
	if member := findMember(def, e.Member, c.containers); member != nil {
		if e.IsCall && len(member.Parameters) != len(e.Arguments) {
			c.errors = append(c.errors, newInvalidArgumentCount(e.Loc, e.Member, len(member.Parameters), len(e.Arguments)))
		}
		return types.Any
	}
	for _, prop := range collectProperties(def, c.containers) {
		if prop.Name == e.Member {
			return types.Any
		}
	}
	c.errors = append(c.errors, newUndefinedField(e.Loc, e.Member, container.Name))
	return types.Any
}

func findMember(def *ast.ContainerDefine, name string, registry map[string]*ast.ContainerDefine) *ast.MethodDecl {
	for cur := def; cur != nil; {
		for _, m := range cur.Methods {
			if m.Name == name {
				return m
			}
		}
		if cur.Extends == "" {
			break
		}
		cur = registry[cur.Extends]
	}
	return nil
}

func collectProperties(def *ast.ContainerDefine, registry map[string]*ast.ContainerDefine) []*ast.PropertyDecl {
	var props []*ast.PropertyDecl
	for cur := def; cur != nil; {
		props = append(props, cur.Properties...)
		if cur.Extends == "" {
			break
		}
		cur = registry[cur.Extends]
	}
	return props
}
