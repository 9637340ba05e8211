package typecheck

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/types"
)

// signature describes a native stdlib function's parameter and return
// types, used to validate the representative subset of spec.md §4.8's
// ~180-function catalogue that this checker can resolve statically.
// Calls to names outside this table fall back to Unknown rather than
// being rejected, since the full registry lives in package stdlib and
// is the runtime authority on what exists.
type signature struct {
	Parameters []types.Type
	Return     types.Type
	Variadic   bool // last parameter type repeats for any extra arguments
}

var nativeSignatures = map[string]*signature{
	"length":     {Parameters: []types.Type{types.Any}, Return: types.Number},
	"uppercase":  {Parameters: []types.Type{types.Text}, Return: types.Text},
	"lowercase":  {Parameters: []types.Type{types.Text}, Return: types.Text},
	"trim":       {Parameters: []types.Type{types.Text}, Return: types.Text},
	"contains":   {Parameters: []types.Type{types.Text, types.Text}, Return: types.Boolean},
	"substring":  {Parameters: []types.Type{types.Text, types.Number, types.Number}, Return: types.Text},
	"join":       {Parameters: []types.Type{types.NewList(types.Any), types.Text}, Return: types.Text},

	"abs":   {Parameters: []types.Type{types.Number}, Return: types.Number},
	"round": {Parameters: []types.Type{types.Number}, Return: types.Number},
	"floor": {Parameters: []types.Type{types.Number}, Return: types.Number},
	"ceil":  {Parameters: []types.Type{types.Number}, Return: types.Number},
	"min":   {Parameters: []types.Type{types.Number, types.Number}, Return: types.Number, Variadic: true},
	"max":   {Parameters: []types.Type{types.Number, types.Number}, Return: types.Number, Variadic: true},
	"sqrt":  {Parameters: []types.Type{types.Number}, Return: types.Number},

	"push":    {Parameters: []types.Type{types.NewList(types.Any), types.Any}, Return: types.NewList(types.Any)},
	"pop":     {Parameters: []types.Type{types.NewList(types.Any)}, Return: types.Any},
	"sort":    {Parameters: []types.Type{types.NewList(types.Any)}, Return: types.NewList(types.Any)},
	"reverse": {Parameters: []types.Type{types.NewList(types.Any)}, Return: types.NewList(types.Any)},

	"now":           {Parameters: nil, Return: types.Any},
	"format_date":   {Parameters: []types.Type{types.Any, types.Text}, Return: types.Text},
	"random_number": {Parameters: []types.Type{types.Number, types.Number}, Return: types.Number},
	"random_uuid":   {Parameters: nil, Return: types.Text},
	"hash_text":     {Parameters: []types.Type{types.Text}, Return: types.Text},
}

// checkNativeCall validates argument count (and types for non-variadic
// parameters) against a known native signature, reusing the already
// computed argTypes so arguments are only inferred once.
func (c *Checker) checkNativeCall(e *ast.ActionCall, sig *signature, argTypes []types.Type) types.Type {
	if sig.Variadic {
		if len(e.Arguments) < len(sig.Parameters) {
			c.errors = append(c.errors, newInvalidArgumentCount(e.Loc, e.Name, len(sig.Parameters), len(e.Arguments)))
		}
		return sig.Return
	}
	if len(e.Arguments) != len(sig.Parameters) {
		c.errors = append(c.errors, newInvalidArgumentCount(e.Loc, e.Name, len(sig.Parameters), len(e.Arguments)))
		return sig.Return
	}
	for i, argType := range argTypes {
		if !sig.Parameters[i].IsAssignableFrom(argType) {
			c.errors = append(c.errors, newInvalidArgumentType(e.Arguments[i].Location(), e.Name, i, sig.Parameters[i], argType))
		}
	}
	return sig.Return
}
