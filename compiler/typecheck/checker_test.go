package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
	"github.com/wfl-lang/wfl/compiler/typecheck"
)

func check(t *testing.T, source string) typecheck.ErrorList {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs)
	program, parseErrs := parser.New(tokens).Parse()
	require.Empty(t, parseErrs)
	return typecheck.CheckProgram(program)
}

func TestValidArithmeticProducesNoErrors(t *testing.T) {
	errs := check(t, `store total as 1 plus 2 times 3`)
	assert.False(t, errs.HasErrors())
}

func TestArithmeticOnTextIsRejected(t *testing.T) {
	errs := check(t, `store total as "hello" plus 2`)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidBinaryOp, errs[0].Code)
}

func TestConcatenationAcceptsTextAndNumber(t *testing.T) {
	errs := check(t, `store greeting as "total: " with 5`)
	assert.False(t, errs.HasErrors())
}

func TestComparisonOperatorsRequireNumbers(t *testing.T) {
	errs := check(t, `check if "a" is greater than "b":
    display "no"
end check`)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidBinaryOp, errs[0].Code)
}

func TestLogicalOperatorsRequireBoolean(t *testing.T) {
	errs := check(t, `check if 5 and 10:
    display "no"
end check`)
	require.True(t, errs.HasErrors())
}

func TestIndexingNonListIsRejected(t *testing.T) {
	errs := check(t, `store n as 5
store x as n[0]`)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidIndexOp, errs[0].Code)
}

func TestIndexingListIsAccepted(t *testing.T) {
	errs := check(t, `store items as [1, 2, 3]
store first as items[0]`)
	assert.False(t, errs.HasErrors())
}

func TestUndefinedContainerInstantiationIsRejected(t *testing.T) {
	errs := check(t, `create new Ghost as g`)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrUndefinedContainer, errs[0].Code)
}

func TestContainerPropertyAccessIsAccepted(t *testing.T) {
	source := `create container Person:
    property name
end container
create new Person as p: name is "Ada" end
display p.name`
	errs := check(t, source)
	assert.False(t, errs.HasErrors())
}

func TestUndefinedFieldAccessIsRejected(t *testing.T) {
	source := `create container Person:
    property name
end container
create new Person as p: name is "Ada" end
display p.age`
	errs := check(t, source)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrUndefinedField, errs[0].Code)
}

func TestActionCallArgumentCountMismatchIsRejected(t *testing.T) {
	source := `define action called double needs n:
    give back n times 2
end action
store x as double(1, 2)`
	errs := check(t, source)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidArgumentCount, errs[0].Code)
}

func TestNativeCallArgumentTypeMismatchIsRejected(t *testing.T) {
	errs := check(t, `store n as abs("not a number")`)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidArgumentType, errs[0].Code)
}

func TestPatternMatchRequiresText(t *testing.T) {
	source := `create pattern digits:
    one or more digit
end pattern
store n as 5
check if n matches digits:
    display "no"
end check`
	errs := check(t, source)
	require.True(t, errs.HasErrors())
	assert.Equal(t, typecheck.ErrInvalidPatternOp, errs[0].Code)
}
