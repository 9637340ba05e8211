package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
)

func parse(t *testing.T, source string) (*ast.Program, []parser.ParseError) {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs, "unexpected lex errors")
	p := parser.New(tokens)
	program, errs := p.Parse()
	return program, errs
}

// E1: display "Hello, World!"
func TestParseHelloWorld(t *testing.T) {
	program, errs := parse(t, `display "Hello, World!"`)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 1)
	display, ok := program.Statements[0].(*ast.Display)
	require.True(t, ok)
	require.Len(t, display.Values, 1)
	lit, ok := display.Values[0].(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, "Hello, World!", lit.Value)
}

// E2: count loop accumulating a sum into "total", using the implicit
// `count` loop variable.
func TestParseCountLoopSum(t *testing.T) {
	source := `store total as 0
count from 1 to 10:
    change total to total plus count
end count
display total`
	program, errs := parse(t, source)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 3)

	decl, ok := program.Statements[0].(*ast.VariableDeclare)
	require.True(t, ok)
	assert.Equal(t, "total", decl.Name)

	loop, ok := program.Statements[1].(*ast.CountLoop)
	require.True(t, ok)
	assert.Equal(t, "count", loop.Variable)
	assert.Equal(t, ast.CountUp, loop.Direction)
	require.Len(t, loop.Body, 1)

	assign, ok := loop.Body[0].(*ast.VariableAssign)
	require.True(t, ok)
	assert.Equal(t, "total", assign.Name)
	bin, ok := assign.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, bin.Operator)
	left, ok := bin.Left.(*ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "total", left.Name)
	right, ok := bin.Right.(*ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "count", right.Name)
}

// E3: multi-word identifiers merged by the lexer, concatenated with `with`.
func TestParseMultiWordIdentifierConcatenation(t *testing.T) {
	source := `store first name as "Ada"
store last name as "Lovelace"
display "Hello, " with first name with " " with last name`
	program, errs := parse(t, source)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 3)

	decl1, ok := program.Statements[0].(*ast.VariableDeclare)
	require.True(t, ok)
	assert.Equal(t, "first name", decl1.Name)

	display, ok := program.Statements[2].(*ast.Display)
	require.True(t, ok)
	require.Len(t, display.Values, 1)

	// Left-associative: (("Hello, " with first name) with " ") with last name
	outer, ok := display.Values[0].(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpWith, outer.Operator)
	lastName, ok := outer.Right.(*ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "last name", lastName.Name)

	mid, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpWith, mid.Operator)

	inner, ok := mid.Left.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpWith, inner.Operator)
	firstName, ok := inner.Right.(*ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "first name", firstName.Name)
}

// E4: pattern definition with three named captures.
func TestParsePatternCaptureDefinition(t *testing.T) {
	source := `create pattern phone:
    capture { exactly 3 digit } as area
    "-"
    capture { exactly 3 digit } as exchange
    "-"
    capture { exactly 4 digit } as number
end pattern
store result as find phone in "Call 555-123-4567 today"
display result.captures.area`
	program, errs := parse(t, source)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 3)

	def, ok := program.Statements[0].(*ast.PatternDefine)
	require.True(t, ok)
	assert.Equal(t, "phone", def.Name)
	seq, ok := def.Pattern.(*ast.PatternSequence)
	require.True(t, ok)
	require.Len(t, seq.Elements, 5)

	capture, ok := seq.Elements[0].(*ast.PatternCapture)
	require.True(t, ok)
	assert.Equal(t, "area", capture.Name)
	quant, ok := capture.Inner.(*ast.PatternQuantifier)
	require.True(t, ok)
	assert.Equal(t, ast.QuantExactly, quant.Kind)
	assert.Equal(t, 3, quant.Min)
	cls, ok := quant.Inner.(*ast.PatternCharClass)
	require.True(t, ok)
	assert.Equal(t, ast.ClassDigit, cls.Class)

	literal, ok := seq.Elements[1].(*ast.PatternLiteral)
	require.True(t, ok)
	assert.Equal(t, "-", literal.Text)

	storeResult, ok := program.Statements[1].(*ast.VariableDeclare)
	require.True(t, ok)
	find, ok := storeResult.Initializer.(*ast.PatternFindExpr)
	require.True(t, ok)
	patternRef, ok := find.Pattern.(*ast.IdentifierExpr)
	require.True(t, ok)
	assert.Equal(t, "phone", patternRef.Name)

	display, ok := program.Statements[2].(*ast.Display)
	require.True(t, ok)
	member, ok := display.Values[0].(*ast.MemberAccessExpr)
	require.True(t, ok)
	assert.Equal(t, "area", member.Member)
}

// E5: try/when with nested check-if/otherwise and the `create file`
// sugar, and a retry statement reachable from a when-clause.
func TestParseTryRetryFileCreationSugar(t *testing.T) {
	source := `store attempts as 0
try:
    change attempts to attempts plus 1
    open file at "config.txt" for reading as f
    close file f
when file not found:
    check if attempts is less than 2:
        create file at "config.txt" with "ok"
        retry
    otherwise:
        display "failed"
    end check
end try
display attempts`
	program, errs := parse(t, source)
	require.Empty(t, errs)
	require.Len(t, program.Statements, 3)

	tryBlock, ok := program.Statements[1].(*ast.TryBlock)
	require.True(t, ok)
	require.Len(t, tryBlock.Body, 3)

	open, ok := tryBlock.Body[1].(*ast.OpenResource)
	require.True(t, ok)
	assert.Equal(t, ast.ResourceFile, open.Kind)
	assert.Equal(t, ast.ModeRead, open.Mode)
	assert.Equal(t, "f", open.Variable)

	require.Len(t, tryBlock.When, 1)
	assert.Equal(t, "file not found", tryBlock.When[0].ErrorKind)

	checkIf, ok := tryBlock.When[0].Body[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, checkIf.ThenBranch, 2)

	seq, ok := checkIf.ThenBranch[0].(*ast.SeqStmt)
	require.True(t, ok)
	require.Len(t, seq.Statements, 3)
	openSugar, ok := seq.Statements[0].(*ast.OpenResource)
	require.True(t, ok)
	assert.Equal(t, ast.ModeWrite, openSugar.Mode)
	_, ok = seq.Statements[1].(*ast.WriteResource)
	require.True(t, ok)
	_, ok = seq.Statements[2].(*ast.CloseResource)
	require.True(t, ok)

	_, ok = checkIf.ThenBranch[1].(*ast.Retry)
	require.True(t, ok)
	require.Len(t, checkIf.ElseBranch, 1)
}

// E6: `is` is a reserved word and cannot be used as a binding name.
func TestReservedWordRejectedAsIdentifier(t *testing.T) {
	_, errs := parse(t, `store is as 10`)
	require.NotEmpty(t, errs)
	assert.Equal(t, parser.ErrReservedWordAsIdentifier, errs[0].Kind)
}

func TestPrecedenceOfArithmeticAndComparison(t *testing.T) {
	program, errs := parse(t, `store x as 1 plus 2 times 3`)
	require.Empty(t, errs)
	decl := program.Statements[0].(*ast.VariableDeclare)
	bin, ok := decl.Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpPlus, bin.Operator)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpTimes, rhs.Operator)
}

func TestComparisonPhraseGreaterThanOrEqual(t *testing.T) {
	program, errs := parse(t, `check if x is greater than or equal to 10:
    display "big"
end check`)
	require.Empty(t, errs)
	cond := program.Statements[0].(*ast.If).Condition
	bin, ok := cond.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpGreaterThanOrEqual, bin.Operator)
}

func TestDividedByIsSingleOperator(t *testing.T) {
	program, errs := parse(t, `store half as 10 divided by 2`)
	require.Empty(t, errs)
	decl := program.Statements[0].(*ast.VariableDeclare)
	bin, ok := decl.Initializer.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpDividedBy, bin.Operator)
}

func TestSynchronizeRecoversAfterSyntaxError(t *testing.T) {
	source := `store x as
display "after error"`
	_, errs := parse(t, source)
	require.NotEmpty(t, errs)
}

func TestMissingEndProducesDiagnostic(t *testing.T) {
	_, errs := parse(t, `check if true:
    display "no end"`)
	require.NotEmpty(t, errs)
	assert.Equal(t, parser.ErrMissingEnd, errs[len(errs)-1].Kind)
}
