package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/analyzer"
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
)

func analyze(t *testing.T, source string) []analyzer.AnalysisError {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs)
	p := parser.New(tokens)
	program, parseErrs := p.Parse()
	require.Empty(t, parseErrs)
	return analyzer.Analyze(program)
}

func errorsOnly(errs []analyzer.AnalysisError) []analyzer.AnalysisError {
	var out []analyzer.AnalysisError
	for _, e := range errs {
		if e.Severity == analyzer.SeverityError {
			out = append(out, e)
		}
	}
	return out
}

// E1/E2 style valid programs produce zero diagnostics.
func TestValidCountLoopProducesNoErrors(t *testing.T) {
	source := `store total as 0
count from 1 to 10:
    change total to total plus count
end count
display total`
	errs := analyze(t, source)
	assert.Empty(t, errorsOnly(errs))
}

func TestUndefinedVariableIsReported(t *testing.T) {
	errs := analyze(t, `display unknown thing`)
	errs = errorsOnly(errs)
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrUndefinedName, errs[0].Kind)
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	errs := errorsOnly(analyze(t, `break`))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrBreakOutsideLoop, errs[0].Kind)
}

func TestContinueInsideLoopIsAccepted(t *testing.T) {
	source := `count from 1 to 3:
    continue
end count`
	assert.Empty(t, errorsOnly(analyze(t, source)))
}

func TestReturnOutsideActionIsRejected(t *testing.T) {
	errs := errorsOnly(analyze(t, `give back 5`))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrReturnOutsideAction, errs[0].Kind)
}

func TestReturnInsideActionIsAccepted(t *testing.T) {
	source := `define action called double needs n:
    give back n times 2
end action`
	assert.Empty(t, errorsOnly(analyze(t, source)))
}

func TestRetryOutsideHandlerIsRejected(t *testing.T) {
	// `retry` at top level, outside any when/catch body
	errs := errorsOnly(analyze(t, "retry"))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrRetryOutsideHandler, errs[0].Kind)
}

func TestRetryInsideWhenHandlerIsAccepted(t *testing.T) {
	source := `try:
    open file at "x" for reading as f
when file not found:
    retry
end try`
	assert.Empty(t, errorsOnly(analyze(t, source)))
}

func TestUnusedVariableProducesWarning(t *testing.T) {
	errs := analyze(t, `store unused as 1
display "hi"`)
	var found bool
	for _, e := range errs {
		if e.Kind == analyzer.ErrUnusedVariable && e.Severity == analyzer.SeverityWarning {
			found = true
		}
	}
	assert.True(t, found)
}

func TestContainerImplementingInterfaceConforms(t *testing.T) {
	source := `create interface Greeter:
    requires action greet with name
end interface
create container Person implements Greeter:
    action called greet needs name:
        display "hello" with name
    end action
end container`
	assert.Empty(t, errorsOnly(analyze(t, source)))
}

func TestContainerMissingInterfaceMethodIsRejected(t *testing.T) {
	source := `create interface Greeter:
    requires action greet with name
end interface
create container Person implements Greeter:
    action called wave needs name:
        display "hi" with name
    end action
end container`
	errs := errorsOnly(analyze(t, source))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrInterfaceNotSatisfied, errs[0].Kind)
}

// An action whose body contains a `wait for` becomes async; one with no
// suspension points does not, and a nested action's own suspension
// points never leak into the enclosing action's IsAsync flag.
func TestAsyncDetectionDoesNotCrossActionBoundary(t *testing.T) {
	source := `define action called fetch_data needs conn:
    wait for conn as body
    give back body
end action
define action called sync_helper needs conn:
    define action called inner_async needs conn:
        wait for conn as body
        give back body
    end action
    display "no suspension here directly"
end action`
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs)
	program, parseErrs := parser.New(tokens).Parse()
	require.Empty(t, parseErrs)

	errs := errorsOnly(analyzer.Analyze(program))
	assert.Empty(t, errs)

	require.Len(t, program.Statements, 2)
	fetchData, ok := program.Statements[0].(*ast.ActionDefine)
	require.True(t, ok)
	assert.True(t, fetchData.IsAsync)

	syncHelper, ok := program.Statements[1].(*ast.ActionDefine)
	require.True(t, ok)
	assert.False(t, syncHelper.IsAsync)

	innerAsync, ok := syncHelper.Body[0].(*ast.ActionDefine)
	require.True(t, ok)
	assert.True(t, innerAsync.IsAsync)
}

func TestValidPatternDefineProducesNoErrors(t *testing.T) {
	errs := errorsOnly(analyze(t, `create pattern digits:
    one or more digit
end pattern`))
	assert.Empty(t, errs)
}

func TestPatternDefineWithCaptureAndLookaroundProducesNoErrors(t *testing.T) {
	errs := errorsOnly(analyze(t, `create pattern priced_item:
    capture { one or more letter } as name
    " costs $"
    one or more digit
    not followed by { "k" }
end pattern`))
	assert.Empty(t, errs)
}

func TestCountLoopVariableCannotBeReassigned(t *testing.T) {
	source := `count from 1 to 10:
    change count to count plus 1
end count`
	errs := errorsOnly(analyze(t, source))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrReadOnlyAssignment, errs[0].Kind)
}

func TestForEachLoopVariableCannotBeReassigned(t *testing.T) {
	source := `store items as [1, 2, 3]
for each item in items:
    change item to item plus 1
end for`
	errs := errorsOnly(analyze(t, source))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrReadOnlyAssignment, errs[0].Kind)
}

func TestCodeAfterReturnIsUnreachable(t *testing.T) {
	source := `define action called double needs n:
    give back n times 2
    display "never runs"
end action`
	var found bool
	for _, e := range analyze(t, source) {
		if e.Kind == analyzer.ErrUnreachableCode && e.Severity == analyzer.SeverityWarning {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCodeAfterBreakInLoopIsUnreachable(t *testing.T) {
	source := `count from 1 to 3:
    break
    display "never runs"
end count`
	var found bool
	for _, e := range analyze(t, source) {
		if e.Kind == analyzer.ErrUnreachableCode {
			found = true
		}
	}
	assert.True(t, found)
}

func TestUnknownErrorConditionIsRejected(t *testing.T) {
	source := `try:
    open file at "x" for reading as f
when a wizard casts a spell:
    display "uh oh"
end try`
	errs := errorsOnly(analyze(t, source))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrUnknownErrorCondition, errs[0].Kind)
}

func TestContainerSatisfiesInterfaceThroughAncestor(t *testing.T) {
	source := `create interface Greeter:
    requires action greet with name
end interface
create container Person:
    action called greet needs name:
        display "hello" with name
    end action
end container
create container Employee extends Person implements Greeter:
    property title as "staff"
end container`
	assert.Empty(t, errorsOnly(analyze(t, source)))
}

func TestMethodOverrideArityMismatchIsRejected(t *testing.T) {
	source := `create container Person:
    action called greet needs name:
        display "hello" with name
    end action
end container
create container Employee extends Person:
    action called greet needs name and title:
        display "hello" with name
    end action
end container`
	errs := errorsOnly(analyze(t, source))
	require.Len(t, errs, 1)
	assert.Equal(t, analyzer.ErrArityMismatch, errs[0].Kind)
}
