package errors_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
)

func TestNewConditionDerivesKind(t *testing.T) {
	err := werrors.NewCondition(werrors.CondFileNotFound, "no such file: report.txt", werrors.SourceLocation{File: "main.wfl", Line: 3, Column: 5})
	assert.Equal(t, werrors.RuntimeResource, err.Kind)
	assert.Equal(t, werrors.CondFileNotFound, err.Condition)
	assert.True(t, err.IsError())
}

func TestErrorStringIncludesLocation(t *testing.T) {
	err := werrors.New(werrors.Syntax, "unexpected token", werrors.SourceLocation{File: "main.wfl", Line: 10, Column: 2})
	assert.Equal(t, "main.wfl:10:2: syntax error: unexpected token", err.Error())
}

func TestErrorStringWithoutLocation(t *testing.T) {
	err := werrors.New(werrors.Internal, "undefined invariant", werrors.SourceLocation{})
	assert.Equal(t, "internal error: undefined invariant", err.Error())
}

func TestWithSeverityOverridesDefault(t *testing.T) {
	err := werrors.New(werrors.Semantic, "unused action", werrors.SourceLocation{}).WithSeverity(werrors.Warning)
	assert.True(t, err.IsWarning())
	assert.False(t, err.IsError())
}

func TestWithDataAccumulates(t *testing.T) {
	err := werrors.NewCondition(werrors.CondTypeMismatch, "expected Number got Text", werrors.SourceLocation{}).
		WithData("expected", "Number").
		WithData("actual", "Text")
	assert.Equal(t, "Number", err.Data["expected"])
	assert.Equal(t, "Text", err.Data["actual"])
}

func TestWithRelatedErrorAppends(t *testing.T) {
	primary := werrors.New(werrors.Type, "mismatched assignment", werrors.SourceLocation{Line: 4})
	related := werrors.New(werrors.Type, "declared here", werrors.SourceLocation{Line: 1})
	primary = primary.WithRelatedError(related)
	require.Len(t, primary.RelatedErrors, 1)
	assert.Equal(t, 1, primary.RelatedErrors[0].Location.Line)
}

func TestMatchesConditionAndKind(t *testing.T) {
	err := werrors.NewCondition(werrors.CondFileNotFound, "missing", werrors.SourceLocation{})
	assert.True(t, err.Matches("file not found"))
	assert.True(t, err.Matches("resource error"))
	assert.False(t, err.Matches("network timeout"))
}

func TestMarshalJSONOmitsEmptyCondition(t *testing.T) {
	err := werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{File: "a.wfl", Line: 1, Column: 1})
	data, marshalErr := err.MarshalJSON()
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(data), `"condition"`)
	assert.Contains(t, string(data), `"kind":"syntax error"`)
}

func TestSeverityJSONRoundTrip(t *testing.T) {
	data, err := werrors.Warning.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(data))

	var s werrors.Severity
	require.NoError(t, s.UnmarshalJSON(data))
	assert.Equal(t, werrors.Warning, s)
}

func TestEnrichErrorAttachesContextAndSuggestion(t *testing.T) {
	source := "count is 1\ndivide count by 0\ndisplay count"
	err := werrors.NewCondition(werrors.CondDivisionByZero, "division by zero", werrors.SourceLocation{Line: 2, Column: 1, Length: 17})
	enriched := werrors.EnrichError(err, source)

	require.Len(t, enriched.Context.SourceLines, 3)
	assert.Equal(t, "divide count by 0", enriched.Context.SourceLines[enriched.Context.Highlight.Line])
	require.NotNil(t, enriched.Suggestion)
}

func TestErrorRecoverySeparatesErrorsAndWarnings(t *testing.T) {
	r := werrors.NewErrorRecovery()
	r.Recover(werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{}))
	r.Recover(werrors.New(werrors.Semantic, "unused variable", werrors.SourceLocation{}).WithSeverity(werrors.Warning))

	assert.True(t, r.HasErrors())
	assert.True(t, r.HasWarnings())
	assert.Equal(t, 1, r.ErrorCount())
	assert.Equal(t, 1, r.WarningCount())
	assert.Equal(t, 2, r.TotalCount())
}

func TestErrorRecoveryStopsAtMaxErrors(t *testing.T) {
	r := werrors.NewErrorRecoveryWithMax(2)
	for i := 0; i < 5; i++ {
		r.Recover(werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{}))
	}
	assert.Equal(t, 2, r.ErrorCount())
}

func TestErrorRecoverySummary(t *testing.T) {
	r := werrors.NewErrorRecovery()
	assert.Equal(t, "No errors or warnings", r.Summary())

	r.Recover(werrors.New(werrors.Type, "mismatch", werrors.SourceLocation{}))
	assert.Equal(t, "Found 1 error(s)", r.Summary())
}

func TestErrorRecoveryFirstFatal(t *testing.T) {
	r := werrors.NewErrorRecovery()
	r.Recover(werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{}))
	r.Recover(werrors.New(werrors.Internal, "undefined invariant", werrors.SourceLocation{}).WithSeverity(werrors.Fatal))

	fatal := r.FirstFatal()
	require.NotNil(t, fatal)
	assert.Equal(t, werrors.Internal, fatal.Kind)
}

func TestErrorRecoveryGetErrorsByKind(t *testing.T) {
	r := werrors.NewErrorRecovery()
	r.Recover(werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{}))
	r.Recover(werrors.New(werrors.Type, "mismatch", werrors.SourceLocation{}))

	typeErrs := r.GetErrorsByKind(werrors.Type)
	require.Len(t, typeErrs, 1)
	assert.Equal(t, "mismatch", typeErrs[0].Message)
}

func TestFormatForTerminalNoColorIsPlain(t *testing.T) {
	err := werrors.New(werrors.Syntax, "unexpected token", werrors.SourceLocation{File: "main.wfl", Line: 1, Column: 1})
	out := err.FormatForTerminal(true)
	assert.False(t, strings.Contains(out, "\033["))
	assert.Contains(t, out, "main.wfl:1:1")
}

func TestFormatErrorsAsJSONStatus(t *testing.T) {
	errs := []werrors.WFLError{
		werrors.New(werrors.Syntax, "bad token", werrors.SourceLocation{}),
	}
	out, err := werrors.FormatErrorsAsJSON(errs)
	require.NoError(t, err)
	assert.Contains(t, out, `"status"`)
	assert.Contains(t, out, `"error"`)
}
