package interp_test

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/analyzer"
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
	"github.com/wfl-lang/wfl/runtime/interp"
	"github.com/wfl-lang/wfl/runtime/value"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs, "unexpected lex errors")
	program, parseErrs := parser.New(tokens).Parse()
	require.Empty(t, parseErrs, "unexpected parse errors")
	return program
}

func run(t *testing.T, source string) (*interp.Interpreter, string) {
	t.Helper()
	program := parseProgram(t, source)
	it := interp.New()
	var out strings.Builder
	it.Stdout = &out
	err := it.Run(context.Background(), program)
	require.NoError(t, err)
	return it, out.String()
}

// E1. display "Hello, World!"
func TestHelloWorld(t *testing.T) {
	_, out := run(t, `display "Hello, World!"`)
	assert.Equal(t, "Hello, World!\n", out)
}

// E2. count loop accumulating a sum into "total".
func TestCountLoopSum(t *testing.T) {
	source := `store total as 0
count from 1 to 10:
    change total to total plus count
end count
display total`
	it, out := run(t, source)
	assert.Equal(t, "55\n", out)

	v, ok := it.Globals.Get("total")
	require.True(t, ok)
	assert.Equal(t, value.Number(55), v)
}

// E3. multi-word identifiers concatenated with `with`.
func TestMultiWordIdentifierConcatenation(t *testing.T) {
	source := `store first name as "Ada"
store last name as "Lovelace"
display "Hello, " with first name with " " with last name`
	_, out := run(t, source)
	assert.Equal(t, "Hello, Ada Lovelace\n", out)
}

// E4. pattern definition with a named capture, matched against text.
func TestPatternCaptureDefinition(t *testing.T) {
	source := `create pattern phone:
    capture { exactly 3 digit } as area
    "-"
    capture { exactly 3 digit } as exchange
    "-"
    capture { exactly 4 digit } as number
end pattern
store result as find phone in "Call 555-123-4567 today"
display result.captures.area`
	_, out := run(t, source)
	assert.Equal(t, "555\n", out)
}

// E5. try/retry: the first attempt fails with file-not-found, the when
// clause creates the file and retries, the second attempt succeeds.
func TestTryRetryFileCreation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	source := fmt.Sprintf(`store attempts as 0
try:
    change attempts to attempts plus 1
    open file at "%s" for reading as f
    read from f into contents
    close file f
when file not found:
    check if attempts is less than 2:
        create file at "%s" with "ok"
        retry
    otherwise:
        display "failed"
    end check
end try
display attempts`, path, path)
	_, out := run(t, source)
	assert.Equal(t, "2\n", out)
}

// Containers: inheritance, method dispatch, and `parent name(...)`.
func TestContainerInheritanceAndParentMethodCall(t *testing.T) {
	source := `create container Animal:
    property name
    action called speak:
        display name with " makes a sound"
    end action
end container

create container Dog extends Animal:
    action called speak:
        store ignored as parent speak()
        display name with " barks"
    end action
end container

create new Dog as rex:
    name is "Rex"
end

store ignored as rex.speak()`
	_, out := run(t, source)
	assert.Equal(t, "Rex makes a sound\nRex barks\n", out)
}

// Containers: events and handlers registered with `on`, fired with
// `trigger ... on ...`.
func TestContainerEventTrigger(t *testing.T) {
	source := `create container Switch:
    property state
    event toggled
end container

create new Switch as s:
    state is "off"
end

on s toggled:
    display "switch toggled, state is " with state
end on

trigger toggled on s`
	_, out := run(t, source)
	assert.Equal(t, "switch toggled, state is off\n", out)
}

// Static properties and static actions live on the class itself,
// shared across every instance, and are reachable by `ClassName.member`
// even when no instance has ever been created.
func TestStaticMemberAccessAndStaticAction(t *testing.T) {
	source := `create container Counter:
    static property total as 0
    static action called increment:
        change total to total plus 1
        gives back total
    end action
end container

store first as Counter.increment()
store second as Counter.increment()
display first
display second
display Counter.total`
	_, out := run(t, source)
	assert.Equal(t, "1\n2\n2\n", out)
}

// Async actions run via the scheduler and resolve through wait for.
// No surface keyword marks an action async; the analyzer infers it
// from an action's own body containing a suspension point (here,
// outer's own `wait for inner(...)`), which is what actually sends
// outer's call through the scheduler rather than inner's.
func TestAsyncActionWaitFor(t *testing.T) {
	source := `define action called inner needs n:
    gives back n times 2
end action

define action called outer needs n:
    wait for inner(n) as r
    gives back r
end action

wait for outer(21) as result
display result`
	program := parseProgram(t, source)
	diags := analyzer.Analyze(program)
	for _, d := range diags {
		require.NotEqual(t, analyzer.SeverityError, d.Severity, d.Message)
	}

	it := interp.New()
	var out strings.Builder
	it.Stdout = &out
	require.NoError(t, it.Run(context.Background(), program))
	assert.Equal(t, "42\n", out.String())
}

// Try/catch with finally always running, including on the clean path.
func TestTryFinallyAlwaysRuns(t *testing.T) {
	source := `store log as ""
try:
    change log to log with "body "
catch:
    change log to log with "catch "
finally:
    change log to log with "finally"
end try
display log`
	_, out := run(t, source)
	assert.Equal(t, "body finally\n", out)
}

// Try/when selects the matching handler by condition, runs finally,
// and propagates the handler's own result.
func TestTryWhenDivisionByZero(t *testing.T) {
	source := `store result as 0
try:
    change result to 10 divided by 0
when division by zero:
    change result to minus 1
end try
display result`
	_, out := run(t, source)
	assert.Equal(t, "-1\n", out)
}
