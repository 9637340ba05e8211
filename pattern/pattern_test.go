package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
	"github.com/wfl-lang/wfl/compiler/parser"
	"github.com/wfl-lang/wfl/pattern"
)

func compilePattern(t *testing.T, source string) *pattern.Program {
	t.Helper()
	tokens, lexErrs := lexer.Tokenize(source)
	require.Empty(t, lexErrs)
	program, parseErrs := parser.New(tokens).Parse()
	require.Empty(t, parseErrs)
	require.Len(t, program.Statements, 1)
	def, ok := program.Statements[0].(*ast.PatternDefine)
	require.True(t, ok)
	prog, err := pattern.Compile(def.Pattern)
	require.NoError(t, err)
	return prog
}

func TestLiteralMatches(t *testing.T) {
	prog := compilePattern(t, `create pattern greeting:
    "hello"
end pattern`)
	ok, err := pattern.Matches(prog, "say hello there")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pattern.Matches(prog, "goodbye")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCharClassOneOrMoreDigits(t *testing.T) {
	prog := compilePattern(t, `create pattern digits:
    one or more digit
end pattern`)
	m, err := pattern.Find(prog, "order #4821 shipped")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "4821", m.Text)
}

func TestZeroOrMoreIsGreedy(t *testing.T) {
	prog := compilePattern(t, `create pattern run:
    "a"
    zero or more "b"
end pattern`)
	m, err := pattern.Find(prog, "abbbc")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "abbb", m.Text)
}

func TestOptionalQuantifier(t *testing.T) {
	prog := compilePattern(t, `create pattern colour:
    "colo"
    optional "u"
    "r"
end pattern`)
	for _, s := range []string{"color", "colour"} {
		ok, err := pattern.Matches(prog, s)
		require.NoError(t, err)
		assert.True(t, ok, s)
	}
}

func TestExactlyNRepetition(t *testing.T) {
	prog := compilePattern(t, `create pattern zip:
    exactly 5 digit
end pattern`)
	m, err := pattern.Find(prog, "mail code 90210 west")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "90210", m.Text)

	m, err = pattern.Find(prog, "code 9021 west")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRangeRepetition(t *testing.T) {
	prog := compilePattern(t, `create pattern shortcode:
    2 to 4 letter
end pattern`)
	m, err := pattern.Find(prog, "ab cdef")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "ab", m.Text)
}

func TestAtLeastRepetition(t *testing.T) {
	prog := compilePattern(t, `create pattern whitespace_run:
    at least 2 whitespace
end pattern`)
	m, err := pattern.Find(prog, "a   b")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "   ", m.Text)
}

func TestAlternation(t *testing.T) {
	prog := compilePattern(t, `create pattern pet:
    "cat" or "dog" or "bird"
end pattern`)
	for _, s := range []string{"I have a cat", "a dog barked", "a bird sang"} {
		ok, err := pattern.Matches(prog, s)
		require.NoError(t, err)
		assert.True(t, ok, s)
	}
	ok, err := pattern.Matches(prog, "a fish swam")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCaptureGroup(t *testing.T) {
	prog := compilePattern(t, `create pattern greeting_name:
    "hello "
    capture { one or more letter } as name
end pattern`)
	m, err := pattern.Find(prog, "hello Ada")
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Contains(t, m.Captures, "name")
	require.NotNil(t, m.Captures["name"])
	assert.Equal(t, "Ada", *m.Captures["name"])
}

func TestFindAllNonOverlapping(t *testing.T) {
	prog := compilePattern(t, `create pattern digits:
    one or more digit
end pattern`)
	matches, err := pattern.FindAll(prog, "a1 b22 c333")
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, []string{"1", "22", "333"}, []string{matches[0].Text, matches[1].Text, matches[2].Text})
}

func TestReplace(t *testing.T) {
	prog := compilePattern(t, `create pattern digits:
    one or more digit
end pattern`)
	out, err := pattern.Replace(prog, "room 12 and room 34", "#")
	require.NoError(t, err)
	assert.Equal(t, "room # and room #", out)
}

func TestSplit(t *testing.T) {
	prog := compilePattern(t, `create pattern comma_space:
    ","
    zero or more whitespace
end pattern`)
	segments, err := pattern.Split(prog, "a, b,c,  d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, segments)
}

func TestStartOfTextAnchor(t *testing.T) {
	prog := compilePattern(t, `create pattern leading_digits:
    start of text
    one or more digit
end pattern`)
	assert.True(t, prog.AnchoredStart)

	m, err := pattern.Find(prog, "123abc")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "123", m.Text)

	m, err = pattern.Find(prog, "abc123")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestPositiveLookahead(t *testing.T) {
	prog := compilePattern(t, `create pattern foo_before_bar:
    "foo"
    followed by { "bar" }
end pattern`)
	m, err := pattern.Find(prog, "foobar")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "foo", m.Text)

	m, err = pattern.Find(prog, "foobaz")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestNegativeLookahead(t *testing.T) {
	prog := compilePattern(t, `create pattern foo_not_before_bar:
    "foo"
    not followed by { "bar" }
end pattern`)
	m, err := pattern.Find(prog, "foobaz")
	require.NoError(t, err)
	require.NotNil(t, m)

	m, err = pattern.Find(prog, "foobar")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestPositiveLookbehind(t *testing.T) {
	prog := compilePattern(t, `create pattern digits_after_dollar:
    preceded by { "$" }
    one or more digit
end pattern`)
	m, err := pattern.Find(prog, "price $42 today")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "42", m.Text)

	m, err = pattern.Find(prog, "price was 42 today")
	require.NoError(t, err)
	assert.Nil(t, m)
}
