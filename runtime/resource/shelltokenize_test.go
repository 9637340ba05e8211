package resource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wfl-lang/wfl/runtime/resource"
)

func TestTokenizeSplitsOnBareSpaces(t *testing.T) {
	toks, err := resource.Tokenize(`echo hello world`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "hello", "world"}, toks)
}

func TestTokenizeDoubleQuotedEscapes(t *testing.T) {
	toks, err := resource.Tokenize(`echo "line one\nline two\t\"quoted\""`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "line one\nline two\t\"quoted\"", toks[1])
}

func TestTokenizeSingleQuotedHasNoEscapes(t *testing.T) {
	toks, err := resource.Tokenize(`echo 'a\nb'`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, `a\nb`, toks[1])
}

func TestTokenizeBackslashEscapesSpaceOutsideQuotes(t *testing.T) {
	toks, err := resource.Tokenize(`echo one\ two`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo", "one two"}, toks)
}

func TestTokenizeUnterminatedDoubleQuoteIsError(t *testing.T) {
	_, err := resource.Tokenize(`echo "unterminated`)
	assert.Error(t, err)
}

func TestTokenizeUnterminatedSingleQuoteIsError(t *testing.T) {
	_, err := resource.Tokenize(`echo 'unterminated`)
	assert.Error(t, err)
}

func TestTokenizeUnsupportedEscapeIsError(t *testing.T) {
	_, err := resource.Tokenize(`echo "bad \q escape"`)
	assert.Error(t, err)
}
