package resource

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenize splits a shell-expansion command string into argv per
// spec.md §4.5's escape/quoting grammar: double-quoted strings support
// `\n \t \r \\ \" \0`, single-quoted strings support no escapes at
// all, and a bare backslash outside any quote escapes the very next
// rune literally (most usefully, a space that should not split the
// token). No example-pack dependency implements exactly this grammar,
// so it is hand-rolled rather than borrowed (see DESIGN.md).
func Tokenize(command string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	haveToken := false

	runes := []rune(command)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			if haveToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				haveToken = false
			}
			i++
		case r == '"':
			haveToken = true
			i++
			for {
				if i >= len(runes) {
					return nil, fmt.Errorf("resource: unterminated double-quoted string in %q", command)
				}
				c := runes[i]
				if c == '"' {
					i++
					break
				}
				if c == '\\' {
					i++
					if i >= len(runes) {
						return nil, fmt.Errorf("resource: trailing backslash inside quotes in %q", command)
					}
					esc, err := doubleQuoteEscape(runes[i])
					if err != nil {
						return nil, err
					}
					cur.WriteRune(esc)
					i++
					continue
				}
				cur.WriteRune(c)
				i++
			}
		case r == '\'':
			haveToken = true
			i++
			for {
				if i >= len(runes) {
					return nil, fmt.Errorf("resource: unterminated single-quoted string in %q", command)
				}
				c := runes[i]
				if c == '\'' {
					i++
					break
				}
				cur.WriteRune(c)
				i++
			}
		case r == '\\':
			haveToken = true
			i++
			if i >= len(runes) {
				return nil, fmt.Errorf("resource: trailing backslash in %q", command)
			}
			cur.WriteRune(runes[i])
			i++
		default:
			haveToken = true
			cur.WriteRune(r)
			i++
		}
	}
	if haveToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

func doubleQuoteEscape(r rune) (rune, error) {
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '0':
		return 0, nil
	default:
		return 0, fmt.Errorf("resource: unsupported escape sequence \\%c", r)
	}
}
