package lexer

import "strings"

// mergeIdentifiers folds runs of adjacent TOKEN_IDENTIFIER tokens,
// separated only by single spaces on the same line with no intervening
// keyword or newline, into one multi-word identifier. The merge is
// greedy: it extends as far as contiguous single-space-separated
// identifiers allow and stops at the first non-identifier token, a
// line break, or a gap of more than one space (spec.md §4.1).
func mergeIdentifiers(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		tok := tokens[i]
		if tok.Type != TOKEN_IDENTIFIER {
			out = append(out, tok)
			i++
			continue
		}

		words := []string{tok.Lexeme}
		span := tok.Span
		lastEnd := tok.Span.Column + tok.Span.Length
		j := i + 1
		for j < len(tokens) {
			next := tokens[j]
			if next.Type != TOKEN_IDENTIFIER || next.Span.Line != tok.Span.Line {
				break
			}
			if next.Span.Column-lastEnd != 1 { // exactly one space between words
				break
			}
			words = append(words, next.Lexeme)
			lastEnd = next.Span.Column + next.Span.Length
			j++
		}

		out = append(out, Token{
			Type:   TOKEN_IDENTIFIER,
			Lexeme: strings.Join(words, " "),
			Span:   Span{Line: span.Line, Column: span.Column, Length: lastEnd - span.Column},
		})
		i = j
	}
	return out
}
