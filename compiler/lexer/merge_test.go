package lexer

import "testing"

func TestMergeAdjacentIdentifiersIntoOne(t *testing.T) {
	tokens, errs := Tokenize(`store total amount as 5`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, []TokenType{TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF})
	if tokens[1].Lexeme != "total amount" {
		t.Fatalf("expected merged identifier %q, got %q", "total amount", tokens[1].Lexeme)
	}
}

func TestMergeStopsAtKeywordBoundary(t *testing.T) {
	// "count" is a keyword token, not an identifier, so it cannot merge
	// into a surrounding identifier run even though it reads like a word.
	tokens, errs := Tokenize(`count from 1 to 10`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, []TokenType{
		TOKEN_COUNT, TOKEN_FROM, TOKEN_INT_LITERAL, TOKEN_TO, TOKEN_INT_LITERAL, TOKEN_EOF,
	})
}

func TestMergeDoesNotCrossNewline(t *testing.T) {
	tokens, errs := Tokenize("store foo\nbar as 1")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// "foo" and "bar" sit on different lines, so they must not merge.
	assertTypes(t, tokens, []TokenType{
		TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_NEWLINE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF,
	})
	if tokens[1].Lexeme != "foo" || tokens[3].Lexeme != "bar" {
		t.Fatalf("expected separate identifiers foo/bar, got %q/%q", tokens[1].Lexeme, tokens[3].Lexeme)
	}
}

func TestMergeDoesNotSpanDoubleSpace(t *testing.T) {
	tokens, errs := Tokenize(`store total  amount as 5`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// Two spaces between "total" and "amount" breaks the merge.
	assertTypes(t, tokens, []TokenType{
		TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF,
	})
	if tokens[1].Lexeme != "total" || tokens[2].Lexeme != "amount" {
		t.Fatalf("expected separate identifiers total/amount, got %q/%q", tokens[1].Lexeme, tokens[2].Lexeme)
	}
}

func TestMergeIsGreedyAcrossManyWords(t *testing.T) {
	tokens, errs := Tokenize(`store my favorite shopping cart total as 0`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, []TokenType{TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF})
	want := "my favorite shopping cart total"
	if tokens[1].Lexeme != want {
		t.Fatalf("expected merged identifier %q, got %q", want, tokens[1].Lexeme)
	}
}
