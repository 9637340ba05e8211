package lexer

import "testing"

func typesOf(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, t := range tokens {
		types[i] = t.Type
	}
	return types
}

func assertTypes(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gotTypes := typesOf(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", gotTypes, want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, gotTypes[i], want[i], gotTypes)
		}
	}
}

func TestScanSimpleStoreStatement(t *testing.T) {
	tokens, errs := Tokenize(`store x as 5`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, []TokenType{
		TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF,
	})
}

func TestScanFloatLiteral(t *testing.T) {
	tokens, errs := Tokenize(`store pi as 3.14`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	last := tokens[3]
	if last.Type != TOKEN_FLOAT_LITERAL {
		t.Fatalf("expected float literal, got %s", last.Type)
	}
	if v, ok := last.Literal.(float64); !ok || v != 3.14 {
		t.Fatalf("expected literal 3.14, got %v", last.Literal)
	}
}

func TestScanStringWithEscapes(t *testing.T) {
	tokens, errs := Tokenize(`display "hello\nworld\t\"quoted\""`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	str := tokens[1]
	if str.Type != TOKEN_STRING_LITERAL {
		t.Fatalf("expected string literal, got %s", str.Type)
	}
	want := "hello\nworld\t\"quoted\""
	if str.Literal.(string) != want {
		t.Fatalf("got %q, want %q", str.Literal, want)
	}
}

func TestUnterminatedStringProducesError(t *testing.T) {
	_, errs := Tokenize(`display "unterminated`)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "unterminated string literal" {
		t.Fatalf("unexpected error message: %q", errs[0].Message)
	}
}

func TestUnknownCharacterProducesErrorToken(t *testing.T) {
	tokens, errs := Tokenize(`store x as 5 ~ 3`)
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	types := typesOf(tokens)
	found := false
	for _, ty := range types {
		if ty == TOKEN_ERROR {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an ERROR token in stream: %v", types)
	}
}

func TestLineAndHashComments(t *testing.T) {
	tokens, errs := Tokenize("store x as 1 // trailing comment\n# full line\nstore y as 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	assertTypes(t, tokens, []TokenType{
		TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_NEWLINE,
		TOKEN_NEWLINE,
		TOKEN_STORE, TOKEN_IDENTIFIER, TOKEN_AS, TOKEN_INT_LITERAL, TOKEN_EOF,
	})
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	tokens, errs := Tokenize(`Store x As 5`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// "Store" and "As" are not keywords (lowercase-only); they merge into
	// one multi-word identifier together with "x".
	assertTypes(t, tokens, []TokenType{TOKEN_IDENTIFIER, TOKEN_INT_LITERAL, TOKEN_EOF})
	if tokens[0].Lexeme != "Store x As" {
		t.Fatalf("expected merged identifier %q, got %q", "Store x As", tokens[0].Lexeme)
	}
}

func TestNothingSynonymsAllLexToSameToken(t *testing.T) {
	for _, word := range []string{"nothing", "missing", "undefined"} {
		tokens, errs := Tokenize(`store x as ` + word)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors for %q: %v", word, errs)
		}
		if tokens[3].Type != TOKEN_NOTHING {
			t.Fatalf("word %q: expected TOKEN_NOTHING, got %s", word, tokens[3].Type)
		}
	}
}

func TestTrueFalseCarryBooleanLiteral(t *testing.T) {
	tokens, _ := Tokenize(`store ok as true`)
	lit, ok := tokens[3].Literal.(bool)
	if !ok || !lit {
		t.Fatalf("expected literal true, got %v", tokens[3].Literal)
	}
}
