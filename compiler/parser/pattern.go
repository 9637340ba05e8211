package parser

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// parsePatternDefine parses `create pattern <name>: <elements...> end
// pattern`.
func (p *Parser) parsePatternDefine() ast.StmtNode {
	createTok := p.advance() // 'create'
	p.advance()              // 'pattern'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start pattern body")
		return nil
	}
	seq := p.parsePatternSequence(lexer.TOKEN_END)
	if !p.expectEnd("pattern") {
		return nil
	}
	return &ast.PatternDefine{Name: name, Pattern: seq, Loc: ast.LocFromToken(createTok)}
}

// parsePatternSequence parses pattern elements until the given
// terminator, wrapping them in a PatternSequence.
func (p *Parser) parsePatternSequence(terminator lexer.TokenType) ast.PatternNode {
	tok := p.peek()
	var elements []ast.PatternNode
	for !p.isAtEnd() && !p.check(terminator) && !p.check(lexer.TOKEN_RBRACE) {
		elem := p.parsePatternAlternation()
		if elem == nil {
			p.errorKind(ErrInvalidPatternRange, p.peek(), "expected pattern element")
			p.advance()
			continue
		}
		elements = append(elements, elem)
	}
	if len(elements) == 1 {
		return elements[0]
	}
	return &ast.PatternSequence{Elements: elements, Loc: ast.LocFromToken(tok)}
}

// parsePatternAlternation parses a single pattern atom, then folds in
// any `or`-chained alternatives.
func (p *Parser) parsePatternAlternation() ast.PatternNode {
	tok := p.peek()
	first := p.parsePatternAtom()
	if first == nil {
		return nil
	}
	if !p.check(lexer.TOKEN_OR) {
		return first
	}
	options := []ast.PatternNode{first}
	for p.match(lexer.TOKEN_OR) {
		next := p.parsePatternAtom()
		if next == nil {
			break
		}
		options = append(options, next)
	}
	return &ast.PatternAlternation{Options: options, Loc: ast.LocFromToken(tok)}
}

//nolint:gocyclo // pattern atom dispatch is inherently a big switch
func (p *Parser) parsePatternAtom() ast.PatternNode {
	tok := p.peek()

	switch {
	case p.check(lexer.TOKEN_STRING_LITERAL):
		p.advance()
		return &ast.PatternLiteral{Text: tok.Literal.(string), Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_CAPTURE):
		return p.parsePatternCapture(tok)

	case p.match(lexer.TOKEN_OPTIONAL):
		inner := p.parsePatternAtom()
		return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantOptional, Loc: ast.LocFromToken(tok)}

	case p.check(lexer.TOKEN_ZERO):
		p.advance()
		p.match(lexer.TOKEN_OR)
		p.match(lexer.TOKEN_MORE)
		inner := p.parsePatternAtom()
		return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantZeroOrMore, Loc: ast.LocFromToken(tok)}

	case p.check(lexer.TOKEN_ONE):
		p.advance()
		p.match(lexer.TOKEN_OR)
		p.match(lexer.TOKEN_MORE)
		inner := p.parsePatternAtom()
		return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantOneOrMore, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_EXACTLY):
		n := p.consumeInt()
		inner := p.parsePatternAtom()
		return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantExactly, Min: n, Max: n, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_AT):
		switch {
		case p.match(lexer.TOKEN_LEAST):
			n := p.consumeInt()
			inner := p.parsePatternAtom()
			return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantAtLeast, Min: n, Loc: ast.LocFromToken(tok)}
		case p.match(lexer.TOKEN_MOST):
			n := p.consumeInt()
			inner := p.parsePatternAtom()
			return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantAtMost, Max: n, Loc: ast.LocFromToken(tok)}
		default:
			p.errorKind(ErrInvalidPatternRange, p.peek(), "expected 'least' or 'most' after 'at'")
			return nil
		}

	case p.check(lexer.TOKEN_INT_LITERAL):
		n := p.consumeInt()
		if p.match(lexer.TOKEN_TO) {
			m := p.consumeInt()
			inner := p.parsePatternAtom()
			return &ast.PatternQuantifier{Inner: inner, Kind: ast.QuantRange, Min: n, Max: m, Loc: ast.LocFromToken(tok)}
		}
		p.errorKind(ErrInvalidPatternRange, p.peek(), "expected 'to' after range lower bound")
		return nil

	case p.match(lexer.TOKEN_DIGIT):
		return &ast.PatternCharClass{Class: ast.ClassDigit, Loc: ast.LocFromToken(tok)}
	case p.match(lexer.TOKEN_LETTER):
		return &ast.PatternCharClass{Class: ast.ClassLetter, Loc: ast.LocFromToken(tok)}
	case p.match(lexer.TOKEN_WHITESPACE):
		return &ast.PatternCharClass{Class: ast.ClassWhitespace, Loc: ast.LocFromToken(tok)}
	case p.match(lexer.TOKEN_PUNCTUATION):
		return &ast.PatternCharClass{Class: ast.ClassPunctuation, Loc: ast.LocFromToken(tok)}
	case p.check(lexer.TOKEN_ANY):
		p.advance()
		p.match(lexer.TOKEN_CHARACTER)
		return &ast.PatternCharClass{Class: ast.ClassAny, Loc: ast.LocFromToken(tok)}

	case p.check(lexer.TOKEN_START):
		p.advance()
		if !p.match(lexer.TOKEN_OF) || !p.match(lexer.TOKEN_TEXT) {
			p.errorKind(ErrInvalidPatternRange, p.peek(), "expected 'start of text'")
			return nil
		}
		return &ast.PatternAnchor{Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_NOT):
		switch {
		case p.match(lexer.TOKEN_FOLLOWED):
			p.match(lexer.TOKEN_BY)
			inner := p.parseBracedPattern()
			return &ast.PatternLookaround{Kind: ast.LookaheadNegative, Inner: inner, Loc: ast.LocFromToken(tok)}
		case p.match(lexer.TOKEN_PRECEDED):
			p.match(lexer.TOKEN_BY)
			inner := p.parseBracedPattern()
			return &ast.PatternLookaround{Kind: ast.LookbehindNegative, Inner: inner, Loc: ast.LocFromToken(tok)}
		default:
			p.errorKind(ErrInvalidPatternRange, p.peek(), "expected 'followed by' or 'preceded by' after 'not'")
			return nil
		}

	case p.match(lexer.TOKEN_FOLLOWED):
		p.match(lexer.TOKEN_BY)
		inner := p.parseBracedPattern()
		return &ast.PatternLookaround{Kind: ast.LookaheadPositive, Inner: inner, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_PRECEDED):
		p.match(lexer.TOKEN_BY)
		inner := p.parseBracedPattern()
		return &ast.PatternLookaround{Kind: ast.LookbehindPositive, Inner: inner, Loc: ast.LocFromToken(tok)}

	default:
		p.errorKind(ErrInvalidPatternRange, tok, "expected a pattern atom, got "+tok.Lexeme)
		return nil
	}
}

func (p *Parser) parsePatternCapture(tok lexer.Token) ast.PatternNode {
	inner := p.parseBracedPattern()
	if !p.match(lexer.TOKEN_AS) {
		p.error(p.peek(), "expected 'as' after capture group")
		return nil
	}
	name := p.consumeBindingName()
	return &ast.PatternCapture{Inner: inner, Name: name, Loc: ast.LocFromToken(tok)}
}

func (p *Parser) parseBracedPattern() ast.PatternNode {
	if !p.match(lexer.TOKEN_LBRACE) {
		p.errorKind(ErrInvalidPatternRange, p.peek(), "expected '{' to start pattern group")
		return nil
	}
	inner := p.parsePatternSequence(lexer.TOKEN_RBRACE)
	if !p.match(lexer.TOKEN_RBRACE) {
		p.errorKind(ErrInvalidPatternRange, p.peek(), "expected '}' to close pattern group")
	}
	return inner
}

func (p *Parser) consumeInt() int {
	tok := p.peek()
	if tok.Type != lexer.TOKEN_INT_LITERAL {
		p.errorKind(ErrInvalidPatternRange, tok, "expected integer literal")
		return 0
	}
	p.advance()
	if n, ok := tok.Literal.(int64); ok {
		return int(n)
	}
	return 0
}
