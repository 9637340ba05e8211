package parser

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// parseExpression is the entry point for expression parsing, starting
// at the lowest-precedence level.
func (p *Parser) parseExpression() ast.ExprNode {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.ExprNode {
	left := p.parseLogicalAnd()
	for p.check(lexer.TOKEN_OR) {
		tok := p.advance()
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpr{Left: left, Operator: ast.LogOr, Right: right, Loc: ast.LocFromToken(tok)}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.ExprNode {
	left := p.parseLogicalNot()
	for p.check(lexer.TOKEN_AND) {
		tok := p.advance()
		right := p.parseLogicalNot()
		left = &ast.LogicalExpr{Left: left, Operator: ast.LogAnd, Right: right, Loc: ast.LocFromToken(tok)}
	}
	return left
}

func (p *Parser) parseLogicalNot() ast.ExprNode {
	if p.check(lexer.TOKEN_NOT) {
		tok := p.advance()
		operand := p.parseLogicalNot()
		return &ast.LogicalExpr{Operator: ast.LogNot, Right: operand, Loc: ast.LocFromToken(tok)}
	}
	return p.parseComparison()
}

// parseComparison handles equality/relational `is`-phrases and the
// pattern-matching infix `matches`.
func (p *Parser) parseComparison() ast.ExprNode {
	left := p.parseAdditive()
	for {
		switch {
		case p.check(lexer.TOKEN_IS):
			tok := p.advance()
			op, ok := p.parseComparisonTail()
			if !ok {
				p.error(p.peek(), "expected comparison phrase after 'is'")
				return left
			}
			right := p.parseAdditive()
			left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Loc: ast.LocFromToken(tok)}
		case p.check(lexer.TOKEN_MATCHES):
			tok := p.advance()
			pattern := p.parseAdditive()
			left = &ast.PatternMatchExpr{Text: left, Pattern: pattern, Loc: ast.LocFromToken(tok)}
		default:
			return left
		}
	}
}

// parseComparisonTail consumes the phrase following a bare `is` and
// reports which binary operator it spells out.
//
//nolint:gocyclo // the comparison-phrase grammar is inherently a flat dispatch
func (p *Parser) parseComparisonTail() (ast.BinaryOp, bool) {
	if p.match(lexer.TOKEN_NOT) {
		if p.match(lexer.TOKEN_EQUAL) {
			p.match(lexer.TOKEN_TO)
			return ast.OpNotEqual, true
		}
		return ast.OpIsNot, true
	}
	if p.match(lexer.TOKEN_EQUAL) {
		p.match(lexer.TOKEN_TO)
		return ast.OpEqual, true
	}
	if p.match(lexer.TOKEN_GREATER) {
		if !p.match(lexer.TOKEN_THAN) {
			return ast.OpGreaterThan, false
		}
		if p.match(lexer.TOKEN_OR) {
			if p.match(lexer.TOKEN_EQUAL) {
				p.match(lexer.TOKEN_TO)
			}
			return ast.OpGreaterThanOrEqual, true
		}
		return ast.OpGreaterThan, true
	}
	if p.match(lexer.TOKEN_LESS) {
		if !p.match(lexer.TOKEN_THAN) {
			return ast.OpLessThan, false
		}
		if p.match(lexer.TOKEN_OR) {
			if p.match(lexer.TOKEN_EQUAL) {
				p.match(lexer.TOKEN_TO)
			}
			return ast.OpLessThanOrEqual, true
		}
		return ast.OpLessThan, true
	}
	if p.match(lexer.TOKEN_ABOVE) {
		return ast.OpAbove, true
	}
	if p.match(lexer.TOKEN_BELOW) {
		return ast.OpBelow, true
	}
	return ast.OpIs, true
}

// parseAdditive handles `plus`, `minus`, and the concatenation operator
// `with`.
func (p *Parser) parseAdditive() ast.ExprNode {
	left := p.parseMultiplicative()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.TOKEN_PLUS):
			op = ast.OpPlus
		case p.check(lexer.TOKEN_MINUS):
			op = ast.OpMinus
		case p.check(lexer.TOKEN_WITH):
			op = ast.OpWith
		default:
			return left
		}
		tok := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Loc: ast.LocFromToken(tok)}
	}
}

// parseMultiplicative handles `times`, `divided by`, and `mod`.
func (p *Parser) parseMultiplicative() ast.ExprNode {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.TOKEN_TIMES):
			op = ast.OpTimes
		case p.check(lexer.TOKEN_DIVIDED):
			op = ast.OpDividedBy
		case p.check(lexer.TOKEN_MOD):
			op = ast.OpMod
		default:
			return left
		}
		tok := p.advance()
		if op == ast.OpDividedBy && !p.match(lexer.TOKEN_BY) {
			p.error(p.peek(), "expected 'by' after 'divided'")
			return left
		}
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right, Loc: ast.LocFromToken(tok)}
	}
}

// parseUnary handles prefix negation: `minus <expr>`.
func (p *Parser) parseUnary() ast.ExprNode {
	if p.check(lexer.TOKEN_MINUS) {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Operand: operand, Loc: ast.LocFromToken(tok)}
	}
	return p.parsePostfix()
}

// parsePostfix handles member access and indexing following a primary
// expression: `obj.field`, `obj.method(args)`, `list[i]`.
func (p *Parser) parsePostfix() ast.ExprNode {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	for {
		switch {
		case p.match(lexer.TOKEN_DOT):
			expr = p.finishMemberAccess(expr)
		case p.match(lexer.TOKEN_LBRACKET):
			idx := p.parseExpression()
			if !p.match(lexer.TOKEN_RBRACKET) {
				p.error(p.peek(), "expected ']' after index expression")
			}
			expr = &ast.IndexExpr{Object: expr, Index: idx, Loc: expr.Location()}
		default:
			return expr
		}
	}
}

func (p *Parser) finishMemberAccess(object ast.ExprNode) ast.ExprNode {
	tok := p.peek()
	member := p.consumeBindingName()
	if member == "" {
		return object
	}
	if p.match(lexer.TOKEN_LPAREN) {
		args := p.parseArguments(lexer.TOKEN_RPAREN)
		p.match(lexer.TOKEN_RPAREN)
		return &ast.MemberAccessExpr{Object: object, Member: member, Arguments: args, IsCall: true, Loc: ast.LocFromToken(tok)}
	}
	return &ast.MemberAccessExpr{Object: object, Member: member, Loc: ast.LocFromToken(tok)}
}

// parseArguments parses a comma-separated expression list up to (not
// including) the terminator token.
func (p *Parser) parseArguments(terminator lexer.TokenType) []ast.ExprNode {
	var args []ast.ExprNode
	if p.check(terminator) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.TOKEN_COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}

// parsePrimary parses literals, identifiers (bare variable references,
// zero-arg action calls, `of`-style calls, and `with`-style action
// calls), parenthesized expressions, list literals, the pattern
// expression forms (`find`/`find all`/`replace`/`split`/static member
// access), and `parent method(...)` calls.
//
//nolint:gocyclo // primary dispatch spans many literal and call forms
func (p *Parser) parsePrimary() ast.ExprNode {
	tok := p.peek()

	switch {
	case p.checkAny(lexer.TOKEN_INT_LITERAL, lexer.TOKEN_FLOAT_LITERAL,
		lexer.TOKEN_STRING_LITERAL, lexer.TOKEN_TRUE, lexer.TOKEN_FALSE, lexer.TOKEN_NOTHING):
		p.advance()
		return &ast.LiteralExpr{Value: tok.Literal, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_LPAREN):
		expr := p.parseExpression()
		if !p.match(lexer.TOKEN_RPAREN) {
			p.error(p.peek(), "expected ')' after expression")
		}
		return expr

	case p.match(lexer.TOKEN_LBRACKET):
		elements := p.parseArguments(lexer.TOKEN_RBRACKET)
		if !p.match(lexer.TOKEN_RBRACKET) {
			p.error(p.peek(), "expected ']' after list literal")
		}
		return &ast.ListLiteralExpr{Elements: elements, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_PARENT):
		method := p.consumeBindingName()
		var args []ast.ExprNode
		if p.match(lexer.TOKEN_LPAREN) {
			args = p.parseArguments(lexer.TOKEN_RPAREN)
			p.match(lexer.TOKEN_RPAREN)
		}
		return &ast.ParentMethodCall{Method: method, Arguments: args, Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_COUNT):
		// the implicit count-loop variable read back as a bare `count`
		return &ast.IdentifierExpr{Name: "count", Loc: ast.LocFromToken(tok)}

	case p.match(lexer.TOKEN_FINDTEXT):
		return p.finishFind(tok)

	case p.match(lexer.TOKEN_REPLACE):
		return p.finishReplace(tok)

	case p.match(lexer.TOKEN_SPLIT):
		return p.finishSplit(tok)

	case p.check(lexer.TOKEN_IDENTIFIER):
		return p.finishIdentifier(tok)

	default:
		return nil
	}
}

// finishFind parses `find <pattern> in <text>` and `find all <pattern>
// in <text>` after the leading `find` token has been consumed.
func (p *Parser) finishFind(tok lexer.Token) ast.ExprNode {
	findAll := p.peek().Type == lexer.TOKEN_IDENTIFIER && p.peek().Lexeme == "all"
	if findAll {
		p.advance()
	}
	pattern := p.parseAdditive()
	if !p.match(lexer.TOKEN_IN) {
		p.error(p.peek(), "expected 'in' after pattern in find expression")
		return nil
	}
	text := p.parseAdditive()
	if findAll {
		return &ast.PatternFindAllExpr{Text: text, Pattern: pattern, Loc: ast.LocFromToken(tok)}
	}
	return &ast.PatternFindExpr{Text: text, Pattern: pattern, Loc: ast.LocFromToken(tok)}
}

// finishReplace parses `replace <pattern> with <text> in <source>`.
func (p *Parser) finishReplace(tok lexer.Token) ast.ExprNode {
	pattern := p.parseMultiplicative()
	if !p.match(lexer.TOKEN_WITH) {
		p.error(p.peek(), "expected 'with' after pattern in replace expression")
		return nil
	}
	replacement := p.parseAdditive()
	if !p.match(lexer.TOKEN_IN) {
		p.error(p.peek(), "expected 'in' after replacement text")
		return nil
	}
	source := p.parseAdditive()
	return &ast.PatternReplaceExpr{Source: source, Pattern: pattern, Replacement: replacement, Loc: ast.LocFromToken(tok)}
}

// finishSplit parses `split <text> on <pattern>`.
func (p *Parser) finishSplit(tok lexer.Token) ast.ExprNode {
	text := p.parseAdditive()
	if !p.match(lexer.TOKEN_ON) {
		p.error(p.peek(), "expected 'on' after text in split expression")
		return nil
	}
	pattern := p.parseAdditive()
	return &ast.PatternSplitExpr{Text: text, Pattern: pattern, Loc: ast.LocFromToken(tok)}
}

// finishIdentifier resolves a leading identifier token into a variable
// reference, a static member access (`ClassName.member`, recognized by
// a capitalized first letter), a parenthesized call, an `of`-style
// call (`length of x`), or a `with`-style user action call (`name with
// a and b`). Ambiguity between a bare variable and a zero-argument
// action call is resolved by the analyzer, which knows which names are
// bound to actions.
func (p *Parser) finishIdentifier(tok lexer.Token) ast.ExprNode {
	p.advance()
	name := tok.Lexeme

	if p.check(lexer.TOKEN_DOT) && isCapitalized(name) {
		return p.finishStaticMemberAccess(tok, name)
	}

	if p.match(lexer.TOKEN_LPAREN) {
		args := p.parseArguments(lexer.TOKEN_RPAREN)
		p.match(lexer.TOKEN_RPAREN)
		return &ast.ActionCall{Name: name, Arguments: args, Loc: ast.LocFromToken(tok)}
	}

	if p.match(lexer.TOKEN_OF) {
		arg := p.parseUnary()
		return &ast.ActionCall{Name: name, Arguments: []ast.ExprNode{arg}, Loc: ast.LocFromToken(tok)}
	}

	// Note: `with` is deliberately NOT treated as an action-call argument
	// separator here, even though user actions may be invoked that way
	// conceptually — `with` already means string concatenation at the
	// additive precedence level (see E3: `"Hello, " with first name with
	// " " with last name`), and a bare identifier immediately followed by
	// `with` must parse as the left operand of that binary operator, not
	// swallow it as a call. Action calls use parentheses or `of`.
	return &ast.IdentifierExpr{Name: name, Loc: ast.LocFromToken(tok)}
}

func (p *Parser) finishStaticMemberAccess(tok lexer.Token, className string) ast.ExprNode {
	p.advance() // '.'
	member := p.consumeBindingName()
	if p.match(lexer.TOKEN_LPAREN) {
		args := p.parseArguments(lexer.TOKEN_RPAREN)
		p.match(lexer.TOKEN_RPAREN)
		return &ast.StaticMemberAccessExpr{ClassName: className, Member: member, Arguments: args, IsCall: true, Loc: ast.LocFromToken(tok)}
	}
	return &ast.StaticMemberAccessExpr{ClassName: className, Member: member, Loc: ast.LocFromToken(tok)}
}

func isCapitalized(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c >= 'A' && c <= 'Z'
}
