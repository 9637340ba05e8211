package parser

import (
	"strings"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// statementStarters is the set of tokens the resynchronizer scans
// forward to after a syntax error, per the statement-starter keyword
// list.
var statementStarters = map[lexer.TokenType]bool{
	lexer.TOKEN_STORE: true, lexer.TOKEN_CHANGE: true, lexer.TOKEN_DISPLAY: true,
	lexer.TOKEN_CHECK: true, lexer.TOKEN_COUNT: true, lexer.TOKEN_FOR: true,
	lexer.TOKEN_REPEAT: true, lexer.TOKEN_DEFINE: true, lexer.TOKEN_CREATE: true,
	lexer.TOKEN_TRY: true, lexer.TOKEN_OPEN: true, lexer.TOKEN_CLOSE: true,
	lexer.TOKEN_LISTEN: true, lexer.TOKEN_EXECUTE: true, lexer.TOKEN_SPAWN: true,
	lexer.TOKEN_WAIT: true, lexer.TOKEN_RETURN: true, lexer.TOKEN_BREAK: true,
	lexer.TOKEN_CONTINUE: true, lexer.TOKEN_END: true,
}

// Parser transforms a stream of tokens into an Abstract Syntax Tree.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
}

// New creates a new parser for the given token stream. Newline tokens
// are filtered up front; the grammar below is newline-insensitive.
func New(tokens []lexer.Token) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != lexer.TOKEN_NEWLINE {
			filtered = append(filtered, t)
		}
	}
	return &Parser{tokens: filtered}
}

// Parse parses the entire token stream into a Program and returns any
// diagnostics collected along the way.
func (p *Parser) Parse() (*ast.Program, []ParseError) {
	program := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.parseStatement(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program, p.errors
}

// parseBlockUntil parses statements until the current token is one of
// terminators, without consuming the terminator.
func (p *Parser) parseBlockUntil(terminators ...lexer.TokenType) []ast.StmtNode {
	var stmts []ast.StmtNode
	for !p.isAtEnd() && !p.checkAny(terminators...) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

//nolint:gocyclo,cyclop // statement dispatch is inherently a big switch
func (p *Parser) parseStatement() ast.StmtNode {
	switch {
	case p.check(lexer.TOKEN_STORE):
		return p.parseVariableDeclare()
	case p.check(lexer.TOKEN_CREATE):
		return p.parseCreateStatement()
	case p.check(lexer.TOKEN_CHANGE):
		return p.parseVariableAssign()
	case p.check(lexer.TOKEN_DISPLAY):
		return p.parseDisplay()
	case p.check(lexer.TOKEN_CHECK):
		return p.parseCheckIf()
	case p.check(lexer.TOKEN_COUNT):
		return p.parseCountLoop()
	case p.check(lexer.TOKEN_FOR):
		return p.parseForEachLoop()
	case p.check(lexer.TOKEN_WHILE):
		return p.parseWhileLoop()
	case p.check(lexer.TOKEN_UNTIL):
		return p.parseUntilLoop()
	case p.check(lexer.TOKEN_REPEAT):
		return p.parseForeverLoop()
	case p.check(lexer.TOKEN_MAIN):
		return p.parseMainLoop()
	case p.check(lexer.TOKEN_BREAK):
		return p.parseBreak()
	case p.check(lexer.TOKEN_CONTINUE), p.check(lexer.TOKEN_SKIP):
		return p.parseContinue()
	case p.check(lexer.TOKEN_RETURN):
		return p.parseReturn()
	case p.check(lexer.TOKEN_GIVES):
		return p.parseGiveBack()
	case p.check(lexer.TOKEN_DEFINE):
		return p.parseActionDefine()
	case p.check(lexer.TOKEN_TRY):
		return p.parseTryBlock()
	case p.check(lexer.TOKEN_RETRY):
		return p.parseRetry()
	case p.check(lexer.TOKEN_OPEN):
		return p.parseOpenResource()
	case p.check(lexer.TOKEN_CLOSE):
		return p.parseCloseResource()
	case p.check(lexer.TOKEN_READ):
		return p.parseReadResource()
	case p.check(lexer.TOKEN_WRITE):
		return p.parseWriteResource()
	case p.check(lexer.TOKEN_LISTEN):
		return p.parseListenOnPort()
	case p.check(lexer.TOKEN_WAIT):
		return p.parseWaitStatement()
	case p.check(lexer.TOKEN_RESPOND):
		return p.parseRespondToRequest()
	case p.check(lexer.TOKEN_EXECUTE):
		return p.parseExecuteCommand()
	case p.check(lexer.TOKEN_SPAWN):
		return p.parseSpawnCommand()
	case p.check(lexer.TOKEN_KILL):
		return p.parseKillProcess()
	case p.check(lexer.TOKEN_TRIGGER):
		return p.parseTriggerEvent()
	case p.check(lexer.TOKEN_ON):
		return p.parseEventHandler()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() ast.StmtNode {
	loc := ast.LocFromToken(p.peek())
	expr := p.parseExpression()
	if expr == nil {
		p.error(p.peek(), "expected statement")
		p.advance()
		return nil
	}
	if call, ok := expr.(*ast.ActionCall); ok {
		return &ast.ActionCallStmt{Call: call, Loc: loc}
	}
	p.error(p.peek(), "expected statement, found bare expression")
	return nil
}

// --- Variables ---

func (p *Parser) parseVariableDeclare() ast.StmtNode {
	storeTok := p.advance() // consume 'store'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_AS) {
		p.error(p.peek(), "expected 'as' after variable name")
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		p.error(p.peek(), "expected expression after 'as'")
		return nil
	}
	return &ast.VariableDeclare{Name: name, Initializer: value, Loc: ast.LocFromToken(storeTok)}
}

func (p *Parser) parseVariableAssign() ast.StmtNode {
	changeTok := p.advance() // consume 'change'
	var name string
	if p.match(lexer.TOKEN_COUNT) {
		name = "count" // the implicit count-loop variable
	} else {
		name = p.consumeBindingName()
	}
	if name == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_TO) {
		p.error(p.peek(), "expected 'to' after variable name")
		return nil
	}
	value := p.parseExpression()
	if value == nil {
		p.error(p.peek(), "expected expression after 'to'")
		return nil
	}
	return &ast.VariableAssign{Name: name, Value: value, Loc: ast.LocFromToken(changeTok)}
}

// consumeBindingName consumes an identifier usable as a binding name,
// rejecting reserved words per the reserved-words-exclusion invariant.
func (p *Parser) consumeBindingName() string {
	tok := p.peek()
	if tok.Type != lexer.TOKEN_IDENTIFIER {
		if lexer.IsKeyword(tok.Lexeme) {
			p.errorKind(ErrReservedWordAsIdentifier, tok, "reserved word used as identifier: "+tok.Lexeme)
		} else {
			p.error(tok, "expected identifier")
		}
		return ""
	}
	p.advance()
	return tok.Lexeme
}

// --- create dispatch: variable, container, interface, instance, pattern, file ---

func (p *Parser) parseCreateStatement() ast.StmtNode {
	createTok := p.peek()
	switch p.peekAt(1).Type {
	case lexer.TOKEN_CONTAINER:
		return p.parseContainerDefine()
	case lexer.TOKEN_INTERFACE:
		return p.parseInterfaceDefine()
	case lexer.TOKEN_NEW:
		return p.parseCreateInstance()
	case lexer.TOKEN_PATTERN:
		return p.parsePatternDefine()
	case lexer.TOKEN_FILE:
		return p.parseCreateFile()
	default:
		p.advance() // consume 'create'
		name := p.consumeBindingName()
		if name == "" {
			return nil
		}
		if !p.match(lexer.TOKEN_AS) {
			p.error(p.peek(), "expected 'as' after variable name")
			return nil
		}
		value := p.parseExpression()
		if value == nil {
			p.error(p.peek(), "expected expression after 'as'")
			return nil
		}
		return &ast.VariableDeclare{Name: name, Initializer: value, Loc: ast.LocFromToken(createTok)}
	}
}

// parseCreateFile desugars `create file at <path> with <content>` into
// open-for-writing, write, close against a synthetic handle variable.
func (p *Parser) parseCreateFile() ast.StmtNode {
	createTok := p.advance() // 'create'
	p.advance()              // 'file'
	if !p.match(lexer.TOKEN_AT) {
		p.error(p.peek(), "expected 'at' after 'create file'")
		return nil
	}
	path := p.parseMultiplicative()
	if path == nil {
		p.error(p.peek(), "expected file path expression")
		return nil
	}
	if !p.match(lexer.TOKEN_WITH) {
		p.error(p.peek(), "expected 'with' after file path")
		return nil
	}
	content := p.parseExpression()
	if content == nil {
		p.error(p.peek(), "expected content expression after 'with'")
		return nil
	}
	loc := ast.LocFromToken(createTok)
	handle := "__create_file_handle"
	return &ast.SeqStmt{
		Loc: loc,
		Statements: []ast.StmtNode{
			&ast.OpenResource{Kind: ast.ResourceFile, Target: path, Mode: ast.ModeWrite, Variable: handle, Loc: loc},
			&ast.WriteResource{Handle: &ast.IdentifierExpr{Name: handle, Loc: loc}, Value: content, Loc: loc},
			&ast.CloseResource{Handle: &ast.IdentifierExpr{Name: handle, Loc: loc}, Loc: loc},
		},
	}
}

// --- Display ---

func (p *Parser) parseDisplay() ast.StmtNode {
	tok := p.advance() // consume 'display'
	values := []ast.ExprNode{}
	first := p.parseExpression()
	if first == nil {
		p.error(p.peek(), "expected expression after 'display'")
		return nil
	}
	values = append(values, first)
	for p.match(lexer.TOKEN_COMMA) {
		next := p.parseExpression()
		if next == nil {
			break
		}
		values = append(values, next)
	}
	return &ast.Display{Values: values, Loc: ast.LocFromToken(tok)}
}

// --- If ---

func (p *Parser) parseCheckIf() ast.StmtNode {
	checkTok := p.advance() // 'check'
	if !p.match(lexer.TOKEN_IF) {
		p.error(p.peek(), "expected 'if' after 'check'")
		return nil
	}
	condition := p.parseExpression()
	if condition == nil {
		p.error(p.peek(), "expected condition after 'if'")
		return nil
	}

	if p.match(lexer.TOKEN_THEN) {
		// Inline single-statement form: no block, no 'end'.
		thenStmt := p.parseStatement()
		var thenBranch []ast.StmtNode
		if thenStmt != nil {
			thenBranch = []ast.StmtNode{thenStmt}
		}
		var elseBranch []ast.StmtNode
		if p.match(lexer.TOKEN_OTHERWISE) {
			elseStmt := p.parseStatement()
			if elseStmt != nil {
				elseBranch = []ast.StmtNode{elseStmt}
			}
		}
		return &ast.If{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch, Loc: ast.LocFromToken(checkTok)}
	}

	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' or 'then' after if condition")
		return nil
	}
	thenBranch := p.parseBlockUntil(lexer.TOKEN_OTHERWISE, lexer.TOKEN_END)

	var elseBranch []ast.StmtNode
	if p.match(lexer.TOKEN_OTHERWISE) {
		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), "expected ':' after 'otherwise'")
			return nil
		}
		elseBranch = p.parseBlockUntil(lexer.TOKEN_END)
	}

	if !p.expectEnd("check") {
		return nil
	}
	return &ast.If{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch, Loc: ast.LocFromToken(checkTok)}
}

// labelTokens maps each construct's closing-label word to the exact
// token sequence it lexes as, so expectEnd can tell a genuine trailing
// label (`end check`) apart from the next statement starting right
// after a bare `end`.
var labelTokens = map[string][]lexer.TokenType{
	"container": {lexer.TOKEN_CONTAINER},
	"action":    {lexer.TOKEN_ACTION},
	"interface": {lexer.TOKEN_INTERFACE},
	"new":       {lexer.TOKEN_NEW},
	"check":     {lexer.TOKEN_CHECK},
	"count":     {lexer.TOKEN_COUNT},
	"for":       {lexer.TOKEN_FOR},
	"while":     {lexer.TOKEN_WHILE},
	"until":     {lexer.TOKEN_UNTIL},
	"repeat":    {lexer.TOKEN_REPEAT},
	"main loop": {lexer.TOKEN_MAIN, lexer.TOKEN_LOOP},
	"try":       {lexer.TOKEN_TRY},
	"pattern":   {lexer.TOKEN_PATTERN},
	"on":        {lexer.TOKEN_ON},
}

// expectEnd consumes 'end' and an optional matching label (e.g. `end
// check`, `end count`), tolerating a bare `end` with no label at all.
func (p *Parser) expectEnd(label string) bool {
	if !p.match(lexer.TOKEN_END) {
		p.errorKind(ErrMissingEnd, p.peek(), "expected 'end "+label+"'")
		return false
	}
	seq, ok := labelTokens[label]
	if !ok {
		return true
	}
	start := p.current
	for _, tok := range seq {
		if !p.check(tok) {
			p.current = start
			return true
		}
		p.advance()
	}
	return true
}

// --- Loops ---

func (p *Parser) parseCountLoop() ast.StmtNode {
	countTok := p.advance() // 'count'
	if !p.match(lexer.TOKEN_FROM) {
		p.error(p.peek(), "expected 'from' after 'count'")
		return nil
	}
	start := p.parseExpression()
	if start == nil {
		p.error(p.peek(), "expected start expression")
		return nil
	}
	if !p.match(lexer.TOKEN_TO) {
		p.error(p.peek(), "expected 'to' in count loop")
		return nil
	}
	end := p.parseExpression()
	if end == nil {
		p.error(p.peek(), "expected end expression")
		return nil
	}
	var step ast.ExprNode
	if p.match(lexer.TOKEN_STEP) {
		step = p.parseExpression()
	}
	direction := ast.CountUp
	if p.match(lexer.TOKEN_DOWN) {
		direction = ast.CountDown
	} else {
		p.match(lexer.TOKEN_UP)
	}
	variable := "count"
	if p.match(lexer.TOKEN_AS) {
		if name := p.consumeBindingName(); name != "" {
			variable = name
		}
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start count loop body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("count") {
		return nil
	}
	return &ast.CountLoop{
		Variable: variable, Start: start, End: end, Step: step,
		Direction: direction, Body: body, Loc: ast.LocFromToken(countTok),
	}
}

func (p *Parser) parseForEachLoop() ast.StmtNode {
	forTok := p.advance() // 'for'
	if !p.match(lexer.TOKEN_EACH) {
		p.error(p.peek(), "expected 'each' after 'for'")
		return nil
	}
	variable := p.consumeBindingName()
	if variable == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_IN) {
		p.error(p.peek(), "expected 'in' after loop variable")
		return nil
	}
	collection := p.parseExpression()
	if collection == nil {
		p.error(p.peek(), "expected collection expression")
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start for-each body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("for") {
		return nil
	}
	return &ast.ForEachLoop{Variable: variable, Collection: collection, Body: body, Loc: ast.LocFromToken(forTok)}
}

func (p *Parser) parseWhileLoop() ast.StmtNode {
	whileTok := p.advance()
	cond := p.parseExpression()
	if cond == nil {
		p.error(p.peek(), "expected condition after 'while'")
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start while body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("while") {
		return nil
	}
	return &ast.WhileLoop{Condition: cond, Body: body, Loc: ast.LocFromToken(whileTok)}
}

func (p *Parser) parseUntilLoop() ast.StmtNode {
	untilTok := p.advance()
	cond := p.parseExpression()
	if cond == nil {
		p.error(p.peek(), "expected condition after 'until'")
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start until body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("until") {
		return nil
	}
	return &ast.UntilLoop{Condition: cond, Body: body, Loc: ast.LocFromToken(untilTok)}
}

func (p *Parser) parseForeverLoop() ast.StmtNode {
	repeatTok := p.advance() // 'repeat'
	if !p.match(lexer.TOKEN_FOREVER) {
		p.error(p.peek(), "expected 'forever' after 'repeat'")
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start repeat-forever body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("repeat") {
		return nil
	}
	return &ast.ForeverLoop{Body: body, Loc: ast.LocFromToken(repeatTok)}
}

func (p *Parser) parseMainLoop() ast.StmtNode {
	mainTok := p.advance() // 'main'
	if !p.match(lexer.TOKEN_LOOP) {
		p.error(p.peek(), "expected 'loop' after 'main'")
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start main loop body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("main loop") {
		return nil
	}
	return &ast.MainLoop{Body: body, Loc: ast.LocFromToken(mainTok)}
}

func (p *Parser) parseBreak() ast.StmtNode {
	tok := p.advance()
	return &ast.Break{Loc: ast.LocFromToken(tok)}
}

func (p *Parser) parseContinue() ast.StmtNode {
	tok := p.advance()
	return &ast.Continue{Loc: ast.LocFromToken(tok)}
}

func (p *Parser) parseReturn() ast.StmtNode {
	tok := p.advance()
	var value ast.ExprNode
	if !p.isAtEnd() && !p.check(lexer.TOKEN_END) {
		value = p.parseExpression()
	}
	return &ast.Return{Value: value, Loc: ast.LocFromToken(tok)}
}

func (p *Parser) parseGiveBack() ast.StmtNode {
	tok := p.advance() // 'gives'
	if !p.match(lexer.TOKEN_BACK) {
		p.error(p.peek(), "expected 'back' after 'gives'")
		return nil
	}
	var value ast.ExprNode
	if !p.isAtEnd() && !p.check(lexer.TOKEN_END) {
		value = p.parseExpression()
	}
	return &ast.Return{Value: value, Loc: ast.LocFromToken(tok)}
}

// --- Actions ---

func (p *Parser) parseActionDefine() ast.StmtNode {
	defineTok := p.advance() // 'define'
	if !p.match(lexer.TOKEN_ACTION) {
		p.error(p.peek(), "expected 'action' after 'define'")
		return nil
	}
	if !p.match(lexer.TOKEN_CALLED) {
		p.error(p.peek(), "expected 'called' after 'action'")
		return nil
	}
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}

	var params []string
	if p.match(lexer.TOKEN_NEEDS) {
		params = append(params, p.consumeBindingName())
		for p.match(lexer.TOKEN_AND) {
			params = append(params, p.consumeBindingName())
		}
	}

	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start action body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("action") {
		return nil
	}
	return &ast.ActionDefine{Name: name, Parameters: params, Body: body, Loc: ast.LocFromToken(defineTok)}
}

// --- Error handling ---

func (p *Parser) parseTryBlock() ast.StmtNode {
	tryTok := p.advance() // 'try'
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start try body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_WHEN, lexer.TOKEN_CATCH, lexer.TOKEN_FINALLY, lexer.TOKEN_END)

	var whenClauses []*ast.CatchClause
	for p.check(lexer.TOKEN_WHEN) {
		whenTok := p.advance()
		kind := p.parseErrorConditionPhrase()
		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), "expected ':' after 'when' condition")
			break
		}
		handlerBody := p.parseBlockUntil(lexer.TOKEN_WHEN, lexer.TOKEN_CATCH, lexer.TOKEN_FINALLY, lexer.TOKEN_END)
		whenClauses = append(whenClauses, &ast.CatchClause{ErrorKind: kind, Body: handlerBody, Loc: ast.LocFromToken(whenTok)})
	}

	var catchBody []ast.StmtNode
	if p.match(lexer.TOKEN_CATCH) {
		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), "expected ':' after 'catch'")
		}
		catchBody = p.parseBlockUntil(lexer.TOKEN_FINALLY, lexer.TOKEN_END)
	}

	var finallyBody []ast.StmtNode
	if p.match(lexer.TOKEN_FINALLY) {
		if !p.match(lexer.TOKEN_COLON) {
			p.error(p.peek(), "expected ':' after 'finally'")
		}
		finallyBody = p.parseBlockUntil(lexer.TOKEN_END)
	}

	if !p.expectEnd("try") {
		return nil
	}
	return &ast.TryBlock{Body: body, When: whenClauses, Catch: catchBody, Finally: finallyBody, Loc: ast.LocFromToken(tryTok)}
}

// parseErrorConditionPhrase greedily consumes words up to the next
// colon, joining their lexemes into a named error condition such as
// "file not found" or "permission denied".
func (p *Parser) parseErrorConditionPhrase() string {
	var words []string
	for !p.isAtEnd() && !p.check(lexer.TOKEN_COLON) {
		words = append(words, p.advance().Lexeme)
	}
	return strings.Join(words, " ")
}

func (p *Parser) parseRetry() ast.StmtNode {
	tok := p.advance()
	return &ast.Retry{Loc: ast.LocFromToken(tok)}
}

// --- Token stream navigation ---

func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.current + n
	if idx < 0 || idx >= len(p.tokens) {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return t == lexer.TOKEN_EOF
	}
	return p.peek().Type == t
}

func (p *Parser) checkAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(p.peek(), message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// --- Error handling / recovery ---

func (p *Parser) error(token lexer.Token, message string) {
	p.errors = append(p.errors, NewParseError(message, token))
}

func (p *Parser) errorKind(kind ErrorKind, token lexer.Token, message string) {
	p.errors = append(p.errors, NewParseErrorKind(kind, message, token))
}

// synchronize implements panic-mode error recovery: it scans forward to
// the next statement-starter keyword or 'end', emitting at most one
// diagnostic per resynchronization hop.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if statementStarters[p.peek().Type] {
			return
		}
		p.advance()
	}
}
