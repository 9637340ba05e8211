package parser

import (
	"strings"

	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// parseResourceKind consumes the optional resource-kind keyword
// (file/url/database/server/process) following 'open' or 'close',
// defaulting to ResourceFile when none is present.
func (p *Parser) parseResourceKind() ast.ResourceKind {
	switch {
	case p.match(lexer.TOKEN_FILE):
		return ast.ResourceFile
	case p.match(lexer.TOKEN_URL):
		return ast.ResourceURL
	case p.match(lexer.TOKEN_DATABASE):
		return ast.ResourceDatabase
	case p.match(lexer.TOKEN_SERVER):
		return ast.ResourceServer
	case p.match(lexer.TOKEN_PROCESS):
		return ast.ResourceProcess
	default:
		return ast.ResourceFile
	}
}

// parseOpenResource parses `open <kind> at <target> [for reading|writing|
// appending] as <var>`.
func (p *Parser) parseOpenResource() ast.StmtNode {
	openTok := p.advance() // 'open'
	kind := p.parseResourceKind()
	if !p.match(lexer.TOKEN_AT) {
		p.error(p.peek(), "expected 'at' after resource kind")
		return nil
	}
	target := p.parseExpression()
	if target == nil {
		p.error(p.peek(), "expected target expression")
		return nil
	}
	mode := ast.ModeRead
	if p.match(lexer.TOKEN_FOR) {
		switch p.peek().Lexeme {
		case "reading":
			p.advance()
			mode = ast.ModeRead
		case "writing":
			p.advance()
			mode = ast.ModeWrite
		case "appending":
			p.advance()
			mode = ast.ModeAppend
		default:
			p.error(p.peek(), "expected 'reading', 'writing', or 'appending'")
		}
	}
	if !p.match(lexer.TOKEN_AS) {
		p.error(p.peek(), "expected 'as' before handle variable")
		return nil
	}
	variable := p.consumeBindingName()
	if variable == "" {
		return nil
	}
	return &ast.OpenResource{Kind: kind, Target: target, Mode: mode, Variable: variable, Loc: ast.LocFromToken(openTok)}
}

// parseCloseResource parses `close [<kind>] <handle>`.
func (p *Parser) parseCloseResource() ast.StmtNode {
	closeTok := p.advance() // 'close'
	p.parseResourceKind()   // consumed for surface symmetry with 'open'; the handle expression carries identity
	handle := p.parseExpression()
	if handle == nil {
		p.error(p.peek(), "expected handle expression after 'close'")
		return nil
	}
	return &ast.CloseResource{Handle: handle, Loc: ast.LocFromToken(closeTok)}
}

// parseReadResource parses `read from <handle> into <var>`.
func (p *Parser) parseReadResource() ast.StmtNode {
	readTok := p.advance() // 'read'
	if !p.match(lexer.TOKEN_FROM) {
		p.error(p.peek(), "expected 'from' after 'read'")
		return nil
	}
	handle := p.parseExpression()
	if handle == nil {
		p.error(p.peek(), "expected handle expression after 'from'")
		return nil
	}
	if !p.match(lexer.TOKEN_INTO) {
		p.error(p.peek(), "expected 'into' after handle")
		return nil
	}
	variable := p.consumeBindingName()
	if variable == "" {
		return nil
	}
	return &ast.ReadResource{Handle: handle, Variable: variable, Loc: ast.LocFromToken(readTok)}
}

// parseWriteResource parses `write <value> to <handle>`.
func (p *Parser) parseWriteResource() ast.StmtNode {
	writeTok := p.advance() // 'write'
	value := p.parseExpression()
	if value == nil {
		p.error(p.peek(), "expected value expression after 'write'")
		return nil
	}
	if !p.match(lexer.TOKEN_TO) {
		p.error(p.peek(), "expected 'to' after value")
		return nil
	}
	handle := p.parseExpression()
	if handle == nil {
		p.error(p.peek(), "expected handle expression after 'to'")
		return nil
	}
	return &ast.WriteResource{Handle: handle, Value: value, Loc: ast.LocFromToken(writeTok)}
}

// parseListenOnPort parses `listen on port <n> as <var>`.
func (p *Parser) parseListenOnPort() ast.StmtNode {
	listenTok := p.advance() // 'listen'
	if !p.match(lexer.TOKEN_ON) {
		p.error(p.peek(), "expected 'on' after 'listen'")
		return nil
	}
	if !p.match(lexer.TOKEN_PORT) {
		p.error(p.peek(), "expected 'port' after 'on'")
		return nil
	}
	port := p.parseExpression()
	if port == nil {
		p.error(p.peek(), "expected port expression")
		return nil
	}
	if !p.match(lexer.TOKEN_AS) {
		p.error(p.peek(), "expected 'as' before server variable")
		return nil
	}
	variable := p.consumeBindingName()
	if variable == "" {
		return nil
	}
	return &ast.ListenOnPort{Port: port, Variable: variable, Loc: ast.LocFromToken(listenTok)}
}

// parseWaitStatement disambiguates the three `wait for ...` statement
// forms: a generic suspension expression, an incoming server request,
// and a spawned process's completion.
func (p *Parser) parseWaitStatement() ast.StmtNode {
	waitTok := p.advance() // 'wait'
	if !p.match(lexer.TOKEN_FOR) {
		p.error(p.peek(), "expected 'for' after 'wait'")
		return nil
	}

	if p.match(lexer.TOKEN_REQUEST) {
		if !p.match(lexer.TOKEN_ON) {
			p.error(p.peek(), "expected 'on' after 'request'")
			return nil
		}
		server := p.parseExpression()
		if server == nil {
			p.error(p.peek(), "expected server expression")
			return nil
		}
		variable := ""
		if p.match(lexer.TOKEN_AS) {
			variable = p.consumeBindingName()
		}
		return &ast.WaitForRequest{Server: server, Variable: variable, Loc: ast.LocFromToken(waitTok)}
	}

	if p.match(lexer.TOKEN_PROCESS) {
		process := p.parseExpression()
		if process == nil {
			p.error(p.peek(), "expected process expression")
			return nil
		}
		variable := ""
		if p.match(lexer.TOKEN_AS) {
			variable = p.consumeBindingName()
		}
		return &ast.WaitForProcess{Process: process, Variable: variable, Loc: ast.LocFromToken(waitTok)}
	}

	expr := p.parseExpression()
	if expr == nil {
		p.error(p.peek(), "expected expression after 'wait for'")
		return nil
	}
	variable := ""
	if p.match(lexer.TOKEN_AS) {
		variable = p.consumeBindingName()
	}
	return &ast.WaitFor{Expr: expr, Variable: variable, Loc: ast.LocFromToken(waitTok)}
}

// parseRespondToRequest parses `respond to <req> with <body> [and status
// <n>] [and content_type <s>]`.
func (p *Parser) parseRespondToRequest() ast.StmtNode {
	respondTok := p.advance() // 'respond'
	if !p.match(lexer.TOKEN_TO) {
		p.error(p.peek(), "expected 'to' after 'respond'")
		return nil
	}
	request := p.parseMultiplicative()
	if request == nil {
		p.error(p.peek(), "expected request expression")
		return nil
	}
	if !p.match(lexer.TOKEN_WITH) {
		p.error(p.peek(), "expected 'with' after request")
		return nil
	}
	body := p.parseComparison()
	if body == nil {
		p.error(p.peek(), "expected response body expression")
		return nil
	}
	stmt := &ast.RespondToRequest{Request: request, Body: body, Loc: ast.LocFromToken(respondTok)}
	for p.match(lexer.TOKEN_AND) {
		switch {
		case p.match(lexer.TOKEN_STATUS):
			stmt.Status = p.parseComparison()
		case p.match(lexer.TOKEN_CONTENT_TYPE):
			stmt.ContentType = p.parseComparison()
		default:
			p.error(p.peek(), "expected 'status' or 'content_type' after 'and'")
			return stmt
		}
	}
	return stmt
}

// parseExecuteCommand parses `execute command <cmd> [using shell] as <var>`.
func (p *Parser) parseExecuteCommand() ast.StmtNode {
	executeTok := p.advance() // 'execute'
	if !p.match(lexer.TOKEN_COMMAND) {
		p.error(p.peek(), "expected 'command' after 'execute'")
		return nil
	}
	command := p.parseExpression()
	if command == nil {
		p.error(p.peek(), "expected command expression")
		return nil
	}
	useShell := false
	if p.match(lexer.TOKEN_USING) {
		if !p.match(lexer.TOKEN_SHELL) {
			p.error(p.peek(), "expected 'shell' after 'using'")
			return nil
		}
		useShell = true
	}
	variable := ""
	if p.match(lexer.TOKEN_AS) {
		variable = p.consumeBindingName()
	}
	return &ast.ExecuteCommand{Command: command, UseShell: useShell, Variable: variable, Loc: ast.LocFromToken(executeTok)}
}

// parseSpawnCommand parses `spawn command <cmd> [using shell] as <var>`.
func (p *Parser) parseSpawnCommand() ast.StmtNode {
	spawnTok := p.advance() // 'spawn'
	if !p.match(lexer.TOKEN_COMMAND) {
		p.error(p.peek(), "expected 'command' after 'spawn'")
		return nil
	}
	command := p.parseExpression()
	if command == nil {
		p.error(p.peek(), "expected command expression")
		return nil
	}
	useShell := false
	if p.match(lexer.TOKEN_USING) {
		if !p.match(lexer.TOKEN_SHELL) {
			p.error(p.peek(), "expected 'shell' after 'using'")
			return nil
		}
		useShell = true
	}
	variable := ""
	if p.match(lexer.TOKEN_AS) {
		variable = p.consumeBindingName()
	}
	return &ast.SpawnCommand{Command: command, UseShell: useShell, Variable: variable, Loc: ast.LocFromToken(spawnTok)}
}

// parseKillProcess parses `kill process <proc>`.
func (p *Parser) parseKillProcess() ast.StmtNode {
	killTok := p.advance() // 'kill'
	if !p.match(lexer.TOKEN_PROCESS) {
		p.error(p.peek(), "expected 'process' after 'kill'")
		return nil
	}
	process := p.parseExpression()
	if process == nil {
		p.error(p.peek(), "expected process expression")
		return nil
	}
	return &ast.KillProcess{Process: process, Loc: ast.LocFromToken(killTok)}
}

// parseTriggerEvent parses `trigger <event_name>` or `trigger <event_name>
// on <instance>`.
func (p *Parser) parseTriggerEvent() ast.StmtNode {
	triggerTok := p.advance() // 'trigger'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	var instance ast.ExprNode
	if p.match(lexer.TOKEN_ON) {
		instance = p.parseExpression()
	}
	return &ast.TriggerEvent{Instance: instance, EventName: name, Loc: ast.LocFromToken(triggerTok)}
}

// parseEventHandler parses `on <instance> <event_name>: body end on`.
func (p *Parser) parseEventHandler() ast.StmtNode {
	onTok := p.advance() // 'on'
	instance := p.parseExpression()
	if instance == nil {
		p.error(p.peek(), "expected instance expression after 'on'")
		return nil
	}
	// Adjacent identifiers merge in the lexer, so `on s toggled:` arrives
	// as the single name "s toggled"; its last word is the event name.
	name := ""
	if id, ok := instance.(*ast.IdentifierExpr); ok && p.check(lexer.TOKEN_COLON) {
		if i := strings.LastIndex(id.Name, " "); i > 0 {
			instance = &ast.IdentifierExpr{Name: id.Name[:i], Loc: id.Loc}
			name = id.Name[i+1:]
		}
	}
	if name == "" {
		name = p.consumeBindingName()
	}
	if name == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start event handler body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("on") {
		return nil
	}
	return &ast.EventHandler{Instance: instance, EventName: name, Body: body, Loc: ast.LocFromToken(onTok)}
}
