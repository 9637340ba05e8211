package parser

import (
	"github.com/wfl-lang/wfl/compiler/ast"
	"github.com/wfl-lang/wfl/compiler/lexer"
)

// parseContainerDefine parses `create container Name [extends Parent]
// [implements I1 and I2]: members... end container`.
func (p *Parser) parseContainerDefine() ast.StmtNode {
	createTok := p.advance() // 'create'
	p.advance()              // 'container'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}

	def := &ast.ContainerDefine{Name: name, Loc: ast.LocFromToken(createTok)}

	if p.match(lexer.TOKEN_EXTENDS) {
		def.Extends = p.consumeBindingName()
	}
	if p.match(lexer.TOKEN_IMPLEMENTS) {
		if iface := p.consumeBindingName(); iface != "" {
			def.Implements = append(def.Implements, iface)
		}
		for p.match(lexer.TOKEN_AND) {
			if iface := p.consumeBindingName(); iface != "" {
				def.Implements = append(def.Implements, iface)
			}
		}
	}

	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start container body")
		return nil
	}

	for !p.isAtEnd() && !p.check(lexer.TOKEN_END) {
		visibility := ast.Public
		if p.match(lexer.TOKEN_PRIVATE) {
			visibility = ast.Private
		} else {
			p.match(lexer.TOKEN_PUBLIC)
		}
		isStatic := p.match(lexer.TOKEN_STATIC)

		switch {
		case p.check(lexer.TOKEN_PROPERTY):
			prop := p.parsePropertyDecl(visibility, isStatic)
			if prop != nil {
				def.Properties = append(def.Properties, prop)
			}
		case p.check(lexer.TOKEN_ACTION):
			method := p.parseMethodDecl(visibility, isStatic)
			if method != nil {
				def.Methods = append(def.Methods, method)
			}
		case p.check(lexer.TOKEN_EVENT):
			evt := p.parseEventDecl()
			if evt != nil {
				def.Events = append(def.Events, evt)
			}
		default:
			p.error(p.peek(), "expected 'property', 'action', or 'event' in container body")
			p.advance()
		}
	}

	if !p.expectEnd("container") {
		return nil
	}
	return def
}

func (p *Parser) parsePropertyDecl(visibility ast.Visibility, isStatic bool) *ast.PropertyDecl {
	propTok := p.advance() // 'property'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	decl := &ast.PropertyDecl{Name: name, Visibility: visibility, IsStatic: isStatic, Loc: ast.LocFromToken(propTok)}
	if p.match(lexer.TOKEN_AS) {
		decl.Default = p.parseExpression()
	}
	return decl
}

func (p *Parser) parseMethodDecl(visibility ast.Visibility, isStatic bool) *ast.MethodDecl {
	actionTok := p.advance() // 'action'
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
		p.error(p.peek(), "expected ':' to start method body")
		return nil
	}
	body := p.parseBlockUntil(lexer.TOKEN_END)
	if !p.expectEnd("action") {
		return nil
	}
	return &ast.MethodDecl{Name: name, Parameters: params, Body: body, Visibility: visibility, IsStatic: isStatic, Loc: ast.LocFromToken(actionTok)}
}

func (p *Parser) parseEventDecl() *ast.EventDecl {
	eventTok := p.advance() // 'event'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	return &ast.EventDecl{Name: name, Loc: ast.LocFromToken(eventTok)}
}

// parseInterfaceDefine parses `create interface Name: requires action X
// with Y and Z ... end interface`.
func (p *Parser) parseInterfaceDefine() ast.StmtNode {
	createTok := p.advance() // 'create'
	p.advance()              // 'interface'
	name := p.consumeBindingName()
	if name == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_COLON) {
		p.error(p.peek(), "expected ':' to start interface body")
		return nil
	}

	def := &ast.InterfaceDefine{Name: name, Loc: ast.LocFromToken(createTok)}
	for !p.isAtEnd() && !p.check(lexer.TOKEN_END) {
		if !p.match(lexer.TOKEN_REQUIRES) {
			p.error(p.peek(), "expected 'requires' in interface body")
			p.advance()
			continue
		}
		if !p.match(lexer.TOKEN_ACTION) {
			p.error(p.peek(), "expected 'action' after 'requires'")
			continue
		}
		methodTok := p.peek()
		methodName := p.consumeBindingName()
		if methodName == "" {
			continue
		}
		arity := 0
		if p.match(lexer.TOKEN_WITH) {
			p.consumeBindingName()
			arity = 1
			for p.match(lexer.TOKEN_AND) {
				p.consumeBindingName()
				arity++
			}
		}
		def.Methods = append(def.Methods, &ast.InterfaceMethod{Name: methodName, Arity: arity, Loc: ast.LocFromToken(methodTok)})
	}

	if !p.expectEnd("interface") {
		return nil
	}
	return def
}

// parseCreateInstance parses `create new Name as id: f1 is v1, f2 is v2
// end`.
func (p *Parser) parseCreateInstance() ast.StmtNode {
	createTok := p.advance() // 'create'
	p.advance()              // 'new'
	className := p.consumeBindingName()
	if className == "" {
		return nil
	}
	if !p.match(lexer.TOKEN_AS) {
		p.error(p.peek(), "expected 'as' after container name")
		return nil
	}
	variable := p.consumeBindingName()
	if variable == "" {
		return nil
	}

	inst := &ast.CreateInstance{ClassName: className, Variable: variable, Loc: ast.LocFromToken(createTok)}
	if p.match(lexer.TOKEN_COLON) {
		for !p.isAtEnd() && !p.check(lexer.TOKEN_END) {
			fieldTok := p.peek()
			field := p.consumeBindingName()
			if field == "" {
				p.advance()
				continue
			}
			if !p.match(lexer.TOKEN_IS) {
				p.error(p.peek(), "expected 'is' after field name")
				continue
			}
			value := p.parseExpression()
			inst.Fields = append(inst.Fields, &ast.FieldInit{Field: field, Value: value, Loc: ast.LocFromToken(fieldTok)})
			p.match(lexer.TOKEN_COMMA)
		}
		if !p.expectEnd("new") {
			return nil
		}
	}
	return inst
}
