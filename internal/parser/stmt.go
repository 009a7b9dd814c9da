package parser

import (
	"minirust/internal/ast"
	"minirust/internal/token"
)

// parseStatement dispatches on the leading token per spec §4.2's grammar.
func (p *Parser) parseStatement() (*ast.Node, bool) {
	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFunctionDecl()
	case token.KwLet:
		return p.parseVarDecl()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwPrint:
		return p.parsePrintStmt()
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

// functionDecl = "fn" IDENT "(" [ param { "," param } ] ")" [ "->" TYPE ] block ;
func (p *Parser) parseFunctionDecl() (*ast.Node, bool) {
	kw := p.advance() // 'fn'

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	name := ast.NewLiteral(ast.FunctionName, nameTok.Lexeme, nameTok.Line, nameTok.Column)

	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	params := p.parseParameters()
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}

	children := []*ast.Node{name, params}

	if p.at(token.Arrow) {
		p.advance()
		typTok, ok := p.expectType()
		if !ok {
			return nil, false
		}
		children = append(children, ast.NewLiteral(ast.ReturnType, typTok.Lexeme, typTok.Line, typTok.Column))
	}

	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	children = append(children, body)

	return ast.New(ast.FunctionDeclaration, kw.Line, kw.Column, children...), true
}

// param = IDENT ":" TYPE ;
func (p *Parser) parseParameters() *ast.Node {
	lp := p.peek()
	params := ast.New(ast.Parameters, lp.Line, lp.Column)
	if p.at(token.RParen) {
		return params
	}
	for {
		nameTok, ok := p.expect(token.Ident)
		if !ok {
			return params
		}
		if _, ok := p.expect(token.Colon); !ok {
			return params
		}
		typTok, ok := p.expectType()
		if !ok {
			return params
		}
		paramName := ast.NewLiteral(ast.ParameterName, nameTok.Lexeme, nameTok.Line, nameTok.Column)
		paramType := ast.NewLiteral(ast.ParameterType, typTok.Lexeme, typTok.Line, typTok.Column)
		params.Children = append(params.Children, ast.New(ast.Parameter, nameTok.Line, nameTok.Column, paramName, paramType))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return params
}

// varDecl = "let" [ "mut" ] IDENT [ ":" TYPE ] [ "=" expr ] ";" ;
func (p *Parser) parseVarDecl() (*ast.Node, bool) {
	kw := p.advance() // 'let'

	isMut := false
	if p.at(token.KwMut) {
		p.advance()
		isMut = true
	}

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}

	children := []*ast.Node{
		ast.NewLiteral(ast.VariableName, nameTok.Lexeme, nameTok.Line, nameTok.Column),
		mutableNode(isMut, kw.Line, kw.Column),
	}

	if p.at(token.Colon) {
		p.advance()
		typTok, ok := p.expectType()
		if !ok {
			return nil, false
		}
		children = append(children, ast.NewLiteral(ast.VariableType, typTok.Lexeme, typTok.Line, typTok.Column))
	}

	if p.at(token.Assign) {
		p.advance()
		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		children = append(children, init)
	}

	if _, ok := p.expect(token.Semi); !ok {
		return nil, false
	}

	return ast.New(ast.VariableDeclaration, kw.Line, kw.Column, children...), true
}

func mutableNode(isMut bool, line, col int) *ast.Node {
	v := "false"
	if isMut {
		v = "true"
	}
	return ast.NewLiteral(ast.Mutable, v, line, col)
}

// ifStmt = "if" expr block [ "else" block ] ;
func (p *Parser) parseIfStmt() (*ast.Node, bool) {
	kw := p.advance() // 'if'
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	thenBlock, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	children := []*ast.Node{cond, thenBlock}
	if p.at(token.KwElse) {
		p.advance()
		elseBlock, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		children = append(children, elseBlock)
	}
	return ast.New(ast.IfStatement, kw.Line, kw.Column, children...), true
}

// whileStmt = "while" expr block ;
func (p *Parser) parseWhileStmt() (*ast.Node, bool) {
	kw := p.advance() // 'while'
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return ast.New(ast.WhileStatement, kw.Line, kw.Column, cond, body), true
}

// returnStmt = "return" [ expr ] ";" ;
func (p *Parser) parseReturnStmt() (*ast.Node, bool) {
	kw := p.advance() // 'return'
	var children []*ast.Node
	if !p.at(token.Semi) {
		expr, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		children = append(children, expr)
	}
	if _, ok := p.expect(token.Semi); !ok {
		return nil, false
	}
	return ast.New(ast.ReturnStatement, kw.Line, kw.Column, children...), true
}

// printStmt = "print" "(" expr ")" ";" ;
func (p *Parser) parsePrintStmt() (*ast.Node, bool) {
	kw := p.advance() // 'print'
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	arg, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semi); !ok {
		return nil, false
	}
	return ast.New(ast.PrintStatement, kw.Line, kw.Column, arg), true
}

// exprStmt = expr ";" ;
func (p *Parser) parseExprStmt() (*ast.Node, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semi); !ok {
		return nil, false
	}
	return expr, true
}

// block = "{" { statement } "}" ;
func (p *Parser) parseBlock() (*ast.Node, bool) {
	lbrace, ok := p.expect(token.LBrace)
	if !ok {
		return nil, false
	}
	block := ast.New(ast.Block, lbrace.Line, lbrace.Column)
	for !p.at(token.RBrace, token.EOF) {
		stmt, ok := p.parseStatement()
		if !ok {
			p.synchronize()
			continue
		}
		block.Children = append(block.Children, stmt)
	}
	if _, ok := p.expect(token.RBrace); !ok {
		return block, false
	}
	return block, true
}

// expectType consumes one of the four built-in type keywords, reporting a
// ParseError through the canonical "Expected" shape otherwise.
func (p *Parser) expectType() (token.Token, bool) {
	tok := p.peek()
	if tok.IsType() {
		return p.advance(), true
	}
	p.errorf(tok, "Expected type, but got %s('%s')", tok.Kind, tok.Lexeme)
	return tok, false
}
