package parser

import (
	"minirust/internal/ast"
	"minirust/internal/lexer"
	"minirust/internal/token"
)

// parseExpr is the grammar's `expr` production: expr = assignment.
func (p *Parser) parseExpr() (*ast.Node, bool) {
	return p.parseAssignment()
}

// assignment = logicOr [ "=" assignment ] ; right-associative.
func (p *Parser) parseAssignment() (*ast.Node, bool) {
	left, ok := p.parseLogicOr()
	if !ok {
		return nil, false
	}
	if p.at(token.Assign) {
		eq := p.advance()
		right, ok := p.parseAssignment()
		if !ok {
			return nil, false
		}
		return ast.New(ast.Assignment, eq.Line, eq.Column, left, right), true
	}
	return left, true
}

// logicOr = logicAnd { "||" logicAnd } ;
func (p *Parser) parseLogicOr() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseLogicAnd, token.Or)
}

// logicAnd = equality { "&&" equality } ;
func (p *Parser) parseLogicAnd() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseEquality, token.And)
}

// equality = comparison { ("==" | "!=") comparison } ;
func (p *Parser) parseEquality() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseComparison, token.Eq, token.Ne)
}

// comparison = term { ("<"|"<="|">"|">=") term } ;
func (p *Parser) parseComparison() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseTerm, token.Lt, token.Le, token.Gt, token.Ge)
}

// term = factor { ("+" | "-") factor } ;
func (p *Parser) parseTerm() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseFactor, token.Plus, token.Minus)
}

// factor = unary { ("*" | "/" | "%") unary } ;
func (p *Parser) parseFactor() (*ast.Node, bool) {
	return p.parseLeftAssocBinary(p.parseUnary, token.Star, token.Slash, token.Percent)
}

// parseLeftAssocBinary implements one precedence level: left-associative
// chaining of a sub-production separated by any of the given operator
// kinds, producing BinaryOperation(value=operator lexeme).
func (p *Parser) parseLeftAssocBinary(sub func() (*ast.Node, bool), ops ...token.Kind) (*ast.Node, bool) {
	left, ok := sub()
	if !ok {
		return nil, false
	}
	for p.at(ops...) {
		opTok := p.advance()
		right, ok := sub()
		if !ok {
			return nil, false
		}
		left = ast.New(ast.BinaryOperation, opTok.Line, opTok.Column, left, right)
		left.Value = opTok.Lexeme
	}
	return left, true
}

// unary = ("!" | "-" | "&" | "&mut") unary | primary ;
func (p *Parser) parseUnary() (*ast.Node, bool) {
	if p.at(token.Not, token.Minus, token.Amp, token.AmpMut) {
		opTok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		n := ast.New(ast.UnaryOperation, opTok.Line, opTok.Column, operand)
		n.Value = opTok.Lexeme
		return n, true
	}
	return p.parsePrimary()
}

// primary = INTEGER | FLOAT | STRING | "true" | "false"
//
//	| IDENT | "(" expr ")" ;
func (p *Parser) parsePrimary() (*ast.Node, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Integer:
		p.advance()
		return ast.NewLiteral(ast.IntegerLiteral, tok.Lexeme, tok.Line, tok.Column), true
	case token.Float:
		p.advance()
		return ast.NewLiteral(ast.FloatLiteral, tok.Lexeme, tok.Line, tok.Column), true
	case token.String:
		p.advance()
		return ast.NewLiteral(ast.StringLiteral, lexer.DecodeStringLiteral(tok.Lexeme), tok.Line, tok.Column), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return ast.NewLiteral(ast.BooleanLiteral, tok.Lexeme, tok.Line, tok.Column), true
	case token.Ident:
		p.advance()
		return ast.NewLiteral(ast.Identifier, tok.Lexeme, tok.Line, tok.Column), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.errorf(tok, "Unexpected token %s('%s')", tok.Kind, tok.Lexeme)
		return nil, false
	}
}
