// Package parser builds an ast.Program from a token sequence using
// recursive descent with precedence climbing, per spec §4.2. It recovers
// past errors by synchronizing at statement boundaries so a single bad
// statement does not lose the rest of the program.
package parser

import (
	"fmt"

	"minirust/internal/ast"
	"minirust/internal/diag"
	"minirust/internal/token"
)

// Parser holds the token stream and diagnostic sink for one parse.
type Parser struct {
	tokens   []token.Token
	pos      int
	reporter diag.Reporter
}

// Parse builds the Program node for a token sequence (always EOF-
// terminated). It never panics to the caller: failures at statement
// granularity are recorded and the parser resynchronizes.
func Parse(tokens []token.Token, r diag.Reporter) *ast.Node {
	if r == nil {
		r = diag.NopReporter{}
	}
	p := &Parser{tokens: tokens, reporter: r}
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Node {
	first := p.peek()
	prog := ast.New(ast.Program, first.Line, first.Column)
	for !p.at(token.EOF) {
		stmt, ok := p.parseStatement()
		if ok {
			prog.Children = append(prog.Children, stmt)
		} else {
			p.synchronize()
		}
	}
	return prog
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// peekAt returns the token n positions ahead of the cursor, clamped to the
// trailing EOF.
func (p *Parser) peekAt(n int) token.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) at(kinds ...token.Kind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches kind, else reports the
// canonical "Expected X, but got Y('lex')" ParseError at the offending
// token's position and returns ok=false without consuming it.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	tok := p.peek()
	if tok.Kind == kind {
		return p.advance(), true
	}
	p.errorf(tok, "Expected %s, but got %s('%s')", kind, tok.Kind, tok.Lexeme)
	return tok, false
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.reporter.Report(diag.New(diag.ParseError, tok.Line, tok.Column, fmt.Sprintf(format, args...)))
}
