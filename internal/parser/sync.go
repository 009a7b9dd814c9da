package parser

import "minirust/internal/token"

// synchronize advances past the failing statement until it has just
// consumed a Semi or is positioned at one of fn/let/if/while/return,
// per spec §4.2's recovery rule.
func (p *Parser) synchronize() {
	for !p.at(token.EOF) {
		if p.at(token.KwFn, token.KwLet, token.KwIf, token.KwWhile, token.KwReturn) {
			return
		}
		if p.advance().Kind == token.Semi {
			return
		}
	}
}
