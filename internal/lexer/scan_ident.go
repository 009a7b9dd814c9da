package lexer

import (
	"minirust/internal/token"
)

// scanIdent scans `[A-Za-z_][A-Za-z0-9_]*` and classifies it as a
// keyword, a type name, or a plain identifier, in that order (spec §4.1).
func (lx *Lexer) scanIdent(line, col int) token.Token {
	mark := lx.cur.mark()
	for isIdentContinue(lx.cur.peek()) {
		lx.advance()
	}
	text := lx.cur.sliceFrom(mark)
	return lx.at(token.LookupIdent(text), text, line, col)
}
