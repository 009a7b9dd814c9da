package lexer_test

import (
	"testing"

	"minirust/internal/diag"
	"minirust/internal/lexer"
	"minirust/internal/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeKeywordsAndPunctuation(t *testing.T) {
	bag := diag.NewBag()
	tokens := lexer.Tokenize("fn main() { let mut x: i32 = 1; }", diag.BagReporter{Bag: bag})

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}

	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.RParen, token.LBrace,
		token.KwLet, token.KwMut, token.Ident, token.Colon, token.TypeI32,
		token.Assign, token.Integer, token.Semi, token.RBrace, token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeTracksLineAndColumn(t *testing.T) {
	bag := diag.NewBag()
	tokens := lexer.Tokenize("let x\n= 1;", diag.BagReporter{Bag: bag})

	// tokens[2] is '=' on line 2, column 1.
	eq := tokens[2]
	if eq.Kind != token.Assign {
		t.Fatalf("expected '=' token, got %s", eq.Kind)
	}
	if eq.Line != 2 || eq.Column != 1 {
		t.Errorf("'=' position = (%d,%d), want (2,1)", eq.Line, eq.Column)
	}
}

func TestTokenizeStringLiteralEscapes(t *testing.T) {
	bag := diag.NewBag()
	tokens := lexer.Tokenize(`"a\nb"`, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if tokens[0].Kind != token.String {
		t.Fatalf("expected string literal, got %s", tokens[0].Kind)
	}
	if decoded := lexer.DecodeStringLiteral(tokens[0].Lexeme); decoded != "a\nb" {
		t.Errorf("decoded = %q, want %q", decoded, "a\nb")
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	bag := diag.NewBag()
	lexer.Tokenize(`"abc`, diag.BagReporter{Bag: bag})
	if !bag.HasErrors() {
		t.Fatal("expected a lexical error for an unterminated string")
	}
	if bag.Items()[0].Kind != diag.LexicalError {
		t.Errorf("diagnostic kind = %s, want LexicalError", bag.Items()[0].Kind)
	}
}

func TestTokenizeAmpMutBorrow(t *testing.T) {
	bag := diag.NewBag()
	tokens := lexer.Tokenize("&mut x", diag.BagReporter{Bag: bag})
	if tokens[0].Kind != token.AmpMut {
		t.Fatalf("expected AmpMut, got %s (%q)", tokens[0].Kind, tokens[0].Lexeme)
	}
}

func TestTokenizeUnknownCharacter(t *testing.T) {
	bag := diag.NewBag()
	lexer.Tokenize("let x = 1 $ 2;", diag.BagReporter{Bag: bag})
	if !bag.HasErrors() {
		t.Fatal("expected a lexical error for an unknown character")
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	bag := diag.NewBag()
	tokens := lexer.Tokenize("// comment\nlet /* inline */ x = 1;", diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if tokens[0].Kind != token.KwLet {
		t.Fatalf("expected first token to be 'let', got %s", tokens[0].Kind)
	}
}
