package token_test

import (
	"testing"

	"minirust/internal/token"
)

func TestLookupIdentClassifiesKeywordsTypesAndIdents(t *testing.T) {
	cases := []struct {
		text string
		want token.Kind
	}{
		{"fn", token.KwFn},
		{"let", token.KwLet},
		{"mut", token.KwMut},
		{"i32", token.TypeI32},
		{"str", token.TypeStr},
		{"foo", token.Ident},
		{"i32x", token.Ident},
	}
	for _, c := range cases {
		if got := token.LookupIdent(c.text); got != c.want {
			t.Errorf("LookupIdent(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestIsLiteralIsKeywordIsType(t *testing.T) {
	lit := token.Token{Kind: token.Integer}
	if !lit.IsLiteral() {
		t.Error("Integer should be a literal")
	}
	kw := token.Token{Kind: token.KwFn}
	if !kw.IsKeyword() {
		t.Error("KwFn should be a keyword")
	}
	ty := token.Token{Kind: token.TypeBool}
	if !ty.IsType() {
		t.Error("TypeBool should be a type")
	}
	if (token.Token{Kind: token.Ident}).IsType() {
		t.Error("Ident should not be a type")
	}
}
