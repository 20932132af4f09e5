package token_test

import (
	"testing"

	"ghostc/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		text string
		want token.Kind
		ok   bool
	}{
		{"fn", token.KwFn, true},
		{"extern", token.KwExtern, true},
		{"import", token.KwImport, true},
		{"Fn", token.Invalid, false},
		{"i32", token.Invalid, false},
	}
	for _, tt := range tests {
		got, ok := token.LookupKeyword(tt.text)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("LookupKeyword(%q) = %v,%v want %v,%v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStartsStatement(t *testing.T) {
	yes := []token.Kind{token.Ident, token.KwFn, token.KwImport, token.DocComment, token.KwStruct}
	for _, k := range yes {
		if !(token.Token{Kind: k}).StartsStatement() {
			t.Errorf("%v should start a statement", k)
		}
	}
	no := []token.Kind{token.IntLit, token.Plus, token.RParen, token.EOF}
	for _, k := range no {
		if (token.Token{Kind: k}).StartsStatement() {
			t.Errorf("%v must not start a statement", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := token.ColonAssign.String(); got != ":=" {
		t.Errorf("ColonAssign = %q", got)
	}
	if got := token.Kind(250).String(); got != "unknown" {
		t.Errorf("out of range = %q", got)
	}
}
