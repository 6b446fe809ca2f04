package token

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		lex  string
		line int
		want Token
	}{
		{"equal", EQUAL, "=", 1, Token{Kind: EQUAL, Lexeme: "=", Line: 1}},
		{"identifier", IDENTIFIER, "myVar", 3, Token{Kind: IDENTIFIER, Lexeme: "myVar", Line: 3}},
		{"number", NUMBER, "42", 2, Token{Kind: NUMBER, Lexeme: "42", Line: 2}},
		{"star", STAR, "*", 1, Token{Kind: STAR, Lexeme: "*", Line: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.kind, tt.lex, tt.line)
			if got != tt.want {
				t.Errorf("New() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeywordTrie(t *testing.T) {
	for lexeme, want := range map[string]Kind{
		"and": AND, "class": CLASS, "else": ELSE, "false": FALSE, "for": FOR,
		"fun": FUN, "if": IF, "nil": NIL, "or": OR, "print": PRINT, "return": RETURN,
		"super": SUPER, "this": THIS, "true": TRUE, "var": VAR, "while": WHILE,
	} {
		if got := Keywords[lexeme]; got != want {
			t.Errorf("Keywords[%q] = %v, want %v", lexeme, got, want)
		}
	}

	if _, ok := Keywords["fo"]; ok {
		t.Errorf("Keywords[%q] unexpectedly present", "fo")
	}
	if _, ok := Keywords["foobar"]; ok {
		t.Errorf("Keywords[%q] unexpectedly present", "foobar")
	}
}

func TestKindString(t *testing.T) {
	if got := PLUS.String(); got != "PLUS" {
		t.Errorf("PLUS.String() = %q, want %q", got, "PLUS")
	}
}
