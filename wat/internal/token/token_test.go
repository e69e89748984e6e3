package token

import "testing"

func TestTokenizeParensAndKeywords(t *testing.T) {
	toks := Tokenize(`(module (func $f))`)
	want := []Token{
		{"(", LParen, 1},
		{"module", Ident, 1},
		{"(", LParen, 1},
		{"func", Ident, 1},
		{"$f", Ident, 1},
		{")", RParen, 1},
		{")", RParen, 1},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, tok := range toks {
		if tok != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestTokenizeStringAndNumber(t *testing.T) {
	toks := Tokenize(`(import "bluescript" "f") (i32.const -42)`)
	var strs, nums []string
	for _, tok := range toks {
		switch tok.Type {
		case String:
			strs = append(strs, tok.Value)
		case Number:
			nums = append(nums, tok.Value)
		}
	}
	if len(strs) != 2 || strs[0] != "bluescript" || strs[1] != "f" {
		t.Fatalf("strings = %v, want [bluescript f]", strs)
	}
	if len(nums) != 1 || nums[0] != "-42" {
		t.Fatalf("numbers = %v, want [-42]", nums)
	}
}

func TestTokenizeSkipsLineComments(t *testing.T) {
	toks := Tokenize("(module ;; a comment\n  (func))")
	for _, tok := range toks {
		if tok.Type == Ident && tok.Value == "comment" {
			t.Fatalf("line comment text leaked into token stream: %+v", toks)
		}
	}
}

func TestTokenizeTracksLineNumbers(t *testing.T) {
	toks := Tokenize("(module\n  (func))")
	if toks[0].Line != 1 {
		t.Fatalf("opening paren line = %d, want 1", toks[0].Line)
	}
	last := toks[len(toks)-1]
	if last.Line != 2 {
		t.Fatalf("closing paren line = %d, want 2", last.Line)
	}
}
