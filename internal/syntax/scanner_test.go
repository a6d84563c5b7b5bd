package syntax

import (
	"strings"
	"testing"
)

func TestTokenizeKinds(t *testing.T) {
	tests := []struct {
		src   string
		kinds []Kind
		texts []string
	}{
		{"0", []Kind{Num, EOF}, []string{"0", ""}},
		{"12 + 34", []Kind{Num, Punct, Num, EOF}, []string{"12", "+", "34", ""}},
		{"foo_1", []Kind{Ident, EOF}, []string{"foo_1", ""}},
		{"return x;", []Kind{Keyword, Ident, Punct, EOF}, []string{"return", "x", ";", ""}},
		{"int *p", []Kind{Keyword, Punct, Ident, EOF}, []string{"int", "*", "p", ""}},
		{"if(a)else while for", []Kind{Keyword, Punct, Ident, Punct, Keyword, Keyword, Keyword, EOF},
			[]string{"if", "(", "a", ")", "else", "while", "for", ""}},
		{"", []Kind{EOF}, []string{""}},
		{" \t\n ", []Kind{EOF}, []string{""}},
		// Any printable punctuation byte scans as a one-byte
		// punctuator; rejecting it is the parser's job.
		{"@ $ #", []Kind{Punct, Punct, Punct, EOF}, []string{"@", "$", "#", ""}},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.src)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.src, err)
			continue
		}
		if len(toks) != len(tt.kinds) {
			t.Errorf("Tokenize(%q) = %d tokens, want %d", tt.src, len(toks), len(tt.kinds))
			continue
		}
		for i, tok := range toks {
			if tok.Kind != tt.kinds[i] {
				t.Errorf("Tokenize(%q)[%d].Kind = %s, want %s", tt.src, i, tok.Kind, tt.kinds[i])
			}
			if tok.Text != tt.texts[i] {
				t.Errorf("Tokenize(%q)[%d].Text = %q, want %q", tt.src, i, tok.Text, tt.texts[i])
			}
		}
	}
}

func TestTokenizeOffsets(t *testing.T) {
	src := "{ int x=3; return *(&x); }"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	for _, tok := range toks {
		if tok.Kind == EOF {
			if tok.Off != len(src) {
				t.Errorf("EOF offset = %d, want %d", tok.Off, len(src))
			}
			continue
		}
		end := tok.Off + len(tok.Text)
		if end > len(src) || src[tok.Off:end] != tok.Text {
			t.Errorf("token %q does not match src at offset %d", tok.Text, tok.Off)
		}
	}
}

func TestTokenizeMaximalMunch(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"a==b", []string{"a", "==", "b"}},
		{"a=!b", []string{"a", "=", "!", "b"}},
		{"a!=b", []string{"a", "!=", "b"}},
		{"a<=b", []string{"a", "<=", "b"}},
		{"a>=b", []string{"a", ">=", "b"}},
		{"a<b<=c", []string{"a", "<", "b", "<=", "c"}},
		{"a= =b", []string{"a", "=", "=", "b"}},
	}
	for _, tt := range tests {
		toks, err := Tokenize(tt.src)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.src, err)
			continue
		}
		var texts []string
		for _, tok := range toks {
			if tok.Kind != EOF {
				texts = append(texts, tok.Text)
			}
		}
		if strings.Join(texts, " ") != strings.Join(tt.want, " ") {
			t.Errorf("Tokenize(%q) = %v, want %v", tt.src, texts, tt.want)
		}
	}
}

func TestTokenizeNumValues(t *testing.T) {
	toks, err := Tokenize("0 7 1234567890")
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{0, 7, 1234567890}
	for i, v := range want {
		if toks[i].Val != v {
			t.Errorf("token %d Val = %d, want %d", i, toks[i].Val, v)
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		src string
		off int
		msg string
	}{
		{"\x01", 0, "invalid token"},
		{"{ return \x7f; }", 9, "invalid token"},
		{"99999999999999999999", 0, "number out of range"},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.src)
		if err == nil {
			t.Errorf("Tokenize(%q) succeeded, want error", tt.src)
			continue
		}
		serr, ok := err.(*Error)
		if !ok {
			t.Errorf("Tokenize(%q) error type %T, want *Error", tt.src, err)
			continue
		}
		if serr.Off != tt.off || serr.Msg != tt.msg {
			t.Errorf("Tokenize(%q) error at %d %q, want %d %q", tt.src, serr.Off, serr.Msg, tt.off, tt.msg)
		}
	}
}

func TestErrorDiagnostic(t *testing.T) {
	e := &Error{Src: "{ return @; }", Off: 9, Msg: "expected an expression"}
	want := "{ return @; }\n         ^ expected an expression\n"
	if got := e.Diagnostic(); got != want {
		t.Fatalf("Diagnostic() = %q, want %q", got, want)
	}
	if got := e.Error(); got != "offset 9: expected an expression" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestTokenIs(t *testing.T) {
	toks, err := Tokenize("return x + 1")
	if err != nil {
		t.Fatal(err)
	}
	if !toks[0].Is("return") {
		t.Error(`keyword token: Is("return") = false`)
	}
	if toks[1].Is("x") {
		t.Error(`identifier token: Is("x") = true, identifiers never match`)
	}
	if !toks[2].Is("+") {
		t.Error(`punctuator token: Is("+") = false`)
	}
	if toks[3].Is("1") {
		t.Error(`number token: Is("1") = true, numbers never match`)
	}
}
