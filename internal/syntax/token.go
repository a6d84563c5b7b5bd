// Package syntax implements lexical and syntactic analysis for the C
// subset occ compiles.
package syntax

import "fmt"

// Kind describes the kind of a lexical token.
type Kind uint8

const (
	Ident   Kind = iota // identifier: foo, bar
	Punct               // punctuator: + - * / ( ) == ...
	Keyword             // reserved word: return, if, else, for, while, int
	Num                 // numeric literal
	EOF                 // end of input
)

// kindNames maps kinds to their string representation.
var kindNames = [...]string{
	Ident:   "IDENT",
	Punct:   "PUNCT",
	Keyword: "KEYWORD",
	Num:     "NUM",
	EOF:     "EOF",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is a single lexical token. Tokens are produced once by
// Tokenize and thereafter only read; Off and Text tie a token back to
// its source bytes for diagnostics.
type Token struct {
	Kind Kind
	Off  int    // byte offset into the source
	Text string // lexeme: src[Off : Off+len(Text)]
	Val  int64  // literal value when Kind is Num
}

// Is reports whether t is the punctuator or keyword lit.
func (t Token) Is(lit string) bool {
	return (t.Kind == Punct || t.Kind == Keyword) && t.Text == lit
}

// keywords is the closed set of reserved words.
var keywords = map[string]bool{
	"return": true,
	"if":     true,
	"else":   true,
	"for":    true,
	"while":  true,
	"int":    true,
}
