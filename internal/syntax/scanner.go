package syntax

import "strconv"

// Tokenize splits src into tokens, ending with an EOF token.
// The first unrecognized byte aborts scanning with an *Error at its
// column.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++

		case isDigit(c):
			j := i
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			text := src[i:j]
			val, err := strconv.ParseInt(text, 10, 64)
			if err != nil {
				return nil, &Error{Src: src, Off: i, Msg: "number out of range"}
			}
			toks = append(toks, Token{Kind: Num, Off: i, Text: text, Val: val})
			i = j

		case isIdentStart(c):
			j := i
			for j < len(src) && isIdentCont(src[j]) {
				j++
			}
			toks = append(toks, Token{Kind: Ident, Off: i, Text: src[i:j]})
			i = j

		default:
			n := punctLen(src[i:])
			if n == 0 {
				return nil, &Error{Src: src, Off: i, Msg: "invalid token"}
			}
			toks = append(toks, Token{Kind: Punct, Off: i, Text: src[i : i+n]})
			i += n
		}
	}
	toks = append(toks, Token{Kind: EOF, Off: len(src)})
	markKeywords(toks)
	return toks, nil
}

// markKeywords reclassifies identifier tokens whose lexeme is a
// reserved word.
func markKeywords(toks []Token) {
	for i := range toks {
		if toks[i].Kind == Ident && keywords[toks[i].Text] {
			toks[i].Kind = Keyword
		}
	}
}

// punctLen returns the byte length of the punctuator starting src, or
// 0 if src does not begin with one. Two-byte punctuators win over
// their one-byte prefixes (maximal munch).
func punctLen(src string) int {
	if len(src) >= 2 {
		switch src[:2] {
		case "==", "!=", "<=", ">=":
			return 2
		}
	}
	if isPunct(src[0]) {
		return 1
	}
	return 0
}

// Character classification helpers

// isSpace reports whether c is a whitespace byte.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isDigit reports whether c is a decimal digit.
func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isIdentStart reports whether c can start an identifier.
func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

// isIdentCont reports whether c can continue an identifier.
func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// isPunct reports whether c is a printable punctuation byte.
func isPunct(c byte) bool {
	return '!' <= c && c <= '~' && !isDigit(c) && !isIdentStart(c)
}
