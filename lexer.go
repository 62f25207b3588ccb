package mlatu

import "unicode"

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenAtom
	tokenVariable
	tokenOpen
	tokenClose
	tokenComma
	tokenArrow
	tokenSemicolon
	tokenInvalid
)

type token struct {
	kind         tokenKind
	val          string
	line, column int
}

// lex tokenizes src. It is total: characters that fit no token become
// tokenInvalid tokens for the parser to report, and the token slice always
// ends with tokenEOF.
func lex(src string) []token {
	var toks []token
	emit := func(k tokenKind, val string, line, column int) {
		toks = append(toks, token{kind: k, val: val, line: line, column: column})
	}

	rs := []rune(src)
	line, col := 1, 1
	i := 0
	for i < len(rs) {
		r := rs[i]
		l, c := line, col
		switch {
		case r == '\n':
			line++
			col = 1
			i++
		case unicode.IsSpace(r):
			col++
			i++
		case r == '%':
			for i < len(rs) && rs[i] != '\n' {
				col++
				i++
			}
		case r == '(':
			emit(tokenOpen, "(", l, c)
			col++
			i++
		case r == ')':
			emit(tokenClose, ")", l, c)
			col++
			i++
		case r == ',':
			emit(tokenComma, ",", l, c)
			col++
			i++
		case r == ';':
			emit(tokenSemicolon, ";", l, c)
			col++
			i++
		case r == '-':
			if i+1 < len(rs) && rs[i+1] == '>' {
				emit(tokenArrow, "->", l, c)
				col += 2
				i += 2
			} else {
				emit(tokenInvalid, string(r), l, c)
				col++
				i++
			}
		case isIdentStart(r):
			j := i
			for j < len(rs) && isIdent(rs[j]) {
				j++
			}
			val := string(rs[i:j])
			if r == '_' || unicode.IsUpper(r) {
				emit(tokenVariable, val, l, c)
			} else {
				emit(tokenAtom, val, l, c)
			}
			col += j - i
			i = j
		default:
			emit(tokenInvalid, string(r), l, c)
			col++
			i++
		}
	}
	toks = append(toks, token{kind: tokenEOF, line: line, column: col})
	return toks
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdent(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
