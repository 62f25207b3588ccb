package mlatu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	tests := []struct {
		title string
		src   string
		kinds []tokenKind
	}{
		{title: "empty", src: ``, kinds: []tokenKind{tokenEOF}},
		{title: "whitespace only", src: "  \t\n", kinds: []tokenKind{tokenEOF}},
		{title: "atom", src: `foo`, kinds: []tokenKind{tokenAtom, tokenEOF}},
		{title: "variable", src: `Foo`, kinds: []tokenKind{tokenVariable, tokenEOF}},
		{title: "underscore", src: `_`, kinds: []tokenKind{tokenVariable, tokenEOF}},
		{title: "underscore prefix", src: `_foo`, kinds: []tokenKind{tokenVariable, tokenEOF}},
		{
			title: "rule",
			src:   `add(zero, Y) -> Y ;`,
			kinds: []tokenKind{tokenAtom, tokenOpen, tokenAtom, tokenComma, tokenVariable, tokenClose, tokenArrow, tokenVariable, tokenSemicolon, tokenEOF},
		},
		{
			title: "comment runs to end of line",
			src:   "a % b -> c ;\nd",
			kinds: []tokenKind{tokenAtom, tokenAtom, tokenEOF},
		},
		{title: "lone dash", src: `-`, kinds: []tokenKind{tokenInvalid, tokenEOF}},
		{title: "stray rune", src: `@`, kinds: []tokenKind{tokenInvalid, tokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			toks := lex(tt.src)
			kinds := make([]tokenKind, len(toks))
			for i, tok := range toks {
				kinds[i] = tok.kind
			}
			assert.Equal(t, tt.kinds, kinds)
		})
	}
}

func TestLex_Positions(t *testing.T) {
	toks := lex("foo\n  Bar")

	assert.Equal(t, 1, toks[0].line)
	assert.Equal(t, 1, toks[0].column)
	assert.Equal(t, 2, toks[1].line)
	assert.Equal(t, 3, toks[1].column)
}
