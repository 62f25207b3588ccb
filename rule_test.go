package mlatu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRule_Format(t *testing.T) {
	tests := []struct {
		title string
		src   string
		want  string
	}{
		{title: "ground", src: `a -> b ;`, want: `a -> b ;`},
		{title: "variables renamed in order of occurrence", src: `f(Foo, Bar) -> g(Bar) ;`, want: `f(A, B) -> g(B) ;`},
		{title: "repeated variable keeps one name", src: `add(zero, Y) -> Y ;`, want: `add(zero, A) -> A ;`},
		{title: "nested", src: `add(s(X), Y) -> s(add(X, Y)) ;`, want: `add(s(A), B) -> s(add(A, B)) ;`},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			rules, err := Rules(tt.src)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, rules[0].Format())
		})
	}
}

func TestRule_FormatManyVariables(t *testing.T) {
	assert.Equal(t, "A", varName(0))
	assert.Equal(t, "Z", varName(25))
	assert.Equal(t, "A1", varName(26))
	assert.Equal(t, "B1", varName(27))
}
