package mlatu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlatu-lang/mlatu/engine"
)

func TestGenerate(t *testing.T) {
	t.Run("rule becomes a rewrites clause", func(t *testing.T) {
		rules, err := Rules(`add(zero, Y) -> Y ;`)
		assert.NoError(t, err)

		clauses, err := Generate(rules)
		assert.NoError(t, err)
		assert.Len(t, clauses, 1)

		head := clauses[0].Head.(*engine.Compound)
		assert.Equal(t, engine.FunctorRewrites, head.Functor)
		assert.Len(t, head.Args, 2)
		assert.Empty(t, clauses[0].Body)
	})

	t.Run("clause variables are renamed apart from the rule", func(t *testing.T) {
		rules, err := Rules(`id(X) -> X ;`)
		assert.NoError(t, err)

		clauses, err := Generate(rules)
		assert.NoError(t, err)

		ruleVar := rules[0].Replacement.(engine.Variable)
		clauseVar := clauses[0].Head.(*engine.Compound).Args[1].(engine.Variable)
		assert.NotEqual(t, ruleVar, clauseVar)
	})

	t.Run("replacement variable missing from the pattern", func(t *testing.T) {
		rules, err := Rules(`f(X) -> g(Y) ;`)
		assert.NoError(t, err)

		clauses, err := Generate(rules)
		var cerr *CodegenError
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, 0, cerr.RuleIndex)
		assert.Equal(t, "rule 1: variable Y does not occur in the pattern", cerr.Error())
		assert.Nil(t, clauses)
	})

	t.Run("one bad rule fails the whole batch", func(t *testing.T) {
		rules, err := Rules(`a -> b ; f(X) -> g(Y) ; c -> d ;`)
		assert.NoError(t, err)

		clauses, err := Generate(rules)
		var cerr *CodegenError
		assert.ErrorAs(t, err, &cerr)
		assert.Equal(t, 1, cerr.RuleIndex)
		assert.Nil(t, clauses)
	})

	t.Run("generated clauses drive rewriting", func(t *testing.T) {
		rules, err := Rules(`
add(zero, Y) -> Y ;
add(s(X), Y) -> s(add(X, Y)) ;
`)
		assert.NoError(t, err)
		clauses, err := Generate(rules)
		assert.NoError(t, err)

		var db engine.DB
		db.NewModule("user")
		for _, c := range clauses {
			assert.NoError(t, db.Assert("user", c, engine.Last))
		}

		in, err := Terms(`add(s(zero), s(zero))`)
		assert.NoError(t, err)
		out, err := db.Normalize(context.Background(), in[0], nil)
		assert.NoError(t, err)

		want, err := Terms(`s(s(zero))`)
		assert.NoError(t, err)
		assert.Equal(t, want[0], out)
	})
}
