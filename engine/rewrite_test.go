package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// peano returns the Peano numeral for n.
func peano(n int) Term {
	t := Term(Atom("zero"))
	for i := 0; i < n; i++ {
		t = Atom("s").Apply(t)
	}
	return t
}

// additionDB holds rewrite rules for Peano addition:
//
//	add(zero, Y) -> Y ;
//	add(s(X), Y) -> s(add(X, Y)) ;
func additionDB(t *testing.T) *DB {
	t.Helper()
	var db DB
	db.NewModule("user")

	x, y := NewVariable(), NewVariable()
	assert.NoError(t, db.Assert("user", Clause{
		Head: FunctorRewrites.Apply(Atom("add").Apply(Atom("zero"), y), y),
	}, Last))
	assert.NoError(t, db.Assert("user", Clause{
		Head: FunctorRewrites.Apply(
			Atom("add").Apply(Atom("s").Apply(x), y),
			Atom("s").Apply(Atom("add").Apply(x, y))),
	}, Last))
	return &db
}

func TestDB_Step(t *testing.T) {
	db := additionDB(t)

	t.Run("root redex", func(t *testing.T) {
		u, rewrote, err := db.Step(context.Background(), Atom("add").Apply(Atom("zero"), peano(1)), nil)
		assert.NoError(t, err)
		assert.True(t, rewrote)
		assert.Equal(t, peano(1), u)
	})

	t.Run("normal form at the root", func(t *testing.T) {
		u, rewrote, err := db.Step(context.Background(), peano(1), nil)
		assert.NoError(t, err)
		assert.False(t, rewrote)
		assert.Equal(t, peano(1), u)
	})

	t.Run("only the first matching rule applies", func(t *testing.T) {
		var db DB
		db.NewModule("user")
		x := NewVariable()
		assert.NoError(t, db.Assert("user", Clause{
			Head: FunctorRewrites.Apply(Atom("f").Apply(x), Atom("one")),
		}, Last))
		assert.NoError(t, db.Assert("user", Clause{
			Head: FunctorRewrites.Apply(Atom("f").Apply(x), Atom("two")),
		}, Last))

		u, rewrote, err := db.Step(context.Background(), Atom("f").Apply(Atom("a")), nil)
		assert.NoError(t, err)
		assert.True(t, rewrote)
		assert.Equal(t, Atom("one"), u)
	})
}

func TestDB_Normalize(t *testing.T) {
	t.Run("addition", func(t *testing.T) {
		db := additionDB(t)
		u, err := db.Normalize(context.Background(), Atom("add").Apply(peano(1), peano(1)), nil)
		assert.NoError(t, err)
		assert.Equal(t, peano(2), u)
	})

	t.Run("nested redexes", func(t *testing.T) {
		db := additionDB(t)
		u, err := db.Normalize(context.Background(),
			Atom("add").Apply(Atom("add").Apply(peano(1), peano(1)), peano(1)), nil)
		assert.NoError(t, err)
		assert.Equal(t, peano(3), u)
	})

	t.Run("normal form is returned unchanged", func(t *testing.T) {
		db := additionDB(t)
		u, err := db.Normalize(context.Background(), Atom("pair").Apply(peano(1), Atom("a")), nil)
		assert.NoError(t, err)
		assert.Equal(t, Atom("pair").Apply(peano(1), Atom("a")), u)
	})

	t.Run("atoms without rules", func(t *testing.T) {
		db := additionDB(t)
		u, err := db.Normalize(context.Background(), Atom("a"), nil)
		assert.NoError(t, err)
		assert.Equal(t, Atom("a"), u)
	})

	t.Run("unbound variable is a normal form", func(t *testing.T) {
		db := additionDB(t)
		x := NewVariable()
		u, err := db.Normalize(context.Background(), x, nil)
		assert.NoError(t, err)
		assert.Equal(t, Term(x), u)
	})

	t.Run("non-ground term terminates", func(t *testing.T) {
		db := additionDB(t)
		x := NewVariable()
		u, err := db.Normalize(context.Background(), Atom("add").Apply(Atom("zero"), x), nil)
		assert.NoError(t, err)
		// add(zero, X) steps once to the rule's replacement variable and
		// stops there.
		_, ok := u.(Variable)
		assert.True(t, ok)
	})

	t.Run("step limit bounds divergent rules", func(t *testing.T) {
		var db DB
		db.Policy.StepLimit = 1000
		db.NewModule("user")
		// loop -> loop ;
		assert.NoError(t, db.Assert("user", Clause{
			Head: FunctorRewrites.Apply(Atom("loop"), Atom("loop")),
		}, Last))

		_, err := db.Normalize(context.Background(), Atom("loop"), nil)
		var rerr *ResolutionError
		assert.ErrorAs(t, err, &rerr)
	})
}
