package engine

import (
	"context"
	"fmt"
)

// FunctorRewrites is the functor of generated rewrite clauses: a clause
// rewrites(P, R) holds when a term matching P reduces to R in one step.
const FunctorRewrites = Atom("rewrites")

// Step performs a single root rewrite of t. It returns the reduct and true,
// or t unchanged and false when no rule applies at the root.
func (db *DB) Step(ctx context.Context, t Term, env *Env) (Term, bool, error) {
	v := NewVariable()
	goal := FunctorRewrites.Apply(t, v)

	var (
		reduct Term
		found  bool
	)
	if _, err := db.Solve(goal, func(env *Env) *Promise {
		reduct = env.Simplify(v)
		found = true
		return Bool(true)
	}, env).Force(ctx); err != nil {
		return nil, false, err
	}
	if !found {
		return t, false, nil
	}
	return reduct, true, nil
}

// Normalize rewrites t to normal form: arguments are normalized first,
// then root rewrites from the first matching rule are applied until none
// applies. Unbound variables are normal forms. Whether this terminates is
// up to the rule set; Policy.StepLimit also caps the total number of
// rewrites so a divergent rule set surfaces as a ResolutionError instead
// of a hang.
func (db *DB) Normalize(ctx context.Context, t Term, env *Env) (Term, error) {
	n := normalization{db: db, limit: db.Policy.StepLimit}
	return n.normalize(ctx, env.Simplify(t))
}

type normalization struct {
	db       *DB
	limit    int
	rewrites int
}

func (n *normalization) normalize(ctx context.Context, t Term) (Term, error) {
	for {
		// An unbound variable is inert. Stepping it would unify with every
		// rule pattern and produce a fresh unbound reduct each time.
		if _, ok := t.(Variable); ok {
			return t, nil
		}
		if c, ok := t.(*Compound); ok {
			args := make([]Term, len(c.Args))
			for i, a := range c.Args {
				na, err := n.normalize(ctx, a)
				if err != nil {
					return nil, err
				}
				args[i] = na
			}
			t = &Compound{Functor: c.Functor, Args: args}
		}
		u, rewrote, err := n.db.Step(ctx, t, nil)
		if err != nil {
			return nil, err
		}
		if !rewrote {
			return t, nil
		}
		if n.limit > 0 {
			if n.rewrites++; n.rewrites > n.limit {
				return nil, &ResolutionError{Goal: t, Msg: fmt.Sprintf("rewrite limit of %d exceeded", n.limit)}
			}
		}
		t = u
	}
}
