package mlatu

import (
	"context"

	"github.com/mlatu-lang/mlatu/engine"
)

// Solution is one answer to a query: the bindings of the query's named
// variables.
type Solution map[string]engine.Term

// Solutions is a lazy iterator over the answers to a query.
//
//	sols := mlatu.Query(ctx, db, goal, vars)
//	defer sols.Close()
//	for sols.Next() {
//		s := sols.Scan()
//		...
//	}
//	if err := sols.Err(); err != nil {
//		...
//	}
type Solutions struct {
	vars []NamedVar
	more chan<- bool
	next <-chan *engine.Env
	env  *engine.Env
	err  error
}

// Query resolves goal against db and returns a lazy iterator over its
// solutions. The search only advances on Next, so an infinite solution set
// is fine as long as the caller stops asking.
func Query(ctx context.Context, db *engine.DB, goal engine.Term, vars []NamedVar) *Solutions {
	more := make(chan bool, 1)
	next := make(chan *engine.Env)
	sols := &Solutions{vars: vars, more: more, next: next}
	go func() {
		defer close(next)
		if !<-more {
			return
		}
		if _, err := db.Solve(goal, func(env *engine.Env) *engine.Promise {
			next <- env
			return engine.Bool(!<-more)
		}, nil).Force(ctx); err != nil {
			sols.err = err
		}
	}()
	return sols
}

// Close exits the search.
func (s *Solutions) Close() error {
	close(s.more)
	return nil
}

// Next prepares the next solution for reading with Scan. It returns false
// when there are no more solutions or the search failed.
func (s *Solutions) Next() bool {
	s.more <- true
	env, ok := <-s.next
	s.env = env
	return ok
}

// Scan returns the bindings of the current solution.
func (s *Solutions) Scan() Solution {
	sol := make(Solution, len(s.vars))
	for _, nv := range s.vars {
		sol[nv.Name] = s.env.Simplify(nv.V)
	}
	return sol
}

// Err returns the error, if any, that ended the enumeration.
func (s *Solutions) Err() error {
	return s.err
}
