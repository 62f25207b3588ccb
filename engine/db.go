package engine

import (
	"context"
	"fmt"
)

// Policy bounds a resolution query. The zero value imposes no limits,
// matching the core semantics: termination is the rule set's problem.
type Policy struct {
	// StepLimit caps resolution steps per query. 0 means unlimited.
	StepLimit int
	// Dedup drops duplicate solutions during enumeration.
	Dedup bool
}

// DB is a clause database. The zero value is an empty database ready for
// use. A DB is not safe for concurrent use; it is meant to be owned by a
// single goroutine, which makes locking unnecessary.
type DB struct {
	Policy Policy

	order   []Atom
	modules map[Atom]*Module
}

// NewModule declares a module, or returns the existing one with that name.
// Modules are searched in declaration order.
func (db *DB) NewModule(name Atom) *Module {
	if m, ok := db.modules[name]; ok {
		return m
	}
	if db.modules == nil {
		db.modules = map[Atom]*Module{}
	}
	m := &Module{name: name}
	db.modules[name] = m
	db.order = append(db.order, name)
	return m
}

// Module returns the module with the given name.
func (db *DB) Module(name Atom) (*Module, bool) {
	m, ok := db.modules[name]
	return m, ok
}

// Assert inserts c at the given end of the named module's clause list.
// Clauses are never removed; the database is append-only.
func (db *DB) Assert(module Atom, c Clause, pos Position) error {
	m, ok := db.modules[module]
	if !ok {
		return fmt.Errorf("assert: unknown module: %s", module)
	}
	m.insert(c, pos)
	return nil
}

// Cont is a continuation that receives the environment of a solution.
// Returning Bool(false) resumes the search for further solutions.
type Cont func(*Env) *Promise

// Solve resolves goal against the database by SLD-resolution: the first
// clause in stored order whose head unifies with the goal is selected, its
// body goals are resolved left to right, and on failure of any body goal
// the next matching clause is tried. Solutions are produced lazily through
// the returned promise; each is passed to k.
func (db *DB) Solve(goal Term, k Cont, env *Env) *Promise {
	r := &resolution{db: db, limit: db.Policy.StepLimit}
	return r.solve(goal, k, env)
}

// ResolutionError is a runtime resolution failure. It is reported as a
// failed query, never by terminating the engine.
type ResolutionError struct {
	Goal Term
	Msg  string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution of %s: %s", e.Goal, e.Msg)
}

type resolution struct {
	db    *DB
	limit int
	steps int
}

func (r *resolution) solve(goal Term, k Cont, env *Env) *Promise {
	if r.limit > 0 {
		if r.steps++; r.steps > r.limit {
			return Error(&ResolutionError{Goal: goal, Msg: fmt.Sprintf("step limit of %d exceeded", r.limit)})
		}
	}
	goal = env.Resolve(goal)
	if v, ok := goal.(Variable); ok {
		return Error(&ResolutionError{Goal: v, Msg: "unbound goal"})
	}

	var ks []func(context.Context) *Promise
	for _, name := range r.db.order {
		for _, c := range r.db.modules[name].Clauses() {
			c := c
			ks = append(ks, func(context.Context) *Promise {
				d := c.Renamed()
				env, ok := d.Head.Unify(goal, env)
				if !ok {
					return Bool(false)
				}
				return r.seq(d.Body, k, env)
			})
		}
	}
	if len(ks) == 0 {
		return Bool(false)
	}
	return Delay(ks...)
}

func (r *resolution) seq(goals []Term, k Cont, env *Env) *Promise {
	if len(goals) == 0 {
		return Delay(func(context.Context) *Promise {
			return k(env)
		})
	}
	return Delay(func(context.Context) *Promise {
		return r.solve(goals[0], func(env *Env) *Promise {
			return r.seq(goals[1:], k, env)
		}, env)
	})
}
