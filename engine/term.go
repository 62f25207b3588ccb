package engine

import "fmt"

// Term is a mlatu term: an atom, a variable, or a compound.
// Terms are immutable once built and shared structurally during unification.
type Term interface {
	fmt.Stringer
	// Unify unifies the term with t under env and returns the possibly
	// extended environment. There is no occurs check: a variable may be
	// bound to a term containing itself, and dereferencing such a binding
	// may not terminate.
	Unify(t Term, env *Env) (*Env, bool)
}
