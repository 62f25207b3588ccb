package engine

// Atom is a mlatu atom.
type Atom string

func (a Atom) String() string {
	return string(a)
}

// Unify unifies the atom with t.
func (a Atom) Unify(t Term, env *Env) (*Env, bool) {
	switch t := env.Resolve(t).(type) {
	case Atom:
		return env, a == t
	case Variable:
		return t.Unify(a, env)
	default:
		return env, false
	}
}

// Apply returns a Compound with the atom as functor and args as arguments.
// If the arguments are empty, it returns the atom itself.
func (a Atom) Apply(args ...Term) Term {
	if len(args) == 0 {
		return a
	}
	return &Compound{
		Functor: a,
		Args:    args,
	}
}
