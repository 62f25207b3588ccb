package engine

// Env is an immutable environment frame binding one variable. Extending it
// allocates a new frame, so backtracking undoes bindings by simply
// dropping the extension. The nil *Env is the empty environment.
type Env struct {
	up       *Env
	variable Variable
	value    Term
}

// Bind returns an environment that extends e with v bound to t.
func (e *Env) Bind(v Variable, t Term) *Env {
	return &Env{
		up:       e,
		variable: v,
		value:    t,
	}
}

// Lookup returns the term bound to v.
func (e *Env) Lookup(v Variable) (Term, bool) {
	for env := e; env != nil; env = env.up {
		if env.variable == v {
			return env.value, true
		}
	}
	return nil, false
}

// Resolve follows the variable chain and returns the first non-variable
// term or the last free variable.
func (e *Env) Resolve(t Term) Term {
	var stop []Variable
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		for _, s := range stop {
			if v == s {
				return v
			}
		}
		ref, ok := e.Lookup(v)
		if !ok {
			return v
		}
		stop = append(stop, v)
		t = ref
	}
}

// Simplify resolves t recursively so that the result contains no bound
// variables.
func (e *Env) Simplify(t Term) Term {
	switch t := e.Resolve(t).(type) {
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = e.Simplify(a)
		}
		return &Compound{Functor: t.Functor, Args: args}
	default:
		return t
	}
}
