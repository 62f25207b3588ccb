package engine

import "strings"

// Compound is a mlatu compound term: a functor applied to one or more
// arguments.
type Compound struct {
	Functor Atom
	Args    []Term
}

// Unify unifies the compound with t. Two compounds unify iff their functors
// and arities match and every argument pair unifies.
func (c *Compound) Unify(t Term, env *Env) (*Env, bool) {
	switch t := env.Resolve(t).(type) {
	case *Compound:
		if c.Functor != t.Functor {
			return env, false
		}
		if len(c.Args) != len(t.Args) {
			return env, false
		}
		var ok bool
		for i := range c.Args {
			env, ok = c.Args[i].Unify(t.Args[i], env)
			if !ok {
				return env, false
			}
		}
		return env, true
	case Variable:
		return t.Unify(c, env)
	default:
		return env, false
	}
}

func (c *Compound) String() string {
	var sb strings.Builder
	sb.WriteString(string(c.Functor))
	sb.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
