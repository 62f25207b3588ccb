package engine

// Clause is a head/body pair as stored in the clause database. It is
// produced from a rewrite rule by codegen.
type Clause struct {
	Head Term
	Body []Term
}

// Renamed returns a copy of the clause with every variable replaced by a
// fresh one, consistently across head and body. Clauses are renamed on
// every selection so that bindings from one derivation never leak into
// another.
func (c Clause) Renamed() Clause {
	vars := map[Variable]Variable{}
	d := Clause{Head: renameTerm(c.Head, vars)}
	if len(c.Body) > 0 {
		d.Body = make([]Term, len(c.Body))
		for i, g := range c.Body {
			d.Body[i] = renameTerm(g, vars)
		}
	}
	return d
}

func renameTerm(t Term, vars map[Variable]Variable) Term {
	switch t := t.(type) {
	case Variable:
		w, ok := vars[t]
		if !ok {
			w = NewVariable()
			vars[t] = w
		}
		return w
	case *Compound:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = renameTerm(a, vars)
		}
		return &Compound{Functor: t.Functor, Args: args}
	default:
		return t
	}
}
