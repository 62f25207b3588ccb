package engine

// Position selects which end of a module's clause list an assertion
// targets. A clause asserted First is tried before every clause already in
// the module; a clause asserted Last is tried after them.
type Position int

const (
	First Position = iota
	Last
)

// Module is a named, ordered list of clauses. Insertion order is
// significant: it determines resolution search order.
type Module struct {
	name Atom

	// Two stacks so that insertion at either end stays amortized O(1).
	// front holds First-asserted clauses, newest last.
	front []Clause
	back  []Clause
}

// Name returns the module name.
func (m *Module) Name() Atom {
	return m.name
}

// Len returns the number of clauses in the module.
func (m *Module) Len() int {
	return len(m.front) + len(m.back)
}

// Clauses returns the clauses in search order.
func (m *Module) Clauses() []Clause {
	cs := make([]Clause, 0, m.Len())
	for i := len(m.front) - 1; i >= 0; i-- {
		cs = append(cs, m.front[i])
	}
	return append(cs, m.back...)
}

func (m *Module) insert(c Clause, pos Position) {
	if pos == First {
		m.front = append(m.front, c)
		return
	}
	m.back = append(m.back, c)
}
