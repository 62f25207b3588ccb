package mlatu

import "github.com/mlatu-lang/mlatu/engine"

// Generate compiles rules into rewrites/2 clauses. Every variable of a
// replacement must occur in its pattern; generation is all-or-nothing, so
// one invalid rule fails the whole batch. Each clause is renamed apart so
// later batches cannot share variables with it.
func Generate(rules []Rule) ([]engine.Clause, error) {
	clauses := make([]engine.Clause, 0, len(rules))
	for i, r := range rules {
		pv := engine.Variables(r.Pattern)
		for _, v := range engine.Variables(r.Replacement) {
			if !containsVar(pv, v) {
				return nil, &CodegenError{RuleIndex: i, Variable: v}
			}
		}
		c := engine.Clause{Head: engine.FunctorRewrites.Apply(r.Pattern, r.Replacement)}
		clauses = append(clauses, c.Renamed())
	}
	return clauses, nil
}

func containsVar(vars []engine.Variable, v engine.Variable) bool {
	for _, w := range vars {
		if w == v {
			return true
		}
	}
	return false
}
