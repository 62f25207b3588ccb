package mlatu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mlatu-lang/mlatu/engine"
)

// Rule is a rewrite rule: terms matching Pattern reduce to Replacement.
type Rule struct {
	Pattern     engine.Term
	Replacement engine.Term
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s ;", r.Pattern, r.Replacement)
}

// Format renders the rule with its variables renamed A, B, C, ... so that
// a rule reads the same however its variables were numbered internally.
func (r Rule) Format() string {
	names := map[engine.Variable]string{}
	var next int
	var sb strings.Builder
	formatTerm(&sb, r.Pattern, names, &next)
	sb.WriteString(" -> ")
	formatTerm(&sb, r.Replacement, names, &next)
	sb.WriteString(" ;")
	return sb.String()
}

func formatTerm(sb *strings.Builder, t engine.Term, names map[engine.Variable]string, next *int) {
	switch t := t.(type) {
	case engine.Variable:
		name, ok := names[t]
		if !ok {
			name = varName(*next)
			*next++
			names[t] = name
		}
		sb.WriteString(name)
	case engine.Atom:
		sb.WriteString(string(t))
	case *engine.Compound:
		sb.WriteString(string(t.Functor))
		sb.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			formatTerm(sb, a, names, next)
		}
		sb.WriteByte(')')
	}
}

func varName(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return string(rune('A'+i%26)) + strconv.Itoa(i/26)
}
