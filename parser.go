package mlatu

import (
	"fmt"

	"github.com/mlatu-lang/mlatu/engine"
)

// NamedVar pairs a source-level variable name with the engine variable it
// was interned as.
type NamedVar struct {
	Name string
	V    engine.Variable
}

// Parser turns mlatu source text into rules or terms. Named variables are
// interned per parser, so two occurrences of X in the same input denote the
// same variable. The anonymous variable _ is fresh at each occurrence.
type Parser struct {
	toks []token
	pos  int
	vars map[string]engine.Variable

	// Vars lists the named variables of the input in order of first
	// occurrence.
	Vars []NamedVar
}

func NewParser(src string) *Parser {
	return &Parser{toks: lex(src), vars: map[string]engine.Variable{}}
}

// Rules parses src as a sequence of rules.
func Rules(src string) ([]Rule, error) {
	return NewParser(src).Rules()
}

// Terms parses src as a comma-separated sequence of terms.
func Terms(src string) ([]engine.Term, error) {
	return NewParser(src).Terms()
}

// Rules parses a sequence of rules of the form `pattern -> replacement ;`.
func (p *Parser) Rules() ([]Rule, error) {
	var rules []Rule
	for p.peek().kind != tokenEOF {
		r, err := p.rule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Terms parses a comma-separated sequence of terms covering the whole input.
func (p *Parser) Terms() ([]engine.Term, error) {
	var terms []engine.Term
	for {
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
		if p.peek().kind != tokenComma {
			break
		}
		p.next()
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, p.errorf(tok, "expected end of input, found %s", describe(tok))
	}
	return terms, nil
}

func (p *Parser) rule() (Rule, error) {
	pattern, err := p.term()
	if err != nil {
		return Rule{}, err
	}
	if _, err := p.expect(tokenArrow); err != nil {
		return Rule{}, err
	}
	replacement, err := p.term()
	if err != nil {
		return Rule{}, err
	}
	if _, err := p.expect(tokenSemicolon); err != nil {
		return Rule{}, err
	}
	return Rule{Pattern: pattern, Replacement: replacement}, nil
}

func (p *Parser) term() (engine.Term, error) {
	tok := p.next()
	switch tok.kind {
	case tokenAtom:
		if p.peek().kind != tokenOpen {
			return engine.Atom(tok.val), nil
		}
		p.next()
		var args []engine.Term
		for {
			a, err := p.term()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokenComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(tokenClose); err != nil {
			return nil, err
		}
		return engine.Atom(tok.val).Apply(args...), nil
	case tokenVariable:
		return p.variable(tok.val), nil
	default:
		return nil, p.errorf(tok, "expected a term, found %s", describe(tok))
	}
}

func (p *Parser) variable(name string) engine.Term {
	if name == "_" {
		return engine.NewVariable()
	}
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := engine.NewNamedVariable(name)
	p.vars[name] = v
	p.Vars = append(p.Vars, NamedVar{Name: name, V: v})
	return v
}

func (p *Parser) peek() token {
	return p.toks[p.pos]
}

func (p *Parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(k tokenKind) (token, error) {
	tok := p.next()
	if tok.kind != k {
		return token{}, p.errorf(tok, "expected %s, found %s", describeKind(k), describe(tok))
	}
	return tok, nil
}

func (p *Parser) errorf(tok token, format string, args ...interface{}) error {
	return &ParseError{Line: tok.line, Column: tok.column, Message: fmt.Sprintf(format, args...)}
}

func describe(tok token) string {
	switch tok.kind {
	case tokenEOF:
		return "end of input"
	case tokenInvalid:
		return fmt.Sprintf("invalid character %q", tok.val)
	default:
		return fmt.Sprintf("%q", tok.val)
	}
}

func describeKind(k tokenKind) string {
	switch k {
	case tokenAtom:
		return "an atom"
	case tokenVariable:
		return "a variable"
	case tokenOpen:
		return `"("`
	case tokenClose:
		return `")"`
	case tokenComma:
		return `","`
	case tokenArrow:
		return `"->"`
	case tokenSemicolon:
		return `";"`
	default:
		return "end of input"
	}
}
