package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

var varCounter int64

// Variable is a mlatu variable, identified by a process-unique number.
type Variable int64

// NewVariable creates a fresh anonymous variable.
func NewVariable() Variable {
	return Variable(atomic.AddInt64(&varCounter, 1))
}

var varNames = struct {
	sync.RWMutex
	m map[Variable]string
}{m: map[Variable]string{}}

// NewNamedVariable creates a fresh variable that prints with the given
// source-level name. Freshly renamed copies of it print anonymously.
func NewNamedVariable(name string) Variable {
	v := NewVariable()
	varNames.Lock()
	varNames.m[v] = name
	varNames.Unlock()
	return v
}

func (v Variable) String() string {
	varNames.RLock()
	name, ok := varNames.m[v]
	varNames.RUnlock()
	if ok {
		return name
	}
	return fmt.Sprintf("_%d", int64(v))
}

// Unify binds the variable to t unless they already denote the same term.
func (v Variable) Unify(t Term, env *Env) (*Env, bool) {
	r := env.Resolve(v)
	t = env.Resolve(t)
	if r == t {
		return env, true
	}
	if w, ok := r.(Variable); ok {
		return env.Bind(w, t), true
	}
	return r.Unify(t, env)
}

// Variables lists the distinct variables of t in order of first occurrence.
func Variables(t Term) []Variable {
	return appendVariables(nil, t)
}

func appendVariables(vs []Variable, t Term) []Variable {
	switch t := t.(type) {
	case Variable:
		for _, v := range vs {
			if v == t {
				return vs
			}
		}
		return append(vs, t)
	case *Compound:
		for _, a := range t.Args {
			vs = appendVariables(vs, a)
		}
	}
	return vs
}
