package mlatu

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/mlatu-lang/mlatu/engine"
)

// Binary rule format: a uvarint rule count, then per rule the pattern and
// replacement terms. A term is a tag byte followed by its payload: atoms
// carry a length-prefixed name, variables a per-rule index, compounds a
// length-prefixed functor, a uvarint arity and the argument terms. Variable
// identity is preserved within a rule, never across rules.
const (
	tagAtom = iota + 1
	tagVariable
	tagCompound
)

// maxTermDepth bounds decoder recursion so crafted input cannot exhaust
// the stack.
const maxTermDepth = 4096

var errMalformed = errors.New("malformed term")

// SerializeRules encodes rules in the binary rule format.
func SerializeRules(rules []Rule) []byte {
	b := binary.AppendUvarint(nil, uint64(len(rules)))
	for _, r := range rules {
		idx := map[engine.Variable]uint64{}
		b = appendTerm(b, r.Pattern, idx)
		b = appendTerm(b, r.Replacement, idx)
	}
	return b
}

// DeserializeRules decodes the binary rule format. It reports false on any
// malformed input: bad tag, truncated payload, or trailing bytes. Decoded
// variables are freshly allocated.
func DeserializeRules(data []byte) ([]Rule, bool) {
	r := bytes.NewReader(data)
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, false
	}
	var rules []Rule
	for i := uint64(0); i < n; i++ {
		vars := map[uint64]engine.Variable{}
		pattern, err := readTerm(r, vars, 0)
		if err != nil {
			return nil, false
		}
		replacement, err := readTerm(r, vars, 0)
		if err != nil {
			return nil, false
		}
		rules = append(rules, Rule{Pattern: pattern, Replacement: replacement})
	}
	if r.Len() != 0 {
		return nil, false
	}
	return rules, true
}

func appendTerm(b []byte, t engine.Term, idx map[engine.Variable]uint64) []byte {
	switch t := t.(type) {
	case engine.Atom:
		b = append(b, tagAtom)
		b = appendString(b, string(t))
	case engine.Variable:
		i, ok := idx[t]
		if !ok {
			i = uint64(len(idx))
			idx[t] = i
		}
		b = append(b, tagVariable)
		b = binary.AppendUvarint(b, i)
	case *engine.Compound:
		b = append(b, tagCompound)
		b = appendString(b, string(t.Functor))
		b = binary.AppendUvarint(b, uint64(len(t.Args)))
		for _, a := range t.Args {
			b = appendTerm(b, a, idx)
		}
	}
	return b
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func readTerm(r *bytes.Reader, vars map[uint64]engine.Variable, depth int) (engine.Term, error) {
	if depth > maxTermDepth {
		return nil, errMalformed
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagAtom:
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		return engine.Atom(s), nil
	case tagVariable:
		i, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		v, ok := vars[i]
		if !ok {
			v = engine.NewVariable()
			vars[i] = v
		}
		return v, nil
	case tagCompound:
		f, err := readString(r)
		if err != nil {
			return nil, err
		}
		arity, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, err
		}
		// Every argument takes at least one byte, so an arity beyond the
		// remaining input is malformed. This also keeps a lying arity from
		// forcing a huge allocation.
		if arity == 0 || arity > uint64(r.Len()) {
			return nil, errMalformed
		}
		args := make([]engine.Term, arity)
		for i := range args {
			a, err := readTerm(r, vars, depth+1)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &engine.Compound{Functor: engine.Atom(f), Args: args}, nil
	default:
		return nil, errMalformed
	}
}

func readString(r *bytes.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	if n > uint64(r.Len()) {
		return "", errMalformed
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
