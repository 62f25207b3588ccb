package engine

import "context"

var (
	truePromise  = &Promise{ok: true}
	falsePromise = &Promise{ok: false}
)

// Promise is a delayed execution that results in (bool, error). The zero
// value for Promise is equivalent to Bool(false).
type Promise struct {
	// delayed execution with multiple choices
	delayed []func(context.Context) *Promise

	// final result
	ok  bool
	err error
}

// Delay delays an execution of k.
func Delay(k ...func(context.Context) *Promise) *Promise {
	return &Promise{delayed: k}
}

// Bool returns a promise that simply returns (ok, nil).
func Bool(ok bool) *Promise {
	if ok {
		return truePromise
	}
	return falsePromise
}

// Error returns a promise that simply returns (false, err).
func Error(err error) *Promise {
	return &Promise{err: err}
}

// Force enforces the delayed execution and returns the result. (i.e. trampoline)
// It checks ctx between steps so that a caller can cancel or put a
// deadline on an otherwise unbounded search.
func (p *Promise) Force(ctx context.Context) (bool, error) {
	stack := promiseStack{p}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		p := stack.pop()

		if len(p.delayed) == 0 {
			switch {
			case p.err != nil:
				return false, p.err
			case p.ok:
				return true, nil
			default:
				continue
			}
		}

		// Try the child promises from left to right.
		q := p.child(ctx)
		stack = append(stack, p, q)
	}
	return false, nil
}

func (p *Promise) child(ctx context.Context) *Promise {
	q := p.delayed[0](ctx)
	p.delayed, p.delayed[0] = p.delayed[1:], nil
	return q
}

type promiseStack []*Promise

func (s *promiseStack) pop() *Promise {
	var p *Promise
	p, *s, (*s)[len(*s)-1] = (*s)[len(*s)-1], (*s)[:len(*s)-1], nil
	return p
}
