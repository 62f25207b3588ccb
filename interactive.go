package mlatu

import (
	"fmt"
	"sync"

	"github.com/mlatu-lang/mlatu/engine"
)

// Interactive is a synchronous client of an engine thread: each call sends
// one request and waits for its response. Calls are serialized, so the
// client can be shared between goroutines. Calls after Close or after the
// thread has exited report ErrDisconnected instead of hanging.
type Interactive struct {
	mu        sync.Mutex
	requests  chan<- Request
	responses <-chan Response
}

func NewInteractive(requests chan<- Request, responses <-chan Response) *Interactive {
	return &Interactive{requests: requests, responses: responses}
}

// Assert adds clauses to a module on the engine thread.
func (i *Interactive) Assert(module engine.Atom, clauses []engine.Clause, pos engine.Position) error {
	_, err := i.roundTrip(AssertRequest{Module: module, Clauses: clauses, Position: pos})
	return err
}

// Eval rewrites t to normal form on the engine thread.
func (i *Interactive) Eval(t engine.Term) (engine.Term, error) {
	res, err := i.roundTrip(EvalRequest{Term: t})
	if err != nil {
		return nil, err
	}
	tr, ok := res.(TermResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T", res)
	}
	return tr.Term, nil
}

// Solve enumerates the solutions of goal on the engine thread.
func (i *Interactive) Solve(goal engine.Term, vars []NamedVar) ([]Solution, error) {
	res, err := i.roundTrip(SolveRequest{Goal: goal, Vars: vars})
	if err != nil {
		return nil, err
	}
	sr, ok := res.(SolutionsResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response %T", res)
	}
	return sr.Solutions, nil
}

// Close shuts the engine thread down by closing its request channel. It is
// idempotent, and later calls on the client report ErrDisconnected.
func (i *Interactive) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.requests != nil {
		close(i.requests)
		i.requests = nil
	}
}

// roundTrip holds the client lock for the whole send/receive exchange, so
// that concurrent callers cannot steal each other's responses.
func (i *Interactive) roundTrip(req Request) (Response, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	// After Close the requests channel is nil and never sends, and the
	// thread closes responses on exit, so the receive case decides; the
	// select cannot land on a closed channel send.
	select {
	case i.requests <- req:
	case <-i.responses:
		return nil, ErrDisconnected
	}
	res, ok := <-i.responses
	if !ok {
		return nil, ErrDisconnected
	}
	if e, ok := res.(ErrorResponse); ok {
		return nil, e.Err
	}
	return res, nil
}
