package mlatu

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mlatu-lang/mlatu/engine"
)

// Modules every engine thread declares at startup. Prelude clauses are
// searched before user clauses.
const (
	ModulePrelude = engine.Atom("prelude")
	ModuleUser    = engine.Atom("user")
)

// Request is a message to an engine thread. The concrete types are
// AssertRequest, EvalRequest and SolveRequest.
type Request interface {
	isRequest()
}

// AssertRequest adds clauses to a module.
type AssertRequest struct {
	Module   engine.Atom
	Clauses  []engine.Clause
	Position engine.Position
}

// EvalRequest rewrites a term to normal form.
type EvalRequest struct {
	Term engine.Term
}

// SolveRequest enumerates the solutions of a goal.
type SolveRequest struct {
	Goal engine.Term
	Vars []NamedVar
}

func (AssertRequest) isRequest() {}
func (EvalRequest) isRequest()   {}
func (SolveRequest) isRequest()  {}

// Response is the engine thread's answer to a Request. The concrete types
// are AckResponse, TermResponse, SolutionsResponse and ErrorResponse.
type Response interface {
	isResponse()
}

// AckResponse acknowledges a request that has no result value.
type AckResponse struct{}

// TermResponse carries the normal form of an evaluated term.
type TermResponse struct {
	Term engine.Term
}

// SolutionsResponse carries every solution of a solve request, in
// derivation order.
type SolutionsResponse struct {
	Solutions []Solution
}

// ErrorResponse reports a failed request. The thread stays up and serves
// the next request.
type ErrorResponse struct {
	Err error
}

func (AckResponse) isResponse()       {}
func (TermResponse) isResponse()      {}
func (SolutionsResponse) isResponse() {}
func (ErrorResponse) isResponse()     {}

// Bootstrap seeds the database before the thread serves its first request.
// The prelude and user modules already exist when it runs.
type Bootstrap func(db *engine.DB) error

// BootRules returns a bootstrap that compiles the given rule sets and
// asserts them: prelude rules into the prelude module, user rules into the
// user module, each in source order.
func BootRules(prelude, user []Rule) Bootstrap {
	return func(db *engine.DB) error {
		pc, err := Generate(prelude)
		if err != nil {
			return err
		}
		uc, err := Generate(user)
		if err != nil {
			return err
		}
		for _, c := range pc {
			if err := db.Assert(ModulePrelude, c, engine.Last); err != nil {
				return err
			}
		}
		for _, c := range uc {
			if err := db.Assert(ModuleUser, c, engine.Last); err != nil {
				return err
			}
		}
		return nil
	}
}

// Option configures an engine thread.
type Option func(*threadConfig)

type threadConfig struct {
	logger *zap.Logger
	policy engine.Policy
}

// WithLogger sets the thread's logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *threadConfig) { c.logger = l }
}

// WithPolicy sets the resolution policy of the thread's database.
func WithPolicy(p engine.Policy) Option {
	return func(c *threadConfig) { c.policy = p }
}

// Thread runs an engine thread: it owns a clause database that no other
// goroutine touches and serves requests strictly in arrival order, one
// response per request. A failing request yields an ErrorResponse and the
// thread keeps serving. Thread returns when requests is closed, or
// immediately with an error when bootstrap fails; responses is closed
// either way so clients observe the disconnection.
func Thread(boot Bootstrap, requests <-chan Request, responses chan<- Response, opts ...Option) error {
	defer close(responses)

	cfg := threadConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	db := &engine.DB{Policy: cfg.policy}
	db.NewModule(ModulePrelude)
	db.NewModule(ModuleUser)

	if boot != nil {
		if err := boot(db); err != nil {
			cfg.logger.Error("bootstrap failed", zap.Error(err))
			return fmt.Errorf("bootstrap: %w", err)
		}
	}

	for req := range requests {
		res := handle(db, req)
		if e, ok := res.(ErrorResponse); ok {
			cfg.logger.Warn("request failed", zap.String("request", fmt.Sprintf("%T", req)), zap.Error(e.Err))
		} else {
			cfg.logger.Debug("request served", zap.String("request", fmt.Sprintf("%T", req)))
		}
		responses <- res
	}
	return nil
}

// handle serves a single request. A panic while serving is contained here
// and turned into an ErrorResponse; the database may have been partially
// updated, but it is never left in a state that corrupts later requests.
func handle(db *engine.DB, req Request) (res Response) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResponse{Err: fmt.Errorf("engine: panic: %v", r)}
		}
	}()

	switch req := req.(type) {
	case AssertRequest:
		for _, c := range req.Clauses {
			if c.Head == nil {
				return ErrorResponse{Err: fmt.Errorf("assert: clause with no head")}
			}
			if err := db.Assert(req.Module, c, req.Position); err != nil {
				return ErrorResponse{Err: err}
			}
		}
		return AckResponse{}
	case EvalRequest:
		if req.Term == nil {
			return ErrorResponse{Err: fmt.Errorf("eval: no term")}
		}
		t, err := db.Normalize(context.Background(), req.Term, nil)
		if err != nil {
			return ErrorResponse{Err: err}
		}
		return TermResponse{Term: t}
	case SolveRequest:
		if req.Goal == nil {
			return ErrorResponse{Err: fmt.Errorf("solve: no goal")}
		}
		sols, err := solveAll(db, req.Goal, req.Vars)
		if err != nil {
			return ErrorResponse{Err: err}
		}
		return SolutionsResponse{Solutions: sols}
	default:
		return ErrorResponse{Err: fmt.Errorf("unknown request type %T", req)}
	}
}

func solveAll(db *engine.DB, goal engine.Term, vars []NamedVar) ([]Solution, error) {
	sols := Query(context.Background(), db, goal, vars)
	defer sols.Close()

	var (
		out  []Solution
		seen map[string]struct{}
	)
	if db.Policy.Dedup {
		seen = map[string]struct{}{}
	}
	for sols.Next() {
		sol := sols.Scan()
		if seen != nil {
			key := solutionKey(sol, vars)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, sol)
	}
	if err := sols.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func solutionKey(sol Solution, vars []NamedVar) string {
	var sb strings.Builder
	for _, nv := range vars {
		sb.WriteString(nv.Name)
		sb.WriteByte('=')
		sb.WriteString(sol[nv.Name].String())
		sb.WriteByte(';')
	}
	return sb.String()
}
