package mlatu

import (
	"errors"
	"fmt"

	"github.com/mlatu-lang/mlatu/engine"
)

// ErrDisconnected is reported by Interactive calls after the engine thread
// has exited.
var ErrDisconnected = errors.New("engine thread disconnected")

// ParseError is a syntax error with its source position.
type ParseError struct {
	Line, Column int
	Message      string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// CodegenError reports a rule whose replacement uses a variable that does
// not occur in the pattern.
type CodegenError struct {
	RuleIndex int
	Variable  engine.Variable
}

func (e *CodegenError) Error() string {
	return fmt.Sprintf("rule %d: variable %s does not occur in the pattern", e.RuleIndex+1, e.Variable)
}

// DecodeError reports a file whose contents are not valid rule data.
type DecodeError struct {
	Filename string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed rule data in %s", e.Filename)
}
