package bpl

import (
	"context"

	"github.com/bpl-lang/bpl/evaluator"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/parser"
)

// Session provides stateful evaluation for REPL-style interaction.
// Unlike Run and Eval, which create fresh state on each call, a Session
// keeps one environment alive across Eval calls, so variables and functions
// defined earlier remain visible later. Sessions use the tree-walk engine,
// which supports the full statement set including যদি and যখন.
type Session struct {
	eval *evaluator.Evaluator
	cfg  *config
}

// NewSession creates a Session with the given options.
func NewSession(opts ...Option) *Session {
	cfg := newConfig(opts...)
	return &Session{
		eval: evaluator.New(cfg.evaluatorOpts()...),
		cfg:  cfg,
	}
}

// Eval evaluates source code within this session's environment and returns
// the value of its last expression statement, or নিল.
func (s *Session) Eval(ctx context.Context, source string) (object.Object, error) {
	program, err := parser.Parse(ctx, source, s.cfg.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return s.eval.Eval(ctx, program)
}
