// Package bpl embeds the Bangla programming language in Go applications.
//
// Source code flows through a lexer, parser, and then one of two execution
// engines: Run compiles to bytecode and executes on the virtual machine,
// while Eval walks the syntax tree. The two engines agree on expression
// semantics; programs using যদি or যখন must use Eval, since control flow
// does not compile to bytecode.
package bpl

import (
	"context"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/compiler"
	"github.com/bpl-lang/bpl/evaluator"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/parser"
)

// Parse returns the syntax tree for the given source code. It is exposed for
// tooling that inspects programs without running them.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	cfg := newConfig(opts...)
	return parser.Parse(ctx, source, cfg.parserOpts()...)
}

// Compile parses and compiles source code into an executable Program.
// The returned Program is immutable and safe for concurrent use.
// Multiple goroutines can execute the same Program simultaneously.
func Compile(ctx context.Context, source string, opts ...Option) (*Program, error) {
	cfg := newConfig(opts...)
	program, err := parser.Parse(ctx, source, cfg.parserOpts()...)
	if err != nil {
		return nil, err
	}
	code, err := compiler.Compile(program, cfg.compilerOpts(source)...)
	if err != nil {
		return nil, err
	}
	return &Program{code: code, source: source, filename: cfg.filename}, nil
}

// Run executes source code and returns the resulting object. By default the
// source is compiled and run on the virtual machine; with WithEvaluator the
// tree-walk engine runs it instead.
func Run(ctx context.Context, source string, opts ...Option) (object.Object, error) {
	cfg := newConfig(opts...)
	if cfg.useEvaluator {
		return Eval(ctx, source, opts...)
	}
	program, err := Compile(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return program.Run(ctx, opts...)
}

// Eval parses and evaluates source code with the tree-walk engine. The
// result is the value of the program's last expression statement, or নিল.
func Eval(ctx context.Context, source string, opts ...Option) (object.Object, error) {
	cfg := newConfig(opts...)
	program, err := parser.Parse(ctx, source, cfg.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return evaluator.Eval(ctx, program, cfg.evaluatorOpts()...)
}
