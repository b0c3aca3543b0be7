package bpl

import (
	"bytes"
	"context"

	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/dis"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/vm"
)

// Program is the compiled representation of source code.
// It is immutable after creation and safe for concurrent use.
// Multiple goroutines can call Run on the same Program simultaneously.
type Program struct {
	code *bytecode.Code

	// Metadata
	source   string
	filename string
}

// NewProgram wraps a compiled code object, typically one loaded from a
// .bplc file via bytecode.Unmarshal.
func NewProgram(code *bytecode.Code) *Program {
	return &Program{
		code:     code,
		source:   code.Source(),
		filename: code.Filename(),
	}
}

// Source returns the original source code that was compiled.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with this program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// Code returns the compiled code object, for use with the vm, dis, and
// bytecode packages directly.
func (p *Program) Code() *bytecode.Code {
	return p.code
}

// Stats returns aggregate counts over the program and its nested functions.
func (p *Program) Stats() bytecode.Stats {
	return p.code.Stats()
}

// FunctionNames returns the names of the functions defined in this program.
func (p *Program) FunctionNames() []string {
	return p.code.FunctionNames()
}

// Disassemble returns a human-readable listing of the program's
// instructions, including those of nested functions.
func (p *Program) Disassemble() (string, error) {
	var buf bytes.Buffer
	if err := dis.Fprint(&buf, p.code); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Run executes the program on the virtual machine and returns the resulting
// object. Each call creates fresh runtime state, so concurrent calls do not
// interfere. WithEvaluator has no effect here; compiled programs always run
// on the virtual machine.
func (p *Program) Run(ctx context.Context, opts ...Option) (object.Object, error) {
	cfg := newConfig(opts...)
	return vm.Run(ctx, p.code, cfg.vmOpts()...)
}
