package object

import (
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Function is a compiled function value. It wraps the immutable
// bytecode.Function held in a constant table; the virtual machine invokes it
// by pushing a frame for the wrapped code.
type Function struct {
	fn *bytecode.Function
}

func (f *Function) Type() Type {
	return FUNCTION
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.fn.Name()
}

// Code returns the compiled body.
func (f *Function) Code() *bytecode.Code {
	return f.fn.Code()
}

// BytecodeFunction returns the wrapped immutable function.
func (f *Function) BytecodeFunction() *bytecode.Function {
	return f.fn
}

// ParameterCount returns the number of declared parameters.
func (f *Function) ParameterCount() int {
	return f.fn.ParameterCount()
}

// Parameter returns the parameter name at the given index.
func (f *Function) Parameter(index int) string {
	return f.fn.Parameter(index)
}

func (f *Function) Inspect() string {
	return f.fn.String()
}

func (f *Function) String() string {
	return f.fn.String()
}

func (f *Function) Interface() interface{} {
	return nil
}

// Equals reports whether the other object wraps the same compiled function.
// Two wrappers around one constant-table entry are equal.
func (f *Function) Equals(other Object) bool {
	otherFn, ok := other.(*Function)
	if !ok {
		return false
	}
	return f.fn == otherFn.fn
}

func (f *Function) IsTruthy() bool {
	return true
}

func (f *Function) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errors.TypeErrorf("unsupported operation for function: %v", opType)
}

func NewFunction(fn *bytecode.Function) *Function {
	return &Function{fn: fn}
}
