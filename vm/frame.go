package vm

import (
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/object"
)

// frame is one function activation. Each frame owns its value stack, its
// local variables, and its view of the globals.
type frame struct {
	code    *bytecode.Code
	locals  map[string]object.Object
	globals map[string]object.Object
	stack   []object.Object
	ip      int
}

func newFrame(code *bytecode.Code, locals, globals map[string]object.Object) *frame {
	return &frame{
		code:    code,
		locals:  locals,
		globals: globals,
		stack:   make([]object.Object, 0, 8),
	}
}

func (f *frame) push(obj object.Object) {
	f.stack = append(f.stack, obj)
}

// pop removes and returns the top of the stack. The compiler maintains
// stack discipline, so the stack is never empty here.
func (f *frame) pop() object.Object {
	n := len(f.stack) - 1
	obj := f.stack[n]
	f.stack = f.stack[:n]
	return obj
}

// popOrNil removes and returns the top of the stack, or Nil when the stack
// is empty. Return instructions use this so that a return from an empty
// stack yields nil.
func (f *frame) popOrNil() object.Object {
	if len(f.stack) == 0 {
		return object.Nil
	}
	return f.pop()
}
