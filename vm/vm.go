// Package vm provides a stack-based virtual machine that executes compiled
// code objects.
//
// Each call gets its own frame with a private value stack, a locals map, and
// a shallow copy of the caller's globals. Names resolve through locals, then
// globals, then builtins. The machine has no jump instructions; code objects
// are straight-line instruction sequences produced by the compiler.
package vm

import (
	"context"
	"fmt"
	"sort"

	"github.com/bpl-lang/bpl/builtins"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/op"
)

// DefaultContextCheckInterval is the number of instructions executed between
// context cancellation checks.
const DefaultContextCheckInterval = 1000

// VirtualMachine executes a compiled code object. Create one machine per
// run.
type VirtualMachine struct {
	main              *bytecode.Code
	globals           map[string]object.Object
	builtins          map[string]object.Object
	inputBuiltins     map[string]object.Object
	noDefaultBuiltins bool

	// Suspended caller frames, innermost last.
	frames []*frame

	// The active frame.
	frame *frame

	contextCheckInterval int
}

// New creates a VirtualMachine for the given compiled code.
func New(main *bytecode.Code, opts ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		main:                 main,
		globals:              map[string]object.Object{},
		inputBuiltins:        map[string]object.Object{},
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.noDefaultBuiltins {
		vm.builtins = vm.inputBuiltins
	} else {
		// Host-provided builtins sit over the defaults.
		vm.builtins = builtins.Defaults()
		for name, value := range vm.inputBuiltins {
			vm.builtins[name] = value
		}
	}
	return vm
}

// Run executes the code to completion and returns its result. The top-level
// result is the value given to the final return instruction, or nil when
// the instructions are exhausted.
func (vm *VirtualMachine) Run(ctx context.Context) (object.Object, error) {
	vm.frames = vm.frames[:0]
	vm.frame = newFrame(vm.main, map[string]object.Object{}, vm.globals)
	return vm.eval(ctx)
}

func (vm *VirtualMachine) eval(ctx context.Context) (object.Object, error) {
	checkInterval := vm.contextCheckInterval
	if checkInterval <= 0 {
		checkInterval = DefaultContextCheckInterval
	}
	var steps int
	for {
		steps++
		if steps%checkInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		frame := vm.frame
		code := frame.code
		if frame.ip >= code.InstructionCount() {
			// Instructions exhausted without an explicit return
			result, done := vm.returnFromFrame(object.Nil)
			if done {
				return result, nil
			}
			continue
		}
		ip := frame.ip
		opcode := code.InstructionAt(ip)
		frame.ip++
		switch opcode {
		case op.Nop:
		case op.LoadConst:
			index := vm.fetchOperand()
			value, err := constantObject(code.ConstantAt(int(index)))
			if err != nil {
				return nil, vm.locatedError(err, ip)
			}
			frame.push(value)
		case op.LoadName:
			index := vm.fetchOperand()
			name := code.NameAt(int(index))
			value, found := frame.locals[name]
			if !found {
				value, found = frame.globals[name]
			}
			if !found {
				value, found = vm.builtins[name]
			}
			if !found {
				return nil, vm.nameError(name, ip)
			}
			frame.push(value)
		case op.StoreName:
			index := vm.fetchOperand()
			frame.locals[code.NameAt(int(index))] = frame.pop()
		case op.BinaryOp:
			operand := vm.fetchOperand()
			right := frame.pop()
			left := frame.pop()
			result, err := object.BinaryOp(op.BinaryOpType(operand), left, right)
			if err != nil {
				return nil, vm.locatedError(err, ip)
			}
			frame.push(result)
		case op.CompareOp:
			operand := vm.fetchOperand()
			right := frame.pop()
			left := frame.pop()
			result, err := object.Compare(op.CompareOpType(operand), left, right)
			if err != nil {
				return nil, vm.locatedError(err, ip)
			}
			frame.push(result)
		case op.UnaryNot:
			value := frame.pop()
			frame.push(object.NewBool(!value.IsTruthy()))
		case op.PopTop:
			frame.pop()
		case op.Call:
			argc := int(vm.fetchOperand())
			args := make([]object.Object, argc)
			for i := argc - 1; i >= 0; i-- {
				args[i] = frame.pop()
			}
			switch callee := frame.pop().(type) {
			case *object.Function:
				vm.pushFrame(callee, args)
			case *object.Builtin:
				result, err := callee.Call(ctx, args...)
				if err != nil {
					return nil, vm.locatedError(err, ip)
				}
				frame.push(result)
			default:
				err := errors.EvalErrorf("Attempt to call non-callable").WithCode(errors.E3004)
				return nil, vm.locatedError(err, ip)
			}
		case op.ReturnValue:
			result, done := vm.returnFromFrame(frame.popOrNil())
			if done {
				return result, nil
			}
		default:
			err := errors.EvalErrorf("Unknown opcode: %s", opcodeName(opcode)).WithCode(errors.E3006)
			return nil, vm.locatedError(err, ip)
		}
	}
}

// fetchOperand reads the operand slot following the current opcode and
// advances the instruction pointer past it.
func (vm *VirtualMachine) fetchOperand() uint16 {
	frame := vm.frame
	operand := frame.code.InstructionAt(frame.ip)
	frame.ip++
	return uint16(operand)
}

// pushFrame suspends the active frame and activates a new one running fn.
// The callee sees a shallow copy of the caller's globals, so definitions
// made inside the function stay local to it.
func (vm *VirtualMachine) pushFrame(fn *object.Function, args []object.Object) {
	caller := vm.frame
	globals := make(map[string]object.Object, len(caller.globals))
	for name, value := range caller.globals {
		globals[name] = value
	}
	// Bind the first min(len(args), paramCount) parameters positionally.
	// Extra arguments are dropped and missing parameters stay unbound;
	// reading an unbound parameter raises a NameError.
	locals := map[string]object.Object{}
	n := fn.ParameterCount()
	if len(args) < n {
		n = len(args)
	}
	for i := 0; i < n; i++ {
		locals[fn.Parameter(i)] = args[i]
	}
	vm.frames = append(vm.frames, caller)
	vm.frame = newFrame(fn.Code(), locals, globals)
}

// returnFromFrame finishes the active frame with the given result. It
// reports done when the top-level frame returns; otherwise the caller frame
// resumes with the result pushed on its stack.
func (vm *VirtualMachine) returnFromFrame(result object.Object) (object.Object, bool) {
	if len(vm.frames) == 0 {
		return result, true
	}
	caller := vm.frames[len(vm.frames)-1]
	vm.frames = vm.frames[:len(vm.frames)-1]
	vm.frame = caller
	caller.push(result)
	return nil, false
}

// constantObject converts a constant-table entry to its runtime object.
func constantObject(value any) (object.Object, error) {
	switch value := value.(type) {
	case nil:
		return object.Nil, nil
	case bool:
		return object.NewBool(value), nil
	case int64:
		return object.NewInt(value), nil
	case float64:
		return object.NewFloat(value), nil
	case string:
		return object.NewString(value), nil
	case *bytecode.Function:
		return object.NewFunction(value), nil
	default:
		return nil, errors.EvalErrorf("unsupported constant type %T", value)
	}
}

func (vm *VirtualMachine) nameError(name string, ip int) error {
	err := fmt.Errorf("NameError: %s", name)
	return errors.NewNameError(err, name, vm.knownNames()).WithLocation(vm.location(ip))
}

// knownNames lists every name visible to the active frame, for did-you-mean
// suggestions on name errors.
func (vm *VirtualMachine) knownNames() []string {
	seen := map[string]bool{}
	var names []string
	add := func(m map[string]object.Object) {
		for name := range m {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	add(vm.frame.locals)
	add(vm.frame.globals)
	add(vm.builtins)
	sort.Strings(names)
	return names
}

// location resolves the source location recorded for the instruction at ip
// in the active frame.
func (vm *VirtualMachine) location(ip int) errors.SourceLocation {
	code := vm.frame.code
	loc := code.LocationAt(ip)
	return errors.SourceLocation{
		Filename: code.Filename(),
		Line:     loc.Line,
		Column:   loc.Column,
		Source:   code.GetSourceLine(loc.Line),
	}
}

// locatedError attaches the failing instruction's source location to a
// runtime error, wrapping error types that cannot carry one themselves.
func (vm *VirtualMachine) locatedError(err error, ip int) error {
	loc := vm.location(ip)
	switch err := err.(type) {
	case *errors.EvalError:
		return err.WithLocation(loc)
	case *errors.NameError:
		return err.WithLocation(loc)
	}
	wrapped := errors.NewEvalError(err).WithLocation(loc)
	switch err.(type) {
	case *errors.TypeError:
		wrapped.WithCode(errors.E3002)
	case *errors.ArgsError:
		wrapped.WithCode(errors.E3005)
	}
	return wrapped
}

func opcodeName(opcode op.Code) string {
	if name := op.GetInfo(opcode).Name; name != "" {
		return name
	}
	return fmt.Sprintf("%d", opcode)
}
