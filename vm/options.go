package vm

import "github.com/bpl-lang/bpl/object"

// Option is a configuration function for a VirtualMachine.
type Option func(*VirtualMachine)

// WithGlobals provides named values that are visible to the top-level code
// and, through the copied globals of each call frame, to every function it
// calls.
func WithGlobals(globals map[string]object.Object) Option {
	return func(vm *VirtualMachine) {
		for name, value := range globals {
			vm.globals[name] = value
		}
	}
}

// WithBuiltins provides builtin functions by name. Host entries override
// same-named default builtins.
func WithBuiltins(entries map[string]object.Object) Option {
	return func(vm *VirtualMachine) {
		for name, value := range entries {
			vm.inputBuiltins[name] = value
		}
	}
}

// WithoutDefaultBuiltins disables the default builtin functions. Only
// builtins provided via WithBuiltins remain resolvable, and calls to দেখাও
// or প্রকার fail with a NameError unless the host supplies them.
func WithoutDefaultBuiltins() Option {
	return func(vm *VirtualMachine) {
		vm.noDefaultBuiltins = true
	}
}

// WithContextCheckInterval sets how many instructions run between context
// cancellation checks. The default is DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}
