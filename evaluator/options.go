package evaluator

import "github.com/bpl-lang/bpl/object"

// Option is a configuration function for an Evaluator.
type Option func(*Evaluator)

// WithGlobals defines named values in the global environment before
// evaluation starts.
func WithGlobals(globals map[string]object.Object) Option {
	return func(e *Evaluator) {
		for name, value := range globals {
			e.globalEnv.Define(name, value)
		}
	}
}

// WithBuiltins provides builtin functions by name. Host entries override
// same-named default builtins.
func WithBuiltins(entries map[string]object.Object) Option {
	return func(e *Evaluator) {
		for name, value := range entries {
			e.builtins[name] = value
		}
	}
}

// WithoutDefaultBuiltins disables the default builtin functions. Only
// builtins provided via WithBuiltins remain resolvable.
func WithoutDefaultBuiltins() Option {
	return func(e *Evaluator) {
		e.noDefaultBuiltins = true
	}
}
