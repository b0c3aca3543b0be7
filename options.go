package bpl

import (
	"github.com/bpl-lang/bpl/compiler"
	"github.com/bpl-lang/bpl/evaluator"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/parser"
	"github.com/bpl-lang/bpl/vm"
)

// Option describes a function used to configure an evaluation.
type Option func(*config)

type config struct {
	filename          string
	globals           map[string]object.Object
	builtins          map[string]object.Object
	noDefaultBuiltins bool
	useEvaluator      bool
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		globals:  map[string]object.Object{},
		builtins: map[string]object.Object{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// WithGlobals provides named values that are made available to the program.
// This option is additive, so multiple WithGlobals options may be supplied.
// If the same key is supplied multiple times, the last supplied value is used.
func WithGlobals(globals map[string]object.Object) Option {
	return func(cfg *config) {
		for name, value := range globals {
			cfg.globals[name] = value
		}
	}
}

// WithGlobal supplies a single named global value.
func WithGlobal(name string, value object.Object) Option {
	return func(cfg *config) {
		cfg.globals[name] = value
	}
}

// WithBuiltins provides builtin functions by name. Entries override
// same-named default builtins, so this also serves to redirect দেখাও output.
func WithBuiltins(entries map[string]object.Object) Option {
	return func(cfg *config) {
		for name, value := range entries {
			cfg.builtins[name] = value
		}
	}
}

// WithoutDefaultBuiltins disables দেখাও and প্রকার. Only builtins supplied
// via WithBuiltins remain resolvable.
func WithoutDefaultBuiltins() Option {
	return func(cfg *config) {
		cfg.noDefaultBuiltins = true
	}
}

// WithFilename sets the filename for the source code being evaluated.
// This is used in error messages.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}

// WithEvaluator makes Run execute via the tree-walk evaluator instead of
// compiling to bytecode. Control flow (যদি, যখন) runs only on that path.
func WithEvaluator() Option {
	return func(cfg *config) {
		cfg.useEvaluator = true
	}
}

func (cfg *config) parserOpts() []parser.Option {
	var opts []parser.Option
	if cfg.filename != "" {
		opts = append(opts, parser.WithFilename(cfg.filename))
	}
	return opts
}

func (cfg *config) compilerOpts(source string) []compiler.Option {
	opts := []compiler.Option{compiler.WithSource(source)}
	if cfg.filename != "" {
		opts = append(opts, compiler.WithFilename(cfg.filename))
	}
	return opts
}

func (cfg *config) vmOpts() []vm.Option {
	var opts []vm.Option
	if len(cfg.globals) > 0 {
		opts = append(opts, vm.WithGlobals(cfg.globals))
	}
	if len(cfg.builtins) > 0 {
		opts = append(opts, vm.WithBuiltins(cfg.builtins))
	}
	if cfg.noDefaultBuiltins {
		opts = append(opts, vm.WithoutDefaultBuiltins())
	}
	return opts
}

func (cfg *config) evaluatorOpts() []evaluator.Option {
	var opts []evaluator.Option
	if len(cfg.globals) > 0 {
		opts = append(opts, evaluator.WithGlobals(cfg.globals))
	}
	if len(cfg.builtins) > 0 {
		opts = append(opts, evaluator.WithBuiltins(cfg.builtins))
	}
	if cfg.noDefaultBuiltins {
		opts = append(opts, evaluator.WithoutDefaultBuiltins())
	}
	return opts
}
