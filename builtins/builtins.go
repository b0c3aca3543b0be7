// Package builtins defines the default set of built-in functions.
package builtins

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
)

type config struct {
	output io.Writer
}

// Option is a configuration function for the default builtins.
type Option func(*config)

// WithOutput directs দেখাও output to the given writer instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.output = w
	}
}

// Defaults returns the default builtin functions keyed by name: দেখাও for
// printing and প্রকার for type inspection.
func Defaults(opts ...Option) map[string]object.Object {
	cfg := &config{output: os.Stdout}
	for _, opt := range opts {
		opt(cfg)
	}
	return map[string]object.Object{
		"দেখাও":  object.NewBuiltin("দেখাও", PrintTo(cfg.output)),
		"প্রকার": object.NewBuiltin("প্রকার", TypeOf),
	}
}

// PrintTo returns the দেখাও builtin writing to w. Each argument prints as
// its printable value, space separated, followed by a newline. Strings print
// raw, without quotes.
func PrintTo(w io.Writer) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = object.PrintableValue(arg)
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return nil, err
		}
		return object.Nil, nil
	}
}

// TypeOf implements প্রকার, returning the Bangla name of its argument's type.
func TypeOf(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, errors.ArgsErrorf("প্রকার() takes exactly 1 argument (%d given)", len(args))
	}
	return object.NewString(TypeName(args[0])), nil
}

// TypeName returns the Bangla name for an object's type. Function-like
// objects have no dedicated name and report অজানা.
func TypeName(obj object.Object) string {
	switch obj.Type() {
	case object.NIL:
		return "নিল"
	case object.BOOL:
		return "বুলীয়ান"
	case object.INT:
		return "ইন্ট"
	case object.FLOAT:
		return "ফ্লোট"
	case object.STRING:
		return "স্ট্রিং"
	default:
		return "অজানা"
	}
}
