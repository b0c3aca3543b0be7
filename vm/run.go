package vm

import (
	"context"

	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/object"
)

// Run executes the given compiled code in a new VirtualMachine and returns
// the result.
func Run(ctx context.Context, main *bytecode.Code, opts ...Option) (object.Object, error) {
	return New(main, opts...).Run(ctx)
}
