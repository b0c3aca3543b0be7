package object

import (
	"fmt"
	"strings"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
)

// Closure is a tree-walk function value: the function's parameters and body
// plus the environment captured at the point of definition. A call runs the
// body in a child of the captured environment, which is what gives a nested
// function access to its defining scope after that scope has returned.
type Closure struct {
	name   string
	params []string
	body   *ast.Block
	env    *Environment
}

func (c *Closure) Type() Type {
	return CLOSURE
}

// Name returns the function name.
func (c *Closure) Name() string {
	return c.name
}

// ParameterCount returns the number of declared parameters.
func (c *Closure) ParameterCount() int {
	return len(c.params)
}

// Parameter returns the parameter name at the given index.
func (c *Closure) Parameter(index int) string {
	return c.params[index]
}

// Body returns the function body.
func (c *Closure) Body() *ast.Block {
	return c.body
}

// Env returns the environment captured at the point of definition.
func (c *Closure) Env() *Environment {
	return c.env
}

func (c *Closure) Inspect() string {
	return fmt.Sprintf("ফাংশন %s(%s)", c.name, strings.Join(c.params, ", "))
}

func (c *Closure) String() string {
	return c.Inspect()
}

func (c *Closure) Interface() interface{} {
	return nil
}

func (c *Closure) Equals(other Object) bool {
	otherClosure, ok := other.(*Closure)
	if !ok {
		return false
	}
	return c == otherClosure
}

func (c *Closure) IsTruthy() bool {
	return true
}

func (c *Closure) RunOperation(opType op.BinaryOpType, right Object) (Object, error) {
	return nil, errors.TypeErrorf("unsupported operation for function: %v", opType)
}

// NewClosure creates a function value that captures the given environment.
func NewClosure(name string, params []string, body *ast.Block, env *Environment) *Closure {
	return &Closure{name: name, params: params, body: body, env: env}
}
