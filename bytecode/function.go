package bytecode

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
)

// Function represents a compiled function template: the function's name and
// parameter list plus a reference to the compiled body. It is immutable after
// creation. Function values appear in the constant table of the code block
// that defines them.
type Function struct {
	id         string
	name       string
	parameters []string
	code       *Code
}

// FunctionParams contains parameters for creating a new Function.
type FunctionParams struct {
	ID         string // Generated if empty
	Name       string
	Parameters []string
	Code       *Code
}

// NewFunction creates a new immutable Function from the given parameters.
// Input slices are copied to ensure immutability.
func NewFunction(params FunctionParams) *Function {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}
	return &Function{
		id:         id,
		name:       params.Name,
		parameters: copyStrings(params.Parameters),
		code:       params.Code,
	}
}

// ID returns the unique identifier for this function.
func (f *Function) ID() string {
	return f.id
}

// Name returns the function name.
func (f *Function) Name() string {
	return f.name
}

// Code returns the compiled bytecode for this function's body.
func (f *Function) Code() *Code {
	return f.code
}

// ParameterCount returns the number of parameters.
func (f *Function) ParameterCount() int {
	return len(f.parameters)
}

// Parameter returns the name of the parameter at the given index.
func (f *Function) Parameter(index int) string {
	return f.parameters[index]
}

// Parameters returns a copy of the parameter names in declaration order.
func (f *Function) Parameters() []string {
	return copyStrings(f.parameters)
}

// String returns a readable representation of the function signature.
func (f *Function) String() string {
	return fmt.Sprintf("ফাংশন %s(%s)", f.name, strings.Join(f.parameters, ", "))
}
