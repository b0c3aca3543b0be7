package bytecode

import (
	"strings"

	"github.com/bpl-lang/bpl/op"
	"github.com/gofrs/uuid"
)

// Code represents a compiled code block (program or function body).
// It is immutable after creation and safe for concurrent use.
type Code struct {
	id       string
	name     string
	children []*Code
	parent   *Code // nil for the root block

	instructions []op.Code
	constants    []any
	names        []string
	paramCount   int
	source       string
	filename     string

	// Source map: one location per instruction for error reporting
	locations []SourceLocation
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	ID           string // Generated if empty
	Name         string
	Children     []*Code // Pre-built child code blocks
	Instructions []op.Code
	Constants    []any
	Names        []string
	ParamCount   int
	Source       string
	Filename     string
	Locations    []SourceLocation
}

// NewCode creates a new immutable Code from the given parameters.
// Input slices are copied to ensure immutability. The Code is fully
// immutable after construction; there are no mutation methods.
func NewCode(params CodeParams) *Code {
	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV4()).String()
	}

	// Copy the children slice (children themselves are already immutable)
	var children []*Code
	if len(params.Children) > 0 {
		children = make([]*Code, len(params.Children))
		copy(children, params.Children)
	}

	code := &Code{
		id:           id,
		name:         params.Name,
		children:     children,
		instructions: copyInstructions(params.Instructions),
		constants:    copyAny(params.Constants),
		names:        copyStrings(params.Names),
		paramCount:   params.ParamCount,
		source:       params.Source,
		filename:     params.Filename,
		locations:    copyLocations(params.Locations),
	}

	// Set parent reference on all children for source lookups
	for _, child := range code.children {
		child.parent = code
	}

	return code
}

// ID returns the unique identifier for this code block.
func (c *Code) ID() string {
	return c.id
}

// Name returns the name of this code block. The root block of a program is
// named "__main__"; function blocks carry the function name.
func (c *Code) Name() string {
	return c.name
}

// ChildCount returns the number of child code blocks.
func (c *Code) ChildCount() int {
	return len(c.children)
}

// ChildAt returns the child code block at the given index.
func (c *Code) ChildAt(index int) *Code {
	return c.children[index]
}

// InstructionCount returns the number of instruction slots. Operands occupy
// slots of their own, so this is not the same as the operation count.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction slot at the given index.
func (c *Code) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// ConstantCount returns the number of constants.
func (c *Code) ConstantCount() int {
	return len(c.constants)
}

// ConstantAt returns the constant at the given index. Constants are Go
// values: int64, float64, string, bool, nil, or *Function.
func (c *Code) ConstantAt(index int) any {
	return c.constants[index]
}

// NameCount returns the number of interned names.
func (c *Code) NameCount() int {
	return len(c.names)
}

// NameAt returns the interned name at the given index. For a function body
// the first ParamCount() names are the parameters in declaration order.
func (c *Code) NameAt(index int) string {
	return c.names[index]
}

// ParamCount returns the number of parameters for a function body, or zero
// for a program's root block.
func (c *Code) ParamCount() int {
	return c.paramCount
}

// Source returns the source code for this block.
func (c *Code) Source() string {
	return c.source
}

// Filename returns the source filename.
func (c *Code) Filename() string {
	return c.filename
}

// LocationAt returns the source location for the instruction slot at the
// given index.
func (c *Code) LocationAt(ip int) SourceLocation {
	if ip < 0 || ip >= len(c.locations) {
		return SourceLocation{}
	}
	return c.locations[ip]
}

// LocationCount returns the number of recorded source locations.
func (c *Code) LocationCount() int {
	return len(c.locations)
}

// Flatten returns this code and all descendants in a flat slice.
// The returned slice is newly allocated, not internal state.
func (c *Code) Flatten() []*Code {
	var codes []*Code
	codes = append(codes, c)
	for _, child := range c.children {
		codes = append(codes, child.Flatten()...)
	}
	return codes
}

// GetSourceLine returns the source code line at the given 1-based line
// number. For nested functions, the lookup uses the root code's source so
// that line numbers match the original file.
func (c *Code) GetSourceLine(lineNum int) string {
	if lineNum < 1 {
		return ""
	}
	source := c.getRootSource()
	if source == "" {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (c *Code) getRootSource() string {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	return root.source
}

// FunctionNames returns the names of all functions defined in this code.
func (c *Code) FunctionNames() []string {
	var names []string
	for i := 0; i < c.ConstantCount(); i++ {
		if fn, ok := c.ConstantAt(i).(*Function); ok {
			if name := fn.Name(); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// Stats returns statistics about this code block.
func (c *Code) Stats() Stats {
	functionCount := 0
	for i := 0; i < c.ConstantCount(); i++ {
		if _, ok := c.ConstantAt(i).(*Function); ok {
			functionCount++
		}
	}
	return Stats{
		InstructionCount: c.InstructionCount(),
		ConstantCount:    c.ConstantCount(),
		FunctionCount:    functionCount,
		SourceBytes:      len(c.source),
	}
}
