// Package compiler is used to compile an abstract syntax tree (AST) into its
// corresponding bytecode.
//
// The compiler is a single recursive pass over the AST. Straight-line
// programs compile directly: literals become constant-table loads, names
// become LOAD_NAME and STORE_NAME with an operand indexing the code object's
// name table, and operators become BINARY_OP and COMPARE_OP instructions.
// Each named function compiles into its own child code object, wrapped in a
// function constant and stored under the function's name.
//
// Control flow statements (যদি and যখন) are not compiled. Code containing
// them must run on the tree-walking evaluator instead, and the compiler
// reports an error pointing there.
package compiler

import (
	"fmt"
	"math"
	"strings"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
	"github.com/bpl-lang/bpl/token"
)

// MaxArgs is the maximum number of arguments a function may accept.
const MaxArgs = 255

// Compiler compiles AST nodes into bytecode. One Compiler builds one code
// object. Function definitions are compiled by a nested Compiler whose
// result is attached as a child code object.
type Compiler struct {

	// Name of the code being compiled. The top level is "__main__" and
	// function bodies carry the function's name.
	name string

	// Number of parameters for a function body, zero at the top level.
	paramCount int

	// Filename of the source, if known.
	filename string

	// Full source text, used to attach source lines to compile errors.
	source string

	// Accumulated instructions.
	instructions []op.Code

	// Constant table and an index for deduplication. The map key is the
	// constant itself, so deduplication is type aware: the int 1 and the
	// float 1.0 occupy separate slots.
	constants   []any
	constantIdx map[any]uint16

	// Name table and an index for interning.
	names   []string
	nameIdx map[string]uint16

	// One source location per instruction slot.
	locations []bytecode.SourceLocation

	// Code objects of compiled function bodies.
	children []*bytecode.Code

	// Set when a table overflows, where returning an error directly would
	// be awkward. Checked before the code object is built.
	failure error

	// The AST node currently being compiled, for source location tracking.
	currentNode ast.Node
}

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the filename recorded on the compiled code and used in
// compile error messages.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// WithSource sets the source text recorded on the compiled code. Compile
// errors then include the offending source line.
func WithSource(source string) Option {
	return func(c *Compiler) {
		c.source = source
	}
}

// Compile the given AST node and return the compiled code object.
func Compile(node ast.Node, opts ...Option) (*bytecode.Code, error) {
	c := New(opts...)
	return c.Compile(node)
}

// New creates a Compiler with the given options. A Compiler builds a single
// code object; create a new one for each compilation.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		name:        "__main__",
		constantIdx: map[any]uint16{},
		nameIdx:     map[string]uint16{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile the given AST node and return the compiled code object. The node
// is usually an *ast.Program. Compiling a single expression also works and
// yields a code object that returns the expression's value.
func (c *Compiler) Compile(node ast.Node) (*bytecode.Code, error) {
	if err := c.compile(node); err != nil {
		return nil, err
	}
	if c.failure != nil {
		return nil, c.failure
	}
	if _, ok := node.(*ast.Program); !ok {
		c.emit(op.ReturnValue)
	}
	return c.code(), nil
}

// code builds the immutable code object from the accumulated state.
func (c *Compiler) code() *bytecode.Code {
	return bytecode.NewCode(bytecode.CodeParams{
		Name:         c.name,
		Children:     c.children,
		Instructions: c.instructions,
		Constants:    c.constants,
		Names:        c.names,
		ParamCount:   c.paramCount,
		Source:       c.source,
		Filename:     c.filename,
		Locations:    c.locations,
	})
}

func (c *Compiler) compile(node ast.Node) error {
	c.currentNode = node
	switch node := node.(type) {
	case *ast.Program:
		return c.compileProgram(node)
	case *ast.Nil:
		c.emit(op.LoadConst, c.constant(nil))
	case *ast.Bool:
		c.emit(op.LoadConst, c.constant(node.Value))
	case *ast.Int:
		c.emit(op.LoadConst, c.constant(node.Value))
	case *ast.Float:
		c.emit(op.LoadConst, c.constant(node.Value))
	case *ast.String:
		c.emit(op.LoadConst, c.constant(node.Value))
	case *ast.Ident:
		c.emit(op.LoadName, c.internName(node.Name))
	case *ast.Assign:
		return c.compileAssign(node)
	case *ast.Infix:
		return c.compileInfix(node)
	case *ast.Prefix:
		return c.compilePrefix(node)
	case *ast.Call:
		return c.compileCall(node)
	case *ast.Return:
		return c.compileReturn(node)
	case *ast.Func:
		return c.compileFunc(node)
	case *ast.If:
		return c.unsupportedStatement("যদি", node.Pos())
	case *ast.While:
		return c.unsupportedStatement("যখন", node.Pos())
	default:
		return c.formatError(errors.E2004,
			fmt.Sprintf("no compiler for node type %T", node), node.Pos())
	}
	return nil
}

func (c *Compiler) compileProgram(node *ast.Program) error {
	for _, stmt := range node.Stmts {
		if err := c.compileStatement(stmt); err != nil {
			return err
		}
	}
	// An explicit return halts the machine. The stack is empty here, so
	// the program's return value is nil.
	c.emit(op.ReturnValue)
	return nil
}

// compileStatement compiles one statement-position node. The value of a bare
// expression statement is discarded.
func (c *Compiler) compileStatement(node ast.Node) error {
	if err := c.compile(node); err != nil {
		return err
	}
	if isExpr(node) {
		c.emit(op.PopTop)
	}
	return nil
}

func (c *Compiler) compileAssign(node *ast.Assign) error {
	if node.Name == nil {
		return c.formatError(errors.E2003,
			"Only simple identifier assignments supported", node.OpPos)
	}
	if err := c.compile(node.Value); err != nil {
		return err
	}
	c.currentNode = node
	c.emit(op.StoreName, c.internName(node.Name.Name))
	return nil
}

func (c *Compiler) compileInfix(node *ast.Infix) error {
	if err := c.compile(node.X); err != nil {
		return err
	}
	if err := c.compile(node.Y); err != nil {
		return err
	}
	c.currentNode = node
	switch node.Op {
	case "+":
		c.emit(op.BinaryOp, uint16(op.Add))
	case "-":
		c.emit(op.BinaryOp, uint16(op.Subtract))
	case "*":
		c.emit(op.BinaryOp, uint16(op.Multiply))
	case "/":
		c.emit(op.BinaryOp, uint16(op.Divide))
	case "%":
		c.emit(op.BinaryOp, uint16(op.Modulo))
	case "এবং":
		// Both operands are already on the stack, so এবং and বা do not
		// short-circuit in compiled code.
		c.emit(op.BinaryOp, uint16(op.And))
	case "বা":
		c.emit(op.BinaryOp, uint16(op.Or))
	case "<":
		c.emit(op.CompareOp, uint16(op.LessThan))
	case "<=":
		c.emit(op.CompareOp, uint16(op.LessThanOrEqual))
	case "==":
		c.emit(op.CompareOp, uint16(op.Equal))
	case "!=":
		c.emit(op.CompareOp, uint16(op.NotEqual))
	case ">":
		c.emit(op.CompareOp, uint16(op.GreaterThan))
	case ">=":
		c.emit(op.CompareOp, uint16(op.GreaterThanOrEqual))
	default:
		return c.formatError(errors.E2002,
			fmt.Sprintf("Unsupported binary op: %s", node.Op), node.OpPos)
	}
	return nil
}

func (c *Compiler) compilePrefix(node *ast.Prefix) error {
	if node.Op != "না" {
		return c.formatError(errors.E2002,
			fmt.Sprintf("Unsupported unary op: %s", node.Op), node.OpPos)
	}
	if err := c.compile(node.X); err != nil {
		return err
	}
	c.currentNode = node
	c.emit(op.UnaryNot)
	return nil
}

func (c *Compiler) compileCall(node *ast.Call) error {
	argc := len(node.Args)
	if argc > MaxArgs {
		return c.formatError(errors.E2002,
			fmt.Sprintf("call with %d arguments exceeds the limit of %d", argc, MaxArgs),
			node.Pos())
	}
	if err := c.compile(node.Fun); err != nil {
		return err
	}
	for _, arg := range node.Args {
		if err := c.compile(arg); err != nil {
			return err
		}
	}
	c.currentNode = node
	c.emit(op.Call, uint16(argc))
	return nil
}

func (c *Compiler) compileReturn(node *ast.Return) error {
	if node.Value != nil {
		if err := c.compile(node.Value); err != nil {
			return err
		}
	} else {
		c.emit(op.LoadConst, c.constant(nil))
	}
	c.currentNode = node
	c.emit(op.ReturnValue)
	return nil
}

func (c *Compiler) compileFunc(node *ast.Func) error {
	if len(node.Params) > MaxArgs {
		return c.formatError(errors.E2002,
			fmt.Sprintf("function with %d parameters exceeds the limit of %d",
				len(node.Params), MaxArgs),
			node.Pos())
	}
	functionName := node.Name.Name
	params := make([]string, len(node.Params))
	for i, p := range node.Params {
		params[i] = p.Name
	}

	// The function body compiles into its own code object. Parameter names
	// are interned first, in declaration order, so a frame can bind
	// arguments by name index.
	child := New(WithFilename(c.filename), WithSource(c.source))
	child.name = functionName
	child.paramCount = len(params)
	for _, param := range params {
		child.internName(param)
	}
	for _, stmt := range node.Body.Stmts {
		if err := child.compileStatement(stmt); err != nil {
			return err
		}
	}
	// Falling off the end of a function returns nil.
	child.currentNode = node
	child.emit(op.ReturnValue)
	if child.failure != nil {
		return child.failure
	}
	// Only the root code object records the source text. Children resolve
	// source lines through their parent.
	child.source = ""
	code := child.code()
	c.children = append(c.children, code)

	fn := bytecode.NewFunction(bytecode.FunctionParams{
		Name:       functionName,
		Parameters: params,
		Code:       code,
	})
	c.currentNode = node
	c.emit(op.LoadConst, c.constant(fn))
	c.emit(op.StoreName, c.internName(functionName))
	return nil
}

// emit appends an instruction with the given operands and returns its
// offset. The current node's position is recorded for each instruction slot.
func (c *Compiler) emit(opcode op.Code, operands ...uint16) int {
	inst := makeInstruction(opcode, operands...)
	offset := len(c.instructions)
	c.instructions = append(c.instructions, inst...)
	loc := c.currentLocation()
	for range inst {
		c.locations = append(c.locations, loc)
	}
	return offset
}

func makeInstruction(opcode op.Code, operands ...uint16) []op.Code {
	info := op.GetInfo(opcode)
	if len(operands) != info.OperandCount {
		panic("compile error: wrong operand count")
	}
	instruction := make([]op.Code, 1+info.OperandCount)
	instruction[0] = opcode
	for i, operand := range operands {
		instruction[1+i] = op.Code(operand)
	}
	return instruction
}

func (c *Compiler) currentLocation() bytecode.SourceLocation {
	if c.currentNode == nil {
		return bytecode.SourceLocation{}
	}
	pos := c.currentNode.Pos()
	return bytecode.SourceLocation{
		Line:   pos.LineNumber(),
		Column: pos.ColumnNumber(),
	}
}

// constant interns a constant and returns its index in the constant table.
func (c *Compiler) constant(value any) uint16 {
	if index, ok := c.constantIdx[value]; ok {
		return index
	}
	if len(c.constants) >= math.MaxUint16 {
		c.failure = fmt.Errorf("compile error: number of constants exceeded limits")
		return 0
	}
	c.constants = append(c.constants, value)
	index := uint16(len(c.constants) - 1)
	c.constantIdx[value] = index
	return index
}

// internName interns a name and returns its index in the name table.
func (c *Compiler) internName(name string) uint16 {
	if index, ok := c.nameIdx[name]; ok {
		return index
	}
	if len(c.names) >= math.MaxUint16 {
		c.failure = fmt.Errorf("compile error: number of names exceeded limits")
		return 0
	}
	c.names = append(c.names, name)
	index := uint16(len(c.names) - 1)
	c.nameIdx[name] = index
	return index
}

func (c *Compiler) unsupportedStatement(keyword string, pos token.Position) error {
	return c.formatError(errors.E2001,
		fmt.Sprintf("unsupported statement in bytecode: %s (use the evaluator)", keyword), pos)
}

func (c *Compiler) formatError(code errors.ErrorCode, msg string, pos token.Position) error {
	return &errors.CompileError{
		Code:       code,
		Message:    msg,
		Filename:   c.filename,
		Line:       pos.LineNumber(),
		Column:     pos.ColumnNumber(),
		SourceLine: c.getSourceLine(pos.Line),
	}
}

// getSourceLine returns the given 0-indexed line of the source text.
func (c *Compiler) getSourceLine(lineNum int) string {
	if c.source == "" {
		return ""
	}
	lines := strings.Split(c.source, "\n")
	if lineNum < 0 || lineNum >= len(lines) {
		return ""
	}
	return lines[lineNum]
}

func isExpr(node ast.Node) bool {
	_, ok := node.(ast.Expr)
	return ok
}
