// Package evaluator provides a tree-walking interpreter that executes
// programs directly from their syntax trees.
//
// Unlike the compiled path, the evaluator supports the full statement set,
// including যদি and যখন, and its functions are true lexical closures: a
// function sees the environment it was defined in, so recursion and nested
// scoping work here. Function calls check arity. The compiled path shares
// none of those properties, which is why control flow compiles only here.
package evaluator

import (
	"context"
	"fmt"
	"sort"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/builtins"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
	"github.com/bpl-lang/bpl/op"
)

// Evaluator executes syntax trees against an environment chain rooted at a
// global environment.
type Evaluator struct {
	globalEnv         *object.Environment
	builtins          map[string]object.Object
	noDefaultBuiltins bool
}

// New creates an Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		globalEnv: object.NewEnvironment(),
		builtins:  map[string]object.Object{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.noDefaultBuiltins {
		// Host-provided builtins sit over the defaults.
		merged := builtins.Defaults()
		for name, value := range e.builtins {
			merged[name] = value
		}
		e.builtins = merged
	}
	return e
}

// Eval evaluates node with a fresh Evaluator and returns the result.
func Eval(ctx context.Context, node ast.Node, opts ...Option) (object.Object, error) {
	return New(opts...).Eval(ctx, node)
}

// Eval evaluates the given node in the global environment. For a program
// the result is the value of the last expression statement, or nil when the
// program ends on any other statement kind.
func (e *Evaluator) Eval(ctx context.Context, node ast.Node) (object.Object, error) {
	result, err := e.eval(ctx, node, e.globalEnv)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	return result, nil
}

// returnSignal carries a ফলাফল value out of nested statement evaluation.
// Call boundaries and the program top level unwrap it.
type returnSignal struct {
	value object.Object
}

func (r *returnSignal) Error() string {
	return "return"
}

func (e *Evaluator) eval(ctx context.Context, node ast.Node, env *object.Environment) (object.Object, error) {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(ctx, node, env)
	case *ast.Nil:
		return object.Nil, nil
	case *ast.Bool:
		return object.NewBool(node.Value), nil
	case *ast.Int:
		return object.NewInt(node.Value), nil
	case *ast.Float:
		return object.NewFloat(node.Value), nil
	case *ast.String:
		return object.NewString(node.Value), nil
	case *ast.Ident:
		return e.evalIdent(node, env)
	case *ast.Assign:
		return e.evalAssign(ctx, node, env)
	case *ast.Infix:
		return e.evalInfix(ctx, node, env)
	case *ast.Prefix:
		return e.evalPrefix(ctx, node, env)
	case *ast.Call:
		return e.evalCall(ctx, node, env)
	case *ast.Func:
		closure := object.NewClosure(node.Name.Name, paramNames(node), node.Body, env)
		env.Define(node.Name.Name, closure)
		return object.Nil, nil
	case *ast.If:
		return e.evalIf(ctx, node, env)
	case *ast.While:
		return e.evalWhile(ctx, node, env)
	case *ast.Return:
		return e.evalReturn(ctx, node, env)
	case *ast.Block:
		return e.evalBlock(ctx, node, env)
	default:
		return nil, errors.EvalErrorf("রানটাইম ত্রুটি: অপরিচিত নোড %T", node)
	}
}

func (e *Evaluator) evalProgram(ctx context.Context, program *ast.Program, env *object.Environment) (object.Object, error) {
	var result object.Object = object.Nil
	for _, stmt := range program.Stmts {
		value, err := e.eval(ctx, stmt, env)
		if err != nil {
			if ret, ok := err.(*returnSignal); ok {
				// A top-level ফলাফল ends the program with its value.
				return ret.value, nil
			}
			return nil, err
		}
		if isExpr(stmt) {
			result = value
		} else {
			result = object.Nil
		}
	}
	return result, nil
}

func (e *Evaluator) evalBlock(ctx context.Context, block *ast.Block, env *object.Environment) (object.Object, error) {
	for _, stmt := range block.Stmts {
		if _, err := e.eval(ctx, stmt, env); err != nil {
			return nil, err
		}
	}
	return object.Nil, nil
}

func (e *Evaluator) evalIdent(node *ast.Ident, env *object.Environment) (object.Object, error) {
	if value, found := env.Get(node.Name); found {
		return value, nil
	}
	if value, found := e.builtins[node.Name]; found {
		return value, nil
	}
	err := fmt.Errorf("নাম ত্রুটি: অপরিচিত নাম '%s'", node.Name)
	return nil, errors.NewNameError(err, node.Name, e.knownNames(env)).
		WithLocation(nodeLocation(node))
}

// evalAssign defines the name in the current scope. An assignment inside a
// function body shadows an outer binding rather than mutating it.
func (e *Evaluator) evalAssign(ctx context.Context, node *ast.Assign, env *object.Environment) (object.Object, error) {
	value, err := e.eval(ctx, node.Value, env)
	if err != nil {
		return nil, err
	}
	env.Define(node.Name.Name, value)
	return object.Nil, nil
}

func (e *Evaluator) evalInfix(ctx context.Context, node *ast.Infix, env *object.Environment) (object.Object, error) {
	// Both operands evaluate before the operator applies, so এবং and বা do
	// not short-circuit.
	left, err := e.eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	right, err := e.eval(ctx, node.Y, env)
	if err != nil {
		return nil, err
	}
	if opType, ok := binaryOpType(node.Op); ok {
		result, err := object.BinaryOp(opType, left, right)
		if err != nil {
			return nil, e.operatorError(err, node)
		}
		return result, nil
	}
	if opType, ok := compareOpType(node.Op); ok {
		result, err := object.Compare(opType, left, right)
		if err != nil {
			return nil, e.operatorError(err, node)
		}
		return result, nil
	}
	return nil, errors.EvalErrorf("অজানা অপারেটর %s", node.Op).
		WithLocation(nodeLocation(node))
}

func (e *Evaluator) evalPrefix(ctx context.Context, node *ast.Prefix, env *object.Environment) (object.Object, error) {
	value, err := e.eval(ctx, node.X, env)
	if err != nil {
		return nil, err
	}
	if node.Op != "না" {
		return nil, errors.EvalErrorf("অজানা ইউনারি অপারেটর %s", node.Op).
			WithLocation(nodeLocation(node))
	}
	return object.NewBool(!value.IsTruthy()), nil
}

func (e *Evaluator) evalCall(ctx context.Context, node *ast.Call, env *object.Environment) (object.Object, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	name := node.Fun.Name
	callee, found := env.Get(name)
	if !found {
		callee, found = e.builtins[name]
	}
	args := make([]object.Object, 0, len(node.Args))
	for _, arg := range node.Args {
		value, err := e.eval(ctx, arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	if found {
		switch callee := callee.(type) {
		case *object.Closure:
			return e.callClosure(ctx, callee, args)
		case *object.Builtin:
			result, err := callee.Call(ctx, args...)
			if err != nil {
				return nil, e.builtinError(err, node)
			}
			return result, nil
		}
	}
	// Either the name is unbound or the value it holds is not callable.
	err := fmt.Errorf("নাম ত্রুটি: অপরিচিত ফাংশন '%s'", name)
	return nil, errors.NewNameError(err, name, e.knownNames(env)).
		WithLocation(nodeLocation(node))
}

// callClosure invokes a closure in a child of its captured environment.
// Arity is checked exactly.
func (e *Evaluator) callClosure(ctx context.Context, closure *object.Closure, args []object.Object) (object.Object, error) {
	if len(args) != closure.ParameterCount() {
		return nil, errors.EvalErrorf(
			"রানটাইম ত্রুটি: %s প্রত্যাশা %d আর্গুমেন্ট কিন্তু পেয়েছে %d",
			closure.Name(), closure.ParameterCount(), len(args)).
			WithCode(errors.E3005)
	}
	env := object.NewEnclosedEnvironment(closure.Env())
	for i := 0; i < closure.ParameterCount(); i++ {
		env.Define(closure.Parameter(i), args[i])
	}
	if _, err := e.evalBlock(ctx, closure.Body(), env); err != nil {
		if ret, ok := err.(*returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	// Falling off the end of a function returns nil.
	return object.Nil, nil
}

func (e *Evaluator) evalIf(ctx context.Context, node *ast.If, env *object.Environment) (object.Object, error) {
	cond, err := e.eval(ctx, node.Cond, env)
	if err != nil {
		return nil, err
	}
	if cond.IsTruthy() {
		return e.evalBlock(ctx, node.Body, env)
	}
	if node.Else != nil {
		return e.evalBlock(ctx, node.Else, env)
	}
	return object.Nil, nil
}

func (e *Evaluator) evalWhile(ctx context.Context, node *ast.While, env *object.Environment) (object.Object, error) {
	for {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		cond, err := e.eval(ctx, node.Cond, env)
		if err != nil {
			return nil, err
		}
		if !cond.IsTruthy() {
			return object.Nil, nil
		}
		if _, err := e.evalBlock(ctx, node.Body, env); err != nil {
			return nil, err
		}
	}
}

func (e *Evaluator) evalReturn(ctx context.Context, node *ast.Return, env *object.Environment) (object.Object, error) {
	var value object.Object = object.Nil
	if node.Value != nil {
		result, err := e.eval(ctx, node.Value, env)
		if err != nil {
			return nil, err
		}
		value = result
	}
	return nil, &returnSignal{value: value}
}

// operatorError wraps an operand failure in the টাইপ ত্রুটি form, keeping
// the underlying error code when one was set.
func (e *Evaluator) operatorError(err error, node ast.Node) error {
	code := errors.E3002
	if evalErr, ok := err.(*errors.EvalError); ok && evalErr.Code != "" {
		code = evalErr.Code
	}
	return errors.EvalErrorf("টাইপ ত্রুটি: %s", err).
		WithCode(code).
		WithLocation(nodeLocation(node))
}

// builtinError tags a builtin failure with the call site's location.
func (e *Evaluator) builtinError(err error, node ast.Node) error {
	if evalErr, ok := err.(*errors.EvalError); ok {
		return evalErr.WithLocation(nodeLocation(node))
	}
	wrapped := errors.NewEvalError(err).WithLocation(nodeLocation(node))
	switch err.(type) {
	case *errors.TypeError:
		wrapped.WithCode(errors.E3002)
	case *errors.ArgsError:
		wrapped.WithCode(errors.E3005)
	}
	return wrapped
}

func (e *Evaluator) knownNames(env *object.Environment) []string {
	names := env.Names()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
	}
	for name := range e.builtins {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func binaryOpType(operator string) (op.BinaryOpType, bool) {
	switch operator {
	case "+":
		return op.Add, true
	case "-":
		return op.Subtract, true
	case "*":
		return op.Multiply, true
	case "/":
		return op.Divide, true
	case "%":
		return op.Modulo, true
	case "এবং":
		return op.And, true
	case "বা":
		return op.Or, true
	}
	return 0, false
}

func compareOpType(operator string) (op.CompareOpType, bool) {
	switch operator {
	case "<":
		return op.LessThan, true
	case "<=":
		return op.LessThanOrEqual, true
	case "==":
		return op.Equal, true
	case "!=":
		return op.NotEqual, true
	case ">":
		return op.GreaterThan, true
	case ">=":
		return op.GreaterThanOrEqual, true
	}
	return 0, false
}

func paramNames(node *ast.Func) []string {
	params := make([]string, len(node.Params))
	for i, p := range node.Params {
		params[i] = p.Name
	}
	return params
}

func nodeLocation(node ast.Node) errors.SourceLocation {
	pos := node.Pos()
	return errors.SourceLocation{
		Line:   pos.LineNumber(),
		Column: pos.ColumnNumber(),
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func isExpr(node ast.Node) bool {
	_, ok := node.(ast.Expr)
	return ok
}
