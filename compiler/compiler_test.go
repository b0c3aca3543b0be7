package compiler

import (
	"context"
	"testing"

	"github.com/bpl-lang/bpl/ast"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/op"
	"github.com/bpl-lang/bpl/parser"
	"github.com/stretchr/testify/require"
)

func compileSource(t *testing.T, source string) *bytecode.Code {
	t.Helper()
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := Compile(program, WithSource(source), WithFilename("main.bpl"))
	require.Nil(t, err)
	return code
}

func instructions(code *bytecode.Code) []op.Code {
	result := make([]op.Code, 0, code.InstructionCount())
	for i := 0; i < code.InstructionCount(); i++ {
		result = append(result, code.InstructionAt(i))
	}
	return result
}

func constants(code *bytecode.Code) []any {
	result := make([]any, 0, code.ConstantCount())
	for i := 0; i < code.ConstantCount(); i++ {
		result = append(result, code.ConstantAt(i))
	}
	return result
}

func names(code *bytecode.Code) []string {
	result := make([]string, 0, code.NameCount())
	for i := 0; i < code.NameCount(); i++ {
		result = append(result, code.NameAt(i))
	}
	return result
}

func TestCompileEmptyProgram(t *testing.T) {
	code, err := Compile(&ast.Program{})
	require.Nil(t, err)
	require.Equal(t, "__main__", code.Name())
	require.Equal(t, 0, code.ParamCount())
	require.Equal(t, []op.Code{op.ReturnValue}, instructions(code))
	require.Equal(t, 0, code.ConstantCount())
	require.Equal(t, 0, code.NameCount())
}

func TestCompileLiteralStatement(t *testing.T) {
	code := compileSource(t, "৪২")
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.PopTop,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []any{int64(42)}, constants(code))
}

func TestCompileAssign(t *testing.T) {
	code := compileSource(t, "ক = ৫")
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.StoreName, 0,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []any{int64(5)}, constants(code))
	require.Equal(t, []string{"ক"}, names(code))
}

func TestCompileArithmetic(t *testing.T) {
	code := compileSource(t, "ক = ১ + ২ * ৩")
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.LoadConst, 1,
		op.LoadConst, 2,
		op.BinaryOp, op.Code(op.Multiply),
		op.BinaryOp, op.Code(op.Add),
		op.StoreName, 0,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, constants(code))
}

func TestCompileComparisons(t *testing.T) {
	tests := []struct {
		source string
		opcode op.CompareOpType
	}{
		{"ক < খ", op.LessThan},
		{"ক <= খ", op.LessThanOrEqual},
		{"ক == খ", op.Equal},
		{"ক != খ", op.NotEqual},
		{"ক > খ", op.GreaterThan},
		{"ক >= খ", op.GreaterThanOrEqual},
	}
	for _, tt := range tests {
		code := compileSource(t, tt.source)
		require.Equal(t, []op.Code{
			op.LoadName, 0,
			op.LoadName, 1,
			op.CompareOp, op.Code(tt.opcode),
			op.PopTop,
			op.ReturnValue,
		}, instructions(code), tt.source)
	}
}

func TestCompileLogicalOperators(t *testing.T) {
	// Both operands load before the operator runs, so compiled এবং and বা
	// evaluate eagerly.
	code := compileSource(t, "সত্য এবং মিথ্যা")
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.LoadConst, 1,
		op.BinaryOp, op.Code(op.And),
		op.PopTop,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []any{true, false}, constants(code))

	code = compileSource(t, "ক বা খ")
	require.Equal(t, []op.Code{
		op.LoadName, 0,
		op.LoadName, 1,
		op.BinaryOp, op.Code(op.Or),
		op.PopTop,
		op.ReturnValue,
	}, instructions(code))
}

func TestCompileUnaryNot(t *testing.T) {
	code := compileSource(t, "না সত্য")
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.UnaryNot,
		op.PopTop,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []any{true}, constants(code))
}

func TestConstantDeduplication(t *testing.T) {
	code := compileSource(t, "ক = ১\nখ = ১\nগ = ১.০\nঘ = সত্য\nঙ = \"১\"")
	// The int 1, the float 1.0, the bool true, and the string "১" each get
	// their own slot; the repeated int 1 reuses the first one.
	require.Equal(t, []any{int64(1), float64(1), true, "১"}, constants(code))
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.StoreName, 0,
		op.LoadConst, 0,
		op.StoreName, 1,
		op.LoadConst, 1,
		op.StoreName, 2,
		op.LoadConst, 2,
		op.StoreName, 3,
		op.LoadConst, 3,
		op.StoreName, 4,
		op.ReturnValue,
	}, instructions(code))
}

func TestNameInterning(t *testing.T) {
	code := compileSource(t, "ক = ১\nক = ক + ১\nখ = ক")
	require.Equal(t, []string{"ক", "খ"}, names(code))
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.StoreName, 0,
		op.LoadName, 0,
		op.LoadConst, 0,
		op.BinaryOp, op.Code(op.Add),
		op.StoreName, 0,
		op.LoadName, 0,
		op.StoreName, 1,
		op.ReturnValue,
	}, instructions(code))
}

func TestCompileCall(t *testing.T) {
	code := compileSource(t, "দেখাও(১, ২)")
	require.Equal(t, []op.Code{
		op.LoadName, 0,
		op.LoadConst, 0,
		op.LoadConst, 1,
		op.Call, 2,
		op.PopTop,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []string{"দেখাও"}, names(code))
}

func TestCompileFunction(t *testing.T) {
	source := "ফাংশন যোগ(ক, খ):\n    ফলাফল ক + খ"
	code := compileSource(t, source)

	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.StoreName, 0,
		op.ReturnValue,
	}, instructions(code))
	require.Equal(t, []string{"যোগ"}, names(code))
	require.Equal(t, 1, code.ChildCount())

	fn, ok := code.ConstantAt(0).(*bytecode.Function)
	require.True(t, ok)
	require.Equal(t, "যোগ", fn.Name())
	require.Equal(t, 2, fn.ParameterCount())
	require.Equal(t, []string{"ক", "খ"}, fn.Parameters())
	require.Equal(t, code.ChildAt(0), fn.Code())

	body := fn.Code()
	require.Equal(t, "যোগ", body.Name())
	require.Equal(t, 2, body.ParamCount())
	require.Equal(t, []string{"ক", "খ"}, names(body))
	require.Equal(t, []op.Code{
		op.LoadName, 0,
		op.LoadName, 1,
		op.BinaryOp, op.Code(op.Add),
		op.ReturnValue,
		op.ReturnValue,
	}, instructions(body))
}

func TestCompileFunctionImplicitReturn(t *testing.T) {
	source := "ফাংশন ছাপাও(বার্তা):\n    দেখাও(বার্তা)"
	code := compileSource(t, source)
	body := code.ChildAt(0)

	// Parameters intern ahead of other names, so বার্তা holds index 0.
	require.Equal(t, []string{"বার্তা", "দেখাও"}, names(body))
	require.Equal(t, []op.Code{
		op.LoadName, 1,
		op.LoadName, 0,
		op.Call, 1,
		op.PopTop,
		op.ReturnValue,
	}, instructions(body))
}

func TestCompileBareReturn(t *testing.T) {
	source := "ফাংশন কিছুনা():\n    ফলাফল"
	code := compileSource(t, source)
	body := code.ChildAt(0)
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.ReturnValue,
		op.ReturnValue,
	}, instructions(body))
	require.Nil(t, body.ConstantAt(0))
}

func TestCompileNestedFunction(t *testing.T) {
	source := "ফাংশন বাইরে():\n    ফাংশন ভিতরে():\n        ফলাফল ১\n    ফলাফল ভিতরে()"
	code := compileSource(t, source)
	require.Equal(t, 1, code.ChildCount())

	outer := code.ChildAt(0)
	require.Equal(t, "বাইরে", outer.Name())
	require.Equal(t, 1, outer.ChildCount())
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.StoreName, 0,
		op.LoadName, 0,
		op.Call, 0,
		op.ReturnValue,
		op.ReturnValue,
	}, instructions(outer))

	inner := outer.ChildAt(0)
	require.Equal(t, "ভিতরে", inner.Name())
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.ReturnValue,
		op.ReturnValue,
	}, instructions(inner))
}

func TestCompileIfNotSupported(t *testing.T) {
	source := "যদি সত্য:\n    দেখাও(১)"
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	_, err = Compile(program, WithSource(source), WithFilename("main.bpl"))
	require.NotNil(t, err)
	require.Equal(t, "unsupported statement in bytecode: যদি (use the evaluator)", err.Error())

	compileErr, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.E2001, compileErr.Code)
	require.Equal(t, "main.bpl", compileErr.Filename)
	require.Equal(t, 1, compileErr.Line)
	require.Equal(t, 1, compileErr.Column)
	require.Equal(t, "যদি সত্য:", compileErr.SourceLine)
}

func TestCompileWhileNotSupported(t *testing.T) {
	source := "ক = ০\nযখন ক < ৫:\n    ক = ক + ১"
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	_, err = Compile(program, WithSource(source))
	require.NotNil(t, err)
	require.Equal(t, "unsupported statement in bytecode: যখন (use the evaluator)", err.Error())

	compileErr, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.E2001, compileErr.Code)
	require.Equal(t, 2, compileErr.Line)
	require.Equal(t, "যখন ক < ৫:", compileErr.SourceLine)
}

func TestCompileInvalidAssignTarget(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Node{
		&ast.Assign{Value: &ast.Int{Literal: "১", Value: 1}},
	}}
	_, err := Compile(program)
	require.NotNil(t, err)
	require.Equal(t, "Only simple identifier assignments supported", err.Error())

	compileErr, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.E2003, compileErr.Code)
}

func TestCompileUnknownOperator(t *testing.T) {
	program := &ast.Program{Stmts: []ast.Node{
		&ast.Infix{
			X:  &ast.Int{Literal: "১", Value: 1},
			Op: "@",
			Y:  &ast.Int{Literal: "২", Value: 2},
		},
	}}
	_, err := Compile(program)
	require.NotNil(t, err)
	require.Equal(t, "Unsupported binary op: @", err.Error())

	compileErr, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.E2002, compileErr.Code)
}

func TestCompileUnknownNodeType(t *testing.T) {
	_, err := Compile(&ast.Block{})
	require.NotNil(t, err)
	require.Equal(t, "no compiler for node type *ast.Block", err.Error())

	compileErr, ok := err.(*errors.CompileError)
	require.True(t, ok)
	require.Equal(t, errors.E2004, compileErr.Code)
}

func TestCompileExpressionNode(t *testing.T) {
	// A bare expression compiles to code that returns its value.
	code, err := Compile(&ast.Int{Literal: "৪২", Value: 42})
	require.Nil(t, err)
	require.Equal(t, "__main__", code.Name())
	require.Equal(t, []op.Code{
		op.LoadConst, 0,
		op.ReturnValue,
	}, instructions(code))
}

func TestCompileLocations(t *testing.T) {
	code := compileSource(t, "ক = ৫\nখ = ক")
	require.Equal(t, code.InstructionCount(), code.LocationCount())

	// LoadConst for ৫ points at the literal on line 1.
	require.Equal(t, bytecode.SourceLocation{Line: 1, Column: 5}, code.LocationAt(0))
	// StoreName points at the assignment target.
	require.Equal(t, bytecode.SourceLocation{Line: 1, Column: 1}, code.LocationAt(2))
	// The second statement's instructions point at line 2.
	require.Equal(t, 2, code.LocationAt(4).Line)
	require.Equal(t, 2, code.LocationAt(6).Line)
}

func TestCompileRecordsSourceAndFilename(t *testing.T) {
	source := "ফাংশন দ্বিগুণ(ন):\n    ফলাফল ন * ২"
	program, err := parser.Parse(context.Background(), source)
	require.Nil(t, err)
	code, err := Compile(program, WithSource(source), WithFilename("দ্বিগুণ.bpl"))
	require.Nil(t, err)
	require.Equal(t, source, code.Source())
	require.Equal(t, "দ্বিগুণ.bpl", code.Filename())
	// Children share the filename and resolve source lines through the root.
	body := code.ChildAt(0)
	require.Equal(t, "দ্বিগুণ.bpl", body.Filename())
	require.Equal(t, "    ফলাফল ন * ২", body.GetSourceLine(2))
}
