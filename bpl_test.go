package bpl

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bpl-lang/bpl/builtins"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
)

// capture returns an option that redirects দেখাও output into the buffer.
func capture(buf *bytes.Buffer) Option {
	return WithBuiltins(builtins.Defaults(builtins.WithOutput(buf)))
}

func TestBasicUsage(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	result, err := Run(ctx, "ক = ৪২\nদেখাও(ক)", capture(&buf))
	require.Nil(t, err)
	require.Same(t, object.Nil, result)
	require.Equal(t, "42\n", buf.String())
}

func TestEvalReturnsLastExpression(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "১ + ২")
	require.Nil(t, err)
	require.Equal(t, "3", result.Inspect())
}

func TestRunWithEvaluator(t *testing.T) {
	ctx := context.Background()
	source := "ক = ৫\nযদি ক > ৩:\n    দেখাও(\"বড়\")\nনইলে:\n    দেখাও(\"ছোট\")"

	// Control flow does not compile to bytecode.
	_, err := Run(ctx, source)
	require.NotNil(t, err)
	var compileErr *errors.CompileError
	require.ErrorAs(t, err, &compileErr)
	require.Equal(t, errors.E2001, compileErr.Code)

	var buf bytes.Buffer
	result, err := Run(ctx, source, WithEvaluator(), capture(&buf))
	require.Nil(t, err)
	require.Same(t, object.Nil, result)
	require.Equal(t, "বড়\n", buf.String())
}

func TestParse(t *testing.T) {
	ctx := context.Background()
	program, err := Parse(ctx, "ক = ১\nখ = ২")
	require.Nil(t, err)
	require.Equal(t, 2, len(program.Stmts))

	_, err = Parse(ctx, "ক = ", WithFilename("main.bpl"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "সিনট্যাক্স ত্রুটি")
}

func TestWithGlobals(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	_, err := Run(ctx, "দেখাও(ভিত্তি + ১)",
		WithGlobals(map[string]object.Object{"ভিত্তি": object.NewInt(10)}),
		capture(&buf))
	require.Nil(t, err)
	require.Equal(t, "11\n", buf.String())
}

func TestWithGlobalsAdditive(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	_, err := Run(ctx, "দেখাও(ক + খ)",
		WithGlobals(map[string]object.Object{"ক": object.NewInt(1)}),
		WithGlobals(map[string]object.Object{"খ": object.NewInt(2)}),
		capture(&buf))
	require.Nil(t, err)
	require.Equal(t, "3\n", buf.String())
}

func TestWithGlobalOverride(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	_, err := Run(ctx, "দেখাও(ক)",
		WithGlobals(map[string]object.Object{"ক": object.NewInt(1)}),
		WithGlobal("ক", object.NewInt(2)),
		capture(&buf))
	require.Nil(t, err)
	require.Equal(t, "2\n", buf.String())
}

func TestWithoutDefaultBuiltins(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, "দেখাও(১)", WithoutDefaultBuiltins())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "NameError: দেখাও")

	_, err = Eval(ctx, "দেখাও(১)", WithoutDefaultBuiltins())
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "নাম ত্রুটি: অপরিচিত ফাংশন 'দেখাও'")
}

func TestCompileRun(t *testing.T) {
	ctx := context.Background()
	program, err := Compile(ctx, "দেখাও(২ * ৩)", WithFilename("main.bpl"))
	require.Nil(t, err)
	require.Equal(t, "দেখাও(২ * ৩)", program.Source())
	require.Equal(t, "main.bpl", program.Filename())
	require.NotNil(t, program.Code())

	var buf bytes.Buffer
	_, err = program.Run(ctx, capture(&buf))
	require.Nil(t, err)
	require.Equal(t, "6\n", buf.String())
}

func TestProgramReuse(t *testing.T) {
	ctx := context.Background()
	program, err := Compile(ctx, "দেখাও(১ + ১)")
	require.Nil(t, err)

	for i := 0; i < 3; i++ {
		var buf bytes.Buffer
		_, err := program.Run(ctx, capture(&buf))
		require.Nil(t, err)
		require.Equal(t, "2\n", buf.String())
	}
}

func TestConcurrentExecution(t *testing.T) {
	ctx := context.Background()
	source := "ফাংশন বর্গ(ক):\n    ফলাফল ক * ক\nদেখাও(বর্গ(৭))"
	program, err := Compile(ctx, source)
	require.Nil(t, err)

	var wg sync.WaitGroup
	outputs := make([]string, 10)
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			_, err := program.Run(ctx, capture(&buf))
			outputs[i] = buf.String()
			errs[i] = err
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		require.Nil(t, errs[i])
		require.Equal(t, "49\n", outputs[i])
	}
}

func TestProgramStats(t *testing.T) {
	ctx := context.Background()
	source := "ফাংশন যোগ(ক, খ):\n" +
		"    ফলাফল ক + খ\n" +
		"ফাংশন গুন(ক, খ):\n" +
		"    ফলাফল ক * খ\n" +
		"দেখাও(যোগ(১, ২))"
	program, err := Compile(ctx, source)
	require.Nil(t, err)

	stats := program.Stats()
	require.Greater(t, stats.InstructionCount, 0)
	require.Greater(t, stats.ConstantCount, 0)
	require.Equal(t, 2, stats.FunctionCount)
	require.Equal(t, len(source), stats.SourceBytes)
}

func TestProgramDisassemble(t *testing.T) {
	ctx := context.Background()
	program, err := Compile(ctx, "ক = ১ + ২")
	require.Nil(t, err)

	listing, err := program.Disassemble()
	require.Nil(t, err)
	require.Contains(t, listing, "LOAD_CONST")
	require.Contains(t, listing, "BINARY_OP")
	require.Contains(t, listing, "STORE_NAME")
}

func TestProgramFunctionNames(t *testing.T) {
	ctx := context.Background()
	source := "ফাংশন যোগ(ক, খ):\n" +
		"    ফলাফল ক + খ\n" +
		"ফাংশন বিয়োগ(ক, খ):\n" +
		"    ফলাফল ক - খ"
	program, err := Compile(ctx, source)
	require.Nil(t, err)
	require.Equal(t, []string{"যোগ", "বিয়োগ"}, program.FunctionNames())
}

func TestProgramFromMarshaledBytecode(t *testing.T) {
	ctx := context.Background()
	compiled, err := Compile(ctx, "দেখাও(\"সংরক্ষিত\")", WithFilename("saved.bpl"))
	require.Nil(t, err)

	data, err := bytecode.Marshal(compiled.Code())
	require.Nil(t, err)

	code, err := bytecode.Unmarshal(data)
	require.Nil(t, err)
	loaded := NewProgram(code)
	require.Equal(t, "saved.bpl", loaded.Filename())
	require.Equal(t, compiled.Source(), loaded.Source())

	var buf bytes.Buffer
	_, err = loaded.Run(ctx, capture(&buf))
	require.Nil(t, err)
	require.Equal(t, "সংরক্ষিত\n", buf.String())
}

func TestRuntimeErrorCarriesLocation(t *testing.T) {
	ctx := context.Background()
	_, err := Run(ctx, "ক = ১\nখ = ক / ০", WithFilename("main.bpl"))
	require.NotNil(t, err)

	var evalErr *errors.EvalError
	require.ErrorAs(t, err, &evalErr)
	require.Equal(t, errors.E3003, evalErr.Code)
	require.Equal(t, 2, evalErr.Location.Line)
	require.Equal(t, "main.bpl", evalErr.Location.Filename)
	require.Equal(t, "খ = ক / ০", evalErr.Location.Source)
}

func TestNilOptionIgnored(t *testing.T) {
	ctx := context.Background()
	result, err := Eval(ctx, "১", nil)
	require.Nil(t, err)
	require.Equal(t, "1", result.Inspect())
}

func TestFormattedSyntaxError(t *testing.T) {
	ctx := context.Background()
	_, err := Run(ctx, "ক = ১ +", WithFilename("main.bpl"))
	require.NotNil(t, err)

	var formattable errors.FormattableError
	require.ErrorAs(t, err, &formattable)
	rendered := errors.NewFormatter(false).Format(formattable.ToFormatted())
	require.Contains(t, rendered, "main.bpl")
	require.Contains(t, rendered, "[E1")
}
