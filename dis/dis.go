// Package dis supports analysis of compiled code objects by disassembling
// them. This works with the opcodes defined in the `op` package and uses the
// InstructionIter type from the `bytecode` package.
package dis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/internal/table"
	"github.com/bpl-lang/bpl/op"
)

// Instruction represents a single bytecode instruction and its operands.
type Instruction struct {
	Offset     int
	Name       string
	Opcode     op.Code
	Operands   []op.Code
	Annotation string
	Constant   interface{}
}

// Disassemble returns a parsed representation of the given bytecode.
func Disassemble(code *bytecode.Code) ([]Instruction, error) {
	var instructions []Instruction
	var offset int
	iter := bytecode.NewInstructionIter(code)
	for {
		val, ok := iter.Next()
		if !ok {
			break
		}
		var err error
		info := op.GetInfo(val[0])
		var constant interface{}
		var annotation string
		// A truncated final instruction carries no operand to resolve.
		if len(val) > 1 {
			switch info.Name {
			case "LOAD_NAME", "STORE_NAME":
				annotation, err = getName(code, int(val[1]))
				if err != nil {
					return nil, err
				}
			case "BINARY_OP":
				annotation = op.BinaryOpType(val[1]).String()
			case "COMPARE_OP":
				annotation = op.CompareOpType(val[1]).String()
			case "LOAD_CONST":
				constant, err = getConstantValue(code, int(val[1]))
				if err != nil {
					return nil, err
				}
				annotation = formatConstant(constant)
			}
		}
		instructions = append(instructions, Instruction{
			Offset:     offset,
			Name:       info.Name,
			Opcode:     val[0],
			Operands:   val[1:],
			Annotation: annotation,
			Constant:   constant,
		})
		offset += len(val)
	}
	return instructions, nil
}

var (
	boldText    = color.New(color.Bold)
	italicText  = color.New(color.Italic)
	yellowText  = color.New(color.FgYellow)
	greenText   = color.New(color.FgGreen)
	magentaText = color.New(color.FgMagenta)
	cyanText    = color.New(color.FgHiCyan)
)

// Print a string representation of the given instructions to the given writer.
func Print(instructions []Instruction, writer io.Writer) {
	var lines [][]string
	for _, instr := range instructions {
		var values []string
		values = append(values, fmt.Sprintf("%d", instr.Offset))
		values = append(values, boldText.Sprint(instr.Name))
		values = append(values, formatOperands(instr.Operands))
		if instr.Constant != nil {
			switch c := instr.Constant.(type) {
			case int64:
				values = append(values, yellowText.Sprintf("%d", c))
			case float64:
				values = append(values, yellowText.Sprint(floatString(c)))
			case bool:
				values = append(values, yellowText.Sprint(formatConstant(c)))
			case string:
				if utf8.RuneCountInString(c) > 80 {
					c = string([]rune(c)[:77]) + "..."
				}
				values = append(values, greenText.Sprintf("%q", c))
			case *bytecode.Function:
				name := c.Name()
				if name == "" {
					name = italicText.Sprint("<anonymous>")
				}
				values = append(values, magentaText.Sprintf("func:%s", name))
			default:
				values = append(values, boldText.Sprintf("%v", c))
			}
		} else if instr.Annotation != "" {
			values = append(values, cyanText.Sprint(instr.Annotation))
		} else {
			values = append(values, "")
		}
		lines = append(lines, values)
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// Fprint writes the disassembly of code to the writer, followed by the
// disassembly of each nested function, depth first.
func Fprint(w io.Writer, code *bytecode.Code) error {
	instructions, err := Disassemble(code)
	if err != nil {
		return err
	}
	Print(instructions, w)
	for i := 0; i < code.ChildCount(); i++ {
		child := code.ChildAt(i)
		fmt.Fprintf(w, "\nDisassembly of %s:\n", child.Name())
		if err := Fprint(w, child); err != nil {
			return err
		}
	}
	return nil
}

func formatOperands(ops []op.Code) string {
	var sb strings.Builder
	for i, op := range ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%d", op))
	}
	return sb.String()
}

// formatConstant renders a constant the way source code spells it, so nil
// and booleans appear with their keywords and whole floats keep ".0".
func formatConstant(constant any) string {
	switch c := constant.(type) {
	case nil:
		return "নিল"
	case bool:
		if c {
			return "সত্য"
		}
		return "মিথ্যা"
	case float64:
		return floatString(c)
	default:
		return fmt.Sprintf("%v", c)
	}
}

func floatString(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

func getConstantValue(code *bytecode.Code, index int) (any, error) {
	if code.ConstantCount() <= index {
		return "", fmt.Errorf("constant index out of range: %d", index)
	}
	return code.ConstantAt(index), nil
}

func getName(code *bytecode.Code, index int) (string, error) {
	if code.NameCount() <= index {
		return "", fmt.Errorf("name index out of range: %d", index)
	}
	return code.NameAt(index), nil
}
