package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/bpl-lang/bpl/dis"
	"github.com/spf13/cobra"
)

var disCmd = &cobra.Command{
	Use:   "dis [file]",
	Short: "Disassemble compiled code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := getTargetCode(context.Background(), cmd, args)
		if err != nil {
			return err
		}

		// If a function name was given, disassemble its code only.
		if funcName, _ := cmd.Flags().GetString("func"); funcName != "" {
			fn := findFunction(code, funcName)
			if fn == nil {
				return fmt.Errorf("function %q not found", funcName)
			}
			code = fn.Code()
		}

		if all, _ := cmd.Flags().GetBool("all"); all {
			return dis.Fprint(os.Stdout, code)
		}
		instructions, err := dis.Disassemble(code)
		if err != nil {
			return err
		}
		dis.Print(instructions, os.Stdout)
		return nil
	},
}

func init() {
	disCmd.Flags().String("func", "", "disassemble the named function only")
	disCmd.Flags().Bool("all", false, "include nested functions")
}

// getTargetCode resolves the code object to disassemble. A compiled .bplc
// file is loaded as-is; any other input is compiled first.
func getTargetCode(ctx context.Context, cmd *cobra.Command, args []string) (*bytecode.Code, error) {
	source, filename, err := getCode(cmd, args)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(filename, ".bplc") {
		return bytecode.Unmarshal([]byte(source))
	}
	program, err := bpl.Compile(ctx, source, bpl.WithFilename(filename))
	if err != nil {
		return nil, err
	}
	return program.Code(), nil
}

func findFunction(code *bytecode.Code, name string) *bytecode.Function {
	for i := 0; i < code.ConstantCount(); i++ {
		fn, ok := code.ConstantAt(i).(*bytecode.Function)
		if !ok {
			continue
		}
		if fn.Name() == name {
			return fn
		}
	}
	return nil
}
