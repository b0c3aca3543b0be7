package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build file",
	Short: "Compile a script to a bytecode file",
	Long: `build compiles a script and writes the marshaled code object to
disk. The resulting .bplc file runs directly: bpl program.bplc`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		program, err := bpl.Compile(context.Background(), string(source), bpl.WithFilename(path))
		if err != nil {
			return err
		}
		data, err := bytecode.Marshal(program.Code())
		if err != nil {
			return err
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = strings.TrimSuffix(path, ".bpl") + ".bplc"
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return err
		}

		stats := program.Stats()
		log.Debug().
			Str("filename", outPath).
			Int("instructions", stats.InstructionCount).
			Int("constants", stats.ConstantCount).
			Int("functions", stats.FunctionCount).
			Msg("wrote compiled program")
		fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data))
		return nil
	},
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output file path")
}
