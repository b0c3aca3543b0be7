// Command bpl runs Bangla programming language scripts. With no input it
// starts an interactive session.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/bytecode"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "bpl [file]",
	Short: "Run Bangla programming language scripts",
	Long: `bpl runs scripts written in the Bangla programming language.

Programs may be given as a file argument, inline with -c, or piped in
with --stdin. With no input and a terminal attached, an interactive
session starts instead.`,
	Example: `  bpl script.bpl
  bpl -c 'দেখাও(২ + ২)'
  echo 'দেখাও("হ্যালো")' | bpl --stdin`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		processGlobalFlags()
		configureLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if shouldRunRepl(cmd, args) {
			return runRepl(ctx)
		}

		// Compiled programs run on the virtual machine as-is.
		if len(args) == 1 && strings.HasSuffix(args[0], ".bplc") {
			return runCompiledFile(ctx, cmd, args[0])
		}

		code, filename, err := getCode(cmd, args)
		if err != nil {
			return err
		}
		useVM, _ := cmd.Flags().GetBool("vm")
		opts := []bpl.Option{bpl.WithFilename(filename)}
		if !useVM {
			opts = append(opts, bpl.WithEvaluator())
		}
		log.Debug().Str("filename", filename).Bool("vm", useVM).Msg("running program")

		start := time.Now()
		result, err := bpl.Run(ctx, code, opts...)
		if err != nil {
			return err
		}
		printTiming(cmd, time.Since(start))
		return printResult(cmd, result)
	},
}

// runCompiledFile loads a marshaled code object from disk and executes it.
func runCompiledFile(ctx context.Context, cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	code, err := bytecode.Unmarshal(data)
	if err != nil {
		return err
	}
	program := bpl.NewProgram(code)
	log.Debug().
		Str("filename", path).
		Int("instructions", program.Stats().InstructionCount).
		Msg("loaded compiled program")

	start := time.Now()
	result, err := program.Run(ctx)
	if err != nil {
		return err
	}
	printTiming(cmd, time.Since(start))
	return printResult(cmd, result)
}

func printTiming(cmd *cobra.Command, elapsed time.Duration) {
	if timing, _ := cmd.Flags().GetBool("timing"); timing {
		fmt.Fprintf(os.Stderr, "%v\n", elapsed)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("code", "c", "", "code to evaluate")
	pf.Bool("stdin", false, "read code from stdin")
	pf.Bool("no-color", false, "disable colored output")
	pf.Bool("verbose", false, "enable verbose logging")
	viper.BindPFlag("code", pf.Lookup("code"))
	viper.BindPFlag("stdin", pf.Lookup("stdin"))
	viper.BindPFlag("no-color", pf.Lookup("no-color"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))

	rootCmd.Flags().Bool("vm", false, "run on the bytecode virtual machine")
	rootCmd.Flags().Bool("timing", false, "print the execution time to stderr")
	rootCmd.Flags().StringP("output", "o", "", "print the result in the given format (text or json)")

	viper.SetEnvPrefix("BPL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(replCmd, checkCmd, disCmd, astCmd, buildCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalError(err)
	}
}
