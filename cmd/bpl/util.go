package main

import (
	"encoding/json"
	goerrors "errors"
	"fmt"
	"os"

	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
	"github.com/fatih/color"
	prettyjson "github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// fatal prints an error message to stderr in red and exits.
func fatal(msg string) {
	fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint(msg))
	os.Exit(1)
}

// fatalError renders an error with source context when available, then exits.
func fatalError(err error) {
	var formattable errors.FormattableError
	if goerrors.As(err, &formattable) {
		formatter := errors.NewFormatter(!color.NoColor)
		fmt.Fprintln(os.Stderr, formatter.Format(formattable.ToFormatted()))
		os.Exit(1)
	}
	fatal(err.Error())
}

// isTerminalIO reports whether both stdin and stdout are attached to a
// terminal.
func isTerminalIO() bool {
	stdinTerm := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	stdoutTerm := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return stdinTerm && stdoutTerm
}

// getOutput renders a program result in the requested format. The boolean
// reports whether anything should be printed; with the default format a নিল
// result prints nothing.
func getOutput(result object.Object, format string) (string, bool, error) {
	switch format {
	case "":
		if result == object.Nil {
			return "", false, nil
		}
		return result.Inspect(), true, nil
	case "text":
		return object.PrintableValue(result), true, nil
	case "json":
		if color.NoColor {
			out, err := json.MarshalIndent(result.Interface(), "", "  ")
			if err != nil {
				return "", false, err
			}
			return string(out), true, nil
		}
		out, err := prettyjson.Marshal(result.Interface())
		if err != nil {
			return "", false, err
		}
		return string(out), true, nil
	default:
		return "", false, fmt.Errorf("unknown output format: %q", format)
	}
}

func printResult(cmd *cobra.Command, result object.Object) error {
	format, _ := cmd.Flags().GetString("output")
	out, ok, err := getOutput(result, format)
	if err != nil {
		return err
	}
	if ok {
		fmt.Println(out)
	}
	return nil
}

// processGlobalFlags applies global flag and environment settings. The
// NO_COLOR and BPL_NO_COLOR variables are honored in addition to --no-color.
func processGlobalFlags() {
	if viper.GetBool("no-color") || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

// configureLogging routes log output to stderr. Debug logging is off unless
// --verbose or BPL_VERBOSE enables it.
func configureLogging() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor})
	if viper.GetBool("verbose") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
