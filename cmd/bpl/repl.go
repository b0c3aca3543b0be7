package main

import (
	"bufio"
	"context"
	goerrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/errors"
	"github.com/bpl-lang/bpl/object"
	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	replPrompt      = "বিপিএল> "
	replBlockPrompt = "...> "
	replHistoryFile = ".bpl_history"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl(context.Background())
	},
}

// runRepl reads and evaluates input line by line against one persistent
// session, so variables and functions defined earlier stay visible. A line
// ending with ":" opens a block that continues until a blank line.
func runRepl(ctx context.Context) error {
	fmt.Printf("বিপিএল %s\n", version)
	fmt.Println(`প্রস্থান করতে "exit" বা "প্রস্থান" লিখুন।`)

	session := bpl.NewSession()
	scanner := bufio.NewScanner(os.Stdin)
	history := historyPath()
	formatter := errors.NewFormatter(!color.NoColor)

	var block []string
	for {
		if len(block) == 0 {
			fmt.Print(replPrompt)
		} else {
			fmt.Print(replBlockPrompt)
		}
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if len(block) == 0 {
			if trimmed == "" {
				continue
			}
			if trimmed == "exit" || trimmed == "প্রস্থান" {
				return nil
			}
			block = append(block, line)
			if strings.HasSuffix(trimmed, ":") {
				continue
			}
		} else if trimmed != "" {
			block = append(block, line)
			continue
		}

		source := strings.Join(block, "\n")
		block = nil
		appendHistory(history, source)

		result, err := session.Eval(ctx, source)
		if err != nil {
			printReplError(formatter, err)
			continue
		}
		if result != object.Nil {
			fmt.Println(result.Inspect())
		}
	}
}

func printReplError(formatter *errors.Formatter, err error) {
	var formattable errors.FormattableError
	if goerrors.As(err, &formattable) {
		fmt.Fprintln(os.Stderr, formatter.Format(formattable.ToFormatted()))
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

// historyPath returns the location of the history file. BPL_HISTORY
// overrides the default of ~/.bpl_history.
func historyPath() string {
	if path := viper.GetString("history"); path != "" {
		return path
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, replHistoryFile)
}

// appendHistory records an input in the history file. Write failures are
// ignored.
func appendHistory(path string, source string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintln(f, source)
}
