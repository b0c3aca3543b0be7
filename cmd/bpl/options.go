package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// getCode resolves the program text from the -c flag, --stdin, or a file
// argument, along with the filename to report in error messages. Exactly
// one input source may be supplied.
func getCode(cmd *cobra.Command, args []string) (string, string, error) {
	codeSet := cmd.Flags().Changed("code") || viper.GetString("code") != ""
	stdinSet := viper.GetBool("stdin")
	fileProvided := len(args) > 0 && args[0] != ""

	count := 0
	if codeSet {
		count++
	}
	if stdinSet {
		count++
	}
	if fileProvided {
		count++
	}
	if count > 1 {
		return "", "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", "", errors.New("no input provided")
	}

	if stdinSet {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	}

	if fileProvided {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}

	return viper.GetString("code"), "<input>", nil
}

// shouldRunRepl reports whether the interactive session should start: no
// input source was given and both stdin and stdout are terminals.
func shouldRunRepl(cmd *cobra.Command, args []string) bool {
	if viper.GetBool("stdin") {
		return false
	}
	if cmd.Flags().Changed("code") || viper.GetString("code") != "" {
		return false
	}
	if len(args) > 0 {
		return false
	}
	return isTerminalIO()
}
