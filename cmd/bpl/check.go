package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"os"

	"github.com/bpl-lang/bpl"
	"github.com/bpl-lang/bpl/errors"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check file...",
	Short: "Parse files and report syntax errors",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		formatter := errors.NewFormatter(!color.NoColor)

		var result *multierror.Error
		for _, path := range args {
			if err := checkFile(ctx, path, formatter); err != nil {
				result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
				continue
			}
			fmt.Printf("%s %s\n", color.GreenString("ok"), path)
		}
		if err := result.ErrorOrNil(); err != nil {
			return fmt.Errorf("%d of %d files failed", len(result.Errors), len(args))
		}
		return nil
	},
}

// checkFile parses one file and prints any error it finds. The file is not
// executed.
func checkFile(ctx context.Context, path string, formatter *errors.Formatter) error {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if _, err := bpl.Parse(ctx, string(data), bpl.WithFilename(path)); err != nil {
		var formattable errors.FormattableError
		if goerrors.As(err, &formattable) {
			fmt.Fprintln(os.Stderr, formatter.Format(formattable.ToFormatted()))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	log.Debug().Str("filename", path).Msg("parsed")
	return nil
}
