package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/vocab"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check vocabulary files against the lesson schema",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var errs []error
		for _, path := range args {
			raw, err := os.ReadFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			lessons, err := vocab.Decode(path, raw)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL  %s\n", path)
				errs = append(errs, err)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok    %s (%d lessons, %d words)\n", path, len(lessons), lessons.Count())
		}
		if err := errors.Join(errs...); err != nil {
			return fmt.Errorf("validation failed:\n%w", err)
		}
		return nil
	},
}
