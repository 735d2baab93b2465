package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List the lessons of the level",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		lessons, err := rt.Lessons()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-16s  %5s\n", "Lesson", "Words")
		for _, id := range lessons.Keys() {
			fmt.Fprintf(out, "%-16s  %5d\n", id, len(lessons[id]))
		}
		fmt.Fprintf(out, "\n%d words in %d lessons (%s)\n", lessons.Count(), len(lessons), rt.env.Level.Upper())
		return nil
	},
}
