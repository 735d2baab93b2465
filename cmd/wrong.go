package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/wrongwords"
)

var wrongCmd = &cobra.Command{
	Use:   "wrong",
	Short: "Inspect and edit the wrong-word notebook",
}

var wrongListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebook entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := queryFlags(cmd, rt)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WORD\tREADING\tMEANING\tMISSES\tDIFFICULTY\tMASTERY\tLAST MISS")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				r.Word, r.Vocab.Reading, r.Vocab.DisplayMeaning(rt.env.Lang), r.WrongCount, r.Difficulty,
				wrongwords.MasteryLabel(rt.env.T, r.Mastery), r.LastWrongAt.Format(wrongwords.TimeLayout))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries\n", len(recs))
		return nil
	},
}

var wrongExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notebook entries as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := queryFlags(cmd, rt)
		if err != nil {
			return err
		}
		path, _ := cmd.Flags().GetString("out")
		if path == "" {
			path = filepath.Join(rt.env.ExportDir, wrongwords.ExportFilename(rt.env.Level, rt.env.Now()))
		}
		if err := wrongwords.ExportFile(path, recs, rt.env.T, rt.env.Lang); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(recs), path)
		return nil
	},
}

var wrongDeleteCmd = &cobra.Command{
	Use:   "delete <word>...",
	Short: "Remove words from the notebook",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.env.Notebook.DeleteMany(rt.env.Ctx, args); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d words\n", len(args))
		return nil
	},
}

var wrongClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry matching --filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		recs, err := queryFlags(cmd, rt)
		if err != nil {
			return err
		}
		words := make([]string, len(recs))
		for i, r := range recs {
			words[i] = r.Word
		}
		if err := rt.env.Notebook.DeleteMany(rt.env.Ctx, words); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d words\n", len(words))
		return nil
	},
}

// queryFlags runs the notebook query described by --filter and --sort.
func queryFlags(cmd *cobra.Command, rt *runtime) ([]wrongwords.Record, error) {
	fs, _ := cmd.Flags().GetString("filter")
	f, err := wrongwords.ParseFilter(fs)
	if err != nil {
		return nil, err
	}
	by := wrongwords.SortRecent
	if cmd.Flags().Lookup("sort") != nil {
		ss, _ := cmd.Flags().GetString("sort")
		if by, err = wrongwords.ParseSort(ss); err != nil {
			return nil, err
		}
	}
	return rt.env.Notebook.Query(rt.env.Ctx, f, by)
}

func init() {
	for _, c := range []*cobra.Command{wrongListCmd, wrongExportCmd, wrongClearCmd} {
		c.Flags().String("filter", "all", "Filter: all, new, learning, familiar, mastered, difficulty-N")
	}
	wrongListCmd.Flags().String("sort", "recent", "Sort: recent, frequency, difficulty, alphabetical")
	wrongExportCmd.Flags().String("sort", "recent", "Sort: recent, frequency, difficulty, alphabetical")
	wrongExportCmd.Flags().StringP("out", "o", "", "Output file (default <data dir>/<export name>)")

	wrongCmd.AddCommand(wrongListCmd, wrongExportCmd, wrongDeleteCmd, wrongClearCmd)
}
