package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tango/internal/wrongwords"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wrong-word notebook statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.env.Notebook.Stats(rt.env.Ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s notebook: %d words, %d misses\n\n", rt.env.Level.Upper(), st.Total, st.TotalMisses)
		for _, m := range wrongwords.AllMastery {
			fmt.Fprintf(out, "  %-12s %4d\n", wrongwords.MasteryLabel(rt.env.T, m), st.ByMastery[m])
		}
		fmt.Fprintln(out)
		for d := wrongwords.MinDifficulty; d <= wrongwords.MaxDifficulty; d++ {
			fmt.Fprintf(out, "  difficulty %d %4d\n", d, st.ByDifficulty[d])
		}
		return nil
	},
}
