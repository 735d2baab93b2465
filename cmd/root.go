package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tango",
	Short: "JLPT vocabulary trainer",
	Long:  "Tango: a terminal JLPT vocabulary quiz with a wrong-word notebook.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/tango/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides TANGO_DB)")
	pf.String("level", "", "Vocabulary level: n1, n2, n3, biaori, gaoji")
	pf.String("lang", "", "Display language: ja, en, zh")
	pf.String("data", "", "Vocabulary source: embedded, a directory, or an http(s) URL")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// ExecuteContext runs the root command with ctx, which is handed to every
// subcommand through cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
