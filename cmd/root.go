package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string
	app := &app{}

	rootCmd := &cobra.Command{
		Use:           "semsched",
		Short:         "Semester scheduler (semsched): staff class sessions with lead and assistant teachers",
		Long:          "semsched expands weekly class definitions over a semester, pairs every session with a lead and an assistant teacher under weekly caps, and exports the resulting schedule.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd, configPath)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default: $HOME/.config/semsched/config.toml)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("roster-format", "", "Roster source: csv or toml")
	flags.String("classes", "", "Class definitions CSV")
	flags.String("teachers", "", "Teacher definitions CSV")
	flags.String("lessons", "", "Lesson list, one label per line")
	flags.String("roster", "", "Roster TOML file (roster-format toml)")
	flags.String("runs", "", "Run ledger file")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(app),
		newSessionsCmd(app),
		newValidateCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd
}
