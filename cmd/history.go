package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	var runID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously generated schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if runID != "" {
				run, err := app.scheduler.GetRun(cmd.Context(), runID)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(out, newRunOutput(run))
				}
				_, err = fmt.Fprintln(out, formatRunLine(run))
				return err
			}

			runs, err := app.scheduler.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, newRunOutputs(runs))
			}

			_, _ = fmt.Fprintf(out, "runs: %d\n", len(runs))
			for _, run := range runs {
				_, _ = fmt.Fprintln(out, formatRunLine(run))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "id", "", "Show a single run")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
