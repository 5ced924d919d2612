package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List the class sessions of the semester without staffing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := semesterRange(app)
			if err != nil {
				return err
			}

			sessions, err := app.scheduler.ExpandSessions(cmd.Context(), r)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), toSessionOutputs(sessions))
			}

			rendered, err := app.renderSessions(sessions)
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	addRangeFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
