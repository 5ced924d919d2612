package cmd

import (
	"fmt"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check classes, teachers and lessons without generating a schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			roster, err := app.scheduler.LoadRoster(cmd.Context())
			if err != nil {
				return err
			}

			leads := len(roster.TeachersByRank(domain.RankLead))
			assistants := len(roster.TeachersByRank(domain.RankAssistant))

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "roster: ok")
			_, _ = fmt.Fprintf(out, "classes: %d\n", len(roster.Classes))
			_, _ = fmt.Fprintf(out, "teachers: %d (lead: %d, assistant: %d)\n", len(roster.Teachers), leads, assistants)
			_, _ = fmt.Fprintf(out, "lessons: %d\n", len(roster.Lessons))

			if leads == 0 {
				_, _ = fmt.Fprintf(out, "warning: no %s teachers, every session will be skipped\n", domain.RankLead)
			}
			if assistants == 0 {
				_, _ = fmt.Fprintf(out, "warning: no %s teachers, every session will be skipped\n", domain.RankAssistant)
			}
			return nil
		},
	}
}
