package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/bnema/semester-scheduler/internal/adapters/export"
	"github.com/bnema/semester-scheduler/internal/config"
	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("start", "", "First semester day, YYYY-MM-DD (default from config)")
	cmd.Flags().String("end", "", "Last semester day, YYYY-MM-DD (default from config)")
}

func semesterRange(app *app) (domain.DateRange, error) {
	return config.SemesterRange(app.cfg)
}

func writeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

type sessionOutput struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Week      string `json:"week"`
	ClassName string `json:"class_name"`
	Time      string `json:"time"`
	Location  string `json:"location"`
}

func toSessionOutputs(sessions []domain.Session) []sessionOutput {
	out := make([]sessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionOutput{
			Date:      session.DateLabel(),
			Weekday:   session.Weekday.String(),
			Week:      session.Week.String(),
			ClassName: session.Class.Name,
			Time:      session.Class.Time,
			Location:  session.Class.Location,
		})
	}
	return out
}

type skippedOutput struct {
	Date      string `json:"date"`
	ClassName string `json:"class_name"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

type scheduleOutput struct {
	RunID       string          `json:"run_id"`
	Start       string          `json:"start"`
	End         string          `json:"end"`
	Seed        *uint64         `json:"seed,omitempty"`
	Sessions    int             `json:"sessions"`
	Assignments []export.Row    `json:"assignments"`
	Skipped     []skippedOutput `json:"skipped"`
	OutputPath  string          `json:"output_path,omitempty"`
}

func newScheduleOutput(run domain.Run, schedule domain.Schedule) scheduleOutput {
	out := scheduleOutput{
		RunID:       run.ID,
		Start:       run.Range.Start.Format(domain.DateLayout),
		End:         run.Range.End.Format(domain.DateLayout),
		Sessions:    run.Sessions,
		Assignments: export.Rows(schedule),
		Skipped:     make([]skippedOutput, 0, len(schedule.Skipped)),
		OutputPath:  run.OutputPath,
	}
	if run.Seeded {
		seed := run.Seed
		out.Seed = &seed
	}
	for _, skipped := range schedule.Skipped {
		out.Skipped = append(out.Skipped, skippedOutput{
			Date:      skipped.Session.DateLabel(),
			ClassName: skipped.Session.Class.Name,
			Time:      skipped.Session.Class.Time,
			Reason:    string(skipped.Reason),
		})
	}
	return out
}

type runOutput struct {
	ID          string  `json:"id"`
	GeneratedAt string  `json:"generated_at"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	Seed        *uint64 `json:"seed,omitempty"`
	Sessions    int     `json:"sessions"`
	Assignments int     `json:"assignments"`
	Skipped     int     `json:"skipped"`
	OutputPath  string  `json:"output_path,omitempty"`
}

func newRunOutput(run domain.Run) runOutput {
	out := runOutput{
		ID:          run.ID,
		GeneratedAt: run.GeneratedAt.UTC().Format(time.RFC3339),
		Start:       run.Range.Start.Format(domain.DateLayout),
		End:         run.Range.End.Format(domain.DateLayout),
		Sessions:    run.Sessions,
		Assignments: run.Assignments,
		Skipped:     run.Skipped,
		OutputPath:  run.OutputPath,
	}
	if run.Seeded {
		seed := run.Seed
		out.Seed = &seed
	}
	return out
}

func newRunOutputs(runs []domain.Run) []runOutput {
	out := make([]runOutput, 0, len(runs))
	for _, run := range runs {
		out = append(out, newRunOutput(run))
	}
	return out
}

func formatRunLine(run domain.Run) string {
	output := run.OutputPath
	if output == "" {
		output = "-"
	}
	return fmt.Sprintf("%s\t%s\t%s..%s\t%d/%d staffed\t%s",
		run.ID,
		run.GeneratedAt.Format("2006-01-02 15:04"),
		run.Range.Start.Format(domain.DateLayout),
		run.Range.End.Format(domain.DateLayout),
		run.Assignments,
		run.Sessions,
		output,
	)
}
