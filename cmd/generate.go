package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/semester-scheduler/internal/adapters/export"
	scheduleview "github.com/bnema/semester-scheduler/internal/adapters/render/schedule"
	"github.com/bnema/semester-scheduler/internal/application"
	"github.com/bnema/semester-scheduler/internal/config"
	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd(app *app) *cobra.Command {
	var asJSON bool
	var noExport bool
	var hideSkipped bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and export the semester schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, app, generateOptions{asJSON: asJSON, noExport: noExport, hideSkipped: hideSkipped})
		},
	}

	addRangeFlags(cmd)
	cmd.Flags().Uint64("seed", 0, "Random seed for a reproducible schedule")
	cmd.Flags().String("output", "", "Export path, or - for stdout (default: output/semester_schedule.xlsx)")
	cmd.Flags().String("format", "", "Export format: xlsx, csv, json or yaml (default: from the output extension)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&noExport, "no-export", false, "Print the schedule without writing the export file")
	cmd.Flags().BoolVar(&hideSkipped, "hide-skipped", false, "Omit the skipped sessions section from the table view")

	return cmd
}

type generateOptions struct {
	asJSON      bool
	noExport    bool
	hideSkipped bool
}

func runGenerate(cmd *cobra.Command, app *app, opts generateOptions) error {
	ctx := cmd.Context()

	r, err := semesterRange(app)
	if err != nil {
		return err
	}
	seed, seeded := config.Seed(app.cfg)

	outputPath := ""
	if !opts.noExport {
		outputPath = strings.TrimSpace(app.cfg.GetString(config.KeyOutputPath))
	}
	toStdout := outputPath == export.StdoutPath
	if toStdout && opts.asJSON {
		return fmt.Errorf("%w: --json cannot be combined with --output %s", domain.ErrConfiguration, export.StdoutPath)
	}

	var format export.Format
	if outputPath != "" {
		format, err = app.exporter.FormatFor(outputPath)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConfiguration, err)
		}
	}

	plan, err := app.scheduler.Plan(ctx, application.PlanRequest{Range: r, Seed: seed, Seeded: seeded})
	if err != nil {
		return err
	}
	if plan.Schedule.Empty() {
		outputPath = ""
	}

	if outputPath != "" {
		exportFn := func(ctx context.Context) error {
			return app.scheduler.Export(ctx, plan, outputPath)
		}

		if opts.asJSON || toStdout {
			err = exportFn(ctx)
		} else {
			job := exportJob{path: outputPath, format: format, rows: len(plan.Schedule.Assignments)}
			err = runExportProgress(ctx, cmd.ErrOrStderr(), job, exportFn)
		}
		if err != nil {
			return err
		}
	}

	run, err := app.scheduler.RecordRun(ctx, plan, outputPath)
	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeJSON(cmd.OutOrStdout(), newScheduleOutput(run, plan.Schedule))
	}

	// stdout carries the export itself; everything else goes to stderr.
	if toStdout {
		if plan.Schedule.Empty() {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "No sessions could be staffed; nothing was exported.")
		}
		_, err = fmt.Fprintf(cmd.ErrOrStderr(), "run: %s\n", run.ID)
		return err
	}

	rendered, err := app.renderSchedule(plan.Schedule, scheduleview.RenderOptions{
		Title:       fmt.Sprintf("Semester Schedule %s to %s", r.Start.Format(domain.DateLayout), r.End.Format(domain.DateLayout)),
		HideSkipped: opts.hideSkipped,
	})
	if err != nil {
		return fmt.Errorf("render schedule: %w", err)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, rendered)

	switch {
	case plan.Schedule.Empty():
		_, _ = fmt.Fprintln(out, "No sessions could be staffed; nothing was exported.")
	case outputPath != "":
		_, _ = fmt.Fprintf(out, "Semester schedule saved to %s\n", outputPath)
	}

	_, err = fmt.Fprintf(out, "run: %s\n", run.ID)
	return err
}
