package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/semester-scheduler/internal/adapters/export"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// exportJob is what the progress view knows about a running export.
type exportJob struct {
	path   string
	format export.Format
	rows   int
}

func (j exportJob) summary() string {
	unit := "rows"
	if j.rows == 1 {
		unit = "row"
	}
	return fmt.Sprintf("%d %s as %s to %s", j.rows, unit, strings.ToUpper(string(j.format)), j.path)
}

type exportFinishedMsg struct {
	err     error
	elapsed time.Duration
}

type exportProgressModel struct {
	job      exportJob
	spinner  spinner.Model
	start    tea.Cmd
	finished *exportFinishedMsg
	doneMark lipgloss.Style
	failMark lipgloss.Style
}

func newExportProgressModel(job exportJob, start tea.Cmd) exportProgressModel {
	return exportProgressModel{
		job: job,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		start:    start,
		doneMark: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failMark: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m exportProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

func (m exportProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case exportFinishedMsg:
		m.finished = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		if m.finished != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View keeps a one-line record of the export once it has finished.
func (m exportProgressModel) View() string {
	switch {
	case m.finished == nil:
		return fmt.Sprintf("%s Writing %s\n", m.spinner.View(), m.job.summary())
	case m.finished.err != nil:
		return fmt.Sprintf("%s Export to %s failed\n", m.failMark.Render("x"), m.job.path)
	default:
		return fmt.Sprintf("%s Wrote %s (%s)\n", m.doneMark.Render("ok"), m.job.summary(), m.finished.elapsed.Round(time.Millisecond))
	}
}

func runExportProgress(ctx context.Context, output io.Writer, job exportJob, write func(context.Context) error) error {
	start := func() tea.Msg {
		began := time.Now()
		err := write(ctx)
		return exportFinishedMsg{err: err, elapsed: time.Since(began)}
	}

	p := tea.NewProgram(
		newExportProgressModel(job, start),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}

	model, ok := final.(exportProgressModel)
	if !ok || model.finished == nil {
		return fmt.Errorf("export progress ended without a result (%T)", final)
	}
	return model.finished.err
}
