package schedule

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type RenderOptions struct {
	Title       string
	HideSkipped bool
}

var assignmentHeaders = []string{"Date", "Weekday", "Class", "Time", "Location", "Lead", "Assistant", "Lesson"}

func renderSchedule(schedule domain.Schedule, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Semester Schedule"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("assignments: %d  skipped: %d", len(schedule.Assignments), len(schedule.Skipped))),
	}

	if schedule.Empty() {
		lines = append(lines, s.empty.Render("No sessions could be staffed."))
	} else {
		rows := make([][]string, 0, len(schedule.Assignments))
		for _, a := range schedule.Assignments {
			rows = append(rows, []string{
				a.Date.Format(domain.DateLayout),
				a.Weekday.String(),
				sanitize(a.ClassName),
				sanitize(a.Time),
				sanitize(a.Location),
				sanitize(a.LeadTeacher),
				sanitize(a.AssistantTeacher),
				sanitize(a.Lesson),
			})
		}
		lines = append(lines, s.section.Render(renderTable(assignmentHeaders, rows, s)))
		lines = append(lines, s.section.Render(renderWorkload(schedule.Assignments, s)))
	}

	if !opts.HideSkipped && len(schedule.Skipped) > 0 {
		skipped := []string{s.warning.Render(fmt.Sprintf("Skipped sessions (%d)", len(schedule.Skipped)))}
		for _, item := range schedule.Skipped {
			skipped = append(skipped, s.teacher.Render(fmt.Sprintf("%s %s: %s",
				item.Session.DateLabel(), sanitize(item.Session.Class.Name), item.Reason)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, skipped...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSessions(sessions []domain.Session, s styles) string {
	lines := []string{
		s.title.Render("Class Sessions"),
		s.header.Render(fmt.Sprintf("sessions: %d", len(sessions))),
	}

	if len(sessions) == 0 {
		lines = append(lines, s.empty.Render("No sessions in range."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		rows = append(rows, []string{
			session.DateLabel(),
			session.Weekday.String(),
			session.Week.String(),
			sanitize(session.Class.Name),
			sanitize(session.Class.Time),
			sanitize(session.Class.Location),
		})
	}
	headers := []string{"Date", "Weekday", "Week", "Class", "Time", "Location"}
	lines = append(lines, s.section.Render(renderTable(headers, rows, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(headers []string, rows [][]string, s styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.tableHead
			}
			return s.cell
		}).
		Headers(headers...).
		Rows(rows...)

	return t.Render()
}

type workload struct {
	name      string
	lead      int
	assistant int
}

func (w workload) total() int {
	return w.lead + w.assistant
}

func renderWorkload(assignments []domain.Assignment, s styles) string {
	byName := map[string]*workload{}
	for _, a := range assignments {
		if byName[a.LeadTeacher] == nil {
			byName[a.LeadTeacher] = &workload{name: a.LeadTeacher}
		}
		byName[a.LeadTeacher].lead++
		if byName[a.AssistantTeacher] == nil {
			byName[a.AssistantTeacher] = &workload{name: a.AssistantTeacher}
		}
		byName[a.AssistantTeacher].assistant++
	}

	loads := make([]workload, 0, len(byName))
	busiest := 0
	width := 0
	for _, load := range byName {
		loads = append(loads, *load)
		busiest = max(busiest, load.total())
		width = max(width, lipgloss.Width(sanitize(load.name)))
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].total() == loads[j].total() {
			return loads[i].name < loads[j].name
		}
		return loads[i].total() > loads[j].total()
	})

	lines := []string{s.title.Render("Workload")}
	for _, load := range loads {
		name := s.teacher.Render(fmt.Sprintf("%-*s", width, sanitize(load.name)))
		bar := renderProgressBar(float64(load.total())/float64(busiest)*100, 20, s)
		meta := s.barText.Render(fmt.Sprintf("%d sessions (lead %d, assistant %d)", load.total(), load.lead, load.assistant))
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, name, " ", bar, " ", meta))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100.0))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func sanitize(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
