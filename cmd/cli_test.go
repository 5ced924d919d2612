package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/semester-scheduler/internal/adapters/export"
	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classesFixture = `ClassName,MeetingDays,Time,Location
Algebra,Monday,9:00 AM,Room 101
Biology,Wednesday,11:00 AM,Lab
`

const teachersFixture = `Name,Rank,AvailableDays,MaxClassesPerWeek
Lena,Lead,"Monday,Wednesday",3
Omar,Lead,"Monday,Wednesday",3
Ada,Assistant,"Monday,Wednesday",3
Bo,Assistant,"Monday,Wednesday",3
`

const lessonsFixture = `Fractions
Decimals
`

func TestGenerateExportsCSV(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))
	outputPath := filepath.Join(home, "out", "schedule.csv")

	stdout, _, err := executeCLI(t, home, "generate", "--seed", "7", "--output", outputPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Semester schedule saved to "+outputPath)
	assert.Contains(t, stdout, "run: ")
	assert.Contains(t, stdout, "Algebra")

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Weekday,ClassName,Time,Location,LeadTeacher,AssistantTeacher,Lesson", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2025-08-18,Monday,Algebra,9:00 AM,Room 101,"))
	assert.True(t, strings.HasPrefix(lines[2], "2025-08-20,Wednesday,Biology,11:00 AM,Lab,"))
}

func TestGenerateJSONOutput(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	stdout, _, err := executeCLI(t, home, "generate", "--json", "--no-export")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var out scheduleOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, "2025-08-18", out.Start)
	assert.Equal(t, "2025-08-24", out.End)
	assert.Nil(t, out.Seed)
	assert.Equal(t, 2, out.Sessions)
	assert.Empty(t, out.OutputPath)
	assert.Empty(t, out.Skipped)
	require.Len(t, out.Assignments, 2)
	for _, row := range out.Assignments {
		assert.NotEqual(t, row.LeadTeacher, row.AssistantTeacher)
		assert.Contains(t, []string{"Lena", "Omar"}, row.LeadTeacher)
		assert.Contains(t, []string{"Ada", "Bo"}, row.AssistantTeacher)
		assert.Contains(t, []string{"Fractions", "Decimals"}, row.Lesson)
	}
}

func TestGenerateSameSeedSameSchedule(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	generate := func() scheduleOutput {
		stdout, _, err := executeCLI(t, home, "generate", "--json", "--no-export", "--seed", "42")
		require.NoError(t, err)

		var out scheduleOutput
		require.NoError(t, json.Unmarshal([]byte(stdout), &out))
		return out
	}

	first := generate()
	second := generate()
	require.NotNil(t, first.Seed)
	assert.Equal(t, uint64(42), *first.Seed)
	assert.Equal(t, first.Assignments, second.Assignments)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestGenerateWithoutAssistantsExportsNothing(t *testing.T) {
	home := t.TempDir()
	leadsOnly := `Name,Rank,AvailableDays,MaxClassesPerWeek
Lena,Lead,"Monday,Wednesday",3
`
	require.NoError(t, writeRosterFixture(home, leadsOnly, lessonsFixture))
	outputPath := filepath.Join(home, "out", "schedule.xlsx")

	stdout, stderr, err := executeCLI(t, home, "generate", "--output", outputPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No sessions could be staffed")
	assert.Contains(t, stdout, "Skipped sessions (2)")
	assert.NotContains(t, stdout, "Semester schedule saved to")
	assert.Contains(t, stderr, "skipping session")
	assert.Contains(t, stderr, string(domain.SkipNoAssistant))

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))

	stdout, _, err = executeCLI(t, home, "generate", "--output", outputPath, "--hide-skipped")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Skipped sessions")
}

func TestGenerateRejectsUnknownRank(t *testing.T) {
	home := t.TempDir()
	badRank := `Name,Rank,AvailableDays,MaxClassesPerWeek
Lena,Principal,Monday,3
`
	require.NoError(t, writeRosterFixture(home, badRank, lessonsFixture))

	_, _, err := executeCLI(t, home, "generate", "--no-export")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrUnknownRank)
	assert.Contains(t, err.Error(), "teachers row 2")
}

func TestGenerateRejectsEmptyLessonList(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, "\n  \n"))

	_, _, err := executeCLI(t, home, "generate", "--no-export")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrEmptyLessonList)
}

func TestGenerateRejectsInvertedRange(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	_, _, err := executeCLI(t, home, "generate", "--no-export", "--start", "2025-09-01", "--end", "2025-08-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestGenerateRejectsUnknownExportFormat(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	_, _, err := executeCLI(t, home, "generate", "--format", "pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSessionsCommandListsExpandedSessions(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	stdout, _, err := executeCLI(t, home, "sessions", "--json")
	require.NoError(t, err)

	var sessions []sessionOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &sessions))
	assert.Equal(t, []sessionOutput{
		{Date: "2025-08-18", Weekday: "Monday", Week: "2025-W34", ClassName: "Algebra", Time: "9:00 AM", Location: "Room 101"},
		{Date: "2025-08-20", Weekday: "Wednesday", Week: "2025-W34", ClassName: "Biology", Time: "11:00 AM", Location: "Lab"},
	}, sessions)

	stdout, _, err = executeCLI(t, home, "sessions", "--end", "2025-08-31")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2025-08-27")
	assert.Contains(t, stdout, "Biology")
}

func TestValidateCommandSummarisesRoster(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	stdout, _, err := executeCLI(t, home, "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, "roster: ok")
	assert.Contains(t, stdout, "classes: 2")
	assert.Contains(t, stdout, "teachers: 4 (lead: 2, assistant: 2)")
	assert.Contains(t, stdout, "lessons: 2")
	assert.NotContains(t, stdout, "warning:")
}

func TestValidateCommandRejectsDuplicateTeacher(t *testing.T) {
	home := t.TempDir()
	duplicate := `Name,Rank,AvailableDays,MaxClassesPerWeek
Lena,Lead,Monday,3
Lena,Assistant,Monday,3
`
	require.NoError(t, writeRosterFixture(home, duplicate, lessonsFixture))

	_, _, err := executeCLI(t, home, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTeacher)
}

func TestValidateCommandReadsTOMLRoster(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	rosterPath := filepath.Join(home, "roster.toml")
	roster := `version = 1
lessons = ["Fractions"]

[[classes]]
name = "Algebra"
meeting_days = ["Monday"]
time = "9:00 AM"
location = "Room 101"

[[teachers]]
name = "Lena"
rank = "Lead"
available_days = ["Monday"]
max_per_week = 2
`
	require.NoError(t, os.WriteFile(rosterPath, []byte(roster), 0o644))

	stdout, _, err := executeCLI(t, home, "validate", "--roster-format", "toml", "--roster", rosterPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "classes: 1")
	assert.Contains(t, stdout, "teachers: 1 (lead: 1, assistant: 0)")
	assert.Contains(t, stdout, "warning: no Assistant teachers")
}

func TestHistoryListsGeneratedRuns(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	stdout, _, err := executeCLI(t, home, "generate", "--json", "--no-export", "--seed", "3")
	require.NoError(t, err)
	var generated scheduleOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &generated))

	stdout, _, err = executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "runs: 1")
	assert.Contains(t, stdout, generated.RunID)
	assert.Contains(t, stdout, "2025-08-18..2025-08-24")
	assert.Contains(t, stdout, "2/2 staffed")

	stdout, _, err = executeCLI(t, home, "history", "--id", generated.RunID, "--json")
	require.NoError(t, err)
	var run runOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &run))
	assert.Equal(t, generated.RunID, run.ID)
	require.NotNil(t, run.Seed)
	assert.Equal(t, uint64(3), *run.Seed)
	assert.Equal(t, "2025-08-18", run.Start)
	assert.Equal(t, "2025-08-24", run.End)
	assert.Contains(t, stdout, `"generated_at"`)
	assert.NotContains(t, stdout, `"GeneratedAt"`)

	stdout, _, err = executeCLI(t, home, "history", "--json")
	require.NoError(t, err)
	var runs []runOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Assignments)

	_, _, err = executeCLI(t, home, "history", "--id", "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestGenerateAcceptsFullRangeSeed(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))
	outputPath := filepath.Join(home, "out", "schedule.csv")

	stdout, _, err := executeCLI(t, home, "generate", "--seed", "18446744073709551615", "--output", outputPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Semester schedule saved to "+outputPath)
	assert.FileExists(t, outputPath)

	stdout, _, err = executeCLI(t, home, "history", "--json")
	require.NoError(t, err)
	var runs []runOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &runs))
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].Seed)
	assert.Equal(t, uint64(math.MaxUint64), *runs[0].Seed)
	assert.Equal(t, outputPath, runs[0].OutputPath)
}

func TestGenerateChecksExportFormatBeforePlanning(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	_, _, err := executeCLI(t, home, "generate", "--output", filepath.Join(home, "schedule.pdf"))
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	stdout, _, err := executeCLI(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "runs: 0")
}

func TestGenerateExportsToStdout(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeRosterFixture(home, teachersFixture, lessonsFixture))

	stdout, stderr, err := executeCLI(t, home, "generate", "--output", "-", "--format", "csv", "--seed", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Weekday,ClassName,Time,Location,LeadTeacher,AssistantTeacher,Lesson", lines[0])
	assert.NotContains(t, stdout, "Semester Schedule")
	assert.Contains(t, stderr, "run: ")

	_, _, err = executeCLI(t, home, "generate", "--output", "-")
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, _, err = executeCLI(t, home, "generate", "--output", "-", "--format", "csv", "--json")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestVersionCommandSkipsConfig(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version", "--config", filepath.Join(home, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeRosterFixture(home, teachers, lessons string) error {
	dataDir := filepath.Join(home, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		"classes.csv":  classesFixture,
		"teachers.csv": teachers,
		"lessons.txt":  lessons,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}

	configDir := filepath.Join(home, ".config", "semsched")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	config := fmt.Sprintf(`[semester]
start = "2025-08-18"
end = "2025-08-24"

[roster]
format = "csv"
classes = %q
teachers = %q
lessons = %q
`,
		filepath.Join(dataDir, "classes.csv"),
		filepath.Join(dataDir, "teachers.csv"),
		filepath.Join(dataDir, "lessons.txt"),
	)

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0o644)
}
