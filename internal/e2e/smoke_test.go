package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeRosterFixture(home))
	outputPath := filepath.Join(home, "output", "semester_schedule.xlsx")

	stdout, stderr, err := runSemsched(t, binaryPath, home, "validate")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "roster: ok")

	stdout, stderr, err = runSemsched(t, binaryPath, home, "generate", "--seed", "11", "--output", outputPath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Semester schedule saved to "+outputPath)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	stdout, stderr, err = runSemsched(t, binaryPath, home, "history")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "runs: 1")
	assert.Contains(t, stdout, outputPath)
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "semsched-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/semsched")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build semsched binary: %s", string(output))
	return binaryPath
}

func runSemsched(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = home
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

// writeRosterFixture lays out the default relative data/ files, so the
// binary runs from home without any config file.
func writeRosterFixture(home string) error {
	dataDir := filepath.Join(home, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	files := map[string]string{
		"classes.csv": `ClassName,MeetingDays,Time,Location
Algebra,"Monday,Wednesday",9:00 AM,Room 101
Biology,"Tuesday,Thursday",1:00 PM,Lab
`,
		"teachers.csv": `Name,Rank,AvailableDays,MaxClassesPerWeek
Lena,Lead,"Monday,Tuesday,Wednesday,Thursday",3
Omar,Lead,"Monday,Tuesday,Wednesday,Thursday",3
Ada,Assistant,"Monday,Tuesday,Wednesday,Thursday",3
Bo,Assistant,"Monday,Tuesday,Wednesday,Thursday",3
`,
		"lessons.txt": "Fractions\nDecimals\nRatios\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
