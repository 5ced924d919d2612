package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, RosterFormatCSV, cfg.GetString(KeyRosterFormat))
	assert.Equal(t, filepath.Join("output", "semester_schedule.xlsx"), cfg.GetString(KeyOutputPath))

	r, err := SemesterRange(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2025-08-18", r.Start.Format(domain.DateLayout))
	assert.Equal(t, "2025-12-19", r.End.Format(domain.DateLayout))

	_, seeded := Seed(cfg)
	assert.False(t, seeded)
}

func TestLoadReadsHomeConfigAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SEMSCHED_SEMESTER_END", "2025-09-30")

	dir := filepath.Join(home, ".config", "semsched")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`seed = 12

[semester]
start = "2025-09-01"
end = "2025-12-31"

[roster]
format = "toml"
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	r, err := SemesterRange(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", r.Start.Format(domain.DateLayout))
	assert.Equal(t, "2025-09-30", r.End.Format(domain.DateLayout), "environment overrides file")
	assert.Equal(t, RosterFormatTOML, cfg.GetString(KeyRosterFormat))

	seed, seeded := Seed(cfg)
	assert.True(t, seeded)
	assert.Equal(t, uint64(12), seed)
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read config file")
}

func TestBindFlagsOverridesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.String("start", "", "")
	flags.String("end", "", "")
	flags.Uint64("seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--start", "2025-10-06", "--seed", "7"}))
	require.NoError(t, BindFlags(cfg, flags))

	r, err := SemesterRange(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", r.Start.Format(domain.DateLayout))
	assert.Equal(t, "2025-12-19", r.End.Format(domain.DateLayout), "unchanged flag keeps the default")

	seed, seeded := Seed(cfg)
	assert.True(t, seeded)
	assert.Equal(t, uint64(7), seed)
}

func TestSemesterRangeRejectsInvertedDates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SEMSCHED_SEMESTER_START", "2025-12-20")

	cfg, err := Load("")
	require.NoError(t, err)

	_, err = SemesterRange(cfg)
	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
