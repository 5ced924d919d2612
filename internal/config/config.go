// Package config loads scheduler settings from config.toml, SEMSCHED_*
// environment variables (including a local .env file) and command flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/semester-scheduler/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyRosterFormat   = "roster.format"
	KeyRosterClasses  = "roster.classes"
	KeyRosterTeachers = "roster.teachers"
	KeyRosterLessons  = "roster.lessons"
	KeyRosterPath     = "roster.path"
	KeySemesterStart  = "semester.start"
	KeySemesterEnd    = "semester.end"
	KeySeed           = "seed"
	KeyOutputPath     = "output.path"
	KeyOutputFormat   = "output.format"
	KeyRunsPath       = "runs.path"
	KeyLogLevel       = "log.level"

	RosterFormatCSV  = "csv"
	RosterFormatTOML = "toml"

	envPrefix  = "SEMSCHED"
	configName = "config"
	configType = "toml"
	configDir  = ".config/semsched"
)

// FlagKeys maps command flag names to the config keys they override.
var FlagKeys = map[string]string{
	"roster-format": KeyRosterFormat,
	"classes":       KeyRosterClasses,
	"teachers":      KeyRosterTeachers,
	"lessons":       KeyRosterLessons,
	"roster":        KeyRosterPath,
	"start":         KeySemesterStart,
	"end":           KeySemesterEnd,
	"seed":          KeySeed,
	"output":        KeyOutputPath,
	"format":        KeyOutputFormat,
	"runs":          KeyRunsPath,
	"log-level":     KeyLogLevel,
}

// Load builds the configuration. An explicit path must exist; the default
// $HOME/.config/semsched/config.toml is optional.
func Load(path string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(KeyRosterFormat, RosterFormatCSV)
	cfg.SetDefault(KeyRosterClasses, filepath.Join("data", "classes.csv"))
	cfg.SetDefault(KeyRosterTeachers, filepath.Join("data", "teachers.csv"))
	cfg.SetDefault(KeyRosterLessons, filepath.Join("data", "lessons.txt"))
	cfg.SetDefault(KeyRosterPath, filepath.Join("data", "roster.toml"))
	cfg.SetDefault(KeySemesterStart, "2025-08-18")
	cfg.SetDefault(KeySemesterEnd, "2025-12-19")
	cfg.SetDefault(KeyOutputPath, filepath.Join("output", "semester_schedule.xlsx"))
	cfg.SetDefault(KeyLogLevel, "warn")

	if path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDir))
	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return cfg, nil
}

// BindFlags lets any known flag present on flags override its config key.
func BindFlags(cfg *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := cfg.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

func SemesterRange(cfg *viper.Viper) (domain.DateRange, error) {
	r, err := domain.ParseDateRange(cfg.GetString(KeySemesterStart), cfg.GetString(KeySemesterEnd))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: semester: %w", domain.ErrConfiguration, err)
	}
	return r, nil
}

// Seed returns the configured random seed and whether one was set at all.
func Seed(cfg *viper.Viper) (uint64, bool) {
	if !cfg.IsSet(KeySeed) {
		return 0, false
	}
	return cfg.GetUint64(KeySeed), true
}
