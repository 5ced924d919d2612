package toml

import "fmt"

const currentRunsSchemaVersion = 1

type runsFileSchema struct {
	Version int         `toml:"version"`
	Runs    []runSchema `toml:"runs"`
}

func (s *runsFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentRunsSchemaVersion
	}
}

func (s runsFileSchema) validateVersion() error {
	if s.Version > currentRunsSchemaVersion {
		return fmt.Errorf("unsupported runs schema version %d (current %d)", s.Version, currentRunsSchemaVersion)
	}

	return nil
}

type runSchema struct {
	ID          string `toml:"id"`
	GeneratedAt string `toml:"generated_at"`
	Start       string `toml:"start"`
	End         string `toml:"end"`
	Seed        string `toml:"seed,omitempty"`
	Seeded      bool   `toml:"seeded"`
	Sessions    int    `toml:"sessions"`
	Assignments int    `toml:"assignments"`
	Skipped     int    `toml:"skipped"`
	OutputPath  string `toml:"output_path,omitempty"`
}
