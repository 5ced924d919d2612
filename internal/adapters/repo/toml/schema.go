package toml

import "fmt"

const currentRosterSchemaVersion = 1

type rosterFileSchema struct {
	Version  int             `toml:"version"`
	Lessons  []string        `toml:"lessons"`
	Classes  []classSchema   `toml:"classes"`
	Teachers []teacherSchema `toml:"teachers"`
}

func (s rosterFileSchema) validateVersion() error {
	if s.Version > currentRosterSchemaVersion {
		return fmt.Errorf("unsupported roster schema version %d (current %d)", s.Version, currentRosterSchemaVersion)
	}

	return nil
}

type classSchema struct {
	Name        string   `toml:"name"`
	MeetingDays []string `toml:"meeting_days"`
	Time        string   `toml:"time"`
	Location    string   `toml:"location"`
}

type teacherSchema struct {
	Name          string   `toml:"name"`
	Rank          string   `toml:"rank"`
	AvailableDays []string `toml:"available_days"`
	MaxPerWeek    int      `toml:"max_per_week"`
}
