package domain

import (
	"fmt"
	"strings"
)

type Rank string

const (
	RankLead      Rank = "Lead"
	RankAssistant Rank = "Assistant"
)

func ParseRank(value string) (Rank, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lead":
		return RankLead, nil
	case "assistant":
		return RankAssistant, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRank, value)
	}
}

// TeacherDefinition is a staff member who can be paired to sessions of
// their rank.
type TeacherDefinition struct {
	Name          string
	Rank          Rank
	AvailableDays WeekdaySet
	MaxPerWeek    int
}

func (t TeacherDefinition) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTeacher)
	}
	if t.Rank != RankLead && t.Rank != RankAssistant {
		return fmt.Errorf("teacher %q: %w %q", t.Name, ErrUnknownRank, t.Rank)
	}
	if t.MaxPerWeek <= 0 {
		return fmt.Errorf("%w %q: weekly max must be positive, got %d", ErrInvalidTeacher, t.Name, t.MaxPerWeek)
	}

	return nil
}
