package domain

import (
	"fmt"
	"strings"
)

// ClassDefinition is a recurring class meeting on a fixed set of weekdays.
type ClassDefinition struct {
	Name        string
	MeetingDays WeekdaySet
	Time        string
	Location    string
}

func (c ClassDefinition) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClass)
	}
	if c.MeetingDays.Empty() {
		return fmt.Errorf("%w %q: meeting days are required", ErrInvalidClass, c.Name)
	}
	if strings.TrimSpace(c.Time) == "" {
		return fmt.Errorf("%w %q: time is required", ErrInvalidClass, c.Name)
	}

	return nil
}
