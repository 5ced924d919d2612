package domain

import (
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a set of days of the week stored as a bitmask.
type WeekdaySet uint8

// weekOrder lists days Monday first, the order used for display.
var weekOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var set WeekdaySet
	for _, day := range days {
		set |= 1 << uint(day)
	}
	return set
}

func (s WeekdaySet) Has(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

func (s WeekdaySet) Empty() bool {
	return s == 0
}

// Days returns the members of the set, Monday first.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, len(weekOrder))
	for _, day := range weekOrder {
		if s.Has(day) {
			days = append(days, day)
		}
	}
	return days
}

func (s WeekdaySet) Names() []string {
	days := s.Days()
	names := make([]string, 0, len(days))
	for _, day := range days {
		names = append(names, day.String())
	}
	return names
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Names(), ",")
}

// ParseWeekday accepts full English day names and three-letter
// abbreviations, case-insensitively.
func ParseWeekday(value string) (time.Weekday, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	for _, day := range weekOrder {
		name := strings.ToLower(day.String())
		if trimmed == name || (len(trimmed) == 3 && strings.HasPrefix(name, trimmed)) {
			return day, nil
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownWeekday, value)
}

// ParseWeekdayList parses a comma-separated list such as "Monday,Wednesday".
// Empty items are ignored.
func ParseWeekdayList(value string) (WeekdaySet, error) {
	return ParseWeekdays(strings.Split(value, ","))
}

func ParseWeekdays(values []string) (WeekdaySet, error) {
	var set WeekdaySet
	for _, item := range values {
		if strings.TrimSpace(item) == "" {
			continue
		}
		day, err := ParseWeekday(item)
		if err != nil {
			return 0, err
		}
		set |= NewWeekdaySet(day)
	}

	return set, nil
}
