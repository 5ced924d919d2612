package domain

import "time"

type teacherWeek struct {
	teacher string
	week    ISOWeek
}

// LoadRecord is a teacher's workload within one ISO week.
type LoadRecord struct {
	Days  WeekdaySet
	Count int
}

// LoadTracker accumulates per-teacher weekly workload for a single
// scheduling run. Records are created on first use and never removed.
type LoadTracker struct {
	records map[teacherWeek]*LoadRecord
}

func NewLoadTracker() *LoadTracker {
	return &LoadTracker{records: map[teacherWeek]*LoadRecord{}}
}

func (t *LoadTracker) CurrentCount(teacher string, week ISOWeek) int {
	record, ok := t.records[teacherWeek{teacher: teacher, week: week}]
	if !ok {
		return 0
	}
	return record.Count
}

func (t *LoadTracker) HasWorked(teacher string, week ISOWeek, day time.Weekday) bool {
	record, ok := t.records[teacherWeek{teacher: teacher, week: week}]
	if !ok {
		return false
	}
	return record.Days.Has(day)
}

func (t *LoadTracker) Record(teacher string, week ISOWeek, day time.Weekday) {
	key := teacherWeek{teacher: teacher, week: week}
	record, ok := t.records[key]
	if !ok {
		record = &LoadRecord{}
		t.records[key] = record
	}
	record.Days |= NewWeekdaySet(day)
	record.Count++
}

// Eligible reports whether the teacher can take a session on day in week:
// available that weekday, under the weekly cap, and not already working
// that day.
func (t *LoadTracker) Eligible(teacher TeacherDefinition, week ISOWeek, day time.Weekday) bool {
	if !teacher.AvailableDays.Has(day) {
		return false
	}
	if t.CurrentCount(teacher.Name, week) >= teacher.MaxPerWeek {
		return false
	}
	return !t.HasWorked(teacher.Name, week, day)
}
