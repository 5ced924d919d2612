package domain

import (
	"slices"
	"time"
)

// Assignment is a session staffed by a lead and an assistant.
type Assignment struct {
	Date             time.Time
	Weekday          time.Weekday
	Week             ISOWeek
	ClassName        string
	Time             string
	Location         string
	LeadTeacher      string
	AssistantTeacher string
	Lesson           string
}

type SkipReason string

const (
	SkipNoLead              SkipReason = "no eligible lead"
	SkipNoAssistant         SkipReason = "no eligible assistant"
	SkipNoDistinctAssistant SkipReason = "no assistant distinct from lead"
)

// SkippedSession is a session that could not be staffed.
type SkippedSession struct {
	Session Session
	Reason  SkipReason
}

// Schedule is the outcome of one run: assignments sorted by date and time,
// plus the sessions that were dropped.
type Schedule struct {
	Assignments []Assignment
	Skipped     []SkippedSession
}

func (s Schedule) Empty() bool {
	return len(s.Assignments) == 0
}

// ScheduleSink collects committed assignments and skips in processing order.
type ScheduleSink struct {
	assignments []Assignment
	skipped     []SkippedSession
}

func NewScheduleSink() *ScheduleSink {
	return &ScheduleSink{}
}

func (s *ScheduleSink) Collect(assignment Assignment) {
	s.assignments = append(s.assignments, assignment)
}

func (s *ScheduleSink) Skip(session Session, reason SkipReason) {
	s.skipped = append(s.skipped, SkippedSession{Session: session, Reason: reason})
}

// Schedule returns the collected output, assignments sorted by (date, time).
func (s *ScheduleSink) Schedule() Schedule {
	assignments := slices.Clone(s.assignments)
	slices.SortStableFunc(assignments, func(a, b Assignment) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return CompareTimeLabels(a.Time, b.Time)
	})

	return Schedule{
		Assignments: assignments,
		Skipped:     slices.Clone(s.skipped),
	}
}
