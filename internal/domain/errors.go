package domain

import "errors"

var (
	// ErrConfiguration marks input problems that abort a run before any
	// session is assigned.
	ErrConfiguration = errors.New("configuration error")

	ErrEmptyLessonList    = errors.New("lesson list is empty")
	ErrUnknownRank        = errors.New("unknown rank")
	ErrUnknownWeekday     = errors.New("unknown weekday")
	ErrInvalidDateRange   = errors.New("start date is after end date")
	ErrInvalidClass       = errors.New("invalid class definition")
	ErrInvalidTeacher     = errors.New("invalid teacher definition")
	ErrDuplicateTeacher   = errors.New("duplicate teacher name")
	ErrSessionsOutOfOrder = errors.New("sessions are not in chronological order")
	ErrRunNotFound        = errors.New("run not found")
)
