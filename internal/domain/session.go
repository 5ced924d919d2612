package domain

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ISOWeek identifies an ISO 8601 week. The year is the ISO year, which can
// differ from the calendar year around New Year.
type ISOWeek struct {
	Year int
	Week int
}

func ISOWeekOf(date time.Time) ISOWeek {
	year, week := date.ISOWeek()
	return ISOWeek{Year: year, Week: week}
}

func (w ISOWeek) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// Session is one dated occurrence of a class.
type Session struct {
	Date    time.Time
	Weekday time.Weekday
	Week    ISOWeek
	Class   ClassDefinition
}

func NewSession(class ClassDefinition, date time.Time) Session {
	return Session{
		Date:    date,
		Weekday: date.Weekday(),
		Week:    ISOWeekOf(date),
		Class:   class,
	}
}

func (s Session) DateLabel() string {
	return s.Date.Format(DateLayout)
}

// compareSessions orders by date, then time of day, then class name.
func compareSessions(a, b Session) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if c := CompareTimeLabels(a.Class.Time, b.Class.Time); c != 0 {
		return c
	}
	switch {
	case a.Class.Name < b.Class.Name:
		return -1
	case a.Class.Name > b.Class.Name:
		return 1
	}
	return 0
}

// InChronologicalOrder reports whether sessions are sorted by date and
// time of day.
func InChronologicalOrder(sessions []Session) bool {
	for i := 1; i < len(sessions); i++ {
		prev, cur := sessions[i-1], sessions[i]
		if c := prev.Date.Compare(cur.Date); c > 0 {
			return false
		} else if c == 0 && CompareTimeLabels(prev.Class.Time, cur.Class.Time) > 0 {
			return false
		}
	}
	return true
}
