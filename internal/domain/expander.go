package domain

import (
	"slices"
)

// ExpandSessions turns recurring class definitions into dated sessions for
// every date in the range whose weekday the class meets on. The result is
// in chronological order.
func ExpandSessions(classes []ClassDefinition, r DateRange) ([]Session, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0)
	for _, date := range r.Dates() {
		for _, class := range classes {
			if !class.MeetingDays.Has(date.Weekday()) {
				continue
			}
			sessions = append(sessions, NewSession(class, date))
		}
	}

	slices.SortStableFunc(sessions, compareSessions)
	return sessions, nil
}
