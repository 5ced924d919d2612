package domain

import (
	"strings"
	"time"
)

var timeLabelLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
}

// ParseTimeLabel returns the minutes since midnight for a time-of-day label
// such as "09:30", "9:30 AM" or "3PM". A range label like "9:00-10:30" is
// ordered by its start.
func ParseTimeLabel(label string) (int, bool) {
	value := strings.ToUpper(strings.TrimSpace(label))
	if start, _, found := strings.Cut(value, "-"); found {
		value = strings.TrimSpace(start)
	}
	for _, layout := range timeLabelLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.Hour()*60 + parsed.Minute(), true
		}
	}
	return 0, false
}

// CompareTimeLabels orders parseable labels by time of day. Unparseable
// labels sort after parseable ones and lexically among themselves.
func CompareTimeLabels(a, b string) int {
	am, aok := ParseTimeLabel(a)
	bm, bok := ParseTimeLabel(b)
	switch {
	case aok && bok:
		return am - bm
	case aok:
		return -1
	case bok:
		return 1
	}
	return strings.Compare(a, b)
}
