package domain

import "time"

// Run is the ledger entry written for each generated schedule.
type Run struct {
	ID          string
	GeneratedAt time.Time
	Range       DateRange
	Seed        uint64
	Seeded      bool
	Sessions    int
	Assignments int
	Skipped     int
	OutputPath  string
}
