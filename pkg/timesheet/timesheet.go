package timesheet

import "time"

// Entry is one logged work session, recorded at day granularity.
type Entry struct {
	Id      int
	StaffId int
	// Date carries day precision only; time-of-day is always midnight local.
	Date    time.Time
	Minutes int
	Notes   string
}

// DateKey is the canonical day key used for grouping entries.
const DateKey = "2006-01-02"
