package workhours

import "time"

// Holiday is a non-working office day (court recess, national holiday).
type Holiday struct {
	Id   int
	Uid  string
	Date time.Time
	Name string
}

// Calculator answers work-day questions for the office calendar.
// The office work week runs Sunday through Thursday.
type Calculator interface {
	IsWorkDay(t time.Time) bool
	WorkDaysInMonth(year int, month time.Month) int
	WorkDaysPassedThisMonth() int
}
