package workload

import (
	"time"

	"github.com/lexload/lexload/pkg/workhours"
)

type stubCalendar struct {
	holidays       map[string]bool
	workDaysPassed int
}

func newStubCalendar() *stubCalendar {
	return &stubCalendar{holidays: map[string]bool{}}
}

func (s *stubCalendar) addHoliday(date time.Time) {
	s.holidays[date.Format(dateKeyLayout)] = true
}

func (s *stubCalendar) IsWorkDay(date time.Time) bool {
	if workhours.IsWeekend(date) {
		return false
	}
	return !s.holidays[date.Format(dateKeyLayout)]
}

func (s *stubCalendar) WorkDaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	count := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if s.IsWorkDay(d) {
			count++
		}
	}
	return count
}

func (s *stubCalendar) WorkDaysPassedThisMonth() int {
	return s.workDaysPassed
}
