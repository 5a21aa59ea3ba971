package workhours

import (
	"context"
	"sync"
	"time"

	"github.com/lexload/lexload/internal/utils"
	log "github.com/sirupsen/logrus"
)

// CalculatorImpl answers work-day questions from the office holiday table.
// When the holiday table cannot be read it keeps answering with plain
// weekend logic and flips into degraded mode instead of failing callers.
type CalculatorImpl struct {
	repo  HolidayRepo
	clock utils.Clock

	mu       sync.Mutex
	years    map[int]map[string]bool // year -> holiday date keys
	degraded bool
}

func NewCalculator(repo HolidayRepo, clock utils.Clock) *CalculatorImpl {
	return &CalculatorImpl{
		repo:  repo,
		clock: clock,
		years: map[int]map[string]bool{},
	}
}

// Degraded reports whether holiday data could not be loaded and answers are
// based on weekend logic only.
func (c *CalculatorImpl) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

func (c *CalculatorImpl) IsWorkDay(t time.Time) bool {
	if IsWeekend(t) {
		return false
	}
	holidays := c.holidaysForYear(t.Year())
	return !holidays[t.Format("2006-01-02")]
}

func (c *CalculatorImpl) WorkDaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	count := 0
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if c.IsWorkDay(d) {
			count++
		}
	}
	return count
}

func (c *CalculatorImpl) WorkDaysPassedThisMonth() int {
	now := c.clock.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	count := 0
	for d := first; !d.After(now); d = d.AddDate(0, 0, 1) {
		if c.IsWorkDay(d) {
			count++
		}
	}
	return count
}

func (c *CalculatorImpl) holidaysForYear(year int) map[string]bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if holidays, ok := c.years[year]; ok {
		return holidays
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	stored, err := c.repo.ListBetween(context.Background(), from, to)
	if err != nil {
		log.Warnf("holiday data for %d unavailable, falling back to weekend-only work days: %v", year, err)
		c.degraded = true
		c.years[year] = map[string]bool{}
		return c.years[year]
	}

	holidays := make(map[string]bool, len(stored))
	for _, h := range stored {
		holidays[h.Date.Format("2006-01-02")] = true
	}
	c.years[year] = holidays
	return holidays
}

// Invalidate drops the cached holiday set so the next lookup re-reads the
// table. Called after holiday imports and edits.
func (c *CalculatorImpl) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.years = map[int]map[string]bool{}
	c.degraded = false
}

// IsWeekend reports whether t falls on the office weekend (Friday/Saturday;
// the office work week is Sunday through Thursday).
func IsWeekend(t time.Time) bool {
	return t.Weekday() == time.Friday || t.Weekday() == time.Saturday
}
