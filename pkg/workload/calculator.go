package workload

import (
	"math"
	"time"

	"github.com/lexload/lexload/internal/utils"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
	"github.com/lexload/lexload/pkg/workhours"
	log "github.com/sirupsen/logrus"
)

const dateKeyLayout = "2006-01-02"

// Calculator is the workload analytics engine. It is a pure computation over
// the inputs of one employee: given the same tasks, timesheet entries, and
// clock reading, it always produces the same report. It never mutates its
// inputs and holds no per-call state, so a single instance is safe for
// concurrent use across employees.
type Calculator struct {
	cfg      Config
	calendar workhours.Calculator
	clock    utils.Clock
}

// NewCalculator builds an engine. calendar may be nil, in which case plain
// weekend logic is used and every report is flagged as degraded.
func NewCalculator(cfg Config, calendar workhours.Calculator, clock utils.Clock) *Calculator {
	if calendar == nil {
		log.Warn("workload calculator running without office calendar, work-day answers degrade to weekend-only logic")
	}
	return &Calculator{cfg: cfg, calendar: calendar, clock: clock}
}

// Calculate produces the full workload report for one employee. tasks is
// expected to be pre-filtered to not-completed tasks by the caller.
func (c *Calculator) Calculate(employee staff.Staff, tasks []task.Task, entries []timesheet.Entry) Report {
	now := c.clock.Now()
	target := employee.DailyHoursTarget
	if target <= 0 {
		target = c.cfg.DefaultDailyHoursTarget
	}

	basic := c.basicMetrics(tasks)
	capacity := c.capacityMetrics(entries, target, now)
	urgency := c.urgencyMetrics(tasks, now)
	dailyLoad := c.dailyLoadAnalysis(tasks, target, now)
	breakdown := c.dailyTaskBreakdown(tasks, target, now)
	quality := c.taskQuality(tasks, now)
	dataQuality := c.dataQuality(tasks, entries, quality, now)
	weighted := c.weightedBacklog(tasks, target, now)
	score := c.compositeScore(basic, capacity, urgency, target)
	predictions := c.predictions(basic, dailyLoad, target, now)
	alerts := c.alerts(tasks, quality, dataQuality, weighted, now)

	return Report{
		EmployeeEmail:    employee.Email,
		CalculatedAt:     now,
		CalendarDegraded: c.calendar == nil,
		Basic:            basic,
		Capacity:         capacity,
		Urgency:          urgency,
		DailyLoad:        dailyLoad,
		Breakdown:        breakdown,
		TaskQuality:      quality,
		DataQuality:      dataQuality,
		WeightedBacklog:  weighted,
		Score:            score,
		Predictions:      predictions,
		Alerts:           alerts,
	}
}

func (c *Calculator) basicMetrics(tasks []task.Task) BasicMetrics {
	metrics := BasicMetrics{
		ActiveTasksCount: len(tasks),
		TasksByPriority:  map[task.Priority]int{},
	}
	estimatedMinutes := 0
	actualMinutes := 0
	for _, t := range tasks {
		estimatedMinutes += t.EstimatedMinutes
		actualMinutes += t.ActualMinutes
		metrics.TasksByPriority[task.PriorityFromWire(string(t.Priority))]++
	}
	metrics.TotalEstimatedHours = float64(estimatedMinutes) / 60
	metrics.TotalActualHours = float64(actualMinutes) / 60
	metrics.TotalBacklogHours = float64(estimatedMinutes-actualMinutes) / 60
	return metrics
}

func (c *Calculator) capacityMetrics(entries []timesheet.Entry, dailyTarget float64, now time.Time) CapacityMetrics {
	today := startOfDay(now)
	// Week starts on the most recent Sunday.
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayMinutes, weekMinutes, monthMinutes int
	reportedDates := map[string]bool{}
	for _, entry := range entries {
		day := startOfDay(entry.Date)
		if day.After(today) {
			continue
		}
		if day.Equal(today) {
			todayMinutes += entry.Minutes
		}
		if !day.Before(weekStart) {
			weekMinutes += entry.Minutes
		}
		if !day.Before(monthStart) {
			monthMinutes += entry.Minutes
			reportedDates[day.Format(dateKeyLayout)] = true
		}
	}

	workDaysPassed := c.workDaysPassedThisMonth(now)
	monthlyTarget := float64(c.workDaysInMonth(now.Year(), now.Month())) * dailyTarget
	monthlyTargetSoFar := float64(workDaysPassed) * dailyTarget

	utilization := 0.0
	if monthlyTargetSoFar > 0 {
		utilization = round1(float64(monthMinutes) / 60 / monthlyTargetSoFar * 100)
	}
	consistency := 0.0
	if workDaysPassed > 0 {
		consistency = math.Min(100, float64(len(reportedDates))/float64(workDaysPassed)*100)
	}

	return CapacityMetrics{
		HoursWorkedToday:     float64(todayMinutes) / 60,
		HoursWorkedThisWeek:  float64(weekMinutes) / 60,
		HoursWorkedThisMonth: float64(monthMinutes) / 60,
		MonthlyTarget:        monthlyTarget,
		MonthlyTargetSoFar:   monthlyTargetSoFar,
		MonthlyUtilization:   utilization,
		ReportingConsistency: consistency,
		WorkDaysPassed:       workDaysPassed,
	}
}

func (c *Calculator) urgencyMetrics(tasks []task.Task, now time.Time) UrgencyMetrics {
	metrics := UrgencyMetrics{}
	urgency := c.cfg.Urgency
	for _, t := range tasks {
		if t.Deadline == nil {
			continue
		}
		days := t.Deadline.Sub(now).Hours() / 24
		switch {
		case days < urgency.Within24hDays-1:
			metrics.Overdue++
		case days <= urgency.Within24hDays:
			metrics.DueWithin24h++
		case days <= urgency.Within3DayDays:
			metrics.DueWithin3Days++
		case days <= urgency.Within7DayDays:
			metrics.DueWithin7Days++
		}
	}
	score := float64(metrics.Overdue)*urgency.OverdueScore +
		float64(metrics.DueWithin24h)*urgency.Within24hScore +
		float64(metrics.DueWithin3Days)*urgency.Within3dScore +
		float64(metrics.DueWithin7Days)*urgency.Within7dScore
	metrics.UrgencyScore = math.Min(100, score)
	metrics.OverduePlusDueSoon = metrics.Overdue + metrics.DueWithin24h + metrics.DueWithin3Days
	return metrics
}

// isWorkDay consults the office calendar, degrading to weekend-only logic
// when no calendar is available.
func (c *Calculator) isWorkDay(t time.Time) bool {
	if c.calendar == nil {
		return !workhours.IsWeekend(t)
	}
	return c.calendar.IsWorkDay(t)
}

func (c *Calculator) workDaysInMonth(year int, month time.Month) int {
	if c.calendar == nil {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		count := 0
		for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
			if !workhours.IsWeekend(d) {
				count++
			}
		}
		return count
	}
	return c.calendar.WorkDaysInMonth(year, month)
}

func (c *Calculator) workDaysPassedThisMonth(now time.Time) int {
	if c.calendar == nil {
		// Rough approximation: ~70% of elapsed calendar days are work days.
		return int(math.Floor(float64(now.Day()) * 0.7))
	}
	return c.calendar.WorkDaysPassedThisMonth()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
