package workload

import (
	"math"
	"sort"
	"time"

	"github.com/lexload/lexload/pkg/task"
)

// distributeDailyShares spreads each task's remaining work evenly across the
// work days between now and its deadline. Overdue tasks (and tasks whose
// deadline window contains no work day at all) put everything on today,
// but only when today itself is a work day.
func (c *Calculator) distributeDailyShares(tasks []task.Task, now time.Time) map[string][]TaskShare {
	today := startOfDay(now)
	days := map[string][]TaskShare{}

	addShare := func(day time.Time, t task.Task, hours float64) {
		key := day.Format(dateKeyLayout)
		days[key] = append(days[key], TaskShare{Task: t, Hours: hours})
	}

	for _, t := range tasks {
		remaining := t.RemainingMinutes()
		if remaining <= 0 || t.Deadline == nil {
			continue
		}
		remainingHours := float64(remaining) / 60
		deadlineDay := startOfDay(*t.Deadline)

		if !deadlineDay.After(today) {
			// Due today or already past: everything lands on today.
			if c.isWorkDay(today) {
				addShare(today, t, remainingHours)
			}
			continue
		}

		workDays := 0
		for d := today; !d.After(deadlineDay); d = d.AddDate(0, 0, 1) {
			if c.isWorkDay(d) {
				workDays++
			}
		}
		if workDays == 0 {
			// Deadline window is all weekend/holidays; treat like overdue.
			if c.isWorkDay(today) {
				addShare(today, t, remainingHours)
			}
			continue
		}

		perDay := remainingHours / float64(workDays)
		for d := today; !d.After(deadlineDay); d = d.AddDate(0, 0, 1) {
			if c.isWorkDay(d) {
				addShare(d, t, perDay)
			}
		}
	}
	return days
}

func (c *Calculator) dailyLoadAnalysis(tasks []task.Task, dailyTarget float64, now time.Time) DailyLoadAnalysis {
	shares := c.distributeDailyShares(tasks, now)

	dailyLoads := make(map[string]float64, len(shares))
	for key, dayShares := range shares {
		total := 0.0
		for _, share := range dayShares {
			total += share.Hours
		}
		dailyLoads[key] = total
	}

	analysis := DailyLoadAnalysis{DailyLoads: dailyLoads}
	for _, load := range dailyLoads {
		if load > dailyTarget {
			analysis.OverloadedDays++
			analysis.TotalOverloadHours += load - dailyTarget
		}
		if load > analysis.MaxDailyLoad {
			analysis.MaxDailyLoad = load
		}
	}

	// Availability and required work over the next 5 calendar days.
	today := startOfDay(now)
	required := 0.0
	available := 0.0
	for i := 0; i < 5; i++ {
		key := today.AddDate(0, 0, i).Format(dateKeyLayout)
		committed := dailyLoads[key]
		required += committed
		available += math.Max(0, dailyTarget-committed)
	}
	analysis.TotalAvailableHours = available
	analysis.AverageAvailablePerDay = available / 5

	coverage := CoverageSummary{
		RequiredHours:  required,
		AvailableHours: available,
		GapHours:       required - available,
	}
	if required > 0 {
		ratio := available / required * 100
		coverage.CoverageRatio = &ratio
	}
	analysis.Next5Days = coverage

	return analysis
}

func (c *Calculator) dailyTaskBreakdown(tasks []task.Task, dailyTarget float64, now time.Time) DailyTaskBreakdown {
	shares := c.distributeDailyShares(tasks, now)

	breakdown := DailyTaskBreakdown{Days: shares}
	for _, dayShares := range shares {
		sort.Slice(dayShares, func(i, j int) bool {
			return dayShares[i].Hours > dayShares[j].Hours
		})
	}

	for key, dayShares := range shares {
		day, err := time.ParseInLocation(dateKeyLayout, key, now.Location())
		if err != nil || !c.isWorkDay(day) {
			// Peak selection considers work days only.
			continue
		}
		total := 0.0
		for _, share := range dayShares {
			total += share.Hours
		}
		if total > breakdown.PeakDayLoad {
			breakdown.PeakDayLoad = total
			breakdown.PeakDay = key
		}
	}
	if dailyTarget > 0 {
		breakdown.PeakMultiplier = breakdown.PeakDayLoad / dailyTarget
	}
	return breakdown
}
