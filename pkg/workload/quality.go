package workload

import (
	"fmt"
	"math"
	"time"

	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
)

// taskQuality classifies every task into zero or more quality-issue buckets.
// The buckets are not exclusive: a 92%-complete overdue task is both
// near-complete and should-be-closed.
func (c *Calculator) taskQuality(tasks []task.Task, now time.Time) TaskQuality {
	quality := TaskQuality{}
	thresholds := c.cfg.Quality

	for _, t := range tasks {
		percent := t.CompletionPercent()
		deadlinePassed := t.Deadline != nil && t.Deadline.Before(now)

		if thresholds.ShouldBeClosed(percent, deadlinePassed) {
			quality.ShouldBeClosed = append(quality.ShouldBeClosed, t)
		}
		if t.ActualMinutes == 0 && t.EstimatedMinutes > 0 {
			quality.MissingTimeTracking = append(quality.MissingTimeTracking, t)
		}
		if thresholds.IsNearComplete(percent) {
			quality.NearComplete = append(quality.NearComplete, t)
		}
		if thresholds.IsAlmostDone(percent, t.RemainingMinutes()) {
			quality.AlmostDone = append(quality.AlmostDone, t)
		}
		if !t.CreatedAt.IsZero() {
			ageDays := now.Sub(t.CreatedAt).Hours() / 24
			if thresholds.IsStale(ageDays, t.ActualMinutes) {
				quality.Stale = append(quality.Stale, t)
			}
		}
	}

	quality.HasIssues = len(quality.ShouldBeClosed) > 0 ||
		len(quality.MissingTimeTracking) > 0 ||
		len(quality.NearComplete) > 0 ||
		len(quality.AlmostDone) > 0 ||
		len(quality.Stale) > 0
	return quality
}

// dataQuality scores how much the computed workload numbers can be trusted.
// An employee who never logs time shows an artificially high backlog; this
// score lets the dashboard discount such reports.
func (c *Calculator) dataQuality(tasks []task.Task, entries []timesheet.Entry, quality TaskQuality, now time.Time) DataQuality {
	result := DataQuality{Score: 100}

	today := startOfDay(now)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	hasEntryThisWeek := false
	for _, entry := range entries {
		day := startOfDay(entry.Date)
		if !day.Before(weekStart) && !day.After(today) {
			hasEntryThisWeek = true
			break
		}
	}
	if !hasEntryThisWeek {
		result.Score -= 30
		result.Issues = append(result.Issues, "No timesheet entries this week")
		result.Recommendations = append(result.Recommendations, "Remind the employee to log time daily")
	}

	if len(tasks) > 0 {
		result.MissingTimePercent = float64(len(quality.MissingTimeTracking)) / float64(len(tasks)) * 100
		if result.MissingTimePercent > 0 {
			deduction := int(math.Round(math.Min(40, result.MissingTimePercent*0.4)))
			result.Score -= deduction
			result.Issues = append(result.Issues,
				fmt.Sprintf("%.0f%% of active tasks have no logged time", result.MissingTimePercent))
			result.Recommendations = append(result.Recommendations, "Review tasks that were started but never tracked")
		}
	}

	for _, t := range tasks {
		if t.Deadline == nil {
			result.Score -= 15
			result.Issues = append(result.Issues, "Some active tasks have no deadline")
			result.Recommendations = append(result.Recommendations, "Set deadlines so urgency and daily load are meaningful")
			break
		}
	}

	if len(quality.ShouldBeClosed) > 0 {
		result.Score -= 15
		result.Issues = append(result.Issues,
			fmt.Sprintf("%d tasks look finished but were never closed", len(quality.ShouldBeClosed)))
		result.Recommendations = append(result.Recommendations, "Close completed tasks to keep the backlog honest")
	}

	if result.Score < 0 {
		result.Score = 0
	}
	return result
}
