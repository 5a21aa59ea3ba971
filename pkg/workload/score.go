package workload

import (
	"math"
	"time"

	"github.com/lexload/lexload/pkg/task"
	log "github.com/sirupsen/logrus"
)

// weightedBacklog reweights each task's remaining hours by deadline urgency
// to surface effective severity rather than raw volume. Overrun tasks (no
// positive remaining work) add nothing here.
func (c *Calculator) weightedBacklog(tasks []task.Task, dailyTarget float64, now time.Time) WeightedBacklog {
	backlog := WeightedBacklog{}
	for _, t := range tasks {
		remaining := t.RemainingMinutes()
		if remaining <= 0 {
			continue
		}
		hours := float64(remaining) / 60

		multiplier := 1.0
		if t.Deadline != nil {
			days := t.Deadline.Sub(now).Hours() / 24
			switch {
			case days < 0:
				multiplier = 3
			case days <= 1:
				multiplier = 2.5
			case days <= 3:
				multiplier = 2
			case days <= 7:
				multiplier = 1.5
			}
		}

		backlog.RawHours += hours
		backlog.WeightedHours += hours * multiplier
	}

	backlog.EffectiveDailyHours = c.cfg.Capacity.EffectiveDailyHours(dailyTarget)
	if backlog.EffectiveDailyHours > 0 {
		backlog.EstimatedDays = backlog.RawHours / backlog.EffectiveDailyHours
		backlog.WeightedDays = backlog.WeightedHours / backlog.EffectiveDailyHours
	}
	return backlog
}

// compositeScore normalizes the four sub-scores to 0-100 and combines them
// with the configured weights.
func (c *Calculator) compositeScore(basic BasicMetrics, capacity CapacityMetrics, urgency UrgencyMetrics, dailyTarget float64) Score {
	components := ScoreComponents{}

	backlogCeiling := c.cfg.Ceilings.MaxBacklogDays * dailyTarget
	if backlogCeiling > 0 {
		components.Backlog = math.Min(100, math.Max(0, basic.TotalBacklogHours)/backlogCeiling*100)
	}

	components.Urgency = urgency.UrgencyScore

	if c.cfg.Ceilings.MaxTaskCount > 0 {
		components.TaskCount = math.Min(100, float64(basic.ActiveTasksCount)/float64(c.cfg.Ceilings.MaxTaskCount)*100)
	}

	utilization := capacity.MonthlyUtilization
	if math.IsNaN(utilization) {
		utilization = 0
	}
	components.Capacity = math.Min(100, utilization)

	weights := c.cfg.Weights
	raw := components.Backlog*weights.Backlog +
		components.Urgency*weights.Urgency +
		components.TaskCount*weights.TaskCount +
		components.Capacity*weights.Capacity

	if math.IsNaN(raw) || raw < 0 {
		log.Warnf("invalid composite workload score %.2f, clamping to 0", raw)
		raw = 0
	}
	score := int(math.Round(raw))
	if score > 100 {
		score = 100
	}

	return Score{
		Score:      score,
		Level:      c.cfg.LevelFor(score),
		Components: components,
	}
}

// predictions derives completion and availability estimates from the
// daily-load plan.
func (c *Calculator) predictions(basic BasicMetrics, dailyLoad DailyLoadAnalysis, dailyTarget float64, now time.Time) Predictions {
	backlogHours := math.Max(0, basic.TotalBacklogHours)

	var estimatedDays float64
	switch {
	case backlogHours == 0:
		estimatedDays = 0
	case dailyLoad.AverageAvailablePerDay <= 0:
		// No free capacity under the current plan: the backlog cannot be
		// completed at all.
		estimatedDays = CannotCompleteSentinel
	default:
		estimatedDays = backlogHours / dailyLoad.AverageAvailablePerDay
	}

	predictions := Predictions{
		EstimatedDaysToComplete: estimatedDays,
		NextAvailableDate:       startOfDay(now).AddDate(0, 0, int(math.Ceil(estimatedDays))),
		CanTakeNewTask:          dailyLoad.TotalAvailableHours >= dailyTarget/2,
	}

	available := dailyLoad.TotalAvailableHours
	switch {
	case available > 2*dailyTarget:
		predictions.RecommendedTaskSize = TaskSizeLarge
	case available > 0.5*dailyTarget:
		predictions.RecommendedTaskSize = TaskSizeMedium
	default:
		predictions.RecommendedTaskSize = TaskSizeSmall
	}
	return predictions
}
