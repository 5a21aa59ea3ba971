package workload

import (
	"fmt"
	"time"

	"github.com/lexload/lexload/pkg/task"
)

// alerts generates the contextual alert list for the monitoring dashboard.
// Triggers are independent; several alerts may fire for the same employee.
func (c *Calculator) alerts(tasks []task.Task, quality TaskQuality, dataQuality DataQuality, backlog WeightedBacklog, now time.Time) []Alert {
	alerts := []Alert{}

	if dataQuality.Score < 70 {
		severity := SeverityWarning
		if dataQuality.Score < 40 {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Type:     "data_quality",
			Severity: severity,
			Message:  fmt.Sprintf("Workload numbers may be unreliable (data quality %d/100)", dataQuality.Score),
			Details:  c.limitDetails(dataQuality.Issues),
			Tips:     dataQuality.Recommendations,
		})
	}

	if len(quality.Stale) > 0 {
		severity := SeverityWarning
		for _, t := range quality.Stale {
			if t.Deadline != nil && t.Deadline.Sub(now).Hours()/24 <= c.cfg.Urgency.Within7DayDays {
				severity = SeverityCritical
				break
			}
		}
		alerts = append(alerts, Alert{
			Type:     "stale_tasks",
			Severity: severity,
			Message: fmt.Sprintf("%d tasks have had no logged time for over %d days",
				len(quality.Stale), c.cfg.Quality.StaleAfterDays),
			Details: c.limitDetails(taskLabels(quality.Stale)),
			Tips:    []string{"Check whether these tasks are still relevant or should be reassigned"},
		})
	}

	if backlog.WeightedDays > 10 {
		severity := SeverityWarning
		if backlog.WeightedDays > 15 {
			severity = SeverityCritical
		}
		alerts = append(alerts, Alert{
			Type:     "overload",
			Severity: severity,
			Message:  fmt.Sprintf("Urgency-weighted backlog is %.1f working days", backlog.WeightedDays),
			Tips:     []string{"Consider redistributing tasks or moving deadlines"},
		})
	}

	var urgentUntracked []task.Task
	for _, t := range tasks {
		if t.Deadline == nil || t.ActualMinutes != 0 || t.EstimatedMinutes == 0 {
			continue
		}
		if t.Deadline.Sub(now).Hours()/24 <= c.cfg.Urgency.Within3DayDays {
			urgentUntracked = append(urgentUntracked, t)
		}
	}
	if len(urgentUntracked) > 0 {
		alerts = append(alerts, Alert{
			Type:     "update_time",
			Severity: SeverityCritical,
			Message: fmt.Sprintf("%d tasks are due within %d days with zero logged time, update time tracking now",
				len(urgentUntracked), int(c.cfg.Urgency.Within3DayDays)),
			Details: c.limitDetails(taskLabels(urgentUntracked)),
		})
	}

	return alerts
}

func (c *Calculator) limitDetails(details []string) []string {
	limit := c.cfg.Ceilings.MaxAlertDetails
	if limit > 0 && len(details) > limit {
		return details[:limit]
	}
	return details
}

func taskLabels(tasks []task.Task) []string {
	labels := make([]string, 0, len(tasks))
	for _, t := range tasks {
		label := t.Description
		if t.ClientName != "" {
			label = t.ClientName + ": " + label
		}
		labels = append(labels, label)
	}
	return labels
}
