package task

import (
	"time"
)

// Status is the closed set of task states. Localized display strings are
// translated at the API boundary, never inside services.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// StatusFromWire normalizes a wire status string, including the legacy
// localized values still stored by older clients. Unknown values are treated
// as active.
func StatusFromWire(s string) Status {
	switch s {
	case "completed", "done", "הושלם":
		return StatusCompleted
	default:
		return StatusActive
	}
}

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityFromWire normalizes a wire priority string. Unknown or empty values
// default to medium.
func PriorityFromWire(s string) Priority {
	switch Priority(s) {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// Task is a unit of billable work assigned to a staff member.
type Task struct {
	Id               int
	Uid              string
	StaffId          int
	ClientName       string
	Description      string
	Status           Status
	Priority         Priority
	EstimatedMinutes int
	ActualMinutes    int
	// Deadline is nil when the task has no due date. Tasks without a deadline
	// contribute nothing to urgency or daily-load calculations.
	Deadline     *time.Time
	CreatedAt    time.Time
	LastModified time.Time
}

// RemainingMinutes is the budgeted time not yet logged. Negative values mean
// the task has overrun its estimate.
func (t Task) RemainingMinutes() int {
	return t.EstimatedMinutes - t.ActualMinutes
}

// CompletionPercent is logged time as a percentage of the estimate.
// Tasks with no estimate report 0, never NaN.
func (t Task) CompletionPercent() float64 {
	if t.EstimatedMinutes == 0 {
		return 0
	}
	return float64(t.ActualMinutes) / float64(t.EstimatedMinutes) * 100
}
