package event_bus

import "time"

const (
	TaskUpdatedEvent              EventType = "task.updated"
	WorkloadReportCalculatedEvent EventType = "workload.report.calculated"
)

// TaskUpdated is published whenever a task is created, changed, completed,
// or deleted, so listeners (e.g. dashboard caches) can react.
type TaskUpdated struct {
	TaskUid string
	StaffId int
	Status  string
}

// WorkloadReportCalculated is published after each workload calculation.
type WorkloadReportCalculated struct {
	EmployeeEmail  string
	Score          int
	Level          string
	CriticalAlerts int
	CalculatedAt   time.Time
}
