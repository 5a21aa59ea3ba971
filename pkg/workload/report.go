package workload

import (
	"time"

	"github.com/lexload/lexload/pkg/task"
)

// Report is the full workload snapshot for one employee. It is an immutable
// value; every call to Calculate produces a fresh one.
type Report struct {
	EmployeeEmail string
	CalculatedAt  time.Time
	// CalendarDegraded is set when work-day answers came from plain weekend
	// logic instead of the office calendar.
	CalendarDegraded bool

	Basic           BasicMetrics
	Capacity        CapacityMetrics
	Urgency         UrgencyMetrics
	DailyLoad       DailyLoadAnalysis
	Breakdown       DailyTaskBreakdown
	TaskQuality     TaskQuality
	DataQuality     DataQuality
	WeightedBacklog WeightedBacklog
	Score           Score
	Predictions     Predictions
	Alerts          []Alert
}

// BasicMetrics are the raw task aggregates.
type BasicMetrics struct {
	ActiveTasksCount    int
	TotalEstimatedHours float64
	TotalActualHours    float64
	// TotalBacklogHours may be negative when tasks have overrun their
	// estimates; nothing is clamped at this stage.
	TotalBacklogHours float64
	TasksByPriority   map[task.Priority]int
}

// CapacityMetrics compare logged hours to targets, relative to "now".
type CapacityMetrics struct {
	HoursWorkedToday     float64
	HoursWorkedThisWeek  float64
	HoursWorkedThisMonth float64
	MonthlyTarget        float64
	MonthlyTargetSoFar   float64
	MonthlyUtilization   float64
	ReportingConsistency float64
	WorkDaysPassed       int
}

// UrgencyMetrics bucket active tasks by deadline proximity.
type UrgencyMetrics struct {
	Overdue        int
	DueWithin24h   int
	DueWithin3Days int
	DueWithin7Days int
	UrgencyScore   float64
	// OverduePlusDueSoon counts tasks overdue or due within 3 days.
	OverduePlusDueSoon int
}

// DailyLoadAnalysis distributes remaining work across work days until each
// task's deadline and summarizes the resulting per-day requirements.
type DailyLoadAnalysis struct {
	// DailyLoads maps a date key (YYYY-MM-DD) to required hours. Only work
	// days appear in the map.
	DailyLoads             map[string]float64
	OverloadedDays         int
	TotalOverloadHours     float64
	MaxDailyLoad           float64
	TotalAvailableHours    float64
	AverageAvailablePerDay float64
	Next5Days              CoverageSummary
}

// CoverageSummary relates required hours to available hours over the next
// five calendar days.
type CoverageSummary struct {
	RequiredHours  float64
	AvailableHours float64
	GapHours       float64
	// CoverageRatio is nil when no work is required in the window, which is
	// distinct from a zero ratio (work required, nothing available).
	CoverageRatio *float64
}

// DailyTaskBreakdown keeps per-day task shares for overload drill-down.
type DailyTaskBreakdown struct {
	// Days maps a date key to the tasks contributing hours that day, sorted
	// by descending contribution.
	Days map[string][]TaskShare
	// PeakDay is the busiest work day; empty when nothing is scheduled.
	PeakDay        string
	PeakDayLoad    float64
	PeakMultiplier float64
}

// TaskShare is one task's contribution to a single day.
type TaskShare struct {
	Task  task.Task
	Hours float64
}

// TaskQuality lists the tasks landing in each quality-issue bucket. A task
// may appear in several buckets at once.
type TaskQuality struct {
	ShouldBeClosed      []task.Task
	MissingTimeTracking []task.Task
	NearComplete        []task.Task
	AlmostDone          []task.Task
	Stale               []task.Task
	HasIssues           bool
}

// DataQuality scores how trustworthy the underlying task and timesheet data
// is, independent of workload volume.
type DataQuality struct {
	Score              int
	MissingTimePercent float64
	Issues             []string
	Recommendations    []string
}

// WeightedBacklog reweights remaining hours by deadline urgency.
type WeightedBacklog struct {
	RawHours            float64
	WeightedHours       float64
	EffectiveDailyHours float64
	EstimatedDays       float64
	WeightedDays        float64
}

// Score is the composite workload score with its components.
type Score struct {
	Score      int
	Level      Level
	Components ScoreComponents
}

// ScoreComponents are the normalized (0-100) sub-scores before weighting.
type ScoreComponents struct {
	Backlog   float64
	Urgency   float64
	TaskCount float64
	Capacity  float64
}

type TaskSize string

const (
	TaskSizeLarge  TaskSize = "large"
	TaskSizeMedium TaskSize = "medium"
	TaskSizeSmall  TaskSize = "small"
)

// Predictions estimate completion and availability from the daily-load plan.
type Predictions struct {
	// EstimatedDaysToComplete is CannotCompleteSentinel when backlog exists
	// but no daily availability remains.
	EstimatedDaysToComplete float64
	NextAvailableDate       time.Time
	CanTakeNewTask          bool
	RecommendedTaskSize     TaskSize
}

// CannotCompleteSentinel marks a backlog that cannot be finished under the
// current daily plan.
const CannotCompleteSentinel = 999

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is one contextual finding for the monitoring dashboard. Alerts are
// additive; independent triggers may fire simultaneously.
type Alert struct {
	Type     string
	Severity Severity
	Message  string
	Details  []string
	Tips     []string
}
