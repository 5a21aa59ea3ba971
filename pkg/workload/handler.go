package workload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lexload/lexload/internal/rest"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
)

type ReportDTO struct {
	EmployeeEmail    string              `json:"employeeEmail"`
	CalculatedAt     time.Time           `json:"calculatedAt"`
	CalendarDegraded bool                `json:"calendarDegraded"`
	Basic            BasicMetricsDTO     `json:"basicMetrics"`
	Capacity         CapacityMetricsDTO  `json:"capacityMetrics"`
	Urgency          UrgencyMetricsDTO   `json:"urgencyMetrics"`
	DailyLoad        DailyLoadDTO        `json:"dailyLoad"`
	Breakdown        BreakdownDTO        `json:"dailyBreakdown"`
	TaskQuality      TaskQualityDTO      `json:"taskQuality"`
	DataQuality      DataQualityDTO      `json:"dataQuality"`
	WeightedBacklog  WeightedBacklogDTO  `json:"weightedBacklog"`
	Score            ScoreDTO            `json:"score"`
	Predictions      PredictionsDTO      `json:"predictions"`
	Alerts           []AlertDTO          `json:"alerts"`
}

type BasicMetricsDTO struct {
	ActiveTasksCount    int            `json:"activeTasksCount"`
	TotalEstimatedHours float64        `json:"totalEstimatedHours"`
	TotalActualHours    float64        `json:"totalActualHours"`
	TotalBacklogHours   float64        `json:"totalBacklogHours"`
	TasksByPriority     map[string]int `json:"tasksByPriority"`
}

type CapacityMetricsDTO struct {
	HoursWorkedToday     float64 `json:"hoursWorkedToday"`
	HoursWorkedThisWeek  float64 `json:"hoursWorkedThisWeek"`
	HoursWorkedThisMonth float64 `json:"hoursWorkedThisMonth"`
	MonthlyTarget        float64 `json:"monthlyTarget"`
	MonthlyTargetSoFar   float64 `json:"monthlyTargetSoFar"`
	MonthlyUtilization   float64 `json:"monthlyUtilization"`
	ReportingConsistency float64 `json:"reportingConsistency"`
	WorkDaysPassed       int     `json:"workDaysPassed"`
}

type UrgencyMetricsDTO struct {
	Overdue            int     `json:"overdue"`
	DueWithin24h       int     `json:"dueWithin24h"`
	DueWithin3Days     int     `json:"dueWithin3Days"`
	DueWithin7Days     int     `json:"dueWithin7Days"`
	UrgencyScore       float64 `json:"urgencyScore"`
	OverduePlusDueSoon int     `json:"overduePlusDueSoon"`
}

type DailyLoadDTO struct {
	DailyLoads             map[string]float64 `json:"dailyLoads"`
	OverloadedDays         int                `json:"overloadedDays"`
	TotalOverloadHours     float64            `json:"totalOverloadHours"`
	MaxDailyLoad           float64            `json:"maxDailyLoad"`
	TotalAvailableHours    float64            `json:"totalAvailableHours"`
	AverageAvailablePerDay float64            `json:"averageAvailablePerDay"`
	Next5Days              CoverageDTO        `json:"next5Days"`
}

type CoverageDTO struct {
	RequiredHours  float64  `json:"requiredHours"`
	AvailableHours float64  `json:"availableHours"`
	GapHours       float64  `json:"gapHours"`
	CoverageRatio  *float64 `json:"coverageRatio"`
}

type BreakdownDTO struct {
	Days           map[string][]TaskShareDTO `json:"days"`
	PeakDay        string                    `json:"peakDay,omitempty"`
	PeakDayLoad    float64                   `json:"peakDayLoad"`
	PeakMultiplier float64                   `json:"peakMultiplier"`
}

type TaskShareDTO struct {
	TaskUid     string  `json:"taskUid"`
	ClientName  string  `json:"clientName"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

type TaskQualityDTO struct {
	ShouldBeClosed      []TaskRefDTO `json:"shouldBeClosed"`
	MissingTimeTracking []TaskRefDTO `json:"missingTimeTracking"`
	NearComplete        []TaskRefDTO `json:"nearComplete"`
	AlmostDone          []TaskRefDTO `json:"almostDone"`
	Stale               []TaskRefDTO `json:"stale"`
	HasIssues           bool         `json:"hasIssues"`
}

type TaskRefDTO struct {
	Uid         string `json:"uid"`
	ClientName  string `json:"clientName"`
	Description string `json:"description"`
}

type DataQualityDTO struct {
	Score              int      `json:"score"`
	MissingTimePercent float64  `json:"missingTimePercent"`
	Issues             []string `json:"issues"`
	Recommendations    []string `json:"recommendations"`
}

type WeightedBacklogDTO struct {
	RawHours            float64 `json:"rawHours"`
	WeightedHours       float64 `json:"weightedHours"`
	EffectiveDailyHours float64 `json:"effectiveDailyHours"`
	EstimatedDays       float64 `json:"estimatedDays"`
	WeightedDays        float64 `json:"weightedDays"`
}

type ScoreDTO struct {
	Score      int                `json:"score"`
	Level      string             `json:"level"`
	Components ScoreComponentsDTO `json:"components"`
}

type ScoreComponentsDTO struct {
	Backlog   float64 `json:"backlog"`
	Urgency   float64 `json:"urgency"`
	TaskCount float64 `json:"taskCount"`
	Capacity  float64 `json:"capacity"`
}

type PredictionsDTO struct {
	EstimatedDaysToComplete float64 `json:"estimatedDaysToComplete"`
	NextAvailableDate       string  `json:"nextAvailableDate"`
	CanTakeNewTask          bool    `json:"canTakeNewTask"`
	RecommendedTaskSize     string  `json:"recommendedTaskSize"`
}

type AlertDTO struct {
	Type     string   `json:"type"`
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Details  []string `json:"details,omitempty"`
	Tips     []string `json:"tips,omitempty"`
}

// OverviewItemDTO is the slim per-employee summary for the office dashboard.
type OverviewItemDTO struct {
	EmployeeEmail    string    `json:"employeeEmail"`
	Score            int       `json:"score"`
	Level            string    `json:"level"`
	ActiveTasksCount int       `json:"activeTasksCount"`
	OverdueCount     int       `json:"overdueCount"`
	CriticalAlerts   int       `json:"criticalAlerts"`
	CanTakeNewTask   bool      `json:"canTakeNewTask"`
	CalculatedAt     time.Time `json:"calculatedAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetOfficeOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	reports, err := h.service.OfficeOverview(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	items := make([]OverviewItemDTO, 0, len(reports))
	for _, report := range reports {
		items = append(items, toOverviewItemDTO(report))
	}
	if err := json.NewEncoder(w).Encode(items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	staffUid := mux.Vars(r)["staffUid"]
	report, err := h.service.ReportFor(r.Context(), staffUid)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Staff member not found"})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toReportDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toReportDTO(report Report) ReportDTO {
	return ReportDTO{
		EmployeeEmail:    report.EmployeeEmail,
		CalculatedAt:     report.CalculatedAt,
		CalendarDegraded: report.CalendarDegraded,
		Basic:            toBasicMetricsDTO(report.Basic),
		Capacity:         CapacityMetricsDTO(report.Capacity),
		Urgency:          UrgencyMetricsDTO(report.Urgency),
		DailyLoad:        toDailyLoadDTO(report.DailyLoad),
		Breakdown:        toBreakdownDTO(report.Breakdown),
		TaskQuality:      toTaskQualityDTO(report.TaskQuality),
		DataQuality:      DataQualityDTO(report.DataQuality),
		WeightedBacklog:  WeightedBacklogDTO(report.WeightedBacklog),
		Score:            toScoreDTO(report.Score),
		Predictions:      toPredictionsDTO(report.Predictions),
		Alerts:           toAlertDTOs(report.Alerts),
	}
}

func toBasicMetricsDTO(basic BasicMetrics) BasicMetricsDTO {
	byPriority := make(map[string]int, len(basic.TasksByPriority))
	for priority, count := range basic.TasksByPriority {
		byPriority[string(priority)] = count
	}
	return BasicMetricsDTO{
		ActiveTasksCount:    basic.ActiveTasksCount,
		TotalEstimatedHours: basic.TotalEstimatedHours,
		TotalActualHours:    basic.TotalActualHours,
		TotalBacklogHours:   basic.TotalBacklogHours,
		TasksByPriority:     byPriority,
	}
}

func toDailyLoadDTO(dailyLoad DailyLoadAnalysis) DailyLoadDTO {
	return DailyLoadDTO{
		DailyLoads:             dailyLoad.DailyLoads,
		OverloadedDays:         dailyLoad.OverloadedDays,
		TotalOverloadHours:     dailyLoad.TotalOverloadHours,
		MaxDailyLoad:           dailyLoad.MaxDailyLoad,
		TotalAvailableHours:    dailyLoad.TotalAvailableHours,
		AverageAvailablePerDay: dailyLoad.AverageAvailablePerDay,
		Next5Days:              CoverageDTO(dailyLoad.Next5Days),
	}
}

func toBreakdownDTO(breakdown DailyTaskBreakdown) BreakdownDTO {
	days := make(map[string][]TaskShareDTO, len(breakdown.Days))
	for day, shares := range breakdown.Days {
		dtos := make([]TaskShareDTO, 0, len(shares))
		for _, share := range shares {
			dtos = append(dtos, TaskShareDTO{
				TaskUid:     share.Task.Uid,
				ClientName:  share.Task.ClientName,
				Description: share.Task.Description,
				Hours:       share.Hours,
			})
		}
		days[day] = dtos
	}
	return BreakdownDTO{
		Days:           days,
		PeakDay:        breakdown.PeakDay,
		PeakDayLoad:    breakdown.PeakDayLoad,
		PeakMultiplier: breakdown.PeakMultiplier,
	}
}

func toTaskQualityDTO(quality TaskQuality) TaskQualityDTO {
	return TaskQualityDTO{
		ShouldBeClosed:      toTaskRefDTOs(quality.ShouldBeClosed),
		MissingTimeTracking: toTaskRefDTOs(quality.MissingTimeTracking),
		NearComplete:        toTaskRefDTOs(quality.NearComplete),
		AlmostDone:          toTaskRefDTOs(quality.AlmostDone),
		Stale:               toTaskRefDTOs(quality.Stale),
		HasIssues:           quality.HasIssues,
	}
}

func toTaskRefDTOs(tasks []task.Task) []TaskRefDTO {
	refs := make([]TaskRefDTO, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, TaskRefDTO{Uid: t.Uid, ClientName: t.ClientName, Description: t.Description})
	}
	return refs
}

func toScoreDTO(score Score) ScoreDTO {
	return ScoreDTO{
		Score:      score.Score,
		Level:      string(score.Level),
		Components: ScoreComponentsDTO(score.Components),
	}
}

func toPredictionsDTO(predictions Predictions) PredictionsDTO {
	nextAvailable := ""
	if !predictions.NextAvailableDate.IsZero() {
		nextAvailable = predictions.NextAvailableDate.Format(dateKeyLayout)
	}
	return PredictionsDTO{
		EstimatedDaysToComplete: predictions.EstimatedDaysToComplete,
		NextAvailableDate:       nextAvailable,
		CanTakeNewTask:          predictions.CanTakeNewTask,
		RecommendedTaskSize:     string(predictions.RecommendedTaskSize),
	}
}

func toAlertDTOs(alerts []Alert) []AlertDTO {
	dtos := make([]AlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		dtos = append(dtos, AlertDTO{
			Type:     alert.Type,
			Severity: string(alert.Severity),
			Message:  alert.Message,
			Details:  alert.Details,
			Tips:     alert.Tips,
		})
	}
	return dtos
}

func toOverviewItemDTO(report Report) OverviewItemDTO {
	criticalAlerts := 0
	for _, alert := range report.Alerts {
		if alert.Severity == SeverityCritical {
			criticalAlerts++
		}
	}
	return OverviewItemDTO{
		EmployeeEmail:    report.EmployeeEmail,
		Score:            report.Score.Score,
		Level:            string(report.Score.Level),
		ActiveTasksCount: report.Basic.ActiveTasksCount,
		OverdueCount:     report.Urgency.Overdue,
		CriticalAlerts:   criticalAlerts,
		CanTakeNewTask:   report.Predictions.CanTakeNewTask,
		CalculatedAt:     report.CalculatedAt,
	}
}
