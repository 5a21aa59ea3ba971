package workload

import (
	"context"
	"fmt"
	"time"

	"github.com/lexload/lexload/internal/event_bus"
	"github.com/lexload/lexload/internal/utils"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ReportFor(ctx context.Context, staffUid string) (Report, error)
	OfficeOverview(ctx context.Context) ([]Report, error)
}

type ServiceImpl struct {
	calculator       *Calculator
	staffService     staff.Service
	taskService      task.Service
	timesheetService timesheet.Service
	bus              *event_bus.EventBus
	clock            utils.Clock
}

func NewService(
	calculator *Calculator,
	staffService staff.Service,
	taskService task.Service,
	timesheetService timesheet.Service,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		calculator:       calculator,
		staffService:     staffService,
		taskService:      taskService,
		timesheetService: timesheetService,
		bus:              bus,
		clock:            clock,
	}
}

func (s *ServiceImpl) ReportFor(ctx context.Context, staffUid string) (Report, error) {
	member, err := s.staffService.GetByUid(ctx, staffUid)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load staff member: %w", err)
	}
	return s.reportForMember(ctx, member)
}

func (s *ServiceImpl) OfficeOverview(ctx context.Context) ([]Report, error) {
	members, err := s.staffService.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}

	reports := make([]Report, 0, len(members))
	for _, member := range members {
		report, err := s.reportForMember(ctx, member)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *ServiceImpl) reportForMember(ctx context.Context, member staff.Staff) (Report, error) {
	tasks, err := s.taskService.ListByStaff(ctx, member.Id, false)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load tasks: %w", err)
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	// The current week can start before the current month.
	from := monthStart
	if weekStart.Before(from) {
		from = weekStart
	}

	entries, err := s.timesheetService.ListByStaff(ctx, member.Id, from, today)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load timesheet entries: %w", err)
	}

	report := s.calculator.Calculate(member, tasks, entries)
	s.publishCalculated(ctx, report)
	return report, nil
}

func (s *ServiceImpl) publishCalculated(ctx context.Context, report Report) {
	if s.bus == nil {
		return
	}
	criticalAlerts := 0
	for _, alert := range report.Alerts {
		if alert.Severity == SeverityCritical {
			criticalAlerts++
		}
	}
	err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.WorkloadReportCalculatedEvent, event_bus.WorkloadReportCalculated{
		EmployeeEmail:  report.EmployeeEmail,
		Score:          report.Score.Score,
		Level:          string(report.Score.Level),
		CriticalAlerts: criticalAlerts,
		CalculatedAt:   report.CalculatedAt,
	}))
	if err != nil {
		log.Warnf("failed to publish workload report event: %v", err)
	}
}
