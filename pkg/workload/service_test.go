package workload

import (
	"context"
	"testing"

	"github.com/lexload/lexload/internal/event_bus"
	"github.com/lexload/lexload/internal/utils"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
	"github.com/stretchr/testify/assert"
)

func setupService(t *testing.T) (*ServiceImpl, *staff.StubRepository, *task.StubRepository, *event_bus.EventBus) {
	clock := &utils.MockClock{FixedNow: testNow}
	bus := event_bus.NewEventBus()

	staffRepo := staff.NewStubRepository()
	staffService := staff.NewService(staffRepo)
	taskRepo := task.NewStubRepository()
	taskService := task.NewService(taskRepo, bus, clock)
	timesheetService := timesheet.NewService(timesheet.NewStubRepository())

	calculator := NewCalculator(DefaultConfig(), newStubCalendar(), clock)
	service := NewService(calculator, staffService, taskService, timesheetService, bus, clock)
	return service, staffRepo, taskRepo, bus
}

func TestServiceImpl_ReportFor(t *testing.T) {
	service, staffRepo, taskRepo, _ := setupService(t)
	ctx := context.Background()

	// given
	member := testEmployee()
	_, err := staffRepo.Store(ctx, member)
	assert.NoError(t, err)
	_, err = taskRepo.Store(ctx, activeTask(600, 0, deadlineIn(4)))
	assert.NoError(t, err)
	completed := activeTask(600, 600, nil)
	completed.Uid = "task-done"
	completed.Status = task.StatusCompleted
	_, err = taskRepo.Store(ctx, completed)
	assert.NoError(t, err)

	// when
	report, err := service.ReportFor(ctx, member.Uid)

	// then completed tasks are excluded from the report
	assert.NoError(t, err)
	assert.Equal(t, member.Email, report.EmployeeEmail)
	assert.Equal(t, 1, report.Basic.ActiveTasksCount)
	assert.Equal(t, testNow, report.CalculatedAt)
}

func TestServiceImpl_ReportFor_ShouldFailForUnknownStaff(t *testing.T) {
	service, _, _, _ := setupService(t)

	// when
	_, err := service.ReportFor(context.Background(), "no-such-uid")

	// then
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestServiceImpl_ReportFor_ShouldPublishCalculatedEvent(t *testing.T) {
	service, staffRepo, _, bus := setupService(t)
	ctx := context.Background()

	var received []event_bus.WorkloadReportCalculated
	event_bus.SubscribeTyped[event_bus.WorkloadReportCalculated](bus, event_bus.WorkloadReportCalculatedEvent,
		func(e event_bus.EventT[event_bus.WorkloadReportCalculated]) error {
			received = append(received, e.Data)
			return nil
		})

	member := testEmployee()
	_, err := staffRepo.Store(ctx, member)
	assert.NoError(t, err)

	// when
	report, err := service.ReportFor(ctx, member.Uid)

	// then
	assert.NoError(t, err)
	if assert.Len(t, received, 1) {
		assert.Equal(t, member.Email, received[0].EmployeeEmail)
		assert.Equal(t, report.Score.Score, received[0].Score)
		assert.Equal(t, string(report.Score.Level), received[0].Level)
	}
}

func TestServiceImpl_OfficeOverview(t *testing.T) {
	service, staffRepo, taskRepo, _ := setupService(t)
	ctx := context.Background()

	// given two staff members, one of them loaded with work
	first := testEmployee()
	second := staff.Staff{Uid: "staff-2", Email: "noam@example.com", DailyHoursTarget: 8}
	_, err := staffRepo.Store(ctx, first)
	assert.NoError(t, err)
	secondId, err := staffRepo.Store(ctx, second)
	assert.NoError(t, err)

	heavy := activeTask(3000, 0, deadlineIn(-1))
	heavy.StaffId = secondId
	_, err = taskRepo.Store(ctx, heavy)
	assert.NoError(t, err)

	// when
	reports, err := service.OfficeOverview(ctx)

	// then
	assert.NoError(t, err)
	assert.Len(t, reports, 2)
	byEmail := map[string]Report{}
	for _, report := range reports {
		byEmail[report.EmployeeEmail] = report
	}
	assert.Equal(t, 0, byEmail[first.Email].Basic.ActiveTasksCount)
	assert.Equal(t, 1, byEmail[second.Email].Basic.ActiveTasksCount)
	assert.Greater(t, byEmail[second.Email].Score.Score, byEmail[first.Email].Score.Score)
}
