package workload

import (
	"testing"
	"time"

	"github.com/lexload/lexload/internal/utils"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
	"github.com/stretchr/testify/assert"
)

// 2025-06-01 is a Sunday, the first day of the office work week.
var testNow = time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)

func setupCalculator(t *testing.T) (*Calculator, *stubCalendar) {
	calendar := newStubCalendar()
	clock := &utils.MockClock{FixedNow: testNow}
	calculator := NewCalculator(DefaultConfig(), calendar, clock)
	return calculator, calendar
}

func testEmployee() staff.Staff {
	return staff.Staff{
		Id:               1,
		Uid:              "staff-1",
		Email:            "dana@example.com",
		DisplayName:      "Dana",
		DailyHoursTarget: 8,
	}
}

func activeTask(estimated, actual int, deadline *time.Time) task.Task {
	return task.Task{
		Id:               1,
		Uid:              "task-1",
		StaffId:          1,
		ClientName:       "Cohen",
		Description:      "Draft contract",
		Status:           task.StatusActive,
		Priority:         task.PriorityMedium,
		EstimatedMinutes: estimated,
		ActualMinutes:    actual,
		Deadline:         deadline,
		CreatedAt:        testNow,
		LastModified:     testNow,
	}
}

func deadlineIn(days int) *time.Time {
	d := testNow.AddDate(0, 0, days)
	return &d
}

func TestCalculate_ShouldConserveBacklogIncludingOverruns(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given a task that overran its estimate
	overrun := activeTask(60, 120, nil)
	planned := activeTask(600, 0, nil)
	planned.Uid = "task-2"

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{overrun, planned}, nil)

	// then backlog sums raw estimated-actual, negatives included
	assert.InDelta(t, 11.0, report.Basic.TotalEstimatedHours, 0.001)
	assert.InDelta(t, 2.0, report.Basic.TotalActualHours, 0.001)
	assert.InDelta(t, 9.0, report.Basic.TotalBacklogHours, 0.001)
}

func TestCalculate_ShouldReportZeroUtilizationWhenNoWorkDaysPassed(t *testing.T) {
	calculator, calendar := setupCalculator(t)
	calendar.workDaysPassed = 0

	// when
	report := calculator.Calculate(testEmployee(), nil, []timesheet.Entry{
		{StaffId: 1, Date: testNow, Minutes: 480},
	})

	// then no division by zero, utilization stays 0
	assert.Equal(t, 0.0, report.Capacity.MonthlyUtilization)
	assert.Equal(t, 0.0, report.Capacity.ReportingConsistency)
}

func TestCalculate_ShouldComputeMonthlyUtilization(t *testing.T) {
	calculator, calendar := setupCalculator(t)
	calendar.workDaysPassed = 10

	// given 40 hours logged against 10 passed work days of 8h, plus an
	// entry from last month that must not count
	entries := []timesheet.Entry{
		{StaffId: 1, Date: testNow, Minutes: 2400},
		{StaffId: 1, Date: testNow.AddDate(0, 0, -7), Minutes: 480},
	}

	// when
	report := calculator.Calculate(testEmployee(), nil, entries)

	// then 40h / 80h = 50%
	assert.InDelta(t, 50.0, report.Capacity.MonthlyUtilization, 0.001)
	assert.InDelta(t, 40.0, report.Capacity.HoursWorkedThisMonth, 0.001)
}

func TestCalculate_ShouldDistributeRemainingWorkEvenlyAcrossWorkDays(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given 10h remaining, due Thursday: Sun..Thu is 5 work days
	tasks := []task.Task{activeTask(600, 0, deadlineIn(4))}

	// when
	report := calculator.Calculate(testEmployee(), tasks, nil)

	// then each work day carries exactly 2h and the sum is conserved
	assert.Len(t, report.DailyLoad.DailyLoads, 5)
	total := 0.0
	for day, load := range report.DailyLoad.DailyLoads {
		assert.InDelta(t, 2.0, load, 0.001, "day %s", day)
		total += load
	}
	assert.InDelta(t, 10.0, total, 0.001)
	assert.Contains(t, report.TaskQuality.MissingTimeTracking, tasks[0])
}

func TestCalculate_ShouldNotAssignLoadToNonWorkDays(t *testing.T) {
	calculator, calendar := setupCalculator(t)

	// given a holiday on Tuesday within the deadline window
	holiday := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.Local)
	calendar.addHoliday(holiday)
	tasks := []task.Task{activeTask(600, 0, deadlineIn(6))}

	// when
	report := calculator.Calculate(testEmployee(), tasks, nil)

	// then neither the holiday nor the weekend carries any load
	assert.NotContains(t, report.DailyLoad.DailyLoads, "2025-06-03")
	assert.NotContains(t, report.DailyLoad.DailyLoads, "2025-06-06") // Friday
	assert.NotContains(t, report.DailyLoad.DailyLoads, "2025-06-07") // Saturday
	total := 0.0
	for _, load := range report.DailyLoad.DailyLoads {
		total += load
	}
	assert.InDelta(t, 10.0, total, 0.001)
}

func TestCalculate_ShouldKeepScoreWithinBounds(t *testing.T) {
	calculator, calendar := setupCalculator(t)
	calendar.workDaysPassed = 1

	// given an absurdly overloaded employee
	var tasks []task.Task
	for i := 0; i < 40; i++ {
		overdue := activeTask(6000, 0, deadlineIn(-2))
		overdue.Uid = "task-" + string(rune('a'+i%26))
		tasks = append(tasks, overdue)
	}
	entries := []timesheet.Entry{{StaffId: 1, Date: testNow, Minutes: 6000}}

	// when
	report := calculator.Calculate(testEmployee(), tasks, entries)

	// then
	assert.GreaterOrEqual(t, report.Score.Score, 0)
	assert.LessOrEqual(t, report.Score.Score, 100)
	assert.Equal(t, LevelCritical, report.Score.Level)
}

func TestCalculate_ShouldDistinguishNilCoverageRatioFromZero(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// when nothing is required in the next 5 days
	emptyReport := calculator.Calculate(testEmployee(), nil, nil)

	// then the ratio is nil, not zero
	assert.Nil(t, emptyReport.DailyLoad.Next5Days.CoverageRatio)

	// when work is required
	loadedReport := calculator.Calculate(testEmployee(), []task.Task{activeTask(600, 0, deadlineIn(4))}, nil)

	// then the ratio is a finite number
	if assert.NotNil(t, loadedReport.DailyLoad.Next5Days.CoverageRatio) {
		assert.Greater(t, *loadedReport.DailyLoad.Next5Days.CoverageRatio, 0.0)
	}
}

func TestCalculate_ShouldBeDeterministicForIdenticalInputs(t *testing.T) {
	calculator, calendar := setupCalculator(t)
	calendar.workDaysPassed = 5

	tasks := []task.Task{
		activeTask(600, 120, deadlineIn(3)),
		activeTask(300, 270, deadlineIn(-1)),
	}
	entries := []timesheet.Entry{{StaffId: 1, Date: testNow, Minutes: 240}}

	// when calculating twice with a frozen clock
	first := calculator.Calculate(testEmployee(), tasks, entries)
	second := calculator.Calculate(testEmployee(), tasks, entries)

	// then the reports are identical
	assert.Equal(t, first, second)
}

func TestCalculate_ShouldClassifyQualityBuckets(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given a 90% complete overdue task and a 95% complete one
	ninety := activeTask(300, 270, deadlineIn(-1))
	ninetyFive := activeTask(300, 285, deadlineIn(-1))
	ninetyFive.Uid = "task-2"

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{ninety, ninetyFive}, nil)

	// then 90% is should-be-closed and near-complete but not almost-done
	assert.Contains(t, report.TaskQuality.ShouldBeClosed, ninety)
	assert.Contains(t, report.TaskQuality.NearComplete, ninety)
	assert.NotContains(t, report.TaskQuality.AlmostDone, ninety)
	// and exactly 95% with 15 minutes left is almost-done
	assert.Contains(t, report.TaskQuality.AlmostDone, ninetyFive)
}

func TestCalculate_ShouldHandleZeroEstimateWithoutNaN(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given a task with no estimate but logged time
	unestimated := activeTask(0, 120, deadlineIn(2))

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{unestimated}, nil)

	// then completion is 0 and the task is not flagged as untracked
	assert.Equal(t, 0.0, unestimated.CompletionPercent())
	assert.NotContains(t, report.TaskQuality.MissingTimeTracking, unestimated)
	assert.False(t, report.DataQuality.MissingTimePercent > 0)
}

func TestCalculate_ShouldProduceEmptyBaselineForIdleEmployee(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// when there are no tasks and no timesheet entries
	report := calculator.Calculate(testEmployee(), nil, nil)

	// then the score is zero and only the no-timesheet penalty applies
	assert.Equal(t, 0, report.Score.Score)
	assert.Equal(t, LevelLow, report.Score.Level)
	assert.Equal(t, 70, report.DataQuality.Score)
	for _, alert := range report.Alerts {
		assert.NotEqual(t, "overload", alert.Type)
	}
}

func TestCalculate_ShouldBucketTasksByUrgency(t *testing.T) {
	calculator, _ := setupCalculator(t)

	overdue := activeTask(60, 0, deadlineIn(-2))
	dueToday := activeTask(60, 0, deadlineIn(0))
	dueIn3 := activeTask(60, 0, deadlineIn(3))
	dueIn6 := activeTask(60, 0, deadlineIn(6))
	noDeadline := activeTask(60, 0, nil)

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{overdue, dueToday, dueIn3, dueIn6, noDeadline}, nil)

	// then
	assert.Equal(t, 1, report.Urgency.Overdue)
	assert.Equal(t, 1, report.Urgency.DueWithin24h)
	assert.Equal(t, 1, report.Urgency.DueWithin3Days)
	assert.Equal(t, 1, report.Urgency.DueWithin7Days)
	assert.Equal(t, 3, report.Urgency.OverduePlusDueSoon)
	// 40 + 30 + 20 + 10
	assert.InDelta(t, 100.0, report.Urgency.UrgencyScore, 0.001)
}

func TestCalculate_ShouldRaiseOverloadAlertForHeavyWeightedBacklog(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given 50h of overdue work: x3 weighting makes ~25 effective days
	heavy := activeTask(3000, 0, deadlineIn(-1))

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{heavy}, nil)

	// then the overload alert is critical
	var overload *Alert
	for i := range report.Alerts {
		if report.Alerts[i].Type == "overload" {
			overload = &report.Alerts[i]
		}
	}
	if assert.NotNil(t, overload) {
		assert.Equal(t, SeverityCritical, overload.Severity)
	}
	assert.Greater(t, report.WeightedBacklog.WeightedDays, 15.0)
}

func TestCalculate_ShouldRaiseCriticalAlertForUrgentUntrackedTasks(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given a task due tomorrow with zero logged time
	urgent := activeTask(120, 0, deadlineIn(1))

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{urgent}, nil)

	// then
	found := false
	for _, alert := range report.Alerts {
		if alert.Type == "update_time" {
			found = true
			assert.Equal(t, SeverityCritical, alert.Severity)
		}
	}
	assert.True(t, found, "expected an update_time alert")
}

func TestCalculate_ShouldFlagDegradedModeWithoutCalendar(t *testing.T) {
	// given an engine without an office calendar
	clock := &utils.MockClock{FixedNow: testNow}
	calculator := NewCalculator(DefaultConfig(), nil, clock)

	// when
	report := calculator.Calculate(testEmployee(), []task.Task{activeTask(600, 0, deadlineIn(4))}, nil)

	// then the report is flagged and weekend logic still applies
	assert.True(t, report.CalendarDegraded)
	assert.NotContains(t, report.DailyLoad.DailyLoads, "2025-06-06") // Friday
	assert.NotContains(t, report.DailyLoad.DailyLoads, "2025-06-07") // Saturday
}

func TestCalculate_ShouldFallBackToOfficeDefaultTarget(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given an employee without an individual daily target
	employee := testEmployee()
	employee.DailyHoursTarget = 0

	// when
	report := calculator.Calculate(employee, nil, nil)

	// then the office default drives the monthly target
	expected := float64(calculator.workDaysInMonth(2025, time.June)) * DefaultConfig().DefaultDailyHoursTarget
	assert.InDelta(t, expected, report.Capacity.MonthlyTarget, 0.001)
}

func TestCalculate_ShouldPredictAvailabilityFromDailyPlan(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given a light plan: 2h/day over the next 5 days
	report := calculator.Calculate(testEmployee(), []task.Task{activeTask(600, 0, deadlineIn(4))}, nil)

	// then 5 days x 6h free leaves plenty of room
	assert.InDelta(t, 30.0, report.DailyLoad.TotalAvailableHours, 0.001)
	assert.True(t, report.Predictions.CanTakeNewTask)
	assert.Equal(t, TaskSizeLarge, report.Predictions.RecommendedTaskSize)
	assert.InDelta(t, 10.0/6.0, report.Predictions.EstimatedDaysToComplete, 0.001)
}

func TestCalculate_ShouldUseCannotCompleteSentinelWhenNoCapacityRemains(t *testing.T) {
	calculator, _ := setupCalculator(t)

	// given every one of the next 5 days fully committed
	report := calculator.Calculate(testEmployee(), []task.Task{activeTask(6000, 0, deadlineIn(4))}, nil)

	// then the backlog cannot be completed under the current plan
	assert.Equal(t, float64(CannotCompleteSentinel), report.Predictions.EstimatedDaysToComplete)
	assert.False(t, report.Predictions.CanTakeNewTask)
	assert.Equal(t, TaskSizeSmall, report.Predictions.RecommendedTaskSize)
}
