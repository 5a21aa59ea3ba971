package app

import (
	"database/sql"

	"github.com/lexload/lexload/internal/config"
	"github.com/lexload/lexload/internal/event_bus"
	"github.com/lexload/lexload/internal/utils"
	"github.com/lexload/lexload/pkg/google"
	"github.com/lexload/lexload/pkg/staff"
	"github.com/lexload/lexload/pkg/task"
	"github.com/lexload/lexload/pkg/timesheet"
	"github.com/lexload/lexload/pkg/workhours"
	"github.com/lexload/lexload/pkg/workload"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	StaffRepo    staff.Repository
	StaffService staff.Service
	StaffHandler *staff.Handler

	TaskRepo    task.Repository
	TaskService task.Service
	TaskHandler *task.Handler

	TimesheetRepo    timesheet.Repository
	TimesheetService timesheet.Service
	TimesheetHandler *timesheet.Handler

	HolidayRepo        workhours.HolidayRepo
	WorkHoursCalc      *workhours.CalculatorImpl
	WorkHoursHandler   *workhours.Handler
	WorkloadCalculator *workload.Calculator
	WorkloadService    workload.Service
	WorkloadHandler    *workload.Handler

	GoogleAuth      *google.GoogleAuth
	GoogleService   google.Service
	HolidayImporter *google.HolidayImporter
	GoogleHandler   *google.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.StaffRepo = staff.NewRepository(db)
	deps.StaffService = staff.NewService(deps.StaffRepo)
	deps.StaffHandler = staff.NewHandler(deps.StaffService)

	deps.TaskRepo = task.NewRepository(db)
	deps.TaskService = task.NewService(deps.TaskRepo, deps.EventBus, deps.Clock)
	deps.TaskHandler = task.NewHandler(deps.TaskService)

	deps.TimesheetRepo = timesheet.NewRepository(db)
	deps.TimesheetService = timesheet.NewService(deps.TimesheetRepo)
	deps.TimesheetHandler = timesheet.NewHandler(deps.TimesheetService)

	deps.HolidayRepo = workhours.NewHolidayRepo(db)
	deps.WorkHoursCalc = workhours.NewCalculator(deps.HolidayRepo, deps.Clock)
	deps.WorkHoursHandler = workhours.NewHandler(deps.HolidayRepo, deps.WorkHoursCalc)

	deps.WorkloadCalculator = workload.NewCalculator(cfg.Workload, deps.WorkHoursCalc, deps.Clock)
	deps.WorkloadService = workload.NewService(
		deps.WorkloadCalculator,
		deps.StaffService,
		deps.TaskService,
		deps.TimesheetService,
		deps.EventBus,
		deps.Clock,
	)
	deps.WorkloadHandler = workload.NewHandler(deps.WorkloadService)

	deps.GoogleAuth = google.NewGoogleAuth(db, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth)
	deps.HolidayImporter = google.NewHolidayImporter(deps.GoogleService, deps.HolidayRepo, deps.WorkHoursCalc)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService, deps.HolidayImporter)

	registerEventSubscribers(deps)

	return deps
}

// registerEventSubscribers attaches cross-cutting listeners to the event bus.
func registerEventSubscribers(deps *Dependencies) {
	event_bus.SubscribeTyped[event_bus.WorkloadReportCalculated](deps.EventBus, event_bus.WorkloadReportCalculatedEvent,
		func(e event_bus.EventT[event_bus.WorkloadReportCalculated]) error {
			if e.Data.CriticalAlerts > 0 || e.Data.Level == "critical" {
				log.Warnf("Critical workload for %s: score %d (%s), %d critical alerts",
					e.Data.EmployeeEmail, e.Data.Score, e.Data.Level, e.Data.CriticalAlerts)
			}
			return nil
		})

	event_bus.SubscribeTyped[event_bus.TaskUpdated](deps.EventBus, event_bus.TaskUpdatedEvent,
		func(e event_bus.EventT[event_bus.TaskUpdated]) error {
			log.Debugf("Task %s updated for staff %d (status: %s)", e.Data.TaskUid, e.Data.StaffId, e.Data.Status)
			return nil
		})
}
