package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Staff
	r.HandleFunc("/api/staff", deps.StaffHandler.ListStaff).Methods("GET")
	r.HandleFunc("/api/staff", deps.StaffHandler.CreateStaff).Methods("POST")
	r.HandleFunc("/api/staff/{staffUid}", deps.StaffHandler.GetStaff).Methods("GET")
	r.HandleFunc("/api/staff/{staffUid}", deps.StaffHandler.UpdateStaff).Methods("PUT")
	r.HandleFunc("/api/staff/{staffUid}", deps.StaffHandler.DeleteStaff).Methods("DELETE")

	// Tasks
	r.HandleFunc("/api/task", deps.TaskHandler.ListTasks).Methods("GET")
	r.HandleFunc("/api/task", deps.TaskHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/task/{taskUid}", deps.TaskHandler.UpdateTask).Methods("PUT")
	r.HandleFunc("/api/task/{taskUid}/status", deps.TaskHandler.SetTaskStatus).Methods("PATCH")
	r.HandleFunc("/api/task/{taskUid}", deps.TaskHandler.DeleteTask).Methods("DELETE")

	// Timesheet
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/timesheet", deps.TimesheetHandler.LogTime).Methods("POST")
	r.HandleFunc("/api/timesheet/{entryId}", deps.TimesheetHandler.DeleteEntry).Methods("DELETE")

	// Office calendar (holidays)
	r.HandleFunc("/api/holiday", deps.WorkHoursHandler.ListHolidays).Queries("from", "{from}", "to", "{to}").Methods("GET")
	r.HandleFunc("/api/holiday", deps.WorkHoursHandler.CreateHoliday).Methods("POST")
	r.HandleFunc("/api/holiday/{holidayUid}", deps.WorkHoursHandler.DeleteHoliday).Methods("DELETE")

	// Workload analytics
	r.HandleFunc("/api/workload", deps.WorkloadHandler.GetOfficeOverview).Methods("GET")
	r.HandleFunc("/api/workload/{staffUid}", deps.WorkloadHandler.GetReport).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/import-holidays", deps.GoogleHandler.ImportHolidays).Methods("POST")
}
