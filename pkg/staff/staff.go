package staff

// Staff is an employee of the office. DailyHoursTarget is the individual
// daily work-hour target; 0 means "use the configured office default".
type Staff struct {
	Id               int
	Uid              string
	Email            string
	DisplayName      string
	Role             string
	DailyHoursTarget float64
}
