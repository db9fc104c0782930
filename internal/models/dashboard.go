package models

// AdminDashboard holds the admin landing metrics.
type AdminDashboard struct {
	TotalEmployees      int `json:"totalEmployees"`
	TotalAppointments   int `json:"totalAppointments"`
	PendingAppointments int `json:"pendingAppointments"`
}

// EmployeeDashboard holds the employee landing metrics.
type EmployeeDashboard struct {
	TotalAppointments   int         `json:"totalAppointments"`
	PendingAppointments int         `json:"pendingAppointments"`
	TotalFees           LooseString `json:"totalFees"`
}

// LaboratoryMetrics are the laboratory appointment counters.
type LaboratoryMetrics struct {
	TotalAppointments     int         `json:"totalAppointments"`
	CompletedAppointments int         `json:"completedAppointments"`
	PendingAppointments   int         `json:"pendingAppointments"`
	RejectedAppointments  int         `json:"rejectedAppointments"`
	TotalEarnings         LooseString `json:"totalEarnings"`
}

// WeeklyCount is the number of appointments in one week.
type WeeklyCount struct {
	Week             string `json:"week"`
	AppointmentCount int    `json:"appointmentCount"`
}

// LaboratoryRanking is one entry of the weekly top laboratories.
type LaboratoryRanking struct {
	LaboratoryID       string `json:"laboratoryId"`
	Laboratory         string `json:"labortary"`
	WeeklyAppointments int    `json:"weeklyAppointments"`
}

// WeeklyAppointments groups weekly series for the laboratory dashboard.
type WeeklyAppointments struct {
	CurrentLaboratory []WeeklyCount       `json:"currentLaboratory"`
	TopLaboratories   []LaboratoryRanking `json:"topLaboratories"`
}

// LaboratoryDashboard holds the laboratory landing metrics.
type LaboratoryDashboard struct {
	Metrics            LaboratoryMetrics  `json:"metrics"`
	WeeklyAppointments WeeklyAppointments `json:"weeklyAppointments"`
}

// PeakWeek returns the largest weekly count, used to scale the weekly chart.
func (w WeeklyAppointments) PeakWeek() int {
	peak := 0
	for _, c := range w.CurrentLaboratory {
		if c.AppointmentCount > peak {
			peak = c.AppointmentCount
		}
	}
	return peak
}
