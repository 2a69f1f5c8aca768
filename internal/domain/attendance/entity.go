package attendance

import (
	"time"
)

// Status is the final classification of an attendance record.
type Status string

const (
	StatusPresent        Status = "present"
	StatusLate           Status = "late"
	StatusAbsent         Status = "absent"
	StatusLeave          Status = "leave"
	StatusGovtHoliday    Status = "govt_holiday"
	StatusCompanyHoliday Status = "company_holiday"
	StatusWeeklyOff      Status = "weekly_off"
)

type Attendance struct {
	ID               string
	EmployeeID       string
	Date             time.Time
	ClockIn          *time.Time
	ClockOut         *time.Time
	TotalMinutes     *int
	LateMinutes      *int
	Status           Status
	AutoClockedOut   bool
	CorrectedByAdmin bool
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// DTO
	EmployeeName *string
}

// IsOpenSession reports whether the record has a clock-in without a clock-out.
func (a Attendance) IsOpenSession() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}
