package attendance

import (
	"time"

	"github.com/staffdesk/hr-backoffice/internal/config"
	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
)

// Shift is the office shift the status engine judges clock events against.
type Shift struct {
	StartHour            int
	StartMinute          int
	Minutes              int
	LateThresholdMinutes int
	GracePeriodMinutes   int
}

// ShiftFromConfig builds a Shift from the validated application config.
func ShiftFromConfig(cfg config.ShiftConfig) Shift {
	start, _ := time.Parse("15:04", cfg.Start)
	return Shift{
		StartHour:            start.Hour(),
		StartMinute:          start.Minute(),
		Minutes:              cfg.Hours * 60,
		LateThresholdMinutes: cfg.LateThresholdMinutes,
		GracePeriodMinutes:   cfg.GracePeriodMinutes,
	}
}

// StartOn returns the shift's scheduled start on the given day.
func (s Shift) StartOn(day time.Time) time.Time {
	d := calendar.DayOf(day)
	return time.Date(d.Year(), d.Month(), d.Day(), s.StartHour, s.StartMinute, 0, 0, time.UTC)
}

// DeriveInput is everything the engine needs to classify one day of one
// employee. Now is the evaluation instant for still-open sessions.
type DeriveInput struct {
	DayStatus       calendar.DayStatus
	HolidayType     calendar.HolidayType
	ClockIn         *time.Time
	ClockOut        *time.Time
	OnApprovedLeave bool
	Shift           Shift
	Now             time.Time
}

// Derivation is the engine's verdict for one day.
type Derivation struct {
	Status       attendance.Status
	TotalMinutes int
	LateMinutes  int
}

// DeriveStatus classifies a day of attendance. Exactly one status comes out
// for every input. Priority: holiday, weekly off, approved leave, clock
// events, absent. Worked time on holidays and off days does not count.
func DeriveStatus(in DeriveInput) Derivation {
	switch in.DayStatus {
	case calendar.DayStatusHoliday:
		status := attendance.StatusGovtHoliday
		if in.HolidayType == calendar.HolidayTypeCompany {
			status = attendance.StatusCompanyHoliday
		}
		return Derivation{Status: status}
	case calendar.DayStatusWeeklyOff:
		return Derivation{Status: attendance.StatusWeeklyOff}
	}

	if in.OnApprovedLeave {
		return Derivation{Status: attendance.StatusLeave}
	}

	if in.ClockIn == nil {
		return Derivation{Status: attendance.StatusAbsent}
	}

	end := in.Now
	if in.ClockOut != nil {
		end = *in.ClockOut
	}
	totalMinutes := int(end.Sub(*in.ClockIn).Minutes())
	if totalMinutes < 0 {
		totalMinutes = 0
	}

	shiftStart := in.Shift.StartOn(*in.ClockIn)
	allowance := time.Duration(in.Shift.LateThresholdMinutes+in.Shift.GracePeriodMinutes) * time.Minute

	if in.ClockIn.After(shiftStart.Add(allowance)) {
		lateMinutes := int(in.ClockIn.Sub(shiftStart).Minutes())
		return Derivation{Status: attendance.StatusLate, TotalMinutes: totalMinutes, LateMinutes: lateMinutes}
	}

	return Derivation{Status: attendance.StatusPresent, TotalMinutes: totalMinutes}
}
