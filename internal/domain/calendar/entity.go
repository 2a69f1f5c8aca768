package calendar

import (
	"time"
)

// DayStatus classifies a calendar date before any individual attendance is
// considered.
type DayStatus string

const (
	DayStatusHoliday    DayStatus = "HOLIDAY"
	DayStatusWeeklyOff  DayStatus = "WEEKLY_OFF"
	DayStatusWorkingDay DayStatus = "WORKING_DAY"
)

// HolidayType enum
type HolidayType string

const (
	HolidayTypeGovt    HolidayType = "GOVT"
	HolidayTypeCompany HolidayType = "COMPANY"
)

// HolidaySource enum
type HolidaySource string

const (
	HolidaySourceAuto  HolidaySource = "AUTO"
	HolidaySourceAdmin HolidaySource = "ADMIN"
)

type Holiday struct {
	ID        string
	Title     string
	Date      time.Time
	Type      HolidayType
	Source    HolidaySource
	Year      int
	IsActive  bool
	CreatedBy *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfficeSchedule is the default weekly-off configuration. At most one row is
// active at a time; the active row is materialized lazily with
// DefaultWeeklyOffDays when none exists.
type OfficeSchedule struct {
	ID            string
	WeeklyOffDays []string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OfficeScheduleOverride is a time-bounded exception to the default schedule.
// StartDate and EndDate are inclusive day-granularity bounds.
type OfficeScheduleOverride struct {
	ID            string
	StartDate     time.Time
	EndDate       time.Time
	WeeklyOffDays []string
	IsActive      bool
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultWeeklyOffDays applies when no office schedule has been configured.
func DefaultWeeklyOffDays() []string {
	return []string{time.Friday.String(), time.Saturday.String()}
}

// DayOf normalizes a timestamp to midnight UTC. All day-status comparisons
// happen at this granularity.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Covers reports whether the override's inclusive window contains date.
func (o OfficeScheduleOverride) Covers(date time.Time) bool {
	d := DayOf(date)
	return !d.Before(DayOf(o.StartDate)) && !d.After(DayOf(o.EndDate))
}

// HasWeeklyOff reports whether the given weekday name is one of the
// override's off days.
func (o OfficeScheduleOverride) HasWeeklyOff(weekday string) bool {
	for _, d := range o.WeeklyOffDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// HasWeeklyOff reports whether the given weekday name is one of the
// schedule's off days.
func (s OfficeSchedule) HasWeeklyOff(weekday string) bool {
	for _, d := range s.WeeklyOffDays {
		if d == weekday {
			return true
		}
	}
	return false
}
