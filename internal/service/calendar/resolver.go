package calendar

import (
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
)

// Resolution is the outcome of classifying one date.
type Resolution struct {
	Status calendar.DayStatus

	// Ambiguous is set when more than one active override covers the date
	// with conflicting weekday sets. The most recently created override
	// wins; the condition is reported, never fatal.
	Ambiguous bool
}

// ResolveDay classifies a date against already-fetched calendar data.
// Precedence: active holiday, then any covering override, then the default
// schedule. A covering override replaces the default weekly-off set for its
// window entirely, even for weekdays it does not list.
//
// Overrides must be ordered most recently created first; that order is the
// deterministic tie-break between overlapping windows.
func ResolveDay(date time.Time, holiday *calendar.Holiday, overrides []calendar.OfficeScheduleOverride, schedule calendar.OfficeSchedule) Resolution {
	day := calendar.DayOf(date)
	weekday := day.Weekday().String()

	if holiday != nil && holiday.IsActive && calendar.DayOf(holiday.Date).Equal(day) {
		return Resolution{Status: calendar.DayStatusHoliday}
	}

	var covering []calendar.OfficeScheduleOverride
	for _, o := range overrides {
		if o.IsActive && o.Covers(day) {
			covering = append(covering, o)
		}
	}

	if len(covering) > 0 {
		chosen := covering[0]
		ambiguous := false
		for _, o := range covering[1:] {
			if !sameDaySet(chosen.WeeklyOffDays, o.WeeklyOffDays) {
				ambiguous = true
				break
			}
		}

		status := calendar.DayStatusWorkingDay
		if chosen.HasWeeklyOff(weekday) {
			status = calendar.DayStatusWeeklyOff
		}
		return Resolution{Status: status, Ambiguous: ambiguous}
	}

	if schedule.HasWeeklyOff(weekday) {
		return Resolution{Status: calendar.DayStatusWeeklyOff}
	}

	return Resolution{Status: calendar.DayStatusWorkingDay}
}

func sameDaySet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, d := range a {
		set[d] = true
	}
	for _, d := range b {
		if !set[d] {
			return false
		}
	}
	return true
}
