package calendar

import (
	"testing"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func defaultSchedule() calendar.OfficeSchedule {
	return calendar.OfficeSchedule{
		ID:            "sched-1",
		WeeklyOffDays: calendar.DefaultWeeklyOffDays(),
		IsActive:      true,
	}
}

func TestResolveDay_WorkingDay(t *testing.T) {
	// 2025-06-02 is a Monday
	res := ResolveDay(day(2025, 6, 2), nil, nil, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)
	assert.False(t, res.Ambiguous)
}

func TestResolveDay_DefaultWeeklyOff(t *testing.T) {
	// 2025-06-06 is a Friday, 2025-06-07 a Saturday
	for _, d := range []time.Time{day(2025, 6, 6), day(2025, 6, 7)} {
		res := ResolveDay(d, nil, nil, defaultSchedule())
		assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status, d.Weekday())
	}
}

func TestResolveDay_HolidayWinsOverEverything(t *testing.T) {
	// Friday: default weekly off AND covered by an override marking Friday
	// off. An active holiday still wins.
	date := day(2025, 6, 6)
	holiday := &calendar.Holiday{
		ID:       "hol-1",
		Title:    "Founding Day",
		Date:     date,
		Type:     calendar.HolidayTypeGovt,
		IsActive: true,
	}
	override := calendar.OfficeScheduleOverride{
		ID:            "ovr-1",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 30),
		WeeklyOffDays: []string{"Friday"},
		IsActive:      true,
	}

	res := ResolveDay(date, holiday, []calendar.OfficeScheduleOverride{override}, defaultSchedule())
	assert.Equal(t, calendar.DayStatusHoliday, res.Status)
}

func TestResolveDay_HolidayIgnoresTimeOfDay(t *testing.T) {
	holiday := &calendar.Holiday{
		ID:       "hol-1",
		Date:     time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC),
		IsActive: true,
	}
	res := ResolveDay(time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC), holiday, nil, defaultSchedule())
	assert.Equal(t, calendar.DayStatusHoliday, res.Status)
}

func TestResolveDay_InactiveHolidayIgnored(t *testing.T) {
	holiday := &calendar.Holiday{ID: "hol-1", Date: day(2025, 6, 2), IsActive: false}
	res := ResolveDay(day(2025, 6, 2), holiday, nil, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)
}

func TestResolveDay_OverrideReplacesDefaultSchedule(t *testing.T) {
	// Override moves the weekly off to Sunday for its window. While it is in
	// force the default Friday/Saturday off days do not apply.
	override := calendar.OfficeScheduleOverride{
		ID:            "ovr-1",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 30),
		WeeklyOffDays: []string{"Sunday"},
		IsActive:      true,
	}
	overrides := []calendar.OfficeScheduleOverride{override}

	// Sunday inside the window
	res := ResolveDay(day(2025, 6, 8), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status)

	// Friday inside the window: default says off, override says working
	res = ResolveDay(day(2025, 6, 6), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)

	// Friday outside the window: default applies again
	res = ResolveDay(day(2025, 7, 4), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status)
}

func TestResolveDay_OverrideBoundsInclusive(t *testing.T) {
	override := calendar.OfficeScheduleOverride{
		ID:            "ovr-1",
		StartDate:     day(2025, 6, 6),
		EndDate:       day(2025, 6, 6),
		WeeklyOffDays: []string{"Sunday"},
		IsActive:      true,
	}
	overrides := []calendar.OfficeScheduleOverride{override}

	// Friday on the single-day window: override in force, Friday works
	res := ResolveDay(day(2025, 6, 6), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)

	// Day after the window: back to default
	res = ResolveDay(day(2025, 6, 7), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status)
}

func TestResolveDay_InactiveOverrideIgnored(t *testing.T) {
	override := calendar.OfficeScheduleOverride{
		ID:            "ovr-1",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 30),
		WeeklyOffDays: []string{"Monday"},
		IsActive:      false,
	}
	res := ResolveDay(day(2025, 6, 2), nil, []calendar.OfficeScheduleOverride{override}, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)
}

func TestResolveDay_OverlappingOverridesMostRecentWins(t *testing.T) {
	// Newest first, as the repository returns them.
	newer := calendar.OfficeScheduleOverride{
		ID:            "ovr-2",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 30),
		WeeklyOffDays: []string{"Monday"},
		IsActive:      true,
		CreatedAt:     day(2025, 5, 20),
	}
	older := calendar.OfficeScheduleOverride{
		ID:            "ovr-1",
		StartDate:     day(2025, 6, 1),
		EndDate:       day(2025, 6, 30),
		WeeklyOffDays: []string{"Tuesday"},
		IsActive:      true,
		CreatedAt:     day(2025, 5, 10),
	}
	overrides := []calendar.OfficeScheduleOverride{newer, older}

	// Monday: the newer override marks it off
	res := ResolveDay(day(2025, 6, 2), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status)
	assert.True(t, res.Ambiguous)

	// Tuesday: only the losing override marks it off
	res = ResolveDay(day(2025, 6, 3), nil, overrides, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWorkingDay, res.Status)
	assert.True(t, res.Ambiguous)
}

func TestResolveDay_OverlappingIdenticalSetsNotAmbiguous(t *testing.T) {
	a := calendar.OfficeScheduleOverride{
		ID: "ovr-1", StartDate: day(2025, 6, 1), EndDate: day(2025, 6, 30),
		WeeklyOffDays: []string{"Sunday", "Monday"}, IsActive: true,
	}
	b := calendar.OfficeScheduleOverride{
		ID: "ovr-2", StartDate: day(2025, 6, 15), EndDate: day(2025, 7, 15),
		WeeklyOffDays: []string{"Monday", "Sunday"}, IsActive: true,
	}
	res := ResolveDay(day(2025, 6, 16), nil, []calendar.OfficeScheduleOverride{b, a}, defaultSchedule())
	assert.Equal(t, calendar.DayStatusWeeklyOff, res.Status)
	assert.False(t, res.Ambiguous)
}

func TestResolveDay_EveryDateGetsExactlyOneStatus(t *testing.T) {
	override := calendar.OfficeScheduleOverride{
		ID: "ovr-1", StartDate: day(2025, 6, 10), EndDate: day(2025, 6, 20),
		WeeklyOffDays: []string{"Wednesday"}, IsActive: true,
	}
	holiday := &calendar.Holiday{ID: "hol-1", Date: day(2025, 6, 16), IsActive: true}

	statuses := map[calendar.DayStatus]bool{
		calendar.DayStatusHoliday:    true,
		calendar.DayStatusWeeklyOff:  true,
		calendar.DayStatusWorkingDay: true,
	}
	for d := day(2025, 6, 1); !d.After(day(2025, 6, 30)); d = d.AddDate(0, 0, 1) {
		var h *calendar.Holiday
		if d.Equal(holiday.Date) {
			h = holiday
		}
		res := ResolveDay(d, h, []calendar.OfficeScheduleOverride{override}, defaultSchedule())
		assert.True(t, statuses[res.Status], "unexpected status %q on %s", res.Status, d)
	}
}

func TestDefaultWeeklyOffDays(t *testing.T) {
	assert.Equal(t, []string{"Friday", "Saturday"}, calendar.DefaultWeeklyOffDays())
}
