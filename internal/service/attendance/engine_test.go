package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/hr-backoffice/internal/domain/attendance"
	"github.com/staffdesk/hr-backoffice/internal/domain/calendar"
)

func testShift() Shift {
	return Shift{
		StartHour:            9,
		StartMinute:          0,
		Minutes:              8 * 60,
		LateThresholdMinutes: 15,
		GracePeriodMinutes:   5,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 2, hour, minute, 0, 0, time.UTC)
}

func TestDeriveStatus_HolidayBeatsEverything(t *testing.T) {
	clockIn := at(9, 0)
	clockOut := at(18, 0)

	got := DeriveStatus(DeriveInput{
		DayStatus:       calendar.DayStatusHoliday,
		HolidayType:     calendar.HolidayTypeGovt,
		ClockIn:         &clockIn,
		ClockOut:        &clockOut,
		OnApprovedLeave: true,
		Shift:           testShift(),
		Now:             clockOut,
	})

	assert.Equal(t, attendance.StatusGovtHoliday, got.Status)
	assert.Equal(t, 0, got.TotalMinutes, "hours worked on a holiday should not count")
	assert.Equal(t, 0, got.LateMinutes)
}

func TestDeriveStatus_CompanyHolidayType(t *testing.T) {
	got := DeriveStatus(DeriveInput{
		DayStatus:   calendar.DayStatusHoliday,
		HolidayType: calendar.HolidayTypeCompany,
		Shift:       testShift(),
	})

	assert.Equal(t, attendance.StatusCompanyHoliday, got.Status)
}

func TestDeriveStatus_WeeklyOffBeatsLeaveAndClocks(t *testing.T) {
	clockIn := at(10, 0)

	got := DeriveStatus(DeriveInput{
		DayStatus:       calendar.DayStatusWeeklyOff,
		ClockIn:         &clockIn,
		OnApprovedLeave: true,
		Shift:           testShift(),
		Now:             at(15, 0),
	})

	assert.Equal(t, attendance.StatusWeeklyOff, got.Status)
	assert.Equal(t, 0, got.TotalMinutes)
}

func TestDeriveStatus_ApprovedLeaveBeatsClockEvents(t *testing.T) {
	clockIn := at(9, 0)
	clockOut := at(17, 0)

	got := DeriveStatus(DeriveInput{
		DayStatus:       calendar.DayStatusWorkingDay,
		ClockIn:         &clockIn,
		ClockOut:        &clockOut,
		OnApprovedLeave: true,
		Shift:           testShift(),
		Now:             clockOut,
	})

	assert.Equal(t, attendance.StatusLeave, got.Status)
	assert.Equal(t, 0, got.TotalMinutes)
}

func TestDeriveStatus_NoClockInIsAbsent(t *testing.T) {
	got := DeriveStatus(DeriveInput{
		DayStatus: calendar.DayStatusWorkingDay,
		Shift:     testShift(),
		Now:       at(23, 0),
	})

	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.Equal(t, 0, got.TotalMinutes)
}

func TestDeriveStatus_PresentWithClosedSession(t *testing.T) {
	clockIn := at(9, 0)
	clockOut := at(17, 30)

	got := DeriveStatus(DeriveInput{
		DayStatus: calendar.DayStatusWorkingDay,
		ClockIn:   &clockIn,
		ClockOut:  &clockOut,
		Shift:     testShift(),
		Now:       at(23, 0),
	})

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Equal(t, 510, got.TotalMinutes)
	assert.Equal(t, 0, got.LateMinutes)
}

func TestDeriveStatus_OpenSessionAccruesToNow(t *testing.T) {
	clockIn := at(9, 0)

	got := DeriveStatus(DeriveInput{
		DayStatus: calendar.DayStatusWorkingDay,
		ClockIn:   &clockIn,
		Shift:     testShift(),
		Now:       at(13, 0),
	})

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Equal(t, 240, got.TotalMinutes)
}

func TestDeriveStatus_LateBoundary(t *testing.T) {
	// Threshold 15 plus grace 5 puts the last on-time instant at 09:20.
	tests := []struct {
		name        string
		clockIn     time.Time
		wantStatus  attendance.Status
		wantLateMin int
	}{
		{"exactly at shift start", at(9, 0), attendance.StatusPresent, 0},
		{"at the allowance boundary", at(9, 20), attendance.StatusPresent, 0},
		{"one minute past the allowance", at(9, 21), attendance.StatusLate, 21},
		{"an hour late", at(10, 0), attendance.StatusLate, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(DeriveInput{
				DayStatus: calendar.DayStatusWorkingDay,
				ClockIn:   &tt.clockIn,
				Shift:     testShift(),
				Now:       at(18, 0),
			})

			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantLateMin, got.LateMinutes, "late minutes count from shift start, not from the allowance")
		})
	}
}

func TestDeriveStatus_ClockOutBeforeClockInClampsToZero(t *testing.T) {
	clockIn := at(17, 0)
	clockOut := at(9, 0)

	got := DeriveStatus(DeriveInput{
		DayStatus: calendar.DayStatusWorkingDay,
		ClockIn:   &clockIn,
		ClockOut:  &clockOut,
		Shift:     testShift(),
		Now:       at(18, 0),
	})

	assert.Equal(t, 0, got.TotalMinutes)
}

// Every combination of inputs must classify to exactly one known status.
func TestDeriveStatus_Totality(t *testing.T) {
	known := map[attendance.Status]bool{
		attendance.StatusPresent:        true,
		attendance.StatusLate:           true,
		attendance.StatusAbsent:         true,
		attendance.StatusLeave:          true,
		attendance.StatusGovtHoliday:    true,
		attendance.StatusCompanyHoliday: true,
		attendance.StatusWeeklyOff:      true,
	}

	clockIn := at(9, 30)
	clockOut := at(16, 0)
	clockPtrs := []*time.Time{nil, &clockIn}
	clockOutPtrs := []*time.Time{nil, &clockOut}

	for _, dayStatus := range []calendar.DayStatus{calendar.DayStatusHoliday, calendar.DayStatusWeeklyOff, calendar.DayStatusWorkingDay} {
		for _, holType := range []calendar.HolidayType{"", calendar.HolidayTypeGovt, calendar.HolidayTypeCompany} {
			for _, in := range clockPtrs {
				for _, out := range clockOutPtrs {
					for _, onLeave := range []bool{false, true} {
						got := DeriveStatus(DeriveInput{
							DayStatus:       dayStatus,
							HolidayType:     holType,
							ClockIn:         in,
							ClockOut:        out,
							OnApprovedLeave: onLeave,
							Shift:           testShift(),
							Now:             at(18, 0),
						})
						require.True(t, known[got.Status], "unknown status %q", got.Status)
						require.GreaterOrEqual(t, got.TotalMinutes, 0)
						require.GreaterOrEqual(t, got.LateMinutes, 0)
					}
				}
			}
		}
	}
}

func TestShiftStartOn(t *testing.T) {
	shift := Shift{StartHour: 9, StartMinute: 30}
	start := shift.StartOn(time.Date(2026, time.March, 2, 17, 45, 12, 0, time.UTC))

	assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, time.UTC), start)
}
