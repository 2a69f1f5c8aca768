package calendar

import (
	"context"
	"time"
)

// Service defines business logic for the holiday calendar and the weekly-off
// configuration, including day-status resolution.
type Service interface {
	// ResolveDayStatus classifies a date as holiday, weekly off, or working
	// day. Precedence: active holiday, then active override window, then the
	// default schedule. Materializes the default schedule on first use.
	ResolveDayStatus(ctx context.Context, date time.Time) (DayStatus, error)

	// WorkingDaysBetween counts WORKING_DAY dates in the inclusive window
	WorkingDaysBetween(ctx context.Context, from, to time.Time) (int, error)

	// Holidays
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeactivateHoliday(ctx context.Context, id string) error

	// Default schedule
	GetSchedule(ctx context.Context) (ScheduleResponse, error)
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)

	// Overrides
	CreateOverride(ctx context.Context, req CreateOverrideRequest) (OverrideResponse, error)
	ListOverrides(ctx context.Context, from, to time.Time) ([]OverrideResponse, error)
	DeactivateOverride(ctx context.Context, id string) error

	// SyncHolidays upserts AUTO-source holidays for the given year from the
	// external feed. Invoked by the scheduled sync job; safe to re-run.
	SyncHolidays(ctx context.Context, year int) (int, error)
}
